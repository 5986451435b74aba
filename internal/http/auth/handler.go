package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
)

type Handler struct {
	accounts *account.Service
	tokens   *TokenManager
}

func NewHandler(accounts *account.Service, tokens *TokenManager) *Handler {
	return &Handler{accounts: accounts, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

type registerRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accountResponse struct {
	Username     string               `json:"username"`
	Role         account.Role         `json:"role"`
	BusinessName string               `json:"business_name"`
	BusinessType account.BusinessType `json:"business_type"`
	CreatedAt    time.Time            `json:"created_at"`
}

type sessionResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

func toAccountResponse(acc *account.Account) accountResponse {
	return accountResponse{
		Username:     acc.Username,
		Role:         acc.Role,
		BusinessName: acc.BusinessName,
		BusinessType: acc.BusinessType,
		CreatedAt:    acc.CreatedAt,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc, err := h.accounts.Register(r.Context(), account.RegisterParams{
		Username:     req.Username,
		Password:     req.Password,
		BusinessName: req.BusinessName,
		BusinessType: account.BusinessType(req.BusinessType),
	})
	if err != nil {
		if errors.Is(err, account.ErrExists) {
			http.Error(w, "username already taken", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	h.writeSession(w, http.StatusCreated, acc)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.writeSession(w, http.StatusOK, acc)
}

func (h *Handler) writeSession(w http.ResponseWriter, status int, acc *account.Account) {
	token, err := h.tokens.Issue(acc)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(sessionResponse{
		Token:   token,
		Account: toAccountResponse(acc),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
