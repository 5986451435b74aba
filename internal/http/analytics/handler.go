package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/analytics"
	"github.com/MrJamesThe3rd/shopsight/internal/http/auth"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/metrics", h.metrics)
	r.Get("/insights", h.insights)

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/products", h.products)
		r.Get("/projection", h.projection)
		r.Get("/daily", h.daily)
	})
}

type noDataResponse struct {
	NoData bool `json:"no_data"`
}

// metrics answers 200 even when the account has no sales yet; clients check
// the no_data flag instead of a status code.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Metrics(r.Context(), username)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if m == nil {
		writeJSON(w, http.StatusOK, noDataResponse{NoData: true})
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	insights, err := h.svc.Insights(r.Context(), username)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if insights == nil {
		insights = []analytics.Insight{}
	}

	writeJSON(w, http.StatusOK, insights)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	products, err := h.svc.Products(r.Context(), username)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if products == nil {
		products = []analytics.ProductStat{}
	}

	writeJSON(w, http.StatusOK, products)
}

type projectionResponse struct {
	MonthlyProjection decimal.Decimal `json:"monthly_projection"`
}

func (h *Handler) projection(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	projection, err := h.svc.Projection(r.Context(), username)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, projectionResponse{MonthlyProjection: projection})
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	period := analytics.PeriodAll

	if s := r.URL.Query().Get("period"); s != "" {
		var err error

		period, err = analytics.ParsePeriod(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	daily, err := h.svc.Daily(r.Context(), username, period)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if daily == nil {
		daily = []analytics.DailyStat{}
	}

	writeJSON(w, http.StatusOK, daily)
}

func sessionUsername(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return "", false
	}

	return claims.Username, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
