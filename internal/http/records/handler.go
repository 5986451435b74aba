package records

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/export"
	"github.com/MrJamesThe3rd/shopsight/internal/http/auth"
	"github.com/MrJamesThe3rd/shopsight/internal/importer"
	"github.com/MrJamesThe3rd/shopsight/internal/matching"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// maxImportSize bounds uploaded CSV files at 10 MiB.
const maxImportSize = 10 << 20

type Handler struct {
	records *record.Service
	imports *importer.Service
	matches *matching.Service
	exports *export.Service
}

func NewHandler(records *record.Service, imports *importer.Service, matches *matching.Service, exports *export.Service) *Handler {
	return &Handler{
		records: records,
		imports: imports,
		matches: matches,
		exports: exports,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/sales/import", h.importSales)
	r.Post("/sales/aliases", h.learnAlias)
	r.Get("/sales/aliases/suggest", h.suggestAlias)
	r.Get("/{collection}", h.list)
	r.Post("/{collection}", h.append)
	r.Put("/{collection}", h.replace)
	r.Get("/{collection}/export", h.exportCSV)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	collection, err := record.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	var payload any

	switch collection {
	case record.CollectionSales:
		payload, err = listPayload(h.records.Sales(ctx, username))
	case record.CollectionInventory:
		payload, err = listPayload(h.records.Inventory(ctx, username))
	case record.CollectionOrders:
		payload, err = listPayload(h.records.Orders(ctx, username))
	case record.CollectionDebts:
		payload, err = listPayload(h.records.Debts(ctx, username))
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

// listPayload normalizes a nil list to an empty JSON array.
func listPayload[T any](list []T, err error) (any, error) {
	if err != nil {
		return nil, err
	}

	if list == nil {
		list = []T{}
	}

	return list, nil
}

type saleRequest struct {
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Customer    string          `json:"customer"`
	Date        record.Date     `json:"date"`
}

type inventoryRequest struct {
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Category     string          `json:"category"`
	ReorderLevel int             `json:"reorder_level"`
	Supplier     string          `json:"supplier"`
	Notes        string          `json:"notes"`
	AddedDate    record.Date     `json:"added_date"`
}

type orderRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Customer    string          `json:"customer"`
	Status      string          `json:"status"`
	OrderDate   record.Date     `json:"order_date"`
	DueDate     record.Date     `json:"due_date"`
	Notes       string          `json:"notes"`
}

type debtRequest struct {
	Debtor   string          `json:"debtor"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Status   string          `json:"status"`
	DebtDate record.Date     `json:"debt_date"`
	DueDate  record.Date     `json:"due_date"`
	Notes    string          `json:"notes"`
}

func (h *Handler) append(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	collection, err := record.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var created any

	switch collection {
	case record.CollectionSales:
		created, err = h.appendSale(r, username)
	case record.CollectionInventory:
		created, err = h.appendInventoryItem(r, username)
	case record.CollectionOrders:
		created, err = h.appendOrder(r, username)
	case record.CollectionDebts:
		created, err = h.appendDebt(r, username)
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) appendSale(r *http.Request, username string) (*record.Sale, error) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	return h.records.AddSale(r.Context(), username, record.SaleParams{
		Product:     req.Product,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		CostPerUnit: req.CostPerUnit,
		Customer:    req.Customer,
		Date:        req.Date,
	})
}

func (h *Handler) appendInventoryItem(r *http.Request, username string) (*record.InventoryItem, error) {
	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	return h.records.AddInventoryItem(r.Context(), username, record.InventoryParams{
		Name:         req.Name,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Category:     record.Category(req.Category),
		ReorderLevel: req.ReorderLevel,
		Supplier:     req.Supplier,
		Notes:        req.Notes,
		AddedDate:    req.AddedDate,
	})
}

func (h *Handler) appendOrder(r *http.Request, username string) (*record.Order, error) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	return h.records.AddOrder(r.Context(), username, record.OrderParams{
		Description: req.Description,
		Amount:      req.Amount,
		Customer:    req.Customer,
		Status:      record.OrderStatus(req.Status),
		OrderDate:   req.OrderDate,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
	})
}

func (h *Handler) appendDebt(r *http.Request, username string) (*record.Debt, error) {
	var req debtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	return h.records.AddDebt(r.Context(), username, record.DebtParams{
		Debtor:   req.Debtor,
		Amount:   req.Amount,
		Type:     record.DebtType(req.Type),
		Status:   record.DebtStatus(req.Status),
		DebtDate: req.DebtDate,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
	})
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	collection, err := record.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	switch collection {
	case record.CollectionSales:
		var list []record.Sale
		if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = h.records.ReplaceSales(ctx, username, list)
	case record.CollectionInventory:
		var list []record.InventoryItem
		if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = h.records.ReplaceInventory(ctx, username, list)
	case record.CollectionOrders:
		var list []record.Order
		if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = h.records.ReplaceOrders(ctx, username, list)
	case record.CollectionDebts:
		var list []record.Debt
		if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = h.records.ReplaceDebts(ctx, username, list)
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	collection, err := record.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(collection)))

	if err := h.exports.WriteCSV(r.Context(), username, collection, w); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}

type importResponse struct {
	Imported int           `json:"imported"`
	Sales    []record.Sale `json:"sales"`
}

func (h *Handler) importSales(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.imports.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i, p := range params {
		suggested, err := h.matches.Suggest(r.Context(), username, p.Product)
		if err != nil || suggested == "" {
			continue
		}

		params[i].Product = suggested
	}

	imported := make([]record.Sale, 0, len(params))

	for _, p := range params {
		sale, err := h.records.AddSale(r.Context(), username, p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		imported = append(imported, *sale)
	}

	writeJSON(w, http.StatusCreated, importResponse{
		Imported: len(imported),
		Sales:    imported,
	})
}

type aliasRequest struct {
	Pattern string `json:"pattern"`
	Product string `json:"product"`
}

func (h *Handler) learnAlias(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	var req aliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.matches.Learn(r.Context(), username, req.Pattern, req.Product); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type suggestResponse struct {
	Product   string `json:"product"`
	Suggested string `json:"suggested"`
}

func (h *Handler) suggestAlias(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUsername(w, r)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("product")
	if raw == "" {
		http.Error(w, "product query parameter is required", http.StatusBadRequest)
		return
	}

	suggested, err := h.matches.Suggest(r.Context(), username, raw)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{Product: raw, Suggested: suggested})
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
