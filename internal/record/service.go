package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Store persists the per-account record lists. Get returns the list in
// insertion order (empty when the account has none), Append adds one record
// to the end, Replace overwrites the whole list.
//
//go:generate mockgen -source=service.go -destination=store_mock.go -package=record
type Store interface {
	GetSales(ctx context.Context, username string) ([]Sale, error)
	AppendSale(ctx context.Context, username string, sale Sale) error
	ReplaceSales(ctx context.Context, username string, sales []Sale) error

	GetInventory(ctx context.Context, username string) ([]InventoryItem, error)
	AppendInventoryItem(ctx context.Context, username string, item InventoryItem) error
	ReplaceInventory(ctx context.Context, username string, items []InventoryItem) error

	GetOrders(ctx context.Context, username string) ([]Order, error)
	AppendOrder(ctx context.Context, username string, order Order) error
	ReplaceOrders(ctx context.Context, username string, orders []Order) error

	GetDebts(ctx context.Context, username string) ([]Debt, error)
	AppendDebt(ctx context.Context, username string, debt Debt) error
	ReplaceDebts(ctx context.Context, username string, debts []Debt) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// defaultCustomer is recorded when no customer name is given.
const defaultCustomer = "N/A"

type SaleParams struct {
	Product     string
	Quantity    int
	UnitPrice   decimal.Decimal
	CostPerUnit decimal.Decimal
	Customer    string
	Date        Date
}

// AddSale appends a sale, deriving total amount, cost and profit from the
// quantity and the unit figures. The new record's id is the list length + 1.
func (s *Service) AddSale(ctx context.Context, username string, p SaleParams) (*Sale, error) {
	if strings.TrimSpace(p.Product) == "" {
		return nil, fmt.Errorf("product is required")
	}

	if p.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	if p.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	if p.CostPerUnit.IsNegative() {
		return nil, fmt.Errorf("cost per unit cannot be negative")
	}

	existing, err := s.store.GetSales(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}

	qty := decimal.NewFromInt(int64(p.Quantity))
	total := qty.Mul(p.UnitPrice)
	cost := qty.Mul(p.CostPerUnit)

	sale := Sale{
		ID:          len(existing) + 1,
		Product:     strings.TrimSpace(p.Product),
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		TotalAmount: total,
		Cost:        cost,
		Profit:      total.Sub(cost),
		Customer:    orDefault(p.Customer, defaultCustomer),
		Date:        orToday(p.Date),
	}

	if err := s.store.AppendSale(ctx, username, sale); err != nil {
		return nil, fmt.Errorf("appending sale: %w", err)
	}

	return &sale, nil
}

func (s *Service) Sales(ctx context.Context, username string) ([]Sale, error) {
	return s.store.GetSales(ctx, username)
}

// ReplaceSales overwrites the account's sales list. Derived fields are
// recomputed so replaced records cannot carry inconsistent totals.
func (s *Service) ReplaceSales(ctx context.Context, username string, sales []Sale) error {
	for i := range sales {
		qty := decimal.NewFromInt(int64(sales[i].Quantity))
		sales[i].TotalAmount = qty.Mul(sales[i].UnitPrice)
		sales[i].Profit = sales[i].TotalAmount.Sub(sales[i].Cost)
	}

	return s.store.ReplaceSales(ctx, username, sales)
}

type InventoryParams struct {
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal
	Category     Category
	ReorderLevel int
	Supplier     string
	Notes        string
	AddedDate    Date
}

// defaultReorderLevel is used when no reorder level is given.
const defaultReorderLevel = 10

func (s *Service) AddInventoryItem(ctx context.Context, username string, p InventoryParams) (*InventoryItem, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("item name is required")
	}

	if p.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if p.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	if _, err := ParseCategory(string(p.Category)); err != nil {
		return nil, err
	}

	if p.ReorderLevel < 0 {
		return nil, fmt.Errorf("reorder level cannot be negative")
	}

	existing, err := s.store.GetInventory(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}

	level := p.ReorderLevel
	if level == 0 {
		level = defaultReorderLevel
	}

	item := InventoryItem{
		ID:           len(existing) + 1,
		Name:         strings.TrimSpace(p.Name),
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		Category:     p.Category,
		ReorderLevel: level,
		Supplier:     orDefault(p.Supplier, defaultCustomer),
		Notes:        p.Notes,
		AddedDate:    orToday(p.AddedDate),
	}

	if err := s.store.AppendInventoryItem(ctx, username, item); err != nil {
		return nil, fmt.Errorf("appending inventory item: %w", err)
	}

	return &item, nil
}

func (s *Service) Inventory(ctx context.Context, username string) ([]InventoryItem, error) {
	return s.store.GetInventory(ctx, username)
}

func (s *Service) ReplaceInventory(ctx context.Context, username string, items []InventoryItem) error {
	return s.store.ReplaceInventory(ctx, username, items)
}

type OrderParams struct {
	Description string
	Amount      decimal.Decimal
	Customer    string
	Status      OrderStatus
	OrderDate   Date
	DueDate     Date
	Notes       string
}

func (s *Service) AddOrder(ctx context.Context, username string, p OrderParams) (*Order, error) {
	if strings.TrimSpace(p.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}

	if p.Amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	if _, err := ParseOrderStatus(string(p.Status)); err != nil {
		return nil, err
	}

	existing, err := s.store.GetOrders(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	order := Order{
		ID:          len(existing) + 1,
		Description: strings.TrimSpace(p.Description),
		Amount:      p.Amount,
		Customer:    orDefault(p.Customer, defaultCustomer),
		Status:      p.Status,
		OrderDate:   orToday(p.OrderDate),
		DueDate:     p.DueDate,
		Notes:       p.Notes,
	}

	if err := s.store.AppendOrder(ctx, username, order); err != nil {
		return nil, fmt.Errorf("appending order: %w", err)
	}

	return &order, nil
}

func (s *Service) Orders(ctx context.Context, username string) ([]Order, error) {
	return s.store.GetOrders(ctx, username)
}

func (s *Service) ReplaceOrders(ctx context.Context, username string, orders []Order) error {
	return s.store.ReplaceOrders(ctx, username, orders)
}

type DebtParams struct {
	Debtor   string
	Amount   decimal.Decimal
	Type     DebtType
	Status   DebtStatus
	DebtDate Date
	DueDate  Date
	Notes    string
}

func (s *Service) AddDebt(ctx context.Context, username string, p DebtParams) (*Debt, error) {
	if strings.TrimSpace(p.Debtor) == "" {
		return nil, fmt.Errorf("debtor name is required")
	}

	if p.Amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	if _, err := ParseDebtType(string(p.Type)); err != nil {
		return nil, err
	}

	if _, err := ParseDebtStatus(string(p.Status)); err != nil {
		return nil, err
	}

	existing, err := s.store.GetDebts(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading debts: %w", err)
	}

	debt := Debt{
		ID:       len(existing) + 1,
		Debtor:   strings.TrimSpace(p.Debtor),
		Amount:   p.Amount,
		Type:     p.Type,
		Status:   p.Status,
		DebtDate: orToday(p.DebtDate),
		DueDate:  p.DueDate,
		Notes:    p.Notes,
	}

	if err := s.store.AppendDebt(ctx, username, debt); err != nil {
		return nil, fmt.Errorf("appending debt: %w", err)
	}

	return &debt, nil
}

func (s *Service) Debts(ctx context.Context, username string) ([]Debt, error) {
	return s.store.GetDebts(ctx, username)
}

func (s *Service) ReplaceDebts(ctx context.Context, username string, debts []Debt) error {
	return s.store.ReplaceDebts(ctx, username, debts)
}

func orDefault(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}

	return s
}

func orToday(d Date) Date {
	if d.IsZero() {
		return Today()
	}

	return d
}
