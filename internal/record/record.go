package record

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Collection identifies one of the per-account record lists.
type Collection string

const (
	CollectionSales     Collection = "sales"
	CollectionInventory Collection = "inventory"
	CollectionOrders    Collection = "orders"
	CollectionDebts     Collection = "debts"
)

func ParseCollection(s string) (Collection, error) {
	switch Collection(s) {
	case CollectionSales, CollectionInventory, CollectionOrders, CollectionDebts:
		return Collection(s), nil
	}

	return "", fmt.Errorf("unknown collection %q", s)
}

// OrderStatus represents the lifecycle state of a customer order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderCompleted, OrderCancelled:
		return OrderStatus(s), nil
	}

	return "", fmt.Errorf("unknown order status %q", s)
}

// DebtStatus represents how much of a debt has been settled.
type DebtStatus string

const (
	DebtPending       DebtStatus = "pending"
	DebtPartiallyPaid DebtStatus = "partially_paid"
	DebtPaid          DebtStatus = "paid"
)

func ParseDebtStatus(s string) (DebtStatus, error) {
	switch DebtStatus(s) {
	case DebtPending, DebtPartiallyPaid, DebtPaid:
		return DebtStatus(s), nil
	}

	return "", fmt.Errorf("unknown debt status %q", s)
}

// DebtType distinguishes money owed to the business from money it owes.
type DebtType string

const (
	DebtReceivable DebtType = "receivable"
	DebtPayable    DebtType = "payable"
)

func ParseDebtType(s string) (DebtType, error) {
	switch DebtType(s) {
	case DebtReceivable, DebtPayable:
		return DebtType(s), nil
	}

	return "", fmt.Errorf("unknown debt type %q", s)
}

// Category classifies inventory items.
type Category string

const (
	CategoryElectronics   Category = "electronics"
	CategoryClothing      Category = "clothing"
	CategoryFood          Category = "food"
	CategoryAccessories   Category = "accessories"
	CategoryRawMaterials  Category = "raw_materials"
	CategoryFinishedGoods Category = "finished_goods"
	CategoryOther         Category = "other"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryElectronics, CategoryClothing, CategoryFood, CategoryAccessories,
		CategoryRawMaterials, CategoryFinishedGoods, CategoryOther:
		return Category(s), nil
	}

	return "", fmt.Errorf("unknown category %q", s)
}

// Sale is one completed sale. TotalAmount, Cost and Profit are derived at
// append time and never accepted from callers.
type Sale struct {
	ID          int             `json:"id"`
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Cost        decimal.Decimal `json:"cost"`
	Profit      decimal.Decimal `json:"profit"`
	Customer    string          `json:"customer"`
	Date        Date            `json:"date"`
}

// InventoryItem is one stocked product.
type InventoryItem struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Category     Category        `json:"category"`
	ReorderLevel int             `json:"reorder_level"`
	Supplier     string          `json:"supplier"`
	Notes        string          `json:"notes,omitempty"`
	AddedDate    Date            `json:"added_date"`
}

// LowStock reports whether the item has fallen below its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Quantity < i.ReorderLevel
}

// Order is one customer order.
type Order struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Customer    string          `json:"customer"`
	Status      OrderStatus     `json:"status"`
	OrderDate   Date            `json:"order_date"`
	DueDate     Date            `json:"due_date"`
	Notes       string          `json:"notes,omitempty"`
}

// Debt is one receivable or payable.
type Debt struct {
	ID       int             `json:"id"`
	Debtor   string          `json:"debtor"`
	Amount   decimal.Decimal `json:"amount"`
	Type     DebtType        `json:"type"`
	Status   DebtStatus      `json:"status"`
	DebtDate Date            `json:"debt_date"`
	DueDate  Date            `json:"due_date"`
	Notes    string          `json:"notes,omitempty"`
}

// Date is a calendar date stored and serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now().UTC())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*d = Date{}
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}

	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
