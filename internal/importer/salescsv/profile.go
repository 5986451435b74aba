package salescsv

// costMode determines how the cost column is interpreted.
type costMode int

const (
	// costPerUnit means the cost column already holds the unit cost.
	costPerUnit costMode = iota
	// costTotal means the cost column holds the whole line's cost and must be
	// divided by the quantity.
	costTotal
)

// Profile describes the column layout of a sales CSV. Adding a new layout is
// just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	ProductCol  string
	QuantityCol string
	PriceCol    string
	CostMode    costMode
	CostCol     string // optional, zero cost when absent
	CustomerCol string // optional
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.ProductCol, p.QuantityCol, p.PriceCol}
}

// profiles is the ordered list of sales CSV layouts to try during
// auto-detection. More specific profiles should come first.
var profiles = []Profile{
	{
		Name:        "ledger",
		DateCol:     "date",
		ProductCol:  "product",
		QuantityCol: "quantity",
		PriceCol:    "unit_price",
		CostMode:    costTotal,
		CostCol:     "cost",
		CustomerCol: "customer",
	},
	{
		Name:        "spreadsheet",
		DateCol:     "Date",
		ProductCol:  "Product",
		QuantityCol: "Quantity",
		PriceCol:    "Unit Price",
		CostMode:    costPerUnit,
		CostCol:     "Cost Per Unit",
		CustomerCol: "Customer",
	},
}
