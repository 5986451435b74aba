package analytics

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// Thresholds are the tuning knobs for insight generation.
type Thresholds struct {
	LowMargin    decimal.Decimal
	HighMargin   decimal.Decimal
	DebtRatio    decimal.Decimal
	GrowthRatio  decimal.Decimal
	DeclineRatio decimal.Decimal
	LowStock     int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		LowMargin:    decimal.NewFromInt(20),
		HighMargin:   decimal.NewFromInt(40),
		DebtRatio:    decimal.NewFromFloat(0.3),
		GrowthRatio:  decimal.NewFromFloat(1.2),
		DeclineRatio: decimal.NewFromFloat(0.8),
		LowStock:     10,
	}
}

// Engine derives metrics and insights from a business's records. All methods
// are pure functions of their inputs.
type Engine struct {
	t Thresholds
}

func NewEngine(t Thresholds) *Engine {
	return &Engine{t: t}
}

var hundred = decimal.NewFromInt(100)

// trendWindow is the number of records each end of the trend comparison uses,
// and the minimum for the revenue projection.
const trendWindow = 7

// Compute aggregates the records into metrics. Returns nil when there are no
// sales, which callers must treat as "no data yet" rather than an error.
func (e *Engine) Compute(sales []record.Sale, inventory []record.InventoryItem, orders []record.Order, debts []record.Debt) *Metrics {
	if len(sales) == 0 {
		return nil
	}

	m := &Metrics{SalesCount: len(sales)}

	for _, s := range sales {
		m.TotalRevenue = m.TotalRevenue.Add(s.TotalAmount)
		m.TotalCost = m.TotalCost.Add(s.Cost)
	}

	m.TotalProfit = m.TotalRevenue.Sub(m.TotalCost)
	if m.TotalRevenue.IsPositive() {
		m.ProfitMargin = m.TotalProfit.Mul(hundred).Div(m.TotalRevenue)
	}

	for _, item := range inventory {
		m.InventoryValue = m.InventoryValue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	for _, o := range orders {
		if o.Status == record.OrderPending {
			m.PendingOrdersValue = m.PendingOrdersValue.Add(o.Amount)
		}
	}

	for _, d := range debts {
		if d.Status == record.DebtPending {
			m.TotalDebts = m.TotalDebts.Add(d.Amount)
		}
	}

	return m
}

// Insights evaluates each rule against the metrics and appends a message per
// triggered rule, in a fixed display order. Returns nil when m is nil.
func (e *Engine) Insights(m *Metrics, sales []record.Sale, inventory []record.InventoryItem) []Insight {
	if m == nil {
		return nil
	}

	var insights []Insight

	unitsByProduct := make(map[string]int)
	var productOrder []string
	for _, s := range sales {
		if _, seen := unitsByProduct[s.Product]; !seen {
			productOrder = append(productOrder, s.Product)
		}

		unitsByProduct[s.Product] += s.Quantity
	}

	if len(productOrder) > 0 {
		best := productOrder[0]
		for _, p := range productOrder[1:] {
			if unitsByProduct[p] > unitsByProduct[best] {
				best = p
			}
		}

		insights = append(insights, Insight{
			Severity: SeveritySuccess,
			Title:    "Top Performer",
			Message:  fmt.Sprintf("'%s' is your best-seller with %d units sold!", best, unitsByProduct[best]),
		})
	}

	if m.ProfitMargin.LessThan(e.t.LowMargin) {
		insights = append(insights, Insight{
			Severity: SeverityWarning,
			Title:    "Low Profit Margin",
			Message:  fmt.Sprintf("Your profit margin is %s%%. Consider reviewing pricing or reducing costs.", m.ProfitMargin.StringFixed(1)),
		})
	} else if m.ProfitMargin.GreaterThan(e.t.HighMargin) {
		insights = append(insights, Insight{
			Severity: SeveritySuccess,
			Title:    "Excellent Margins",
			Message:  fmt.Sprintf("Outstanding profit margin of %s%%! Keep up the good work.", m.ProfitMargin.StringFixed(1)),
		})
	}

	if trend := e.trendInsight(sales); trend != nil {
		insights = append(insights, *trend)
	}

	if m.TotalDebts.GreaterThan(m.TotalRevenue.Mul(e.t.DebtRatio)) {
		insights = append(insights, Insight{
			Severity: SeverityError,
			Title:    "High Debt Alert",
			Message:  fmt.Sprintf("Pending debts (%s) are over 30%% of revenue. Prioritize collections.", m.TotalDebts.StringFixed(2)),
		})
	}

	if low := e.lowStockInsight(inventory); low != nil {
		insights = append(insights, *low)
	}

	if len(productOrder) < 3 {
		insights = append(insights, Insight{
			Severity: SeverityInfo,
			Title:    "Product Diversity",
			Message:  fmt.Sprintf("You're selling %d product(s). Consider expanding your product range to attract more customers.", len(productOrder)),
		})
	}

	return insights
}

// trendInsight compares the mean revenue of the last trendWindow sales
// against the first trendWindow, in insertion order. Needs more than
// trendWindow records; skipped when the older window has no revenue to
// compare against.
func (e *Engine) trendInsight(sales []record.Sale) *Insight {
	if len(sales) < trendWindow+1 {
		return nil
	}

	recent := meanTotal(sales[len(sales)-trendWindow:])
	older := meanTotal(sales[:trendWindow])

	if older.IsZero() {
		return nil
	}

	switch {
	case recent.GreaterThanOrEqual(older.Mul(e.t.GrowthRatio)):
		pct := recent.Div(older).Sub(decimal.NewFromInt(1)).Mul(hundred)
		return &Insight{
			Severity: SeveritySuccess,
			Title:    "Growth Trend",
			Message:  fmt.Sprintf("Sales are trending up! Recent average is %s%% higher.", pct.StringFixed(1)),
		}
	case recent.LessThanOrEqual(older.Mul(e.t.DeclineRatio)):
		return &Insight{
			Severity: SeverityWarning,
			Title:    "Declining Sales",
			Message:  "Sales have decreased recently. Consider promotional activities or customer outreach.",
		}
	default:
		return nil
	}
}

// lowStockInsight flags items below the configured stock floor, naming at
// most three of them.
func (e *Engine) lowStockInsight(inventory []record.InventoryItem) *Insight {
	var low []string
	for _, item := range inventory {
		if item.Quantity < e.t.LowStock {
			low = append(low, item.Name)
		}
	}

	if len(low) == 0 {
		return nil
	}

	names := low
	more := ""
	if len(low) > 3 {
		names = low[:3]
		more = fmt.Sprintf(" and %d more", len(low)-3)
	}

	return &Insight{
		Severity: SeverityWarning,
		Title:    "Low Stock Alert",
		Message:  fmt.Sprintf("%d item(s) running low. Restock: %s%s", len(low), strings.Join(names, ", "), more),
	}
}

// PredictMonthlyRevenue projects the mean of the last trendWindow sale
// amounts over a 30-day month. Returns 0 when there are fewer than
// trendWindow sales. A flat-rate projection, not a forecast.
func (e *Engine) PredictMonthlyRevenue(sales []record.Sale) decimal.Decimal {
	if len(sales) < trendWindow {
		return decimal.Zero
	}

	return meanTotal(sales[len(sales)-trendWindow:]).Mul(decimal.NewFromInt(30))
}

func meanTotal(sales []record.Sale) decimal.Decimal {
	if len(sales) == 0 {
		return decimal.Zero
	}

	var sum decimal.Decimal
	for _, s := range sales {
		sum = sum.Add(s.TotalAmount)
	}

	return sum.Div(decimal.NewFromInt(int64(len(sales))))
}
