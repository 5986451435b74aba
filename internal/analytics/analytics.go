package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// Severity classifies an insight for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Insight is a threshold-triggered observation about the business.
type Insight struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// Metrics aggregates a business's records into headline figures.
// ProfitMargin is a percentage and 0 when there is no revenue.
type Metrics struct {
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	ProfitMargin       decimal.Decimal `json:"profit_margin"`
	InventoryValue     decimal.Decimal `json:"inventory_value"`
	PendingOrdersValue decimal.Decimal `json:"pending_orders_value"`
	TotalDebts         decimal.Decimal `json:"total_debts"`
	SalesCount         int             `json:"sales_count"`
}

// NetPosition is revenue minus pending debts.
func (m *Metrics) NetPosition() decimal.Decimal {
	return m.TotalRevenue.Sub(m.TotalDebts)
}

// ProductStat summarizes one product across all its sales.
type ProductStat struct {
	Product string          `json:"product"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
	Margin  decimal.Decimal `json:"margin"`
}

// ProductPerformance groups sales by product and returns stats sorted by
// revenue, highest first. Products with equal revenue keep first-sale order.
// Returns nil when there are no sales.
func ProductPerformance(sales []record.Sale) []ProductStat {
	if len(sales) == 0 {
		return nil
	}

	index := make(map[string]int)
	var stats []ProductStat

	for _, s := range sales {
		i, ok := index[s.Product]
		if !ok {
			i = len(stats)
			index[s.Product] = i
			stats = append(stats, ProductStat{Product: s.Product})
		}

		stats[i].Units += s.Quantity
		stats[i].Revenue = stats[i].Revenue.Add(s.TotalAmount)
		stats[i].Profit = stats[i].Profit.Add(s.Profit)
	}

	hundred := decimal.NewFromInt(100)
	for i := range stats {
		if stats[i].Revenue.IsPositive() {
			stats[i].Margin = stats[i].Profit.Mul(hundred).Div(stats[i].Revenue).Round(2)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue.GreaterThan(stats[j].Revenue)
	})

	return stats
}

// DailyStat is one calendar day's revenue and profit.
type DailyStat struct {
	Date    record.Date     `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// DailyRevenue groups sales by calendar day, oldest first.
func DailyRevenue(sales []record.Sale) []DailyStat {
	if len(sales) == 0 {
		return nil
	}

	index := make(map[string]int)
	var stats []DailyStat

	for _, s := range sales {
		key := s.Date.String()
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, DailyStat{Date: s.Date})
		}

		stats[i].Revenue = stats[i].Revenue.Add(s.TotalAmount)
		stats[i].Profit = stats[i].Profit.Add(s.Profit)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date.Before(stats[j].Date.Time)
	})

	return stats
}

// Period selects how far back an analysis reaches.
type Period string

const (
	PeriodWeek    Period = "7d"
	PeriodMonth   Period = "30d"
	PeriodQuarter Period = "90d"
	PeriodAll     Period = "all"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodAll:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodQuarter:
		return 90
	default:
		return 0
	}
}

// FilterSalesByPeriod keeps sales dated within the period ending at now.
// PeriodAll returns the input unchanged.
func FilterSalesByPeriod(sales []record.Sale, p Period, now time.Time) []record.Sale {
	if p == PeriodAll {
		return sales
	}

	cutoff := now.AddDate(0, 0, -p.Days())

	var filtered []record.Sale
	for _, s := range sales {
		if !s.Date.Before(cutoff) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}
