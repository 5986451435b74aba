package analytics_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/shopsight/internal/analytics"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

func sale(product string, qty int, unitPrice, costPerUnit float64) record.Sale {
	up := decimal.NewFromFloat(unitPrice)
	q := decimal.NewFromInt(int64(qty))
	total := q.Mul(up)
	cost := q.Mul(decimal.NewFromFloat(costPerUnit))

	return record.Sale{
		Product:     product,
		Quantity:    qty,
		UnitPrice:   up,
		TotalAmount: total,
		Cost:        cost,
		Profit:      total.Sub(cost),
		Date:        record.NewDate(2025, 6, 1),
	}
}

// saleAmount builds a single-unit sale with the given revenue and no cost.
func saleAmount(amount float64) record.Sale {
	return sale("Widget", 1, amount, 0)
}

func titles(insights []analytics.Insight) []string {
	var out []string
	for _, in := range insights {
		out = append(out, in.Title)
	}

	return out
}

func countSeverity(insights []analytics.Insight, sev analytics.Severity) int {
	n := 0
	for _, in := range insights {
		if in.Severity == sev {
			n++
		}
	}

	return n
}

func TestEngine_Compute_Totals(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	sales := []record.Sale{
		sale("Rice 5kg", 2, 120, 80),
		sale("Soap", 10, 2.50, 1.75),
		sale("Rice 5kg", 1, 120, 80),
	}

	inventory := []record.InventoryItem{
		{Name: "Rice 5kg", Quantity: 20, UnitPrice: decimal.NewFromInt(120)},
		{Name: "Soap", Quantity: 50, UnitPrice: decimal.NewFromFloat(2.50)},
	}

	orders := []record.Order{
		{Amount: decimal.NewFromInt(600), Status: record.OrderPending},
		{Amount: decimal.NewFromInt(150), Status: record.OrderCompleted},
		{Amount: decimal.NewFromInt(75), Status: record.OrderPending},
	}

	debts := []record.Debt{
		{Amount: decimal.NewFromInt(250), Status: record.DebtPending},
		{Amount: decimal.NewFromInt(90), Status: record.DebtPartiallyPaid},
		{Amount: decimal.NewFromInt(40), Status: record.DebtPaid},
	}

	m := engine.Compute(sales, inventory, orders, debts)
	require.NotNil(t, m)

	// 2*120 + 10*2.50 + 1*120 = 385
	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(385)), "revenue %s", m.TotalRevenue)
	// 2*80 + 10*1.75 + 1*80 = 257.50
	assert.True(t, m.TotalCost.Equal(decimal.NewFromFloat(257.50)), "cost %s", m.TotalCost)
	assert.True(t, m.TotalProfit.Equal(m.TotalRevenue.Sub(m.TotalCost)))
	assert.True(t, m.InventoryValue.Equal(decimal.NewFromInt(2525)), "inventory %s", m.InventoryValue)
	assert.True(t, m.PendingOrdersValue.Equal(decimal.NewFromInt(675)), "orders %s", m.PendingOrdersValue)
	// only strictly pending debts count
	assert.True(t, m.TotalDebts.Equal(decimal.NewFromInt(250)), "debts %s", m.TotalDebts)
	assert.Equal(t, 3, m.SalesCount)

	wantMargin := m.TotalProfit.Mul(decimal.NewFromInt(100)).Div(m.TotalRevenue)
	assert.True(t, m.ProfitMargin.Equal(wantMargin), "margin %s", m.ProfitMargin)
}

func TestEngine_Compute_ZeroRevenueMargin(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	m := engine.Compute([]record.Sale{sale("Sample", 1, 0, 0)}, nil, nil, nil)
	require.NotNil(t, m)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.ProfitMargin.IsZero())
}

func TestEngine_Compute_NoSales(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	inventory := []record.InventoryItem{{Name: "Soap", Quantity: 2}}
	debts := []record.Debt{{Amount: decimal.NewFromInt(500), Status: record.DebtPending}}

	assert.Nil(t, engine.Compute(nil, inventory, nil, debts))
	assert.Nil(t, engine.Insights(nil, nil, inventory))
}

func TestEngine_Compute_Idempotent(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	sales := []record.Sale{
		sale("Rice 5kg", 2, 120, 80),
		sale("Soap", 10, 2.50, 1.75),
	}
	inventory := []record.InventoryItem{{Name: "Soap", Quantity: 4, UnitPrice: decimal.NewFromFloat(2.50)}}

	m1 := engine.Compute(sales, inventory, nil, nil)
	m2 := engine.Compute(sales, inventory, nil, nil)
	assert.Equal(t, m1, m2)

	i1 := engine.Insights(m1, sales, inventory)
	i2 := engine.Insights(m2, sales, inventory)
	assert.Equal(t, i1, i2)
}

func TestEngine_Insights_TopPerformer(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	sales := []record.Sale{
		sale("Rice 5kg", 5, 120, 80),
		sale("Soap", 12, 2.50, 1.75),
		sale("Rice 5kg", 4, 120, 80),
		sale("Cooking Oil", 2, 9, 6),
	}

	m := engine.Compute(sales, nil, nil, nil)
	insights := engine.Insights(m, sales, nil)
	require.NotEmpty(t, insights)

	top := insights[0]
	assert.Equal(t, analytics.SeveritySuccess, top.Severity)
	assert.Equal(t, "Top Performer", top.Title)
	assert.Contains(t, top.Message, "'Soap'")
	assert.Contains(t, top.Message, "12 units")
}

func TestEngine_Insights_MarginThresholds(t *testing.T) {
	type testCase struct {
		name        string
		unitPrice   float64
		costPerUnit float64
		wantTitle   string
	}

	// margin = (price-cost)/price * 100
	tests := []testCase{
		{name: "LowMargin", unitPrice: 100, costPerUnit: 90, wantTitle: "Low Profit Margin"},
		{name: "HealthyMargin", unitPrice: 100, costPerUnit: 70, wantTitle: ""},
		{name: "HighMargin", unitPrice: 100, costPerUnit: 50, wantTitle: "Excellent Margins"},
		{name: "ExactlyLowThreshold", unitPrice: 100, costPerUnit: 80, wantTitle: ""},
		{name: "ExactlyHighThreshold", unitPrice: 100, costPerUnit: 60, wantTitle: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := analytics.NewEngine(analytics.DefaultThresholds())
			sales := []record.Sale{sale("Widget", 1, tt.unitPrice, tt.costPerUnit)}

			m := engine.Compute(sales, nil, nil, nil)
			insights := engine.Insights(m, sales, nil)

			got := titles(insights)
			if tt.wantTitle == "" {
				assert.NotContains(t, got, "Low Profit Margin")
				assert.NotContains(t, got, "Excellent Margins")

				return
			}

			assert.Contains(t, got, tt.wantTitle)
		})
	}
}

func TestEngine_Insights_GrowthTrend(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	// first seven average 100, last seven (records 4-10) average 150
	sales := []record.Sale{
		saleAmount(100), saleAmount(100), saleAmount(100), saleAmount(100),
		saleAmount(100), saleAmount(100), saleAmount(100),
		saleAmount(200), saleAmount(200), saleAmount(250),
	}

	m := engine.Compute(sales, nil, nil, nil)
	insights := engine.Insights(m, sales, nil)

	growth, decline := 0, 0
	var msg string
	for _, in := range insights {
		switch in.Title {
		case "Growth Trend":
			growth++
			msg = in.Message
		case "Declining Sales":
			decline++
		}
	}

	assert.Equal(t, 1, growth)
	assert.Equal(t, 0, decline)
	assert.Contains(t, msg, "50.0%")
}

func TestEngine_Insights_GrowthAtExactThreshold(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	// recent mean exactly 1.2x the older mean still counts as growth
	sales := []record.Sale{
		saleAmount(100), saleAmount(100), saleAmount(100), saleAmount(100),
		saleAmount(100), saleAmount(100), saleAmount(100),
		saleAmount(140), saleAmount(150), saleAmount(150),
	}

	m := engine.Compute(sales, nil, nil, nil)
	got := titles(engine.Insights(m, sales, nil))
	assert.Contains(t, got, "Growth Trend")
}

func TestEngine_Insights_DecliningTrend(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	// first seven average 100, last seven average exactly 80
	sales := []record.Sale{
		saleAmount(100), saleAmount(100), saleAmount(100), saleAmount(100),
		saleAmount(100), saleAmount(100), saleAmount(100),
		saleAmount(50), saleAmount(50), saleAmount(60),
	}

	m := engine.Compute(sales, nil, nil, nil)
	got := titles(engine.Insights(m, sales, nil))
	assert.Contains(t, got, "Declining Sales")
	assert.NotContains(t, got, "Growth Trend")
}

func TestEngine_Insights_TrendNeedsEightRecords(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	var sales []record.Sale
	for i := 0; i < 7; i++ {
		sales = append(sales, saleAmount(100+float64(i)*50))
	}

	m := engine.Compute(sales, nil, nil, nil)
	got := titles(engine.Insights(m, sales, nil))
	assert.NotContains(t, got, "Growth Trend")
	assert.NotContains(t, got, "Declining Sales")
}

func TestEngine_Insights_DebtAlert(t *testing.T) {
	type testCase struct {
		name      string
		debts     float64
		wantAlert bool
	}

	tests := []testCase{
		{name: "OverRatio", debts: 400, wantAlert: true},
		{name: "UnderRatio", debts: 200, wantAlert: false},
		{name: "ExactlyAtRatio", debts: 300, wantAlert: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := analytics.NewEngine(analytics.DefaultThresholds())

			sales := []record.Sale{saleAmount(1000)}
			debts := []record.Debt{{Amount: decimal.NewFromFloat(tt.debts), Status: record.DebtPending}}

			m := engine.Compute(sales, nil, nil, debts)
			insights := engine.Insights(m, sales, nil)

			if tt.wantAlert {
				assert.Equal(t, 1, countSeverity(insights, analytics.SeverityError))

				return
			}

			assert.Equal(t, 0, countSeverity(insights, analytics.SeverityError))
		})
	}
}

func TestEngine_Insights_LowStock(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	sales := []record.Sale{sale("Rice 5kg", 1, 120, 80)}
	inventory := []record.InventoryItem{
		{Name: "Rice 5kg", Quantity: 3},
		{Name: "Soap", Quantity: 2},
		{Name: "Cooking Oil", Quantity: 9},
		{Name: "Sugar 1kg", Quantity: 5},
		{Name: "Batteries AA", Quantity: 40},
	}

	m := engine.Compute(sales, inventory, nil, nil)
	insights := engine.Insights(m, sales, inventory)

	var alert *analytics.Insight
	for i := range insights {
		if insights[i].Title == "Low Stock Alert" {
			alert = &insights[i]
		}
	}

	require.NotNil(t, alert)
	assert.Equal(t, analytics.SeverityWarning, alert.Severity)
	assert.Contains(t, alert.Message, "4 item(s) running low")
	assert.Contains(t, alert.Message, "Rice 5kg, Soap, Cooking Oil")
	assert.Contains(t, alert.Message, "and 1 more")
	assert.NotContains(t, alert.Message, "Sugar 1kg")
	assert.NotContains(t, alert.Message, "Batteries AA")
}

func TestEngine_Insights_NoLowStock(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	sales := []record.Sale{sale("Rice 5kg", 1, 120, 80)}
	inventory := []record.InventoryItem{{Name: "Rice 5kg", Quantity: 30}}

	m := engine.Compute(sales, inventory, nil, nil)
	got := titles(engine.Insights(m, sales, inventory))
	assert.NotContains(t, got, "Low Stock Alert")
}

func TestEngine_Insights_ProductDiversity(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	t.Run("FewProducts", func(t *testing.T) {
		sales := []record.Sale{
			sale("Rice 5kg", 1, 120, 80),
			sale("Soap", 1, 2.50, 1.75),
		}

		m := engine.Compute(sales, nil, nil, nil)
		insights := engine.Insights(m, sales, nil)

		var diversity *analytics.Insight
		for i := range insights {
			if insights[i].Title == "Product Diversity" {
				diversity = &insights[i]
			}
		}

		require.NotNil(t, diversity)
		assert.Equal(t, analytics.SeverityInfo, diversity.Severity)
		assert.Contains(t, diversity.Message, "2 product(s)")
	})

	t.Run("EnoughProducts", func(t *testing.T) {
		sales := []record.Sale{
			sale("Rice 5kg", 1, 120, 80),
			sale("Soap", 1, 2.50, 1.75),
			sale("Cooking Oil", 1, 9, 6),
		}

		m := engine.Compute(sales, nil, nil, nil)
		got := titles(engine.Insights(m, sales, nil))
		assert.NotContains(t, got, "Product Diversity")
	})
}

func TestEngine_PredictMonthlyRevenue(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	t.Run("SixRecords", func(t *testing.T) {
		var sales []record.Sale
		for i := 0; i < 6; i++ {
			sales = append(sales, saleAmount(500))
		}

		assert.True(t, engine.PredictMonthlyRevenue(sales).IsZero())
	})

	t.Run("SevenRecords", func(t *testing.T) {
		var sales []record.Sale
		for i := 0; i < 7; i++ {
			sales = append(sales, saleAmount(10))
		}

		got := engine.PredictMonthlyRevenue(sales)
		assert.True(t, got.Equal(decimal.NewFromInt(300)), "projection %s", got)
	})

	t.Run("UsesLastSeven", func(t *testing.T) {
		sales := []record.Sale{saleAmount(9999)}
		for i := 0; i < 7; i++ {
			sales = append(sales, saleAmount(10))
		}

		got := engine.PredictMonthlyRevenue(sales)
		assert.True(t, got.Equal(decimal.NewFromInt(300)), "projection %s", got)
	})
}

func TestProductPerformance(t *testing.T) {
	sales := []record.Sale{
		sale("Soap", 10, 2.50, 1.75),
		sale("Rice 5kg", 2, 120, 80),
		sale("Soap", 4, 2.50, 1.75),
	}

	stats := analytics.ProductPerformance(sales)
	require.Len(t, stats, 2)

	// rice revenue 240 beats soap revenue 35
	assert.Equal(t, "Rice 5kg", stats[0].Product)
	assert.Equal(t, 2, stats[0].Units)
	assert.True(t, stats[0].Revenue.Equal(decimal.NewFromInt(240)))

	assert.Equal(t, "Soap", stats[1].Product)
	assert.Equal(t, 14, stats[1].Units)
	assert.True(t, stats[1].Revenue.Equal(decimal.NewFromInt(35)))
	assert.True(t, stats[1].Margin.Equal(decimal.NewFromFloat(30)), "margin %s", stats[1].Margin)

	assert.Nil(t, analytics.ProductPerformance(nil))
}

func TestDailyRevenue(t *testing.T) {
	withDate := func(s record.Sale, d record.Date) record.Sale {
		s.Date = d
		return s
	}

	sales := []record.Sale{
		withDate(saleAmount(100), record.NewDate(2025, 6, 2)),
		withDate(saleAmount(50), record.NewDate(2025, 6, 1)),
		withDate(saleAmount(25), record.NewDate(2025, 6, 2)),
	}

	stats := analytics.DailyRevenue(sales)
	require.Len(t, stats, 2)
	assert.Equal(t, "2025-06-01", stats[0].Date.String())
	assert.True(t, stats[0].Revenue.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "2025-06-02", stats[1].Date.String())
	assert.True(t, stats[1].Revenue.Equal(decimal.NewFromInt(125)))
}

func TestFilterSalesByPeriod(t *testing.T) {
	now := record.NewDate(2025, 6, 30).Time

	old := saleAmount(100)
	old.Date = record.NewDate(2025, 5, 1)
	recent := saleAmount(200)
	recent.Date = record.NewDate(2025, 6, 28)

	sales := []record.Sale{old, recent}

	got := analytics.FilterSalesByPeriod(sales, analytics.PeriodWeek, now)
	require.Len(t, got, 1)
	assert.True(t, got[0].TotalAmount.Equal(decimal.NewFromInt(200)))

	assert.Len(t, analytics.FilterSalesByPeriod(sales, analytics.PeriodMonth, now), 1)
	assert.Len(t, analytics.FilterSalesByPeriod(sales, analytics.PeriodQuarter, now), 2)
	assert.Len(t, analytics.FilterSalesByPeriod(sales, analytics.PeriodAll, now), 2)
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"7d", "30d", "90d", "all"} {
		t.Run(valid, func(t *testing.T) {
			got, err := analytics.ParsePeriod(valid)
			require.NoError(t, err)
			assert.Equal(t, analytics.Period(valid), got)
		})
	}

	_, err := analytics.ParsePeriod("1y")
	assert.Error(t, err)
}

func TestEngine_MarginIdentity(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultThresholds())

	for i, sales := range [][]record.Sale{
		{sale("A", 3, 19.99, 12.50)},
		{sale("A", 1, 100, 40), sale("B", 7, 3.25, 3.25)},
		{sale("A", 2, 0, 5)},
	} {
		t.Run(fmt.Sprintf("Case%d", i), func(t *testing.T) {
			m := engine.Compute(sales, nil, nil, nil)
			require.NotNil(t, m)

			assert.True(t, m.TotalProfit.Equal(m.TotalRevenue.Sub(m.TotalCost)))

			if m.TotalRevenue.IsZero() {
				assert.True(t, m.ProfitMargin.IsZero())

				return
			}

			want := m.TotalProfit.Mul(decimal.NewFromInt(100)).Div(m.TotalRevenue)
			assert.True(t, m.ProfitMargin.Equal(want))
		})
	}
}
