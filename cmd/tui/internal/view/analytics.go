package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/analytics"
)

// dailyBarWidth is the widest revenue bar in the daily breakdown.
const dailyBarWidth = 24

type AnalyticsModel struct {
	CommonModel
	session          Session
	analyticsService *analytics.Service

	period     analytics.Period
	table      table.Model
	daily      []analytics.DailyStat
	projection decimal.Decimal
	hasStats   bool

	loading bool
	err     error
}

func NewAnalyticsModel(svc *analytics.Service, session Session) AnalyticsModel {
	columns := []table.Column{
		{Title: "Product", Width: 24},
		{Title: "Units", Width: 7},
		{Title: "Revenue", Width: 12},
		{Title: "Profit", Width: 12},
		{Title: "Margin %", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return AnalyticsModel{
		session:          session,
		analyticsService: svc,
		period:           analytics.PeriodAll,
		table:            t,
		loading:          true,
	}
}

func (m AnalyticsModel) Title() string { return "Analytics" }

func (m AnalyticsModel) ShortHelp() string {
	return "Esc: back | p: period | r: refresh"
}

func (m AnalyticsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.hasStats = len(msg.products) > 0
		m.projection = msg.projection
		m.daily = msg.daily
		m.table.SetRows(productRows(msg.products))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.period = nextPeriod(m.period)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func nextPeriod(p analytics.Period) analytics.Period {
	switch p {
	case analytics.PeriodWeek:
		return analytics.PeriodMonth
	case analytics.PeriodMonth:
		return analytics.PeriodQuarter
	case analytics.PeriodQuarter:
		return analytics.PeriodAll
	}

	return analytics.PeriodWeek
}

func productRows(products []analytics.ProductStat) []table.Row {
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, table.Row{
			p.Product,
			strconv.Itoa(p.Units),
			FormatMoney(p.Revenue),
			FormatMoney(p.Profit),
			p.Margin.StringFixed(1),
		})
	}

	return rows
}

func (m AnalyticsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Crunching numbers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if !m.hasStats {
		return lipgloss.NewStyle().Padding(2).Render("No sales recorded yet.\n\n(Esc to back)")
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("Product Performance")

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	projection := fmt.Sprintf("Projected 30-day revenue: %s",
		lipgloss.NewStyle().Bold(true).Render(FormatMoney(m.projection)))

	dailyHeader := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Daily Revenue (%s)", periodLabel(m.period)))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			tableView,
			"",
			projection,
			"",
			dailyHeader,
			m.dailyView(),
		),
	)
}

func periodLabel(p analytics.Period) string {
	switch p {
	case analytics.PeriodWeek:
		return "last 7 days"
	case analytics.PeriodMonth:
		return "last 30 days"
	case analytics.PeriodQuarter:
		return "last 90 days"
	}

	return "all time"
}

// dailyView renders the most recent days as scaled revenue bars.
func (m AnalyticsModel) dailyView() string {
	if len(m.daily) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No sales in this period.")
	}

	days := m.daily
	if len(days) > 10 {
		days = days[len(days)-10:]
	}

	max := decimal.Zero
	for _, d := range days {
		if d.Revenue.GreaterThan(max) {
			max = d.Revenue
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	lines := make([]string, 0, len(days))
	for _, d := range days {
		width := 0
		if max.IsPositive() {
			width = int(d.Revenue.Div(max).Mul(decimal.NewFromInt(dailyBarWidth)).IntPart())
		}

		// Pad outside the styled segment so ANSI codes don't skew alignment.
		bar := barStyle.Render(strings.Repeat("█", width)) + strings.Repeat(" ", dailyBarWidth-width)
		lines = append(lines, fmt.Sprintf("%s  %s %10s", FormatDate(d.Date), bar, FormatMoney(d.Revenue)))
	}

	return strings.Join(lines, "\n")
}

// Messages

type analyticsLoadedMsg struct {
	products   []analytics.ProductStat
	projection decimal.Decimal
	daily      []analytics.DailyStat
	err        error
}

func (m AnalyticsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.analyticsService.Products(ctx, m.session.Username)
		if err != nil {
			return analyticsLoadedMsg{err: err}
		}

		projection, err := m.analyticsService.Projection(ctx, m.session.Username)
		if err != nil {
			return analyticsLoadedMsg{err: err}
		}

		daily, err := m.analyticsService.Daily(ctx, m.session.Username, m.period)
		if err != nil {
			return analyticsLoadedMsg{err: err}
		}

		return analyticsLoadedMsg{products: products, projection: projection, daily: daily}
	}
}
