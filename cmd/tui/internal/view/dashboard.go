package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/shopsight/internal/analytics"
)

type DashboardModel struct {
	CommonModel
	session          Session
	analyticsService *analytics.Service

	metrics  *analytics.Metrics
	insights []analytics.Insight
	loading  bool
	err      error
}

func NewDashboardModel(svc *analytics.Service, session Session) DashboardModel {
	return DashboardModel{
		session:          session,
		analyticsService: svc,
		loading:          true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.metrics = msg.metrics
		m.insights = msg.insights

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).
		Render(m.session.BusinessName)

	body := lipgloss.NewStyle().Faint(true).Render("No sales recorded yet. Add a sale to see your numbers.")
	if m.metrics != nil {
		topRow := lipgloss.JoinHorizontal(lipgloss.Top,
			kpiCard("Revenue", FormatMoney(m.metrics.TotalRevenue)),
			kpiCard("Profit", FormatMoney(m.metrics.TotalProfit)),
			kpiCard("Margin", m.metrics.ProfitMargin.StringFixed(1)+"%"),
			kpiCard("Sales", fmt.Sprintf("%d", m.metrics.SalesCount)),
		)
		bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
			kpiCard("Stock Value", FormatMoney(m.metrics.InventoryValue)),
			kpiCard("Pending Orders", FormatMoney(m.metrics.PendingOrdersValue)),
			kpiCard("Pending Debts", FormatMoney(m.metrics.TotalDebts)),
			kpiCard("Net Position", FormatMoney(m.metrics.NetPosition())),
		)
		body = lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
	}

	feed := lipgloss.NewStyle().Faint(true).Render("No insights yet.")
	if len(m.insights) > 0 {
		lines := make([]string, 0, len(m.insights))
		for _, in := range m.insights {
			lines = append(lines, insightLine(in))
		}

		feed = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			body,
			"",
			lipgloss.NewStyle().Bold(true).Render("Insights"),
			feed,
		),
	)
}

func kpiCard(label, value string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(18).
		Render(
			lipgloss.NewStyle().Faint(true).Render(label) + "\n" +
				lipgloss.NewStyle().Bold(true).Render(value),
		)
}

func insightLine(in analytics.Insight) string {
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color(severityColor(in.Severity))).Render("●")
	title := lipgloss.NewStyle().Bold(true).Render(in.Title)

	return fmt.Sprintf("%s %s\n  %s", marker, title, lipgloss.NewStyle().Faint(true).Render(in.Message))
}

func severityColor(s analytics.Severity) string {
	switch s {
	case analytics.SeveritySuccess:
		return "46"
	case analytics.SeverityWarning:
		return "214"
	case analytics.SeverityError:
		return "196"
	}

	return "63"
}

// Messages

type dashboardLoadedMsg struct {
	metrics  *analytics.Metrics
	insights []analytics.Insight
	err      error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		metrics, err := m.analyticsService.Metrics(ctx, m.session.Username)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		insights, err := m.analyticsService.Insights(ctx, m.session.Username)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{metrics: metrics, insights: insights}
	}
}
