package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/shopsight/internal/admin"
)

// AdminModel shows the platform overview across all registered businesses.
type AdminModel struct {
	CommonModel
	adminService *admin.Service

	table    table.Model
	overview *admin.Overview

	loading bool
	status  string
	err     error
}

func NewAdminModel(adminSvc *admin.Service) AdminModel {
	columns := []table.Column{
		{Title: "Username", Width: 14},
		{Title: "Business", Width: 22},
		{Title: "Type", Width: 14},
		{Title: "Sales", Width: 7},
		{Title: "Revenue", Width: 12},
		{Title: "Registered", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return AdminModel{
		adminService: adminSvc,
		table:        t,
		loading:      true,
	}
}

func (m AdminModel) Title() string { return "Platform Overview" }

func (m AdminModel) ShortHelp() string { return "Esc: back | e: export CSV | r: refresh" }

func (m AdminModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AdminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adminLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.overview = msg.overview
		m.table.SetRows(msg.rows)

		return m, nil

	case adminExportMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Exported to %s", msg.path)
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "e":
			return m, m.exportCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AdminModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading platform figures...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("Platform Overview")

	summary := ""
	if m.overview != nil {
		summary = lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(
			"%d businesses | %d sales records | %d new today | %d new this week",
			m.overview.Businesses,
			m.overview.SalesRecords,
			m.overview.RegisteredToday,
			m.overview.RegisteredWeek,
		))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left, header, summary, tableView)

	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type adminLoadedMsg struct {
	overview *admin.Overview
	rows     []table.Row
	err      error
}

func (m AdminModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		overview, err := m.adminService.Overview(ctx)
		if err != nil {
			return adminLoadedMsg{err: err}
		}

		businesses, err := m.adminService.Businesses(ctx)
		if err != nil {
			return adminLoadedMsg{err: err}
		}

		rows := make([]table.Row, 0, len(businesses))
		for _, b := range businesses {
			rows = append(rows, table.Row{
				b.Username,
				b.BusinessName,
				string(b.BusinessType),
				strconv.Itoa(b.Sales),
				FormatMoney(b.Revenue),
				b.Registered.Format(time.DateOnly),
			})
		}

		return adminLoadedMsg{overview: overview, rows: rows}
	}
}

type adminExportMsg struct {
	path string
	err  error
}

func (m AdminModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll("./exports", 0o755); err != nil {
			return adminExportMsg{err: err}
		}

		path := filepath.Join("./exports", admin.Filename())

		f, err := os.Create(path)
		if err != nil {
			return adminExportMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.adminService.WriteCSV(ctx, f); err != nil {
			f.Close()
			return adminExportMsg{err: err}
		}

		if err := f.Close(); err != nil {
			return adminExportMsg{err: err}
		}

		return adminExportMsg{path: path}
	}
}
