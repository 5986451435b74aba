package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/shopsight/internal/account"
	"github.com/MrJamesThe3rd/shopsight/internal/admin"
	"github.com/MrJamesThe3rd/shopsight/internal/analytics"
	"github.com/MrJamesThe3rd/shopsight/internal/config"
	"github.com/MrJamesThe3rd/shopsight/internal/export"
	"github.com/MrJamesThe3rd/shopsight/internal/importer"
	"github.com/MrJamesThe3rd/shopsight/internal/matching"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
	"github.com/MrJamesThe3rd/shopsight/internal/store/flatfile"
	"github.com/MrJamesThe3rd/shopsight/internal/store/postgres"
)

type model struct {
	accountService   *account.Service
	recordService    *record.Service
	matchingService  *matching.Service
	importService    *importer.Service
	exportService    *export.Service
	analyticsService *analytics.Service
	adminService     *admin.Service

	session     view.Session
	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	salesView     view.RecordsModel
	inventoryView view.RecordsModel
	ordersView    view.RecordsModel
	debtsView     view.RecordsModel
	analyticsView view.AnalyticsModel
	importView    view.ImportModel
	exportView    view.ExportModel
	adminView     view.AdminModel
}

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewDashboard
	ViewSales
	ViewInventory
	ViewOrders
	ViewDebts
	ViewAnalytics
	ViewImport
	ViewExport
	ViewAdmin
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		accountRepo account.Repository
		recordStore record.Store
		aliasRepo   matching.Repository
	)

	switch cfg.Store.Backend {
	case "flatfile":
		db, err := flatfile.Open(cfg.Store.Dir)
		if err != nil {
			slog.Error("failed to open flat-file store", "dir", cfg.Store.Dir, "error", err)
			os.Exit(1)
		}

		accountRepo = flatfile.NewAccountStore(db)
		recordStore = flatfile.NewRecordStore(db)
		aliasRepo = flatfile.NewAliasStore(db)
	case "postgres":
		db, err := postgres.Connect(cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}

		if err := postgres.Bootstrap(context.Background(), db); err != nil {
			slog.Error("failed to bootstrap schema", "error", err)
			os.Exit(1)
		}

		accountRepo = postgres.NewAccountStore(db)
		recordStore = postgres.NewRecordStore(db)
		aliasRepo = postgres.NewAliasStore(db)
	default:
		slog.Error("unknown store backend", "backend", cfg.Store.Backend)
		os.Exit(1)
	}

	accountSvc := account.NewService(accountRepo)
	if err := accountSvc.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		slog.Error("failed to ensure admin account", "error", err)
		os.Exit(1)
	}

	recordSvc := record.NewService(recordStore)
	analyticsSvc := analytics.NewService(recordSvc, analytics.NewEngine(analytics.Thresholds{
		LowMargin:    decimal.NewFromFloat(cfg.Analytics.LowMargin),
		HighMargin:   decimal.NewFromFloat(cfg.Analytics.HighMargin),
		DebtRatio:    decimal.NewFromFloat(cfg.Analytics.DebtRatio),
		GrowthRatio:  decimal.NewFromFloat(cfg.Analytics.GrowthRatio),
		DeclineRatio: decimal.NewFromFloat(cfg.Analytics.DeclineRatio),
		LowStock:     cfg.Analytics.LowStock,
	}))

	return model{
		accountService:   accountSvc,
		recordService:    recordSvc,
		matchingService:  matching.NewService(aliasRepo),
		importService:    importer.NewService(),
		exportService:    export.NewService(recordSvc),
		analyticsService: analyticsSvc,
		adminService:     admin.NewService(accountSvc, recordSvc),
		currentView:      ViewLogin,
		loginView:        view.NewLoginModel(accountSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.LoginSuccessMsg:
		m.session = msg.Session
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		if m.currentView == ViewLogin {
			return m, tea.Quit
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.RecordsModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.RecordsModel)
	case ViewOrders:
		var newModel tea.Model
		newModel, cmd = m.ordersView.Update(msg)
		m.ordersView = newModel.(view.RecordsModel)
	case ViewDebts:
		var newModel tea.Model
		newModel, cmd = m.debtsView.Update(msg)
		m.debtsView = newModel.(view.RecordsModel)
	case ViewAnalytics:
		var newModel tea.Model
		newModel, cmd = m.analyticsView.Update(msg)
		m.analyticsView = newModel.(view.AnalyticsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewAdmin:
		var newModel tea.Model
		newModel, cmd = m.adminView.Update(msg)
		m.adminView = newModel.(view.AdminModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "l":
		m.session = view.Session{}
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.accountService)

		return m, m.loginView.Init()
	}

	if m.session.IsAdmin() {
		if msg.String() == "1" {
			m.currentView = ViewAdmin
			m.adminView = view.NewAdminModel(m.adminService)

			return m, m.adminView.Init()
		}

		return m, nil
	}

	switch msg.String() {
	case "1":
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.analyticsService, m.session)

		return m, m.dashboardView.Init()
	case "2":
		m.currentView = ViewSales
		m.salesView = view.NewRecordsModel(m.recordService, m.session, record.CollectionSales)

		return m, m.salesView.Init()
	case "3":
		m.currentView = ViewInventory
		m.inventoryView = view.NewRecordsModel(m.recordService, m.session, record.CollectionInventory)

		return m, m.inventoryView.Init()
	case "4":
		m.currentView = ViewOrders
		m.ordersView = view.NewRecordsModel(m.recordService, m.session, record.CollectionOrders)

		return m, m.ordersView.Init()
	case "5":
		m.currentView = ViewDebts
		m.debtsView = view.NewRecordsModel(m.recordService, m.session, record.CollectionDebts)

		return m, m.debtsView.Init()
	case "6":
		m.currentView = ViewAnalytics
		m.analyticsView = view.NewAnalyticsModel(m.analyticsService, m.session)

		return m, m.analyticsView.Init()
	case "7":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.recordService, m.importService, m.matchingService, m.session)

		return m, m.importView.Init()
	case "8":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.exportService, m.session)

		return m, m.exportView.Init()
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return m.menuView()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewSales:
		return m.salesView.View()
	case ViewInventory:
		return m.inventoryView.View()
	case ViewOrders:
		return m.ordersView.View()
	case ViewDebts:
		return m.debtsView.View()
	case ViewAnalytics:
		return m.analyticsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewAdmin:
		return m.adminView.View()
	}

	return "Unknown View"
}

func (m model) menuView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("ShopSight")

	who := fmt.Sprintf("%s (%s)", m.session.BusinessName, m.session.Username)
	if m.session.IsAdmin() {
		who = fmt.Sprintf("administrator (%s)", m.session.Username)
	}

	header := title + "\n" + lipgloss.NewStyle().Faint(true).Render(who)

	if m.session.IsAdmin() {
		return lipgloss.NewStyle().Padding(2).Render(
			header + "\n\n" +
				"1. Platform Overview\n\n" +
				"l. Logout\n" +
				"q. Quit",
		)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		header + "\n\n" +
			"1. Dashboard\n" +
			"2. Sales\n" +
			"3. Inventory\n" +
			"4. Orders\n" +
			"5. Debts\n" +
			"6. Analytics\n" +
			"7. Import Sales CSV\n" +
			"8. Export Records\n\n" +
			"l. Logout\n" +
			"q. Quit",
	)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
