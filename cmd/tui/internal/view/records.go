package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

type recordsState int

const (
	recordsStateBrowse recordsState = iota
	recordsStateAdd
)

// RecordsModel is the browse-and-append screen shared by the four record
// collections. The collection decides the table columns, the add form and
// the summary footer.
type RecordsModel struct {
	CommonModel
	session       Session
	recordService *record.Service

	collection record.Collection
	state      recordsState
	table      table.Model
	form       *huh.Form

	summary string
	loading bool
	status  string
	err     error

	// Form bindings. The name and party fields change meaning per
	// collection (product/name/description/debtor, customer/supplier).
	formName     string
	formQuantity string
	formPrice    string
	formCost     string
	formParty    string
	formCategory string
	formReorder  string
	formStatus   string
	formType     string
	formDate     string
	formDue      string
	formNotes    string
}

func NewRecordsModel(recordSvc *record.Service, session Session, collection record.Collection) RecordsModel {
	t := table.New(
		table.WithColumns(recordColumns(collection)),
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

	return RecordsModel{
		session:       session,
		recordService: recordSvc,
		collection:    collection,
		table:         t,
		loading:       true,
	}
}

func recordColumns(c record.Collection) []table.Column {
	switch c {
	case record.CollectionInventory:
		return []table.Column{
			{Title: "ID", Width: 4},
			{Title: "Name", Width: 24},
			{Title: "Qty", Width: 6},
			{Title: "Price", Width: 10},
			{Title: "Category", Width: 14},
			{Title: "Reorder", Width: 8},
			{Title: "Supplier", Width: 18},
		}
	case record.CollectionOrders:
		return []table.Column{
			{Title: "ID", Width: 4},
			{Title: "Date", Width: 11},
			{Title: "Description", Width: 26},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 10},
			{Title: "Customer", Width: 14},
			{Title: "Due", Width: 11},
		}
	case record.CollectionDebts:
		return []table.Column{
			{Title: "ID", Width: 4},
			{Title: "Date", Width: 11},
			{Title: "Debtor", Width: 20},
			{Title: "Amount", Width: 10},
			{Title: "Type", Width: 11},
			{Title: "Status", Width: 14},
			{Title: "Due", Width: 11},
		}
	}

	return []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Date", Width: 11},
		{Title: "Product", Width: 22},
		{Title: "Qty", Width: 5},
		{Title: "Price", Width: 10},
		{Title: "Total", Width: 10},
		{Title: "Profit", Width: 10},
		{Title: "Customer", Width: 14},
	}
}

func (m RecordsModel) Title() string {
	switch m.collection {
	case record.CollectionInventory:
		return "Inventory"
	case record.CollectionOrders:
		return "Orders"
	case record.CollectionDebts:
		return "Debts"
	}

	return "Sales"
}

func (m RecordsModel) ShortHelp() string {
	if m.state == recordsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | r: refresh"
}

func (m RecordsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.summary = msg.summary
		m.table.SetRows(msg.rows)

		return m, nil

	case recordSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = recordsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case recordsStateBrowse:
		return m.updateBrowse(msg)
	case recordsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m RecordsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecordsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formQuantity = ""
	m.formPrice = ""
	m.formCost = ""
	m.formParty = ""
	m.formCategory = string(record.CategoryOther)
	m.formReorder = ""
	m.formStatus = "pending"
	m.formType = string(record.DebtReceivable)
	m.formDate = ""
	m.formDue = ""
	m.formNotes = ""

	switch m.collection {
	case record.CollectionInventory:
		m.form = m.buildInventoryForm()
	case record.CollectionOrders:
		m.form = m.buildOrderForm()
	case record.CollectionDebts:
		m.form = m.buildDebtForm()
	default:
		m.form = m.buildSaleForm()
	}

	m.state = recordsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m *RecordsModel) buildSaleForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("product").Title("Product").
				Value(&m.formName).Validate(requiredField("product")),
			huh.NewInput().Key("quantity").Title("Quantity").
				Value(&m.formQuantity).Validate(countField(1)),
			huh.NewInput().Key("unit_price").Title("Unit Price").
				Value(&m.formPrice).Validate(moneyField(false)),
			huh.NewInput().Key("cost").Title("Cost Per Unit").
				Placeholder("0").
				Value(&m.formCost).Validate(moneyField(true)),
			huh.NewInput().Key("customer").Title("Customer (optional)").
				Value(&m.formParty),
			huh.NewInput().Key("date").Title("Date").
				Placeholder("today").
				Value(&m.formDate).Validate(dateField),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *RecordsModel) buildInventoryForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Item Name").
				Value(&m.formName).Validate(requiredField("item name")),
			huh.NewInput().Key("quantity").Title("Quantity").
				Value(&m.formQuantity).Validate(countField(0)),
			huh.NewInput().Key("unit_price").Title("Unit Price").
				Value(&m.formPrice).Validate(moneyField(false)),
			huh.NewSelect[string]().Key("category").Title("Category").
				Options(
					huh.NewOption("Electronics", string(record.CategoryElectronics)),
					huh.NewOption("Clothing", string(record.CategoryClothing)),
					huh.NewOption("Food", string(record.CategoryFood)),
					huh.NewOption("Accessories", string(record.CategoryAccessories)),
					huh.NewOption("Raw Materials", string(record.CategoryRawMaterials)),
					huh.NewOption("Finished Goods", string(record.CategoryFinishedGoods)),
					huh.NewOption("Other", string(record.CategoryOther)),
				).
				Value(&m.formCategory),
			huh.NewInput().Key("reorder_level").Title("Reorder Level").
				Placeholder("10").
				Value(&m.formReorder).Validate(optionalCountField),
			huh.NewInput().Key("supplier").Title("Supplier (optional)").
				Value(&m.formParty),
			huh.NewInput().Key("notes").Title("Notes (optional)").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *RecordsModel) buildOrderForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("description").Title("Description").
				Value(&m.formName).Validate(requiredField("description")),
			huh.NewInput().Key("amount").Title("Amount").
				Value(&m.formPrice).Validate(moneyField(false)),
			huh.NewInput().Key("customer").Title("Customer (optional)").
				Value(&m.formParty),
			huh.NewSelect[string]().Key("status").Title("Status").
				Options(
					huh.NewOption("Pending", string(record.OrderPending)),
					huh.NewOption("Completed", string(record.OrderCompleted)),
					huh.NewOption("Cancelled", string(record.OrderCancelled)),
				).
				Value(&m.formStatus),
			huh.NewInput().Key("order_date").Title("Order Date").
				Placeholder("today").
				Value(&m.formDate).Validate(dateField),
			huh.NewInput().Key("due_date").Title("Due Date (optional)").
				Value(&m.formDue).Validate(dateField),
			huh.NewInput().Key("notes").Title("Notes (optional)").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *RecordsModel) buildDebtForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("debtor").Title("Debtor").
				Value(&m.formName).Validate(requiredField("debtor")),
			huh.NewInput().Key("amount").Title("Amount").
				Value(&m.formPrice).Validate(moneyField(false)),
			huh.NewSelect[string]().Key("type").Title("Type").
				Options(
					huh.NewOption("Owed to me", string(record.DebtReceivable)),
					huh.NewOption("I owe", string(record.DebtPayable)),
				).
				Value(&m.formType),
			huh.NewSelect[string]().Key("status").Title("Status").
				Options(
					huh.NewOption("Pending", string(record.DebtPending)),
					huh.NewOption("Partially Paid", string(record.DebtPartiallyPaid)),
					huh.NewOption("Paid", string(record.DebtPaid)),
				).
				Value(&m.formStatus),
			huh.NewInput().Key("debt_date").Title("Debt Date").
				Placeholder("today").
				Value(&m.formDate).Validate(dateField),
			huh.NewInput().Key("due_date").Title("Due Date (optional)").
				Value(&m.formDue).Validate(dateField),
			huh.NewInput().Key("notes").Title("Notes (optional)").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m RecordsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = recordsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m RecordsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Loading %s...", m.collection))
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == recordsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(fmt.Sprintf("Add %s\n\n%s", strings.TrimSuffix(m.Title(), "s"), m.form.View()))

		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(m.Title())

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := lipgloss.NewStyle().Faint(true).Render(m.summary)

	content := lipgloss.JoinVertical(lipgloss.Left, header, tableView, footer)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type recordsLoadedMsg struct {
	rows    []table.Row
	summary string
	err     error
}

func (m RecordsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch m.collection {
		case record.CollectionInventory:
			items, err := m.recordService.Inventory(ctx, m.session.Username)
			if err != nil {
				return recordsLoadedMsg{err: err}
			}

			return recordsLoadedMsg{rows: inventoryRows(items), summary: inventorySummary(items)}
		case record.CollectionOrders:
			orders, err := m.recordService.Orders(ctx, m.session.Username)
			if err != nil {
				return recordsLoadedMsg{err: err}
			}

			return recordsLoadedMsg{rows: orderRows(orders), summary: orderSummary(orders)}
		case record.CollectionDebts:
			debts, err := m.recordService.Debts(ctx, m.session.Username)
			if err != nil {
				return recordsLoadedMsg{err: err}
			}

			return recordsLoadedMsg{rows: debtRows(debts), summary: debtSummary(debts)}
		}

		sales, err := m.recordService.Sales(ctx, m.session.Username)
		if err != nil {
			return recordsLoadedMsg{err: err}
		}

		return recordsLoadedMsg{rows: saleRows(sales), summary: saleSummary(sales)}
	}
}

type recordSavedMsg struct {
	err error
}

// saveCmd reads the completed form through its keys. The value bindings only
// seed initial values; the form itself holds what the user typed.
func (m RecordsModel) saveCmd() tea.Cmd {
	form := m.form

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error

		switch m.collection {
		case record.CollectionInventory:
			_, err = m.recordService.AddInventoryItem(ctx, m.session.Username, record.InventoryParams{
				Name:         form.GetString("name"),
				Quantity:     countValue(form.GetString("quantity")),
				UnitPrice:    moneyValue(form.GetString("unit_price")),
				Category:     record.Category(form.GetString("category")),
				ReorderLevel: countValue(form.GetString("reorder_level")),
				Supplier:     form.GetString("supplier"),
				Notes:        form.GetString("notes"),
				AddedDate:    record.Today(),
			})
		case record.CollectionOrders:
			_, err = m.recordService.AddOrder(ctx, m.session.Username, record.OrderParams{
				Description: form.GetString("description"),
				Amount:      moneyValue(form.GetString("amount")),
				Customer:    form.GetString("customer"),
				Status:      record.OrderStatus(form.GetString("status")),
				OrderDate:   dateValue(form.GetString("order_date"), record.Today()),
				DueDate:     dateValue(form.GetString("due_date"), record.Date{}),
				Notes:       form.GetString("notes"),
			})
		case record.CollectionDebts:
			_, err = m.recordService.AddDebt(ctx, m.session.Username, record.DebtParams{
				Debtor:   form.GetString("debtor"),
				Amount:   moneyValue(form.GetString("amount")),
				Type:     record.DebtType(form.GetString("type")),
				Status:   record.DebtStatus(form.GetString("status")),
				DebtDate: dateValue(form.GetString("debt_date"), record.Today()),
				DueDate:  dateValue(form.GetString("due_date"), record.Date{}),
				Notes:    form.GetString("notes"),
			})
		default:
			_, err = m.recordService.AddSale(ctx, m.session.Username, record.SaleParams{
				Product:     form.GetString("product"),
				Quantity:    countValue(form.GetString("quantity")),
				UnitPrice:   moneyValue(form.GetString("unit_price")),
				CostPerUnit: moneyValue(form.GetString("cost")),
				Customer:    form.GetString("customer"),
				Date:        dateValue(form.GetString("date"), record.Today()),
			})
		}

		return recordSavedMsg{err: err}
	}
}

// Rows and summaries

func saleRows(sales []record.Sale) []table.Row {
	rows := make([]table.Row, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, table.Row{
			strconv.Itoa(s.ID),
			FormatDate(s.Date),
			s.Product,
			strconv.Itoa(s.Quantity),
			FormatMoney(s.UnitPrice),
			FormatMoney(s.TotalAmount),
			FormatMoney(s.Profit),
			s.Customer,
		})
	}

	return rows
}

func saleSummary(sales []record.Sale) string {
	var revenue, profit decimal.Decimal
	for _, s := range sales {
		revenue = revenue.Add(s.TotalAmount)
		profit = profit.Add(s.Profit)
	}

	return fmt.Sprintf("%d sales | revenue %s | profit %s", len(sales), FormatMoney(revenue), FormatMoney(profit))
}

func inventoryRows(items []record.InventoryItem) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, i := range items {
		qty := strconv.Itoa(i.Quantity)
		if i.LowStock() {
			qty += " !"
		}

		rows = append(rows, table.Row{
			strconv.Itoa(i.ID),
			i.Name,
			qty,
			FormatMoney(i.UnitPrice),
			string(i.Category),
			strconv.Itoa(i.ReorderLevel),
			i.Supplier,
		})
	}

	return rows
}

func inventorySummary(items []record.InventoryItem) string {
	var value decimal.Decimal
	low := 0
	for _, i := range items {
		value = value.Add(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
		if i.LowStock() {
			low++
		}
	}

	return fmt.Sprintf("%d items | stock value %s | %d low stock", len(items), FormatMoney(value), low)
}

func orderRows(orders []record.Order) []table.Row {
	rows := make([]table.Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, table.Row{
			strconv.Itoa(o.ID),
			FormatDate(o.OrderDate),
			o.Description,
			FormatMoney(o.Amount),
			string(o.Status),
			o.Customer,
			FormatDate(o.DueDate),
		})
	}

	return rows
}

func orderSummary(orders []record.Order) string {
	var pendingValue decimal.Decimal
	pending := 0
	for _, o := range orders {
		if o.Status == record.OrderPending {
			pending++
			pendingValue = pendingValue.Add(o.Amount)
		}
	}

	return fmt.Sprintf("%d orders | %d pending worth %s", len(orders), pending, FormatMoney(pendingValue))
}

func debtRows(debts []record.Debt) []table.Row {
	rows := make([]table.Row, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, table.Row{
			strconv.Itoa(d.ID),
			FormatDate(d.DebtDate),
			d.Debtor,
			FormatMoney(d.Amount),
			string(d.Type),
			string(d.Status),
			FormatDate(d.DueDate),
		})
	}

	return rows
}

func debtSummary(debts []record.Debt) string {
	var receivable, payable decimal.Decimal
	for _, d := range debts {
		if d.Status != record.DebtPending {
			continue
		}

		if d.Type == record.DebtReceivable {
			receivable = receivable.Add(d.Amount)
		} else {
			payable = payable.Add(d.Amount)
		}
	}

	return fmt.Sprintf("%d debts | pending receivable %s | pending payable %s | net %s",
		len(debts), FormatMoney(receivable), FormatMoney(payable), FormatMoney(receivable.Sub(payable)))
}

// Field validators shared by the add forms.

func countField(min int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < min {
			return fmt.Errorf("enter a whole number of at least %d", min)
		}

		return nil
	}
}

func optionalCountField(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return countField(0)(s)
}

func moneyField(optional bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if optional {
				return nil
			}

			return fmt.Errorf("amount is required")
		}

		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			return fmt.Errorf("enter a non-negative amount")
		}

		return nil
	}
}

func dateField(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := record.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func countValue(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func moneyValue(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}

	return d
}

func dateValue(s string, fallback record.Date) record.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}

	d, err := record.ParseDate(s)
	if err != nil {
		return fallback
	}

	return d
}
