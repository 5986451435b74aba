package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/shopsight/internal/importer"
	"github.com/MrJamesThe3rd/shopsight/internal/matching"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStateReview
	importStateSaving
	importStateResult
)

type aliasPair struct {
	pattern string
	product string
}

// ImportModel drives the CSV import flow: pick a file, review each parsed
// sale with an alias suggestion for the product name, then append the
// accepted rows in one batch.
type ImportModel struct {
	CommonModel
	session         Session
	recordService   *record.Service
	importService   *importer.Service
	matchingService *matching.Service

	state      importState
	filePicker filepicker.Model

	queue      []record.SaleParams
	current    record.SaleParams
	reviewing  bool
	accepted   []record.SaleParams
	renames    []aliasPair
	totalCount int

	productInput textinput.Model

	status string
	err    error
}

func NewImportModel(recordSvc *record.Service, impSvc *importer.Service, matchSvc *matching.Service, session Session) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	ti := textinput.New()
	ti.Placeholder = "Product"
	ti.Width = 40

	return ImportModel{
		session:         session,
		recordService:   recordSvc,
		importService:   impSvc,
		matchingService: matchSvc,
		filePicker:      fp,
		productInput:    ti,
	}
}

func (m ImportModel) Title() string { return "Import Sales" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateReview:
		return "Enter: accept | a: accept rest | s: skip | Esc: cancel"
	case importStateResult:
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateReview {
			return m.updateReview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.params) == 0 {
			m.state = importStateResult
			m.status = "No sales found in file."

			return m, nil
		}

		m.queue = msg.params
		m.totalCount = len(msg.params)
		m.accepted = nil
		m.renames = nil
		m.state = importStateReview
		m.nextParam()

		return m, textinput.Blink

	case importDoneMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error after %d rows: %v", msg.count, msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d sales.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.err = nil
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateReview, importStateResult:
		m.state = importStateFilePick
		m.queue = nil
		m.accepted = nil
		m.renames = nil
		m.reviewing = false
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.acceptCurrent(false)
	case "a":
		return m.acceptCurrent(true)
	case "s":
		if len(m.queue) == 0 {
			m.reviewing = false
			return m.finishReview()
		}

		m.nextParam()

		return m, nil
	}

	var cmd tea.Cmd
	m.productInput, cmd = m.productInput.Update(msg)

	return m, cmd
}

// acceptCurrent takes the edited product name for the row under review and,
// when rest is set, the suggested names for everything still queued.
func (m ImportModel) acceptCurrent(rest bool) (tea.Model, tea.Cmd) {
	p := m.current
	edited := m.productInput.Value()
	if edited != "" && edited != p.Product {
		m.renames = append(m.renames, aliasPair{pattern: p.Product, product: edited})
		p.Product = edited
	}

	m.accepted = append(m.accepted, p)

	if rest {
		ctx, cancel := DbCtx()
		defer cancel()

		for _, q := range m.queue {
			if s, _ := m.matchingService.Suggest(ctx, m.session.Username, q.Product); s != "" {
				q.Product = s
			}

			m.accepted = append(m.accepted, q)
		}

		m.queue = nil
	}

	if len(m.queue) == 0 {
		m.reviewing = false
		return m.finishReview()
	}

	m.nextParam()

	return m, nil
}

func (m ImportModel) finishReview() (tea.Model, tea.Cmd) {
	if len(m.accepted) == 0 {
		m.state = importStateResult
		m.status = "Nothing to import."

		return m, nil
	}

	m.state = importStateSaving
	m.status = fmt.Sprintf("Saving %d sales...", len(m.accepted))

	return m, m.saveCmd()
}

// nextParam pops the head of the queue and pre-fills the product input with
// a learned alias when one matches.
func (m *ImportModel) nextParam() {
	if len(m.queue) == 0 {
		m.reviewing = false
		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.reviewing = true

	reviewed := m.totalCount - len(m.queue)
	m.status = fmt.Sprintf("Reviewing %d/%d", reviewed, m.totalCount)

	suggestion := ""
	if m.current.Product != "" {
		ctx, cancel := DbCtx()
		defer cancel()

		s, _ := m.matchingService.Suggest(ctx, m.session.Username, m.current.Product)
		suggestion = s
	}

	if suggestion == "" {
		suggestion = m.current.Product
	}

	m.productInput.SetValue(suggestion)
	m.productInput.Focus()
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a sales CSV to import:\n\n%s", m.filePicker.View()),
		)

	case importStateParsing, importStateSaving:
		return lipgloss.NewStyle().Padding(2).Render(m.status)

	case importStateReview:
		return m.viewReview()

	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewReview() string {
	if !m.reviewing {
		return ""
	}

	info := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Date: %s  |  Qty: %d  |  Price: %s\nFrom file: %s",
			FormatDate(m.current.Date),
			m.current.Quantity,
			FormatMoney(m.current.UnitPrice),
			m.current.Product,
		))

	return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
		"%s\n\n%s\n\nProduct name:\n%s\n\n(Enter to accept, 'a' accept rest, 's' skip, Esc to cancel)",
		m.status, info, m.productInput.View(),
	))
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type parseResultMsg struct {
	params []record.SaleParams
	err    error
}

type importDoneMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(f)

		return parseResultMsg{params: params, err: err}
	}
}

func (m ImportModel) saveCmd() tea.Cmd {
	accepted := m.accepted
	renames := m.renames

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		for _, r := range renames {
			_ = m.matchingService.Learn(ctx, m.session.Username, r.pattern, r.product)
		}

		count := 0
		for _, p := range accepted {
			if _, err := m.recordService.AddSale(ctx, m.session.Username, p); err != nil {
				return importDoneMsg{count: count, err: err}
			}

			count++
		}

		return importDoneMsg{count: count}
	}
}
