package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
)

type loginState int

const (
	loginStateChoose loginState = iota
	loginStateForm
	loginStateSubmitting
)

type LoginModel struct {
	CommonModel
	accountService *account.Service

	state    loginState
	register bool
	cursor   int

	form *huh.Form
	err  error

	// Form bindings
	formUsername     string
	formPassword     string
	formBusinessName string
	formBusinessType string
}

func NewLoginModel(accSvc *account.Service) LoginModel {
	return LoginModel{accountService: accSvc}
}

func (m LoginModel) Title() string { return "Sign In" }

func (m LoginModel) ShortHelp() string {
	switch m.state {
	case loginStateForm:
		return "Navigate form | Esc: back"
	case loginStateSubmitting:
		return "Signing in..."
	}

	return "Esc: quit | Enter: select"
}

func (m LoginModel) Init() tea.Cmd {
	return nil
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		if result.err != nil {
			m.err = result.err
			m.state = loginStateChoose

			return m, nil
		}

		session := Session{
			Username:     result.acc.Username,
			BusinessName: result.acc.BusinessName,
			Role:         result.acc.Role,
		}

		return m, func() tea.Msg {
			return LoginSuccessMsg{Session: session}
		}
	}

	switch m.state {
	case loginStateChoose:
		return m.updateChoose(msg)
	case loginStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m LoginModel) updateChoose(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return m, Back
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < 1 {
			m.cursor++
		}
	case tea.KeyEnter:
		m.register = m.cursor == 1
		m.err = nil

		return m.enterForm()
	}

	return m, nil
}

func (m LoginModel) enterForm() (tea.Model, tea.Cmd) {
	m.formUsername = ""
	m.formPassword = ""
	m.formBusinessName = ""
	m.formBusinessType = string(account.BusinessRetailShop)

	if m.register {
		m.form = m.buildRegisterForm()
	} else {
		m.form = m.buildLoginForm()
	}

	m.state = loginStateForm

	return m, m.form.Init()
}

func (m *LoginModel) buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.formUsername).
				Validate(requiredField("username")),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(requiredField("password")),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m *LoginModel) buildRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.formUsername).
				Validate(requiredField("username")),

			huh.NewInput().
				Key("password").
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(func(s string) error {
					if len(s) < 6 {
						return fmt.Errorf("password must be at least 6 characters")
					}
					return nil
				}),

			huh.NewInput().
				Key("business_name").
				Title("Business Name").
				Value(&m.formBusinessName).
				Validate(requiredField("business name")),

			huh.NewSelect[string]().
				Key("business_type").
				Title("Business Type").
				Options(
					huh.NewOption("Retail Shop", string(account.BusinessRetailShop)),
					huh.NewOption("Restaurant", string(account.BusinessRestaurant)),
					huh.NewOption("Grocery Store", string(account.BusinessGroceryStore)),
					huh.NewOption("Electronics", string(account.BusinessElectronics)),
					huh.NewOption("Clothing", string(account.BusinessClothing)),
					huh.NewOption("Services", string(account.BusinessServices)),
					huh.NewOption("Other", string(account.BusinessOther)),
				).
				Value(&m.formBusinessType),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = loginStateChoose
			m.form = nil

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

	m.state = loginStateSubmitting

	if m.register {
		return m, m.registerCmd()
	}

	return m, m.loginCmd()
}

func (m LoginModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("ShopSight")
	subtitle := lipgloss.NewStyle().Faint(true).Render("Business records and insights")

	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}

	switch m.state {
	case loginStateChoose:
		options := []string{"Login", "Register"}
		s := ""
		for i, opt := range options {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %s\n", cursor, opt)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s\n%s\n\n%s%s\n(Enter to select, Esc to quit)", title, subtitle, errStr, s),
		)

	case loginStateForm:
		heading := "Login"
		if m.register {
			heading = "Register"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s\n\n%s\n\n%s%s", title, heading, errStr, m.form.View()),
		)

	case loginStateSubmitting:
		return lipgloss.NewStyle().Padding(2).Render("Signing in...")
	}

	return ""
}

// Messages

type authResultMsg struct {
	acc *account.Account
	err error
}

// The credential commands read the completed form through its keys; the
// value bindings only seed initial values.
func (m LoginModel) loginCmd() tea.Cmd {
	username := m.form.GetString("username")
	password := m.form.GetString("password")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		acc, err := m.accountService.Login(ctx, username, password)

		return authResultMsg{acc: acc, err: err}
	}
}

func (m LoginModel) registerCmd() tea.Cmd {
	params := account.RegisterParams{
		Username:     m.form.GetString("username"),
		Password:     m.form.GetString("password"),
		BusinessName: m.form.GetString("business_name"),
		BusinessType: account.BusinessType(m.form.GetString("business_type")),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		acc, err := m.accountService.Register(ctx, params)

		return authResultMsg{acc: acc, err: err}
	}
}

func requiredField(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", label)
		}

		return nil
	}
}
