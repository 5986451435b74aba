package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

// Session identifies the signed-in account. The login view produces it and
// every record-bearing view carries it for store calls.
type Session struct {
	Username     string
	BusinessName string
	Role         account.Role
}

func (s Session) IsAdmin() bool {
	return s.Role == account.RoleAdmin
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LoginSuccessMsg is emitted by the login view once credentials check out.
type LoginSuccessMsg struct {
	Session Session
}
