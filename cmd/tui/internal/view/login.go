package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/client"
)

// LoggedInMsg reports a successful login.
type LoggedInMsg struct {
	User *client.User
}

type loginFailedMsg struct {
	err error
}

type LoginModel struct {
	CommonModel

	form     *huh.Form
	email    string
	password string
	busy     bool
	err      error
}

func NewLoginModel(api *client.Client) LoginModel {
	m := LoginModel{CommonModel: CommonModel{api: api}}
	m.form = m.buildForm()

	return m
}

func (m *LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter an email address")
					}

					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: next | ctrl+c: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if failed, ok := msg.(loginFailedMsg); ok {
		m.busy = false
		m.err = failed.err
		m.password = ""
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.busy = true
	m.err = nil

	return m, m.loginCmd(m.form.GetString("email"), m.form.GetString("password"))
}

func (m LoginModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("RKAP Finance"),
		"",
		m.form.View(),
	)

	if m.busy {
		content += "\n" + faintStyle.Render("Signing in...")
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render(fmt.Sprintf("Login failed: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

func (m LoginModel) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		u, err := m.api.Login(ctx, email, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}

		return LoggedInMsg{User: u}
	}
}
