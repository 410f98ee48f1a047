package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/client"
	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/view"
)

type tuiConfig struct {
	APIURL string `envconfig:"RKAP_API_URL" default:"http://localhost:8080"`
}

type model struct {
	api  *client.Client
	user *client.User

	currentView View

	loginView   view.LoginModel
	summaryView view.SummaryModel
	listView    view.ListModel
	importView  view.ImportModel
	reportsView view.ReportsModel
}

type View int

const (
	ViewLogin   View = 0
	ViewMenu    View = 1
	ViewSummary View = 2
	ViewList    View = 3
	ViewImport  View = 4
	ViewReports View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	var cfg tuiConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.APIURL)

	return model{
		api:         api,
		currentView: ViewLogin,
		loginView:   view.NewLoginModel(api),
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
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.api)

				return m, m.summaryView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.api)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.api)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.api)

				return m, m.reportsView.Init()
			}
		}
	case view.LoggedInMsg:
		m.user = msg.User
		m.currentView = ViewMenu

		return m, nil
	case view.SessionExpiredMsg:
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.api)

		return m, m.loginView.Init()
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	}

	return m, cmd
}

// active returns the screen currently shown, or nil on the menu.
func (m model) active() view.View {
	switch m.currentView {
	case ViewLogin:
		return m.loginView
	case ViewSummary:
		return m.summaryView
	case ViewList:
		return m.listView
	case ViewImport:
		return m.importView
	case ViewReports:
		return m.reportsView
	}

	return nil
}

func (m model) View() string {
	v := m.active()
	if v == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"RKAP Finance\n" +
				lipgloss.NewStyle().Faint(true).Render("Signed in as "+m.user.FullName+" ("+m.user.Role+")") + "\n\n" +
				"1. Balance Summary\n" +
				"2. Transactions\n" +
				"3. Import Transactions\n" +
				"4. Reports\n\n" +
				"q. Quit",
		)
	}

	return v.View() + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.Title()+" | "+v.ShortHelp())
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
