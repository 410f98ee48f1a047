package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/client"
)

// SummaryModel shows the ordered balance sheet summary.
type SummaryModel struct {
	CommonModel

	table   table.Model
	sheets  []client.BalanceSheet
	loading bool
	err     error
}

func NewSummaryModel(api *client.Client) SummaryModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Balance Sheet", Width: 30},
			{Title: "Balance", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return SummaryModel{CommonModel: CommonModel{api: api}, table: t, loading: true}
}

func (m SummaryModel) Title() string     { return "Balance Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err != nil {
			return m, expired(msg.err)
		}

		m.sheets = msg.sheets
		m.refreshTable()

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

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *SummaryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.sheets)+1)

	var total int64

	for _, s := range m.sheets {
		total += s.Balance
		rows = append(rows, table.Row{strconv.FormatInt(s.ID, 10), s.Name, FormatAmount(s.Balance)})
	}

	rows = append(rows, table.Row{"", "Total", FormatAmount(total)})
	m.table.SetRows(rows)
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading balances...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(m.Title()),
			tableBorder.Render(m.table.View()),
		),
	)
}

type summaryLoadedMsg struct {
	sheets []client.BalanceSheet
	err    error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		sheets, err := m.api.BalanceSummary(ctx)

		return summaryLoadedMsg{sheets: sheets, err: err}
	}
}

var tableBorder = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

func tableStyles() table.Styles {
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

	return s
}
