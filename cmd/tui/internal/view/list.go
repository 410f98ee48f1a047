package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/client"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateConfirmDelete
	listStateCreate
)

// ListModel browses transactions and lets the user delete or add them.
type ListModel struct {
	CommonModel

	state listState
	table table.Model
	txs   []client.Transaction

	confirm *huh.Form
	create  TransactionForm

	dateFilterIdx int
	start, end    *time.Time

	loading bool
	err     error
	status  string
}

var dateFilterLabels = []string{"All Time", "This Month", "Last Month", "This Year"}

func NewListModel(api *client.Client) ListModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Item", Width: 22},
			{Title: "Payee", Width: 22},
			{Title: "Amount", Width: 16},
			{Title: "Sheet", Width: 14},
			{Title: "Type", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return ListModel{CommonModel: CommonModel{api: api}, table: t, loading: true}
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateConfirmDelete:
		return "y/n: confirm delete"
	case listStateCreate:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | x: delete | d: date filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err != nil {
			return m, expired(msg.err)
		}

		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case listChangedMsg:
		m.state = listStateBrowse
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, expired(msg.err)
		}

		m.status = successStyle.Render(msg.status)

		return m, m.loadCmd()

	case TransactionSavedMsg:
		m.state = listStateBrowse
		m.table.Focus()
		m.status = successStyle.Render(fmt.Sprintf("Created %s for %s.", msg.Tx.ItemName, FormatAmount(msg.Tx.Amount)))

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateConfirmDelete:
		return m.updateConfirm(msg)
	case listStateCreate:
		return m.updateCreate(msg)
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateFilterLabels)
			m.applyFilter(time.Now())
			m.loading = true

			return m, m.loadCmd()
		case "n":
			m.state = listStateCreate
			m.create = NewTransactionForm(m.api)
			m.table.Blur()

			return m, m.create.Init()
		case "x":
			if _, ok := m.selected(); !ok {
				return m, nil
			}

			m.confirm = huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Key("delete").
					Title("Delete this transaction?").
					Description("Its amount is reversed on the balance sheet.").
					Affirmative("Delete").
					Negative("Keep"),
			)).WithShowHelp(false)
			m.state = listStateConfirmDelete
			m.table.Blur()

			return m, m.confirm.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	tx, ok := m.selected()
	if !ok || !m.confirm.GetBool("delete") {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(tx.ID)
}

func (m ListModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.create, cmd = m.create.Update(msg)

	return m, cmd
}

func (m ListModel) selected() (client.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return client.Transaction{}, false
	}

	return m.txs[idx], true
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf("Filter: [d] Date: %s", activeStyle(dateFilterLabels[m.dateFilterIdx]))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBorder.Render(m.table.View()),
	)

	var panel string

	switch m.state {
	case listStateConfirmDelete:
		panel = m.confirm.View()
	case listStateCreate:
		panel = m.create.View()
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(50).
			Render(panel))
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ListModel) applyFilter(now time.Time) {
	var tf Timeframe

	switch m.dateFilterIdx {
	case 1:
		tf = TimeframeThisMonth
	case 2:
		tf = TimeframeLastMonth
	case 3:
		tf = TimeframeThisYear
	default:
		m.start, m.end = nil, nil
		return
	}

	start, end := timeframeToDateRange(tf, now)
	m.start, m.end = &start, &end
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			tx.Date,
			tx.ItemName,
			tx.Payee,
			FormatAmount(tx.Amount),
			tx.BalanceSheetName,
			tx.Type,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type listLoadedMsg struct {
	txs []client.Transaction
	err error
}

type listChangedMsg struct {
	status string
	err    error
}

func (m ListModel) loadCmd() tea.Cmd {
	start, end := m.start, m.end

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		txs, err := m.api.Transactions(ctx, start, end)

		return listLoadedMsg{txs: txs, err: err}
	}
}

func (m ListModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := m.api.DeleteTransactions(ctx, []int64{id}); err != nil {
			return listChangedMsg{err: err}
		}

		return listChangedMsg{status: "Transaction deleted."}
	}
}
