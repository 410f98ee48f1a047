package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/client"
)

// TransactionSavedMsg is sent once a new transaction was stored.
type TransactionSavedMsg struct {
	Tx *client.Transaction
}

type catalogLoadedMsg struct {
	items  []client.Item
	sheets []client.BalanceSheet
	err    error
}

type transactionFailedMsg struct {
	err error
}

// TransactionForm collects a new transaction. It loads the item and
// balance sheet choices first.
type TransactionForm struct {
	CommonModel

	form   *huh.Form
	ready  bool
	saving bool
	err    error
}

func NewTransactionForm(api *client.Client) TransactionForm {
	return TransactionForm{CommonModel: CommonModel{api: api}}
}

func (m TransactionForm) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

func (m TransactionForm) Update(msg tea.Msg) (TransactionForm, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, expired(msg.err)
		}

		if len(msg.items) == 0 {
			m.err = fmt.Errorf("create an item first")
			return m, nil
		}

		m.form = buildTransactionForm(msg.items, msg.sheets, time.Now())
		m.ready = true

		return m, m.form.Init()

	case transactionFailedMsg:
		m.saving = false
		m.err = msg.err

		return m, expired(msg.err)
	}

	if !m.ready || m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	tx, err := transactionFromForm(m.form)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.saving = true
	m.err = nil

	return m, m.saveCmd(tx)
}

func (m TransactionForm) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("New Transaction"))
	b.WriteString("\n\n")

	switch {
	case m.saving:
		b.WriteString(faintStyle.Render("Saving..."))
	case m.ready:
		b.WriteString(m.form.View())
	case m.err == nil:
		b.WriteString(faintStyle.Render("Loading items..."))
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return b.String()
}

func buildTransactionForm(items []client.Item, sheets []client.BalanceSheet, today time.Time) *huh.Form {
	itemOpts := make([]huh.Option[int64], 0, len(items))
	for _, it := range items {
		itemOpts = append(itemOpts, huh.NewOption(fmt.Sprintf("%s (%s)", it.Name, it.CategoryName), it.ID))
	}

	sheetOpts := []huh.Option[int64]{huh.NewOption("None", int64(0))}
	for _, s := range sheets {
		sheetOpts = append(sheetOpts, huh.NewOption(s.Name, s.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder(time.DateOnly).
				Value(new(FormatDate(today))).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}

					return nil
				}),
			huh.NewSelect[int64]().
				Key("item").
				Title("Item").
				Options(itemOpts...),
			huh.NewInput().
				Key("payee").
				Title("Payee").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("payee cannot be empty")
					}

					return nil
				}),
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Description("Negative for expenses, positive for income").
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
			huh.NewSelect[int64]().
				Key("sheet").
				Title("Balance Sheet").
				Options(sheetOpts...),
		),
	).WithWidth(45).WithShowHelp(false)
}

func transactionFromForm(f *huh.Form) (client.NewTransaction, error) {
	amount, err := parseAmount(f.GetString("amount"))
	if err != nil {
		return client.NewTransaction{}, err
	}

	tx := client.NewTransaction{
		Date:   strings.TrimSpace(f.GetString("date")),
		Payee:  strings.TrimSpace(f.GetString("payee")),
		Amount: amount,
	}

	if id, ok := f.Get("item").(int64); ok {
		tx.ItemID = id
	}

	if id, ok := f.Get("sheet").(int64); ok && id != 0 {
		tx.BalanceSheetID = &id
	}

	return tx, nil
}

// parseAmount accepts whole units with optional dot or comma grouping.
func parseAmount(s string) (int64, error) {
	clean := strings.NewReplacer(".", "", ",", "", " ", "").Replace(strings.TrimSpace(s))

	amount, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("enter a whole number")
	}

	if amount == 0 {
		return 0, fmt.Errorf("amount cannot be zero")
	}

	return amount, nil
}

func (m TransactionForm) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		items, err := m.api.Items(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}

		sheets, err := m.api.BalanceSummary(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}

		return catalogLoadedMsg{items: items, sheets: sheets}
	}
}

func (m TransactionForm) saveCmd(tx client.NewTransaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		created, err := m.api.CreateTransaction(ctx, tx)
		if err != nil {
			return transactionFailedMsg{err: err}
		}

		return TransactionSavedMsg{Tx: created}
	}
}
