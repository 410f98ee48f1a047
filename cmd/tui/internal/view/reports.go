package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/client"
)

const reportTimeout = 2 * time.Minute

type reportState int

const (
	reportStateTimeframe reportState = iota
	reportStateOptions
	reportStateDownloading
	reportStateResult
)

// ReportsModel downloads realization workbooks and attachment archives.
type ReportsModel struct {
	CommonModel

	state           reportState
	timeframePicker TimeframePicker

	startDate time.Time
	endDate   time.Time

	form    *huh.Form
	spinner spinner.Model
	path    string
	err     error
}

func NewReportsModel(api *client.Client) ReportsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReportsModel{
		CommonModel:     CommonModel{api: api},
		state:           reportStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisYear),
		spinner:         s,
	}
}

func (m ReportsModel) Title() string { return "Reports" }

func (m ReportsModel) ShortHelp() string {
	switch m.state {
	case reportStateResult:
		return "Esc: back to menu"
	case reportStateDownloading:
		return "Downloading..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ReportsModel) Init() tea.Cmd {
	return nil
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.startDate = tfMsg.Start
		m.endDate = tfMsg.End
		m.form = buildReportForm()
		m.state = reportStateOptions

		return m, m.form.Init()
	}

	switch m.state {
	case reportStateTimeframe:
		return m.updateTimeframe(msg)
	case reportStateOptions:
		return m.updateOptions(msg)
	case reportStateDownloading:
		return m.updateDownloading(msg)
	case reportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ReportsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ReportsModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = reportStateTimeframe
		m.timeframePicker.Reset()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	kind, _ := m.form.Get("kind").(client.ReportKind)
	dir := m.form.GetString("path")

	m.state = reportStateDownloading
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.downloadCmd(kind, dir))
}

func (m ReportsModel) updateDownloading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(reportResultMsg); ok {
		m.state = reportStateResult
		m.path = result.path
		m.err = result.err

		return m, expired(result.err)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func buildReportForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[client.ReportKind]().
				Key("kind").
				Title("Report").
				Options(
					huh.NewOption("Realization by category (xlsx)", client.ReportCategories),
					huh.NewOption("Realization by item (xlsx)", client.ReportItems),
					huh.NewOption("Attachments (zip)", client.ReportAttachments),
				),
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Value(new("./reports")),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ReportsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case reportStateTimeframe:
		return style.Render(m.timeframePicker.View())

	case reportStateOptions:
		return style.Render(fmt.Sprintf("Period: %s to %s\n\n%s",
			FormatDate(m.startDate), FormatDate(m.endDate), m.form.View()))

	case reportStateDownloading:
		return style.Render(fmt.Sprintf("%s Building report...", m.spinner.View()))

	case reportStateResult:
		if m.err != nil {
			return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Bold(true).Render("Report saved"),
			"",
			m.path,
		))
	}

	return ""
}

type reportResultMsg struct {
	path string
	err  error
}

func (m ReportsModel) downloadCmd(kind client.ReportKind, dir string) tea.Cmd {
	start, end := m.startDate, m.endDate

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		path, err := m.api.DownloadReport(ctx, kind, start, end, dir)

		return reportResultMsg{path: path, err: err}
	}
}
