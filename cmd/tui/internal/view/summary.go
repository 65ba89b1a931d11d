package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finsight/internal/currency"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
)

type summaryState int

const (
	summaryStateBrowse summaryState = iota
	summaryStatePeriod
	summaryStateCurrency
)

// SummaryModel shows totals and the category breakdown of a window, optionally converted
// into another currency.
type SummaryModel struct {
	CommonModel
	summaries *summary.Service
	converter *currency.Converter

	state   summaryState
	picker  TimeframePicker
	input   textinput.Model
	table   table.Model
	label   string
	window  period.Window
	target  string
	current *summary.Summary
	loading bool
	err     error
}

func NewSummaryModel(common CommonModel, summaries *summary.Service, converter *currency.Converter) SummaryModel {
	columns := []table.Column{
		{Title: "Type", Width: 9},
		{Title: "Category", Width: 28},
		{Title: "Amount", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	ti := textinput.New()
	ti.Placeholder = "USD"
	ti.CharLimit = 3
	ti.Width = 5
	ti.Prompt = "Currency: "

	return SummaryModel{
		CommonModel: common,
		summaries:   summaries,
		converter:   converter,
		picker:      NewTimeframePicker(summaries.Today),
		input:       ti,
		table:       t,
		label:       TimeframeThisMonth.String(),
		window:      period.CurrentMonth(summaries.Today()),
		loading:     true,
	}
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string {
	switch m.state {
	case summaryStatePeriod:
		return "Enter: select | Esc: cancel"
	case summaryStateCurrency:
		return "Enter: convert | Esc: cancel"
	}

	return "Esc: back | p: period | c: currency | x: domestic | r: refresh"
}

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.current = msg.summary
			m.refreshTable()
		}

		return m, nil

	case TimeframeSelectedMsg:
		m.state = summaryStateBrowse
		m.label = msg.Label
		m.window = msg.Window
		m.loading = true
		m.table.Focus()

		return m, m.loadCmd()
	}

	switch m.state {
	case summaryStatePeriod:
		return m.updatePeriod(msg)
	case summaryStateCurrency:
		return m.updateCurrency(msg)
	}

	return m.updateBrowse(msg)
}

func (m SummaryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.state = summaryStatePeriod
			m.picker.Reset()
			m.table.Blur()

			return m, nil
		case "c":
			m.state = summaryStateCurrency
			m.input.SetValue("")
			m.table.Blur()

			return m, m.input.Focus()
		case "x":
			m.target = ""
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SummaryModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
		m.state = summaryStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m SummaryModel) updateCurrency(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = summaryStateBrowse
			m.input.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			code := rates.NormalizeCode(m.input.Value())
			if !rates.ValidCode(code) {
				m.err = fmt.Errorf("invalid currency code %q", code)
				return m, nil
			}

			m.state = summaryStateBrowse
			m.target = code
			m.loading = true
			m.input.Blur()
			m.table.Focus()

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *SummaryModel) refreshTable() {
	s := m.current
	rows := make([]table.Row, 0, len(s.IncomesByCategory)+len(s.ExpensesByCategory))

	for _, c := range s.IncomesByCategory {
		rows = append(rows, table.Row{"Income", c.CategoryName, m.Format.Money(c.Amount, s.Currency)})
	}

	for _, c := range s.ExpensesByCategory {
		rows = append(rows, table.Row{"Expense", c.CategoryName, m.Format.Money(c.Amount, s.Currency)})
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m SummaryModel) View() string {
	switch m.state {
	case summaryStatePeriod:
		return lipgloss.NewStyle().Padding(2).Render(m.picker.View())
	case summaryStateCurrency:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Convert summary to:\n\n%s%s", m.input.View(), errorLine(m.err)),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to go back, x to reset currency)", m.err))
	}

	s := m.current
	header := fmt.Sprintf(
		"Period: %s (%s to %s) | Currency: %s",
		activeStyle(m.label),
		FormatDate(s.Window.Start),
		FormatDate(s.Window.End),
		activeStyle(s.Currency),
	)

	totals := fmt.Sprintf(
		"Income:  %s\nExpense: %s\nBalance: %s",
		m.Format.Money(s.TotalIncome, s.Currency),
		m.Format.Money(s.TotalExpense, s.Currency),
		balanceStyle(s.Balance.IsNegative()).Render(m.Format.Money(s.Balance, s.Currency)),
	)

	goals := fmt.Sprintf("Goals achieved: %d", len(s.AchievedGoals))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().PaddingBottom(1).Render(totals),
		tableView,
		goals,
	))
}

func balanceStyle(negative bool) lipgloss.Style {
	if negative {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
}

func errorLine(err error) string {
	if err == nil {
		return ""
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", err))
}

// Messages

type summaryLoadedMsg struct {
	summary *summary.Summary
	err     error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	owner, window, target := m.Owner, m.window, m.target

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.summaries.Summary(ctx, owner, window)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		if target == "" {
			return summaryLoadedMsg{summary: s}
		}

		converted, err := m.converter.ConvertSummary(ctx, s, m.summaries.Domestic(), target)
		if err != nil {
			return summaryLoadedMsg{err: fmt.Errorf("converting to %s: %w", target, err)}
		}

		return summaryLoadedMsg{summary: converted}
	}
}
