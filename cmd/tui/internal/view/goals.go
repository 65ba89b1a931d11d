package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

type goalsState int

const (
	goalsStateBrowse goalsState = iota
	goalsStateProgress
	goalsStateCreate
	goalsStateDelete
)

type GoalsModel struct {
	CommonModel
	goals    *goal.Service
	currency string

	state   goalsState
	table   table.Model
	bar     progress.Model
	items   []*goal.Goal
	form    *huh.Form
	only    bool
	loading bool
	err     error
	status  string
}

func NewGoalsModel(common CommonModel, goals *goal.Service, domestic string) GoalsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Current", Width: 16},
		{Title: "Target", Width: 16},
		{Title: "Progress", Width: 9},
		{Title: "Ends", Width: 12},
		{Title: "Days", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return GoalsModel{
		CommonModel: common,
		goals:       goals,
		currency:    domestic,
		table:       t,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		loading:     true,
	}
}

func (m GoalsModel) Title() string { return "Goals" }

func (m GoalsModel) ShortHelp() string {
	if m.state != goalsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | u: update progress | d: delete | a: achieved only | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.items = msg.goals
			m.refreshTable()
		}

		return m, nil

	case goalSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = goalsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	if m.state == goalsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m GoalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			m.only = !m.only
			m.loading = true

			return m, m.loadCmd()
		case "n":
			return m.enterCreate()
		case "u":
			return m.enterProgress()
		case "d":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m GoalsModel) selected() *goal.Goal {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m GoalsModel) enterCreate() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Validate(notBlank("name")),
			huh.NewInput().
				Key("target").
				Title("Target").
				Placeholder("1000.00").
				Validate(positiveAmount),
			huh.NewInput().
				Key("current").
				Title("Saved so far").
				Placeholder("0.00").
				Validate(optionalAmount),
			huh.NewInput().
				Key("end").
				Title("End date").
				Placeholder("YYYY-MM-DD (optional)").
				Validate(optionalDate),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = goalsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m GoalsModel) enterProgress() (tea.Model, tea.Cmd) {
	g := m.selected()
	if g == nil {
		return m, nil
	}

	current := g.CurrentAmount.StringFixed(2)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("current").
				Title(fmt.Sprintf("Saved so far for %q", g.Name)).
				Value(&current).
				Validate(nonNegativeAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = goalsStateProgress
	m.table.Blur()

	return m, m.form.Init()
}

func (m GoalsModel) enterDelete() (tea.Model, tea.Cmd) {
	g := m.selected()
	if g == nil {
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %q?", g.Name)).
				Affirmative("Delete").
				Negative("Keep"),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = goalsStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = goalsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case goalsStateCreate:
		return m, m.createCmd()
	case goalsStateProgress:
		return m, m.progressCmd()
	case goalsStateDelete:
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m *GoalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	today := time.Now()

	for _, g := range m.items {
		ends, days := "-", "-"
		if g.EndDate != nil {
			ends = FormatDate(*g.EndDate)
		}

		if d := g.DaysRemaining(today); d != nil {
			days = fmt.Sprint(*d)
		}

		name := g.Name
		if g.Achieved {
			name = "✓ " + name
		}

		rows = append(rows, table.Row{
			name,
			m.Format.Money(g.CurrentAmount, m.currency),
			m.Format.Money(g.TargetAmount, m.currency),
			m.Format.Percent(g.ProgressPercentage()),
			ends,
			days,
		})
	}

	m.table.SetRows(rows)
}

func (m GoalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	filter := "All"
	if m.only {
		filter = "Achieved"
	}

	header := fmt.Sprintf("Filter: [a] %s | %d goals", activeStyle(filter), len(m.items))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if g := m.selected(); g != nil {
		ratio := g.ProgressPercentage().Div(decimal.NewFromInt(100)).InexactFloat64()
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", g.Name, m.bar.ViewAs(min(ratio, 1)))
	}

	if m.state != goalsStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Form validation

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount")
	}

	return d, nil
}

func positiveAmount(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}

	if !d.IsPositive() {
		return fmt.Errorf("must be greater than zero")
	}

	return nil
}

func nonNegativeAmount(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}

	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}

	return nil
}

func optionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return nonNegativeAmount(s)
}

func optionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

// Messages

type goalsLoadedMsg struct {
	goals []*goal.Goal
	err   error
}

type goalSavedMsg struct {
	status string
	err    error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	owner, only := m.Owner, m.only

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if only {
			goals, err := m.goals.ListAchieved(ctx, owner)
			return goalsLoadedMsg{goals: goals, err: err}
		}

		goals, err := m.goals.List(ctx, owner)

		return goalsLoadedMsg{goals: goals, err: err}
	}
}

func (m GoalsModel) createCmd() tea.Cmd {
	params := goal.CreateParams{
		Owner: m.Owner,
		Name:  strings.TrimSpace(m.form.GetString("name")),
	}

	params.TargetAmount, _ = parseAmount(m.form.GetString("target"))

	if s := m.form.GetString("current"); strings.TrimSpace(s) != "" {
		current, _ := parseAmount(s)
		params.CurrentAmount = &current
	}

	if s := strings.TrimSpace(m.form.GetString("end")); s != "" {
		end, _ := time.Parse(time.DateOnly, s)
		params.EndDate = &end
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		g, err := m.goals.Create(ctx, params)
		if err != nil {
			return goalSavedMsg{err: err}
		}

		return goalSavedMsg{status: fmt.Sprintf("Created %q.", g.Name)}
	}
}

func (m GoalsModel) progressCmd() tea.Cmd {
	g := m.selected()
	if g == nil {
		return nil
	}

	owner, id := m.Owner, g.ID
	current, _ := parseAmount(m.form.GetString("current"))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.goals.UpdateProgress(ctx, owner, id, current)
		if err != nil {
			return goalSavedMsg{err: err}
		}

		if updated.Achieved {
			return goalSavedMsg{status: fmt.Sprintf("%q achieved!", updated.Name)}
		}

		return goalSavedMsg{status: fmt.Sprintf("Updated %q.", updated.Name)}
	}
}

func (m GoalsModel) deleteCmd() tea.Cmd {
	g := m.selected()
	if g == nil || !m.form.GetBool("confirm") {
		return func() tea.Msg { return goalSavedMsg{} }
	}

	owner, id, name := m.Owner, g.ID, g.Name

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.goals.Delete(ctx, owner, id); err != nil {
			return goalSavedMsg{err: err}
		}

		return goalSavedMsg{status: fmt.Sprintf("Deleted %q.", name)}
	}
}
