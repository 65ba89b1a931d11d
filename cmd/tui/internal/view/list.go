package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
)

var (
	typeLabels = []string{"All", "Income", "Expense"}
	dateLabels = []string{"All Time", "This Month", "Last Month", "Last 3 Months"}
)

// noCategory is the select value that removes the category of a transaction.
const noCategory = ""

type ListModel struct {
	CommonModel
	txService  *transaction.Service
	categories *category.Service
	currency   string

	state      listState
	table      table.Model
	txs        []*transaction.Transaction
	categoryOf []*category.Category
	form       *huh.Form

	// Filter cycling
	typeFilterIdx int
	dateFilterIdx int

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string
}

func NewListModel(common CommonModel, txSvc *transaction.Service, catSvc *category.Service, domestic string) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 16},
		{Title: "Category", Width: 18},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return ListModel{
		CommonModel: common,
		txService:   txSvc,
		categories:  catSvc,
		currency:    domestic,
		table:       t,
		filter:      transaction.ListFilter{Owner: common.Owner},
		loading:     true,
	}
}

func (m ListModel) Title() string { return "Transactions List" }
func (m ListModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | e: edit | t: type filter | d: date filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.loadTxsCmd(), m.loadCategoriesCmd())
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.txs = msg.txs
		m.refreshTable()
		return m, nil

	case loadCategoriesMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading categories: %v", msg.err)
			return m, nil
		}
		m.categoryOf = msg.categories
		return m, nil

	case listSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "e":
			return m.enterEditMode()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeLabels)
			m.applyFilter(time.Now())
			return m, m.loadTxsCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateLabels)
			m.applyFilter(time.Now())
			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	desc := tx.Description
	catID := noCategory
	if tx.CategoryID != nil {
		catID = tx.CategoryID.String()
	}

	options := []huh.Option[string]{huh.NewOption("(none)", noCategory)}
	for _, c := range m.categoryOf {
		if string(c.Type) != string(tx.Type) {
			continue
		}
		options = append(options, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&desc).
				Validate(notBlank("description")),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&catID),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()
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

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [d] Date: %s",
		activeStyle(typeLabels[m.typeFilterIdx]),
		activeStyle(dateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateEdit && m.form != nil {
		idx := m.table.Cursor()
		amount := ""
		if idx >= 0 && idx < len(m.txs) {
			amount = m.Format.Money(m.txs[idx].Amount, m.currency)
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Edit Transaction\n\nAmount: %s\n\n%s", amount, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) applyFilter(now time.Time) {
	switch m.typeFilterIdx {
	case 1:
		m.filter.Type = new(transaction.TypeIncome)
	case 2:
		m.filter.Type = new(transaction.TypeExpense)
	default:
		m.filter.Type = nil
	}

	var w period.Window

	switch m.dateFilterIdx {
	case 1:
		w = period.CurrentMonth(now)
	case 2:
		w = period.CurrentMonth(period.AddMonths(period.FirstOfMonth(now), -1))
	case 3:
		w = period.LastMonths(now, 3)
	default:
		m.filter.StartDate = nil
		m.filter.EndDate = nil

		return
	}

	m.filter.StartDate = &w.Start
	m.filter.EndDate = &w.End
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		name := ""
		if tx.Category != nil {
			name = tx.Category.Name
		}
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			m.Format.Money(tx.Amount, m.currency),
			name,
			tx.Description,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	txs []*transaction.Transaction
	err error
}

type loadCategoriesMsg struct {
	categories []*category.Category
	err        error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)
		return loadListMsg{txs: txs, err: err}
	}
}

func (m ListModel) loadCategoriesCmd() tea.Cmd {
	owner := m.Owner

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, err := m.categories.List(ctx, owner)
		return loadCategoriesMsg{categories: cats, err: err}
	}
}

type listSaveMsg struct {
	err error
}

func (m ListModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	tx := *m.txs[idx]
	tx.Description = strings.TrimSpace(m.form.GetString("description"))
	tx.CategoryID = nil

	if raw := m.form.GetString("category"); raw != noCategory {
		id, err := uuid.Parse(raw)
		if err != nil {
			return func() tea.Msg { return listSaveMsg{err: err} }
		}
		tx.CategoryID = &id
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return listSaveMsg{err: m.txService.Update(ctx, &tx)}
	}
}
