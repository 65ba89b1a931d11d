package main

import (
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/finsight/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finsight/internal/category"
	categoryStore "github.com/MrJamesThe3rd/finsight/internal/category/store"
	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/currency"
	"github.com/MrJamesThe3rd/finsight/internal/database"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	goalStore "github.com/MrJamesThe3rd/finsight/internal/goal/store"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finsight/internal/matching/store"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
	"github.com/MrJamesThe3rd/finsight/internal/rates/oxr"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finsight/internal/transaction/store"
)

type model struct {
	common   view.CommonModel
	domestic string

	categoryService *category.Service
	txService       *transaction.Service
	goalService     *goal.Service
	summaryService  *summary.Service
	converter       *currency.Converter
	importService   *importer.Service

	currentView View

	summaryView view.SummaryModel
	goalsView   view.GoalsModel
	listView    view.ListModel
	importView  view.ImportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewSummary View = 1
	ViewGoals   View = 2
	ViewList    View = 3
	ViewImport  View = 4
)

// locale reads the POSIX locale from the environment, e.g. "pt_BR.UTF-8".
func locale() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MONETARY", "LANG"} {
		raw, _, _ := strings.Cut(os.Getenv(key), ".")
		if raw == "" || raw == "C" || raw == "POSIX" {
			continue
		}

		if tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-")); err == nil {
			return tag
		}
	}

	return language.BrazilianPortuguese
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.TUI.Owner == uuid.Nil {
		slog.Error("TUI_OWNER_ID is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	rateCache := rates.NewCache(oxr.New(cfg.Rates.BaseURL, cfg.Rates.AppID, cfg.Rates.Timeout))

	catSvc := category.NewService(categoryStore.New(db))
	txSvc := transaction.NewService(txStore.New(db), catSvc)
	goalSvc := goal.NewService(goalStore.New(db), catSvc)
	sumSvc := summary.NewService(txSvc, goalSvc, cfg.Currency.Domestic)
	conv := currency.NewConverter(rateCache)
	impSvc := importer.NewService()
	ruleSvc := matching.NewService(matchingStore.New(db), catSvc)

	common := view.CommonModel{
		Owner:  cfg.TUI.Owner,
		Format: view.NewFormatter(locale()),
	}

	return model{
		common:          common,
		domestic:        cfg.Currency.Domestic,
		categoryService: catSvc,
		txService:       txSvc,
		goalService:     goalSvc,
		summaryService:  sumSvc,
		converter:       conv,
		importService:   impSvc,
		currentView:     ViewMenu,
		importView:      view.NewImportModel(common, txSvc, impSvc, ruleSvc, cfg.Currency.Domestic),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.common, m.summaryService, m.converter)

				return m, m.summaryView.Init()
			case "2":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.common, m.goalService, m.domestic)

				return m, m.goalsView.Init()
			case "3":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.common, m.txService, m.categoryService, m.domestic)

				return m, m.listView.Init()
			case "4":
				m.currentView = ViewImport
				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Finsight TUI\n\n" +
				"1. Summary\n" +
				"2. Goals\n" +
				"3. Transactions\n" +
				"4. Import Statement\n\n" +
				"q. Quit",
		)
	case ViewSummary:
		current = m.summaryView
	case ViewGoals:
		current = m.goalsView
	case ViewList:
		current = m.listView
	case ViewImport:
		current = m.importView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, current.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
