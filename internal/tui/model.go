// Package tui implements the interactive tenant dashboard.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-rent-must-flow/internal/export"
	"github.com/Veraticus/the-rent-must-flow/internal/insights"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/Veraticus/the-rent-must-flow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab identifies a dashboard page.
type Tab int

// Dashboard tabs.
const (
	TabTop Tab = iota
	TabAnalytics
	TabSearch
	TabInsights
	TabReport
)

var tabNames = []string{"Top Tenants", "Analytics", "Search", "Insights", "Full Report"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// scoreStep is how far one key press moves the minimum score.
const scoreStep = 5

// Model is the main TUI model.
type Model struct {
	analysis  *model.Analysis
	exporter  *export.FileExporter
	theme     themes.Theme
	status    string
	sortKey   query.SortKey
	direction query.Direction
	options   query.FilterOptions
	filter    query.Filter
	filtered  []model.ScoredTenant
	results   []model.ScoredTenant
	report    insights.Report
	keys      KeyMap
	help      help.Model
	search    textinput.Model
	table     table.Model
	tab       Tab
	category  int
	employ    int
	cursor    int
	topN      int
	width     int
	height    int
	statusErr bool
	searching bool
}

// New creates a dashboard over a scored dataset.
func New(analysis *model.Analysis, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	search := textinput.New()
	search.Placeholder = "tenant name"
	search.Prompt = "Search: "
	search.CharLimit = 64

	m := Model{
		analysis:  analysis,
		exporter:  export.NewFileExporter(cfg.ExportDir),
		theme:     cfg.Theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		search:    search,
		sortKey:   query.SortByScore,
		direction: query.Descending,
		options:   query.Options(analysis.Tenants),
		filter:    query.Filter{Payment: model.PaymentAll},
		topN:      cfg.TopN,
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.table = m.newTable()
	m.refresh()
	return m
}

func (m Model) newTable() table.Model {
	columns := make([]table.Column, len(export.DefaultColumns))
	for i, c := range export.DefaultColumns {
		columns[i] = table.Column{Title: c, Width: min(max(len(c), 8), 24)}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(m.theme.Primary)
	styles.Selected = m.theme.Selected

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(styles),
	)
}

func (m Model) tableHeight() int {
	// title, filters, metrics, tabs and help take about 14 lines
	return max(m.height-14, 5)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case exportDoneMsg:
		m.handleExportDone(msg)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.table.SetHeight(m.tableHeight())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))

	case key.Matches(msg, m.keys.JumpTab):
		m.tab = Tab(msg.String()[0] - '1')

	case key.Matches(msg, m.keys.RaiseScore):
		m.filter.MinScore = min(m.filter.MinScore+scoreStep, 100)
		m.refresh()

	case key.Matches(msg, m.keys.LowerScore):
		m.filter.MinScore = max(m.filter.MinScore-scoreStep, 0)
		m.refresh()

	case key.Matches(msg, m.keys.CyclePayment):
		m.filter.Payment = nextPayment(m.filter.Payment)
		m.refresh()

	case key.Matches(msg, m.keys.CycleCategory):
		m.category = (m.category + 1) % (len(m.options.Categories) + 1)
		m.filter.Categories = nil
		if m.category > 0 {
			m.filter.Categories = []model.Category{m.options.Categories[m.category-1]}
		}
		m.refresh()

	case key.Matches(msg, m.keys.CycleEmployment):
		m.employ = (m.employ + 1) % (len(m.options.Employment) + 1)
		m.filter.Employment = nil
		if m.employ > 0 {
			m.filter.Employment = []string{m.options.Employment[m.employ-1]}
		}
		m.refresh()

	case key.Matches(msg, m.keys.ResetFilters):
		m.filter = query.Filter{Payment: model.PaymentAll}
		m.category, m.employ = 0, 0
		m.refresh()

	case key.Matches(msg, m.keys.Search):
		m.tab = TabSearch
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortKey = nextSortKey(m.sortKey)
		m.refreshResults()

	case key.Matches(msg, m.keys.ToggleOrder):
		if m.direction == query.Descending {
			m.direction = query.Ascending
		} else {
			m.direction = query.Descending
		}
		m.refreshResults()

	case key.Matches(msg, m.keys.Export):
		m.status, m.statusErr = "Exporting...", false
		return m, exportCmd(m.exporter, m.analysis.Dataset, m.filtered, m.analysis.Tenants)

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		return m.moveCursor(msg)
	}

	return m, nil
}

func (m Model) moveCursor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabReport:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case TabSearch:
		if key.Matches(msg, m.keys.Up) && m.cursor > 0 {
			m.cursor--
		}
		if key.Matches(msg, m.keys.Down) && m.cursor < len(m.results)-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Cancel) {
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshResults()
	return m, cmd
}

func (m *Model) handleExportDone(msg exportDoneMsg) {
	if msg.err != nil {
		m.status, m.statusErr = fmt.Sprintf("Export failed: %v", msg.err), true
		return
	}
	m.status, m.statusErr = "Exported "+strings.Join(msg.paths, ", "), false
}

// refresh reapplies the filter and recomputes everything derived from it.
func (m *Model) refresh() {
	m.filtered = query.Apply(m.analysis.Tenants, m.filter)
	m.report = insights.NewReport(m.filtered, m.analysis.Tenants)
	m.table.SetRows(toTableRows(export.FullReport(m.filtered, nil).Rows))
	m.refreshResults()
}

func (m *Model) refreshResults() {
	m.results = query.Sort(query.Search(m.filtered, m.search.Value()), m.sortKey, m.direction)
	m.cursor = min(m.cursor, max(len(m.results)-1, 0))
}

func toTableRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r)
	}
	return out
}

func nextPayment(p model.PaymentMode) model.PaymentMode {
	for i, mode := range model.PaymentModes {
		if mode == p {
			return model.PaymentModes[(i+1)%len(model.PaymentModes)]
		}
	}
	return model.PaymentAll
}

func nextSortKey(k query.SortKey) query.SortKey {
	for i, sk := range query.SortKeys {
		if sk == k {
			return query.SortKeys[(i+1)%len(query.SortKeys)]
		}
	}
	return query.SortByScore
}

// Filtered returns the tenants passing the current filter.
func (m Model) Filtered() []model.ScoredTenant {
	return m.filtered
}

// Selected returns the highlighted search result, if any.
func (m Model) Selected() (*model.ScoredTenant, bool) {
	if len(m.results) == 0 {
		return nil, false
	}
	return &m.results[m.cursor], true
}
