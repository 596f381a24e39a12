package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-rent-must-flow/internal/cli"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{
		m.theme.Title.Render(cli.HouseIcon + " Tenant Quality Dashboard"),
		m.renderFilters(),
		cli.RenderMetrics(m.report.Summary),
		m.renderTabs(),
		m.renderContent(),
	}
	if m.status != "" {
		sections = append(sections, m.renderStatus())
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFilters() string {
	category := "All"
	if len(m.filter.Categories) > 0 {
		category = string(m.filter.Categories[0])
	}
	employment := "All"
	if len(m.filter.Employment) > 0 {
		employment = m.filter.Employment[0]
	}

	return m.theme.Subtitle.Render(fmt.Sprintf(
		"Min score: %.0f  Payment: %s  Category: %s  Employment: %s",
		m.filter.MinScore, m.filter.Payment.Label(), category, employment,
	))
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = m.theme.TabActive.Render(name)
		} else {
			tabs[i] = m.theme.TabInactive.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderContent() string {
	switch m.tab {
	case TabTop:
		return m.renderTop()
	case TabAnalytics:
		return cli.RenderDistribution(m.report.Distribution)
	case TabSearch:
		return m.renderSearch()
	case TabInsights:
		return cli.RenderInsights(m.report)
	case TabReport:
		return m.renderReport()
	default:
		return ""
	}
}

func (m Model) renderTop() string {
	title := m.theme.Bold.Render(fmt.Sprintf("%s Top %d Tenants", cli.TrophyIcon, m.topN))
	return lipgloss.JoinVertical(lipgloss.Left, title, cli.RenderLeaderboard(query.Top(m.filtered, m.topN)))
}

func (m Model) renderSearch() string {
	header := fmt.Sprintf("%s  %s",
		m.search.View(),
		m.theme.Subtitle.Render(fmt.Sprintf("sorted by %s (%s)", m.sortKey, m.direction)),
	)
	if len(m.results) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", cli.FormatWarning("No tenants found."))
	}

	lines := make([]string, len(m.results))
	for i := range m.results {
		t := &m.results[i]
		line := fmt.Sprintf("%-24s %5.1f  %s", t.Name, t.Score, m.theme.CategoryStyle(t.Category).Render(string(t.Category)))
		if i == m.cursor {
			line = m.theme.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines[i] = line
	}

	list := m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
	selected, _ := m.Selected()
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		fmt.Sprintf("Found %d tenant(s)", len(m.results)),
		lipgloss.JoinHorizontal(lipgloss.Top, list, " ", cli.RenderTenantDetail(selected)),
	)
}

func (m Model) renderReport() string {
	if len(m.filtered) == 0 {
		return cli.FormatWarning("No tenants match the current filters.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render(fmt.Sprintf("%d tenants, highest score first", len(m.filtered))),
		m.table.View(),
	)
}

func (m Model) renderStatus() string {
	if m.statusErr {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	}
	return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status)
}
