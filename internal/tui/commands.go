package tui

import (
	"github.com/Veraticus/the-rent-must-flow/internal/export"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// exportCmd writes the top, filtered and complete CSV exports.
func exportCmd(exporter *export.FileExporter, dataset *model.Dataset, filtered, all []model.ScoredTenant) tea.Cmd {
	return func() tea.Msg {
		paths, err := exporter.ExportAll(dataset, filtered, all)
		return exportDoneMsg{paths: paths, err: err}
	}
}
