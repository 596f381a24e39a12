package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/the-rent-must-flow/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, analysis *model.Analysis, opts ...Option) error {
	if analysis == nil || analysis.Dataset == nil {
		return fmt.Errorf("no dataset loaded")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(analysis, opts...), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
