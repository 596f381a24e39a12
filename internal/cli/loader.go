package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/the-rent-must-flow/internal/ingest"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/scoring"
	"github.com/schollz/progressbar/v3"
)

// Loader reads and scores a tenant file, drawing a progress bar while it scores.
type Loader struct {
	writer   io.Writer
	parser   *ingest.Parser
	cache    *scoring.Cache
	progress bool
}

// NewLoader creates a loader reporting progress to w. A nil w disables the bar.
func NewLoader(w io.Writer) *Loader {
	return &Loader{
		writer:   w,
		parser:   ingest.NewParser(),
		cache:    scoring.NewCache(),
		progress: w != nil,
	}
}

// Load parses and scores the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*model.Analysis, error) {
	dataset, err := l.parser.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}

	opts := []scoring.Option{scoring.WithCache(l.cache)}
	if l.progress {
		bar := l.newProgressBar(dataset.Len())
		opts = append(opts, scoring.WithProgress(func() {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}))
	}

	tenants := scoring.NewEnricher(opts...).Enrich(dataset.Tenants)

	hits, misses := l.cache.Stats()
	slog.Debug("Scored tenants", "path", path, "tenants", len(tenants), "cache_hits", hits, "cache_misses", misses)

	return &model.Analysis{Dataset: dataset, Tenants: tenants}, nil
}

func (l *Loader) newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(l.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Scoring tenants...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(l.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
