package main

import (
	"github.com/Veraticus/the-rent-must-flow/internal/tui"
	"github.com/Veraticus/the-rent-must-flow/internal/tui/themes"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard FILE",
		Short: "Explore scored tenants in an interactive dashboard",
		Long: `Open a terminal dashboard over FILE with Top Tenants, Analytics, Search,
Insights and Full Report tabs. Filters apply to every tab; press x to write
the top, filtered and complete CSV exports.`,
		Args: cobra.ExactArgs(1),
		RunE: runDashboard,
	}

	cmd.Flags().IntP("top", "n", 10, "Number of tenants on the leaderboard (default dashboard.top_n)")
	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin-mocha)")
	cmd.Flags().String("dir", "", "Directory for CSV exports (default export.dir)")
	addLoadFlags(cmd)

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	n, err := topN(cmd, cfg)
	if err != nil {
		return err
	}
	dir := cfg.Export.Dir
	if d, _ := cmd.Flags().GetString("dir"); d != "" {
		dir = d
	}
	theme, _ := cmd.Flags().GetString("theme")

	analysis, err := loadAnalysis(cmd, args[0])
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), analysis,
		tui.WithTopN(n),
		tui.WithExportDir(dir),
		tui.WithTheme(themes.GetTheme(theme)),
	)
}
