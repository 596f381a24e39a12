package main

import (
	"fmt"

	"github.com/Veraticus/the-rent-must-flow/internal/cli"
	"github.com/Veraticus/the-rent-must-flow/internal/insights"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/spf13/cobra"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score FILE",
		Short: "Score a tenant file and show the leaderboard",
		Long: `Score every tenant in FILE out of 100 and show the headline metrics
followed by the highest scoring tenants that pass the filters.`,
		Args: cobra.ExactArgs(1),
		RunE: runScore,
	}

	cmd.Flags().IntP("top", "n", 10, "Number of tenants on the leaderboard (default dashboard.top_n)")
	addFilterFlags(cmd)
	addLoadFlags(cmd)

	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	n, err := topN(cmd, cfg)
	if err != nil {
		return err
	}
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	analysis, err := loadAnalysis(cmd, args[0])
	if err != nil {
		return err
	}

	filtered := query.Apply(analysis.Tenants, filter)
	logFilter(filter, len(filtered), len(analysis.Tenants))

	outln(cmd, cli.FormatTitle("Tenant Quality Dashboard"))
	outln(cmd, cli.RenderMetrics(insights.Summarize(filtered, analysis.Tenants)))
	outln(cmd)
	outln(cmd, cli.BoldStyle.Render(fmt.Sprintf("%s Top %d Tenants", cli.TrophyIcon, n)))
	outln(cmd, cli.RenderLeaderboard(query.Top(filtered, n)))

	return nil
}
