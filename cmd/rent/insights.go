package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/the-rent-must-flow/internal/cli"
	"github.com/Veraticus/the-rent-must-flow/internal/insights"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/spf13/cobra"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights FILE",
		Short: "Show score distribution, group analyses and screening advice",
		Args:  cobra.ExactArgs(1),
		RunE:  runInsights,
	}

	cmd.Flags().String("format", "table", "Output format (table, json)")
	addFilterFlags(cmd)
	addLoadFlags(cmd)

	return cmd
}

func runInsights(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown output format %q (want table or json)", format)
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
	report := insights.NewReport(filtered, analysis.Tenants)

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}

	outln(cmd, cli.FormatTitle("Tenant Insights"))
	outln(cmd, cli.RenderMetrics(report.Summary))
	outln(cmd)
	outln(cmd, cli.RenderBox(cli.ChartIcon+" Analytics", cli.RenderDistribution(report.Distribution)))
	outln(cmd, cli.RenderBox(cli.StarIcon+" Insights", cli.RenderInsights(report)))

	return nil
}
