package main

import (
	"fmt"

	"github.com/Veraticus/the-rent-must-flow/internal/cli"
	"github.com/Veraticus/the-rent-must-flow/internal/export"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Search, sort and inspect tenants",
		Long: `List the tenants of FILE matching the filters, sorted by any score or
financial column, and show the full profile and score breakdown of one.

The profile is shown when exactly one tenant matches, or with --detail.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().String("sort", string(query.SortByScore), "Sort by score, income, credit, age or name")
	cmd.Flags().String("order", string(query.Descending), "Sort order (asc, desc)")
	cmd.Flags().StringSlice("columns", nil, "Columns to list (default: the full report columns)")
	cmd.Flags().Bool("detail", false, "Show the profile of the first listed tenant")
	addFilterFlags(cmd)
	addLoadFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	sortFlag, _ := cmd.Flags().GetString("sort")
	key, err := query.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}
	orderFlag, _ := cmd.Flags().GetString("order")
	dir, err := query.ParseDirection(orderFlag)
	if err != nil {
		return err
	}
	columns, _ := cmd.Flags().GetStringSlice("columns")
	if len(columns) == 0 {
		columns = export.DefaultColumns
	}

	analysis, err := loadAnalysis(cmd, args[0])
	if err != nil {
		return err
	}

	rows := query.Sort(query.Apply(analysis.Tenants, filter), key, dir)
	logFilter(filter, len(rows), len(analysis.Tenants))

	outln(cmd, cli.FormatTitle(fmt.Sprintf("%s Found %d tenant(s)", cli.SearchIcon, len(rows))))
	if len(rows) == 0 {
		outln(cmd, cli.FormatWarning("No tenants found."))
		return nil
	}

	outln(cmd, cli.RenderTable(export.Project(rows, columns)))

	if detail, _ := cmd.Flags().GetBool("detail"); detail || len(rows) == 1 {
		outln(cmd, cli.RenderTenantDetail(&rows[0]))
	}
	return nil
}
