package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-rent-must-flow/internal/cli"
	"github.com/Veraticus/the-rent-must-flow/internal/config"
	"github.com/Veraticus/the-rent-must-flow/internal/export"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export scored tenants to CSV or Google Sheets",
		Long: `Write scored tenants as CSV with Tenant_Quality_Score, Quality_Category
and Age_Group appended to the original columns.

Kinds:
  top       the 20 highest scoring tenants passing the filters
  filtered  every tenant passing the filters
  all       every tenant, ignoring the filters

With --sheets the rows are also pushed to Google Sheets, one tab per kind.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringSlice("kind", []string{string(export.KindAll)}, "Export kinds (top, filtered, all)")
	cmd.Flags().String("dir", "", "Directory for CSV files (default export.dir)")
	cmd.Flags().Bool("sheets", false, "Also export to Google Sheets")
	addFilterFlags(cmd)
	addLoadFlags(cmd)

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kindFlags, _ := cmd.Flags().GetStringSlice("kind")
	kinds := make([]export.Kind, 0, len(kindFlags))
	for _, raw := range kindFlags {
		kind, err := export.ParseKind(raw)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	dir := cfg.Export.Dir
	if d, _ := cmd.Flags().GetString("dir"); d != "" {
		dir = config.ExpandPath(d)
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

	exporter := export.NewFileExporter(dir)
	for _, kind := range kinds {
		path, err := exporter.Export(kind, analysis.Dataset, filtered, analysis.Tenants)
		if err != nil {
			return err
		}
		outln(cmd, cli.FormatSuccess(fmt.Sprintf("Wrote %d tenants to %s", len(kind.Select(filtered, analysis.Tenants)), path)))
	}

	if sheets, _ := cmd.Flags().GetBool("sheets"); !sheets {
		return nil
	}

	sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load sheets configuration: %w", err)
	}
	writer, err := export.NewSheetsWriter(cmd.Context(), *sheetsCfg, slog.Default())
	if err != nil {
		return err
	}

	for _, kind := range kinds {
		id, err := writer.Write(cmd.Context(), kind, analysis.Dataset, filtered, analysis.Tenants)
		if err != nil {
			return err
		}
		outln(cmd, cli.FormatSuccess(fmt.Sprintf("Exported %s to https://docs.google.com/spreadsheets/d/%s", kind, id)))
	}

	return nil
}
