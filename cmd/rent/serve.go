package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-rent-must-flow/internal/cli"
	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [FILE...]",
		Short: "Serve the tenant API over HTTP",
		Long: `Start the HTTP API. Tenant files are uploaded with POST /datasets and
kept in memory until deleted or the server stops. Files given as arguments
are loaded at startup.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().Int64("max-upload-bytes", 10<<20, "Largest accepted upload in bytes")
	addLoadFlags(cmd)

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.max_upload_bytes", cmd.Flags().Lookup("max-upload-bytes"))

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := server.NewStore()
	for _, path := range args {
		analysis, err := loadAnalysis(cmd, path)
		if err != nil {
			return err
		}
		id := store.Add(analysis)
		common.LogInfo("Preloaded dataset", common.Fields{"path": path, "id": id, "tenants": len(analysis.Tenants)})
	}

	logger := slog.Default()
	handler := server.NewHandler(store, registry, logger, cfg.Server.MaxUploadBytes)
	srv := server.New(cfg.Server, handler.Routes(), logger)
	outln(cmd, cli.FormatInfo(fmt.Sprintf("Serving %d dataset(s) on %s", len(args), cfg.Server.Addr)))

	if err := srv.Run(cmd.Context()); err != nil {
		common.LogError(err, "API server stopped", common.Fields{"addr": cfg.Server.Addr})
		return err
	}
	return nil
}
