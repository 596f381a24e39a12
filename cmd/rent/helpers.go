package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/the-rent-must-flow/internal/cli"
	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/config"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig resolves the validated configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadAnalysis parses and scores the tenant file, drawing progress on stderr
// unless --quiet is set.
func loadAnalysis(cmd *cobra.Command, path string) (*model.Analysis, error) {
	var progress io.Writer
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		progress = cmd.ErrOrStderr()
	}

	analysis, err := cli.NewLoader(progress).Load(cmd.Context(), path)
	if err != nil {
		if common.IsInputError(err) {
			return nil, common.NewUserError(fmt.Sprintf("%s is not a valid tenant file", path), err)
		}
		return nil, err
	}
	return analysis, nil
}

// addLoadFlags registers flags shared by every command that reads a file.
func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("quiet", "q", false, "Hide the scoring progress bar")
}

// addFilterFlags registers the tenant filter flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-score", 0, "Minimum quality score (0-100)")
	cmd.Flags().StringSlice("category", nil, "Quality categories to include (repeatable)")
	cmd.Flags().StringSlice("employment", nil, "Employment statuses to include (repeatable)")
	cmd.Flags().String("payment", string(model.PaymentAll), "Payment record filter (all, on-time, late)")
	cmd.Flags().String("search", "", "Only tenants whose name contains this text")
}

// filterFromFlags builds the filter described by the filter flags.
func filterFromFlags(cmd *cobra.Command) (query.Filter, error) {
	flags := cmd.Flags()

	minScore, _ := flags.GetFloat64("min-score")
	if minScore < 0 || minScore > 100 {
		return query.Filter{}, fmt.Errorf("%w: --min-score must be between 0 and 100", common.ErrInvalidConfig)
	}

	paymentFlag, _ := flags.GetString("payment")
	payment, err := model.ParsePaymentMode(paymentFlag)
	if err != nil {
		return query.Filter{}, err
	}

	categoryFlags, _ := flags.GetStringSlice("category")
	categories := make([]model.Category, 0, len(categoryFlags))
	for _, raw := range categoryFlags {
		c, err := model.ParseCategory(raw)
		if err != nil {
			return query.Filter{}, err
		}
		categories = append(categories, c)
	}

	employment, _ := flags.GetStringSlice("employment")
	search, _ := flags.GetString("search")

	return query.Filter{
		MinScore:   minScore,
		Payment:    payment,
		Categories: categories,
		Employment: employment,
		Search:     search,
	}, nil
}

// topN returns --top when given, else the configured leaderboard size.
func topN(cmd *cobra.Command, cfg *config.Config) (int, error) {
	if !cmd.Flags().Changed("top") {
		return cfg.Dashboard.TopN, nil
	}
	n, _ := cmd.Flags().GetInt("top")
	if n <= 0 {
		return 0, fmt.Errorf("%w: --top must be positive", common.ErrInvalidConfig)
	}
	return n, nil
}

func logFilter(f query.Filter, matched, total int) {
	slog.Debug("Applied filter",
		"min_score", f.MinScore,
		"payment", f.Payment,
		"categories", f.Categories,
		"employment", f.Employment,
		"search", f.Search,
		"matched", matched,
		"total", total)
}

func outln(cmd *cobra.Command, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), args...)
}
