package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/synaptica-ai/vetpathogen/pkg/classifier"
	"github.com/synaptica-ai/vetpathogen/pkg/common/config"
	"github.com/synaptica-ai/vetpathogen/pkg/common/logger"
	"github.com/synaptica-ai/vetpathogen/pkg/common/render"
	"github.com/synaptica-ai/vetpathogen/pkg/observability/metrics"
	"github.com/synaptica-ai/vetpathogen/pkg/pipeline"
	"github.com/synaptica-ai/vetpathogen/pkg/resistance"
	"github.com/synaptica-ai/vetpathogen/pkg/storage"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		input     string
		output    string
		seed      int64
		rulesPath string
		delimiter string
		logLevel  string
		withStats bool
	)

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Generate the VetPathogen pipeline report from isolate data",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(logLevel)

			delim, err := storage.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}
			rules, err := classifier.LoadRules(rulesPath)
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}
			c, err := classifier.NewClassifier(rules)
			if err != nil {
				return err
			}
			svc, err := pipeline.NewService(c, resistance.NewPredictor(), delim)
			if err != nil {
				return err
			}

			req := pipeline.Request{InputPath: input, OutputPath: output}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			result, err := svc.GenerateReport(cmd.Context(), req)
			if withStats {
				if werr := metrics.WritePrometheus(cmd.ErrOrStderr()); werr != nil {
					logger.Log.WithError(werr).Warn("failed to write run metrics")
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := render.Table(out, result.Table); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "\nReport saved to %s\n", result.OutputPath)
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input", cfg.InputPath, "path to the isolates CSV dataset")
	cmd.Flags().StringVar(&output, "output", cfg.OutputPath, "destination CSV for the consolidated report")
	cmd.Flags().Int64Var(&seed, "seed", 0, "optional random seed for reproducible resistance predictions")
	cmd.Flags().StringVar(&rulesPath, "rules", cfg.RulesPath, "YAML file overriding the built-in classification rules")
	cmd.Flags().StringVar(&delimiter, "delimiter", cfg.Delimiter, "field delimiter (comma, tab, or a single character); default by extension")
	cmd.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level")
	cmd.Flags().BoolVar(&withStats, "metrics", false, "print run counters to stderr in Prometheus text format")
	return cmd
}
