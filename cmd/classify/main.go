package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/synaptica-ai/vetpathogen/pkg/classifier"
	"github.com/synaptica-ai/vetpathogen/pkg/common/config"
	"github.com/synaptica-ai/vetpathogen/pkg/common/logger"
	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
	"github.com/synaptica-ai/vetpathogen/pkg/common/render"
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
		rulesPath string
		delimiter string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:          "classify",
		Short:        "Classify isolates by sequence patterns",
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

			isolates, err := storage.LoadTable(input, delim)
			if err != nil {
				return err
			}
			classified, err := c.Classify(isolates)
			if err != nil {
				return err
			}
			return render.Table(cmd.OutOrStdout(), classified, models.ColumnID, models.ColumnPredictedSpecies)
		},
	}

	cmd.Flags().StringVar(&input, "input", cfg.InputPath, "CSV file containing isolate data with a sequence column")
	cmd.Flags().StringVar(&rulesPath, "rules", cfg.RulesPath, "YAML file overriding the built-in classification rules")
	cmd.Flags().StringVar(&delimiter, "delimiter", cfg.Delimiter, "field delimiter (comma, tab, or a single character); default by extension")
	cmd.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level")
	return cmd
}
