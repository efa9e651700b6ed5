package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/synaptica-ai/vetpathogen/pkg/common/config"
	"github.com/synaptica-ai/vetpathogen/pkg/common/logger"
	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
	"github.com/synaptica-ai/vetpathogen/pkg/common/render"
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
		seed      int64
		delimiter string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:          "resistance",
		Short:        "Assign mock antimicrobial resistance risk levels to isolates",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(logLevel)

			delim, err := storage.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}
			isolates, err := storage.LoadTable(input, delim)
			if err != nil {
				return err
			}

			var seedPtr *int64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			predictions, err := resistance.PredictResistance(isolates, seedPtr)
			if err != nil {
				return err
			}
			return render.Table(cmd.OutOrStdout(), predictions, models.ColumnID, models.ColumnResistanceRisk)
		},
	}

	cmd.Flags().StringVar(&input, "input", cfg.InputPath, "CSV file containing isolate metadata")
	cmd.Flags().Int64Var(&seed, "seed", 0, "optional random seed for reproducible outcomes")
	cmd.Flags().StringVar(&delimiter, "delimiter", cfg.Delimiter, "field delimiter (comma, tab, or a single character); default by extension")
	cmd.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level")
	return cmd
}
