package cmd

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jhizzard/Strata/config"
)

var (
	cfgFile string
	cfg     *config.Config

	timeNow = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Value OTC derivative portfolios against a market snapshot",
	Long: `Strata values swaps and credit default swaps against discount, forward,
FX and credit curves described in a single configuration file.

It provides tools for:
  - Present and future valuation of whole portfolios
  - Conversion of multi-currency results into a reporting currency
  - Journaling of every valuation run to CSV or SQLite
  - Scheduled end-of-day revaluation`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if err := config.InitLogger(loaded.Log); err != nil {
			return err
		}
		cfg = loaded
		zap.L().Debug("config loaded", zap.String("file", cfgFile))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./strata.yaml)")
}
