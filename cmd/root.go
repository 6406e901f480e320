package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configs "github.com/justitia-lab/shardscope/configs"
	customLogger "github.com/justitia-lab/shardscope/internal/log"
	"github.com/justitia-lab/shardscope/internal/reducer"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "shardscope",
		Short: "Offline analysis of sharding-simulator experiment logs",
		Long: "shardscope reduces the CSV outputs of cross-shard subsidy experiments " +
			"into fee-quantile statistics, monotonicity diagnostics and cross-scheme " +
			"comparisons, and renders the paper charts.",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().Int("bins", 0, "Number of fee-quantile bins")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for summary files and charts")
	rootCmd.PersistentFlags().Float64("queue-ceiling", 0, "Queueing latency sanity ceiling in seconds")
	rootCmd.PersistentFlags().Float64("confirm-ceiling", 0, "End-to-end confirm latency sanity ceiling in seconds")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	viper.BindPFlag("analysis.quantileBins", rootCmd.PersistentFlags().Lookup("bins"))
	viper.BindPFlag("analysis.outputDir", rootCmd.PersistentFlags().Lookup("output-dir"))
	viper.BindPFlag("analysis.queueCeilingSec", rootCmd.PersistentFlags().Lookup("queue-ceiling"))
	viper.BindPFlag("analysis.confirmCeilingSec", rootCmd.PersistentFlags().Lookup("confirm-ceiling"))
	rootCmd.AddCommand(feeLatencyCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(effectivenessCmd)
	rootCmd.AddCommand(genConfigsCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	configs.LoadConfig(cfgFile)
	customLogger.InitLogger()
}

func deriveOptions() reducer.DeriveOptions {
	return reducer.DeriveOptions{
		QueueCeilingSec:   configs.Cfg.Analysis.QueueCeilingSec,
		ConfirmCeilingSec: configs.Cfg.Analysis.ConfirmCeilingSec,
	}
}
