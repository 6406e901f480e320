package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	configs "github.com/justitia-lab/shardscope/configs"
	"github.com/justitia-lab/shardscope/internal/loader"
	"github.com/justitia-lab/shardscope/internal/reducer"
	"github.com/justitia-lab/shardscope/internal/report"
)

var (
	feeLatencyDataPath string

	feeLatencyCmd = &cobra.Command{
		Use:   "feelatency",
		Short: "Analyze CTX fee quantiles vs queue latency",
		Long: "Loads a CTX_Fee_Latency.csv, bins cross-shard transactions by fee " +
			"percentile, checks latency monotonicity and fee-latency correlation, " +
			"and writes the quantile statistics CSV plus a chart next to the data file.",
		Run: func(cmd *cobra.Command, args []string) {
			RunFeeLatency(cmd, args)
		},
	}
)

func init() {
	feeLatencyCmd.Flags().StringVar(&feeLatencyDataPath, "data", "../expTest/result/supervisor_measureOutput/CTX_Fee_Latency.csv", "CTX fee/latency data file")
}

func RunFeeLatency(cmd *cobra.Command, args []string) {
	records, err := loader.LoadCTXFeeLatency(feeLatencyDataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load CTX fee/latency data")
	}
	log.Info().Int("records", len(records)).Str("path", feeLatencyDataPath).Msg("Loaded CTX records")

	points, dropped := reducer.DeriveFeeLatency(records, deriveOptions())
	if len(points) == 0 {
		log.Fatal().Int("dropped", dropped.Total()).Msg("No valid records to analyze")
	}

	bins, err := reducer.BinByFee(points, configs.Cfg.Analysis.QuantileBins)
	if err != nil {
		log.Fatal().Err(err).Msg("Fee-quantile binning failed")
	}
	printQuantileTable(bins)

	mono := reducer.CheckMonotonicity(bins)
	printMonotonicity(mono)

	if corr, err := reducer.FeeLatencyCorrelation(points); err != nil {
		log.Warn().Err(err).Msg("Skipping correlation")
	} else {
		fmt.Printf("\nPearson correlation:  %+.4f (p=%.4e)\n", corr.Pearson, corr.PearsonP)
		fmt.Printf("Spearman correlation: %+.4f (p=%.4e)\n", corr.Spearman, corr.SpearmanP)
	}

	outDir := filepath.Dir(feeLatencyDataPath)
	statsPath := filepath.Join(outDir, "CTX_Fee_Latency_QuantileStats.csv")
	if err := report.WriteQuantileStatsCSV(statsPath, bins); err != nil {
		log.Fatal().Err(err).Msg("Failed to write quantile statistics")
	}
	chartPath := filepath.Join(outDir, "CTX_Fee_Latency_Analysis.png")
	if err := report.PlotFeeLatencyCurve(chartPath, bins); err != nil {
		log.Fatal().Err(err).Msg("Failed to render fee-latency chart")
	}
	log.Info().Str("stats", statsPath).Str("chart", chartPath).Msg("Fee-latency analysis written")
}

func printQuantileTable(bins []reducer.QuantileBin) {
	fmt.Printf("\n%-6s %-14s %-14s %-12s %-12s %-8s\n",
		"Bin", "FeeMean(wei)", "FeeMedian", "LatMean(s)", "LatMedian(s)", "Count")
	for _, b := range bins {
		fmt.Printf("%-6d %-14.4g %-14.4g %-12.3f %-12.3f %-8d\n",
			b.Rank, b.FeeMean, b.FeeMedian, b.LatencyMean, b.LatencyMedian, b.Count)
	}
}

func printMonotonicity(mono reducer.MonotonicityReport) {
	fmt.Println("\nMonotonicity check (latency should not increase with fee rank):")
	printViolations("mean", mono.MeanViolations)
	printViolations("median", mono.MedianViolations)

	if q := mono.Quartiles; q != nil {
		fmt.Printf("\nTop vs bottom fee quartile (Mann-Whitney U, one-sided):\n")
		fmt.Printf("  high-fee group: mean latency %.3fs (n=%d)\n", q.HighGroupMeanLatency, q.HighGroupCount)
		fmt.Printf("  low-fee group:  mean latency %.3fs (n=%d)\n", q.LowGroupMeanLatency, q.LowGroupCount)
		fmt.Printf("  U=%.1f p=%.4e\n", q.UStatistic, q.PValue)
		if q.Significant() {
			fmt.Println("  high-fee group is significantly faster (p < 0.05)")
		} else {
			fmt.Println("  no significant latency advantage for the high-fee group")
		}
	}
}

func printViolations(label string, vs []reducer.Violation) {
	if len(vs) == 0 {
		fmt.Printf("  %s latency: OK, no violations\n", label)
		return
	}
	fmt.Printf("  %s latency: %d violation(s)\n", label, len(vs))
	shown := vs
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, v := range shown {
		fmt.Printf("    bin %d: %.3fs -> %.3fs (+%.3fs, +%.2f%%)\n",
			v.BinIndex, v.PreviousLatency, v.CurrentLatency, v.AbsoluteIncrease, v.PercentIncrease)
	}
	if len(vs) > 10 {
		fmt.Printf("    ... %d more not shown\n", len(vs)-10)
	}
}
