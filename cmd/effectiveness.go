package cmd

import (
	"fmt"
	"math/big"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	configs "github.com/justitia-lab/shardscope/configs"
	"github.com/justitia-lab/shardscope/internal/loader"
	"github.com/justitia-lab/shardscope/internal/reducer"
	"github.com/justitia-lab/shardscope/internal/report"
)

var effectivenessCmd = &cobra.Command{
	Use:   "effectiveness",
	Short: "Summarize per-epoch effectiveness tables across schemes",
	Long: "Loads every configured scheme's Justitia_Effectiveness.csv, computes " +
		"epoch-level latency and count statistics, and builds cumulative subsidy " +
		"curves from measured per-CTX subsidies.",
	Run: func(cmd *cobra.Command, args []string) {
		RunEffectiveness(cmd, args)
	},
}

func RunEffectiveness(cmd *cobra.Command, args []string) {
	opts := deriveOptions()

	var (
		summaries []reducer.EpochSummary
		skipped   []reducer.SkippedScheme
		names     []string
		series    = make(map[string]reducer.SubsidySeries)
	)

	for _, scheme := range configs.Cfg.Schemes {
		path, err := loader.ResolveDataFile(scheme.Dir, "Justitia_Effectiveness.csv")
		if err != nil {
			log.Warn().Str("scheme", scheme.Name).Err(err).Msg("skipping scheme")
			skipped = append(skipped, reducer.SkippedScheme{SchemeName: scheme.Name, Reason: err.Error()})
			continue
		}
		epochs, err := loader.LoadEffectiveness(path)
		if err != nil {
			log.Warn().Str("scheme", scheme.Name).Err(err).Msg("skipping scheme")
			skipped = append(skipped, reducer.SkippedScheme{SchemeName: scheme.Name, Reason: err.Error()})
			continue
		}
		summary, err := reducer.SummarizeEpochs(scheme.Name, epochs)
		if err != nil {
			log.Warn().Str("scheme", scheme.Name).Err(err).Msg("skipping scheme")
			skipped = append(skipped, reducer.SkippedScheme{SchemeName: scheme.Name, Reason: err.Error()})
			continue
		}
		summaries = append(summaries, summary)
		names = append(names, scheme.Name)

		// Subsidy curves use measured per-CTX amounts from Tx_Details when
		// available, the configured flat reward base otherwise; schemes
		// without either get no curve.
		perCTX := subsidyPerCTX(scheme.Dir, scheme.Name, opts)
		if perCTX.Sign() > 0 {
			series[scheme.Name] = reducer.CumulativeSubsidy(epochs, perCTX)
		}
	}

	if len(summaries) == 0 {
		log.Fatal().Int("skipped", len(skipped)).Msg("No effectiveness data could be loaded")
	}
	printEffectiveness(summaries, skipped)

	outDir := configs.Cfg.Analysis.OutputDir
	summaryPath := filepath.Join(outDir, "effectiveness_summary.json")
	out := struct {
		Schemes []reducer.EpochSummary           `json:"schemes"`
		Skipped []reducer.SkippedScheme          `json:"skipped"`
		Subsidy map[string]reducer.SubsidySeries `json:"subsidy"`
	}{summaries, skipped, series}
	if err := report.WriteJSON(summaryPath, out); err != nil {
		log.Fatal().Err(err).Msg("Failed to write effectiveness summary")
	}

	if len(series) > 0 {
		chartPath := filepath.Join(outDir, "cumulative_subsidy.png")
		if err := report.PlotCumulativeSubsidy(chartPath, names, series); err != nil {
			log.Error().Err(err).Msg("Subsidy chart rendering failed")
		}
	}
	log.Info().Str("summary", summaryPath).Msg("Effectiveness analysis written")
}

// subsidyPerCTX resolves one scheme's per-CTX subsidy: the measured SubsidyR
// average from its transaction table when the scheme recorded payments,
// falling back to the flat reward base for flat-mode schemes whose table is
// missing or subsidy-free.
func subsidyPerCTX(dir, schemeName string, opts reducer.DeriveOptions) *big.Int {
	if measured := measuredSubsidyPerCTX(dir, opts); measured.Sign() > 0 {
		return measured
	}
	return loader.FlatRewardWei(schemeName)
}

// measuredSubsidyPerCTX derives the scheme's average paid subsidy per CTX
// from its transaction table. Zero when the table is missing or the scheme
// paid nothing.
func measuredSubsidyPerCTX(dir string, opts reducer.DeriveOptions) *big.Int {
	path, err := loader.ResolveDataFile(dir, "Tx_Details.csv")
	if err != nil {
		return new(big.Int)
	}
	table, err := loader.LoadTxDetails(path)
	if err != nil {
		return new(big.Int)
	}
	return reducer.MeanSubsidyPerCTX(reducer.Derive(table, opts))
}

func printEffectiveness(summaries []reducer.EpochSummary, skipped []reducer.SkippedScheme) {
	fmt.Printf("\n%-20s %-8s %-10s %-10s %-12s %-12s %-10s %-9s\n",
		"Scheme", "Epochs", "CTX", "ITX", "CTXLat(s)", "ITXLat(s)", "LatRatio", "CTX%")
	for _, s := range summaries {
		fmt.Printf("%-20s %-8d %-10d %-10d %-12.4f %-12.4f %-10s %-9.2f\n",
			s.SchemeName, s.Epochs, s.TotalCTX, s.TotalITX,
			s.CTXAvgLatency, s.ITXAvgLatency,
			ratioString(s.LatencyRatio, s.LatencyRatioDefined),
			s.CTXShare*100)
	}
	if len(skipped) > 0 {
		fmt.Printf("\nSkipped schemes:\n")
		for _, s := range skipped {
			fmt.Printf("  %s: %s\n", s.SchemeName, s.Reason)
		}
	}
}
