package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	configs "github.com/justitia-lab/shardscope/configs"
	"github.com/justitia-lab/shardscope/internal/common"
	"github.com/justitia-lab/shardscope/internal/export"
	"github.com/justitia-lab/shardscope/internal/loader"
	"github.com/justitia-lab/shardscope/internal/reducer"
	"github.com/justitia-lab/shardscope/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare subsidy schemes from their Tx_Details tables",
	Long: "Loads every configured scheme's Tx_Details.csv, derives per-transaction " +
		"latency and profit, and compares the schemes' aggregate statistics. " +
		"Schemes with missing data are skipped and reported, never zero-filled.",
	Run: func(cmd *cobra.Command, args []string) {
		RunCompare(cmd, args)
	},
}

func RunCompare(cmd *cobra.Command, args []string) {
	opts := deriveOptions()

	dirs := make(map[string]string, len(configs.Cfg.Schemes))
	names := make([]string, 0, len(configs.Cfg.Schemes))
	for _, s := range configs.Cfg.Schemes {
		dirs[s.Name] = s.Dir
		names = append(names, s.Name)
	}

	tables := make(map[string]*reducer.DerivedTable)
	summaries, skipped := reducer.AggregateSchemes(names, func(name string) (*reducer.DerivedTable, error) {
		path, err := loader.ResolveDataFile(dirs[name], "Tx_Details.csv")
		if err != nil {
			return nil, err
		}
		table, err := loader.LoadTxDetails(path)
		if err != nil {
			return nil, err
		}
		derived := reducer.Derive(table, opts)
		tables[name] = derived
		return derived, nil
	})

	if len(summaries) == 0 {
		log.Fatal().Int("skipped", len(skipped)).Msg("No scheme data could be loaded")
	}
	printComparison(summaries, skipped)

	outDir := configs.Cfg.Analysis.OutputDir
	summaryPath := filepath.Join(outDir, "scheme_comparison.json")
	if err := report.WriteJSON(summaryPath, report.ComparisonReport{Schemes: summaries, Skipped: skipped}); err != nil {
		log.Fatal().Err(err).Msg("Failed to write comparison summary")
	}

	renderComparisonCharts(outDir, summaries, tables)

	if configs.Cfg.Analysis.ParquetExport {
		for name, table := range tables {
			p := filepath.Join(outDir, fmt.Sprintf("derived_%s.parquet", sanitizeName(name)))
			if err := export.WriteDerivedTable(p, table); err != nil {
				log.Error().Str("scheme", name).Err(err).Msg("Parquet export failed")
			}
		}
	}

	log.Info().Str("summary", summaryPath).Int("schemes", len(summaries)).Int("skipped", len(skipped)).Msg("Comparison written")
}

func printComparison(summaries []reducer.SchemeSummary, skipped []reducer.SkippedScheme) {
	fmt.Printf("\n%-20s %-10s %-10s %-9s %-12s %-12s %-10s %-10s\n",
		"Scheme", "TotalTx", "CTX", "CTX%", "CTXLat(s)", "ITXLat(s)", "LatRatio", "ProfRatio")
	for _, s := range summaries {
		ctxPct := 0.0
		if s.TotalTx > 0 {
			ctxPct = float64(s.CTXCount) / float64(s.TotalTx) * 100
		}
		fmt.Printf("%-20s %-10d %-10d %-9.2f %-12.3f %-12.3f %-10s %-10s\n",
			s.SchemeName, s.TotalTx, s.CTXCount, ctxPct,
			s.CTXMeanLatency, s.ITXMeanLatency,
			ratioString(s.LatencyRatio, s.LatencyRatioDefined),
			ratioString(s.ProfitRatio, s.ProfitRatioDefined))
	}

	fmt.Printf("\n%-20s %-16s %-16s %-16s %-16s\n",
		"Scheme", "CTXFee(ETH)", "CTXSubsidy(ETH)", "CTXProfit(ETH)", "TotalSubsidy(ETH)")
	for _, s := range summaries {
		fmt.Printf("%-20s %-16.10f %-16.10f %-16.10f %-16.6f\n",
			s.SchemeName,
			s.CTXMeanFee/1e18, s.CTXMeanSubsidy/1e18, s.CTXMeanProfit/1e18,
			common.WeiToEth(s.TotalSubsidyPaid))
	}

	if len(skipped) > 0 {
		fmt.Printf("\nSkipped schemes:\n")
		for _, s := range skipped {
			fmt.Printf("  %s: %s\n", s.SchemeName, s.Reason)
		}
	}
}

func ratioString(v float64, defined bool) string {
	if !defined {
		return "undefined"
	}
	return fmt.Sprintf("%.2fx", v)
}

func renderComparisonCharts(outDir string, summaries []reducer.SchemeSummary, tables map[string]*reducer.DerivedTable) {
	names := make([]string, 0, len(summaries))
	latencyRatios := make([]float64, 0, len(summaries))
	ctxShares := make([]float64, 0, len(summaries))
	latencies := make(map[string][]float64, len(summaries))

	for _, s := range summaries {
		names = append(names, s.SchemeName)
		if s.LatencyRatioDefined {
			latencyRatios = append(latencyRatios, s.LatencyRatio)
		} else {
			latencyRatios = append(latencyRatios, 0)
		}
		if s.TotalTx > 0 {
			ctxShares = append(ctxShares, float64(s.CTXCount)/float64(s.TotalTx)*100)
		} else {
			ctxShares = append(ctxShares, 0)
		}
		if t, ok := tables[s.SchemeName]; ok {
			var lats []float64
			for _, r := range t.Records {
				if r.IsCrossShard {
					lats = append(lats, r.QueueLatencySec)
				}
			}
			latencies[s.SchemeName] = lats
		}
	}

	charts := []struct {
		name string
		err  error
	}{
		{"latency_ratio.png", report.PlotSchemeBars(filepath.Join(outDir, "latency_ratio.png"),
			"CTX to ITX Latency Ratio", "Latency Ratio (CTX/ITX)", names, latencyRatios)},
		{"ctx_share.png", report.PlotSchemeBars(filepath.Join(outDir, "ctx_share.png"),
			"CTX Share of Committed Transactions", "CTX Share (%)", names, ctxShares)},
		{"latency_cdf.png", report.PlotLatencyCDF(filepath.Join(outDir, "latency_cdf.png"), names, latencies)},
		{"latency_box.png", report.PlotLatencyBox(filepath.Join(outDir, "latency_box.png"), names, latencies)},
	}
	for _, c := range charts {
		if c.err != nil {
			log.Error().Str("chart", c.name).Err(c.err).Msg("Chart rendering failed")
		}
	}
}

func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
