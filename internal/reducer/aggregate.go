package reducer

import (
	"math/big"

	"github.com/rs/zerolog/log"
)

// SchemeSummary is one subsidy scheme's aggregate statistics. Ratios carry an
// explicit Defined flag: a zero denominator yields an undefined ratio, never
// a silent zero.
type SchemeSummary struct {
	SchemeName string `json:"schemeName"`

	TotalTx  int `json:"totalTx"`
	CTXCount int `json:"ctxCount"`
	ITXCount int `json:"itxCount"`

	CTXMeanLatency      float64 `json:"ctxMeanLatency"`
	ITXMeanLatency      float64 `json:"itxMeanLatency"`
	LatencyRatio        float64 `json:"latencyRatio"`
	LatencyRatioDefined bool    `json:"latencyRatioDefined"`

	CTXMeanFee         float64 `json:"ctxMeanFee"`
	CTXMeanSubsidy     float64 `json:"ctxMeanSubsidy"`
	CTXMeanProfit      float64 `json:"ctxMeanProfit"`
	ITXMeanProfit      float64 `json:"itxMeanProfit"`
	ProfitRatio        float64 `json:"profitRatio"`
	ProfitRatioDefined bool    `json:"profitRatioDefined"`

	TotalSubsidyPaid *big.Int `json:"totalSubsidyPaid"`
}

// SkippedScheme records a scheme left out of a comparison and why, so that
// downstream plots never show silent zero-valued bars for missing data.
type SkippedScheme struct {
	SchemeName string `json:"schemeName"`
	Reason     string `json:"reason"`
}

// Summarize reduces one scheme's derived table to its aggregate statistics.
// Raw records are never compared across schemes; only these summaries are.
func Summarize(name string, t *DerivedTable) SchemeSummary {
	s := SchemeSummary{SchemeName: name, TotalSubsidyPaid: new(big.Int).Set(t.TotalSubsidy)}

	var (
		ctxLatency, itxLatency float64
		ctxFee, ctxSubsidy     float64
		ctxProfit, itxProfit   float64
	)
	for _, r := range t.Records {
		if r.IsCrossShard {
			s.CTXCount++
			ctxLatency += r.QueueLatencySec
			ctxFee += r.FeeWei
			ctxSubsidy += r.SubsidyWei
			ctxProfit += r.ProfitWei
		} else {
			s.ITXCount++
			itxLatency += r.QueueLatencySec
			itxProfit += r.ProfitWei
		}
	}
	s.TotalTx = s.CTXCount + s.ITXCount

	if s.CTXCount > 0 {
		n := float64(s.CTXCount)
		s.CTXMeanLatency = ctxLatency / n
		s.CTXMeanFee = ctxFee / n
		s.CTXMeanSubsidy = ctxSubsidy / n
		s.CTXMeanProfit = ctxProfit / n
	}
	if s.ITXCount > 0 {
		n := float64(s.ITXCount)
		s.ITXMeanLatency = itxLatency / n
		s.ITXMeanProfit = itxProfit / n
	}
	if s.ITXMeanLatency > 0 {
		s.LatencyRatio = s.CTXMeanLatency / s.ITXMeanLatency
		s.LatencyRatioDefined = true
	}
	if s.ITXMeanProfit > 0 {
		s.ProfitRatio = s.CTXMeanProfit / s.ITXMeanProfit
		s.ProfitRatioDefined = true
	}
	return s
}

// AggregateSchemes loads and summarizes every named scheme in order. A scheme
// whose input is absent or unreadable is omitted from the result set entirely
// and reported in the skip list; the remaining schemes are unaffected.
func AggregateSchemes(names []string, load func(name string) (*DerivedTable, error)) ([]SchemeSummary, []SkippedScheme) {
	summaries := make([]SchemeSummary, 0, len(names))
	skipped := []SkippedScheme{}

	for _, name := range names {
		table, err := load(name)
		if err != nil {
			log.Warn().Str("scheme", name).Err(err).Msg("skipping scheme")
			skipped = append(skipped, SkippedScheme{SchemeName: name, Reason: err.Error()})
			continue
		}
		summaries = append(summaries, Summarize(name, table))
	}
	return summaries, skipped
}
