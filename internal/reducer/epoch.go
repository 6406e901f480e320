package reducer

import (
	"math/big"

	"github.com/justitia-lab/shardscope/internal/common"
)

// EpochSummary aggregates one scheme's per-epoch effectiveness table.
type EpochSummary struct {
	SchemeName string `json:"schemeName"`

	Epochs   int `json:"epochs"`
	TotalCTX int `json:"totalCtx"`
	TotalITX int `json:"totalItx"`

	CTXAvgLatency       float64 `json:"ctxAvgLatency"`
	ITXAvgLatency       float64 `json:"itxAvgLatency"`
	LatencyRatio        float64 `json:"latencyRatio"`
	LatencyRatioDefined bool    `json:"latencyRatioDefined"`

	CTXShare            float64 `json:"ctxShare"`
	AvgLatencyReduction float64 `json:"avgLatencyReduction"`
	AvgCTXPriorityRate  float64 `json:"avgCtxPriorityRate"`
}

// SummarizeEpochs reduces an effectiveness table to scheme-level statistics.
// Zero-latency epochs are skipped for the latency averages (the simulator
// writes zeros for epochs without committed CTXs).
func SummarizeEpochs(name string, records []common.EpochRecord) (EpochSummary, error) {
	if len(records) == 0 {
		return EpochSummary{}, &InsufficientDataError{Statistic: "epoch summary", Have: 0, Need: 1}
	}

	s := EpochSummary{SchemeName: name, Epochs: len(records)}
	var ctxLatSum, itxLatSum float64
	var ctxLatN, itxLatN int
	var reductionSum, prioritySum float64

	for _, r := range records {
		s.TotalCTX += r.CrossShardTxCount
		s.TotalITX += r.InnerShardTxCount
		if r.CTXAvgLatencySec > 0 {
			ctxLatSum += r.CTXAvgLatencySec
			ctxLatN++
		}
		if r.InnerAvgLatencySec > 0 {
			itxLatSum += r.InnerAvgLatencySec
			itxLatN++
		}
		reductionSum += r.LatencyReductionPct
		prioritySum += r.CTXPriorityRatePct
	}

	if ctxLatN > 0 {
		s.CTXAvgLatency = ctxLatSum / float64(ctxLatN)
	}
	if itxLatN > 0 {
		s.ITXAvgLatency = itxLatSum / float64(itxLatN)
	}
	if s.ITXAvgLatency > 0 {
		s.LatencyRatio = s.CTXAvgLatency / s.ITXAvgLatency
		s.LatencyRatioDefined = true
	}
	if total := s.TotalCTX + s.TotalITX; total > 0 {
		s.CTXShare = float64(s.TotalCTX) / float64(total)
	}
	s.AvgLatencyReduction = reductionSum / float64(len(records))
	s.AvgCTXPriorityRate = prioritySum / float64(len(records))
	return s, nil
}

// SubsidySeries is a cumulative subsidy curve over epochs, in ETH.
type SubsidySeries struct {
	Epochs        []int     `json:"epochs"`
	CumulativeEth []float64 `json:"cumulativeEth"`
}

// CumulativeSubsidy builds the cumulative subsidy curve for one scheme from
// its epoch table and a measured per-CTX subsidy. The per-CTX amount comes
// from real SubsidyR averages (or the configured flat reward base), never
// from synthesized fee distributions.
func CumulativeSubsidy(records []common.EpochRecord, perCTXWei *big.Int) SubsidySeries {
	series := SubsidySeries{
		Epochs:        make([]int, 0, len(records)),
		CumulativeEth: make([]float64, 0, len(records)),
	}
	total := new(big.Int)
	for _, r := range records {
		epochSubsidy := new(big.Int).Mul(perCTXWei, big.NewInt(int64(r.CrossShardTxCount)))
		total.Add(total, epochSubsidy)
		series.Epochs = append(series.Epochs, r.EpochID)
		series.CumulativeEth = append(series.CumulativeEth, common.WeiToEth(total))
	}
	return series
}

// MeanSubsidyPerCTX derives the measured average subsidy paid per cross-shard
// transaction from a derived table. Returns zero when the scheme paid no
// subsidy.
func MeanSubsidyPerCTX(t *DerivedTable) *big.Int {
	ctx := int64(t.CTXCount())
	if ctx == 0 {
		return new(big.Int)
	}
	return new(big.Int).Quo(t.TotalSubsidy, big.NewInt(ctx))
}
