package reducer

import (
	"math/big"

	"github.com/justitia-lab/shardscope/internal/common"
	"github.com/justitia-lab/shardscope/internal/loader"
	"github.com/rs/zerolog/log"
)

// DeriveOptions carries the sanity ceilings for row filtering. Queueing and
// end-to-end confirm latency have different ceilings because they measure
// different intervals.
type DeriveOptions struct {
	QueueCeilingSec   float64
	ConfirmCeilingSec float64
}

func DefaultDeriveOptions() DeriveOptions {
	return DeriveOptions{QueueCeilingSec: 1000, ConfirmCeilingSec: 500}
}

// DropCounts records how many rows the deriver removed, by reason. Callers
// can detect when filtering eats an unexpectedly large fraction of a run.
type DropCounts struct {
	NegativeLatency  int
	ExcessiveLatency int
	BadNumeric       int
}

func (d DropCounts) Total() int {
	return d.NegativeLatency + d.ExcessiveLatency + d.BadNumeric
}

// DerivedRecord is one retained transaction with its derived fields.
type DerivedRecord struct {
	IsCrossShard    bool
	QueueLatencySec float64
	FeeWei          float64
	SubsidyWei      float64
	ProfitWei       float64
}

// DerivedTable is the filtered, augmented form of a transaction table.
type DerivedTable struct {
	Records      []DerivedRecord
	Dropped      DropCounts
	TotalSubsidy *big.Int
}

func (t *DerivedTable) CTXCount() int {
	n := 0
	for _, r := range t.Records {
		if r.IsCrossShard {
			n++
		}
	}
	return n
}

// Derive computes queueing latency and proposer profit for every record and
// filters invalid rows. Pure transform: the input table is not modified.
//
// A row is invalid when its latency is negative, exceeds the configured
// ceiling, or its fee/timestamps are non-numeric after coercion. Zero and
// negative fees are treated as data errors, not as valid zero-fee entries.
func Derive(table *loader.TxTable, opts DeriveOptions) *DerivedTable {
	out := &DerivedTable{TotalSubsidy: new(big.Int)}

	for _, rec := range table.Records {
		if rec.ProposeTimestamp == 0 || rec.CommitTimestamp == 0 {
			out.Dropped.BadNumeric++
			continue
		}
		if rec.FeeToProposer == nil || rec.FeeToProposer.Sign() <= 0 {
			out.Dropped.BadNumeric++
			continue
		}

		latencySec := float64(rec.CommitTimestamp-rec.ProposeTimestamp) / 1000.0
		if latencySec < 0 {
			out.Dropped.NegativeLatency++
			continue
		}
		if latencySec > opts.QueueCeilingSec {
			out.Dropped.ExcessiveLatency++
			continue
		}
		if rec.HasConfirmedLatency && rec.ConfirmedLatencyMs/1000.0 > opts.ConfirmCeilingSec {
			out.Dropped.ExcessiveLatency++
			continue
		}

		d := DerivedRecord{
			IsCrossShard:    rec.IsCrossShard,
			QueueLatencySec: latencySec,
			FeeWei:          common.WeiToFloat(rec.FeeToProposer),
		}
		if rec.IsCrossShard && rec.SubsidyR != nil && rec.SubsidyR.Sign() > 0 {
			d.SubsidyWei = common.WeiToFloat(rec.SubsidyR)
			out.TotalSubsidy.Add(out.TotalSubsidy, rec.SubsidyR)
		}
		d.ProfitWei = d.FeeWei + d.SubsidyWei
		out.Records = append(out.Records, d)
	}

	if dropped := out.Dropped.Total(); dropped > 0 {
		log.Info().Str("source", table.Path).
			Int("retained", len(out.Records)).
			Int("negativeLatency", out.Dropped.NegativeLatency).
			Int("excessiveLatency", out.Dropped.ExcessiveLatency).
			Int("badNumeric", out.Dropped.BadNumeric).
			Msg("dropped invalid rows")
	}
	return out
}

// DeriveFeeLatency filters and converts the per-CTX fee/latency table into
// bin-ready points, applying the same validity rules as Derive.
func DeriveFeeLatency(records []common.CTXFeeLatency, opts DeriveOptions) ([]FeePoint, DropCounts) {
	var points []FeePoint
	var dropped DropCounts

	for _, rec := range records {
		if rec.FeeToProposer == nil || rec.FeeToProposer.Sign() <= 0 {
			dropped.BadNumeric++
			continue
		}
		latencySec := rec.QueueLatencyMs / 1000.0
		if rec.QueueLatencyMs < 0 {
			dropped.NegativeLatency++
			continue
		}
		if latencySec > opts.QueueCeilingSec {
			dropped.ExcessiveLatency++
			continue
		}
		points = append(points, FeePoint{
			FeeWei:     common.WeiToFloat(rec.FeeToProposer),
			LatencySec: latencySec,
		})
	}

	if dropped.Total() > 0 {
		log.Info().Int("retained", len(points)).
			Int("negativeLatency", dropped.NegativeLatency).
			Int("excessiveLatency", dropped.ExcessiveLatency).
			Int("badNumeric", dropped.BadNumeric).
			Msg("dropped invalid CTX fee/latency rows")
	}
	return points, dropped
}

// FeeLatencyPoints extracts bin-ready points for the cross-shard subset of a
// derived table.
func FeeLatencyPoints(t *DerivedTable) []FeePoint {
	var points []FeePoint
	for _, r := range t.Records {
		if r.IsCrossShard {
			points = append(points, FeePoint{FeeWei: r.FeeWei, LatencySec: r.QueueLatencySec})
		}
	}
	return points
}
