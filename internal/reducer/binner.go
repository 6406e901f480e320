package reducer

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FeePoint is one cross-shard transaction ready for fee-quantile binning.
type FeePoint struct {
	FeeWei     float64
	LatencySec float64
}

// QuantileBin is one bucket of the fee-percentile partition. Rank 1 is the
// lowest-fee bin.
type QuantileBin struct {
	Rank          int     `json:"rank"`
	FeeMean       float64 `json:"feeMean"`
	FeeMedian     float64 `json:"feeMedian"`
	FeeMin        float64 `json:"feeMin"`
	FeeMax        float64 `json:"feeMax"`
	LatencyMean   float64 `json:"latencyMean"`
	LatencyMedian float64 `json:"latencyMedian"`
	LatencyStd    float64 `json:"latencyStd"`
	Count         int     `json:"count"`

	latencies []float64
}

// BinByFee partitions cross-shard records into at most n bins by fee
// percentile and computes each bin's fee and latency statistics.
//
// Percentile edges are linearly interpolated (numpy-style) at 100*i/n for
// i=0..n. Duplicate edges are merged, so fewer than n bins may result when
// many records share fee values near a boundary. A fee column with exactly
// one distinct value produces a single bin holding every record.
func BinByFee(points []FeePoint, n int) ([]QuantileBin, error) {
	if len(points) < 2 {
		return nil, &InsufficientDataError{Statistic: "fee-quantile binning", Have: len(points), Need: 2}
	}
	if n < 1 {
		n = 1
	}

	fees := make([]float64, len(points))
	for i, p := range points {
		fees[i] = p.FeeWei
	}
	sort.Float64s(fees)

	// Degenerate distribution: one distinct fee value collapses every
	// percentile edge, so binning is skipped entirely.
	if fees[0] == fees[len(fees)-1] {
		return []QuantileBin{makeBin(1, points)}, nil
	}

	edges := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		e := stat.Quantile(float64(i)/float64(n), stat.LinInterp, fees, nil)
		if len(edges) == 0 || e > edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	nbins := len(edges) - 1

	// Bin j covers [edges[j], edges[j+1]); the last bin includes the max.
	groups := make([][]FeePoint, nbins)
	for _, p := range points {
		j := sort.Search(nbins-1, func(i int) bool { return edges[i+1] > p.FeeWei })
		if j >= nbins {
			j = nbins - 1
		}
		groups[j] = append(groups[j], p)
	}

	bins := make([]QuantileBin, 0, nbins)
	rank := 1
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		bins = append(bins, makeBin(rank, g))
		rank++
	}
	return bins, nil
}

func makeBin(rank int, points []FeePoint) QuantileBin {
	fees := make([]float64, len(points))
	lats := make([]float64, len(points))
	for i, p := range points {
		fees[i] = p.FeeWei
		lats[i] = p.LatencySec
	}
	sortedFees := append([]float64(nil), fees...)
	sortedLats := append([]float64(nil), lats...)
	sort.Float64s(sortedFees)
	sort.Float64s(sortedLats)

	b := QuantileBin{
		Rank:          rank,
		FeeMean:       stat.Mean(fees, nil),
		FeeMedian:     stat.Quantile(0.5, stat.LinInterp, sortedFees, nil),
		FeeMin:        sortedFees[0],
		FeeMax:        sortedFees[len(sortedFees)-1],
		LatencyMean:   stat.Mean(lats, nil),
		LatencyMedian: stat.Quantile(0.5, stat.LinInterp, sortedLats, nil),
		Count:         len(points),
		latencies:     lats,
	}
	if len(lats) > 1 {
		b.LatencyStd = stat.StdDev(lats, nil)
	}
	return b
}

// Latencies exposes a bin's underlying latency samples, used by the
// quartile-group comparison.
func (b QuantileBin) Latencies() []float64 {
	return b.latencies
}
