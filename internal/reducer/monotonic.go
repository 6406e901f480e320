package reducer

// Violation is one adjacent bin pair where latency increased with fee rank.
// A fee-prioritizing scheduler should serve higher payers no slower, so a
// non-empty violation list flags a scheduling anomaly.
type Violation struct {
	BinIndex         int     `json:"binIndex"`
	PreviousLatency  float64 `json:"previousLatency"`
	CurrentLatency   float64 `json:"currentLatency"`
	AbsoluteIncrease float64 `json:"absoluteIncrease"`
	PercentIncrease  float64 `json:"percentIncrease"`
}

// MonotonicityReport holds the diagnostics for one binned fee distribution.
// Mean and median are checked separately: outlier-sensitive means and robust
// medians can disagree, and conflating them into one pass/fail bit hides
// which one failed.
type MonotonicityReport struct {
	MeanViolations   []Violation         `json:"meanViolations"`
	MedianViolations []Violation         `json:"medianViolations"`
	Quartiles        *QuartileComparison `json:"quartiles,omitempty"`
}

func (r MonotonicityReport) Holds() bool {
	return len(r.MeanViolations) == 0 && len(r.MedianViolations) == 0
}

// CheckMonotonicity scans bins in ascending fee-rank order and reports every
// adjacent pair where latency increased, for mean and median latency, plus
// the quartile-group rank comparison when enough bins exist.
func CheckMonotonicity(bins []QuantileBin) MonotonicityReport {
	report := MonotonicityReport{
		MeanViolations:   violations(bins, func(b QuantileBin) float64 { return b.LatencyMean }),
		MedianViolations: violations(bins, func(b QuantileBin) float64 { return b.LatencyMedian }),
	}
	if qc, err := CompareQuartiles(bins); err == nil {
		report.Quartiles = &qc
	}
	return report
}

func violations(bins []QuantileBin, metric func(QuantileBin) float64) []Violation {
	out := []Violation{}
	for i := 1; i < len(bins); i++ {
		prev := metric(bins[i-1])
		cur := metric(bins[i])
		if cur <= prev {
			continue
		}
		v := Violation{
			BinIndex:         bins[i].Rank,
			PreviousLatency:  prev,
			CurrentLatency:   cur,
			AbsoluteIncrease: cur - prev,
		}
		if prev > 0 {
			v.PercentIncrease = (cur - prev) / prev * 100
		}
		out = append(out, v)
	}
	return out
}

// QuartileComparison is a rank-based two-group test between the merged
// records of the top and bottom fee-quartile bins. It supplements the
// bin-level check with a global significance statement robust to
// bin-boundary noise.
type QuartileComparison struct {
	HighGroupMeanLatency float64 `json:"highGroupMeanLatency"`
	LowGroupMeanLatency  float64 `json:"lowGroupMeanLatency"`
	HighGroupCount       int     `json:"highGroupCount"`
	LowGroupCount        int     `json:"lowGroupCount"`
	UStatistic           float64 `json:"uStatistic"`
	PValue               float64 `json:"pValue"`
}

// Significant reports whether the high-fee group is stochastically faster at
// the 5% level.
func (q QuartileComparison) Significant() bool {
	return q.HighGroupMeanLatency < q.LowGroupMeanLatency && q.PValue < 0.05
}

// CompareQuartiles merges the top max(1, n/4) bins and the bottom max(1, n/4)
// bins by fee rank and runs a one-sided Mann-Whitney U test with alternative
// hypothesis "high-fee latency is stochastically less than low-fee latency".
func CompareQuartiles(bins []QuantileBin) (QuartileComparison, error) {
	if len(bins) < 2 {
		return QuartileComparison{}, &InsufficientDataError{Statistic: "quartile comparison", Have: len(bins), Need: 2}
	}
	q := len(bins) / 4
	if q < 1 {
		q = 1
	}

	var low, high []float64
	for _, b := range bins[:q] {
		low = append(low, b.latencies...)
	}
	for _, b := range bins[len(bins)-q:] {
		high = append(high, b.latencies...)
	}
	if len(low) == 0 || len(high) == 0 {
		return QuartileComparison{}, &InsufficientDataError{Statistic: "quartile comparison", Have: 0, Need: 1}
	}

	u, p := mannWhitneyULess(high, low)
	return QuartileComparison{
		HighGroupMeanLatency: mean(high),
		LowGroupMeanLatency:  mean(low),
		HighGroupCount:       len(high),
		LowGroupCount:        len(low),
		UStatistic:           u,
		PValue:               p,
	}, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}
