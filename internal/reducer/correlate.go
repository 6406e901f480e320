package reducer

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation summarizes the fee-latency relationship over individual
// records. Pearson measures the linear relationship; Spearman the monotone
// one, which is the economically interesting direction here.
type Correlation struct {
	Pearson   float64 `json:"pearson"`
	PearsonP  float64 `json:"pearsonP"`
	Spearman  float64 `json:"spearman"`
	SpearmanP float64 `json:"spearmanP"`
	N         int     `json:"n"`
}

// FeeLatencyCorrelation computes Pearson and Spearman coefficients with
// two-sided p-values from the t approximation.
func FeeLatencyCorrelation(points []FeePoint) (Correlation, error) {
	if len(points) < 3 {
		return Correlation{}, &InsufficientDataError{Statistic: "fee-latency correlation", Have: len(points), Need: 3}
	}

	fees := make([]float64, len(points))
	lats := make([]float64, len(points))
	for i, p := range points {
		fees[i] = p.FeeWei
		lats[i] = p.LatencySec
	}

	c := Correlation{N: len(points)}
	c.Pearson = stat.Correlation(fees, lats, nil)
	c.PearsonP = correlationPValue(c.Pearson, len(points))

	feeRanks, _ := midRanks(fees, nil)
	latRanks, _ := midRanks(lats, nil)
	c.Spearman = stat.Correlation(feeRanks, latRanks, nil)
	c.SpearmanP = correlationPValue(c.Spearman, len(points))

	return c, nil
}

// correlationPValue is the two-sided p-value for a correlation coefficient r
// over n samples, via the t distribution with n-2 degrees of freedom.
func correlationPValue(r float64, n int) float64 {
	if math.IsNaN(r) {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.Survival(math.Abs(t))
}
