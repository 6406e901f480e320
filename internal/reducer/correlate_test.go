package reducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeLatencyCorrelation_TooFewPoints(t *testing.T) {
	points := []FeePoint{{FeeWei: 1, LatencySec: 1}, {FeeWei: 2, LatencySec: 2}}
	_, err := FeeLatencyCorrelation(points)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Need)
}

func TestFeeLatencyCorrelation_MonotoneDecreasing(t *testing.T) {
	// latency = 100/fee: perfectly monotone but not linear
	var points []FeePoint
	for i := 1; i <= 20; i++ {
		points = append(points, FeePoint{FeeWei: float64(i), LatencySec: 100 / float64(i)})
	}

	c, err := FeeLatencyCorrelation(points)
	require.NoError(t, err)
	assert.Equal(t, 20, c.N)

	assert.InDelta(t, -1.0, c.Spearman, 1e-9, "rank correlation captures the monotone relation exactly")
	assert.InDelta(t, 0.0, c.SpearmanP, 1e-9)

	assert.Less(t, c.Pearson, -0.5)
	assert.Greater(t, c.Pearson, -1.0)
	assert.Less(t, c.PearsonP, 0.01)
}

func TestFeeLatencyCorrelation_Linear(t *testing.T) {
	var points []FeePoint
	for i := 0; i < 10; i++ {
		points = append(points, FeePoint{FeeWei: float64(i), LatencySec: 5 - 0.3*float64(i)})
	}

	c, err := FeeLatencyCorrelation(points)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, c.Pearson, 1e-9)
	assert.InDelta(t, 0.0, c.PearsonP, 1e-9)
}
