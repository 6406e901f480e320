package reducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinByFee_TooFewRecords(t *testing.T) {
	_, err := BinByFee([]FeePoint{{FeeWei: 1, LatencySec: 1}}, 20)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Have)
	assert.Equal(t, 2, insufficient.Need)
}

func TestBinByFee_DegenerateSingleFee(t *testing.T) {
	points := make([]FeePoint, 50)
	for i := range points {
		points[i] = FeePoint{FeeWei: 1_000_000, LatencySec: float64(i)}
	}
	for _, n := range []int{1, 10, 20, 100} {
		bins, err := BinByFee(points, n)
		require.NoError(t, err)
		require.Len(t, bins, 1, "n=%d", n)
		assert.Equal(t, 1, bins[0].Rank)
		assert.Equal(t, 50, bins[0].Count)
		assert.Equal(t, 1_000_000.0, bins[0].FeeMin)
		assert.Equal(t, 1_000_000.0, bins[0].FeeMax)
	}
}

// Every input record lands in exactly one bin.
func TestBinByFee_CountsRoundTrip(t *testing.T) {
	points := make([]FeePoint, 137)
	for i := range points {
		// clustered fees so some percentile edges coincide
		points[i] = FeePoint{FeeWei: float64(1000 + i%7), LatencySec: float64(i)}
	}

	bins, err := BinByFee(points, 20)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(bins), 20)

	total := 0
	for i, b := range bins {
		assert.Equal(t, i+1, b.Rank, "ranks are sequential after merging")
		assert.NotZero(t, b.Count, "empty bins are dropped")
		total += b.Count
	}
	assert.Equal(t, len(points), total)
}

func TestBinByFee_UniformDecileSplit(t *testing.T) {
	points := make([]FeePoint, 300)
	for i := range points {
		points[i] = FeePoint{
			FeeWei:     float64(1000 + i),
			LatencySec: 10 - float64(i)*0.01,
		}
	}

	bins, err := BinByFee(points, 10)
	require.NoError(t, err)
	require.Len(t, bins, 10)

	total := 0
	for _, b := range bins {
		assert.InDelta(t, 30, b.Count, 1)
		total += b.Count
	}
	assert.Equal(t, 300, total)

	for i := 1; i < len(bins); i++ {
		assert.Greater(t, bins[i].FeeMin, bins[i-1].FeeMax, "bins are fee-ordered and disjoint")
		assert.Less(t, bins[i].LatencyMean, bins[i-1].LatencyMean)
	}
}

func TestBinByFee_Statistics(t *testing.T) {
	points := []FeePoint{
		{FeeWei: 10, LatencySec: 4},
		{FeeWei: 20, LatencySec: 2},
		{FeeWei: 30, LatencySec: 3},
		{FeeWei: 40, LatencySec: 1},
	}
	bins, err := BinByFee(points, 1)
	require.NoError(t, err)
	require.Len(t, bins, 1)

	b := bins[0]
	assert.Equal(t, 25.0, b.FeeMean)
	assert.Equal(t, 25.0, b.FeeMedian)
	assert.Equal(t, 10.0, b.FeeMin)
	assert.Equal(t, 40.0, b.FeeMax)
	assert.Equal(t, 2.5, b.LatencyMean)
	assert.Equal(t, 2.5, b.LatencyMedian)
	assert.InDelta(t, 1.2909944, b.LatencyStd, 1e-6)
	assert.Len(t, b.Latencies(), 4)
}
