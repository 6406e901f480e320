package reducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMannWhitneyULess_HandComputed(t *testing.T) {
	// x below y: ranks 1,2 vs 3,4, so U=0, z=(0.5-2)/sqrt(5/3)
	u, p := mannWhitneyULess([]float64{1, 2}, []float64{3, 4})
	assert.Equal(t, 0.0, u)
	assert.InDelta(t, 0.1226, p, 1e-3)
}

func TestMannWhitneyULess_Direction(t *testing.T) {
	low := make([]float64, 50)
	high := make([]float64, 50)
	for i := range low {
		low[i] = float64(i)
		high[i] = float64(i) + 100
	}

	_, pLess := mannWhitneyULess(low, high)
	assert.Less(t, pLess, 0.001, "clearly shifted-down sample")

	_, pGreater := mannWhitneyULess(high, low)
	assert.Greater(t, pGreater, 0.999)
}

func TestMannWhitneyULess_AllTied(t *testing.T) {
	_, p := mannWhitneyULess([]float64{5, 5, 5}, []float64{5, 5})
	assert.Equal(t, 0.5, p, "identical samples carry no evidence")
}

func TestMidRanks(t *testing.T) {
	ranks, tieTerm := midRanks([]float64{3, 1}, []float64{2, 3})
	require.Len(t, ranks, 4)
	// sorted: 1, 2, 3, 3 with the tie at ranks 3 and 4
	assert.Equal(t, 3.5, ranks[0])
	assert.Equal(t, 1.0, ranks[1])
	assert.Equal(t, 2.0, ranks[2])
	assert.Equal(t, 3.5, ranks[3])
	assert.Equal(t, 6.0, tieTerm)
}
