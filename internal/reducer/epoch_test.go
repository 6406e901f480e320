package reducer

import (
	"math/big"
	"testing"

	"github.com/justitia-lab/shardscope/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEpochs(t *testing.T) {
	records := []common.EpochRecord{
		{EpochID: 0, InnerShardTxCount: 900, CrossShardTxCount: 100,
			InnerAvgLatencySec: 2.0, CTXAvgLatencySec: 8.0,
			LatencyReductionPct: 10, CTXPriorityRatePct: 40},
		{EpochID: 1, InnerShardTxCount: 500, CrossShardTxCount: 0,
			InnerAvgLatencySec: 2.5, CTXAvgLatencySec: 0,
			LatencyReductionPct: 0, CTXPriorityRatePct: 0},
	}

	s, err := SummarizeEpochs("R=0", records)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Epochs)
	assert.Equal(t, 100, s.TotalCTX)
	assert.Equal(t, 1400, s.TotalITX)
	assert.Equal(t, 8.0, s.CTXAvgLatency, "zero-latency epochs are excluded from the average")
	assert.Equal(t, 2.25, s.ITXAvgLatency)
	require.True(t, s.LatencyRatioDefined)
	assert.InDelta(t, 8.0/2.25, s.LatencyRatio, 1e-12)
	assert.InDelta(t, 100.0/1500.0, s.CTXShare, 1e-12)
	assert.Equal(t, 5.0, s.AvgLatencyReduction)
	assert.Equal(t, 20.0, s.AvgCTXPriorityRate)
}

func TestSummarizeEpochs_Empty(t *testing.T) {
	_, err := SummarizeEpochs("empty", nil)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
}

func TestCumulativeSubsidy(t *testing.T) {
	records := []common.EpochRecord{
		{EpochID: 0, CrossShardTxCount: 2},
		{EpochID: 1, CrossShardTxCount: 3},
		{EpochID: 2, CrossShardTxCount: 0},
	}
	oneEth := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	series := CumulativeSubsidy(records, oneEth)
	require.Len(t, series.Epochs, 3)
	assert.Equal(t, []int{0, 1, 2}, series.Epochs)
	assert.InDelta(t, 2.0, series.CumulativeEth[0], 1e-12)
	assert.InDelta(t, 5.0, series.CumulativeEth[1], 1e-12)
	assert.InDelta(t, 5.0, series.CumulativeEth[2], 1e-12, "epochs without CTXs hold the curve flat")
}

func TestMeanSubsidyPerCTX(t *testing.T) {
	table := &DerivedTable{
		TotalSubsidy: big.NewInt(10),
		Records: []DerivedRecord{
			{IsCrossShard: true},
			{IsCrossShard: true},
			{IsCrossShard: false},
		},
	}
	assert.Equal(t, "5", MeanSubsidyPerCTX(table).String())

	empty := &DerivedTable{TotalSubsidy: big.NewInt(10)}
	assert.Equal(t, "0", MeanSubsidyPerCTX(empty).String())
}
