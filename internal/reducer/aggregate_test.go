package reducer

import (
	"math/big"
	"os"
	"testing"

	"github.com/justitia-lab/shardscope/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	table := &DerivedTable{
		TotalSubsidy: big.NewInt(3_000_000),
		Records: []DerivedRecord{
			{IsCrossShard: true, QueueLatencySec: 8, FeeWei: 100, SubsidyWei: 50, ProfitWei: 150},
			{IsCrossShard: true, QueueLatencySec: 6, FeeWei: 200, SubsidyWei: 70, ProfitWei: 270},
			{IsCrossShard: false, QueueLatencySec: 2, FeeWei: 300, ProfitWei: 300},
			{IsCrossShard: false, QueueLatencySec: 4, FeeWei: 100, ProfitWei: 100},
		},
	}

	s := Summarize("R=E(f_B)", table)
	assert.Equal(t, "R=E(f_B)", s.SchemeName)
	assert.Equal(t, 4, s.TotalTx)
	assert.Equal(t, 2, s.CTXCount)
	assert.Equal(t, 2, s.ITXCount)
	assert.Equal(t, 7.0, s.CTXMeanLatency)
	assert.Equal(t, 3.0, s.ITXMeanLatency)
	require.True(t, s.LatencyRatioDefined)
	assert.InDelta(t, 7.0/3.0, s.LatencyRatio, 1e-12)
	assert.Equal(t, 150.0, s.CTXMeanFee)
	assert.Equal(t, 60.0, s.CTXMeanSubsidy)
	assert.Equal(t, 210.0, s.CTXMeanProfit)
	assert.Equal(t, 200.0, s.ITXMeanProfit)
	require.True(t, s.ProfitRatioDefined)
	assert.InDelta(t, 210.0/200.0, s.ProfitRatio, 1e-12)
	assert.Equal(t, "3000000", s.TotalSubsidyPaid.String())
}

func TestSummarize_UndefinedRatios(t *testing.T) {
	table := &DerivedTable{
		TotalSubsidy: new(big.Int),
		Records: []DerivedRecord{
			{IsCrossShard: true, QueueLatencySec: 8, FeeWei: 100, ProfitWei: 100},
		},
	}

	s := Summarize("ctx-only", table)
	assert.False(t, s.LatencyRatioDefined, "no intra-shard records, ratio is undefined")
	assert.False(t, s.ProfitRatioDefined)
	assert.Zero(t, s.LatencyRatio)
	assert.Zero(t, s.ProfitRatio)
}

func TestAggregateSchemes_MissingSchemeSkipped(t *testing.T) {
	names := []string{"Monoxide", "R=0", "R=E(f_B)", "R=E(f_A)+E(f_B)", "R=1 ETH/CTX"}

	load := func(name string) (*DerivedTable, error) {
		if name == "R=0" {
			return nil, &loader.MissingInputError{Path: "../expTest_R0/result", Err: os.ErrNotExist}
		}
		return &DerivedTable{
			TotalSubsidy: new(big.Int),
			Records: []DerivedRecord{
				{IsCrossShard: true, QueueLatencySec: 5, FeeWei: 10, ProfitWei: 10},
				{IsCrossShard: false, QueueLatencySec: 2, FeeWei: 10, ProfitWei: 10},
			},
		}, nil
	}

	summaries, skipped := AggregateSchemes(names, load)

	require.Len(t, summaries, 4)
	for _, s := range summaries {
		assert.NotEqual(t, "R=0", s.SchemeName)
		assert.NotZero(t, s.TotalTx, "missing schemes never appear as zero-valued summaries")
	}

	require.Len(t, skipped, 1)
	assert.Equal(t, "R=0", skipped[0].SchemeName)
	assert.Contains(t, skipped[0].Reason, "expTest_R0")
}

func TestAggregateSchemes_PreservesOrder(t *testing.T) {
	names := []string{"a", "b", "c"}
	load := func(name string) (*DerivedTable, error) {
		return &DerivedTable{TotalSubsidy: new(big.Int)}, nil
	}
	summaries, skipped := AggregateSchemes(names, load)
	require.Len(t, summaries, 3)
	assert.Empty(t, skipped)
	for i, s := range summaries {
		assert.Equal(t, names[i], s.SchemeName)
	}
}
