package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/justitia-lab/shardscope/internal/reducer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteQuantileStatsCSV(t *testing.T) {
	points := []reducer.FeePoint{
		{FeeWei: 10, LatencySec: 4},
		{FeeWei: 20, LatencySec: 3},
		{FeeWei: 30, LatencySec: 2},
		{FeeWei: 40, LatencySec: 1},
	}
	bins, err := reducer.BinByFee(points, 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "fee_quantile_stats.csv")
	require.NoError(t, WriteQuantileStatsCSV(path, bins))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, len(bins)+1)
	assert.Equal(t, []string{
		"FeeQuantile", "FeeMean", "FeeMedian", "FeeMin", "FeeMax", "FeeCount",
		"LatencyMean", "LatencyMedian", "LatencyStd", "LatencyCount",
	}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "15", rows[1][1])
	assert.Equal(t, "2", rows[1][5])
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scheme_comparison.json")
	in := ComparisonReport{
		Skipped: []reducer.SkippedScheme{{SchemeName: "R=0", Reason: "missing input"}},
	}
	require.NoError(t, WriteJSON(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out ComparisonReport
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "R=0", out.Skipped[0].SchemeName)
}
