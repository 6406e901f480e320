package reducer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justitia-lab/shardscope/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const explicitHeader = "TxHash (Byte -> Big Int),Tx propose timestamp,Tx finally commit timestamp," +
	"Relay1 Tx commit timestamp (not a relay tx -> nil),Relay2 Tx commit timestamp (not a relay tx -> nil)," +
	"FeeToProposer (wei),SubsidyR (wei),IsCrossShard"

const relayHeader = "TxHash (Byte -> Big Int),Tx propose timestamp,Tx finally commit timestamp," +
	"Relay1 Tx commit timestamp (not a relay tx -> nil),Relay2 Tx commit timestamp (not a relay tx -> nil)," +
	"FeeToProposer (wei),SubsidyR (wei)"

// Full pass over a realistic table: 1,000 rows of which 300 are cross-shard
// with distinct uniformly spread fees, loaded under both schema generations,
// derived and decile-binned.
func TestLoadDeriveBin_FullTable(t *testing.T) {
	dir := t.TempDir()
	explicit := []string{explicitHeader}
	relay := []string{relayHeader}

	ctxIndex := 0
	for i := 0; i < 1000; i++ {
		cross := i%10 < 3
		relayCell, flag, fee := "", "false", fmt.Sprintf("%d", 500_000+i)
		if cross {
			relayCell, flag = "2500", "true"
			// uniform distinct CTX fees
			fee = fmt.Sprintf("%d", 1_000_000+ctxIndex)
			ctxIndex++
		}
		commit := 2000 + i*3
		explicit = append(explicit, fmt.Sprintf("%d,1000,%d,%s,,%s,0,%s", i, commit, relayCell, fee, flag))
		relay = append(relay, fmt.Sprintf("%d,1000,%d,%s,,%s,0", i, commit, relayCell, fee))
	}
	require.Equal(t, 300, ctxIndex)

	writeTable := func(name string, lines []string) *loader.TxTable {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
		table, err := loader.LoadTxDetails(path)
		require.NoError(t, err)
		return table
	}

	a := writeTable("explicit.csv", explicit)
	b := writeTable("relay.csv", relay)
	assert.Equal(t, loader.StrategyExplicitFlag, a.Strategy)
	assert.Equal(t, loader.StrategyRelayInference, b.Strategy)

	require.Len(t, a.Records, 1000)
	require.Len(t, b.Records, 1000)
	for i := range a.Records {
		assert.Equal(t, a.Records[i].IsCrossShard, b.Records[i].IsCrossShard, "row %d", i)
	}

	derived := Derive(a, DefaultDeriveOptions())
	require.Len(t, derived.Records, 1000, "all rows are valid, none dropped")
	assert.Zero(t, derived.Dropped.Total())
	assert.Equal(t, 300, derived.CTXCount())

	points := FeeLatencyPoints(derived)
	require.Len(t, points, 300)

	bins, err := BinByFee(points, 10)
	require.NoError(t, err)
	require.Len(t, bins, 10)

	total := 0
	for _, bin := range bins {
		assert.InDelta(t, 30, bin.Count, 1)
		total += bin.Count
	}
	assert.Equal(t, 300, total)
}
