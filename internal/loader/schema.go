package loader

import (
	"fmt"
	"strconv"
	"strings"
)

// ClassificationStrategy selects how a row is decided to be cross-shard.
// The strategy is chosen from the header at load time, never from data values,
// because the two source formats are incompatible: one carries an explicit
// IsCrossShard flag, the other only relay commit timestamps.
type ClassificationStrategy int

const (
	// StrategyExplicitFlag reads a boolean IsCrossShard column.
	StrategyExplicitFlag ClassificationStrategy = iota
	// StrategyRelayInference treats a row as cross-shard when either relay
	// commit timestamp column is non-empty.
	StrategyRelayInference
)

func (s ClassificationStrategy) String() string {
	switch s {
	case StrategyExplicitFlag:
		return "explicit-flag"
	case StrategyRelayInference:
		return "relay-inference"
	default:
		return "unknown"
	}
}

// Column names as written by the simulator's measure modules. Older runs used
// shortened headers, so every semantic field carries a variant list.
var (
	colsTxHash       = []string{"TxHash (Byte -> Big Int)", "TxHash"}
	colsPropose      = []string{"Tx propose timestamp", "ProposeTimestamp"}
	colsBlockPropose = []string{"Block propose timestamp", "BlockProposeTimestamp"}
	colsCommit       = []string{"Tx finally commit timestamp", "CommitTimestamp"}
	colsRelay1       = []string{"Relay1 Tx commit timestamp (not a relay tx -> nil)", "Relay1 commit timestamp"}
	colsRelay2       = []string{"Relay2 Tx commit timestamp (not a relay tx -> nil)", "Relay2 commit timestamp"}
	colsConfirmedLat = []string{"Confirmed latency of this tx (ms)", "Confirmed latency (ms)"}
	colsFee          = []string{"FeeToProposer (wei)"}
	colsSubsidy      = []string{"SubsidyR (wei)"}
	colsIsCrossShard = []string{"IsCrossShard"}
	colsFromShard    = []string{"FromShard"}
	colsToShard      = []string{"ToShard"}
	colsQueueLatency = []string{"QueueLatency (ms)"}
	colsArrivalTime  = []string{"ArrivalTime (ms)"}
	colsCommitTimeMs = []string{"CommitTime (ms)"}
	colsEpochID      = []string{"EpochID"}
	colsInnerCount   = []string{"Inner-Shard Tx Count"}
	colsCrossCount   = []string{"Cross-Shard Tx Count"}
	colsInnerLatency = []string{"Inner-Shard Avg Latency (sec)"}
	colsCTXLatency   = []string{"CTX Avg Latency (sec)"}
	colsLatReduction = []string{"Latency Reduction (%)"}
	colsPriorityRate = []string{"CTX Priority Rate (%)"}
)

// SchemaMismatchError reports that a required semantic field could not be
// resolved against any known header variant. Proceeding with wrong columns
// would produce misleading statistics, so this aborts the run.
type SchemaMismatchError struct {
	Path    string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in %s: no known column for %s", e.Path, strings.Join(e.Missing, ", "))
}

// MissingInputError reports an absent or unreadable input file.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %s: %v", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

// header maps column names to their positional index.
type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		h[strings.TrimSpace(c)] = i
	}
	return h
}

// index resolves the first matching variant, -1 when absent.
func (h header) index(variants []string) int {
	for _, v := range variants {
		if i, ok := h[v]; ok {
			return i
		}
	}
	return -1
}

// detectStrategy picks the classification strategy from the available
// columns. Explicit flags win over relay inference when both are present.
func detectStrategy(h header, path string) (ClassificationStrategy, error) {
	if h.index(colsIsCrossShard) >= 0 {
		return StrategyExplicitFlag, nil
	}
	if h.index(colsRelay1) >= 0 || h.index(colsRelay2) >= 0 {
		return StrategyRelayInference, nil
	}
	return 0, &SchemaMismatchError{Path: path, Missing: []string{"IsCrossShard", "Relay1/Relay2 commit timestamp"}}
}

// relayCellPresent reports whether a relay commit cell marks the row as a
// relay phase. Cells normally hold a unix-ms timestamp, but one format
// variant stores the literal "true"/"false" instead; timestamp parse is
// attempted first so that variant is never miscounted.
func relayCellPresent(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "nil" {
		return false
	}
	if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return true
	}
	if b, err := strconv.ParseBool(cell); err == nil {
		return b
	}
	return false
}
