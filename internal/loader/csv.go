package loader

import (
	"encoding/csv"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/justitia-lab/shardscope/internal/common"
	"github.com/rs/zerolog/log"
)

// TxTable is the parsed content of one Tx_Details.csv.
type TxTable struct {
	Path     string
	Strategy ClassificationStrategy
	Records  []common.TxRecord
}

func openCSV(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &MissingInputError{Path: path, Err: err}
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return f, r, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseMillis(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseWei(s string) *big.Int {
	if s == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil
	}
	return v
}

// LoadTxDetails reads a per-transaction detail table and classifies every
// row as cross-shard or intra-shard using the strategy the header supports.
func LoadTxDetails(path string) (*TxTable, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := r.Read()
	if err != nil {
		return nil, &MissingInputError{Path: path, Err: err}
	}
	h := newHeader(cols)

	strategy, err := detectStrategy(h, path)
	if err != nil {
		return nil, err
	}

	var (
		idxHash    = h.index(colsTxHash)
		idxPropose = h.index(colsPropose)
		idxBlkProp = h.index(colsBlockPropose)
		idxCommit  = h.index(colsCommit)
		idxRelay1  = h.index(colsRelay1)
		idxRelay2  = h.index(colsRelay2)
		idxConfirm = h.index(colsConfirmedLat)
		idxFee     = h.index(colsFee)
		idxSubsidy = h.index(colsSubsidy)
		idxFlag    = h.index(colsIsCrossShard)
		idxFrom    = h.index(colsFromShard)
		idxTo      = h.index(colsToShard)
	)
	if idxPropose < 0 || idxCommit < 0 {
		return nil, &SchemaMismatchError{Path: path, Missing: []string{"Tx propose timestamp", "Tx finally commit timestamp"}}
	}
	if idxFee < 0 {
		return nil, &SchemaMismatchError{Path: path, Missing: colsFee}
	}

	table := &TxTable{Path: path, Strategy: strategy}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping malformed CSV row")
			continue
		}

		rec := common.TxRecord{
			Hash:                  cell(row, idxHash),
			ProposeTimestamp:      parseMillis(cell(row, idxPropose)),
			BlockProposeTimestamp: parseMillis(cell(row, idxBlkProp)),
			CommitTimestamp:       parseMillis(cell(row, idxCommit)),
			Relay1CommitTimestamp: parseMillis(cell(row, idxRelay1)),
			Relay2CommitTimestamp: parseMillis(cell(row, idxRelay2)),
			FeeToProposer:         parseWei(cell(row, idxFee)),
			SubsidyR:              parseWei(cell(row, idxSubsidy)),
			FromShard:             int(parseMillis(cell(row, idxFrom))),
			ToShard:               int(parseMillis(cell(row, idxTo))),
		}
		if lat, err := strconv.ParseFloat(cell(row, idxConfirm), 64); err == nil {
			rec.ConfirmedLatencyMs = lat
			rec.HasConfirmedLatency = true
		}
		rec.IsCrossShard = classify(row, strategy, idxFlag, idxRelay1, idxRelay2)
		table.Records = append(table.Records, rec)
	}

	log.Debug().Str("path", path).Int("records", len(table.Records)).
		Stringer("strategy", strategy).Msg("loaded Tx_Details")
	return table, nil
}

// classify is total: every row is either cross-shard or intra-shard.
func classify(row []string, strategy ClassificationStrategy, idxFlag, idxRelay1, idxRelay2 int) bool {
	switch strategy {
	case StrategyExplicitFlag:
		b, err := strconv.ParseBool(cell(row, idxFlag))
		return err == nil && b
	default:
		return relayCellPresent(cell(row, idxRelay1)) || relayCellPresent(cell(row, idxRelay2))
	}
}

// LoadCTXFeeLatency reads the per-CTX fee and queue latency table.
func LoadCTXFeeLatency(path string) ([]common.CTXFeeLatency, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := r.Read()
	if err != nil {
		return nil, &MissingInputError{Path: path, Err: err}
	}
	h := newHeader(cols)

	idxFee := h.index(colsFee)
	idxQueue := h.index(colsQueueLatency)
	if idxFee < 0 || idxQueue < 0 {
		missing := []string{}
		if idxFee < 0 {
			missing = append(missing, colsFee[0])
		}
		if idxQueue < 0 {
			missing = append(missing, colsQueueLatency[0])
		}
		return nil, &SchemaMismatchError{Path: path, Missing: missing}
	}
	idxHash := h.index(colsTxHash)
	idxArrival := h.index(colsArrivalTime)
	idxCommit := h.index(colsCommitTimeMs)

	var out []common.CTXFeeLatency
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping malformed CSV row")
			continue
		}
		lat, err := strconv.ParseFloat(cell(row, idxQueue), 64)
		if err != nil {
			lat = -1 // flagged invalid, filtered by the deriver
		}
		out = append(out, common.CTXFeeLatency{
			TxHash:         cell(row, idxHash),
			FeeToProposer:  parseWei(cell(row, idxFee)),
			ArrivalTimeMs:  parseMillis(cell(row, idxArrival)),
			CommitTimeMs:   parseMillis(cell(row, idxCommit)),
			QueueLatencyMs: lat,
		})
	}

	log.Debug().Str("path", path).Int("records", len(out)).Msg("loaded CTX_Fee_Latency")
	return out, nil
}

// LoadEffectiveness reads the per-epoch effectiveness table.
func LoadEffectiveness(path string) ([]common.EpochRecord, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := r.Read()
	if err != nil {
		return nil, &MissingInputError{Path: path, Err: err}
	}
	h := newHeader(cols)

	idxEpoch := h.index(colsEpochID)
	idxInner := h.index(colsInnerCount)
	idxCross := h.index(colsCrossCount)
	idxInnerLat := h.index(colsInnerLatency)
	idxCTXLat := h.index(colsCTXLatency)
	if idxInner < 0 || idxCross < 0 || idxInnerLat < 0 || idxCTXLat < 0 {
		return nil, &SchemaMismatchError{Path: path, Missing: []string{
			colsInnerCount[0], colsCrossCount[0], colsInnerLatency[0], colsCTXLatency[0],
		}}
	}
	idxReduction := h.index(colsLatReduction)
	idxPriority := h.index(colsPriorityRate)

	parseF := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}

	var out []common.EpochRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping malformed CSV row")
			continue
		}
		out = append(out, common.EpochRecord{
			EpochID:             int(parseMillis(cell(row, idxEpoch))),
			InnerShardTxCount:   int(parseMillis(cell(row, idxInner))),
			CrossShardTxCount:   int(parseMillis(cell(row, idxCross))),
			InnerAvgLatencySec:  parseF(cell(row, idxInnerLat)),
			CTXAvgLatencySec:    parseF(cell(row, idxCTXLat)),
			LatencyReductionPct: parseF(cell(row, idxReduction)),
			CTXPriorityRatePct:  parseF(cell(row, idxPriority)),
		})
	}

	log.Debug().Str("path", path).Int("epochs", len(out)).Msg("loaded Justitia_Effectiveness")
	return out, nil
}

// ResolveDataFile finds a named CSV under an experiment directory, trying the
// newer supervisor_measureOutput/ layout first, then the directory itself.
func ResolveDataFile(dir string, name string) (string, error) {
	candidates := []string{
		filepath.Join(dir, "supervisor_measureOutput", name),
		filepath.Join(dir, name),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", &MissingInputError{Path: candidates[0], Err: os.ErrNotExist}
}
