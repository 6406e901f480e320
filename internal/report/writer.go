package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/justitia-lab/shardscope/internal/reducer"
)

// WriteQuantileStatsCSV writes the per-bin statistics table with the same
// columns the downstream paper tooling expects.
func WriteQuantileStatsCSV(path string, bins []reducer.QuantileBin) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"FeeQuantile", "FeeMean", "FeeMedian", "FeeMin", "FeeMax", "FeeCount",
		"LatencyMean", "LatencyMedian", "LatencyStd", "LatencyCount",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, b := range bins {
		row := []string{
			strconv.Itoa(b.Rank),
			formatFloat(b.FeeMean),
			formatFloat(b.FeeMedian),
			formatFloat(b.FeeMin),
			formatFloat(b.FeeMax),
			strconv.Itoa(b.Count),
			formatFloat(b.LatencyMean),
			formatFloat(b.LatencyMedian),
			formatFloat(b.LatencyStd),
			strconv.Itoa(b.Count),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ComparisonReport is the serialized result of a cross-scheme run.
type ComparisonReport struct {
	Schemes []reducer.SchemeSummary `json:"schemes"`
	Skipped []reducer.SkippedScheme `json:"skipped"`
}

func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
