package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/justitia-lab/shardscope/internal/reducer"
)

// ParquetTxRecord is the flat row schema for derived-table exports, read
// back by notebook tooling on large runs.
type ParquetTxRecord struct {
	IsCrossShard    bool    `parquet:"is_cross_shard"`
	QueueLatencySec float64 `parquet:"queue_latency_sec"`
	FeeWei          float64 `parquet:"fee_wei"`
	SubsidyWei      float64 `parquet:"subsidy_wei"`
	ProfitWei       float64 `parquet:"profit_wei"`
}

var writerOptions = []parquet.WriterOption{
	parquet.Compression(&parquet.Zstd),
	parquet.DataPageStatistics(true),
}

// WriteDerivedTable exports a derived table to a zstd-compressed parquet file.
func WriteDerivedTable(path string, table *reducer.DerivedTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[ParquetTxRecord](f, writerOptions...)
	rows := make([]ParquetTxRecord, len(table.Records))
	for i, r := range table.Records {
		rows[i] = ParquetTxRecord{
			IsCrossShard:    r.IsCrossShard,
			QueueLatencySec: r.QueueLatencySec,
			FeeWei:          r.FeeWei,
			SubsidyWei:      r.SubsidyWei,
			ProfitWei:       r.ProfitWei,
		}
	}
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
