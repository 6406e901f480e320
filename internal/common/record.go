package common

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// TxRecord is one confirmed transaction from Tx_Details.csv.
// Timestamps are unix milliseconds; zero means the column was empty.
type TxRecord struct {
	Hash                  string
	ProposeTimestamp      int64
	BlockProposeTimestamp int64
	CommitTimestamp       int64
	Relay1CommitTimestamp int64
	Relay2CommitTimestamp int64
	ConfirmedLatencyMs    float64
	HasConfirmedLatency   bool
	FeeToProposer         *big.Int
	SubsidyR              *big.Int
	IsCrossShard          bool
	FromShard             int
	ToShard               int
}

// CTXFeeLatency is one cross-shard transaction from CTX_Fee_Latency.csv.
type CTXFeeLatency struct {
	TxHash         string
	FeeToProposer  *big.Int
	ArrivalTimeMs  int64
	CommitTimeMs   int64
	QueueLatencyMs float64
}

// EpochRecord is one measurement epoch from Justitia_Effectiveness.csv.
type EpochRecord struct {
	EpochID             int
	InnerShardTxCount   int
	CrossShardTxCount   int
	InnerAvgLatencySec  float64
	CTXAvgLatencySec    float64
	LatencyReductionPct float64
	CTXPriorityRatePct  float64
}

// WeiToEth converts an exact wei amount to a float ETH value for display.
func WeiToEth(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether)).Float64()
	return f
}

// WeiToFloat converts wei to float64 for statistics. Fees in the observed
// experiments stay well under 2^63 so the float mantissa loss is acceptable
// for means and quantiles; exact totals stay in big.Int.
func WeiToFloat(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(wei).Float64()
	return f
}
