package loader

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
)

// SimulatorParams is the simulator's paramsConfig.json. Only the subsidy
// keys are interesting here; everything else is carried through untouched
// when variants are written.
type SimulatorParams map[string]interface{}

// SchemeVariant describes one of the standard subsidy experiment configs.
type SchemeVariant struct {
	Name           string
	FileName       string
	Description    string
	EnableJustitia int
	SubsidyMode    int
	RewardBase     float64
}

// SubsidyModeFlat is the simulator mode that pays RewardBase wei per CTX.
// The other modes derive the subsidy from expected fees, where RewardBase is
// a legacy key the simulator ignores.
const SubsidyModeFlat = 4

// StandardVariants are the five configurations the comparison figures are
// built from, matching the simulator's subsidy modes.
func StandardVariants() []SchemeVariant {
	return []SchemeVariant{
		{Name: "Monoxide", FileName: "paramsConfig_monoxide.json",
			Description: "baseline, subsidy mechanism disabled",
			EnableJustitia: 0, SubsidyMode: 0, RewardBase: 0},
		{Name: "R=0", FileName: "paramsConfig_R0.json",
			Description: "mechanism enabled with zero subsidy",
			EnableJustitia: 1, SubsidyMode: 0, RewardBase: 0},
		{Name: "R=E(f_B)", FileName: "paramsConfig_R_EB.json",
			Description: "subsidy equals expected destination-shard fee",
			EnableJustitia: 1, SubsidyMode: 1, RewardBase: 1000.0},
		{Name: "R=E(f_A)+E(f_B)", FileName: "paramsConfig_R_EA_EB.json",
			Description: "subsidy equals the sum of both shards' expected fees",
			EnableJustitia: 1, SubsidyMode: 2, RewardBase: 1000.0},
		{Name: "R=1 ETH/CTX", FileName: "paramsConfig_R_1ETH.json",
			Description: "flat 1 ETH subsidy per cross-shard transaction",
			EnableJustitia: 1, SubsidyMode: SubsidyModeFlat, RewardBase: 1e18},
	}
}

// FlatRewardWei returns the configured per-CTX reward for a standard scheme
// running in flat subsidy mode, zero for every other scheme. Only flat mode
// actually pays RewardBase; other modes carry it as an inert legacy key.
func FlatRewardWei(name string) *big.Int {
	for _, v := range StandardVariants() {
		if v.Name == name && v.SubsidyMode == SubsidyModeFlat && v.RewardBase > 0 {
			r, _ := new(big.Float).SetFloat64(v.RewardBase).Int(nil)
			return r
		}
	}
	return new(big.Int)
}

// LoadSimulatorParams reads a base paramsConfig.json.
func LoadSimulatorParams(path string) (SimulatorParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MissingInputError{Path: path, Err: err}
	}
	var p SimulatorParams
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

// DefaultSimulatorParams is the fallback used when no base config exists,
// mirroring the simulator's shipped defaults.
func DefaultSimulatorParams() SimulatorParams {
	return SimulatorParams{
		"ConsensusMethod":      3,
		"ExpDataRootDir":       "expTest",
		"Block_Interval":       5000,
		"BlockSize":            1000,
		"InjectSpeed":          2000,
		"TotalDataSize":        250000,
		"TxBatchSize":          25000,
		"BrokerNum":            10,
		"EnableJustitia":       1,
		"JustitiaSubsidyMode":  1,
		"JustitiaWindowBlocks": 16,
		"JustitiaGammaMin":     0,
		"JustitiaGammaMax":     0,
		"JustitiaRewardBase":   1000.0,
	}
}

// WriteVariant writes one scheme's config, overriding only the subsidy keys.
func WriteVariant(base SimulatorParams, v SchemeVariant, outDir string) (string, error) {
	cfg := make(SimulatorParams, len(base)+3)
	for k, val := range base {
		cfg[k] = val
	}
	cfg["EnableJustitia"] = v.EnableJustitia
	cfg["JustitiaSubsidyMode"] = v.SubsidyMode
	cfg["JustitiaRewardBase"] = v.RewardBase

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := outDir + string(os.PathSeparator) + v.FileName
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
