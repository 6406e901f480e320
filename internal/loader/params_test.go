package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardVariants(t *testing.T) {
	variants := StandardVariants()
	require.Len(t, variants, 5)

	assert.Equal(t, 0, variants[0].EnableJustitia, "Monoxide keeps the mechanism off")
	for _, v := range variants[1:] {
		assert.Equal(t, 1, v.EnableJustitia, v.Name)
	}
	assert.Equal(t, 1e18, variants[4].RewardBase, "flat subsidy is one ether in wei")

	// the fee-derived schemes carry the simulator's legacy 1000.0 default
	assert.Equal(t, 0.0, variants[0].RewardBase)
	assert.Equal(t, 0.0, variants[1].RewardBase)
	assert.Equal(t, 1000.0, variants[2].RewardBase)
	assert.Equal(t, 1000.0, variants[3].RewardBase)
}

func TestFlatRewardWei(t *testing.T) {
	assert.Equal(t, "1000000000000000000", FlatRewardWei("R=1 ETH/CTX").String())
	assert.Equal(t, "0", FlatRewardWei("R=E(f_B)").String(), "legacy reward base is not a flat payment")
	assert.Equal(t, "0", FlatRewardWei("Monoxide").String())
	assert.Equal(t, "0", FlatRewardWei("unknown").String())
}

func TestWriteVariant_OverridesOnlySubsidyKeys(t *testing.T) {
	outDir := t.TempDir()
	base := SimulatorParams{
		"BlockSize":           500,
		"InjectSpeed":         1500,
		"EnableJustitia":      1,
		"JustitiaSubsidyMode": 1,
		"JustitiaRewardBase":  1000.0,
	}

	path, err := WriteVariant(base, StandardVariants()[0], outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "paramsConfig_monoxide.json"), path)

	got, err := LoadSimulatorParams(path)
	require.NoError(t, err)
	assert.Equal(t, float64(500), got["BlockSize"], "unrelated keys pass through")
	assert.Equal(t, float64(1500), got["InjectSpeed"])
	assert.Equal(t, float64(0), got["EnableJustitia"])
	assert.Equal(t, float64(0), got["JustitiaSubsidyMode"])
	assert.Equal(t, float64(0), got["JustitiaRewardBase"])

	// writing a variant must not mutate the base
	assert.Equal(t, 1, base["EnableJustitia"])
}

func TestLoadSimulatorParams_Missing(t *testing.T) {
	_, err := LoadSimulatorParams(filepath.Join(t.TempDir(), "paramsConfig.json"))
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
}
