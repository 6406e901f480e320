package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeiToEth(t *testing.T) {
	oneEth := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	assert.Equal(t, 1.0, WeiToEth(oneEth))
	assert.Equal(t, 2.5, WeiToEth(big.NewInt(2_500_000_000_000_000_000)))
	assert.Zero(t, WeiToEth(nil))
}

func TestWeiToFloat(t *testing.T) {
	assert.Equal(t, 7_000_000_000_000.0, WeiToFloat(big.NewInt(7_000_000_000_000)))
	assert.Zero(t, WeiToFloat(nil))
}
