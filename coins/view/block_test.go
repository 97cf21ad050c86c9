package view

import (
	"testing"

	bt "github.com/bsv-blockchain/go-bt/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsv-blockchain/coinscache/coins"
)

// scenario f: priority computation
func TestScenarioGetPriority(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})
	t5 := hashFromByte(5)

	require.NoError(t, cache.AddCoin(coins.NewOutPoint(t5, 0), coin(100, 2, false), false))

	in := &bt.Input{PreviousTxOutIndex: 0, SequenceNumber: 0xffffffff}
	require.NoError(t, in.PreviousTxIDAdd(t5[:]))

	tx := &bt.Tx{Version: 1, Inputs: []*bt.Input{in}}

	priority, inChainInputValue := GetPriority(cache, tx, 10)

	assert.Equal(t, int64(100), inChainInputValue)
	assert.Equal(t, float64(800), priority)
}

func TestHaveInputsAndGetValueIn(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})
	t6 := hashFromByte(6)

	require.NoError(t, cache.AddCoin(coins.NewOutPoint(t6, 0), coin(25, 1, false), false))

	in := &bt.Input{PreviousTxOutIndex: 0, SequenceNumber: 0xffffffff}
	require.NoError(t, in.PreviousTxIDAdd(t6[:]))

	tx := &bt.Tx{Version: 1, Inputs: []*bt.Input{in}}

	assert.True(t, HaveInputs(cache, tx))
	assert.Equal(t, int64(25), GetValueIn(cache, tx))

	cache.SpendCoin(coins.NewOutPoint(t6, 0), nil)
	assert.False(t, HaveInputs(cache, tx))
}
