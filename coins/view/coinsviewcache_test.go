package view

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsv-blockchain/coinscache/coins"
)

// emptyBackingView is a BackingView with nothing in it, the bottom of a
// test stack.
type emptyBackingView struct{}

func (emptyBackingView) GetCoin(chainhash.Hash) (coins.CoinRecord, bool) { return coins.CoinRecord{}, false }
func (emptyBackingView) HaveCoin(chainhash.Hash) bool                    { return false }
func (emptyBackingView) GetBestBlock() chainhash.Hash                    { return chainhash.Hash{} }
func (emptyBackingView) BatchWrite(CacheMap, chainhash.Hash) error       { return nil }
func (emptyBackingView) GetStats() (Stats, bool)                         { return Stats{}, false }

func hashFromByte(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b

	return h
}

func script() *bscript.Script {
	s := bscript.Script{0x51}
	return &s
}

func coin(value int64, height uint32, coinbase bool) coins.Coin {
	return coins.Coin{Out: coins.TxOut{Value: value, LockingScript: script()}, Height: height, IsCoinbase: coinbase}
}

// scenario a: add then spend
func TestScenarioAddThenSpend(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})
	t1 := hashFromByte(1)
	op := coins.NewOutPoint(t1, 0)

	require.NoError(t, cache.AddCoin(op, coin(50, 10, false), false))
	assert.Equal(t, int64(50), cache.AccessCoin(op).Out.Value)

	cache.SpendCoin(op, nil)
	assert.True(t, cache.AccessCoin(op).IsSpent())
	assert.Equal(t, 0, cache.GetCacheSize())
}

// scenario b: overwrite guard
func TestScenarioOverwriteGuard(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})
	t1 := hashFromByte(1)
	op := coins.NewOutPoint(t1, 0)

	require.NoError(t, cache.AddCoin(op, coin(50, 10, false), false))
	err := cache.AddCoin(op, coin(99, 11, false), false)
	require.Error(t, err)
	assert.Equal(t, int64(50), cache.AccessCoin(op).Out.Value)
}

// scenario c: coinbase overwrite allowed
func TestScenarioCoinbaseOverwriteAllowed(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})
	t2 := hashFromByte(2)
	op := coins.NewOutPoint(t2, 0)

	require.NoError(t, cache.AddCoin(op, coin(50, 1, true), true))
	require.NoError(t, cache.AddCoin(op, coin(60, 2, true), true))

	got := cache.AccessCoin(op)
	assert.Equal(t, int64(60), got.Out.Value)
	assert.Equal(t, uint32(2), got.Height)
}

// scenario d: layered flush, fresh propagation
func TestScenarioLayeredFlushFreshPropagation(t *testing.T) {
	parent := NewCoinsViewCache(emptyBackingView{})
	child := NewCoinsViewCache(parent)

	t3 := hashFromByte(3)
	op := coins.NewOutPoint(t3, 0)

	require.NoError(t, child.AddCoin(op, coin(7, 5, false), false))
	require.NoError(t, child.Flush())

	got := parent.AccessCoin(op)
	assert.Equal(t, int64(7), got.Out.Value)

	entry, ok := parent.cache.Get(t3)
	require.True(t, ok)
	assert.True(t, entry.Flags.Has(coins.FlagFresh))
}

// scenario e: layered flush, prune collapses
func TestScenarioLayeredFlushPruneCollapses(t *testing.T) {
	parent := NewCoinsViewCache(emptyBackingView{})
	child := NewCoinsViewCache(parent)

	t4 := hashFromByte(4)
	op := coins.NewOutPoint(t4, 0)

	require.NoError(t, child.AddCoin(op, coin(1, 1, false), false))
	child.SpendCoin(op, nil)
	require.NoError(t, child.Flush())

	_, ok := parent.cache.Get(t4)
	assert.False(t, ok)
}

// scenario f: priority computation is exercised at the record level via
// GetPriority in block_test.go, which constructs a *bt.Tx.

func TestInvariantFetchIdempotence(t *testing.T) {
	grandparent := NewCoinsViewCache(emptyBackingView{})
	parent := NewCoinsViewCache(grandparent)
	t5 := hashFromByte(5)
	op := coins.NewOutPoint(t5, 0)
	require.NoError(t, parent.AddCoin(op, coin(1, 1, false), false))
	require.NoError(t, parent.Flush())

	cache := NewCoinsViewCache(parent)
	first, ok := cache.GetCoin(t5)
	require.True(t, ok)

	usageAfterFirst := cache.DynamicMemoryUsage()

	second, ok := cache.GetCoin(t5)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, usageAfterFirst, cache.DynamicMemoryUsage())
}

func TestInvariantMemoryAccountingMatchesRecompute(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})

	for i := byte(0); i < 5; i++ {
		require.NoError(t, cache.AddCoin(coins.NewOutPoint(hashFromByte(i), 0), coin(int64(i)+1, 1, false), false))
	}

	assert.Equal(t, cache.recomputeMemoryUsage(), cache.cachedCoinsUsage)
}

func TestInvariantModifierExclusionPanics(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})
	m := cache.ModifyCoins(hashFromByte(6))
	defer m.Release()

	assert.Panics(t, func() {
		cache.ModifyCoins(hashFromByte(7))
	})
}

func TestModifierMutatesAndCleansUp(t *testing.T) {
	cache := NewCoinsViewCache(emptyBackingView{})
	txid := hashFromByte(8)

	m := cache.ModifyCoins(txid)
	m.Record().Outputs = []coins.TxOut{{Value: 1, LockingScript: script()}}
	m.Record().Height = 42
	m.Release()

	got := cache.AccessCoin(coins.NewOutPoint(txid, 0))
	assert.Equal(t, int64(1), got.Out.Value)
	assert.Equal(t, uint32(42), got.Height)
}
