package view

import (
	"github.com/dolthub/swiss"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bsv-blockchain/coinscache/coins"
)

// CacheMap is the CacheEntry map a CoinsViewCache owns, backed by a
// dolthub/swiss open-addressing table. The cache key is already a uniformly
// distributed 256-bit digest; swiss seeds each map's hasher randomly when
// the map is built, which is the only collision defense CacheMap uses (it
// keeps no process-wide salt of its own).
type CacheMap struct {
	m *swiss.Map[chainhash.Hash, *coins.CacheEntry]
}

// NewCacheMap builds an empty CacheMap with capacity as an initial size hint.
func NewCacheMap(capacity uint32) *CacheMap {
	return &CacheMap{m: swiss.NewMap[chainhash.Hash, *coins.CacheEntry](capacity)}
}

func (c *CacheMap) Get(txid chainhash.Hash) (*coins.CacheEntry, bool) {
	return c.m.Get(txid)
}

func (c *CacheMap) Put(txid chainhash.Hash, entry *coins.CacheEntry) {
	c.m.Put(txid, entry)
}

func (c *CacheMap) Delete(txid chainhash.Hash) {
	c.m.Delete(txid)
}

func (c *CacheMap) Len() int {
	return c.m.Count()
}

// Each iterates every (txid, entry) pair; fn returning false stops iteration.
func (c *CacheMap) Each(fn func(txid chainhash.Hash, entry *coins.CacheEntry) bool) {
	c.m.Iter(func(k chainhash.Hash, v *coins.CacheEntry) bool {
		return !fn(k, v)
	})
}

// Clear drops every entry, used after a successful Flush.
func (c *CacheMap) Clear() {
	c.m.Clear()
}
