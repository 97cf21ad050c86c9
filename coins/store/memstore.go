// Package store provides concrete BackingView implementations: an
// in-memory store backed by a dolthub/swiss map, and a durable store backed
// by btcsuite/goleveldb.
package store

import (
	"sync"

	"github.com/dolthub/swiss"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bsv-blockchain/coinscache/coins"
	"github.com/bsv-blockchain/coinscache/coins/view"
)

// MemStore is an in-memory BackingView, the bottom of a cache stack in
// tests and small deployments. It guards its own map with a mutex so it
// can safely sit beneath several single-writer CoinsViewCache layers,
// matching the corpus's own mutex-guarded stores/utxo/memory/memory.go.
type MemStore struct {
	mu        sync.Mutex
	records   *swiss.Map[chainhash.Hash, coins.CoinRecord]
	bestBlock chainhash.Hash
}

// NewMemStore builds an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{records: swiss.NewMap[chainhash.Hash, coins.CoinRecord](1024)}
}

func (s *MemStore) GetCoin(txid chainhash.Hash) (coins.CoinRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.records.Get(txid)
}

func (s *MemStore) HaveCoin(txid chainhash.Hash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records.Get(txid)

	return ok
}

func (s *MemStore) GetBestBlock() chainhash.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bestBlock
}

// BatchWrite applies the dirty entries directly: a pruned record deletes
// the row unconditionally and any other record is stored as-is. FRESH
// flags are not checked, since there is no grandparent beyond the store.
func (s *MemStore) BatchWrite(entries view.CacheMap, bestBlock chainhash.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries.Each(func(txid chainhash.Hash, entry *coins.CacheEntry) bool {
		if !entry.Flags.Has(coins.FlagDirty) {
			return true
		}

		if entry.Record.IsPruned() {
			s.records.Delete(txid)
			return true
		}

		s.records.Put(txid, entry.Record)

		return true
	})

	s.bestBlock = bestBlock

	return nil
}

func (s *MemStore) GetStats() (view.Stats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return view.Stats{NumCoins: int64(s.records.Count())}, true
}
