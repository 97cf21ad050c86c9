package view

import (
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bsv-blockchain/coinscache/coins"
	"github.com/bsv-blockchain/coinscache/errors"
)

// CoinsViewCache is the write-back cache: fetch, add, spend, access, flush
// and batch-write, wrapping a borrowed parent BackingView.
type CoinsViewCache struct {
	base BackingView

	cache *CacheMap

	cachedCoinsUsage int64

	hasModifier bool
	hashBlock   chainhash.Hash

	metrics *Metrics
}

// NewCoinsViewCache wraps base in a fresh, empty write-back cache.
func NewCoinsViewCache(base BackingView) *CoinsViewCache {
	return &CoinsViewCache{
		base:    base,
		cache:   NewCacheMap(0),
		metrics: defaultMetrics,
	}
}

// GetCacheSize returns the number of entries currently held locally.
func (v *CoinsViewCache) GetCacheSize() int {
	n := v.cache.Len()

	if v.metrics != nil {
		v.metrics.setSize(n)
	}

	return n
}

// DynamicMemoryUsage returns the tracked bytes of dynamic storage the cache
// holds: the incrementally bracketed record usage plus the map's own
// structural overhead.
func (v *CoinsViewCache) DynamicMemoryUsage() int64 {
	const entryOverhead = 64 // approximate per-slot swiss-table overhead

	usage := v.cachedCoinsUsage + int64(v.cache.Len())*entryOverhead

	if v.metrics != nil {
		v.metrics.setMemory(usage)
	}

	return usage
}

// recomputeMemoryUsage recalculates usage from scratch; used by tests to
// assert the memory-accounting invariant (§8.6) and available to callers
// that want an authoritative figure after bulk surgery on the cache.
func (v *CoinsViewCache) recomputeMemoryUsage() int64 {
	var usage int64

	v.cache.Each(func(_ chainhash.Hash, entry *coins.CacheEntry) bool {
		usage += entry.Record.DynamicMemoryUsage()
		return true
	})

	return usage
}

// fetchCoin returns the local entry for txid, pulling it from the parent on
// a local miss. It never inserts on a parent miss.
func (v *CoinsViewCache) fetchCoin(txid chainhash.Hash) (*coins.CacheEntry, bool) {
	if entry, ok := v.cache.Get(txid); ok {
		if v.metrics != nil {
			v.metrics.hit()
		}

		return entry, true
	}

	record, ok := v.base.GetCoin(txid)
	if !ok {
		if v.metrics != nil {
			v.metrics.miss()
		}

		return nil, false
	}

	// Copy the outputs so local spends and adds never write into the
	// parent's backing array.
	record.Outputs = append([]coins.TxOut(nil), record.Outputs...)

	entry := &coins.CacheEntry{Record: record}
	if entry.Record.IsPruned() {
		entry.Flags |= coins.FlagFresh
	}

	v.cache.Put(txid, entry)
	v.cachedCoinsUsage += entry.Record.DynamicMemoryUsage()

	if v.metrics != nil {
		v.metrics.miss()
		v.metrics.insertion()
	}

	return entry, true
}

// GetCoin returns the full record for txid, or ok=false if entirely absent.
func (v *CoinsViewCache) GetCoin(txid chainhash.Hash) (coins.CoinRecord, bool) {
	entry, ok := v.fetchCoin(txid)
	if !ok {
		return coins.CoinRecord{}, false
	}

	return entry.Record, true
}

// HaveCoin reports whether txid has an entry with at least one output slot,
// which (Outputs being trimmed of trailing nulls) is the same as !IsPruned.
// This is stricter than the BackingView contract: a pruned tombstone makes
// GetCoin return ok=true but HaveCoin return false.
func (v *CoinsViewCache) HaveCoin(txid chainhash.Hash) bool {
	entry, ok := v.fetchCoin(txid)
	return ok && len(entry.Record.Outputs) > 0
}

// AccessCoins returns the full record for txid without inserting on a
// per-index miss (there is no per-index miss at this granularity).
func (v *CoinsViewCache) AccessCoins(txid chainhash.Hash) (coins.CoinRecord, bool) {
	return v.GetCoin(txid)
}

// AccessCoin returns the materialized Coin at outpoint, or an empty Coin if
// no record exists or the index is not available. It never inserts on an
// index miss — only the txid lookup (via fetchCoin) may insert.
func (v *CoinsViewCache) AccessCoin(outpoint coins.OutPoint) coins.Coin {
	entry, ok := v.fetchCoin(outpoint.TxID)
	if !ok || !entry.Record.IsAvailable(outpoint.N) {
		return coins.Coin{}
	}

	return coins.Coin{
		Out:        entry.Record.Outputs[outpoint.N],
		Height:     entry.Record.Height,
		IsCoinbase: entry.Record.IsCoinbase,
	}
}

// AddCoin inserts coin at outpoint. If possibleOverwrite is false and the
// slot is currently live, returns an invariant-violation error rather than
// silently replacing a live coin. Coinbase callers pass possibleOverwrite
// true to tolerate the two historical duplicate-coinbase txids that predate
// uniqueness enforcement.
func (v *CoinsViewCache) AddCoin(outpoint coins.OutPoint, coin coins.Coin, possibleOverwrite bool) error {
	if coin.IsSpent() {
		return errors.NewInvariantViolationError("AddCoin: coin for %s is already spent", outpoint)
	}

	if isUnspendableOutput(coin.Out.LockingScript) {
		return nil
	}

	entry, inserted := v.cache.Get(outpoint.TxID)
	if !inserted {
		entry = &coins.CacheEntry{}
		v.cache.Put(outpoint.TxID, entry)
	} else {
		v.cachedCoinsUsage -= entry.Record.DynamicMemoryUsage()
	}

	var fresh bool

	if !possibleOverwrite {
		if entry.Record.IsAvailable(outpoint.N) {
			v.cachedCoinsUsage += entry.Record.DynamicMemoryUsage()
			return errors.NewInvariantViolationError("AddCoin: adding new coin that replaces non-pruned entry at %s", outpoint)
		}

		fresh = entry.Record.IsPruned() && !entry.Flags.Has(coins.FlagDirty)
	}

	entry.Record.Grow(outpoint.N)
	entry.Record.Outputs[outpoint.N] = coin.Out
	entry.Record.Height = coin.Height
	entry.Record.IsCoinbase = coin.IsCoinbase

	entry.Flags |= coins.FlagDirty
	if fresh {
		entry.Flags |= coins.FlagFresh
	}

	v.cachedCoinsUsage += entry.Record.DynamicMemoryUsage()

	if !inserted && v.metrics != nil {
		v.metrics.insertion()
	}

	return nil
}

// SpendCoin spends the slot at outpoint. If the entry doesn't exist even
// after falling through to the parent, this is a silent no-op. If moveout
// is non-nil and the slot was available, the spent coin's value is copied
// into *moveout before the slot is nulled.
func (v *CoinsViewCache) SpendCoin(outpoint coins.OutPoint, moveout *coins.Coin) {
	entry, ok := v.fetchCoin(outpoint.TxID)
	if !ok {
		return
	}

	v.cachedCoinsUsage -= entry.Record.DynamicMemoryUsage()

	if moveout != nil && entry.Record.IsAvailable(outpoint.N) {
		*moveout = coins.Coin{
			Out:        entry.Record.Outputs[outpoint.N],
			Height:     entry.Record.Height,
			IsCoinbase: entry.Record.IsCoinbase,
		}
	}

	entry.Record.Spend(outpoint.N) // ignore return: no-op if nothing to spend

	if entry.Record.IsPruned() && entry.Flags.Has(coins.FlagFresh) {
		v.cache.Delete(outpoint.TxID)

		if v.metrics != nil {
			v.metrics.eviction()
		}

		return
	}

	v.cachedCoinsUsage += entry.Record.DynamicMemoryUsage()
	entry.Flags |= coins.FlagDirty
}

// GetBestBlock returns the block hash the cache represents, lazily pulling
// it from the parent on first access if never explicitly set. A zero hash
// from the parent means "unknown" and is returned as-is.
func (v *CoinsViewCache) GetBestBlock() chainhash.Hash {
	var zero chainhash.Hash
	if v.hashBlock == zero {
		v.hashBlock = v.base.GetBestBlock()
	}

	return v.hashBlock
}

// SetBestBlock stores the block hash this cache's contents represent.
func (v *CoinsViewCache) SetBestBlock(hash chainhash.Hash) {
	v.hashBlock = hash
}

// Flush hands the local map to the parent's BatchWrite. On success the
// local map and memory accounting are reset; on failure the cache is left
// entirely unchanged so the caller may retry.
func (v *CoinsViewCache) Flush() error {
	if err := v.base.BatchWrite(*v.cache, v.hashBlock); err != nil {
		if v.metrics != nil {
			v.metrics.flushError()
		}

		return err
	}

	v.cache = NewCacheMap(0)
	v.cachedCoinsUsage = 0

	if v.metrics != nil {
		v.metrics.flush()
	}

	return nil
}

// BatchWrite merges a child's entries into this cache per the merge rules:
// dirty entries only; an absent local slot requires the child entry be
// FRESH; a FRESH local slot receiving a pruned child entry is dropped
// entirely; anything else overwrites the local record and marks it dirty,
// preserving the local FRESH bit.
func (v *CoinsViewCache) BatchWrite(childMap CacheMap, childBestBlock chainhash.Hash) error {
	if v.hasModifier {
		return errors.NewInvariantViolationError("BatchWrite: cache has an outstanding modifier")
	}

	var mergeErr error

	childMap.Each(func(txid chainhash.Hash, child *coins.CacheEntry) bool {
		if !child.Flags.Has(coins.FlagDirty) {
			return true
		}

		local, present := v.cache.Get(txid)

		switch {
		case !present && !child.Record.IsPruned():
			if !child.Flags.Has(coins.FlagFresh) {
				mergeErr = errors.NewInvariantViolationError("BatchWrite: child entry for %s inserted into absent parent slot without FRESH", txid)
				return false
			}

			entry := &coins.CacheEntry{Record: child.Record, Flags: coins.FlagDirty | coins.FlagFresh}
			v.cache.Put(txid, entry)
			v.cachedCoinsUsage += entry.Record.DynamicMemoryUsage()

		case !present && child.Record.IsPruned():
			// parent-of-parent had nothing; tombstone need not propagate.

		case present && local.Flags.Has(coins.FlagFresh) && child.Record.IsPruned():
			v.cachedCoinsUsage -= local.Record.DynamicMemoryUsage()
			v.cache.Delete(txid)

		default:
			v.cachedCoinsUsage -= local.Record.DynamicMemoryUsage()
			local.Record = child.Record
			local.Flags |= coins.FlagDirty
			v.cachedCoinsUsage += local.Record.DynamicMemoryUsage()
		}

		return true
	})

	if mergeErr != nil {
		return mergeErr
	}

	v.hashBlock = childBestBlock

	return nil
}

// GetStats is not implemented by CoinsViewCache; it only ever delegates
// reads and writes to its parent.
func (v *CoinsViewCache) GetStats() (Stats, bool) {
	return Stats{}, false
}

// isUnspendableOutput reports whether script is provably unspendable
// (starts with OP_FALSE OP_RETURN).
func isUnspendableOutput(script *bscript.Script) bool {
	if script == nil {
		return false
	}

	scriptBytes := *script

	return len(scriptBytes) >= 2 && scriptBytes[0] == 0x00 && scriptBytes[1] == 0x6a
}
