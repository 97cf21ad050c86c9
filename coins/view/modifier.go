package view

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bsv-blockchain/coinscache/coins"
	"github.com/bsv-blockchain/coinscache/errors"
)

// CoinsModifier is a scoped handle exposing mutable access to a specific
// CoinRecord. At most one may be live per cache; the caller must defer
// Release to run the release-time cleanup on every exit path.
type CoinsModifier struct {
	cache      *CoinsViewCache
	txid       chainhash.Hash
	entry      *coins.CacheEntry
	wasTracked bool

	released bool
}

// ModifyCoins acquires a CoinsModifier for txid. It panics if a modifier is
// already live, matching the source's treatment of this as a structural
// invariant with no graceful continuation (a cache must never have two
// in-flight mutations).
func (v *CoinsViewCache) ModifyCoins(txid chainhash.Hash) *CoinsModifier {
	if v.hasModifier {
		panic("ModifyCoins: cache already has an outstanding modifier")
	}

	entry, present := v.cache.Get(txid)
	if !present {
		entry = &coins.CacheEntry{}

		if record, ok := v.base.GetCoin(txid); ok {
			entry.Record = record
			entry.Record.Outputs = append([]coins.TxOut(nil), record.Outputs...)
		} else if !entry.Flags.Has(coins.FlagDirty) {
			entry.Flags |= coins.FlagFresh
		}

		v.cache.Put(txid, entry)
	}

	// Bracket this entry's already-tracked contribution out of the running
	// total for the duration of the modifier's lifetime; Release re-adds
	// the post-mutation size after Cleanup has settled. A brand new entry
	// has no prior contribution to remove.
	if present {
		v.cachedCoinsUsage -= entry.Record.DynamicMemoryUsage()
	}

	entry.Flags |= coins.FlagDirty
	v.hasModifier = true

	return &CoinsModifier{cache: v, txid: txid, entry: entry, wasTracked: present}
}

// Record exposes the mutable CoinRecord for in-place editing.
func (m *CoinsModifier) Record() *coins.CoinRecord {
	return &m.entry.Record
}

// Release runs the scoped-handle cleanup: trims trailing nulls, drops the
// entry if it became pruned+FRESH, refreshes memory accounting, and clears
// the cache's live-modifier guard. It is safe to call more than once.
func (m *CoinsModifier) Release() {
	if m.released {
		return
	}

	m.released = true
	m.cache.hasModifier = false

	m.entry.Record.Cleanup()

	if m.entry.Record.IsPruned() && m.entry.Flags.Has(coins.FlagFresh) {
		m.cache.cache.Delete(m.txid)
		return
	}

	m.cache.cachedCoinsUsage += m.entry.Record.DynamicMemoryUsage()
}

// assertNoOutstandingModifier is the Go analogue of the source's
// destructor assertion; callers retiring a cache should call this first.
func (v *CoinsViewCache) assertNoOutstandingModifier() error {
	if v.hasModifier {
		return errors.NewInvariantViolationError("CoinsViewCache: destroyed with an outstanding modifier")
	}

	return nil
}

// Close asserts there is no outstanding modifier. Callers that explicitly
// retire a cache (rather than relying on garbage collection) should call
// this to surface the same invariant violation the source enforces as a
// destructor assertion.
func (v *CoinsViewCache) Close() error {
	return v.assertNoOutstandingModifier()
}
