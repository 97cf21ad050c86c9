// Package view implements the write-back UTXO cache: CoinsViewCache, the
// BackingView interface it consumes, and the scoped CoinsModifier handle.
package view

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bsv-blockchain/coinscache/coins"
)

// BackingView is the read-only lookup plus batch-write sink exposed by any
// cache layer or the durable store beneath it.
type BackingView interface {
	// GetCoin returns the record for txid if known, including as a pruned
	// tombstone, or ok=false if txid is entirely absent.
	GetCoin(txid chainhash.Hash) (record coins.CoinRecord, ok bool)

	// HaveCoin is equivalent to checking GetCoin's ok return.
	HaveCoin(txid chainhash.Hash) bool

	// GetBestBlock returns the block hash this view's contents correspond
	// to; a zero hash means unknown.
	GetBestBlock() chainhash.Hash

	// BatchWrite consumes entries (may destructively remove them),
	// integrating them per the batch_write merge rules, and updates
	// best-block. Returns an error if the parent cannot accept the batch.
	BatchWrite(entries CacheMap, bestBlock chainhash.Hash) error

	// GetStats reports store statistics, if supported.
	GetStats() (Stats, bool)
}

// Stats is the optional statistics payload from GetStats.
type Stats struct {
	NumCoins   int64
	TotalBytes int64
}
