package view

import (
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bsv-blockchain/coinscache/coins"
)

// AddCoinsFromTx adds every output of tx to cache at height. The coinbase
// flag is also passed as possibleOverwrite, tolerating the two historical
// duplicate-coinbase txids that predate uniqueness enforcement.
func AddCoinsFromTx(cache *CoinsViewCache, tx *bt.Tx, height uint32) error {
	coinbase := tx.IsCoinbase()
	txid := *tx.TxIDChainHash()

	for i, out := range tx.Outputs {
		coin := coins.Coin{
			Out:        coins.TxOut{Value: int64(out.Satoshis), LockingScript: out.LockingScript},
			Height:     height,
			IsCoinbase: coinbase,
		}

		if err := cache.AddCoin(coins.NewOutPoint(txid, uint32(i)), coin, coinbase); err != nil {
			return err
		}
	}

	return nil
}

// AccessByTxid returns any unspent output of txid (the lowest index found),
// scanning up to maxOutputsPerBlock slots, or an empty Coin if none survive.
// The scan bound is a caller-supplied parameter rather than a hardcoded
// consensus constant (see the Open Question this resolves in SPEC_FULL.md).
func AccessByTxid(cache *CoinsViewCache, txid chainhash.Hash, maxOutputsPerBlock int) coins.Coin {
	for n := 0; n < maxOutputsPerBlock; n++ {
		coin := cache.AccessCoin(coins.NewOutPoint(txid, uint32(n)))
		if !coin.IsSpent() {
			return coin
		}
	}

	return coins.Coin{}
}

// GetValueIn sums the value of every input's previous output; coinbase
// transactions have no real inputs to sum and return 0.
func GetValueIn(cache *CoinsViewCache, tx *bt.Tx) int64 {
	if tx.IsCoinbase() {
		return 0
	}

	var total int64

	for _, in := range tx.Inputs {
		coin := cache.AccessCoin(coins.NewOutPoint(inputPrevTxID(in), in.PreviousTxOutIndex))
		total += coin.Out.Value
	}

	return total
}

// HaveInputs reports whether every non-coinbase input's outpoint is
// available in cache.
func HaveInputs(cache *CoinsViewCache, tx *bt.Tx) bool {
	if tx.IsCoinbase() {
		return true
	}

	for _, in := range tx.Inputs {
		coin := cache.AccessCoin(coins.NewOutPoint(inputPrevTxID(in), in.PreviousTxOutIndex))
		if coin.IsSpent() {
			return false
		}
	}

	return true
}

// GetPriority computes the coin-age-weighted priority of tx's inputs at
// height: the sum of value*(height-coin.height) over inputs whose coin
// predates height, with inChainInputValue accumulating those inputs' value.
// Spent or equal-or-newer inputs contribute zero to both sums.
func GetPriority(cache *CoinsViewCache, tx *bt.Tx, height uint32) (priority float64, inChainInputValue int64) {
	if tx.IsCoinbase() {
		return 0, 0
	}

	for _, in := range tx.Inputs {
		coin := cache.AccessCoin(coins.NewOutPoint(inputPrevTxID(in), in.PreviousTxOutIndex))
		if coin.IsSpent() {
			continue
		}

		if coin.Height < height {
			priority += float64(coin.Out.Value) * float64(height-coin.Height)
			inChainInputValue += coin.Out.Value
		}
	}

	return priority, inChainInputValue
}

// ComputePriority is the identity pass-through for a transaction's priority
// formula; no consensus-level priority weighting lives in this core.
func ComputePriority(ageSum float64) float64 {
	return ageSum
}

// inputPrevTxID converts an input's previous-txid bytes into a chainhash.Hash.
func inputPrevTxID(in *bt.Input) chainhash.Hash {
	hash, err := chainhash.NewHash(in.PreviousTxID())
	if err != nil {
		return chainhash.Hash{}
	}

	return *hash
}
