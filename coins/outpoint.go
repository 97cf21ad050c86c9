// Package coins defines the value types and per-txid cache record used by
// the UTXO cache: OutPoint, TxOut, Coin, CoinRecord and CacheEntry.
package coins

import (
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// OutPoint identifies a single transaction output.
type OutPoint struct {
	TxID chainhash.Hash
	N    uint32
}

func NewOutPoint(txid chainhash.Hash, n uint32) OutPoint {
	return OutPoint{TxID: txid, N: n}
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.N)
}
