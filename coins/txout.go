package coins

import "github.com/bsv-blockchain/go-bt/v2/bscript"

// TxOut is a single output slot within a CoinRecord. A nil TxOut (the zero
// value has a nil LockingScript and is treated as null) denotes a spent or
// never-populated slot.
type TxOut struct {
	Value         int64
	LockingScript *bscript.Script
}

// IsNull reports whether this slot holds no unspent output.
func (t TxOut) IsNull() bool {
	return t.LockingScript == nil
}

// nullTxOut is the canonical representation of a spent/absent slot.
var nullTxOut = TxOut{}
