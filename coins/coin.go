package coins

// Coin is a single unspent output, materialized out of a CoinRecord slot.
type Coin struct {
	Out        TxOut
	Height     uint32
	IsCoinbase bool
}

// IsSpent reports whether the coin's output slot is null.
func (c Coin) IsSpent() bool {
	return c.Out.IsNull()
}

// emptyCoin is returned by read paths that miss.
var emptyCoin = Coin{}
