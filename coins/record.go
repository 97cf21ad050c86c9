package coins

import "github.com/bsv-blockchain/coinscache/util"

// CoinRecord is the per-txid aggregate held by a CacheEntry: the ordered
// outputs of one transaction, trimmed so that trailing null slots never
// persist past a mutation.
type CoinRecord struct {
	Outputs    []TxOut
	Height     uint32
	IsCoinbase bool
}

// IsPruned reports whether every output has been spent (or the record was
// never populated) — equivalent to "no UTXO exists for this txid".
func (r *CoinRecord) IsPruned() bool {
	return len(r.Outputs) == 0
}

// IsAvailable reports whether output i exists and is unspent.
func (r *CoinRecord) IsAvailable(i uint32) bool {
	return i < uint32(len(r.Outputs)) && !r.Outputs[i].IsNull()
}

// Spend nulls output n, returning false (no-op) if n is out of range or
// already spent. On success it runs Cleanup.
func (r *CoinRecord) Spend(n uint32) bool {
	if n >= uint32(len(r.Outputs)) || r.Outputs[n].IsNull() {
		return false
	}

	r.Outputs[n] = nullTxOut
	r.Cleanup()

	return true
}

// Cleanup trims trailing null outputs; it is the only operation that
// shrinks Outputs' length.
func (r *CoinRecord) Cleanup() {
	n := len(r.Outputs)
	for n > 0 && r.Outputs[n-1].IsNull() {
		n--
	}

	r.Outputs = r.Outputs[:n]
}

// Grow extends Outputs to length n+1 with null placeholders if needed.
func (r *CoinRecord) Grow(n uint32) {
	if uint32(len(r.Outputs)) <= n {
		grown := make([]TxOut, n+1)
		copy(grown, r.Outputs)
		r.Outputs = grown
	}
}

// CalcMaskSize computes the compact bitmask layout used by a storage layer
// serializing this record: the first two outputs are encoded out-of-band,
// and outputs at index >= 2 are summarized by a bitmask. maskBytes is the
// number of bytes needed to hold the highest set bit; nonzeroBytes counts
// how many of those bytes are non-zero.
func (r *CoinRecord) CalcMaskSize() (maskBytes, nonzeroBytes uint32) {
	var lastUsedByte uint32

	for b := uint32(0); 2+b*8 < uint32(len(r.Outputs)); b++ {
		zero := true

		for i := uint32(0); i < 8 && 2+b*8+i < uint32(len(r.Outputs)); i++ {
			if !r.Outputs[2+b*8+i].IsNull() {
				zero = false
			}
		}

		if !zero {
			lastUsedByte = b + 1
			nonzeroBytes++
		}
	}

	maskBytes = lastUsedByte

	return maskBytes, nonzeroBytes
}

// DynamicMemoryUsage estimates the bytes of dynamic storage this record
// holds, used to bracket CacheMap's incremental memory accounting.
func (r *CoinRecord) DynamicMemoryUsage() int64 {
	const txOutOverhead = 40 // approximate slice-element + pointer overhead

	usage := int64(cap(r.Outputs)) * txOutOverhead

	for _, out := range r.Outputs {
		if out.LockingScript != nil {
			scriptLen := uint64(len(*out.LockingScript))
			usage += int64(scriptLen) + int64(util.VarintSize(scriptLen))
		}
	}

	return usage
}
