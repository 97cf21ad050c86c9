package store

import (
	"encoding/binary"
	"sync"

	bt "github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	gleveldb "github.com/btcsuite/goleveldb/leveldb"
	"github.com/btcsuite/goleveldb/leveldb/opt"

	"github.com/bsv-blockchain/coinscache/coins"
	"github.com/bsv-blockchain/coinscache/coins/view"
	"github.com/bsv-blockchain/coinscache/errors"
	"github.com/bsv-blockchain/coinscache/ulogger"
)

const bestBlockKey = "\x00best_block"

// LevelDBStore is a durable BackingView over a LevelDB database, grounded
// on the same goleveldb package the corpus uses to read Bitcoin Core's own
// chainstate database. Each row is a CoinRecord, serialized using the
// mask-based layout anticipated by CoinRecord.CalcMaskSize.
type LevelDBStore struct {
	mu  sync.Mutex
	db  *gleveldb.DB
	log ulogger.Logger
}

// OpenLevelDBStore opens (creating if absent) a LevelDB database at path.
func OpenLevelDBStore(path string, log ulogger.Logger) (*LevelDBStore, error) {
	db, err := gleveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		log.Errorf("leveldbstore: open %s: %v", path, err)
		return nil, errors.NewStorageError("opening leveldb store at %s", path, err)
	}

	return &LevelDBStore{db: db, log: log}, nil
}

// Close releases the underlying LevelDB handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

func (s *LevelDBStore) GetCoin(txid chainhash.Hash) (coins.CoinRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.db.Get(txid[:], nil)
	if err != nil {
		return coins.CoinRecord{}, false
	}

	record, err := decodeCoinRecord(raw)
	if err != nil {
		s.log.Errorf("leveldbstore: decode %s: %v", txid.String(), err)
		return coins.CoinRecord{}, false
	}

	return record, true
}

func (s *LevelDBStore) HaveCoin(txid chainhash.Hash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, _ := s.db.Has(txid[:], nil)

	return ok
}

func (s *LevelDBStore) GetBestBlock() chainhash.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.db.Get([]byte(bestBlockKey), nil)
	if err != nil || len(raw) != chainhash.HashSize {
		return chainhash.Hash{}
	}

	var hash chainhash.Hash
	copy(hash[:], raw)

	return hash
}

func (s *LevelDBStore) BatchWrite(entries view.CacheMap, bestBlock chainhash.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := new(gleveldb.Batch)

	entries.Each(func(txid chainhash.Hash, entry *coins.CacheEntry) bool {
		if !entry.Flags.Has(coins.FlagDirty) {
			return true
		}

		if entry.Record.IsPruned() {
			batch.Delete(txid[:])
			return true
		}

		batch.Put(txid[:], encodeCoinRecord(entry.Record))

		return true
	})

	batch.Put([]byte(bestBlockKey), bestBlock[:])

	if err := s.db.Write(batch, nil); err != nil {
		s.log.Errorf("leveldbstore: batch write: %v", err)
		return errors.NewStorageError("leveldb batch write failed", err)
	}

	return nil
}

func (s *LevelDBStore) GetStats() (view.Stats, bool) {
	return view.Stats{}, false
}

// encodeCoinRecord lays a CoinRecord out as:
// [height+coinbase varint][output count varint][out0 present?][out0]
// [out1 present?][out1][mask, sized by CalcMaskSize][non-null outs for
// indices >= 2, in order]. The explicit output-count varint makes the
// layout self-describing on decode; CalcMaskSize still determines how many
// mask bytes follow, exactly as a caller serializing per §4.1 would use it.
func encodeCoinRecord(r coins.CoinRecord) []byte {
	header := uint64(r.Height) << 1
	if r.IsCoinbase {
		header |= 1
	}

	buf := bt.VarInt(header).Bytes()
	buf = append(buf, bt.VarInt(uint64(len(r.Outputs))).Bytes()...)

	buf = append(buf, encodeOptionalOut(r, 0)...)
	buf = append(buf, encodeOptionalOut(r, 1)...)

	maskBytes, _ := r.CalcMaskSize()
	mask := make([]byte, maskBytes)

	for i := uint32(2); i < uint32(len(r.Outputs)); i++ {
		if !r.Outputs[i].IsNull() {
			mask[(i-2)/8] |= 1 << ((i - 2) % 8)
		}
	}

	buf = append(buf, mask...)

	for i := uint32(2); i < uint32(len(r.Outputs)); i++ {
		if !r.Outputs[i].IsNull() {
			buf = append(buf, encodeOut(r.Outputs[i])...)
		}
	}

	return buf
}

func encodeOptionalOut(r coins.CoinRecord, i int) []byte {
	if i >= len(r.Outputs) || r.Outputs[i].IsNull() {
		return []byte{0}
	}

	return append([]byte{1}, encodeOut(r.Outputs[i])...)
}

func encodeOut(out coins.TxOut) []byte {
	var valueBuf [8]byte
	binary.LittleEndian.PutUint64(valueBuf[:], uint64(out.Value))

	script := *out.LockingScript
	buf := append([]byte{}, valueBuf[:]...)
	buf = append(buf, bt.VarInt(uint64(len(script))).Bytes()...)
	buf = append(buf, script...)

	return buf
}

func decodeCoinRecord(raw []byte) (coins.CoinRecord, error) {
	r := coins.CoinRecord{}

	pos := 0

	header, size, err := bt.NewVarIntFromBytes(raw[pos:])
	if err != nil {
		return r, errors.NewStorageError("decode header varint", err)
	}

	pos += int(size)

	r.Height = uint32(uint64(header) >> 1)
	r.IsCoinbase = uint64(header)&1 == 1

	count, size, err := bt.NewVarIntFromBytes(raw[pos:])
	if err != nil {
		return r, errors.NewStorageError("decode output count varint", err)
	}

	pos += int(size)

	outputs := make([]coins.TxOut, count)

	for i := 0; i < 2 && i < int(count); i++ {
		if pos >= len(raw) {
			return r, errors.NewStorageError("decode truncated at optional output %d", i)
		}

		present := raw[pos] == 1
		pos++

		if !present {
			continue
		}

		out, n, err := decodeOut(raw[pos:])
		if err != nil {
			return r, err
		}

		pos += n
		outputs[i] = out
	}

	outCount := uint64(count)

	if outCount > 2 {
		maskBytes := (outCount - 2 + 7) / 8

		if pos+int(maskBytes) > len(raw) {
			return r, errors.NewStorageError("decode truncated mask")
		}

		mask := raw[pos : pos+int(maskBytes)]
		pos += int(maskBytes)

		for i := uint64(2); i < outCount; i++ {
			bit := mask[(i-2)/8]&(1<<((i-2)%8)) != 0
			if !bit {
				continue
			}

			out, n, err := decodeOut(raw[pos:])
			if err != nil {
				return r, err
			}

			pos += n
			outputs[i] = out
		}
	}

	r.Outputs = outputs
	r.Cleanup()

	return r, nil
}

func decodeOut(raw []byte) (coins.TxOut, int, error) {
	if len(raw) < 8 {
		return coins.TxOut{}, 0, errors.NewStorageError("decode truncated output value")
	}

	value := int64(binary.LittleEndian.Uint64(raw[:8]))
	pos := 8

	length, size, err := bt.NewVarIntFromBytes(raw[pos:])
	if err != nil {
		return coins.TxOut{}, 0, errors.NewStorageError("decode script length varint", err)
	}

	pos += int(size)

	if pos+int(length) > len(raw) {
		return coins.TxOut{}, 0, errors.NewStorageError("decode truncated script")
	}

	script := bscript.Script(append([]byte{}, raw[pos:pos+int(length)]...))
	pos += int(length)

	return coins.TxOut{Value: value, LockingScript: &script}, pos, nil
}
