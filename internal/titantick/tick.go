// Package titantick defines the fixed-layout market tick record that
// flows through the whole titan-hft pipeline, and its wire codec.
package titantick

import (
	"encoding/binary"
	"math"
	"time"
)

// Size is the fixed wire and in-memory size of a Tick, in bytes.
const Size = 40

// Side values. Anything else is reserved.
const (
	SideBuy  uint8 = 1
	SideSell uint8 = 2
)

// Tick is a fixed 40-byte POD: symbol, price, quantity, timestamp,
// side, and trailing pad. The field order matches the wire layout in
// spec.md §6 exactly; Encode/Decode never reorder fields, so the
// in-memory and wire representations are byte-for-byte identical.
type Tick struct {
	Symbol    [8]byte
	Price     float64
	Quantity  uint64
	Timestamp uint64
	Side      uint8
	_         [7]byte // padding, always zero
}

// New constructs a Tick, left-justifying and zero-padding symbol into
// 8 bytes and stamping Timestamp with the wall clock. Benchmark
// producers that need Timestamp to carry a sequential order id
// instead should set the field directly after construction.
func New(symbol string, price float64, quantity uint64, side uint8) Tick {
	var t Tick
	n := copy(t.Symbol[:], symbol)
	for i := n; i < len(t.Symbol); i++ {
		t.Symbol[i] = 0
	}
	t.Price = price
	t.Quantity = quantity
	t.Timestamp = uint64(time.Now().UnixNano())
	t.Side = side
	return t
}

// SymbolUint64 reinterprets the 8-byte symbol as a little-endian
// uint64 for fast equality comparisons, mirroring the original's
// symbol_u64().
func (t Tick) SymbolUint64() uint64 {
	return binary.LittleEndian.Uint64(t.Symbol[:])
}

// Encode writes the tick's 40-byte wire representation into dst,
// which must be at least Size bytes long.
func (t Tick) Encode(dst []byte) {
	_ = dst[Size-1]
	copy(dst[0:8], t.Symbol[:])
	binary.LittleEndian.PutUint64(dst[8:16], math.Float64bits(t.Price))
	binary.LittleEndian.PutUint64(dst[16:24], t.Quantity)
	binary.LittleEndian.PutUint64(dst[24:32], t.Timestamp)
	dst[32] = t.Side
	dst[33], dst[34], dst[35], dst[36], dst[37], dst[38], dst[39] = 0, 0, 0, 0, 0, 0, 0
}

// Decode reads a 40-byte wire representation from src into a Tick.
func Decode(src []byte) Tick {
	_ = src[Size-1]
	var t Tick
	copy(t.Symbol[:], src[0:8])
	t.Price = math.Float64frombits(binary.LittleEndian.Uint64(src[8:16]))
	t.Quantity = binary.LittleEndian.Uint64(src[16:24])
	t.Timestamp = binary.LittleEndian.Uint64(src[24:32])
	t.Side = src[32]
	return t
}

// DecodeBatch reinterprets src as a contiguous run of n ticks,
// appending decoded ticks to dst and returning the grown slice. src
// must be exactly n*Size bytes.
func DecodeBatch(src []byte, n int, dst []Tick) []Tick {
	for i := 0; i < n; i++ {
		off := i * Size
		dst = append(dst, Decode(src[off:off+Size]))
	}
	return dst
}
