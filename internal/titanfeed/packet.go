// Package titanfeed builds wire-valid jumbo packets for end-to-end
// tests. It is not a network sender — the feed simulator itself is
// an external collaborator out of scope for this repository (spec.md
// §1) — it only constructs the byte payloads titannet.Receiver
// expects, so tests can exercise the real wire format without a
// second process.
package titanfeed

import (
	"github.com/abdoElHodaky/titan-hft/internal/titantick"
)

// TicksPerPacket and PacketSize mirror titannet.TicksPerPacket and
// titannet.PacketSize. They are declared here rather than imported so
// that titannet's own tests can use this package without an import
// cycle.
const (
	TicksPerPacket = 32
	PacketSize     = TicksPerPacket * titantick.Size
)

// BuildPacket concatenates len(ticks) ticks (which must equal
// TicksPerPacket) into one jumbo packet payload.
func BuildPacket(ticks []titantick.Tick) []byte {
	if len(ticks) != TicksPerPacket {
		panic("titanfeed: BuildPacket requires exactly TicksPerPacket ticks")
	}
	buf := make([]byte, PacketSize)
	for i, t := range ticks {
		t.Encode(buf[i*titantick.Size : (i+1)*titantick.Size])
	}
	return buf
}

// RepeatTick builds a full jumbo packet repeating base n=TicksPerPacket
// times, stamping Timestamp with sequential order ids starting at
// startOrderID — the benchmark-mode reuse of the timestamp field
// described in spec.md §3/§9.
func RepeatTick(base titantick.Tick, startOrderID uint64) []titantick.Tick {
	ticks := make([]titantick.Tick, TicksPerPacket)
	for i := range ticks {
		t := base
		t.Timestamp = startOrderID + uint64(i)
		ticks[i] = t
	}
	return ticks
}
