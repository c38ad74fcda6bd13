// Package titanring implements the lock-free single-producer /
// single-consumer ring buffer that carries ticks between the ingest
// receiver, the engine loop, and the async logger.
//
// Exactly one goroutine may call TryWrite and exactly one goroutine
// (which may differ from the writer) may call TryRead. Violating this
// invalidates the acquire/release argument below; Ring does not (and,
// short of a runtime race detector, cannot) enforce it at runtime.
package titanring

import (
	"runtime"
	"sync/atomic"

	"github.com/abdoElHodaky/titan-hft/internal/titanerrors"
	"github.com/abdoElHodaky/titan-hft/internal/titantick"
)

// cacheLineSize is the padding unit used to keep head and tail on
// separate cache lines. 128 bytes covers Apple Silicon / aarch64's
// larger line size; 64 bytes is the common x86-64 value. Using the
// larger constant everywhere costs a little memory but never
// under-pads, which is the only direction that matters for
// correctness of the false-sharing argument.
const cacheLineSize = 128

// pad is sized to consume a cache line minus the 8 bytes of the
// atomic it follows.
type pad [cacheLineSize - 8]byte

// Ring is a bounded, power-of-two-capacity SPSC queue of
// titantick.Tick. head and tail are deliberately separated by pad
// fields so that the producer's writes to tail never invalidate the
// cache line the consumer is spinning on for head, and vice versa.
type Ring struct {
	head uint64
	_    pad
	tail uint64
	_    pad
	mask uint64
	cap  uint64
	slots []titantick.Tick
}

// New allocates a Ring of the given capacity, which must be a
// positive power of two.
func New(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, titanerrors.Newf(titanerrors.ErrInvalidCapacity,
			"ring capacity must be a positive power of two, got %d", capacity)
	}
	return &Ring{
		mask:  uint64(capacity - 1),
		cap:   uint64(capacity),
		slots: make([]titantick.Tick, capacity),
	}, nil
}

// Capacity returns the number of slots in the ring.
func (r *Ring) Capacity() int { return int(r.cap) }

// TryWrite publishes tick into the ring. It returns false without
// blocking if the ring is full. Only the single producer goroutine
// may call TryWrite.
func (r *Ring) TryWrite(tick titantick.Tick) bool {
	tail := atomic.LoadUint64(&r.tail) // relaxed would suffice; Go has no relaxed atomics
	head := atomic.LoadUint64(&r.head) // acquire

	if tail-head >= r.cap {
		return false
	}

	r.slots[tail&r.mask] = tick
	atomic.StoreUint64(&r.tail, tail+1) // release: publishes the slot store above
	return true
}

// TryRead dequeues the oldest tick. It returns (Tick{}, false)
// without blocking if the ring is empty. Only the single consumer
// goroutine may call TryRead.
func (r *Ring) TryRead() (titantick.Tick, bool) {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail) // acquire: observes the producer's slot store

	if head == tail {
		return titantick.Tick{}, false
	}

	v := r.slots[head&r.mask]
	atomic.StoreUint64(&r.head, head+1) // release: reclaims the slot for the producer
	return v, true
}

// Len returns an instantaneous view of the number of ticks in
// flight. It is only exact when called under external mutual
// exclusion with both the producer and consumer (e.g. in tests); in
// production it is advisory only, since either index may move
// concurrently with the read.
func (r *Ring) Len() int {
	tail := atomic.LoadUint64(&r.tail)
	head := atomic.LoadUint64(&r.head)
	return int(tail - head)
}

// SpinWaitWrite busy-waits, yielding the processor to other
// goroutines between attempts, until tick is accepted. Used by callers that must
// never drop (the batch receiver, the async logger) rather than
// observe a full ring.
func SpinWaitWrite(r *Ring, tick titantick.Tick) {
	for !r.TryWrite(tick) {
		runtime.Gosched()
	}
}
