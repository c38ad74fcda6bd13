package titanring

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdoElHodaky/titan-hft/internal/titanerrors"
	"github.com/abdoElHodaky/titan-hft/internal/titantick"
)

func TestNewRejectsNonPowerOfTwoCapacity(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
	assert.True(t, titanerrors.Is(err, titanerrors.ErrInvalidCapacity))

	_, err = New(3)
	require.Error(t, err)

	_, err = New(-4)
	require.Error(t, err)
}

func TestNewAcceptsPowerOfTwoCapacity(t *testing.T) {
	r, err := New(1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Capacity())

	r, err = New(16384)
	require.NoError(t, err)
	assert.Equal(t, 16384, r.Capacity())
}

func TestFullRingReturnsFalseThenFreesOnRead(t *testing.T) {
	// S3 from spec.md §8.
	r, err := New(4)
	require.NoError(t, err)

	results := make([]bool, 0, 5)
	for i := 0; i < 5; i++ {
		results = append(results, r.TryWrite(titantick.New("AAPL", 100, 1, titantick.SideBuy)))
	}
	assert.Equal(t, []bool{true, true, true, true, false}, results)

	_, ok := r.TryRead()
	require.True(t, ok)

	assert.True(t, r.TryWrite(titantick.New("AAPL", 100, 1, titantick.SideBuy)))
}

func TestEmptyRingReadReturnsFalse(t *testing.T) {
	r, err := New(4)
	require.NoError(t, err)

	_, ok := r.TryRead()
	assert.False(t, ok)
}

func TestCapacityOneRingIsValidButDegenerate(t *testing.T) {
	r, err := New(1)
	require.NoError(t, err)

	assert.True(t, r.TryWrite(titantick.New("AAPL", 1, 1, titantick.SideBuy)))
	assert.False(t, r.TryWrite(titantick.New("AAPL", 2, 1, titantick.SideBuy)))

	tick, ok := r.TryRead()
	require.True(t, ok)
	assert.Equal(t, 1.0, tick.Price)

	assert.True(t, r.TryWrite(titantick.New("AAPL", 3, 1, titantick.SideBuy)))
}

func TestFIFOOrderUnderConcurrentProducerConsumer(t *testing.T) {
	r, err := New(256)
	require.NoError(t, err)

	const n = 200_000
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := uint64(0); i < n; i++ {
			tick := titantick.New("AAPL", 1, 1, titantick.SideBuy)
			tick.Timestamp = i
			SpinWaitWrite(r, tick)
		}
	}()

	var got []uint64
	go func() {
		defer wg.Done()
		for len(got) < n {
			tick, ok := r.TryRead()
			if !ok {
				continue
			}
			got = append(got, tick.Timestamp)
		}
	}()

	wg.Wait()

	require.Len(t, got, n)
	for i, v := range got {
		require.Equal(t, uint64(i), v, "FIFO order violated at index %d", i)
	}
}

func TestTailMinusHeadNeverExceedsCapacity(t *testing.T) {
	r, err := New(8)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		r.TryWrite(titantick.New("AAPL", 1, 1, titantick.SideBuy))
		depth := r.Len()
		assert.GreaterOrEqual(t, depth, 0)
		assert.LessOrEqual(t, depth, r.Capacity())
		if i%3 == 0 {
			r.TryRead()
		}
	}
}

func TestHeadAndTailOccupySeparateCacheLines(t *testing.T) {
	r, err := New(16)
	require.NoError(t, err)

	headOff := unsafe.Offsetof(r.head)
	tailOff := unsafe.Offsetof(r.tail)

	assert.GreaterOrEqual(t, tailOff-headOff, uintptr(cacheLineSize))
}
