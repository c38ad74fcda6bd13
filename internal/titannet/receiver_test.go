package titannet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/titan-hft/internal/titanfeed"
	"github.com/abdoElHodaky/titan-hft/internal/titanring"
	"github.com/abdoElHodaky/titan-hft/internal/titantick"
)

// S6 from spec.md §8: a 100-packet burst sent over real UDP arrives at
// the ingest ring byte-for-byte identical, in wire order, to what the
// sender encoded.
func TestListenLoopDecodesJumboPacketsInWireOrder(t *testing.T) {
	receiver, err := Bind("127.0.0.1:0", 1<<20, zap.NewNop())
	require.NoError(t, err)
	defer receiver.Close()

	addr := receiver.conn.LocalAddr().(*net.UDPAddr)

	ring, err := titanring.New(16384)
	require.NoError(t, err)
	go receiver.ListenLoop(ring)

	sender, err := net.DialUDP("udp", nil, addr)
	require.NoError(t, err)
	defer sender.Close()

	const packets = 100
	want := make([]titantick.Tick, 0, packets*TicksPerPacket)

	base := titantick.New("AAPL", 100.0, 10, titantick.SideBuy)
	for p := 0; p < packets; p++ {
		ticks := titanfeed.RepeatTick(base, uint64(p*TicksPerPacket))
		want = append(want, ticks...)
		_, err := sender.Write(titanfeed.BuildPacket(ticks))
		require.NoError(t, err)
	}

	got := make([]titantick.Tick, 0, len(want))
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < len(want) && time.Now().Before(deadline) {
		tick, ok := ring.TryRead()
		if !ok {
			continue
		}
		got = append(got, tick)
	}

	require.Len(t, got, len(want))
	assert.Equal(t, want, got)
}

func TestShortAndOversizedPacketsAreSilentlyDiscarded(t *testing.T) {
	receiver, err := Bind("127.0.0.1:0", 1<<20, zap.NewNop())
	require.NoError(t, err)
	defer receiver.Close()

	addr := receiver.conn.LocalAddr().(*net.UDPAddr)

	ring, err := titanring.New(16)
	require.NoError(t, err)
	go receiver.ListenLoop(ring)

	sender, err := net.DialUDP("udp", nil, addr)
	require.NoError(t, err)
	defer sender.Close()

	_, err = sender.Write(make([]byte, PacketSize-1))
	require.NoError(t, err)
	_, err = sender.Write(make([]byte, PacketSize+1))
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, ok := ring.TryRead()
	assert.False(t, ok)
}
