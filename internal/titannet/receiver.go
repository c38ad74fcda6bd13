// Package titannet implements the UDP batch receiver: the ingest
// producer that parses fixed-size jumbo packets into tick records and
// enqueues them into the ingest ring.
package titannet

import (
	"net"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/abdoElHodaky/titan-hft/internal/titanerrors"
	"github.com/abdoElHodaky/titan-hft/internal/titanring"
	"github.com/abdoElHodaky/titan-hft/internal/titantick"
)

// TicksPerPacket and PacketSize are the wire protocol constants from
// spec.md §6: one jumbo datagram carries exactly 32 ticks.
const (
	TicksPerPacket = 32
	PacketSize     = TicksPerPacket * titantick.Size
	// BatchReadLoops is the number of recv attempts tried per outer
	// loop iteration before falling through to a pause.
	BatchReadLoops = 16
)

// pollTimeout is the per-recv deadline used to get a short, bounded,
// WouldBlock-equivalent return when no datagram is pending, so the
// inner batch loop can make up to BatchReadLoops attempts without
// parking the goroutine on an idle socket.
const pollTimeout = 50 * time.Microsecond

// Receiver is the batch UDP ingest endpoint. Bind opens a
// non-blocking socket with address/port reuse and a large receive
// buffer; ListenLoop runs forever, pushing decoded ticks into the
// ingest ring.
type Receiver struct {
	conn *net.UDPConn
	// buf is one byte larger than PacketSize so that an oversized
	// datagram reads back longer than PacketSize instead of being
	// truncated to exactly PacketSize and accepted.
	buf    [PacketSize + 1]byte
	logger *zap.Logger
}

// Bind opens a UDP socket on addr, enables SO_REUSEADDR/SO_REUSEPORT,
// requests an 8MiB OS receive buffer (target; the kernel may clamp
// it), and binds. This is the Go analogue of the original's socket2 +
// libc::setsockopt calls (titan-core/src/network.rs): Go's net
// package always puts the fd in non-blocking mode internally, so the
// Control hook only needs to set the socket options the standard
// dialer doesn't.
func Bind(addr string, recvBufferBytes int, logger *zap.Logger) (*Receiver, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				if setErr := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); setErr != nil {
					ctrlErr = setErr
					return
				}
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, recvBufferBytes)
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}

	pc, err := lc.ListenPacket(nil, "udp", addr)
	if err != nil {
		return nil, titanerrors.Wrap(err, titanerrors.ErrBindFailure, "bind UDP receiver")
	}
	conn := pc.(*net.UDPConn)

	logger.Info("jumbo receiver initialized", zap.String("addr", addr), zap.Int("ticks_per_packet", TicksPerPacket))

	return &Receiver{conn: conn, logger: logger}, nil
}

// Close releases the underlying socket. Only used by tests; the
// production loop runs for the process lifetime.
func (r *Receiver) Close() error { return r.conn.Close() }

// ListenLoop runs forever, never returning on success. In each outer
// iteration it attempts up to BatchReadLoops receive calls before
// yielding; every accepted jumbo packet is decoded into
// TicksPerPacket ticks and enqueued in wire order. If the ring is
// full the receiver busy-waits rather than dropping a tick mid-packet
// (spec.md §4.C).
func (r *Receiver) ListenLoop(ring *titanring.Ring) {
	for {
		receivedAny := false

		for i := 0; i < BatchReadLoops; i++ {
			_ = r.conn.SetReadDeadline(time.Now().Add(pollTimeout))
			n, _, err := r.conn.ReadFromUDP(r.buf[:])
			if err != nil {
				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					break
				}
				// IO_TRANSIENT: any other recv error ends the inner
				// batch silently and retries on the next outer
				// iteration (spec.md §4.C).
				break
			}

			if n != PacketSize {
				// SHORT_PACKET / OVERSIZED_PACKET: silently discarded.
				continue
			}

			receivedAny = true
			for t := 0; t < TicksPerPacket; t++ {
				off := t * titantick.Size
				tick := titantick.Decode(r.buf[off : off+titantick.Size])
				titanring.SpinWaitWrite(ring, tick)
			}
		}

		if !receivedAny {
			runtime.Gosched()
		}
	}
}
