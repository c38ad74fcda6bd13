// Package titanlogsink implements the background drain that copies
// ticks from a dedicated logging ring to a buffered append-only file,
// adapted from the original's AsyncLogger (titan-core/src/logging.rs).
package titanlogsink

import (
	"bufio"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/abdoElHodaky/titan-hft/internal/titanmetrics"
	"github.com/abdoElHodaky/titan-hft/internal/titanring"
	"github.com/abdoElHodaky/titan-hft/internal/titantick"
)

// DrainBurst is the maximum number of ticks pulled per drain
// iteration before the loop checks for idle.
const DrainBurst = 4096

// IdleSleep is how long the drain goroutine sleeps when a burst
// drains nothing.
const IdleSleep = 10 * time.Microsecond

// Logger owns the logging ring and the background drain goroutine.
// Its producer is whichever goroutine calls Log (the engine consumer,
// via a fan-out tee); its consumer is the drain goroutine started by
// New.
type Logger struct {
	ring    *titanring.Ring
	metrics *titanmetrics.Metrics
	logger  *zap.Logger
}

// New takes ring as the dedicated logging ring, opens path for
// append-write through a buffered writer of bufferSize bytes, and
// launches the drain goroutine. The logger lives for the process
// lifetime; no graceful flush is required (spec.md §4.G). metrics may
// be nil, in which case LogRingDepth is never reported.
func New(path string, bufferSize int, ring *titanring.Ring, metrics *titanmetrics.Metrics, logger *zap.Logger) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	l := &Logger{ring: ring, metrics: metrics, logger: logger}

	go l.drain(f, bufferSize)

	return l, nil
}

func (l *Logger) drain(f *os.File, bufferSize int) {
	writer := bufio.NewWriterSize(f, bufferSize)
	buf := make([]byte, titantick.Size)

	for {
		if l.metrics != nil {
			l.metrics.LogRingDepth.Set(float64(l.ring.Len()))
		}

		drained := 0
		for drained < DrainBurst {
			tick, ok := l.ring.TryRead()
			if !ok {
				break
			}
			tick.Encode(buf)
			if _, err := writer.Write(buf); err != nil {
				// IO_TRANSIENT: swallowed per spec.md §7 — a benchmark
				// harness must not stall on a flaky descriptor.
				l.logger.Debug("log write failed", zap.Error(err))
			}
			drained++
		}

		if drained == 0 {
			time.Sleep(IdleSleep)
		} else {
			_ = writer.Flush()
		}
	}
}

// Log enqueues tick for the drain goroutine, busy-waiting if the
// logging ring is momentarily full.
func (l *Logger) Log(tick titantick.Tick) {
	titanring.SpinWaitWrite(l.ring, tick)
}
