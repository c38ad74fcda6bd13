// Package titanengine drives the consumer side of the pipeline:
// orderbook -> strategy -> risk, with per-tick latency recorded into
// a histogram, and produces the benchmark percentile report.
package titanengine

import (
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/titan-hft/internal/titanbook"
	"github.com/abdoElHodaky/titan-hft/internal/titanhist"
	"github.com/abdoElHodaky/titan-hft/internal/titanlogsink"
	"github.com/abdoElHodaky/titan-hft/internal/titanmetrics"
	"github.com/abdoElHodaky/titan-hft/internal/titanring"
	"github.com/abdoElHodaky/titan-hft/internal/titanrisk"
	"github.com/abdoElHodaky/titan-hft/internal/titanstrategy"
)

// BenchmarkSamples is the sample budget from spec.md §4.H: the loop
// terminates once this many samples have been recorded.
const BenchmarkSamples = 1_000_000

// Engine owns the orderbook, strategy, risk manager, and histogram
// exclusively — no synchronization is required across these fields
// since only the consumer goroutine touches them.
type Engine struct {
	ring     *titanring.Ring
	book     *titanbook.Book
	strategy titanstrategy.Strategy
	risk     *titanrisk.Manager
	hist     *titanhist.Histogram
	metrics  *titanmetrics.Metrics
	logTee   *titanlogsink.Logger
	logger   *zap.Logger

	samples    int
	maxSamples int
	runID      uuid.UUID
}

// New builds an Engine wired to ring, with the given strategy, risk
// manager, metrics, and sample budget (BenchmarkSamples if 0). logTee
// may be nil, in which case ticks are not fanned out to a second ring
// for the async logger.
func New(ring *titanring.Ring, strategy titanstrategy.Strategy, risk *titanrisk.Manager, metrics *titanmetrics.Metrics, logTee *titanlogsink.Logger, logger *zap.Logger, maxSamples int) *Engine {
	if maxSamples <= 0 {
		maxSamples = BenchmarkSamples
	}
	return &Engine{
		ring:       ring,
		book:       titanbook.New(),
		strategy:   strategy,
		risk:       risk,
		hist:       titanhist.New(),
		metrics:    metrics,
		logTee:     logTee,
		logger:     logger,
		maxSamples: maxSamples,
		runID:      uuid.New(),
	}
}

// Book exposes the engine's orderbook, primarily for tests and
// end-of-run reporting.
func (e *Engine) Book() *titanbook.Book { return e.book }

// Strategy exposes the engine's strategy instance.
func (e *Engine) Strategy() titanstrategy.Strategy { return e.strategy }

// Histogram exposes the latency histogram, primarily for tests.
func (e *Engine) Histogram() *titanhist.Histogram { return e.hist }

// RunID identifies this engine run. Run logs it when it starts; it is
// not part of the stdout report and not attached to the prometheus
// series.
func (e *Engine) RunID() uuid.UUID { return e.runID }

// Run drives the engine loop until the sample budget is reached or a
// risk check fails, then returns the percentile report (spec.md
// §4.H). It is the single consumer of ring.
func (e *Engine) Run() titanhist.Report {
	e.logger.Info("engine run starting",
		zap.String("run_id", e.runID.String()),
		zap.String("strategy", e.strategy.Name()))

	for {
		tick, ok := e.ring.TryRead()
		if !ok {
			runtime.Gosched()
			continue
		}

		if e.logTee != nil {
			e.logTee.Log(tick)
		}

		t0 := time.Now()

		if e.metrics != nil {
			e.metrics.IngestRingDepth.Set(float64(e.ring.Len()))
		}

		if _, matched := e.book.ExecuteOrder(&tick); matched && e.metrics != nil {
			e.metrics.TradesTotal.Inc()
		}

		e.strategy.OnTick(&tick)

		if !e.risk.Check(positionOf(e.strategy), pnlOf(e.strategy)) {
			e.logger.Warn("risk check failed, engine stopping", zap.Int("samples", e.samples))
			if e.metrics != nil {
				e.metrics.KillSwitchTrips.Inc()
			}
			break
		}

		elapsed := time.Since(t0)

		if e.metrics != nil {
			e.metrics.TicksTotal.Inc()
		}

		if tick.Timestamp > 0 && e.samples < e.maxSamples {
			deltaNs := uint64(elapsed.Nanoseconds())
			e.hist.Record(deltaNs)
			if e.metrics != nil {
				e.metrics.DecisionLatency.Observe(float64(deltaNs) / 1000.0)
				e.metrics.SamplesTotal.Inc()
			}
			e.samples++

			if e.samples == e.maxSamples {
				e.logger.Info("benchmark collection complete", zap.Int("samples", e.samples))
				break
			}
		}
	}

	return e.hist.Compute()
}

// positionOf and pnlOf extract the fields the risk manager needs from
// whatever Strategy variant the engine holds. The capability set in
// spec.md §4.E is deliberately narrow (name + on_tick); titan-hft
// adds this small type switch rather than widening Strategy, since
// only MarketMaker exists today and the risk check is specified in
// terms of position/PnL, not the strategy interface itself.
func positionOf(s titanstrategy.Strategy) int64 {
	if mm, ok := s.(*titanstrategy.MarketMaker); ok {
		return mm.Position
	}
	return 0
}

func pnlOf(s titanstrategy.Strategy) float64 {
	if mm, ok := s.(*titanstrategy.MarketMaker); ok {
		return mm.PnL
	}
	return 0
}
