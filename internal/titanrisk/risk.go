// Package titanrisk implements the monotone kill switch and the risk
// manager that evaluates position/drawdown limits against it.
package titanrisk

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// KillSwitch is a process-wide, monotone atomic flag. Any number of
// goroutines may observe it; any goroutine may trip it. It never
// resets once tripped — there is no reset API by design (spec.md §4.F).
type KillSwitch struct {
	tripped atomic.Bool
}

// NewKillSwitch returns an untripped KillSwitch.
func NewKillSwitch() *KillSwitch {
	return &KillSwitch{}
}

// IsTripped performs an acquire load.
func (k *KillSwitch) IsTripped() bool {
	return k.tripped.Load()
}

// Trip performs an idempotent release store of true.
func (k *KillSwitch) Trip() {
	k.tripped.Store(true)
}

// Manager evaluates position and drawdown limits for the engine's
// single consumer thread, tripping the shared KillSwitch on breach.
type Manager struct {
	maxPosition int64
	maxDrawdown float64
	killSwitch  *KillSwitch
	logger      *zap.Logger
}

// NewManager builds a Manager with the given limits, sharing
// killSwitch with any other observer (none exist in this design, but
// the field keeps the teacher's constructor-injection shape).
func NewManager(maxPosition int64, maxDrawdown float64, killSwitch *KillSwitch, logger *zap.Logger) *Manager {
	return &Manager{
		maxPosition: maxPosition,
		maxDrawdown: maxDrawdown,
		killSwitch:  killSwitch,
		logger:      logger,
	}
}

// DefaultMaxPosition and DefaultMaxDrawdown are spec.md §4.F's
// defaults.
const (
	DefaultMaxPosition = 5_000
	DefaultMaxDrawdown = -20_000.0
)

// Check evaluates the current position and PnL against the
// configured limits. The kill-switch load runs first so a
// shared-state abort takes priority over the local comparisons
// (spec.md §4.F).
func (m *Manager) Check(position int64, pnl float64) bool {
	if m.killSwitch.IsTripped() {
		return false
	}

	if abs64(position) > m.maxPosition {
		m.logger.Warn("position limit breached",
			zap.Int64("position", position), zap.Int64("max_position", m.maxPosition))
		m.killSwitch.Trip()
		return false
	}

	if pnl < m.maxDrawdown {
		m.logger.Warn("max drawdown breached",
			zap.Float64("pnl", pnl), zap.Float64("max_drawdown", m.maxDrawdown))
		m.killSwitch.Trip()
		return false
	}

	return true
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
