// Package titanstrategy defines the polymorphic per-tick decision
// capability the engine drives, and the naive market-maker variant
// used to generate realistic consumer work for the benchmark.
package titanstrategy

import "github.com/abdoElHodaky/titan-hft/internal/titantick"

// Strategy is the capability set the engine holds one instance of,
// chosen at startup. Concrete variants implement Name and OnTick; the
// engine calls OnTick once per tick on its single hot-path dispatch.
type Strategy interface {
	Name() string
	OnTick(tick *titantick.Tick) bool
}

// MarketMaker is the naive strategy from spec.md §4.E: it exists to
// generate realistic consumer work, not to trade profitably.
type MarketMaker struct {
	Position   int64
	PnL        float64
	TradeCount uint64
}

// NewMarketMaker returns a zeroed MarketMaker.
func NewMarketMaker() *MarketMaker {
	return &MarketMaker{}
}

// Name identifies the strategy variant in logs and reports.
func (m *MarketMaker) Name() string { return "NaiveMM_v1" }

// OnTick updates position and PnL for a buy/sell tick. Zero-quantity
// ticks are ignored and return false.
func (m *MarketMaker) OnTick(tick *titantick.Tick) bool {
	if tick.Quantity == 0 {
		return false
	}
	qty := float64(tick.Quantity)
	if tick.Side == titantick.SideBuy {
		m.Position -= int64(tick.Quantity)
		m.PnL += qty * tick.Price
	} else {
		m.Position += int64(tick.Quantity)
		m.PnL -= qty * tick.Price
	}
	m.TradeCount++
	return true
}
