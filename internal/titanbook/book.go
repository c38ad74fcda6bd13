// Package titanbook implements the best-bid/best-ask cache and
// hash-indexed resting-order store that the engine loop uses as a
// latency-harness stand-in for a full limit-order book.
//
// It intentionally matches only against the cached best bid/ask and
// never re-examines resting orders after a match, nor removes a
// resting order when it is hit (Trade.SellerOrderID / BuyerOrderID is
// left 0 on the side that rested). This is a benchmark-only
// approximation carried over from the original Rust implementation,
// not a bug: see spec.md §9.
package titanbook

import "github.com/abdoElHodaky/titan-hft/internal/titantick"

// sentinelBestAsk is the initial "no ask known yet" price.
const sentinelBestAsk = 999_999.9

// Order is a resting order in the book.
type Order struct {
	Price    float64
	Quantity float64
	OrderID  uint64
}

// Trade is the result of a crossing match. A 0 id on one side means
// that side was a resting order the book does not identify or remove
// (see package doc).
type Trade struct {
	Price          float64
	Quantity       float64
	BuyerOrderID   uint64
	SellerOrderID  uint64
}

// Book is the thread-local orderbook owned exclusively by the engine
// consumer goroutine; it requires no synchronization.
type Book struct {
	bids map[uint64]Order
	asks map[uint64]Order

	BestBid float64
	BestAsk float64

	TradesCount uint64
}

// New constructs an empty Book with the initial best-bid/best-ask
// sentinels from spec.md §3.
func New() *Book {
	return &Book{
		bids:    make(map[uint64]Order),
		asks:    make(map[uint64]Order),
		BestBid: 0.0,
		BestAsk: sentinelBestAsk,
	}
}

// ExecuteOrder applies tick to the book: it either crosses
// immediately against the cached opposite best price (producing a
// Trade) or rests in the appropriate side and updates the best-price
// cache.
func (b *Book) ExecuteOrder(tick *titantick.Tick) (Trade, bool) {
	isBid := tick.Side == titantick.SideBuy
	price := tick.Price
	quantity := float64(tick.Quantity)
	orderID := tick.Timestamp

	if isBid {
		if price >= b.BestAsk {
			b.TradesCount++
			return Trade{
				Price:         b.BestAsk,
				Quantity:      quantity,
				BuyerOrderID:  orderID,
				SellerOrderID: 0,
			}, true
		}
		b.bids[orderID] = Order{Price: price, Quantity: quantity, OrderID: orderID}
		if price > b.BestBid {
			b.BestBid = price
		}
		return Trade{}, false
	}

	if price <= b.BestBid {
		b.TradesCount++
		return Trade{
			Price:         b.BestBid,
			Quantity:      quantity,
			BuyerOrderID:  0,
			SellerOrderID: orderID,
		}, true
	}
	b.asks[orderID] = Order{Price: price, Quantity: quantity, OrderID: orderID}
	if price < b.BestAsk {
		b.BestAsk = price
	}
	return Trade{}, false
}

// BidCount and AskCount expose per-side resting-order counts,
// primarily for tests asserting against spec.md's seed scenarios.
func (b *Book) BidCount() int { return len(b.bids) }
func (b *Book) AskCount() int { return len(b.asks) }
