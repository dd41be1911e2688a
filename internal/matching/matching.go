// Package matching implements the fill-determination rules of spec.md
// §4.5, adapted from the teacher's internal/matching/engine.go: where the
// teacher matched a taker order against book rows fetched with `for
// update` row locks, this in-memory version walks the resting order map
// directly since there is a single logical owner and no concurrency
// (spec.md §5).
package matching

import (
	"sort"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/marketupdate"
	"github.com/abdulloh5007/lfest-go/internal/order"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

// Fill is one resting order's consumption against a single trade or
// aggregated price level.
type Fill struct {
	OrderID order.ID
	Qty     xdec.Base
	Price   xdec.Price
}

// RestingOrder is the minimal shape matching needs from a resting order,
// decoupled from exchange's active-order storage so this package has no
// dependency on exchange's map types.
type RestingOrder struct {
	ID           order.ID
	Side         types.Side
	LimitPrice   xdec.Price
	RemainingQty xdec.Base
}

// Book is the read-only view of resting limit orders matching consumes;
// the exchange core implements it directly over its active-order map.
type Book interface {
	// RestingOrders returns every resting order, in ascending OrderID
	// order — spec.md design note "Deterministic iteration": "any
	// iteration over active_limit_orders that affects observable
	// ordering must use a stable order".
	RestingOrders() []RestingOrder
}

// Match dispatches on the concrete MarketUpdate type and returns the
// fills it produces, in the deterministic order they should be applied.
// Bba never fills resting orders (spec.md §4.5). A single snapshot of the
// book is taken up front and consumed locally across every trade/level
// within this one update, so a SmartCandle's later price levels see the
// quantity already used up by earlier levels in the same call rather than
// re-reading stale remaining quantities from the caller's still-unmutated
// state.
func Match(update marketupdate.Update, book Book) []Fill {
	working := snapshot(book)

	switch u := update.(type) {
	case marketupdate.Bba:
		return nil
	case marketupdate.Trade:
		return matchTrade(u.Side, u.Price, u.Qty, working)
	case marketupdate.Candle:
		// A Candle carries no per-price-level breakdown; replay its
		// total volume once at the close price on each side, the most
		// conservative single trade-equivalent interpretation available
		// from OHLCV alone. SmartCandle should be preferred when fill
		// accuracy matters (spec.md §4.5, §6).
		fills := matchTrade(types.Buy, u.Close, u.Volume, working)
		fills = append(fills, matchTrade(types.Sell, u.Close, u.Volume, working)...)
		return fills
	case marketupdate.SmartCandle:
		var fills []Fill
		for _, lvl := range u.Levels {
			if lvl.BuyVolume.IsPositive() {
				fills = append(fills, matchTrade(types.Buy, lvl.Price, lvl.BuyVolume, working)...)
			}
			if lvl.SellVolume.IsPositive() {
				fills = append(fills, matchTrade(types.Sell, lvl.Price, lvl.SellVolume, working)...)
			}
		}
		return fills
	default:
		return nil
	}
}

// snapshot copies the book into a slice sorted ascending by OrderID once,
// per spec.md's deterministic-iteration design note; matchTrade mutates
// remaining quantities on this copy directly.
func snapshot(book Book) []RestingOrder {
	resting := append([]RestingOrder{}, book.RestingOrders()...)
	sort.Slice(resting, func(i, j int) bool { return resting[i].ID < resting[j].ID })
	return resting
}

// matchTrade implements spec.md §4.5's crossing rule: a resting Buy at L
// is filled by an incoming Sell trade when trade.price < L; a resting
// Sell at L is filled by an incoming Buy trade when trade.price > L.
// Multiple resting orders may partially consume one trade; eligible
// orders are visited in ascending OrderID order for determinism. working
// is mutated in place so subsequent calls within the same Match() see
// the reduced remaining quantities.
func matchTrade(takerSide types.Side, tradePrice xdec.Price, tradeQty xdec.Base, working []RestingOrder) []Fill {
	remaining := tradeQty
	var fills []Fill
	for i := range working {
		if remaining.LessThanOrEqual(xdec.ZeroBase) {
			break
		}
		o := &working[i]
		if !o.RemainingQty.IsPositive() || !eligible(takerSide, tradePrice, *o) {
			continue
		}
		qty := remaining.Min(o.RemainingQty)
		if !qty.IsPositive() {
			continue
		}
		fills = append(fills, Fill{OrderID: o.ID, Qty: qty, Price: o.LimitPrice})
		remaining = remaining.Sub(qty)
		o.RemainingQty = o.RemainingQty.Sub(qty)
	}
	return fills
}

// eligible reports whether a resting order o is filled by an incoming
// trade of takerSide at tradePrice, per spec.md §4.5's strict-crossing
// rule: a resting Buy at L is taken by an incoming Sell trade priced
// strictly below L; a resting Sell at L is taken by an incoming Buy
// trade priced strictly above L. A resting order can only ever be taken
// by flow on the opposite side.
func eligible(takerSide types.Side, tradePrice xdec.Price, o RestingOrder) bool {
	if o.Side == types.Buy && takerSide == types.Sell {
		return tradePrice.LessThan(o.LimitPrice)
	}
	if o.Side == types.Sell && takerSide == types.Buy {
		return tradePrice.GreaterThan(o.LimitPrice)
	}
	return false
}
