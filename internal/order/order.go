// Package order implements the lifecycle-typed Limit and Market order
// value objects of spec.md §3. Go has no parametric phantom types, so
// each lifecycle stage is a distinct Go type produced by a total
// conversion function, per spec.md design note "Lifecycle-typed orders".
package order

import (
	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

// ID is the exchange-assigned order identifier; strictly increasing
// across submissions (spec.md invariant 5).
type ID uint64

// Fill records the cumulative state of a partially or fully filled order.
type Fill struct {
	CumulativeQty xdec.Base
	AvgPrice      xdec.Price
}

// NewLimit is a limit order that has not yet been submitted: only its
// immutable identity is known.
type NewLimit struct {
	Side         types.Side
	LimitPrice   xdec.Price
	OriginalQty  xdec.Base
	UserOrderID  string // optional, empty means none supplied
}

// PendingLimit is a limit order resting in the book. Filled is the zero
// value (Unfilled) until the first partial fill.
type PendingLimit struct {
	NewLimit
	ID          ID
	TsSubmitted int64
	Filled      Fill
	HasFill     bool
}

// RemainingQty is the quantity still open for matching.
func (p PendingLimit) RemainingQty() xdec.Base {
	if !p.HasFill {
		return p.OriginalQty
	}
	return p.OriginalQty.Sub(p.Filled.CumulativeQty)
}

// FilledLimit is a terminal, fully-filled limit order.
type FilledLimit struct {
	NewLimit
	ID          ID
	TsSubmitted int64
	TsExecuted  int64
	AvgPrice    xdec.Price
	FilledQty   xdec.Base
}

// Submit converts a NewLimit into a PendingLimit, assigning id and ts.
// This is the "New -> Pending" total conversion spec.md's lifecycle calls
// for; there is no other way to obtain a PendingLimit.
func (n NewLimit) Submit(id ID, tsSubmitted int64) PendingLimit {
	return PendingLimit{NewLimit: n, ID: id, TsSubmitted: tsSubmitted}
}

// ApplyFill records a fill of qty at price against a resting order,
// returning the updated PendingLimit and whether it is now fully filled.
func (p PendingLimit) ApplyFill(qty xdec.Base, price xdec.Price) (PendingLimit, bool) {
	prevQty := xdec.ZeroBase
	prevNotional := xdec.ZeroQuote
	if p.HasFill {
		prevQty = p.Filled.CumulativeQty
		prevNotional = prevQty.Mul(p.Filled.AvgPrice)
	}
	newQty := prevQty.Add(qty)
	newNotional := prevNotional.Add(qty.Mul(price))
	avg := newNotional.DivByBase(newQty)
	p.Filled = Fill{CumulativeQty: newQty, AvgPrice: avg}
	p.HasFill = true
	remaining := p.OriginalQty.Sub(newQty)
	return p, remaining.LessThanOrEqual(xdec.ZeroBase)
}

// IntoFilled converts a fully-filled PendingLimit into a terminal
// FilledLimit at tsExecuted. Callers must only call this once
// ApplyFill has reported full fill; it is a total conversion, not a
// guarded one, matching spec.md's "Pending -> Filled" transition.
func (p PendingLimit) IntoFilled(tsExecuted int64) FilledLimit {
	return FilledLimit{
		NewLimit:    p.NewLimit,
		ID:          p.ID,
		TsSubmitted: p.TsSubmitted,
		TsExecuted:  tsExecuted,
		AvgPrice:    p.Filled.AvgPrice,
		FilledQty:   p.Filled.CumulativeQty,
	}
}

// NewMarket / PendingMarket / FilledMarket mirror the limit order
// lifecycle, but Pending -> Filled is atomic for market orders (spec.md
// §3: "same lifecycle; Pending -> Filled is atomic").
type NewMarket struct {
	Side        types.Side
	Qty         xdec.Base
	UserOrderID string
}

type PendingMarket struct {
	NewMarket
	ID          ID
	TsSubmitted int64
}

type FilledMarket struct {
	NewMarket
	ID          ID
	TsSubmitted int64
	TsExecuted  int64
	AvgFillPrice xdec.Price
	FilledQty    xdec.Base
}

func (n NewMarket) Submit(id ID, ts int64) PendingMarket {
	return PendingMarket{NewMarket: n, ID: id, TsSubmitted: ts}
}

// Fill executes a market order atomically at fillPrice for its full
// quantity — market orders never partially rest, spec.md §4.6.
func (p PendingMarket) Fill(fillPrice xdec.Price, tsExecuted int64) FilledMarket {
	return FilledMarket{
		NewMarket:    p.NewMarket,
		ID:           p.ID,
		TsSubmitted:  p.TsSubmitted,
		TsExecuted:   tsExecuted,
		AvgFillPrice: fillPrice,
		FilledQty:    p.Qty,
	}
}
