// Package ordermargin computes the margin a set of resting limit orders
// requires to cover their worst-case outcome, net of the current position
// (spec.md §4.3).
package ordermargin

import (
	"github.com/shopspring/decimal"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/position"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

// RestingOrder is the minimal view the calculator needs of a pending
// limit order: its side, remaining quantity, and limit price.
type RestingOrder struct {
	Side         types.Side
	RemainingQty xdec.Base
	LimitPrice   xdec.Price
}

// Required implements the five-step algorithm of spec.md §4.3:
//  1. Sum buy-side and sell-side open quantity.
//  2. Offset against the position (a sell that would close a long needs
//     no incremental margin beyond what the long already reserves, and
//     symmetrically for buys against a short).
//  3. Compute notional of the remaining (non-offset) buys and sells, and
//     each order's reserved maker fee, kept separate from notional.
//  4. Offset notionals against any residual opposing position evaluated
//     at its entry price, clamped at zero.
//  5. Required margin = max(buy notional, sell notional) * init_margin_req,
//     plus the total reserved maker fee added in full afterward — the fee
//     reserve is a flat cost, not scaled down by init_margin_req the way
//     leveraged notional is.
func Required(orders []RestingOrder, pos position.Position, initMarginReq, makerFeeRate decimal.Decimal) xdec.Quote {
	qb := xdec.ZeroBase
	qs := xdec.ZeroBase
	for _, o := range orders {
		if o.Side == types.Buy {
			qb = qb.Add(o.RemainingQty)
		} else {
			qs = qs.Add(o.RemainingQty)
		}
	}

	// Step 2: offset open quantity against the position.
	switch pos.Kind {
	case types.Long:
		qs = qs.Sub(qs.Min(pos.Quantity))
	case types.Short:
		qb = qb.Sub(qb.Min(pos.Quantity))
	}

	// Step 3: notional of remaining buys/sells at their limit prices, and
	// the total reserved maker fee across every order, tracked separately
	// from notional so it is never scaled by init_margin_req.
	nb := xdec.ZeroQuote
	ns := xdec.ZeroQuote
	feeTotal := xdec.ZeroQuote
	remainingBuyQty := qb
	remainingSellQty := qs
	for _, o := range orders {
		if o.Side == types.Buy && remainingBuyQty.IsPositive() {
			used := o.RemainingQty.Min(remainingBuyQty)
			notional := used.Mul(o.LimitPrice)
			nb = nb.Add(notional)
			feeTotal = feeTotal.Add(feeReserve(notional.MulFrac(makerFeeRate)))
			remainingBuyQty = remainingBuyQty.Sub(used)
		}
		if o.Side == types.Sell && remainingSellQty.IsPositive() {
			used := o.RemainingQty.Min(remainingSellQty)
			notional := used.Mul(o.LimitPrice)
			ns = ns.Add(notional)
			feeTotal = feeTotal.Add(feeReserve(notional.MulFrac(makerFeeRate)))
			remainingSellQty = remainingSellQty.Sub(used)
		}
	}

	// Step 4: offset notionals against the residual opposing position at
	// its entry price, clamped at zero.
	switch pos.Kind {
	case types.Short:
		residualShortNotional := pos.Quantity.Mul(pos.EntryPrice)
		nb = clampNonNegative(nb.Sub(residualShortNotional))
	case types.Long:
		residualLongNotional := pos.Quantity.Mul(pos.EntryPrice)
		ns = clampNonNegative(ns.Sub(residualLongNotional))
	}

	return nb.Max(ns).MulFrac(initMarginReq).Add(feeTotal)
}

// feeReserve only reserves a positive maker fee; a negative fee_maker
// (rebate) is credited back to the trader on fill, not reserved upfront —
// see spec.md §9 open question on rebate direction.
func feeReserve(fee xdec.Quote) xdec.Quote {
	if fee.IsPositive() {
		return fee
	}
	return xdec.ZeroQuote
}

func clampNonNegative(q xdec.Quote) xdec.Quote {
	if q.IsNegative() {
		return xdec.ZeroQuote
	}
	return q
}
