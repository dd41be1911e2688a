// Package position implements the Neutral/Long/Short sum type and the
// change_position state machine of spec.md §3 and §4.2.
package position

import (
	"github.com/shopspring/decimal"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/ledger"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

// Position is a tagged union: Kind == Neutral means Quantity and
// EntryPrice are meaningless zero values; the compiler can't enforce that
// in Go the way a Rust enum would, so every reader must switch on Kind
// first, per spec.md design note "Tagged position union".
type Position struct {
	Kind       types.PositionKind
	Quantity   xdec.Base
	EntryPrice xdec.Price
}

// Neutral is the zero-exposure position.
func Neutral() Position { return Position{Kind: types.Neutral} }

// UnrealizedPnL computes mark-to-market pnl for linear contracts, using
// bid as mark for long exits and ask for short exits (conservative, per
// spec.md §4.2).
func (p Position) UnrealizedPnL(bid, ask xdec.Price) xdec.Quote {
	switch p.Kind {
	case types.Long:
		return p.Quantity.Mul(bid.Sub(p.EntryPrice))
	case types.Short:
		return p.Quantity.Mul(p.EntryPrice.Sub(ask))
	default:
		return xdec.ZeroQuote
	}
}

// Mark returns the conservative mark price this position is evaluated at.
func (p Position) Mark(bid, ask xdec.Price) xdec.Price {
	if p.Kind == types.Short {
		return ask
	}
	return bid
}

// PositionMarginRequired is q*entry*imr for non-neutral positions, the
// invariant P4 quantity (spec.md §8).
func (p Position) PositionMarginRequired(initMarginReq decimal.Decimal) xdec.Quote {
	if p.Kind == types.Neutral {
		return xdec.ZeroQuote
	}
	return p.Quantity.Mul(p.EntryPrice).MulFrac(initMarginReq)
}

// ChangePosition applies a fill of filledQty at fillPrice on the given
// side to the current position, moving margin reservations and realized
// pnl through the ledger. It returns the new position. The dispatch is
// the cross product of current Kind × side from spec.md §4.2.
func ChangePosition(current Position, filledQty xdec.Base, fillPrice xdec.Price, side types.Side, led *ledger.Ledger, initMarginReq decimal.Decimal) Position {
	switch current.Kind {
	case types.Neutral:
		return open(filledQty, fillPrice, side, led, initMarginReq)
	case types.Long:
		if side == types.Buy {
			return increase(current, filledQty, fillPrice, led, initMarginReq)
		}
		return reduceOrFlip(current, filledQty, fillPrice, led, initMarginReq)
	case types.Short:
		if side == types.Sell {
			return increase(current, filledQty, fillPrice, led, initMarginReq)
		}
		return reduceOrFlip(current, filledQty, fillPrice, led, initMarginReq)
	default:
		return current
	}
}

// open creates a new Long (Buy) or Short (Sell) out of Neutral, reserving
// margin wallet -> position-margin.
func open(qty xdec.Base, price xdec.Price, side types.Side, led *ledger.Ledger, imr decimal.Decimal) Position {
	kind := types.Long
	if side == types.Sell {
		kind = types.Short
	}
	p := Position{Kind: kind, Quantity: qty, EntryPrice: price}
	margin := qty.Mul(price).MulFrac(imr)
	led.TransferIfPositive(ledger.UserWallet, ledger.UserPositionMargin, margin)
	return p
}

// increase extends the existing position in the same direction: the
// fill's price volume-weights into a new entry price, and additional
// margin for the incremental size is reserved.
func increase(current Position, qty xdec.Base, price xdec.Price, led *ledger.Ledger, imr decimal.Decimal) Position {
	totalQty := current.Quantity.Add(qty)
	notionalExisting := current.Quantity.Mul(current.EntryPrice)
	notionalNew := qty.Mul(price)
	newEntryPrice := notionalExisting.Add(notionalNew).DivByBase(totalQty)
	margin := qty.Mul(price).MulFrac(imr)
	led.TransferIfPositive(ledger.UserWallet, ledger.UserPositionMargin, margin)
	return Position{Kind: current.Kind, Quantity: totalQty, EntryPrice: newEntryPrice}
}

// reduceOrFlip handles Long/Sell and Short/Buy: decrease, close, or
// turnaround depending on filledQty versus the current size.
func reduceOrFlip(current Position, filledQty xdec.Base, fillPrice xdec.Price, led *ledger.Ledger, imr decimal.Decimal) Position {
	switch {
	case filledQty.LessThan(current.Quantity):
		return decrease(current, filledQty, fillPrice, led, imr)
	case filledQty.Equal(current.Quantity):
		decrease(current, filledQty, fillPrice, led, imr)
		return Neutral()
	default:
		remainder := filledQty.Sub(current.Quantity)
		decrease(current, current.Quantity, fillPrice, led, imr)
		oppositeKind := types.Long
		if current.Kind == types.Long {
			oppositeKind = types.Short
		}
		opened := Position{Kind: oppositeKind, Quantity: remainder, EntryPrice: fillPrice}
		margin := remainder.Mul(fillPrice).MulFrac(imr)
		led.TransferIfPositive(ledger.UserWallet, ledger.UserPositionMargin, margin)
		return opened
	}
}

// decrease realizes pnl on qty of the current position at fillPrice,
// frees qty's share of position margin back to wallet, and settles the
// realized pnl against TREASURY. Entry price is unchanged (spec.md §4.2).
// Returns the unchanged-entry-price position at the reduced size; callers
// that close fully or turn around discard this and build their own result.
func decrease(current Position, qty xdec.Base, fillPrice xdec.Price, led *ledger.Ledger, imr decimal.Decimal) Position {
	freed := qty.Mul(current.EntryPrice).MulFrac(imr)
	led.TransferIfPositive(ledger.UserPositionMargin, ledger.UserWallet, freed)

	var pnl xdec.Quote
	if current.Kind == types.Long {
		pnl = qty.Mul(fillPrice.Sub(current.EntryPrice))
	} else {
		pnl = qty.Mul(current.EntryPrice.Sub(fillPrice))
	}
	if pnl.IsPositive() {
		led.Transfer(ledger.Treasury, ledger.UserWallet, pnl)
	} else if pnl.IsNegative() {
		led.Transfer(ledger.UserWallet, ledger.Treasury, pnl.Neg())
	}

	remaining := current.Quantity.Sub(qty)
	return Position{Kind: current.Kind, Quantity: remaining, EntryPrice: current.EntryPrice}
}
