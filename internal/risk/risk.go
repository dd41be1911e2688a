// Package risk implements the isolated-margin checks gating order
// submission and market-update processing (spec.md §4.4).
package risk

import (
	"github.com/shopspring/decimal"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/marketupdate"
	"github.com/abdulloh5007/lfest-go/internal/ordermargin"
	"github.com/abdulloh5007/lfest-go/internal/position"
	"github.com/abdulloh5007/lfest-go/internal/types"
	"github.com/abdulloh5007/lfest-go/internal/xerrors"
)

// CheckMarketOrder verifies that the simulated post-fill position fits
// within available wallet balance plus whatever position margin the fill
// itself releases, including the taker fee. For a pure position-opening
// or -increasing market order this reduces to: fee + incremental margin
// <= available. For a reducing/turnaround market order, the margin that
// would be released by closing qty is credited back before the check.
func CheckMarketOrder(pos position.Position, qty xdec.Base, fillPrice xdec.Price, side types.Side, availableWallet xdec.Quote, initMarginReq, takerFeeRate decimal.Decimal) error {
	fee := qty.Mul(fillPrice).MulFrac(takerFeeRate)
	incrementalMargin := incrementalMarginForFill(pos, qty, fillPrice, side, initMarginReq)
	need := incrementalMargin.Add(feeIfPositive(fee))
	if need.GreaterThan(availableWallet) {
		return xerrors.NotEnoughAvailableBalance(need, availableWallet)
	}
	return nil
}

// incrementalMarginForFill returns the net wallet->position-margin
// transfer a fill of qty at fillPrice on side would cause, which may be
// negative (a net release) if the fill reduces or flips the position.
func incrementalMarginForFill(pos position.Position, qty xdec.Base, fillPrice xdec.Price, side types.Side, imr decimal.Decimal) xdec.Quote {
	closingSide := pos.Kind == types.Long && side == types.Sell || pos.Kind == types.Short && side == types.Buy
	if pos.Kind == types.Neutral || !closingSide {
		return qty.Mul(fillPrice).MulFrac(imr)
	}
	// Closing/reducing/turnaround: qty up to pos.Quantity releases margin;
	// any excess opens a new opposing position requiring fresh margin.
	if qty.LessThanOrEqual(pos.Quantity) {
		released := qty.Mul(pos.EntryPrice).MulFrac(imr)
		return xdec.ZeroQuote.Sub(released)
	}
	released := pos.Quantity.Mul(pos.EntryPrice).MulFrac(imr)
	remainder := qty.Sub(pos.Quantity)
	opened := remainder.Mul(fillPrice).MulFrac(imr)
	return opened.Sub(released)
}

func feeIfPositive(fee xdec.Quote) xdec.Quote {
	if fee.IsPositive() {
		return fee
	}
	return xdec.ZeroQuote
}

// CheckLimitOrder recomputes prospective order margin including the
// candidate order and requires available wallet balance cover the
// increase over the current order-margin reservation.
func CheckLimitOrder(existing []ordermargin.RestingOrder, candidate ordermargin.RestingOrder, pos position.Position, availableWallet xdec.Quote, initMarginReq, makerFeeRate decimal.Decimal) error {
	before := ordermargin.Required(existing, pos, initMarginReq, makerFeeRate)
	after := ordermargin.Required(append(append([]ordermargin.RestingOrder{}, existing...), candidate), pos, initMarginReq, makerFeeRate)
	delta := after.Sub(before)
	if delta.IsPositive() && delta.GreaterThan(availableWallet) {
		return xerrors.NotEnoughAvailableBalance(delta, availableWallet)
	}
	return nil
}

// CheckMaintenanceMargin fails only once mark-to-market equity is
// exhausted, which spec.md §4.4 defines as equal to the initial margin
// requirement (isolated, flat-tier, no liquidation of third parties):
// equity is the position margin reserved at entry plus unrealized pnl,
// and the position is violated once that equity would go negative, i.e.
// once losses exceed the margin reserved for it. At init_margin_req == 1
// (full collateral) a long can never go below zero equity before the mark
// price itself would have to cross zero, so it is never violated; a
// fully-collateralized short is violated once the ask exceeds twice its
// entry price. Under leverage (init_margin_req < 1) an adverse move
// exceeding the reserved margin violates it on either side. A Neutral
// position trivially satisfies the check.
func CheckMaintenanceMargin(state marketupdate.State, pos position.Position, initMarginReq decimal.Decimal) error {
	if pos.Kind == types.Neutral {
		return nil
	}
	reserved := pos.PositionMarginRequired(initMarginReq)
	unrealized := pos.UnrealizedPnL(state.Bid, state.Ask)
	equity := reserved.Add(unrealized)
	if equity.IsNegative() {
		return xerrors.MaintenanceMarginViolated()
	}
	return nil
}
