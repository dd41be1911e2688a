package exchange

import (
	"github.com/abdulloh5007/lfest-go/internal/ledger"
	"github.com/abdulloh5007/lfest-go/internal/marketupdate"
	"github.com/abdulloh5007/lfest-go/internal/matching"
	"github.com/abdulloh5007/lfest-go/internal/order"
	"github.com/abdulloh5007/lfest-go/internal/position"
	"github.com/abdulloh5007/lfest-go/internal/risk"
	"github.com/abdulloh5007/lfest-go/internal/xerrors"
)

// UpdateState advances the exchange by one market update: it validates
// monotonic timestamps and the price filter, refreshes market state,
// samples the tracker, runs the maintenance-margin check, then matches
// resting orders against the update (spec.md §4.6).
func (e *Exchange) UpdateState(tsNs int64, update marketupdate.Update) ([]LimitOrderUpdate, error) {
	if e.started && tsNs < e.market.CurrentTs {
		return nil, xerrors.NonMonotonicTimestamp(e.market.CurrentTs, tsNs)
	}

	if err := e.validateUpdatePrices(update); err != nil {
		return nil, err
	}

	e.market = update.ApplyTo(e.market)
	e.started = true

	e.maybeSample(tsNs)

	if err := risk.CheckMaintenanceMargin(e.market, e.pos, e.cfg.ContractSpec.InitMarginReq); err != nil {
		return nil, err
	}

	fills := matching.Match(update, e)
	return e.applyFills(fills), nil
}

// validateUpdatePrices enforces the price filter (tick/min/max/deviation)
// and bid<ask on the bid/ask, trade price or close price the concrete
// update variant carries. SmartCandle level prices are not checked.
func (e *Exchange) validateUpdatePrices(update marketupdate.Update) error {
	pf := e.cfg.ContractSpec.PriceFilter
	mid := e.market.Mid()
	mark := e.pos.Mark(e.market.Bid, e.market.Ask)

	switch u := update.(type) {
	case marketupdate.Bba:
		if !u.Bid.LessThan(u.Ask) {
			return xerrors.BidGreaterThanAsk(u.Bid, u.Ask)
		}
		if err := pf.Validate(u.Bid); err != nil {
			return err
		}
		if err := pf.Validate(u.Ask); err != nil {
			return err
		}
		if err := pf.ValidateDeviation(u.Bid, mid, mark); err != nil {
			return err
		}
		if err := pf.ValidateDeviation(u.Ask, mid, mark); err != nil {
			return err
		}
	case marketupdate.Trade:
		if err := pf.Validate(u.Price); err != nil {
			return err
		}
		if err := pf.ValidateDeviation(u.Price, mid, mark); err != nil {
			return err
		}
	case marketupdate.Candle:
		if err := pf.Validate(u.Close); err != nil {
			return err
		}
		if err := pf.ValidateDeviation(u.Close, mid, mark); err != nil {
			return err
		}
	case marketupdate.SmartCandle:
		if !u.CloseBid.LessThan(u.CloseAsk) {
			return xerrors.BidGreaterThanAsk(u.CloseBid, u.CloseAsk)
		}
		if err := pf.Validate(u.CloseBid); err != nil {
			return err
		}
		if err := pf.Validate(u.CloseAsk); err != nil {
			return err
		}
		if err := pf.ValidateDeviation(u.CloseBid, mid, mark); err != nil {
			return err
		}
		if err := pf.ValidateDeviation(u.CloseAsk, mid, mark); err != nil {
			return err
		}
	}
	return nil
}

// maybeSample notifies the tracker with a wallet-balance sample if the
// configured sampling window has elapsed since the last sample
// (spec.md §4.6: "if sampling window elapsed, samples balances").
func (e *Exchange) maybeSample(tsNs int64) {
	windowNs := e.cfg.SampleReturnsEveryNSeconds * int64(1e9)
	if windowNs <= 0 {
		return
	}
	if e.market.Step == 1 || tsNs-e.lastSampleTs >= windowNs {
		e.tracker.OnBalanceSample(tsNs, e.ledger.BalanceOf(ledger.UserWallet))
		e.lastSampleTs = tsNs
	}
}

// applyFills walks the matching.Fill list in order, mutating position,
// ledger, and the active order set for each, and emits one
// LimitOrderUpdate per fill (spec.md §4.5 steps 1-6).
func (e *Exchange) applyFills(fills []matching.Fill) []LimitOrderUpdate {
	updates := make([]LimitOrderUpdate, 0, len(fills))
	for _, f := range fills {
		resting, ok := e.active[f.OrderID]
		if !ok {
			// Already fully filled and removed earlier in this same
			// batch; matching.snapshot decrements a local copy so this
			// should not happen, but guard rather than panic on a
			// benign race against prior iterations.
			continue
		}

		e.pos = position.ChangePosition(e.pos, f.Qty, f.Price, resting.Side, e.ledger, e.cfg.ContractSpec.InitMarginReq)

		makerFee := f.Qty.Mul(f.Price).MulFrac(e.cfg.ContractSpec.FeeMaker)
		e.chargeFee(makerFee)

		updated, fullyFilled := resting.ApplyFill(f.Qty, f.Price)
		if fullyFilled {
			filled := updated.IntoFilled(e.market.CurrentTs)
			delete(e.active, f.OrderID)
			if filled.UserOrderID != "" {
				delete(e.byUser, filled.UserOrderID)
			}
			e.tracker.OnFullFill(filled)
			updates = append(updates, LimitOrderUpdate{Kind: FullyFilled, Filled: filled})
		} else {
			e.active[f.OrderID] = updated
			e.tracker.OnPartialFill(updated)
			updates = append(updates, LimitOrderUpdate{Kind: PartiallyFilled, Pending: updated})
		}

		e.rebalanceOrderMargin()
	}
	return updates
}
