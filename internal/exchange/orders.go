package exchange

import (
	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/ledger"
	"github.com/abdulloh5007/lfest-go/internal/order"
	"github.com/abdulloh5007/lfest-go/internal/ordermargin"
	"github.com/abdulloh5007/lfest-go/internal/position"
	"github.com/abdulloh5007/lfest-go/internal/risk"
	"github.com/abdulloh5007/lfest-go/internal/types"
	"github.com/abdulloh5007/lfest-go/internal/xerrors"
)

// SubmitMarketOrder validates, risk-checks, and immediately fills a
// market order against the current best quote (spec.md §4.6).
func (e *Exchange) SubmitMarketOrder(n order.NewMarket) (order.FilledMarket, error) {
	if err := e.cfg.ContractSpec.QuantityFilter.Validate(n.Qty); err != nil {
		return order.FilledMarket{}, err
	}

	fillPrice := e.market.Ask
	if n.Side == types.Sell {
		fillPrice = e.market.Bid
	}

	if err := risk.CheckMarketOrder(e.pos, n.Qty, fillPrice, n.Side, e.ledger.AvailableBalance(), e.cfg.ContractSpec.InitMarginReq, e.cfg.ContractSpec.FeeTaker); err != nil {
		return order.FilledMarket{}, err
	}

	id := e.assignID()
	pending := n.Submit(id, e.market.CurrentTs)
	filled := pending.Fill(fillPrice, e.market.CurrentTs)

	e.pos = position.ChangePosition(e.pos, n.Qty, fillPrice, n.Side, e.ledger, e.cfg.ContractSpec.InitMarginReq)
	fee := n.Qty.Mul(fillPrice).MulFrac(e.cfg.ContractSpec.FeeTaker)
	e.chargeFee(fee)

	e.assertInvariants()
	e.tracker.OnMarketFill(filled)
	return filled, nil
}

// SubmitLimitOrder validates filters and post-only crossing, reserves the
// incremental order margin, and appends the order to the active set
// (spec.md §4.6).
func (e *Exchange) SubmitLimitOrder(n order.NewLimit) (order.PendingLimit, error) {
	if err := e.cfg.ContractSpec.PriceFilter.Validate(n.LimitPrice); err != nil {
		return order.PendingLimit{}, err
	}
	if err := e.cfg.ContractSpec.PriceFilter.ValidateDeviation(n.LimitPrice, e.market.Mid(), e.pos.Mark(e.market.Bid, e.market.Ask)); err != nil {
		return order.PendingLimit{}, err
	}
	if err := e.cfg.ContractSpec.QuantityFilter.Validate(n.OriginalQty); err != nil {
		return order.PendingLimit{}, err
	}
	if len(e.active) >= e.cfg.MaxNumOpenOrders {
		return order.PendingLimit{}, xerrors.ExceedsMaxOpenOrders(e.cfg.MaxNumOpenOrders)
	}
	if n.Side == types.Buy && n.LimitPrice.GreaterThanOrEqual(e.market.Ask) {
		return order.PendingLimit{}, xerrors.GoodTillCrossingRejected(n.LimitPrice, e.market.Ask)
	}
	if n.Side == types.Sell && n.LimitPrice.LessThanOrEqual(e.market.Bid) {
		return order.PendingLimit{}, xerrors.GoodTillCrossingRejected(n.LimitPrice, e.market.Bid)
	}
	if n.UserOrderID != "" {
		if _, exists := e.byUser[n.UserOrderID]; exists {
			return order.PendingLimit{}, xerrors.DuplicateUserOrderID(n.UserOrderID)
		}
	}

	candidate := ordermargin.RestingOrder{Side: n.Side, RemainingQty: n.OriginalQty, LimitPrice: n.LimitPrice}
	if err := risk.CheckLimitOrder(e.restingOrderMarginOrders(), candidate, e.pos, e.ledger.AvailableBalance(), e.cfg.ContractSpec.InitMarginReq, e.cfg.ContractSpec.FeeMaker); err != nil {
		return order.PendingLimit{}, err
	}

	id := e.assignID()
	pending := n.Submit(id, e.market.CurrentTs)
	e.active[id] = pending
	if n.UserOrderID != "" {
		e.byUser[n.UserOrderID] = id
	}

	e.rebalanceOrderMargin()
	return pending, nil
}

// CancelLimitOrder removes a resting order by exchange-assigned id,
// refunds the order-margin delta to wallet (monotonically
// non-increasing, spec.md invariant P7), and returns the removed order.
func (e *Exchange) CancelLimitOrder(id order.ID) (order.PendingLimit, error) {
	o, ok := e.active[id]
	if !ok {
		return order.PendingLimit{}, xerrors.OrderIDNotFound(uint64(id))
	}
	delete(e.active, id)
	if o.UserOrderID != "" {
		delete(e.byUser, o.UserOrderID)
	}
	e.rebalanceOrderMargin()
	return o, nil
}

// CancelOrderByUserID removes a resting order by its user-supplied id.
func (e *Exchange) CancelOrderByUserID(userID string) (order.PendingLimit, error) {
	id, ok := e.byUser[userID]
	if !ok {
		return order.PendingLimit{}, xerrors.UserOrderIDNotFound(userID)
	}
	return e.CancelLimitOrder(id)
}

func (e *Exchange) assignID() order.ID {
	e.nextID++
	return e.nextID
}

// chargeFee moves a taker/maker fee from wallet to the fee account, or
// wallet <- fee account for a negative fee_maker rebate (spec.md §9 open
// question: "A rebate requires the reverse direction").
func (e *Exchange) chargeFee(fee xdec.Quote) {
	e.ledger.TransferSigned(ledger.UserWallet, ledger.ExchangeFee, fee)
}
