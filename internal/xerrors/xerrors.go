// Package xerrors is the flat error taxonomy of the exchange core
// (spec.md §7). Every variant carries the minimal data needed to
// diagnose; all are recoverable — the caller may retry or continue.
// Internal consistency violations (ledger imbalance, invariant breaks)
// are programmer errors and panic instead, see Assert.
package xerrors

import (
	"fmt"

	"github.com/abdulloh5007/lfest-go/internal/decimal"
)

// Kind classifies an error for callers that want to branch without
// string-matching messages.
type Kind string

const (
	// ConfigError
	KindInvalidStartingBalance Kind = "invalid_starting_balance"
	KindInvalidInitMarginReq   Kind = "invalid_init_margin_req"
	KindInvalidTickSize        Kind = "invalid_tick_size"
	KindInvalidMinPrice        Kind = "invalid_min_price"
	KindInvalidMinQuantity     Kind = "invalid_min_quantity"
	KindInvalidMaxPrice        Kind = "invalid_max_price"

	// FilterError (price)
	KindPriceTooLow        Kind = "price_too_low"
	KindPriceTooHigh       Kind = "price_too_high"
	KindPriceTickMismatch  Kind = "price_tick_mismatch"
	KindPriceTooFarFromMid Kind = "price_too_far_from_mid"
	KindPriceTooFarFromMark Kind = "price_too_far_from_mark"

	// FilterError (quantity)
	KindQuantityTooLow       Kind = "quantity_too_low"
	KindQuantityTooHigh      Kind = "quantity_too_high"
	KindQuantityStepMismatch Kind = "invalid_quantity_step_size"

	// OrderError
	KindOrderQuantityLTEZero    Kind = "order_quantity_lte_zero"
	KindLimitPriceAboveAsk      Kind = "limit_price_above_ask"
	KindLimitPriceBelowBid      Kind = "limit_price_below_bid"
	KindGoodTillCrossingRejected Kind = "good_till_crossing_rejected"
	KindDuplicateUserOrderID    Kind = "duplicate_user_order_id"

	// RiskError
	KindNotEnoughAvailableBalance Kind = "not_enough_available_balance"
	KindMaintenanceMarginViolated Kind = "maintenance_margin_violated"
	KindExceedsMaxOpenOrders      Kind = "exceeds_max_open_orders"

	// LookupError
	KindOrderIDNotFound     Kind = "order_id_not_found"
	KindUserOrderIDNotFound Kind = "user_order_id_not_found"

	// MarketUpdateError
	KindNonMonotonicTimestamp Kind = "non_monotonic_timestamp"
	KindBidGreaterThanAsk     Kind = "bid_greater_than_ask"
)

// Error is the concrete type returned for every Kind above.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is lets errors.Is(err, xerrors.New(KindX, "")) match on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NonMonotonicTimestamp(prev, got int64) *Error {
	return New(KindNonMonotonicTimestamp, fmt.Sprintf("non-monotonic timestamp: got %d, previous %d", got, prev))
}

func BidGreaterThanAsk(bid, ask decimal.Price) *Error {
	return New(KindBidGreaterThanAsk, fmt.Sprintf("bid %s >= ask %s", bid, ask))
}

func GoodTillCrossingRejected(limitPrice, awayMarketPrice decimal.Price) *Error {
	return New(KindGoodTillCrossingRejected, fmt.Sprintf("limit price %s crosses away market price %s", limitPrice, awayMarketPrice))
}

func NotEnoughAvailableBalance(need, have decimal.Quote) *Error {
	return New(KindNotEnoughAvailableBalance, fmt.Sprintf("need %s available, have %s", need, have))
}

func OrderIDNotFound(id uint64) *Error {
	return New(KindOrderIDNotFound, fmt.Sprintf("order id %d not found", id))
}

func UserOrderIDNotFound(id string) *Error {
	return New(KindUserOrderIDNotFound, fmt.Sprintf("user order id %q not found", id))
}

func DuplicateUserOrderID(id string) *Error {
	return New(KindDuplicateUserOrderID, fmt.Sprintf("user order id %q already active", id))
}

func ExceedsMaxOpenOrders(max int) *Error {
	return New(KindExceedsMaxOpenOrders, fmt.Sprintf("exceeds max open orders (%d)", max))
}

func MaintenanceMarginViolated() *Error {
	return New(KindMaintenanceMarginViolated, "equity below maintenance margin requirement")
}

// Assert panics with msg if cond is false. Used for internal invariant
// checks (ledger balance, order-margin agreement) that are programmer
// errors rather than user-surfaceable results, per spec.md §7.
func Assert(cond bool, msg string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("lfest-go: invariant violated: "+msg, args...))
	}
}
