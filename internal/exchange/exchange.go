// Package exchange is the public contract of the simulator: it owns
// market state, ledger, position, active orders, and tracker, and
// orchestrates update_state / submit / cancel per spec.md §4.6. Adapted
// from the teacher's internal/orders/service.go, which played the same
// orchestrating role (PlaceOrder/risk checks/ledger calls) over a
// Postgres-backed book; here the book is an in-memory map and every
// operation is synchronous and atomic from the caller's perspective
// (spec.md §5) rather than wrapped in a pgx transaction.
package exchange

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/abdulloh5007/lfest-go/internal/config"
	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/ledger"
	"github.com/abdulloh5007/lfest-go/internal/marketupdate"
	"github.com/abdulloh5007/lfest-go/internal/matching"
	"github.com/abdulloh5007/lfest-go/internal/order"
	"github.com/abdulloh5007/lfest-go/internal/ordermargin"
	"github.com/abdulloh5007/lfest-go/internal/orderfilter"
	"github.com/abdulloh5007/lfest-go/internal/position"
	"github.com/abdulloh5007/lfest-go/internal/risk"
	"github.com/abdulloh5007/lfest-go/internal/tracker"
	"github.com/abdulloh5007/lfest-go/internal/types"
	"github.com/abdulloh5007/lfest-go/internal/xerrors"
)

// LimitOrderUpdateKind tags the two possible order-update outputs of
// spec.md §6.
type LimitOrderUpdateKind string

const (
	PartiallyFilled LimitOrderUpdateKind = "partially_filled"
	FullyFilled     LimitOrderUpdateKind = "fully_filled"
)

// LimitOrderUpdate is emitted once per fill in a market-update's matching
// pass; an order filled at several levels of one SmartCandle gets one
// update per fill.
type LimitOrderUpdate struct {
	Kind    LimitOrderUpdateKind
	Pending order.PendingLimit // valid when Kind == PartiallyFilled
	Filled  order.FilledLimit  // valid when Kind == FullyFilled
}

// Exchange is the single-account simulated trading state. It is not
// safe for concurrent use without external synchronization (spec.md §5).
type Exchange struct {
	cfg     config.Config
	ledger  *ledger.Ledger
	pos     position.Position
	market  marketupdate.State
	active  map[order.ID]order.PendingLimit
	byUser  map[string]order.ID
	nextID  order.ID
	tracker tracker.Tracker
	log     zerolog.Logger

	lastSampleTs int64
	started      bool
}

// New constructs an Exchange from a validated Config. t may be nil, in
// which case tracker.NoOp{} is used (spec.md §1: tracker is an optional
// external collaborator).
func New(cfg config.Config, t tracker.Tracker, log zerolog.Logger) (*Exchange, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		t = tracker.NoOp{}
	}
	return &Exchange{
		cfg:     cfg,
		ledger:  ledger.New(cfg.StartingWalletBalance),
		pos:     position.Neutral(),
		active:  make(map[order.ID]order.PendingLimit),
		byUser:  make(map[string]order.ID),
		tracker: t,
		log:     log,
	}, nil
}

// --- read accessors (spec.md §4.6) ---

func (e *Exchange) Position() position.Position { return e.pos }
func (e *Exchange) MarketState() marketupdate.State { return e.market }
func (e *Exchange) Config() config.Config { return e.cfg }

// UserBalances returns the current ledger balances of the user-owned
// accounts (wallet, position margin, order margin) plus derived available.
type UserBalances struct {
	Wallet         xdec.Quote
	PositionMargin xdec.Quote
	OrderMargin    xdec.Quote
	Available      xdec.Quote
}

func (e *Exchange) UserBalances() UserBalances {
	return UserBalances{
		Wallet:         e.ledger.BalanceOf(ledger.UserWallet),
		PositionMargin: e.ledger.BalanceOf(ledger.UserPositionMargin),
		OrderMargin:    e.ledger.BalanceOf(ledger.UserOrderMargin),
		Available:      e.ledger.AvailableBalance(),
	}
}

// ActiveLimitOrders returns resting orders keyed by exchange-assigned id,
// per spec.md §3 ("insertion order irrelevant").
func (e *Exchange) ActiveLimitOrders() map[order.ID]order.PendingLimit {
	out := make(map[order.ID]order.PendingLimit, len(e.active))
	for id, o := range e.active {
		out[id] = o
	}
	return out
}

// RestingOrders implements matching.Book.
func (e *Exchange) RestingOrders() []matching.RestingOrder {
	out := make([]matching.RestingOrder, 0, len(e.active))
	for id, o := range e.active {
		out = append(out, matching.RestingOrder{
			ID:           id,
			Side:         o.Side,
			LimitPrice:   o.LimitPrice,
			RemainingQty: o.RemainingQty(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (e *Exchange) restingOrderMarginOrders() []ordermargin.RestingOrder {
	out := make([]ordermargin.RestingOrder, 0, len(e.active))
	for _, o := range e.active {
		out = append(out, ordermargin.RestingOrder{
			Side:         o.Side,
			RemainingQty: o.RemainingQty(),
			LimitPrice:   o.LimitPrice,
		})
	}
	return out
}

// rebalanceOrderMargin recomputes required order margin and transfers the
// delta between wallet and order-margin in whichever direction the sign
// indicates (spec.md §4.3: "Never transfer negative; choose direction by
// comparison"), then runs assertInvariants.
func (e *Exchange) rebalanceOrderMargin() {
	required := ordermargin.Required(e.restingOrderMarginOrders(), e.pos, e.cfg.ContractSpec.InitMarginReq, e.cfg.ContractSpec.FeeMaker)
	current := e.ledger.BalanceOf(ledger.UserOrderMargin)
	delta := required.Sub(current)
	e.ledger.TransferSigned(ledger.UserWallet, ledger.UserOrderMargin, delta)
	e.assertInvariants()
}

// assertInvariants panics if the ledger sum has drifted (P1), available
// balance is negative (P2), position margin differs from q*entry*imr or is
// non-zero when neutral (P4), or order margin is non-zero with an empty
// book (P5). It does not recompute the required order margin, so order
// margin agreement (P3) is not asserted. These are programmer errors,
// never surfaced to callers (spec.md §7).
func (e *Exchange) assertInvariants() {
	e.ledger.AssertBalanced(e.cfg.StartingWalletBalance)
	xerrors.Assert(!e.ledger.AvailableBalance().IsNegative(), "available balance went negative: %s", e.ledger.AvailableBalance())
	if len(e.active) == 0 {
		xerrors.Assert(e.ledger.BalanceOf(ledger.UserOrderMargin).IsZero(), "order margin must be zero with an empty book, got %s", e.ledger.BalanceOf(ledger.UserOrderMargin))
	}
	if e.pos.Kind != types.Neutral {
		expected := e.pos.PositionMarginRequired(e.cfg.ContractSpec.InitMarginReq)
		xerrors.Assert(e.ledger.BalanceOf(ledger.UserPositionMargin).Equal(expected), "position margin %s != expected %s", e.ledger.BalanceOf(ledger.UserPositionMargin), expected)
	} else {
		xerrors.Assert(e.ledger.BalanceOf(ledger.UserPositionMargin).IsZero(), "position margin must be zero when neutral, got %s", e.ledger.BalanceOf(ledger.UserPositionMargin))
	}
}
