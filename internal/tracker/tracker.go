// Package tracker defines the passive observer sink the exchange core
// feeds lifecycle events and periodic balance samples to. The tracker
// never refers back to the exchange (spec.md design note "No cyclic
// ownership"); it is out of the core's trading-invariant scope per
// spec.md §1 ("Performance tracker: passive observer sink ... not part
// of the core trading invariant"), grounded on
// original_source/src/account_tracker/{full_track,no_track}.rs.
package tracker

import (
	"github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/order"
)

// Tracker receives fills and periodic wallet-balance samples. It cannot
// reject or mutate anything the exchange does; it is purely observational.
type Tracker interface {
	OnPartialFill(o order.PendingLimit)
	OnFullFill(o order.FilledLimit)
	OnMarketFill(o order.FilledMarket)
	OnBalanceSample(tsNs int64, walletBalance decimal.Quote)
}

// NoOp discards everything, mirroring original_source's no_track.rs —
// used when the caller only wants the exchange's trading behavior without
// paying to record history.
type NoOp struct{}

func (NoOp) OnPartialFill(order.PendingLimit)               {}
func (NoOp) OnFullFill(order.FilledLimit)                   {}
func (NoOp) OnMarketFill(order.FilledMarket)                {}
func (NoOp) OnBalanceSample(int64, decimal.Quote)           {}

// Sample is one recorded wallet-balance observation.
type Sample struct {
	TsNs          int64
	WalletBalance decimal.Quote
}

// Returns accumulates wallet-balance samples and fill counts for later
// offline analysis (Sharpe/Sortino/VaR are explicitly out of the core's
// scope per spec.md §1; this type only records, mirroring
// full_track.rs's balance history ring buffer without its statistics).
type Returns struct {
	Samples      []Sample
	PartialFills int
	FullFills    int
	MarketFills  int
}

func NewReturns() *Returns { return &Returns{} }

func (r *Returns) OnPartialFill(order.PendingLimit) { r.PartialFills++ }
func (r *Returns) OnFullFill(order.FilledLimit)     { r.FullFills++ }
func (r *Returns) OnMarketFill(order.FilledMarket)  { r.MarketFills++ }

func (r *Returns) OnBalanceSample(tsNs int64, walletBalance decimal.Quote) {
	r.Samples = append(r.Samples, Sample{TsNs: tsNs, WalletBalance: walletBalance})
}
