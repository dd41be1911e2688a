// Package marketupdate defines MarketState and the MarketUpdate variant
// set the exchange core consumes (spec.md §3, §6).
package marketupdate

import (
	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

// State is the current best bid/ask, timestamp, and step counter
// (spec.md §3).
type State struct {
	Bid       xdec.Price
	Ask       xdec.Price
	CurrentTs int64
	Step      uint64
}

// Mid returns the midpoint of bid and ask.
func (s State) Mid() xdec.Price { return xdec.Mid(s.Bid, s.Ask) }

// Update is the capability set implemented by each market-update variant
// (Bba, Trade, Candle, SmartCandle); the matching engine dispatches on
// concrete type via a type switch, not this interface's methods, but the
// interface documents the shared contract: every update carries a
// timestamp and can refresh State.
type Update interface {
	// Timestamp returns the nanosecond timestamp of this update.
	Timestamp() int64
	// ApplyTo returns the State that results from observing this update;
	// it does not itself run matching.
	ApplyTo(prev State) State
}

// Bba is a best-bid/best-ask snapshot. It never fills resting orders:
// resting orders assume worst queue position (spec.md §4.5).
type Bba struct {
	Bid xdec.Price
	Ask xdec.Price
	Ts  int64
}

func (b Bba) Timestamp() int64 { return b.Ts }

func (b Bba) ApplyTo(prev State) State {
	return State{Bid: b.Bid, Ask: b.Ask, CurrentTs: b.Ts, Step: prev.Step + 1}
}

// Trade is a single taker trade print; it may fill resting orders that it
// passes through (spec.md §4.5).
type Trade struct {
	Price xdec.Price
	Qty   xdec.Base
	Side  types.Side
	Ts    int64
}

func (t Trade) Timestamp() int64 { return t.Ts }

func (t Trade) ApplyTo(prev State) State {
	return State{Bid: prev.Bid, Ask: prev.Ask, CurrentTs: t.Ts, Step: prev.Step + 1}
}

// Candle is an OHLCV aggregate of taker flow over a bar. Filling replays
// its total volume once at the close price on each side using the Trade
// rule; open, high and low are not used for matching.
type Candle struct {
	Open, High, Low, Close xdec.Price
	Volume                 xdec.Base
	Ts                     int64
}

func (c Candle) Timestamp() int64 { return c.Ts }

func (c Candle) ApplyTo(prev State) State {
	return State{Bid: c.Close, Ask: c.Close, CurrentTs: c.Ts, Step: prev.Step + 1}
}

// PriceLevel is one aggregated taker-volume bucket within a SmartCandle:
// the buy volume and sell volume that traded at Price during the bar.
type PriceLevel struct {
	Price     xdec.Price
	BuyVolume xdec.Base
	SellVolume xdec.Base
}

// SmartCandle aggregates taker flow per price level instead of collapsing
// it to OHLCV, plus a closing best bid/ask — supplemented from
// original_source/src/market_update/smart_candle.rs per SPEC_FULL.md §11.
type SmartCandle struct {
	Levels    []PriceLevel
	CloseBid  xdec.Price
	CloseAsk  xdec.Price
	Ts        int64
}

func (s SmartCandle) Timestamp() int64 { return s.Ts }

func (s SmartCandle) ApplyTo(prev State) State {
	return State{Bid: s.CloseBid, Ask: s.CloseAsk, CurrentTs: s.Ts, Step: prev.Step + 1}
}
