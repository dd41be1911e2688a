// Package decimal wraps shopspring/decimal with the two currency-tagged
// fixed-point types the exchange core uses everywhere money or size is
// represented: Base (contract size) and Quote (margin currency notional).
// Keeping them as distinct Go types lets the compiler catch a quantity
// accidentally used where a price or notional was expected.
package decimal

import (
	"fmt"

	shopspring "github.com/shopspring/decimal"
)

// BasePrecision and QuotePrecision bound the number of fractional digits
// each currency tag rounds to on conversion. Two decimal precisions may
// coexist per contract spec.md §3 ("base quantity precision, quote price
// precision").
const (
	BasePrecision  = 8
	QuotePrecision = 8
)

// Base is a fixed-point amount denominated in the contract's base
// currency (e.g. BTC in BTC/USD).
type Base struct{ d shopspring.Decimal }

// Quote is a fixed-point amount denominated in the contract's quote /
// margin currency (e.g. USD in BTC/USD).
type Quote struct{ d shopspring.Decimal }

// Price is a Quote-per-Base exchange rate; kept distinct from Quote so a
// notional amount can never silently be passed where a price was meant.
type Price struct{ d shopspring.Decimal }

func NewBase(v int64, exp int32) Base   { return Base{shopspring.New(v, exp)} }
func NewQuote(v int64, exp int32) Quote { return Quote{shopspring.New(v, exp)} }
func NewPrice(v int64, exp int32) Price { return Price{shopspring.New(v, exp)} }

func BaseFromString(s string) (Base, error) {
	d, err := shopspring.NewFromString(s)
	if err != nil {
		return Base{}, fmt.Errorf("decimal: parse base %q: %w", s, err)
	}
	return Base{d.Round(BasePrecision)}, nil
}

func QuoteFromString(s string) (Quote, error) {
	d, err := shopspring.NewFromString(s)
	if err != nil {
		return Quote{}, fmt.Errorf("decimal: parse quote %q: %w", s, err)
	}
	return Quote{d.Round(QuotePrecision)}, nil
}

func PriceFromString(s string) (Price, error) {
	d, err := shopspring.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("decimal: parse price %q: %w", s, err)
	}
	return Price{d.Round(QuotePrecision)}, nil
}

var (
	ZeroBase  = Base{shopspring.Zero}
	ZeroQuote = Quote{shopspring.Zero}
	ZeroPrice = Price{shopspring.Zero}
)

// --- Base ---

func (b Base) Add(o Base) Base { return Base{b.d.Add(o.d)} }
func (b Base) Sub(o Base) Base { return Base{b.d.Sub(o.d)} }
func (b Base) Neg() Base       { return Base{b.d.Neg()} }
func (b Base) Cmp(o Base) int  { return b.d.Cmp(o.d) }
func (b Base) IsZero() bool    { return b.d.IsZero() }
func (b Base) IsPositive() bool { return b.d.IsPositive() }
func (b Base) IsNegative() bool { return b.d.IsNegative() }
func (b Base) GreaterThan(o Base) bool        { return b.d.GreaterThan(o.d) }
func (b Base) GreaterThanOrEqual(o Base) bool { return b.d.GreaterThanOrEqual(o.d) }
func (b Base) LessThan(o Base) bool           { return b.d.LessThan(o.d) }
func (b Base) LessThanOrEqual(o Base) bool    { return b.d.LessThanOrEqual(o.d) }
func (b Base) Equal(o Base) bool              { return b.d.Equal(o.d) }
func (b Base) String() string                 { return b.d.StringFixed(BasePrecision) }
func (b Base) InexactFloat64() float64        { return b.d.InexactFloat64() }

// Min returns the smaller of b and o, used by the matching engine to
// compute fill quantity = min(trade.qty, order.remaining_qty).
func (b Base) Min(o Base) Base {
	if b.d.LessThanOrEqual(o.d) {
		return b
	}
	return o
}

// Mul converts a Base quantity to Quote notional via a Price: qty*price.
func (b Base) Mul(p Price) Quote { return Quote{b.d.Mul(p.d).Round(QuotePrecision)} }

// MulFrac scales a Base amount by a dimensionless fraction (e.g. a margin
// requirement or fee rate expressed as a decimal fraction).
func (b Base) MulFrac(frac shopspring.Decimal) Base {
	return Base{b.d.Mul(frac).Round(BasePrecision)}
}

// --- Quote ---

func (q Quote) Add(o Quote) Quote { return Quote{q.d.Add(o.d)} }
func (q Quote) Sub(o Quote) Quote { return Quote{q.d.Sub(o.d)} }
func (q Quote) Neg() Quote        { return Quote{q.d.Neg()} }
func (q Quote) Cmp(o Quote) int   { return q.d.Cmp(o.d) }
func (q Quote) IsZero() bool      { return q.d.IsZero() }
func (q Quote) IsPositive() bool  { return q.d.IsPositive() }
func (q Quote) IsNegative() bool  { return q.d.IsNegative() }
func (q Quote) GreaterThan(o Quote) bool        { return q.d.GreaterThan(o.d) }
func (q Quote) GreaterThanOrEqual(o Quote) bool { return q.d.GreaterThanOrEqual(o.d) }
func (q Quote) LessThan(o Quote) bool           { return q.d.LessThan(o.d) }
func (q Quote) LessThanOrEqual(o Quote) bool    { return q.d.LessThanOrEqual(o.d) }
func (q Quote) Equal(o Quote) bool              { return q.d.Equal(o.d) }
func (q Quote) String() string                  { return q.d.StringFixed(QuotePrecision) }
func (q Quote) Abs() Quote                      { return Quote{q.d.Abs()} }
func (q Quote) InexactFloat64() float64         { return q.d.InexactFloat64() }

func (q Quote) Max(o Quote) Quote {
	if q.d.GreaterThanOrEqual(o.d) {
		return q
	}
	return o
}

// Div converts a Quote notional back to a Base quantity via a Price,
// truncating toward zero (spec.md §3: "division truncates").
func (q Quote) Div(p Price) Base {
	if p.d.IsZero() {
		return ZeroBase
	}
	quo, _ := q.d.QuoRem(p.d, BasePrecision)
	return Base{quo}
}

// MulFrac scales a Quote amount by a dimensionless fraction (margin
// requirement, fee rate).
func (q Quote) MulFrac(frac shopspring.Decimal) Quote {
	return Quote{q.d.Mul(frac).Round(QuotePrecision)}
}

// DivByBase divides a Quote notional by a Base quantity to yield the
// Price (quote-per-base rate) that produced it — used to volume-weight a
// new average entry price out of notional sums (spec.md §4.2's
// `(q·e + q'·p)/(q+q')`).
func (q Quote) DivByBase(b Base) Price {
	if b.d.IsZero() {
		return ZeroPrice
	}
	return Price{q.d.DivRound(b.d, QuotePrecision).Truncate(QuotePrecision)}
}

// --- Price ---

func (p Price) Cmp(o Price) int { return p.d.Cmp(o.d) }
func (p Price) LessThan(o Price) bool           { return p.d.LessThan(o.d) }
func (p Price) LessThanOrEqual(o Price) bool    { return p.d.LessThanOrEqual(o.d) }
func (p Price) GreaterThan(o Price) bool        { return p.d.GreaterThan(o.d) }
func (p Price) GreaterThanOrEqual(o Price) bool { return p.d.GreaterThanOrEqual(o.d) }
func (p Price) Equal(o Price) bool              { return p.d.Equal(o.d) }
func (p Price) IsPositive() bool                { return p.d.IsPositive() }
func (p Price) IsZero() bool                    { return p.d.IsZero() }
func (p Price) String() string                  { return p.d.StringFixed(QuotePrecision) }
func (p Price) Sub(o Price) Price               { return Price{p.d.Sub(o.d)} }
func (p Price) Add(o Price) Price               { return Price{p.d.Add(o.d)} }
func (p Price) InexactFloat64() float64         { return p.d.InexactFloat64() }

// Mid returns the midpoint of two prices, truncated to quote precision.
func Mid(bid, ask Price) Price {
	two := shopspring.NewFromInt(2)
	return Price{bid.d.Add(ask.d).Div(two).Truncate(QuotePrecision)}
}

// FractionFromString parses a dimensionless fraction (margin requirement,
// fee rate) for use with Base.MulFrac / Quote.MulFrac.
func FractionFromString(s string) (shopspring.Decimal, error) {
	return shopspring.NewFromString(s)
}
