// Package orderfilter implements the price and quantity filters every
// market update and order submission is validated against (spec.md §4/§6).
package orderfilter

import (
	"github.com/shopspring/decimal"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/xerrors"
)

// PriceFilter bounds and ticks-quantizes any price accepted by the
// exchange: an order's limit price, a market update's bid/ask/trade price.
type PriceFilter struct {
	MinPrice             xdec.Price // zero means unset (no lower bound)
	MaxPrice             xdec.Price // zero means unset (no upper bound)
	TickSize             xdec.Price
	MaxPriceDeviation    decimal.Decimal // fraction of mid
	MaxPriceDiffToMark   decimal.Decimal // fraction of mark
}

// Validate checks price against min/max/tick; mid and mark deviation
// checks are deferred to ValidateDeviation since not every caller has a
// current mid/mark available (e.g. validating the very first Bba).
func (f PriceFilter) Validate(price xdec.Price) error {
	if !f.MinPrice.IsZero() && price.LessThan(f.MinPrice) {
		return xerrors.New(xerrors.KindPriceTooLow, "price below min_price")
	}
	if !f.MaxPrice.IsZero() && price.GreaterThan(f.MaxPrice) {
		return xerrors.New(xerrors.KindPriceTooHigh, "price above max_price")
	}
	if f.TickSize.IsZero() {
		return xerrors.New(xerrors.KindInvalidTickSize, "tick_size must be > 0")
	}
	rem := remainder(price, f.TickSize)
	if !rem.IsZero() {
		return xerrors.New(xerrors.KindPriceTickMismatch, "price is not a multiple of tick_size")
	}
	return nil
}

// ValidateDeviation checks price's distance from mid (max_price_deviation)
// and from mark (max_price_diff_to_mark); either bound of zero disables
// that particular check.
func (f PriceFilter) ValidateDeviation(price, mid, mark xdec.Price) error {
	if !f.MaxPriceDeviation.IsZero() && !mid.IsZero() {
		if exceedsFraction(price, mid, f.MaxPriceDeviation) {
			return xerrors.New(xerrors.KindPriceTooFarFromMid, "price too far from mid")
		}
	}
	if !f.MaxPriceDiffToMark.IsZero() && !mark.IsZero() {
		if exceedsFraction(price, mark, f.MaxPriceDiffToMark) {
			return xerrors.New(xerrors.KindPriceTooFarFromMark, "price too far from mark")
		}
	}
	return nil
}

func exceedsFraction(price, ref xdec.Price, frac decimal.Decimal) bool {
	diff := price.Sub(ref)
	if diff.IsZero() {
		return false
	}
	if diff.LessThan(xdec.ZeroPrice) {
		diff = xdec.ZeroPrice.Sub(diff)
	}
	refQuote, _ := xdec.QuoteFromString(ref.String())
	maxDev := refQuote.MulFrac(frac)
	diffQuote, _ := xdec.QuoteFromString(diff.String())
	return diffQuote.GreaterThan(maxDev)
}

func remainder(price, tick xdec.Price) xdec.Price {
	p, _ := decimal.NewFromString(price.String())
	t, _ := decimal.NewFromString(tick.String())
	if t.IsZero() {
		return price
	}
	divided := p.Div(t)
	rounded := divided.Round(0)
	diff := divided.Sub(rounded)
	r, _ := xdec.PriceFromString(diff.Mul(t).Abs().String())
	return r
}

// QuantityFilter bounds and steps-quantizes any base quantity accepted by
// the exchange (order original_qty).
type QuantityFilter struct {
	MinQty   xdec.Base // zero means unset
	MaxQty   xdec.Base // zero means unset
	StepSize xdec.Base
}

func (f QuantityFilter) Validate(qty xdec.Base) error {
	if !qty.IsPositive() {
		return xerrors.New(xerrors.KindOrderQuantityLTEZero, "quantity must be > 0")
	}
	if !f.MinQty.IsZero() && qty.LessThan(f.MinQty) {
		return xerrors.New(xerrors.KindQuantityTooLow, "quantity below min_qty")
	}
	if !f.MaxQty.IsZero() && qty.GreaterThan(f.MaxQty) {
		return xerrors.New(xerrors.KindQuantityTooHigh, "quantity above max_qty")
	}
	if f.StepSize.IsZero() {
		return xerrors.New(xerrors.KindQuantityStepMismatch, "step_size must be > 0")
	}
	q, _ := decimal.NewFromString(qty.String())
	s, _ := decimal.NewFromString(f.StepSize.String())
	divided := q.Div(s)
	rounded := divided.Round(0)
	if !divided.Sub(rounded).Abs().LessThan(decimal.New(1, -xdec.BasePrecision)) {
		return xerrors.New(xerrors.KindQuantityStepMismatch, "quantity is not a multiple of step_size")
	}
	return nil
}
