// Package config is the construction-time configuration of the exchange
// core (spec.md §6). The teacher's internal/config/config.go accumulates
// missing/invalid fields into a single combined error before returning;
// that pattern is kept here via Validate, but triggered from direct
// struct construction rather than os.Getenv — the core itself has no
// environment or CLI surface (spec.md §6: "No CLI / no environment
// variables in the core").
package config

import (
	"strings"

	"github.com/shopspring/decimal"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/orderfilter"
	"github.com/abdulloh5007/lfest-go/internal/xerrors"
)

// ContractSpec describes the instrument the exchange simulates (spec.md §6).
type ContractSpec struct {
	InitMarginReq   decimal.Decimal // basis-point fraction in (0, 1]; leverage = 1/imr
	PriceFilter     orderfilter.PriceFilter
	QuantityFilter  orderfilter.QuantityFilter
	FeeMaker        decimal.Decimal // may be negative (rebate)
	FeeTaker        decimal.Decimal
}

// Config is the full construction-time configuration of an exchange.
type Config struct {
	StartingWalletBalance    xdec.Quote
	MaxNumOpenOrders         int
	ContractSpec             ContractSpec
	SampleReturnsEveryNSeconds int64
}

// Validate accumulates every invalid field into one combined error,
// mirroring the teacher's `missing []string` accumulation pattern in
// internal/config/config.go, so a caller sees every problem at once
// instead of iterating error-fix-retry one field at a time.
func (c Config) Validate() error {
	var problems []string

	if !c.StartingWalletBalance.IsPositive() {
		problems = append(problems, "starting_wallet_balance must be > 0")
	}
	if c.MaxNumOpenOrders <= 0 {
		problems = append(problems, "max_num_open_orders must be > 0")
	}
	imr := c.ContractSpec.InitMarginReq
	if imr.IsZero() || imr.IsNegative() || imr.GreaterThan(decimal.NewFromInt(1)) {
		problems = append(problems, "contract_spec.init_margin_req must be in (0, 1]")
	}
	if c.ContractSpec.PriceFilter.TickSize.IsZero() {
		problems = append(problems, "contract_spec.price_filter.tick_size must be > 0")
	}
	if !c.ContractSpec.PriceFilter.MinPrice.IsZero() && !c.ContractSpec.PriceFilter.MaxPrice.IsZero() &&
		c.ContractSpec.PriceFilter.MinPrice.GreaterThan(c.ContractSpec.PriceFilter.MaxPrice) {
		problems = append(problems, "contract_spec.price_filter.min_price must be <= max_price")
	}
	if c.ContractSpec.QuantityFilter.StepSize.IsZero() {
		problems = append(problems, "contract_spec.quantity_filter.step_size must be > 0")
	} else if !c.ContractSpec.QuantityFilter.MinQty.IsZero() && !isMultiple(c.ContractSpec.QuantityFilter.MinQty, c.ContractSpec.QuantityFilter.StepSize) {
		problems = append(problems, "contract_spec.quantity_filter.min_qty must be a multiple of step_size")
	}
	if c.SampleReturnsEveryNSeconds <= 0 {
		problems = append(problems, "sample_returns_every_n_seconds must be > 0")
	}

	if len(problems) > 0 {
		return xerrors.New(xerrors.KindInvalidStartingBalance, "invalid config: "+strings.Join(problems, "; "))
	}
	return nil
}

func isMultiple(qty, step xdec.Base) bool {
	q, _ := decimal.NewFromString(qty.String())
	s, _ := decimal.NewFromString(step.String())
	if s.IsZero() {
		return false
	}
	divided := q.Div(s)
	return divided.Sub(divided.Round(0)).Abs().LessThan(decimal.New(1, -xdec.BasePrecision))
}
