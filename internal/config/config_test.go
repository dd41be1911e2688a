package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/orderfilter"
)

func validConfig() Config {
	return Config{
		StartingWalletBalance: xdec.NewQuote(1000, 0),
		MaxNumOpenOrders:      10,
		ContractSpec: ContractSpec{
			InitMarginReq: decimal.NewFromFloat(1.0),
			PriceFilter: orderfilter.PriceFilter{
				TickSize: xdec.NewPrice(1, -1),
				MinPrice: xdec.NewPrice(1, 0),
				MaxPrice: xdec.NewPrice(10000, 0),
			},
			QuantityFilter: orderfilter.QuantityFilter{
				StepSize: xdec.NewBase(1, -2),
				MinQty:   xdec.NewBase(1, -2),
			},
			FeeMaker: decimal.Zero,
			FeeTaker: decimal.Zero,
		},
		SampleReturnsEveryNSeconds: 60,
	}
}

func TestValidate_AcceptsWellFormedConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsNonPositiveStartingBalance(t *testing.T) {
	c := validConfig()
	c.StartingWalletBalance = xdec.ZeroQuote
	assert.Error(t, c.Validate())
}

func TestValidate_RejectsInitMarginReqOutOfRange(t *testing.T) {
	c := validConfig()
	c.ContractSpec.InitMarginReq = decimal.NewFromFloat(1.5)
	assert.Error(t, c.Validate())
}

func TestValidate_RejectsZeroTickSize(t *testing.T) {
	c := validConfig()
	c.ContractSpec.PriceFilter.TickSize = xdec.ZeroPrice
	assert.Error(t, c.Validate())
}

func TestValidate_RejectsMinQtyNotMultipleOfStep(t *testing.T) {
	c := validConfig()
	c.ContractSpec.QuantityFilter.MinQty = xdec.NewBase(15, -3)
	assert.Error(t, c.Validate())
}

func TestValidate_AccumulatesMultipleProblems(t *testing.T) {
	c := validConfig()
	c.StartingWalletBalance = xdec.ZeroQuote
	c.MaxNumOpenOrders = 0
	err := c.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "starting_wallet_balance")
	assert.Contains(t, err.Error(), "max_num_open_orders")
}
