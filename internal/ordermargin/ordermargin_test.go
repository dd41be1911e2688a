package ordermargin

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/position"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

func imr() decimal.Decimal { return decimal.NewFromFloat(1.0) }

func TestRequired_NoOrdersIsZero(t *testing.T) {
	assert.True(t, Required(nil, position.Neutral(), imr(), decimal.Zero).IsZero())
}

func TestRequired_SingleBuyOrder(t *testing.T) {
	orders := []RestingOrder{{Side: types.Buy, RemainingQty: xdec.NewBase(2, 0), LimitPrice: xdec.NewPrice(100, 0)}}
	got := Required(orders, position.Neutral(), imr(), decimal.Zero)
	assert.True(t, got.Equal(xdec.NewQuote(200, 0)))
}

func TestRequired_TwoSidedTakesMax(t *testing.T) {
	orders := []RestingOrder{
		{Side: types.Buy, RemainingQty: xdec.NewBase(1, 0), LimitPrice: xdec.NewPrice(100, 0)},
		{Side: types.Sell, RemainingQty: xdec.NewBase(3, 0), LimitPrice: xdec.NewPrice(110, 0)},
	}
	got := Required(orders, position.Neutral(), imr(), decimal.Zero)
	assert.True(t, got.Equal(xdec.NewQuote(330, 0)), "max(100, 330) * 1.0 = 330, got %s", got)
}

func TestRequired_SellOffsetByLongPositionNeedsNoExtraMargin(t *testing.T) {
	pos := position.Position{Kind: types.Long, Quantity: xdec.NewBase(2, 0), EntryPrice: xdec.NewPrice(100, 0)}
	orders := []RestingOrder{{Side: types.Sell, RemainingQty: xdec.NewBase(2, 0), LimitPrice: xdec.NewPrice(110, 0)}}
	got := Required(orders, pos, imr(), decimal.Zero)
	assert.True(t, got.IsZero(), "a sell that only closes the existing long needs no extra margin, got %s", got)
}

func TestRequired_MakerFeeReservedOnTopOfNotional(t *testing.T) {
	feeRate, _ := decimal.NewFromString("0.01")
	orders := []RestingOrder{{Side: types.Buy, RemainingQty: xdec.NewBase(1, 0), LimitPrice: xdec.NewPrice(100, 0)}}
	got := Required(orders, position.Neutral(), imr(), feeRate)
	assert.True(t, got.Equal(xdec.NewQuote(101, 0)), "100 notional + 1 fee reserve, got %s", got)
}

func TestRequired_NegativeFeeIsNotReservedUpfront(t *testing.T) {
	feeRate, _ := decimal.NewFromString("-0.01")
	orders := []RestingOrder{{Side: types.Buy, RemainingQty: xdec.NewBase(1, 0), LimitPrice: xdec.NewPrice(100, 0)}}
	got := Required(orders, position.Neutral(), imr(), feeRate)
	assert.True(t, got.Equal(xdec.NewQuote(100, 0)), "a rebate must not reduce or inflate the reserved margin, got %s", got)
}

func TestRequired_FeeIsNotScaledDownByLeverage(t *testing.T) {
	lowImr, _ := decimal.NewFromString("0.1")
	feeRate, _ := decimal.NewFromString("0.01")
	orders := []RestingOrder{{Side: types.Buy, RemainingQty: xdec.NewBase(1, 0), LimitPrice: xdec.NewPrice(100, 0)}}
	got := Required(orders, position.Neutral(), lowImr, feeRate)
	assert.True(t, got.Equal(xdec.NewQuote(11, 0)), "10 leveraged notional (100*0.1) + the full 1 fee reserve, not 0.1 of it, got %s", got)
}
