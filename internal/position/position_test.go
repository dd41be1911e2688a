package position

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/ledger"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

func imr() decimal.Decimal { return decimal.NewFromFloat(1.0) }

func TestChangePosition_OpenFromNeutral(t *testing.T) {
	led := ledger.New(xdec.NewQuote(1000, 0))
	pos := ChangePosition(Neutral(), xdec.NewBase(2, 0), xdec.NewPrice(100, 0), types.Buy, led, imr())

	assert.Equal(t, types.Long, pos.Kind)
	assert.True(t, pos.Quantity.Equal(xdec.NewBase(2, 0)))
	assert.True(t, pos.EntryPrice.Equal(xdec.NewPrice(100, 0)))
	assert.True(t, led.BalanceOf(ledger.UserPositionMargin).Equal(xdec.NewQuote(200, 0)))
}

func TestChangePosition_IncreaseVolumeWeightsEntry(t *testing.T) {
	led := ledger.New(xdec.NewQuote(10000, 0))
	pos := ChangePosition(Neutral(), xdec.NewBase(1, 0), xdec.NewPrice(100, 0), types.Buy, led, imr())
	pos = ChangePosition(pos, xdec.NewBase(1, 0), xdec.NewPrice(200, 0), types.Buy, led, imr())

	require.Equal(t, types.Long, pos.Kind)
	assert.True(t, pos.Quantity.Equal(xdec.NewBase(2, 0)))
	assert.True(t, pos.EntryPrice.Equal(xdec.NewPrice(150, 0)), "expected volume-weighted entry 150, got %s", pos.EntryPrice)
}

func TestChangePosition_FullCloseReturnsNeutral(t *testing.T) {
	led := ledger.New(xdec.NewQuote(1000, 0))
	pos := ChangePosition(Neutral(), xdec.NewBase(1, 0), xdec.NewPrice(100, 0), types.Buy, led, imr())
	pos = ChangePosition(pos, xdec.NewBase(1, 0), xdec.NewPrice(110, 0), types.Sell, led, imr())

	assert.Equal(t, types.Neutral, pos.Kind)
	assert.True(t, led.BalanceOf(ledger.UserPositionMargin).IsZero())
	assert.True(t, led.BalanceOf(ledger.UserWallet).Equal(xdec.NewQuote(1010, 0)), "10 of profit should have settled to wallet")
}

func TestChangePosition_Turnaround(t *testing.T) {
	led := ledger.New(xdec.NewQuote(1000, 0))
	pos := ChangePosition(Neutral(), xdec.NewBase(1, 0), xdec.NewPrice(100, 0), types.Sell, led, imr())
	require.Equal(t, types.Short, pos.Kind)

	pos = ChangePosition(pos, xdec.NewBase(3, 0), xdec.NewPrice(90, 0), types.Buy, led, imr())

	assert.Equal(t, types.Long, pos.Kind)
	assert.True(t, pos.Quantity.Equal(xdec.NewBase(2, 0)), "2 remaining after closing the 1-lot short")
	assert.True(t, pos.EntryPrice.Equal(xdec.NewPrice(90, 0)))
}

func TestPositionMarginRequired_NeutralIsZero(t *testing.T) {
	assert.True(t, Neutral().PositionMarginRequired(imr()).IsZero())
}

func TestUnrealizedPnL_Long(t *testing.T) {
	pos := Position{Kind: types.Long, Quantity: xdec.NewBase(2, 0), EntryPrice: xdec.NewPrice(100, 0)}
	pnl := pos.UnrealizedPnL(xdec.NewPrice(110, 0), xdec.NewPrice(111, 0))
	assert.True(t, pnl.Equal(xdec.NewQuote(20, 0)))
}

func TestUnrealizedPnL_Short(t *testing.T) {
	pos := Position{Kind: types.Short, Quantity: xdec.NewBase(2, 0), EntryPrice: xdec.NewPrice(100, 0)}
	pnl := pos.UnrealizedPnL(xdec.NewPrice(89, 0), xdec.NewPrice(90, 0))
	assert.True(t, pnl.Equal(xdec.NewQuote(20, 0)))
}
