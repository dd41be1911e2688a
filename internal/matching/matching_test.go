package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/marketupdate"
	"github.com/abdulloh5007/lfest-go/internal/order"
	"github.com/abdulloh5007/lfest-go/internal/types"
)

type fakeBook struct{ orders []RestingOrder }

func (f fakeBook) RestingOrders() []RestingOrder { return f.orders }

func TestMatch_Bba_NeverFills(t *testing.T) {
	book := fakeBook{orders: []RestingOrder{
		{ID: 1, Side: types.Buy, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
	}}
	fills := Match(marketupdate.Bba{Bid: xdec.NewPrice(99, 0), Ask: xdec.NewPrice(101, 0)}, book)
	assert.Nil(t, fills)
}

func TestMatch_Trade_FillsRestingBuyBelowLimit(t *testing.T) {
	book := fakeBook{orders: []RestingOrder{
		{ID: 1, Side: types.Buy, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
	}}
	fills := Match(marketupdate.Trade{Side: types.Sell, Price: xdec.NewPrice(99, 0), Qty: xdec.NewBase(1, 0)}, book)

	require.Len(t, fills, 1)
	assert.Equal(t, order.ID(1), fills[0].OrderID)
	assert.True(t, fills[0].Qty.Equal(xdec.NewBase(1, 0)))
	assert.True(t, fills[0].Price.Equal(xdec.NewPrice(100, 0)), "fill executes at the resting order's limit price")
}

func TestMatch_Trade_DoesNotFillAtOrAboveLimit(t *testing.T) {
	book := fakeBook{orders: []RestingOrder{
		{ID: 1, Side: types.Buy, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
	}}
	fills := Match(marketupdate.Trade{Side: types.Sell, Price: xdec.NewPrice(100, 0), Qty: xdec.NewBase(1, 0)}, book)
	assert.Empty(t, fills, "a sell print exactly at the resting buy's limit must not cross it")
}

func TestMatch_Trade_RestingSellFilledByBuyAboveLimit(t *testing.T) {
	book := fakeBook{orders: []RestingOrder{
		{ID: 2, Side: types.Sell, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
	}}
	fills := Match(marketupdate.Trade{Side: types.Buy, Price: xdec.NewPrice(101, 0), Qty: xdec.NewBase(1, 0)}, book)

	require.Len(t, fills, 1)
	assert.True(t, fills[0].Price.Equal(xdec.NewPrice(100, 0)))
}

func TestMatch_Trade_DeterministicAscendingOrderID(t *testing.T) {
	book := fakeBook{orders: []RestingOrder{
		{ID: 5, Side: types.Buy, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
		{ID: 2, Side: types.Buy, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
	}}
	fills := Match(marketupdate.Trade{Side: types.Sell, Price: xdec.NewPrice(99, 0), Qty: xdec.NewBase(15, -1)}, book)

	require.Len(t, fills, 2)
	assert.Equal(t, order.ID(2), fills[0].OrderID, "order 2 fills before order 5 regardless of slice input order")
	assert.Equal(t, order.ID(5), fills[1].OrderID)
}

func TestMatch_SmartCandle_LevelsConsumeSharedRemainingQty(t *testing.T) {
	book := fakeBook{orders: []RestingOrder{
		{ID: 1, Side: types.Buy, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(15, -1)},
	}}
	update := marketupdate.SmartCandle{
		Levels: []marketupdate.PriceLevel{
			{Price: xdec.NewPrice(99, 0), SellVolume: xdec.NewBase(1, 0)},
			{Price: xdec.NewPrice(98, 0), SellVolume: xdec.NewBase(1, 0)},
		},
	}
	fills := Match(update, book)

	require.Len(t, fills, 2, "second level must only see the 0.5 remaining after the first level consumed 1.0")
	assert.True(t, fills[0].Qty.Equal(xdec.NewBase(1, 0)))
	assert.True(t, fills[1].Qty.Equal(xdec.NewBase(5, -1)))
}

func TestMatch_Candle_ReplaysVolumeBothSides(t *testing.T) {
	book := fakeBook{orders: []RestingOrder{
		{ID: 1, Side: types.Buy, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
		{ID: 2, Side: types.Sell, LimitPrice: xdec.NewPrice(100, 0), RemainingQty: xdec.NewBase(1, 0)},
	}}
	update := marketupdate.Candle{Close: xdec.NewPrice(105, 0), Volume: xdec.NewBase(1, 0)}
	fills := Match(update, book)

	assert.Len(t, fills, 1, "only the resting sell crosses a close print at 105; the resting buy at 100 is not reached")
}
