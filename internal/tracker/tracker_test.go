package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/order"
)

func TestReturns_AccumulatesFillCounts(t *testing.T) {
	r := NewReturns()
	r.OnPartialFill(order.PendingLimit{})
	r.OnFullFill(order.FilledLimit{})
	r.OnFullFill(order.FilledLimit{})
	r.OnMarketFill(order.FilledMarket{})

	assert.Equal(t, 1, r.PartialFills)
	assert.Equal(t, 2, r.FullFills)
	assert.Equal(t, 1, r.MarketFills)
}

func TestReturns_RecordsBalanceSamples(t *testing.T) {
	r := NewReturns()
	r.OnBalanceSample(100, decimal.NewQuote(1000, 0))
	r.OnBalanceSample(200, decimal.NewQuote(1010, 0))

	assert.Len(t, r.Samples, 2)
	assert.Equal(t, int64(200), r.Samples[1].TsNs)
}

func TestNoOp_DiscardsEverything(t *testing.T) {
	var tr Tracker = NoOp{}
	assert.NotPanics(t, func() {
		tr.OnPartialFill(order.PendingLimit{})
		tr.OnFullFill(order.FilledLimit{})
		tr.OnMarketFill(order.FilledMarket{})
		tr.OnBalanceSample(0, decimal.ZeroQuote)
	})
}
