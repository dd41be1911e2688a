// Command simulate is an illustrative example harness, not part of the
// core contract (spec.md §6: "No CLI / no environment variables in the
// core"). It feeds one hardcoded best bid/ask update to the exchange
// core, submits a market buy, and logs the fill and the resulting
// balances, the way
// original_source/examples/basic.rs demonstrates library usage.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/abdulloh5007/lfest-go/internal/config"
	xdec "github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/exchange"
	"github.com/abdulloh5007/lfest-go/internal/marketupdate"
	"github.com/abdulloh5007/lfest-go/internal/order"
	"github.com/abdulloh5007/lfest-go/internal/orderfilter"
	"github.com/abdulloh5007/lfest-go/internal/tracker"
	"github.com/abdulloh5007/lfest-go/internal/types"
	"github.com/abdulloh5007/lfest-go/internal/xlog"
)

func main() {
	// godotenv is purely for harness-level knobs (e.g. LFEST_LOG_LEVEL in
	// a real deployment); the exchange core itself never reads env vars.
	_ = godotenv.Load()

	log := xlog.New(os.Stdout, "simulate")

	cfg := config.Config{
		StartingWalletBalance: xdec.NewQuote(1000, 0),
		MaxNumOpenOrders:      50,
		ContractSpec: config.ContractSpec{
			InitMarginReq: decimal.NewFromFloat(1.0),
			PriceFilter: orderfilter.PriceFilter{
				TickSize: xdec.NewPrice(1, -1),
			},
			QuantityFilter: orderfilter.QuantityFilter{
				StepSize: xdec.NewBase(1, -2),
			},
			FeeMaker: decimal.NewFromFloat(0.0002),
			FeeTaker: decimal.NewFromFloat(0.0006),
		},
		SampleReturnsEveryNSeconds: 60,
	}

	rt := tracker.NewReturns()
	ex, err := exchange.New(cfg, rt, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	bba := marketupdate.Bba{Bid: xdec.NewPrice(99, 0), Ask: xdec.NewPrice(100, 0), Ts: 0}
	if _, err := ex.UpdateState(0, bba); err != nil {
		fmt.Fprintln(os.Stderr, "update_state error:", err)
		os.Exit(1)
	}

	filled, err := ex.SubmitMarketOrder(order.NewMarket{Side: types.Buy, Qty: xdec.NewBase(5, 0)})
	if err != nil {
		fmt.Fprintln(os.Stderr, "submit_market_order error:", err)
		os.Exit(1)
	}
	log.Info().Str("avg_fill_price", filled.AvgFillPrice.String()).Str("qty", filled.FilledQty.String()).Msg("market order filled")

	bal := ex.UserBalances()
	log.Info().Str("wallet", bal.Wallet.String()).Str("available", bal.Available.String()).Msg("balances after fill")
}
