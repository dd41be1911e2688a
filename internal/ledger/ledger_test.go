package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdulloh5007/lfest-go/internal/decimal"
)

func TestNew_OpeningBalance(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	assert.True(t, l.BalanceOf(UserWallet).Equal(decimal.NewQuote(1000, 0)))
	assert.True(t, l.Sum().Equal(decimal.NewQuote(1000, 0)))
}

func TestTransfer_MovesBalance(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	l.Transfer(UserWallet, UserPositionMargin, decimal.NewQuote(100, 0))

	assert.True(t, l.BalanceOf(UserWallet).Equal(decimal.NewQuote(900, 0)))
	assert.True(t, l.BalanceOf(UserPositionMargin).Equal(decimal.NewQuote(100, 0)))
	assert.True(t, l.Sum().Equal(decimal.NewQuote(1000, 0)), "transfers must conserve the ledger sum")
}

func TestTransfer_PanicsOnNonPositiveAmount(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	assert.Panics(t, func() {
		l.Transfer(UserWallet, UserPositionMargin, decimal.ZeroQuote)
	})
}

func TestTransfer_PanicsOnSameAccount(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	assert.Panics(t, func() {
		l.Transfer(UserWallet, UserWallet, decimal.NewQuote(1, 0))
	})
}

func TestTransferIfPositive_NoOpOnZero(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	l.TransferIfPositive(UserWallet, UserPositionMargin, decimal.ZeroQuote)
	assert.True(t, l.BalanceOf(UserWallet).Equal(decimal.NewQuote(1000, 0)))
}

func TestTransferSigned_NegativeReversesDirection(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	l.Transfer(UserWallet, ExchangeFee, decimal.NewQuote(10, 0))

	l.TransferSigned(UserWallet, ExchangeFee, decimal.NewQuote(-10, 0))

	assert.True(t, l.BalanceOf(UserWallet).Equal(decimal.NewQuote(1000, 0)))
	assert.True(t, l.BalanceOf(ExchangeFee).Equal(decimal.ZeroQuote))
}

func TestAvailableBalance(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	l.Transfer(UserWallet, UserPositionMargin, decimal.NewQuote(200, 0))
	l.Transfer(UserWallet, UserOrderMargin, decimal.NewQuote(100, 0))

	assert.True(t, l.AvailableBalance().Equal(decimal.NewQuote(700, 0)))
}

func TestAssertBalanced_PanicsOnDrift(t *testing.T) {
	l := New(decimal.NewQuote(1000, 0))
	assert.Panics(t, func() {
		l.AssertBalanced(decimal.NewQuote(999, 0))
	})
}
