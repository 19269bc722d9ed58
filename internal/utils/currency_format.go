package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatEUR renders an amount the way the mobile client displays balances,
// e.g. "€1,234.50". Amounts are stored as exact decimals and only converted to
// minor units for display.
func FormatEUR(amount decimal.Decimal) string {
	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(minor, money.EUR).Display()
}
