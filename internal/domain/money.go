package domain

import "github.com/shopspring/decimal"

// Amounts are stored as NUMERIC(18,2).
const MoneyScale = 2

var moneyLimit = decimal.New(1, 18-MoneyScale)

// CheckMoney reports why amount cannot be stored exactly, or "" when it fits.
// Trailing zeros past the scale are fine: 10.500 is 10.50.
func CheckMoney(amount decimal.Decimal) string {
	switch {
	case !amount.Equal(amount.Truncate(MoneyScale)):
		return "at most 2 decimal places"
	case amount.Abs().GreaterThanOrEqual(moneyLimit):
		return "must be less than 10^16"
	}
	return ""
}
