package value

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits kept for prices and budgets.
const MoneyScale = 2

// MaxMoney is the largest amount a NUMERIC(14,2) column holds.
var MaxMoney = decimal.RequireFromString("999999999999.99") //nolint:gochecknoglobals

// NormalizeMoney rounds to the stored scale, half away from zero like Postgres.
func NormalizeMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// MoneyInRange reports whether d fits the storable range [0, MaxMoney].
func MoneyInRange(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(MaxMoney)
}
