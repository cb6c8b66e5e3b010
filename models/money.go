package models

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount kept at two fractional digits.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

func MustMoney(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

func ZeroMoney() Money {
	return Money{Decimal: decimal.Zero}
}

// MarshalJSON always renders two fractional digits, e.g. "1500.50".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m Money) String() string {
	return m.StringFixed(2)
}

// Times returns the amount multiplied by an integer quantity.
func (m Money) Times(quantity int) Money {
	return NewMoney(m.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) Plus(other Money) Money {
	return NewMoney(m.Decimal.Add(other.Decimal))
}
