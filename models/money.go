package models

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount with two decimal places. It is stored as
// decimal(10,2) and always rendered in JSON with both places, e.g. "6.00".
type Money struct {
	decimal.Decimal
}

// MaxAmount is the largest value a decimal(10,2) column holds.
var MaxAmount = MustMoney("99999999.99")

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// ParseMoney parses a decimal string such as "2.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d), nil
}

func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Times returns the amount multiplied by an integer quantity.
func (m Money) Times(qty int) Money {
	return NewMoney(m.Decimal.Mul(decimal.NewFromInt(int64(qty))))
}

func (m Money) Plus(o Money) Money {
	return NewMoney(m.Decimal.Add(o.Decimal))
}

// FitsColumn reports whether the amount can be stored in a decimal(10,2) column.
func (m Money) FitsColumn() bool {
	return m.Abs().LessThanOrEqual(MaxAmount.Decimal)
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
