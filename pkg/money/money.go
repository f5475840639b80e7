// Package money rounds and formats amounts for display and JSON.
// Bills are single-currency; the currency is fixed to USD.
package money

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code every amount is formatted in.
const Currency = gomoney.USD

// maxMinorUnits is the largest amount, in minor units, go-money can hold.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// DecimalPlaces returns the number of decimal places of Currency.
func DecimalPlaces() int {
	c := gomoney.GetCurrency(Currency)
	if c == nil {
		return 2
	}
	return c.Fraction
}

// Round rounds value half away from zero to the currency's minor unit.
// Non-finite values are returned unchanged.
func Round(value float64) float64 {
	d, ok := roundDecimal(value)
	if !ok {
		return value
	}
	if m, ok := toMoney(d); ok {
		return m.AsMajorUnits()
	}
	return d.InexactFloat64()
}

// Format renders value with exactly DecimalPlaces decimals and no currency
// symbol or grouping, e.g. 1234.5 -> "1234.50".
func Format(value float64) string {
	d, ok := roundDecimal(value)
	if !ok {
		return strconv.FormatFloat(value, 'f', DecimalPlaces(), 64)
	}
	if m, ok := toMoney(d); ok {
		return plainFormatter().Format(m.Amount())
	}
	return d.StringFixed(int32(DecimalPlaces()))
}

// roundDecimal rounds on the shortest decimal form of value, so 2.675 rounds
// to 2.68 even though its binary value is slightly below.
func roundDecimal(value float64) (decimal.Decimal, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(value).Round(int32(DecimalPlaces())), true
}

// toMoney converts an amount already rounded to the minor unit. ok is false
// when it does not fit in an int64 of minor units.
func toMoney(d decimal.Decimal) (*gomoney.Money, bool) {
	minor := d.Shift(int32(DecimalPlaces()))
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return nil, false
	}
	return gomoney.New(minor.IntPart(), Currency), true
}

func plainFormatter() *gomoney.Formatter {
	return gomoney.NewFormatter(DecimalPlaces(), ".", "", "", "1")
}

// Amount is a monetary value that marshals to JSON with the currency's
// decimal precision (e.g. 12.95 not 12.950000762939453).
type Amount struct {
	Value float64
}

// NewAmount creates an Amount rounded to the currency's minor unit.
func NewAmount(value float64) Amount {
	return Amount{Value: Round(value)}
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
		return nil, &json.UnsupportedValueError{Str: strconv.FormatFloat(a.Value, 'g', -1, 64)}
	}
	return []byte(Format(a.Value)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		a.Value = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.Value = v
	return nil
}
