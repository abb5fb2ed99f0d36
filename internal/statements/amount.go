package statements

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	amountDisplayPrecisionConstant   = 2
	amountMissingDisplayConstant     = "<missing>"
	amountParseErrorTemplateConstant = "invalid amount %q: %w"
	amountEmptyValueMessageConstant  = "amount value is empty"
	amountJSONNullLiteralConstant    = "null"
)

// Amount is an optional currency amount. The zero value is absent.
type Amount struct {
	value   decimal.Decimal
	present bool
}

// AmountOf wraps a present decimal value.
func AmountOf(value decimal.Decimal) Amount {
	return Amount{value: value, present: true}
}

// AmountFromInt wraps a whole currency amount.
func AmountFromInt(value int64) Amount {
	return AmountOf(decimal.NewFromInt(value))
}

// MissingAmount returns an absent amount.
func MissingAmount() Amount {
	return Amount{}
}

// ParseAmount parses the textual form of a decimal amount.
func ParseAmount(raw string) (Amount, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Amount{}, fmt.Errorf(amountParseErrorTemplateConstant, raw, errEmptyAmount)
	}
	parsed, parseError := decimal.NewFromString(trimmed)
	if parseError != nil {
		return Amount{}, fmt.Errorf(amountParseErrorTemplateConstant, raw, parseError)
	}
	return AmountOf(parsed), nil
}

// Value returns the decimal and whether the amount is present.
func (amount Amount) Value() (decimal.Decimal, bool) {
	return amount.value, amount.present
}

// IsPresent reports whether the amount carries a value.
func (amount Amount) IsPresent() bool {
	return amount.present
}

// String renders the amount with two decimal places.
func (amount Amount) String() string {
	if !amount.present {
		return amountMissingDisplayConstant
	}
	return amount.value.StringFixed(amountDisplayPrecisionConstant)
}

// MarshalJSON encodes absent amounts as null and present ones as decimal strings.
func (amount Amount) MarshalJSON() ([]byte, error) {
	if !amount.present {
		return []byte(amountJSONNullLiteralConstant), nil
	}
	return json.Marshal(amount.value.String())
}

var errEmptyAmount = errors.New(amountEmptyValueMessageConstant)
