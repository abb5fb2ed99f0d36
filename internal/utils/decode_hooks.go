package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
)

const decimalDecodeErrorTemplateConstant = "invalid decimal value %q: %w"

var decimalType = reflect.TypeOf(decimal.Decimal{})

// DecimalDecodeHook converts strings and numbers into decimal.Decimal values.
// Floats are converted through their shortest textual form.
func DecimalDecodeHook() mapstructure.DecodeHookFuncType {
	return func(sourceType reflect.Type, targetType reflect.Type, data any) (any, error) {
		if targetType != decimalType {
			return data, nil
		}

		switch typedValue := data.(type) {
		case string:
			parsedValue, parseError := decimal.NewFromString(strings.TrimSpace(typedValue))
			if parseError != nil {
				return nil, fmt.Errorf(decimalDecodeErrorTemplateConstant, typedValue, parseError)
			}
			return parsedValue, nil
		case float64:
			return decimal.RequireFromString(strconv.FormatFloat(typedValue, 'f', -1, 64)), nil
		case float32:
			return decimal.NewFromFloat32(typedValue), nil
		case int:
			return decimal.NewFromInt(int64(typedValue)), nil
		case int64:
			return decimal.NewFromInt(typedValue), nil
		case int32:
			return decimal.NewFromInt32(typedValue), nil
		case uint:
			return decimal.NewFromUint64(uint64(typedValue)), nil
		case uint64:
			return decimal.NewFromUint64(typedValue), nil
		default:
			return data, nil
		}
	}
}
