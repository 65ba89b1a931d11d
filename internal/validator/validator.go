package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/rates"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Non-empty after trimming whitespace.
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Three-letter currency code, case-insensitive.
	_ = Validate.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return rates.ValidCode(fl.Field().String())
	})

	// Lets numeric tags such as gte=0 apply to money fields.
	Validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}

		return nil
	}, decimal.Decimal{})
}
