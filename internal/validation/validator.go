package validation

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// New returns a configured validator with the storefront's custom tags:
//
//	notblank   non-whitespace text
//	lbphone    Lebanese phone number, whitespace ignored
//	lbcity     one of Cities
//	posdecimal text parsing to a decimal > 0 that fits a float64
//	posint     text parsing to an integer > 0
//
// Field names in errors are taken from json tags.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("lbphone", func(fl validatorv10.FieldLevel) bool {
		return IsLebanesePhone(fl.Field().String())
	})
	_ = v.RegisterValidation("lbcity", func(fl validatorv10.FieldLevel) bool {
		return IsSupportedCity(fl.Field().String())
	})
	_ = v.RegisterValidation("posdecimal", func(fl validatorv10.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive() && !math.IsInf(d.InexactFloat64(), 0)
	})
	_ = v.RegisterValidation("posint", func(fl validatorv10.FieldLevel) bool {
		n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && n > 0
	})

	return v
}
