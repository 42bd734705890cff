// Package validation binds request data and validates it.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Validator returns the shared validator instance.
//
// Field errors are reported under the name the client used: the json,
// param or query tag, in that order.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "param", "query"} {
				name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})

		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})

		// decimal.Decimal is validated through its canonical string so
		// tags like decimals=2 apply to money fields too.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("decimals", maxDecimals)

		instance = v
	})
	return instance
}

// maxDecimals implements decimals=N: the value has at most N digits after
// the decimal point, so it survives a NUMERIC(p, N) column unrounded.
func maxDecimals(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil || places < 0 {
		return false
	}

	field := fl.Field()
	var d decimal.Decimal
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		d = decimal.NewFromFloat(field.Float())
	case reflect.String:
		d, err = decimal.NewFromString(field.String())
		if err != nil {
			return false
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}

	return d.Exponent() >= -int32(places)
}

// Struct validates v against its struct tags.
func Struct(v any) error {
	return Validator().Struct(v)
}

// IsSlug reports whether s is a lowercase, hyphen separated slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
