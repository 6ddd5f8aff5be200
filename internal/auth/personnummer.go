package auth

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var personnummerPattern = regexp.MustCompile(`^\d{6,8}-?\d{4}$`)

// NormalizePersonnummer reduces a personnummer to its 10-digit form: the
// dash is stripped and, for the 12-digit YYYYMMDD-NNNN variant, the century
// digits are dropped. Returns "" when the input cannot be normalized.
func NormalizePersonnummer(value string) string {
	digits := strings.ReplaceAll(value, "-", "")
	if len(digits) == 12 {
		digits = digits[2:]
	}
	if len(digits) != 10 {
		return ""
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return digits
}

// ValidPersonnummer checks the format and the Luhn checksum of a Swedish
// personnummer. Both YYMMDD-NNNN and YYYYMMDD-NNNN forms are accepted.
func ValidPersonnummer(value string) bool {
	if !personnummerPattern.MatchString(value) {
		return false
	}

	digits := NormalizePersonnummer(value)
	if digits == "" {
		return false
	}

	// Luhn over the first nine digits; the tenth is the check digit.
	sum := 0
	for i := 0; i < 9; i++ {
		n := int(digits[i] - '0')
		if i%2 == 0 {
			n *= 2
		}
		if n > 9 {
			n -= 9
		}
		sum += n
	}
	checkDigit := (10 - sum%10) % 10

	return checkDigit == int(digits[9]-'0')
}

// RegisterValidators adds the "personnummer" rule to Gin's binding validator.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("personnummer", func(fl validator.FieldLevel) bool {
			return ValidPersonnummer(fl.Field().String())
		})
	}
}
