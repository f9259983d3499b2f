package validators

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	// (11) 98765-4321, (11) 8765-4321, 11987654321 and the like.
	brPhonePattern = regexp.MustCompile(`^\(?\d{2}\)?\s?\d{4,5}-?\d{4}$`)
)

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsBrazilianPhone accepts the masked form or its digit equivalent,
// with 10 or 11 digits once formatting is removed.
func IsBrazilianPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !brPhonePattern.MatchString(phone) {
		return false
	}
	n := len(DigitsOnly(phone))
	return n == 10 || n == 11
}

func IsEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// RegisterBindings adds the br_phone tag to gin's request validator.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("br_phone", func(fl validator.FieldLevel) bool {
		return IsBrazilianPhone(fl.Field().String())
	})
}
