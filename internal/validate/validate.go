package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/yungbote/crmcore-backend/internal/pkg/errors"
)

// Field validators for the mutation layer. All are pure; uniqueness checks
// that need a store lookup live in the services.

var fieldValidator = validator.New()

// Optional leading +, 1-4 digit groups separated by -, . or space, ending in
// a 1-9 digit group.
var phoneRegex = regexp.MustCompile(`^\+?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)

func Email(value string) error {
	if err := fieldValidator.Var(value, "required,email"); err != nil {
		return apperrors.Validationf("Invalid email format.")
	}
	return nil
}

// Phone accepts the empty string; the field is optional.
func Phone(value string) error {
	if value == "" {
		return nil
	}
	if !phoneRegex.MatchString(value) {
		return apperrors.Validationf("Invalid phone number format. Please use a valid format (e.g., +1234567890 or 123-456-7890).")
	}
	return nil
}

func Price(value decimal.Decimal) error {
	if value.LessThanOrEqual(decimal.Zero) {
		return apperrors.Validationf("Price must be a positive number.")
	}
	return nil
}

func Stock(value int) error {
	if value < 0 {
		return apperrors.Validationf("Stock cannot be negative.")
	}
	return nil
}
