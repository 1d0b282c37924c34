package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)
	clockRgx      = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	rowLetterRgx  = regexp.MustCompile(`^[A-Za-z]$`)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("seat_list", validateSeatList)
	validator.RegisterValidation("clock", validateClock)
	validator.RegisterValidation("row_letter", validateRowLetter)
	validator.RegisterValidation("seat_status", validateSeatStatus)
	validator.RegisterValidation("nonneg_decimal", validateNonNegativeDecimal)

	return validator
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// validateSeatList accepts a comma separated list with at least one well
// formed seat number once blanks are dropped.
func validateSeatList(fl validator.FieldLevel) bool {
	seats := domain.ParseSeatList(fl.Field().String())
	if len(seats) == 0 {
		return false
	}

	for _, seat := range seats {
		if !domain.ValidSeatNumber(seat) {
			return false
		}
	}

	return true
}

func validateClock(fl validator.FieldLevel) bool {
	return clockRgx.MatchString(fl.Field().String())
}

func validateRowLetter(fl validator.FieldLevel) bool {
	return rowLetterRgx.MatchString(fl.Field().String())
}

func validateSeatStatus(fl validator.FieldLevel) bool {
	return domain.SeatStatus(fl.Field().String()).Valid()
}

// decimalValue lets numeric tags see a decimal as a float64.
func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	f, _ := d.Float64()
	return f
}

func validateNonNegativeDecimal(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case float64:
		return v >= 0
	case decimal.Decimal:
		return !v.IsNegative()
	case *decimal.Decimal:
		return v == nil || !v.IsNegative()
	default:
		return false
	}
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "password":
		return "must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, " +
			"one number, and one special character (!@#$%^&*)."
	case "seat_list":
		return ErrSeatList
	case "clock":
		return "must be a time of day in HH:MM format"
	case "row_letter":
		return "must be a single letter"
	case "seat_status":
		return "must be either available or booked"
	case "nonneg_decimal":
		return "must not be negative"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	default:
		return "is invalid"
	}
}

const (
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
	ErrSeatList = "must be a comma separated list of seat numbers such as A1,A2"
)
