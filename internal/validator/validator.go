package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must contain at least %s item(s)"
	ErrMaxLength      = "must contain at most %s item(s)"
	ErrMinChars       = "must be at least %s characters long"
	ErrAlphanum       = "must contain only letters and digits"
	ErrSeatCode       = "must be a seat code such as A1"
	ErrDefaultInvalid = "is invalid"
)

var seatCodeRgx = regexp.MustCompile(`^[A-Za-z]+[1-9][0-9]*$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seatcode", validateSeatCode)

	return validator
}

func validateSeatCode(fl validator.FieldLevel) bool {
	return seatCodeRgx.MatchString(strings.TrimSpace(fl.Field().String()))
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf(ErrMinChars, err.Param())
		}
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "alphanum":
		return ErrAlphanum
	case "seatcode":
		return ErrSeatCode
	default:
		return ErrDefaultInvalid
	}
}
