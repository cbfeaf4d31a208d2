package handlers

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// startDateLayout is the calendar-date form accepted in project payloads.
const startDateLayout = "2006-01-02"

// parseStartDate accepts a plain calendar date or a full RFC3339 timestamp.
func parseStartDate(s string) (time.Time, error) {
	if t, err := time.Parse(startDateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// bindingErrorMessage turns the first violated binding rule into the
// human-readable message surfaced to the caller.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	field := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return "email must be a valid email address"
	case "eqfield":
		return "password confirmation does not match password"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldLabel lowercases the first rune so messages use the JSON field spelling.
func fieldLabel(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
