// Package validation turns raw form values into records ready for the store.
// It never touches the database; every violated field is reported at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"eventpro-backend/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	choices := map[string]func(string) bool{
		"client_status": func(s string) bool { return models.ClientStatus(s).Valid() },
		"category":      func(s string) bool { return models.Category(s).Valid() },
		"event_status":  func(s string) bool { return models.EventStatus(s).Valid() },
		"priority":      func(s string) bool { return models.Priority(s).Valid() },
	}
	for tag, ok := range choices {
		ok := ok
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return ok(fl.Field().String())
		})
	}
	return v
}

var choiceTags = map[string]bool{
	"client_status": true,
	"category":      true,
	"event_status":  true,
	"priority":      true,
}

// check runs the struct tags and records every failure.
func check(in any, verr *models.ValidationError) {
	err := validate.Struct(in)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("__all__", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	if choiceTags[fe.Tag()] {
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	}
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "uuid":
		return "Enter a valid identifier."
	default:
		return "Enter a valid value."
	}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime accepts RFC 3339 and the datetime-local shapes browsers submit.
// Values without a zone are read as UTC.
func parseTime(field, raw string, verr *models.ValidationError) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	verr.Add(field, "Enter a valid date/time.")
	return time.Time{}
}

// parseMoney enforces a non-negative amount with at most two fractional
// digits and maxDigits digits overall.
func parseMoney(field, raw string, maxDigits int, verr *models.ValidationError) models.Money {
	if raw == "" {
		return models.ZeroMoney()
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add(field, "Enter a number.")
		return models.ZeroMoney()
	}
	if d.IsNegative() {
		verr.Add(field, "Ensure this value is greater than or equal to 0.")
	}
	if !d.Equal(d.Round(2)) {
		verr.Add(field, "Ensure that there are no more than 2 decimal places.")
	}
	if whole := d.Abs().Truncate(0).String(); len(whole) > maxDigits-2 {
		verr.Add(field, fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits))
	}
	return models.NewMoney(d)
}

func parseInt(field, raw string, fallback, min int, verr *models.ValidationError) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(field, "Enter a whole number.")
		return fallback
	}
	if n < min {
		verr.Add(field, fmt.Sprintf("Ensure this value is greater than or equal to %d.", min))
	}
	return n
}

func parseBool(field, raw string, fallback bool, verr *models.ValidationError) bool {
	switch strings.ToLower(raw) {
	case "":
		return fallback
	case "true", "1", "on", "yes":
		return true
	case "false", "0", "off", "no":
		return false
	}
	verr.Add(field, "Enter a valid boolean.")
	return fallback
}

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
