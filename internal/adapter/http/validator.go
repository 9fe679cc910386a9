package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/itnr/itnr-api/internal/domain"
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := result[e.Field]; ok {
			continue
		}
		result[e.Field] = e.Message
	}
	return result
}

// RequestValidator adapts go-playground/validator to echo.Validator.
// Field names in errors follow the JSON names.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator creates a RequestValidator with the search rules registered.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("cabin", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCabin(fl.Field().String())
		return err == nil
	})

	v.RegisterStructValidation(searchRequestRules, SearchRequest{})

	return &RequestValidator{v: v}
}

// Validate implements echo.Validator. Failures are returned as *ValidationErrors.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := &ValidationErrors{}
	for _, fe := range fieldErrs {
		field := fieldPath(fe)
		errs.Add(field, fieldMessage(field, fe))
	}
	return errs
}

// searchRequestRules checks the cross-field rules of a SearchRequest.
func searchRequestRules(sl validator.StructLevel) {
	r := sl.Current().Interface().(SearchRequest)

	hasDates := r.DepartureDate != "" || r.ReturnDate != ""
	switch {
	case hasDates && r.Period != nil:
		sl.ReportError(r.Period, "period", "Period", "exclusive_dates", "")
	case !hasDates && r.Period == nil:
		sl.ReportError(r.DepartureDate, "departureDate", "DepartureDate", "required_dates", "")
	case r.ReturnDate != "" && r.DepartureDate == "":
		sl.ReportError(r.DepartureDate, "departureDate", "DepartureDate", "required_with_return", "")
	}

	if r.Passengers != nil {
		p := r.Passengers
		if p.Adults+p.Children+p.Infants > domain.MaxPassengers {
			sl.ReportError(r.Passengers, "passengers", "Passengers", "max_total", "")
		}
	}
}

// fieldPath strips the root struct name: "SearchRequest.period.start" -> "period.start".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "datetime":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s cannot exceed passengers.adults", field)
	case "cabin":
		return fmt.Sprintf("%s must be one of ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST", field)
	case "exclusive_dates":
		return "provide either departureDate/returnDate or period, not both"
	case "required_dates":
		return "either departureDate or period is required"
	case "required_with_return":
		return "departureDate is required when returnDate is set"
	case "max_total":
		return fmt.Sprintf("total passengers cannot exceed %d", domain.MaxPassengers)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
