package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pillpal/med-scheduler/pkg/problem"
)

var validate *validator.Validate

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func init() {
	validate = validator.New()

	// Register custom timezone validator
	validate.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
		tz := fl.Field().String()
		_, err := time.LoadLocation(tz)
		return err == nil
	})

	// clocktime validates zero-padded 24-hour HH:MM strings
	validate.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
}

// Validate validates a struct and returns field errors
func Validate(s interface{}) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors []problem.FieldError
	for _, err := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   toSnakeCase(err.Field()),
			Message: getValidationMessage(err),
		})
	}
	return fieldErrors
}

func getValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "gt":
		return "must be greater than " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "timezone":
		return "must be a valid IANA timezone"
	case "clocktime":
		return "must be a 24-hour HH:MM time"
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var result []byte
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				result = append(result, '_')
			}
			result = append(result, byte(c+'a'-'A'))
		} else {
			result = append(result, byte(c))
		}
	}
	return string(result)
}
