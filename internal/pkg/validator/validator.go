package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Ban kind validation
	validate.RegisterValidation("ban_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		return kind == "temporary" || kind == "permanent"
	})

	// Ban duration validation (fixed allowed set, days)
	validate.RegisterValidation("ban_duration", func(fl validator.FieldLevel) bool {
		switch fl.Field().Int() {
		case 0, 1, 3, 7, 30, 90:
			return true
		}
		return false
	})

	// Report type validation
	validate.RegisterValidation("report_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		validTypes := []string{"spam", "inappropriate", "harassment", "copyright", "other"}
		for _, v := range validTypes {
			if t == v {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "ban_kind":
			errors[field] = "Invalid ban kind. Must be: temporary or permanent"
		case "ban_duration":
			errors[field] = "Invalid ban duration. Must be one of: 1, 3, 7, 30, 90 days"
		case "report_type":
			errors[field] = "Invalid report type. Must be: spam, inappropriate, harassment, copyright, or other"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
