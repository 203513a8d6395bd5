package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the labels shown to API clients
var FieldLabels = map[string]string{
	"Name":           "Name",
	"Email":          "Email",
	"Password":       "Password",
	"Role":           "Role",
	"Title":          "Title",
	"Description":    "Description",
	"Location":       "Location",
	"SalaryRange":    "Salary range",
	"EmploymentType": "Employment type",
	"Requirements":   "Requirements",
	"CoverLetter":    "Cover letter",
	"Status":         "Status",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins FormatValidationErrors into a single line for the response envelope.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, digits, spaces and . ' - / & ( ) ,", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji", label)
	case "employment_type":
		return fmt.Sprintf("%s must be one of: full-time, part-time, contract, internship", label)
	case "application_status":
		return fmt.Sprintf("%s must be one of: reviewed, accepted, rejected", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
