package validation

import (
	"regexp"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, digits, spaces and common punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	employmentTypes = map[string]struct{}{
		"full-time":  {},
		"part-time":  {},
		"contract":   {},
		"internship": {},
	}

	applicationStatuses = map[string]struct{}{
		"reviewed": {},
		"accepted": {},
		"rejected": {},
	}
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the process-wide validator with custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		RegisterValidators(validate)
	})
	return validate
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("employment_type", EmploymentType)
	_ = v.RegisterValidation("application_status", ApplicationStatus)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

// NoEmoji rejects emoji and other pictographic symbols.
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// EmploymentType accepts full-time, part-time, contract and internship.
func EmploymentType(fl validator.FieldLevel) bool {
	_, ok := employmentTypes[fl.Field().String()]
	return ok
}

// ApplicationStatus accepts the statuses a reviewer may set. pending is
// only ever assigned on submission.
func ApplicationStatus(fl validator.FieldLevel) bool {
	_, ok := applicationStatuses[fl.Field().String()]
	return ok
}
