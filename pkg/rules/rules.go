// Package rules provides the built-in validation rules: required,
// email, length bounds, pattern matching, membership, and custom
// predicates.
//
// Every constructor returns a domain.Rule ready to be placed in a
// field's rule chain:
//
//	cfg := domain.FieldConfig{
//	    Rules: []domain.Rule{
//	        rules.Required(),
//	        rules.Email(),
//	    },
//	}
//
// Built-in predicates report bare failures and let the rule's static
// message supply the text; Custom rules may carry their own message in
// the returned error instead.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/formwork/pkg/domain"
)

// errInvalid is a bare failure with no message of its own; the rule's
// static Message supplies the text.
var errInvalid = errors.New("")

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// str coerces a field value to its string form for text-oriented rules.
func str(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// Required rejects nil values and strings that are empty or whitespace
// only.
func Required() domain.Rule {
	return domain.Rule{
		Name:    "required",
		Message: "This field is required",
		Check: func(value any) error {
			if value == nil {
				return errInvalid
			}
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				return errInvalid
			}
			return nil
		},
	}
}

// Email accepts addresses of the shape local@domain.tld. Empty values
// pass; pair with Required to reject them.
func Email() domain.Rule {
	return domain.Rule{
		Name:    "email",
		Message: "Please enter a valid email",
		Check: func(value any) error {
			s := str(value)
			if s == "" {
				return nil
			}
			if !emailPattern.MatchString(s) {
				return errInvalid
			}
			return nil
		},
	}
}

// MinLength requires at least n characters (runes, not bytes).
func MinLength(n int) domain.Rule {
	return domain.Rule{
		Name:    "min_length",
		Message: fmt.Sprintf("Must be at least %d characters", n),
		Check: func(value any) error {
			if utf8.RuneCountInString(str(value)) < n {
				return errInvalid
			}
			return nil
		},
	}
}

// MaxLength allows at most n characters (runes, not bytes).
func MaxLength(n int) domain.Rule {
	return domain.Rule{
		Name:    "max_length",
		Message: fmt.Sprintf("Must be at most %d characters", n),
		Check: func(value any) error {
			if utf8.RuneCountInString(str(value)) > n {
				return errInvalid
			}
			return nil
		},
	}
}

// Pattern requires the value to match re. Empty values pass; pair with
// Required to reject them.
func Pattern(re *regexp.Regexp, message string) domain.Rule {
	return domain.Rule{
		Name:    "pattern",
		Message: message,
		Check: func(value any) error {
			s := str(value)
			if s == "" {
				return nil
			}
			if !re.MatchString(s) {
				return errInvalid
			}
			return nil
		},
	}
}

// OneOf requires the value to be one of the given options.
func OneOf(options ...string) domain.Rule {
	return domain.Rule{
		Name:    "one_of",
		Message: fmt.Sprintf("Must be one of: %s", strings.Join(options, ", ")),
		Check: func(value any) error {
			s := str(value)
			for _, opt := range options {
				if s == opt {
					return nil
				}
			}
			return errInvalid
		},
	}
}

// Numeric requires the value to parse as a number. Empty values pass;
// pair with Required to reject them.
func Numeric() domain.Rule {
	return domain.Rule{
		Name:    "numeric",
		Message: "Must be a number",
		Check: func(value any) error {
			switch value.(type) {
			case int, int8, int16, int32, int64,
				uint, uint8, uint16, uint32, uint64,
				float32, float64:
				return nil
			}
			s := str(value)
			if s == "" {
				return nil
			}
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return errInvalid
			}
			return nil
		},
	}
}

// Custom wraps an arbitrary predicate. The returned error's text is
// used as the failure message; return a bare error to fall back to
// message.
func Custom(name string, message string, check func(value any) error) domain.Rule {
	return domain.Rule{
		Name:    name,
		Message: message,
		Check:   check,
	}
}
