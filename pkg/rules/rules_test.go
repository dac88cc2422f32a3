package rules_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/aretw0/formwork/internal/engine"
	"github.com/aretw0/formwork/pkg/domain"
	"github.com/aretw0/formwork/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// message runs a single rule through the engine and returns the
// resolved failure message, or "" when the value passes.
func message(t *testing.T, rule domain.Rule, value any) string {
	t.Helper()
	err := engine.Evaluate([]domain.Rule{rule}, value)
	if err == nil {
		return ""
	}
	var ruleErr *domain.RuleError
	require.ErrorAs(t, err, &ruleErr)
	return ruleErr.Message
}

func TestRequired(t *testing.T) {
	assert.Equal(t, "This field is required", message(t, rules.Required(), ""))
	assert.Equal(t, "This field is required", message(t, rules.Required(), "   "))
	assert.Equal(t, "This field is required", message(t, rules.Required(), nil))
	assert.Empty(t, message(t, rules.Required(), "x"))
	assert.Empty(t, message(t, rules.Required(), 0))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "Please enter a valid email", message(t, rules.Email(), "not-an-email"))
	assert.Empty(t, message(t, rules.Email(), "a@b.com"))
	// Empty values are Required's concern, not Email's.
	assert.Empty(t, message(t, rules.Email(), ""))
}

func TestEmailChainScenario(t *testing.T) {
	// Field "email" with [required, email]: the reported message must
	// follow the first failing rule.
	chain := []domain.Rule{rules.Required(), rules.Email()}

	err := engine.Evaluate(chain, "")
	var ruleErr *domain.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "This field is required", ruleErr.Message)

	err = engine.Evaluate(chain, "not-an-email")
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "Please enter a valid email", ruleErr.Message)

	assert.NoError(t, engine.Evaluate(chain, "a@b.com"))
}

func TestMinLength(t *testing.T) {
	assert.Equal(t, "Must be at least 8 characters", message(t, rules.MinLength(8), "short"))
	assert.Empty(t, message(t, rules.MinLength(8), "longenough"))
	// Rune count, not byte count.
	assert.Empty(t, message(t, rules.MinLength(3), "äöü"))
}

func TestMaxLength(t *testing.T) {
	assert.Equal(t, "Must be at most 3 characters", message(t, rules.MaxLength(3), "four"))
	assert.Empty(t, message(t, rules.MaxLength(3), "two"))
}

func TestPattern(t *testing.T) {
	re := regexp.MustCompile(`^\d{4}$`)
	rule := rules.Pattern(re, "Must be a four digit code")

	assert.Equal(t, "Must be a four digit code", message(t, rule, "12x4"))
	assert.Empty(t, message(t, rule, "1234"))
	assert.Empty(t, message(t, rule, ""))
}

func TestOneOf(t *testing.T) {
	rule := rules.OneOf("red", "green", "blue")
	assert.Equal(t, "Must be one of: red, green, blue", message(t, rule, "yellow"))
	assert.Empty(t, message(t, rule, "green"))
}

func TestNumeric(t *testing.T) {
	rule := rules.Numeric()
	assert.Equal(t, "Must be a number", message(t, rule, "abc"))
	assert.Empty(t, message(t, rule, "12.5"))
	assert.Empty(t, message(t, rule, 42))
	assert.Empty(t, message(t, rule, ""))
}

func TestCustom(t *testing.T) {
	positive := rules.Custom("positive", "Must be positive", func(v any) error {
		n, ok := v.(int)
		if !ok {
			return errors.New("expected an integer")
		}
		if n <= 0 {
			return errors.New("")
		}
		return nil
	})

	// Predicate message wins when present, static message otherwise.
	assert.Equal(t, "expected an integer", message(t, positive, "nope"))
	assert.Equal(t, "Must be positive", message(t, positive, -1))
	assert.Empty(t, message(t, positive, 3))
}
