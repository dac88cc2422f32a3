// Package engine evaluates ordered validation rule chains.
//
// The engine is deliberately small and synchronous: predicates are pure
// functions, and the asynchronous surface (validating flags, generation
// tracking, scatter/gather) lives in the store, not here.
package engine

import "github.com/aretw0/formwork/pkg/domain"

// Evaluate runs the rules against value in declaration order and stops
// at the first failure (fail-fast: at most one message per field, no
// matter how many rules would reject the value).
//
// It returns nil when every rule passes, and a *domain.RuleError for
// the first failing rule otherwise. The error message is resolved from
// the predicate's error text, then the rule's static Message, then
// domain.DefaultInvalidMessage, so it is never empty.
func Evaluate(rules []domain.Rule, value any) error {
	for _, rule := range rules {
		err := rule.Check(value)
		if err == nil {
			continue
		}
		return &domain.RuleError{
			Rule:    rule.Name,
			Message: resolveMessage(err.Error(), rule.Message),
		}
	}
	return nil
}

func resolveMessage(fromPredicate, static string) string {
	if fromPredicate != "" {
		return fromPredicate
	}
	if static != "" {
		return static
	}
	return domain.DefaultInvalidMessage
}
