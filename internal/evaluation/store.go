package evaluation

import (
	"fmt"
	"sync/atomic"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

// compiledRule pairs one rule definition with its compiled predicate.
type compiledRule struct {
	def  entities.RuleDefinition
	pred Predicate
}

// Store is an immutable, ordered collection of compiled rules. The authored
// order is preserved exactly; it is part of the audit contract.
type Store struct {
	rules []compiledRule
}

// NewStore validates and compiles the whole rule set. Any malformed rule
// rejects the entire store with an error naming the offending ruleId, before
// a single evaluation can run against it.
func NewStore(defs []entities.RuleDefinition) (*Store, error) {
	rules := make([]compiledRule, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))

	for i, def := range defs {
		if def.RuleID == "" {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("rule at position %d has an empty ruleId", i), nil)
		}
		if _, dup := seen[def.RuleID]; dup {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("duplicate ruleId %q", def.RuleID), nil)
		}
		seen[def.RuleID] = struct{}{}

		if def.RuleName == "" {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("rule %q has an empty ruleName", def.RuleID), nil)
		}
		if def.BaseScore < 0 {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("rule %q has a negative baseScore", def.RuleID), nil)
		}
		if def.Weight < 0 {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("rule %q has a negative weight", def.RuleID), nil)
		}

		pred, err := ParseCondition(def.Condition)
		if err != nil {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("rule %q has an invalid condition", def.RuleID), err)
		}

		rules = append(rules, compiledRule{def: def, pred: pred})
	}

	return &Store{rules: rules}, nil
}

// Len returns the number of rules in the store.
func (s *Store) Len() int {
	return len(s.rules)
}

// Definitions returns a copy of the rule definitions in authored order.
func (s *Store) Definitions() []entities.RuleDefinition {
	defs := make([]entities.RuleDefinition, len(s.rules))
	for i, r := range s.rules {
		defs[i] = r.def
	}
	return defs
}

// ActiveStore is the process-wide current rule store. It is loaded once at
// startup and replaced wholesale on reload; evaluation calls only ever see a
// complete, validated store.
type ActiveStore struct {
	current atomic.Pointer[Store]
}

// NewActiveStore creates the holder with its initial store.
func NewActiveStore(initial *Store) *ActiveStore {
	a := &ActiveStore{}
	a.current.Store(initial)
	return a
}

// Current returns the store in effect right now.
func (a *ActiveStore) Current() *Store {
	return a.current.Load()
}

// Swap atomically replaces the active store.
func (a *ActiveStore) Swap(next *Store) {
	a.current.Store(next)
}
