package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

func TestNewStore_PreservesAuthoredOrder(t *testing.T) {
	store := mustStore(t, demoRules())

	defs := store.Definitions()
	require.Len(t, defs, 6)
	assert.Equal(t, "RULE-001", defs[0].RuleID)
	assert.Equal(t, "RULE-006", defs[5].RuleID)
}

func TestNewStore_RejectsDuplicateRuleID(t *testing.T) {
	defs := []entities.RuleDefinition{
		{RuleID: "RULE-001", RuleName: "A", Condition: "symptom CONTAINS 'chest'", BaseScore: 10, Weight: 1},
		{RuleID: "RULE-001", RuleName: "B", Condition: "symptom CONTAINS 'fever'", BaseScore: 10, Weight: 1},
	}

	_, err := NewStore(defs)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, appErr.Type)
	assert.Contains(t, appErr.Message, "RULE-001")
}

func TestNewStore_RejectsMalformedCondition(t *testing.T) {
	defs := []entities.RuleDefinition{
		{RuleID: "RULE-001", RuleName: "A", Condition: "symptom CONTAINS 'chest'", BaseScore: 10, Weight: 1},
		{RuleID: "RULE-002", RuleName: "B", Condition: "severity == 'high'", BaseScore: 10, Weight: 1},
	}

	// The whole store is rejected, not just the offending rule.
	_, err := NewStore(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RULE-002")
}

func TestNewStore_RejectsNegativeScoring(t *testing.T) {
	_, err := NewStore([]entities.RuleDefinition{
		{RuleID: "RULE-001", RuleName: "A", Condition: "symptom CONTAINS 'chest'", BaseScore: -5, Weight: 1},
	})
	assert.Error(t, err)

	_, err = NewStore([]entities.RuleDefinition{
		{RuleID: "RULE-001", RuleName: "A", Condition: "symptom CONTAINS 'chest'", BaseScore: 5, Weight: -1},
	})
	assert.Error(t, err)
}

func TestNewStore_RejectsMissingIdentity(t *testing.T) {
	_, err := NewStore([]entities.RuleDefinition{
		{RuleID: "", RuleName: "A", Condition: "symptom CONTAINS 'chest'", BaseScore: 5, Weight: 1},
	})
	assert.Error(t, err)

	_, err = NewStore([]entities.RuleDefinition{
		{RuleID: "RULE-001", RuleName: "", Condition: "symptom CONTAINS 'chest'", BaseScore: 5, Weight: 1},
	})
	assert.Error(t, err)
}

func TestActiveStore_SwapReplacesWholesale(t *testing.T) {
	first := mustStore(t, demoRules()[:2])
	second := mustStore(t, demoRules())

	active := NewActiveStore(first)
	assert.Equal(t, 2, active.Current().Len())

	active.Swap(second)
	assert.Equal(t, 6, active.Current().Len())

	// The old store instance is untouched by the swap
	assert.Equal(t, 2, first.Len())
}
