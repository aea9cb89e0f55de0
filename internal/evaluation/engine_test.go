package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

func mustStore(t *testing.T, defs []entities.RuleDefinition) *Store {
	t.Helper()
	store, err := NewStore(defs)
	require.NoError(t, err)
	return store
}

func demoRules() []entities.RuleDefinition {
	return []entities.RuleDefinition{
		{RuleID: "RULE-001", RuleName: "Cardiac Symptom Check", Condition: "IF category == 'Cardiovascular' AND symptom CONTAINS 'chest'", BaseScore: 25, Weight: 1.5},
		{RuleID: "RULE-002", RuleName: "Neurological Cluster Detection", Condition: "IF COUNT(category == 'Neurological') >= 2", BaseScore: 15, Weight: 1.2},
		{RuleID: "RULE-003", RuleName: "Fever Present", Condition: "IF symptom CONTAINS 'fever' OR symptom CONTAINS 'temperature'", BaseScore: 10, Weight: 1.0},
		{RuleID: "RULE-004", RuleName: "Multi-System Involvement", Condition: "IF COUNT(DISTINCT category) >= 3", BaseScore: 20, Weight: 1.3},
		{RuleID: "RULE-005", RuleName: "Respiratory Distress", Condition: "IF symptom CONTAINS 'breath' OR symptom CONTAINS 'respiratory'", BaseScore: 25, Weight: 1.5},
		{RuleID: "RULE-006", RuleName: "Pediatric Age Factor", Condition: "IF patient.age < 12", BaseScore: 15, Weight: 1.2},
	}
}

func TestRun_CardiacRuleContribution(t *testing.T) {
	store := mustStore(t, demoRules()[:1])
	symptoms := []entities.Symptom{
		{Normalized: "Pleuritic chest pain", Category: "Cardiovascular", Confidence: 0.78, Verified: true},
	}

	executions, total := Run(symptoms, nil, store)

	require.Len(t, executions, 1)
	assert.True(t, executions[0].Triggered)
	assert.Equal(t, 25.0, executions[0].Score)
	assert.Equal(t, 37.5, total)
}

func TestRun_NeurologicalCluster(t *testing.T) {
	store := mustStore(t, demoRules()[1:2])
	symptoms := []entities.Symptom{
		{Normalized: "Persistent headache", Category: "Neurological", Confidence: 0.9},
		{Normalized: "Intermittent dizziness", Category: "Neurological", Confidence: 0.8},
	}

	executions, total := Run(symptoms, nil, store)

	require.Len(t, executions, 1)
	assert.True(t, executions[0].Triggered)
	assert.Equal(t, 18.0, total)
}

func TestRun_MultiSystemInvolvement(t *testing.T) {
	store := mustStore(t, demoRules()[3:4])
	symptoms := []entities.Symptom{
		{Normalized: "Persistent headache", Category: "Neurological", Confidence: 0.9},
		{Normalized: "Low-grade fever", Category: "Systemic", Confidence: 0.85},
		{Normalized: "Pleuritic chest pain", Category: "Cardiovascular", Confidence: 0.78},
	}

	executions, total := Run(symptoms, nil, store)

	require.Len(t, executions, 1)
	assert.True(t, executions[0].Triggered)
	assert.Equal(t, 26.0, total)
}

func TestRun_EveryRuleProducesARecordInStoreOrder(t *testing.T) {
	store := mustStore(t, demoRules())
	symptoms := []entities.Symptom{
		{Normalized: "Low-grade fever", Category: "Systemic", Confidence: 0.85},
	}

	executions, _ := Run(symptoms, nil, store)

	require.Len(t, executions, store.Len())
	for i, def := range store.Definitions() {
		assert.Equal(t, def.RuleID, executions[i].RuleID)
		assert.Equal(t, def.Condition, executions[i].Condition)
		assert.Equal(t, def.Weight, executions[i].Weight)
	}

	// Non-triggered rules still produce explicit records
	assert.False(t, executions[0].Triggered)
	assert.Equal(t, 0.0, executions[0].Score)
	assert.True(t, executions[2].Triggered)
}

func TestRun_Deterministic(t *testing.T) {
	store := mustStore(t, demoRules())
	symptoms := []entities.Symptom{
		{Normalized: "Persistent headache", Category: "Neurological", Confidence: 0.9},
		{Normalized: "Intermittent dizziness", Category: "Neurological", Confidence: 0.8},
		{Normalized: "Low-grade fever", Category: "Systemic", Confidence: 0.85},
		{Normalized: "Pleuritic chest pain", Category: "Cardiovascular", Confidence: 0.78},
	}
	attrs := entities.PatientAttributes{"age": 34}

	first, firstTotal := Run(symptoms, attrs, store)
	second, secondTotal := Run(symptoms, attrs, store)

	assert.Equal(t, firstTotal, secondTotal)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].RuleID, second[i].RuleID)
		assert.Equal(t, first[i].Triggered, second[i].Triggered)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestRun_ScoreIdentity(t *testing.T) {
	store := mustStore(t, demoRules())
	symptoms := []entities.Symptom{
		{Normalized: "Persistent headache", Category: "Neurological", Confidence: 0.9},
		{Normalized: "Intermittent dizziness", Category: "Neurological", Confidence: 0.8},
		{Normalized: "Low-grade fever", Category: "Systemic", Confidence: 0.85},
		{Normalized: "Pleuritic chest pain", Category: "Cardiovascular", Confidence: 0.78},
	}

	executions, total := Run(symptoms, nil, store)

	sum := 0.0
	for _, e := range executions {
		sum += e.WeightedScore()
	}
	assert.Equal(t, sum, total)
}

func TestRun_MissingAttributeNeverTriggers(t *testing.T) {
	store := mustStore(t, demoRules()[5:6])
	symptoms := []entities.Symptom{
		{Normalized: "Low-grade fever", Category: "Systemic", Confidence: 0.85},
	}

	executions, total := Run(symptoms, nil, store)
	require.Len(t, executions, 1)
	assert.False(t, executions[0].Triggered)
	assert.Equal(t, 0.0, total)

	// Attribute present and matching fires the rule
	executions, total = Run(symptoms, entities.PatientAttributes{"age": 8}, store)
	assert.True(t, executions[0].Triggered)
	assert.Equal(t, 18.0, total)
}

func TestRun_EmptySymptomList(t *testing.T) {
	store := mustStore(t, demoRules())

	executions, total := Run(nil, entities.PatientAttributes{}, store)

	require.Len(t, executions, store.Len())
	for _, e := range executions {
		assert.False(t, e.Triggered)
	}
	assert.Equal(t, 0.0, total)
	assert.Equal(t, entities.LevelNonUrgent, Classify(total))
}

func TestRun_EmptyStore(t *testing.T) {
	store := mustStore(t, nil)

	executions, total := Run([]entities.Symptom{
		{Normalized: "Pleuritic chest pain", Category: "Cardiovascular", Confidence: 0.78},
	}, nil, store)

	assert.Empty(t, executions)
	assert.Equal(t, 0.0, total)
}
