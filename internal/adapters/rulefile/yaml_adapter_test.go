package rulefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

const sampleRules = `
rules:
  - ruleId: RULE-001
    ruleName: Cardiac Symptom Check
    condition: "IF category == 'Cardiovascular' AND symptom CONTAINS 'chest'"
    baseScore: 25
    weight: 1.5
  - ruleId: RULE-002
    ruleName: Neurological Cluster Detection
    condition: "IF COUNT(category == 'Neurological') >= 2"
    baseScore: 15
    weight: 1.2
`

func writeTempRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLAdapter_LoadRules(t *testing.T) {
	adapter := NewYAMLAdapter(writeTempRules(t, sampleRules))

	defs, err := adapter.LoadRules(context.Background())
	require.NoError(t, err)

	require.Len(t, defs, 2)
	assert.Equal(t, "RULE-001", defs[0].RuleID)
	assert.Equal(t, "Cardiac Symptom Check", defs[0].RuleName)
	assert.Equal(t, 25.0, defs[0].BaseScore)
	assert.Equal(t, 1.2, defs[1].Weight)
}

func TestYAMLAdapter_LoadRules_MissingFile(t *testing.T) {
	adapter := NewYAMLAdapter(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := adapter.LoadRules(context.Background())
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, appErr.Type)
}

func TestYAMLAdapter_LoadRules_MalformedYAML(t *testing.T) {
	adapter := NewYAMLAdapter(writeTempRules(t, "rules: [what"))

	_, err := adapter.LoadRules(context.Background())
	assert.Error(t, err)
}
