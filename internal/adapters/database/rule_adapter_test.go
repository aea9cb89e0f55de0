package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/clients/postgres"
)

func TestRuleAdapter_LoadRules_PreservesOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRuleAdapter(postgres.NewClientFromDB(db))

	rows := sqlmock.NewRows([]string{"rule_id", "rule_name", "condition", "base_score", "weight"}).
		AddRow("RULE-001", "Cardiac Symptom Check", "IF category == 'Cardiovascular' AND symptom CONTAINS 'chest'", 25.0, 1.5).
		AddRow("RULE-002", "Neurological Cluster Detection", "IF COUNT(category == 'Neurological') >= 2", 15.0, 1.2)

	mock.ExpectQuery(`SELECT .+ FROM "triage_rules"`).WillReturnRows(rows)

	defs, err := adapter.LoadRules(context.Background())
	require.NoError(t, err)

	require.Len(t, defs, 2)
	assert.Equal(t, "RULE-001", defs[0].RuleID)
	assert.Equal(t, 1.5, defs[0].Weight)
	assert.Equal(t, "RULE-002", defs[1].RuleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleAdapter_LoadRules_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRuleAdapter(postgres.NewClientFromDB(db))

	mock.ExpectQuery(`SELECT .+ FROM "triage_rules"`).
		WillReturnRows(sqlmock.NewRows([]string{"rule_id", "rule_name", "condition", "base_score", "weight"}))

	defs, err := adapter.LoadRules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, defs)
}
