package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/clients/postgres"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *AuditAdapter) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := NewAuditAdapter(postgres.NewClientFromDB(db)).(*AuditAdapter)
	return db, mock, adapter
}

func sampleRecord() *entities.AuditRecord {
	return &entities.AuditRecord{
		ID:        "rec-1",
		ConsultID: "CONSULT-1042",
		Revision:  1,
		InputSymptoms: []entities.Symptom{
			{Normalized: "Pleuritic chest pain", Category: "Cardiovascular", Confidence: 0.78, Verified: true},
		},
		RulesExecuted: []entities.RuleExecution{
			{RuleID: "RULE-001", RuleName: "Cardiac Symptom Check", Condition: "IF category == 'Cardiovascular' AND symptom CONTAINS 'chest'", Triggered: true, Score: 25, Weight: 1.5, Timestamp: time.Now().UTC()},
		},
		FinalTriageLevel: entities.LevelUrgent,
		TotalScore:       37.5,
		ExecutionTimeMs:  2.4,
		Timestamp:        time.Now().UTC(),
	}
}

func auditRows(t *testing.T, record *entities.AuditRecord) *sqlmock.Rows {
	t.Helper()
	symptoms, err := json.Marshal(record.InputSymptoms)
	require.NoError(t, err)
	executions, err := json.Marshal(record.RulesExecuted)
	require.NoError(t, err)

	return sqlmock.NewRows([]string{
		"id", "consult_id", "revision", "input_symptoms", "rules_executed",
		"final_triage_level", "total_score", "execution_time_ms", "created_at",
	}).AddRow(
		record.ID, record.ConsultID, record.Revision, symptoms, executions,
		int(record.FinalTriageLevel), record.TotalScore, record.ExecutionTimeMs, record.Timestamp,
	)
}

func TestAuditAdapter_Create(t *testing.T) {
	db, mock, adapter := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO "triage_audits"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_GetLatestByConsultID(t *testing.T) {
	db, mock, adapter := setupMockDB(t)
	defer db.Close()

	record := sampleRecord()
	mock.ExpectQuery(`SELECT .+ FROM "triage_audits"`).
		WillReturnRows(auditRows(t, record))

	got, err := adapter.GetLatestByConsultID(context.Background(), record.ConsultID)
	require.NoError(t, err)

	assert.Equal(t, record.ConsultID, got.ConsultID)
	assert.Equal(t, record.TotalScore, got.TotalScore)
	assert.Equal(t, entities.LevelUrgent, got.FinalTriageLevel)
	require.Len(t, got.RulesExecuted, 1)
	assert.True(t, got.RulesExecuted[0].Triggered)
	require.Len(t, got.InputSymptoms, 1)
	assert.Equal(t, "Pleuritic chest pain", got.InputSymptoms[0].Normalized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_GetLatestByConsultID_NotFound(t *testing.T) {
	db, mock, adapter := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM "triage_audits"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "consult_id", "revision", "input_symptoms", "rules_executed",
			"final_triage_level", "total_score", "execution_time_ms", "created_at",
		}))

	_, err := adapter.GetLatestByConsultID(context.Background(), "CONSULT-MISSING")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestAuditAdapter_NextRevision(t *testing.T) {
	db, mock, adapter := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))

	next, err := adapter.NextRevision(context.Background(), "CONSULT-1042")
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

func TestAuditAdapter_ListRecent(t *testing.T) {
	db, mock, adapter := setupMockDB(t)
	defer db.Close()

	record := sampleRecord()
	mock.ExpectQuery(`SELECT .+ FROM "triage_audits"`).
		WillReturnRows(auditRows(t, record))

	records, err := adapter.ListRecent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}
