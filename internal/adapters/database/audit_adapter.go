package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/repositories"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/clients/postgres"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

const auditTable = "triage_audits"

var auditColumns = []interface{}{
	"id", "consult_id", "revision", "input_symptoms", "rules_executed",
	"final_triage_level", "total_score", "execution_time_ms", "created_at",
}

// AuditAdapter implements the AuditRepository interface on Postgres.
// Symptoms and rule executions are stored as JSONB so the record round-trips
// in exactly the shape the admin UI consumes.
type AuditAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAuditAdapter creates a new audit adapter
func NewAuditAdapter(client *postgres.Client) repositories.AuditRepository {
	return &AuditAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new audit record. Records are insert-only: corrections
// arrive as new revisions, never as updates.
func (a *AuditAdapter) Create(ctx context.Context, record *entities.AuditRecord) error {
	symptoms, err := json.Marshal(record.InputSymptoms)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal input symptoms", err)
	}
	executions, err := json.Marshal(record.RulesExecuted)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal rule executions", err)
	}

	row := goqu.Record{
		"id":                 record.ID,
		"consult_id":         record.ConsultID,
		"revision":           record.Revision,
		"input_symptoms":     symptoms,
		"rules_executed":     executions,
		"final_triage_level": int(record.FinalTriageLevel),
		"total_score":        record.TotalScore,
		"execution_time_ms":  record.ExecutionTimeMs,
		"created_at":         record.Timestamp,
	}

	query, args, err := a.db.Insert(auditTable).Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build audit insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create audit record", err)
	}

	return nil
}

// GetLatestByConsultID retrieves the highest-revision record for a consult
func (a *AuditAdapter) GetLatestByConsultID(ctx context.Context, consultID string) (*entities.AuditRecord, error) {
	query, args, err := a.db.Select(auditColumns...).
		From(auditTable).
		Where(goqu.Ex{"consult_id": consultID}).
		Order(goqu.I("revision").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build audit query", err)
	}

	return a.scanOne(ctx, consultID, query, args)
}

// GetByConsultIDRevision retrieves one specific revision for a consult
func (a *AuditAdapter) GetByConsultIDRevision(ctx context.Context, consultID string, revision int) (*entities.AuditRecord, error) {
	query, args, err := a.db.Select(auditColumns...).
		From(auditTable).
		Where(goqu.Ex{"consult_id": consultID, "revision": revision}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build audit query", err)
	}

	return a.scanOne(ctx, consultID, query, args)
}

// NextRevision returns the revision the next evaluation of this consult
// should carry
func (a *AuditAdapter) NextRevision(ctx context.Context, consultID string) (int, error) {
	query, args, err := a.db.Select(goqu.COALESCE(goqu.MAX("revision"), 0)).
		From(auditTable).
		Where(goqu.Ex{"consult_id": consultID}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build revision query", err)
	}

	var current int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&current); err != nil {
		return 0, apperrors.NewInternalError("failed to query current revision", err)
	}

	return current + 1, nil
}

// ListRecent returns the newest audit records across all consults
func (a *AuditAdapter) ListRecent(ctx context.Context, limit int) ([]entities.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := a.db.Select(auditColumns...).
		From(auditTable).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build audit list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list audit records", err)
	}
	defer rows.Close()

	var records []entities.AuditRecord
	for rows.Next() {
		record, err := scanAuditRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate audit records", err)
	}

	return records, nil
}

func (a *AuditAdapter) scanOne(ctx context.Context, consultID, query string, args []interface{}) (*entities.AuditRecord, error) {
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	record, err := scanAuditRow(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("audit record for consult %s not found", consultID))
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAuditRow(row rowScanner) (*entities.AuditRecord, error) {
	record := &entities.AuditRecord{}
	var symptoms, executions []byte
	var level int

	err := row.Scan(
		&record.ID,
		&record.ConsultID,
		&record.Revision,
		&symptoms,
		&executions,
		&level,
		&record.TotalScore,
		&record.ExecutionTimeMs,
		&record.Timestamp,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan audit record", err)
	}

	record.FinalTriageLevel = entities.TriageLevel(level)

	if err := json.Unmarshal(symptoms, &record.InputSymptoms); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal input symptoms", err)
	}
	if err := json.Unmarshal(executions, &record.RulesExecuted); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal rule executions", err)
	}

	return record, nil
}
