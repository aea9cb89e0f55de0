package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/providers"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/repositories"
	"github.com/Adeen16/Rural-Clinic-AI/internal/evaluation"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/observability"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

// EvaluateInput carries one triage request through the service layer.
type EvaluateInput struct {
	ConsultID  string
	Symptoms   []entities.Symptom
	Attributes entities.PatientAttributes
}

// TriageService runs the rule engine over a consult, classifies the result
// and persists the audit record for later review.
type TriageService struct {
	rules     *evaluation.ActiveStore
	auditRepo repositories.AuditRepository
	eventBus  providers.EventBus
	metrics   *observability.Metrics
}

func NewTriageService(rules *evaluation.ActiveStore, auditRepo repositories.AuditRepository) *TriageService {
	return &TriageService{
		rules:     rules,
		auditRepo: auditRepo,
	}
}

// SetEventBus enables publishing of triage completion events.
func (s *TriageService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetMetrics enables recording of evaluation metrics.
func (s *TriageService) SetMetrics(m *observability.Metrics) {
	s.metrics = m
}

// Evaluate validates the input, runs every active rule against the symptom
// list and returns the persisted audit record. A consult that was evaluated
// before gets the next revision number; earlier records are never modified.
func (s *TriageService) Evaluate(ctx context.Context, input EvaluateInput) (*entities.AuditRecord, error) {
	ctx, span := observability.StartSpan(ctx, "TriageService.Evaluate")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	if err := validateInput(&input); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	revision, err := s.auditRepo.NextRevision(ctx, input.ConsultID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to allocate audit revision", err)
	}

	store := s.rules.Current()

	start := time.Now()
	executions, totalScore := evaluation.Run(input.Symptoms, input.Attributes, store)
	elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0

	level := evaluation.Classify(totalScore)

	record := evaluation.BuildAuditRecord(input.ConsultID, revision, input.Symptoms, executions, totalScore, level, elapsedMs)

	if err := s.auditRepo.Create(ctx, record); err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to persist audit record", err)
	}

	observability.SetSpanAttributes(span,
		attribute.String("triage.consult_id", record.ConsultID),
		attribute.Int("triage.revision", record.Revision),
		attribute.Int("triage.level", int(record.FinalTriageLevel)),
		attribute.Float64("triage.total_score", record.TotalScore),
	)
	if s.metrics != nil {
		observability.RecordEvaluationMetric(ctx, s.metrics, int(record.FinalTriageLevel), elapsedMs)
	}

	s.publishCompleted(ctx, record)

	logger.Info().
		Str("consult_id", record.ConsultID).
		Int("revision", record.Revision).
		Int("triage_level", int(record.FinalTriageLevel)).
		Float64("total_score", record.TotalScore).
		Float64("execution_time_ms", record.ExecutionTimeMs).
		Msg("Triage evaluation completed")

	return record, nil
}

// GetAudit returns the audit record for a consult. With revision 0 the
// latest revision is returned.
func (s *TriageService) GetAudit(ctx context.Context, consultID string, revision int) (*entities.AuditRecord, error) {
	ctx, span := observability.StartSpan(ctx, "TriageService.GetAudit")
	defer span.End()

	consultID = strings.TrimSpace(consultID)
	if consultID == "" {
		err := apperrors.NewValidationError("consultId is required")
		observability.RecordError(span, err)
		return nil, err
	}
	if revision < 0 {
		err := apperrors.NewValidationError("revision must be positive")
		observability.RecordError(span, err)
		return nil, err
	}

	var (
		record *entities.AuditRecord
		err    error
	)
	if revision == 0 {
		record, err = s.auditRepo.GetLatestByConsultID(ctx, consultID)
	} else {
		record, err = s.auditRepo.GetByConsultIDRevision(ctx, consultID, revision)
	}
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return record, nil
}

// ListAudits returns the most recent audit records across all consults.
func (s *TriageService) ListAudits(ctx context.Context, limit int) ([]entities.AuditRecord, error) {
	ctx, span := observability.StartSpan(ctx, "TriageService.ListAudits")
	defer span.End()

	records, err := s.auditRepo.ListRecent(ctx, limit)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return records, nil
}

func (s *TriageService) publishCompleted(ctx context.Context, record *entities.AuditRecord) {
	if s.eventBus == nil {
		return
	}

	event := &entities.TriageEvent{
		ID:         uuid.New().String(),
		Type:       entities.TriageEventCompleted,
		ConsultID:  record.ConsultID,
		Revision:   record.Revision,
		Level:      record.FinalTriageLevel,
		TotalScore: record.TotalScore,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.eventBus.Publish(ctx, providers.EventChannelTriageCompleted, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("consult_id", record.ConsultID).
			Msg("Failed to publish triage completion event")
	}
}

func validateInput(input *EvaluateInput) error {
	input.ConsultID = strings.TrimSpace(input.ConsultID)
	if input.ConsultID == "" {
		input.ConsultID = "CONSULT-" + uuid.New().String()
	}

	for i := range input.Symptoms {
		if err := input.Symptoms[i].Validate(); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("symptom %d: %v", i, err))
		}
	}

	for name := range input.Attributes {
		if strings.TrimSpace(name) == "" {
			return apperrors.NewValidationError("patient attribute name must not be empty")
		}
	}

	return nil
}
