package evaluation

import (
	"time"

	"github.com/google/uuid"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

// BuildAuditRecord assembles one full evaluation into an immutable audit
// record. The input slices are copied so the record owns its data outright;
// later edits to the caller's slices cannot alter an already-built audit.
//
// elapsedMs must be measured around the Run call only, so the recorded
// latency reflects pure rule evaluation and nothing else.
func BuildAuditRecord(
	consultID string,
	revision int,
	symptoms []entities.Symptom,
	executions []entities.RuleExecution,
	totalScore float64,
	level entities.TriageLevel,
	elapsedMs float64,
) *entities.AuditRecord {
	inputs := make([]entities.Symptom, len(symptoms))
	copy(inputs, symptoms)

	executed := make([]entities.RuleExecution, len(executions))
	copy(executed, executions)

	return &entities.AuditRecord{
		ID:               uuid.New().String(),
		ConsultID:        consultID,
		Revision:         revision,
		InputSymptoms:    inputs,
		RulesExecuted:    executed,
		FinalTriageLevel: level,
		TotalScore:       totalScore,
		ExecutionTimeMs:  elapsedMs,
		Timestamp:        time.Now().UTC(),
	}
}
