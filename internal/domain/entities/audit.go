package entities

import "time"

// AuditRecord is the complete, immutable log of one triage evaluation.
// Field names follow the shape consumed by the admin audit UI.
//
// A nurse correction never mutates an existing record: the edited case is
// re-evaluated into a brand-new record with the next revision number for
// the same consult.
type AuditRecord struct {
	ID               string          `json:"id"`
	ConsultID        string          `json:"consultId"`
	Revision         int             `json:"revision"`
	InputSymptoms    []Symptom       `json:"inputSymptoms"`
	RulesExecuted    []RuleExecution `json:"rulesExecuted"`
	FinalTriageLevel TriageLevel     `json:"finalTriageLevel"`
	TotalScore       float64         `json:"totalScore"`
	ExecutionTimeMs  float64         `json:"executionTimeMs"`
	Timestamp        time.Time       `json:"timestamp"`
}

// TriggeredRuleIDs returns the ids of the rules that fired, in store order.
func (a *AuditRecord) TriggeredRuleIDs() []string {
	ids := make([]string, 0, len(a.RulesExecuted))
	for _, r := range a.RulesExecuted {
		if r.Triggered {
			ids = append(ids, r.RuleID)
		}
	}
	return ids
}
