package entities

import "time"

// Triage event types
const (
	TriageEventCompleted = "triage.completed"
)

// TriageEvent notifies subscribers (nurse review queue, dashboards) that a
// consult has been evaluated.
type TriageEvent struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	ConsultID  string      `json:"consultId"`
	Revision   int         `json:"revision"`
	Level      TriageLevel `json:"finalTriageLevel"`
	TotalScore float64     `json:"totalScore"`
	Timestamp  time.Time   `json:"timestamp"`
}
