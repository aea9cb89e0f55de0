package entities

import "fmt"

// Symptom is one normalized, categorized symptom produced by the external
// intake/normalization step. The evaluator treats it as read-only input.
type Symptom struct {
	Normalized string  `json:"normalized" db:"normalized"`
	Category   string  `json:"category" db:"category"`
	Confidence float64 `json:"confidence" db:"confidence"`
	Verified   bool    `json:"verified" db:"verified"`
}

// Validate enforces the closed symptom schema at the system boundary.
// Loosely-typed payloads are rejected here, never propagated to the engine.
func (s *Symptom) Validate() error {
	if s.Normalized == "" {
		return fmt.Errorf("symptom normalized text is required")
	}
	if s.Category == "" {
		return fmt.Errorf("symptom category is required")
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("symptom confidence %.3f is outside [0,1]", s.Confidence)
	}
	return nil
}

// PatientAttributes holds auxiliary numeric facts some rules key on,
// e.g. {"age": 8} for the pediatric-age rule. Absent attributes never
// cause a rule to fire.
type PatientAttributes map[string]float64
