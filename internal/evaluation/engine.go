package evaluation

import (
	"time"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

// Run evaluates every rule in the store against one case, in the exact order
// the rules were authored. Each rule produces one RuleExecution whether or not
// it triggered; the aggregate score is the sum of baseScore*weight over the
// triggered rules, unclamped.
//
// Rules are mutually independent pure functions of the same input, so the
// output is identical across repeated runs for the same case and store.
func Run(symptoms []entities.Symptom, attrs entities.PatientAttributes, store *Store) ([]entities.RuleExecution, float64) {
	c := Case{Symptoms: symptoms, Attrs: attrs}

	executions := make([]entities.RuleExecution, 0, len(store.rules))
	totalScore := 0.0

	for _, rule := range store.rules {
		triggered := rule.pred.Eval(c)

		score := 0.0
		if triggered {
			score = rule.def.BaseScore
			totalScore += score * rule.def.Weight
		}

		executions = append(executions, entities.RuleExecution{
			RuleID:    rule.def.RuleID,
			RuleName:  rule.def.RuleName,
			Condition: rule.def.Condition,
			Triggered: triggered,
			Score:     score,
			Weight:    rule.def.Weight,
			Timestamp: time.Now().UTC(),
		})
	}

	return executions, totalScore
}
