package entities

import "time"

// RuleDefinition is one declarative triage rule as authored by clinical
// administrators. The condition is the human-readable string form; it is
// compiled into a predicate tree once, at store load time.
type RuleDefinition struct {
	RuleID    string  `json:"ruleId" db:"rule_id" yaml:"ruleId"`
	RuleName  string  `json:"ruleName" db:"rule_name" yaml:"ruleName"`
	Condition string  `json:"condition" db:"condition" yaml:"condition"`
	BaseScore float64 `json:"baseScore" db:"base_score" yaml:"baseScore"`
	Weight    float64 `json:"weight" db:"weight" yaml:"weight"`
}

// RuleExecution records the outcome of one rule against one case. Every rule
// in the store produces exactly one record per evaluation, triggered or not.
type RuleExecution struct {
	RuleID    string    `json:"ruleId"`
	RuleName  string    `json:"ruleName"`
	Condition string    `json:"condition"`
	Triggered bool      `json:"triggered"`
	Score     float64   `json:"score"`
	Weight    float64   `json:"weight"`
	Timestamp time.Time `json:"timestamp"`
}

// WeightedScore is this rule's contribution to the aggregate total.
func (r *RuleExecution) WeightedScore() float64 {
	if !r.Triggered {
		return 0
	}
	return r.Score * r.Weight
}
