// Package evaluation implements the deterministic symptom-to-triage rule
// evaluator: a predicate language over normalized symptoms, an ordered rule
// store, a pure scoring engine, and the score-band classifier.
package evaluation

import (
	"strings"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

// Case is one immutable input to the engine: the symptom set plus optional
// patient attributes.
type Case struct {
	Symptoms []entities.Symptom
	Attrs    entities.PatientAttributes
}

// Predicate is a compiled boolean expression over a case. Evaluation is pure
// and total: no predicate errors or panics on well-formed trees, whatever the
// input data looks like.
type Predicate interface {
	Eval(c Case) bool
}

// Symptom fields addressable from conditions.
const (
	fieldSymptom  = "symptom"
	fieldCategory = "category"
)

func symptomField(s entities.Symptom, field string) string {
	switch field {
	case fieldCategory:
		return s.Category
	default:
		return s.Normalized
	}
}

type cmpOp string

const (
	opEq cmpOp = "=="
	opNe cmpOp = "!="
	opGt cmpOp = ">"
	opGe cmpOp = ">="
	opLt cmpOp = "<"
	opLe cmpOp = "<="
)

func (op cmpOp) compare(a, b float64) bool {
	switch op {
	case opEq:
		return a == b
	case opNe:
		return a != b
	case opGt:
		return a > b
	case opGe:
		return a >= b
	case opLt:
		return a < b
	case opLe:
		return a <= b
	}
	return false
}

// containsPred matches when any symptom's field contains the substring,
// case-insensitively. An empty symptom set never matches.
type containsPred struct {
	field  string
	substr string
}

func (p containsPred) Eval(c Case) bool {
	needle := strings.ToLower(p.substr)
	for _, s := range c.Symptoms {
		if strings.Contains(strings.ToLower(symptomField(s, p.field)), needle) {
			return true
		}
	}
	return false
}

// equalsPred matches when any symptom's field equals the value,
// case-insensitively.
type equalsPred struct {
	field string
	value string
}

func (p equalsPred) Eval(c Case) bool {
	for _, s := range c.Symptoms {
		if strings.EqualFold(symptomField(s, p.field), p.value) {
			return true
		}
	}
	return false
}

// countPred counts symptoms whose field equals the filter value and compares
// the count against a threshold.
type countPred struct {
	field  string
	filter string
	op     cmpOp
	n      float64
}

func (p countPred) Eval(c Case) bool {
	count := 0
	for _, s := range c.Symptoms {
		if strings.EqualFold(symptomField(s, p.field), p.filter) {
			count++
		}
	}
	return p.op.compare(float64(count), p.n)
}

// countDistinctPred counts distinct values of a field across all symptoms,
// used for multi-system involvement detection.
type countDistinctPred struct {
	field string
	op    cmpOp
	n     float64
}

func (p countDistinctPred) Eval(c Case) bool {
	seen := make(map[string]struct{}, len(c.Symptoms))
	for _, s := range c.Symptoms {
		seen[strings.ToLower(symptomField(s, p.field))] = struct{}{}
	}
	return p.op.compare(float64(len(seen)), p.n)
}

// attrPred compares a patient attribute against a number. A missing attribute
// evaluates to false: incomplete data must never fire a rule.
type attrPred struct {
	name string
	op   cmpOp
	n    float64
}

func (p attrPred) Eval(c Case) bool {
	if c.Attrs == nil {
		return false
	}
	value, ok := c.Attrs[p.name]
	if !ok {
		return false
	}
	return p.op.compare(value, p.n)
}

// Compound predicates evaluate children left to right with short-circuiting.

type andPred struct {
	children []Predicate
}

func (p andPred) Eval(c Case) bool {
	for _, child := range p.children {
		if !child.Eval(c) {
			return false
		}
	}
	return true
}

type orPred struct {
	children []Predicate
}

func (p orPred) Eval(c Case) bool {
	for _, child := range p.children {
		if child.Eval(c) {
			return true
		}
	}
	return false
}

type notPred struct {
	child Predicate
}

func (p notPred) Eval(c Case) bool {
	return !p.child.Eval(c)
}
