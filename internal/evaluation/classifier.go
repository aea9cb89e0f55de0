package evaluation

import (
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

// Classify maps an aggregate score to the 1-5 triage level. The score is
// clamped to [0,100] first: engine totals are unclamped, so anything above
// 100 is level 1 and a (theoretically impossible) negative total is level 5.
//
// Bands are inclusive and partition the range with no gaps:
//
//	 0-20  level 5 Non-Urgent
//	21-40  level 4 Less Urgent
//	41-60  level 3 Urgent
//	61-80  level 2 Emergent
//	81-100 level 1 Resuscitation
func Classify(score float64) entities.TriageLevel {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	switch {
	case score <= 20:
		return entities.LevelNonUrgent
	case score <= 40:
		return entities.LevelLessUrgent
	case score <= 60:
		return entities.LevelUrgent
	case score <= 80:
		return entities.LevelEmergent
	default:
		return entities.LevelResuscitation
	}
}
