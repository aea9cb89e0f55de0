package entities

// TriageLevel is the discrete 1-5 priority classification, 1 = most urgent.
type TriageLevel int

const (
	LevelResuscitation TriageLevel = 1
	LevelEmergent      TriageLevel = 2
	LevelUrgent        TriageLevel = 3
	LevelLessUrgent    TriageLevel = 4
	LevelNonUrgent     TriageLevel = 5
)

var levelNames = map[TriageLevel]string{
	LevelResuscitation: "Resuscitation",
	LevelEmergent:      "Emergent",
	LevelUrgent:        "Urgent",
	LevelLessUrgent:    "Less Urgent",
	LevelNonUrgent:     "Non-Urgent",
}

var levelActions = map[TriageLevel]string{
	LevelResuscitation: "CRITICAL: Immediate resuscitation. Dispatch ambulance / ER transfer.",
	LevelEmergent:      "EMERGENT: Physician evaluation within 15 minutes.",
	LevelUrgent:        "URGENT: Evaluate within 1 hour.",
	LevelLessUrgent:    "LESS URGENT: Evaluate within 2 hours.",
	LevelNonUrgent:     "ROUTINE: Schedule standard intake.",
}

// Name returns the display name for the level.
func (l TriageLevel) Name() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Unknown"
}

// RecommendedAction returns the care recommendation shown alongside the level.
func (l TriageLevel) RecommendedAction() string {
	if action, ok := levelActions[l]; ok {
		return action
	}
	return ""
}

// IsValid checks if the level is one of the defined constants.
func (l TriageLevel) IsValid() bool {
	return l >= LevelResuscitation && l <= LevelNonUrgent
}
