package mastery

// Level is a user's mastery of a document, derived from the average score
// across all of their attempts on it.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// Level thresholds on the average score, in percent.
const (
	ExpertThreshold       = 90.0
	AdvancedThreshold     = 75.0
	IntermediateThreshold = 60.0
)

// LevelFor maps an average score in [0, 100] to a level.
func LevelFor(average float64) Level {
	switch {
	case average >= ExpertThreshold:
		return LevelExpert
	case average >= AdvancedThreshold:
		return LevelAdvanced
	case average >= IntermediateThreshold:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// Rank orders levels from 0 (beginner) to 3 (expert). Unknown levels rank -1.
func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 0
	case LevelIntermediate:
		return 1
	case LevelAdvanced:
		return 2
	case LevelExpert:
		return 3
	default:
		return -1
	}
}

// DisplayName returns the capitalized level name.
func (l Level) DisplayName() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	case LevelExpert:
		return "Expert"
	default:
		return string(l)
	}
}

// LevelChange records a mastery level change caused by an attempt.
type LevelChange struct {
	DocumentID string
	From       Level // empty on the first attempt
	To         Level
}

// Promoted reports whether the change moved the user up.
func (c LevelChange) Promoted() bool {
	return c.To.Rank() > c.From.Rank()
}
