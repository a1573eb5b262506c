package model

const (
	QuestionTypeBehavioral  = "behavioral"
	QuestionTypeTechnical   = "technical"
	QuestionTypeSituational = "situational"
	QuestionTypeAll         = "all"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is stored inline in an interview or saved set. Its ID is only
// unique within the owning list.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Type       string `json:"type"` // "behavioral", "technical", "situational"
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

func IsQuestionType(t string) bool {
	switch t {
	case QuestionTypeBehavioral, QuestionTypeTechnical, QuestionTypeSituational:
		return true
	}
	return false
}

func NormalizeDifficulty(d string) string {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	}
	return DifficultyMedium
}
