package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InterviewStatusInProgress = "in_progress"
	InterviewStatusCompleted  = "completed"
	InterviewStatusAbandoned  = "abandoned"
)

type Interview struct {
	ID           uint                          `gorm:"primarykey" json:"id"`
	UserID       string                        `json:"userId" gorm:"size:128;not null;index"`
	JobRole      string                        `json:"jobRole" gorm:"not null"`
	Company      string                        `json:"company" gorm:"not null"`
	Experience   string                        `json:"experience"`
	Difficulty   string                        `json:"difficulty" gorm:"not null;default:'medium'"`
	QuestionType string                        `json:"questionType" gorm:"not null;default:'all'"`
	Questions    datatypes.JSONSlice[Question] `json:"questions" gorm:"not null"`
	Feedback     *string                       `json:"feedback,omitempty" gorm:"type:text"`
	Status       string                        `json:"status" gorm:"not null;default:'in_progress'"` // "in_progress", "completed", "abandoned"
	Duration     *int                          `json:"duration,omitempty"`                           // seconds
	Answers      []Answer                      `json:"answers,omitempty" gorm:"foreignKey:InterviewID"`
	CreatedAt    time.Time                     `json:"createdAt"`
	UpdatedAt    time.Time                     `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt                `gorm:"index" json:"-"`
}

// FindQuestion looks up a question by its position id within the interview.
func (i *Interview) FindQuestion(id int) (Question, bool) {
	for _, q := range i.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
