package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SavedQuestionSet struct {
	ID              uint                          `gorm:"primarykey" json:"id"`
	UserID          string                        `json:"userId" gorm:"size:128;not null;index"`
	InterviewID     *uint                         `json:"interviewId,omitempty" gorm:"index"`
	Name            string                        `json:"name" gorm:"not null"`
	Description     string                        `json:"description" gorm:"type:text"`
	Questions       datatypes.JSONSlice[Question] `json:"questions" gorm:"not null"`
	Tags            datatypes.JSONSlice[string]   `json:"tags"`
	IsFavorite      bool                          `json:"isFavorite" gorm:"not null;default:false"`
	PracticeCount   int                           `json:"practiceCount" gorm:"not null;default:0"`
	LastPracticedAt *time.Time                    `json:"lastPracticedAt,omitempty"`
	CreatedAt       time.Time                     `json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt                `gorm:"index" json:"-"`
}
