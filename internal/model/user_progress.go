package model

import (
	"time"

	"gorm.io/datatypes"
)

const DefaultSkillLevel = 50

// UserProgress is the running aggregate of a user's scored answers. Version is
// bumped on every write and used for compare-and-swap updates.
type UserProgress struct {
	ID                     uint                        `gorm:"primarykey" json:"id"`
	UserID                 string                      `json:"userId" gorm:"size:128;not null;uniqueIndex"`
	TotalInterviews        int                         `json:"totalInterviews" gorm:"not null;default:0"`
	CompletedInterviews    int                         `json:"completedInterviews" gorm:"not null;default:0"`
	TotalQuestionsAnswered int                         `json:"totalQuestionsAnswered" gorm:"not null;default:0"`
	AverageScore           float64                     `json:"averageScore" gorm:"not null;default:0"`
	BehavioralSkill        float64                     `json:"behavioralSkill" gorm:"not null;default:50"`
	TechnicalSkill         float64                     `json:"technicalSkill" gorm:"not null;default:50"`
	SituationalSkill       float64                     `json:"situationalSkill" gorm:"not null;default:50"`
	CommunicationSkill     float64                     `json:"communicationSkill" gorm:"not null;default:50"`
	CurrentStreak          int                         `json:"currentStreak" gorm:"not null;default:0"`
	LongestStreak          int                         `json:"longestStreak" gorm:"not null;default:0"`
	LastPracticeDate       *datatypes.Date             `json:"lastPracticeDate"`
	Achievements           datatypes.JSONSlice[string] `json:"achievements"`
	Version                int64                       `json:"-" gorm:"not null;default:0"`
	CreatedAt              time.Time                   `json:"createdAt"`
	UpdatedAt              time.Time                   `json:"updatedAt"`
}

// NewUserProgress returns the zero state of a user that has never practiced.
func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{
		UserID:             userID,
		BehavioralSkill:    DefaultSkillLevel,
		TechnicalSkill:     DefaultSkillLevel,
		SituationalSkill:   DefaultSkillLevel,
		CommunicationSkill: DefaultSkillLevel,
		Achievements:       datatypes.JSONSlice[string]{},
	}
}

func (p *UserProgress) HasAchievement(tag string) bool {
	for _, a := range p.Achievements {
		if a == tag {
			return true
		}
	}
	return false
}
