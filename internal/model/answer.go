package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	FourthAxisCommunication = "communication"
	FourthAxisStarMethod    = "star_method"
)

// Answer is one scored attempt at a question. Rows are append-only; a repeated
// submission for the same question gets the next AttemptNumber.
type Answer struct {
	ID              uint                        `gorm:"primarykey" json:"id"`
	UserID          string                      `json:"userId" gorm:"size:128;not null;index;uniqueIndex:idx_answer_attempt,priority:1"`
	InterviewID     uint                        `json:"interviewId" gorm:"not null;index;uniqueIndex:idx_answer_attempt,priority:2"`
	QuestionID      int                         `json:"questionId" gorm:"not null;uniqueIndex:idx_answer_attempt,priority:3"`
	AttemptNumber   int                         `json:"attemptNumber" gorm:"not null;default:1;uniqueIndex:idx_answer_attempt,priority:4"`
	QuestionText    string                      `json:"question" gorm:"type:text;not null"`
	QuestionType    string                      `json:"questionType" gorm:"not null;default:'technical'"`
	AnswerText      string                      `json:"answer" gorm:"type:text;not null"`
	RelevanceScore  float64                     `json:"relevanceScore"`
	ClarityScore    float64                     `json:"clarityScore"`
	DepthScore      float64                     `json:"depthScore"`
	FourthAxisScore float64                     `json:"fourthAxisScore"`
	FourthAxis      string                      `json:"fourthAxis"` // "communication" or "star_method"
	OverallScore    float64                     `json:"overallScore"`
	OverallFeedback string                      `json:"overallFeedback" gorm:"type:text"`
	Suggestion      string                      `json:"suggestion" gorm:"type:text"`
	Strengths       datatypes.JSONSlice[string] `json:"strengths"`
	Improvements    datatypes.JSONSlice[string] `json:"improvements"`
	TimeSpent       *int                        `json:"timeSpent,omitempty"` // seconds
	IsFallback      bool                        `json:"isFallback"`
	ProgressApplied bool                        `json:"-" gorm:"not null;default:false;index"`
	CreatedAt       time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}
