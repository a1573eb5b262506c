package dto

import (
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type GenerateQuestionsResponse struct {
	Questions   []model.Question `json:"questions"`
	InterviewID *uint            `json:"interviewId"`
	Saved       bool             `json:"saved"`
	Offline     bool             `json:"offline"`
	Fallback    bool             `json:"fallback"`
}

type AnswerResponse struct {
	ID              uint      `json:"id"`
	UserID          string    `json:"userId"`
	InterviewID     uint      `json:"interviewId"`
	QuestionID      int       `json:"questionId"`
	AttemptNumber   int       `json:"attemptNumber"`
	QuestionText    string    `json:"question"`
	QuestionType    string    `json:"questionType"`
	AnswerText      string    `json:"answer"`
	RelevanceScore  float64   `json:"relevanceScore"`
	ClarityScore    float64   `json:"clarityScore"`
	DepthScore      float64   `json:"depthScore"`
	FourthAxisScore float64   `json:"fourthAxisScore"`
	FourthAxis      string    `json:"fourthAxis"`
	OverallScore    float64   `json:"overallScore"`
	OverallFeedback string    `json:"overallFeedback"`
	Suggestion      string    `json:"suggestion"`
	Strengths       []string  `json:"strengths"`
	Improvements    []string  `json:"improvements"`
	TimeSpent       *int      `json:"timeSpent,omitempty"`
	IsFallback      bool      `json:"isFallback"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ProgressResponse struct {
	UserID                 string   `json:"userId"`
	TotalInterviews        int      `json:"totalInterviews"`
	CompletedInterviews    int      `json:"completedInterviews"`
	TotalQuestionsAnswered int      `json:"totalQuestionsAnswered"`
	AverageScore           float64  `json:"averageScore"`
	BehavioralSkill        float64  `json:"behavioralSkill"`
	TechnicalSkill         float64  `json:"technicalSkill"`
	SituationalSkill       float64  `json:"situationalSkill"`
	CommunicationSkill     float64  `json:"communicationSkill"`
	CurrentStreak          int      `json:"currentStreak"`
	LongestStreak          int      `json:"longestStreak"`
	LastPracticeDay        *string  `json:"lastPracticeDate"` // YYYY-MM-DD
	Achievements           []string `json:"achievements"`
}

type FeedbackResponse struct {
	Feedback AnswerResponse    `json:"feedback"`
	Progress *ProgressResponse `json:"progress,omitempty"`
}

type InterviewSummaryResponse struct {
	ID            uint      `json:"id"`
	JobRole       string    `json:"jobRole"`
	Company       string    `json:"company"`
	Experience    string    `json:"experience"`
	Difficulty    string    `json:"difficulty"`
	QuestionType  string    `json:"questionType"`
	Status        string    `json:"status"`
	Duration      *int      `json:"duration,omitempty"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type InterviewDetailResponse struct {
	ID           uint             `json:"id"`
	UserID       string           `json:"userId"`
	JobRole      string           `json:"jobRole"`
	Company      string           `json:"company"`
	Experience   string           `json:"experience"`
	Difficulty   string           `json:"difficulty"`
	QuestionType string           `json:"questionType"`
	Questions    []model.Question `json:"questions"`
	Feedback     *string          `json:"feedback,omitempty"`
	Status       string           `json:"status"`
	Duration     *int             `json:"duration,omitempty"`
	Answers      []AnswerResponse `json:"answers"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type QuestionTypeStat struct {
	QuestionType string  `json:"questionType"`
	Count        int64   `json:"count"`
	AverageScore float64 `json:"averageScore"`
}

type DailyScore struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	Answers      int     `json:"answers"`
	AverageScore float64 `json:"averageScore"`
}

type UserStatsResponse struct {
	Progress       ProgressResponse   `json:"progress"`
	RecentAnswers  []AnswerResponse   `json:"recentAnswers"`
	ByQuestionType []QuestionTypeStat `json:"byQuestionType"`
	DailyScores    []DailyScore       `json:"dailyScores"`
}

type SavedQuestionSetResponse struct {
	ID              uint             `json:"id"`
	UserID          string           `json:"userId"`
	InterviewID     *uint            `json:"interviewId,omitempty"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Questions       []model.Question `json:"questions"`
	Tags            []string         `json:"tags"`
	IsFavorite      bool             `json:"isFavorite"`
	PracticeCount   int              `json:"practiceCount"`
	LastPracticedAt *time.Time       `json:"lastPracticedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
