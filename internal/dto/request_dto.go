package dto

type GenerateQuestionsRequest struct {
	JobRole           string `json:"jobRole" binding:"required,max=200"`
	Company           string `json:"company" binding:"required,max=200"`
	Experience        string `json:"experience" binding:"omitempty,max=100"`
	Difficulty        string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	NumberOfQuestions int    `json:"numberOfQuestions" binding:"omitempty,min=1,max=20"`
	QuestionType      string `json:"questionType" binding:"omitempty,oneof=behavioral technical situational all"`
	UserID            string `json:"userId" binding:"required,max=128"`
}

type GenerateFeedbackRequest struct {
	Question    string `json:"question" binding:"required,max=2000"`
	Answer      string `json:"answer" binding:"required,max=20000"`
	UserID      string `json:"userId" binding:"required,max=128"`
	InterviewID uint   `json:"interviewId" binding:"required"`
	QuestionID  int    `json:"questionId" binding:"required,min=1"`
	TimeSpent   *int   `json:"timeSpent" binding:"omitempty,min=0"` // seconds
}

type CompleteInterviewRequest struct {
	UserID   string  `json:"userId" binding:"required,max=128"`
	Status   string  `json:"status" binding:"omitempty,oneof=completed abandoned"`
	Duration *int    `json:"duration" binding:"omitempty,min=0"`
	Feedback *string `json:"feedback" binding:"omitempty,max=10000"`
}

type QuestionInput struct {
	ID         int    `json:"id" binding:"omitempty,min=1"`
	Question   string `json:"question" binding:"required,max=2000"`
	Type       string `json:"type" binding:"required,oneof=behavioral technical situational"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Category   string `json:"category" binding:"omitempty,max=100"`
}

type SaveQuestionSetRequest struct {
	UserID      string          `json:"userId" binding:"required,max=128"`
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
	InterviewID *uint           `json:"interviewId"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,max=50,dive"`
	Tags        []string        `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// OwnerRequest identifies the caller for ownership-scoped bookmark mutations.
type OwnerRequest struct {
	UserID string `json:"userId" form:"userId" binding:"required,max=128"`
}
