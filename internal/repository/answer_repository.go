package repository

import (
	"context"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error
	FindByID(ctx context.Context, id uint) (*model.Answer, error)
	NextAttemptNumber(ctx context.Context, userID string, interviewID uint, questionID int) (int, error)
	FindByUserOrdered(ctx context.Context, userID string) ([]model.Answer, error)
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]model.Answer, error)
	FindByUserSince(ctx context.Context, userID string, since time.Time) ([]model.Answer, error)
	DistinctQuestionsUpTo(ctx context.Context, userID string, interviewID uint, upToID uint) (int, error)
	FindPending(ctx context.Context, createdBefore time.Time, limit int) ([]model.Answer, error)
	StatsByQuestionType(ctx context.Context, userID string) ([]QuestionTypeStat, error)
}

type QuestionTypeStat struct {
	QuestionType string  `json:"questionType"`
	Count        int64   `json:"count"`
	AverageScore float64 `json:"averageScore"`
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) FindByID(ctx context.Context, id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.WithContext(ctx).First(&answer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &answer, nil
}

func (r *answerRepository) NextAttemptNumber(ctx context.Context, userID string, interviewID uint, questionID int) (int, error) {
	var maxAttempt int
	err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Select("COALESCE(MAX(attempt_number), 0)").
		Where("user_id = ? AND interview_id = ? AND question_id = ?", userID, interviewID, questionID).
		Scan(&maxAttempt).Error
	if err != nil {
		return 0, err
	}
	return maxAttempt + 1, nil
}

// FindByUserOrdered returns the full answer history in insertion order.
func (r *answerRepository) FindByUserOrdered(ctx context.Context, userID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Select("id", "created_at", "overall_score").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}

// DistinctQuestionsUpTo counts distinct questions of an interview the user
// answered in rows with id <= upToID.
func (r *answerRepository) DistinctQuestionsUpTo(ctx context.Context, userID string, interviewID uint, upToID uint) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("user_id = ? AND interview_id = ? AND id <= ?", userID, interviewID, upToID).
		Distinct("question_id").
		Count(&n).Error
	return int(n), err
}

// FindPending returns answers not yet folded into progress, oldest first.
func (r *answerRepository) FindPending(ctx context.Context, createdBefore time.Time, limit int) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Where("progress_applied = ? AND created_at < ?", false, createdBefore).
		Order("id ASC").
		Limit(limit).
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) StatsByQuestionType(ctx context.Context, userID string) ([]QuestionTypeStat, error) {
	var stats []QuestionTypeStat
	err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Select("question_type, COUNT(*) AS count, AVG(overall_score) AS average_score").
		Where("user_id = ?", userID).
		Group("question_type").
		Order("question_type").
		Scan(&stats).Error
	return stats, err
}
