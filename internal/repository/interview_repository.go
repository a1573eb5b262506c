package repository

import (
	"context"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	Create(ctx context.Context, interview *model.Interview) error
	FindByID(ctx context.Context, id uint) (*model.Interview, error)
	FindByIDWithAnswers(ctx context.Context, id uint) (*model.Interview, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]model.Interview, error)
	UpdateCompletion(ctx context.Context, id uint, userID string, updates InterviewCompletion) (*model.Interview, error)
	QuestionCounts(ctx context.Context, ids []uint) (map[uint]int, error)
}

// InterviewCompletion holds the only mutable interview fields.
type InterviewCompletion struct {
	Status   string
	Duration *int
	Feedback *string
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

func (r *interviewRepository) FindByID(ctx context.Context, id uint) (*model.Interview, error) {
	var interview model.Interview
	if err := r.db.WithContext(ctx).First(&interview, id).Error; err != nil {
		return nil, translate(err)
	}
	return &interview, nil
}

func (r *interviewRepository) FindByIDWithAnswers(ctx context.Context, id uint) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id ASC, attempt_number ASC")
		}).
		First(&interview, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &interview, nil
}

func (r *interviewRepository) FindByUser(ctx context.Context, userID string, limit int) ([]model.Interview, error) {
	var interviews []model.Interview
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) UpdateCompletion(ctx context.Context, id uint, userID string, updates InterviewCompletion) (*model.Interview, error) {
	fields := map[string]interface{}{"status": updates.Status}
	if updates.Duration != nil {
		fields["duration"] = *updates.Duration
	}
	if updates.Feedback != nil {
		fields["feedback"] = *updates.Feedback
	}

	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *interviewRepository) QuestionCounts(ctx context.Context, ids []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var interviews []model.Interview
	err := r.db.WithContext(ctx).Unscoped().Select("id", "questions").Where("id IN ?", ids).Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	for _, iv := range interviews {
		counts[iv.ID] = len(iv.Questions)
	}
	return counts, nil
}
