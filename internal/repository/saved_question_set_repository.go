package repository

import (
	"context"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"gorm.io/gorm"
)

// SavedQuestionSetRepository scopes every mutation to the owning user. A set
// owned by someone else is reported as apperror.ErrNotFound.
type SavedQuestionSetRepository interface {
	Create(ctx context.Context, set *model.SavedQuestionSet) error
	FindByUser(ctx context.Context, userID string, favoritesOnly bool) ([]model.SavedQuestionSet, error)
	FindOwned(ctx context.Context, id uint, userID string) (*model.SavedQuestionSet, error)
	ToggleFavorite(ctx context.Context, id uint, userID string) (*model.SavedQuestionSet, error)
	RecordPractice(ctx context.Context, id uint, userID string, at time.Time) (*model.SavedQuestionSet, error)
	Delete(ctx context.Context, id uint, userID string) error
}

type savedQuestionSetRepository struct {
	db *gorm.DB
}

func NewSavedQuestionSetRepository(db *gorm.DB) SavedQuestionSetRepository {
	return &savedQuestionSetRepository{db: db}
}

func (r *savedQuestionSetRepository) Create(ctx context.Context, set *model.SavedQuestionSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}

func (r *savedQuestionSetRepository) FindByUser(ctx context.Context, userID string, favoritesOnly bool) ([]model.SavedQuestionSet, error) {
	var sets []model.SavedQuestionSet
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if favoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	err := query.Order("created_at DESC, id DESC").Find(&sets).Error
	return sets, err
}

func (r *savedQuestionSetRepository) FindOwned(ctx context.Context, id uint, userID string) (*model.SavedQuestionSet, error) {
	var set model.SavedQuestionSet
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&set).Error
	if err != nil {
		return nil, translate(err)
	}
	return &set, nil
}

func (r *savedQuestionSetRepository) ToggleFavorite(ctx context.Context, id uint, userID string) (*model.SavedQuestionSet, error) {
	return r.updateOwned(ctx, id, userID, map[string]interface{}{
		"is_favorite": gorm.Expr("NOT is_favorite"),
	})
}

func (r *savedQuestionSetRepository) RecordPractice(ctx context.Context, id uint, userID string, at time.Time) (*model.SavedQuestionSet, error) {
	return r.updateOwned(ctx, id, userID, map[string]interface{}{
		"practice_count":    gorm.Expr("practice_count + 1"),
		"last_practiced_at": at,
	})
}

func (r *savedQuestionSetRepository) updateOwned(ctx context.Context, id uint, userID string, fields map[string]interface{}) (*model.SavedQuestionSet, error) {
	res := r.db.WithContext(ctx).Model(&model.SavedQuestionSet{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}
	return r.FindOwned(ctx, id, userID)
}

func (r *savedQuestionSetRepository) Delete(ctx context.Context, id uint, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.SavedQuestionSet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
