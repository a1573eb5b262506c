package repository

import (
	"context"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.UserProgress, error)
	CompareAndSwap(ctx context.Context, w ProgressWrite) error
}

// ProgressWrite describes one versioned progress write together with the
// answers it accounts for.
type ProgressWrite struct {
	Progress        *model.UserProgress
	ExpectedVersion int64
	// Exists is false when no row was found at read time.
	Exists    bool
	AnswerIDs []uint
	// Rebuild marks answers applied regardless of their current state.
	Rebuild bool
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindByUserID(ctx context.Context, userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, translate(err)
	}
	return &progress, nil
}

// CompareAndSwap writes w.Progress only if the stored version still equals
// w.ExpectedVersion (or the row is still absent), and flips the answers'
// progress_applied marker in the same transaction. It returns
// ErrVersionConflict when another writer won and ErrAlreadyApplied when one of
// the answers was already counted.
func (r *progressRepository) CompareAndSwap(ctx context.Context, w ProgressWrite) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(w.AnswerIDs) > 0 {
			mark := tx.Model(&model.Answer{}).Where("id IN ?", w.AnswerIDs)
			if !w.Rebuild {
				mark = mark.Where("progress_applied = ?", false)
			}
			res := mark.Update("progress_applied", true)
			if res.Error != nil {
				return res.Error
			}
			if !w.Rebuild && res.RowsAffected != int64(len(w.AnswerIDs)) {
				return ErrAlreadyApplied
			}
		}

		p := w.Progress
		p.Version = w.ExpectedVersion + 1

		if !w.Exists {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(p)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrVersionConflict
			}
			return nil
		}

		res := tx.Model(&model.UserProgress{}).
			Where("user_id = ? AND version = ?", p.UserID, w.ExpectedVersion).
			Updates(map[string]interface{}{
				"total_interviews":         p.TotalInterviews,
				"completed_interviews":     p.CompletedInterviews,
				"total_questions_answered": p.TotalQuestionsAnswered,
				"average_score":            p.AverageScore,
				"behavioral_skill":         p.BehavioralSkill,
				"technical_skill":          p.TechnicalSkill,
				"situational_skill":        p.SituationalSkill,
				"communication_skill":      p.CommunicationSkill,
				"current_streak":           p.CurrentStreak,
				"longest_streak":           p.LongestStreak,
				"last_practice_date":       p.LastPracticeDate,
				"achievements":             p.Achievements,
				"version":                  p.Version,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
}
