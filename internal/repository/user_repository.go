package repository

import (
	"context"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Ensure(ctx context.Context, userID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Ensure creates the user row if it does not exist yet.
func (r *userRepository) Ensure(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&model.User{ID: userID}).Error
}
