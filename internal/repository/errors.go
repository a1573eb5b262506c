package repository

import (
	"errors"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"gorm.io/gorm"
)

var (
	// ErrVersionConflict means another writer changed the progress row first.
	ErrVersionConflict = errors.New("progress version conflict")
	// ErrAlreadyApplied means an answer was already folded into progress.
	ErrAlreadyApplied = errors.New("answer already applied to progress")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
