package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"gorm.io/datatypes"
)

const setNotFound = "saved question set not found"

type BookmarkService interface {
	Save(ctx context.Context, req dto.SaveQuestionSetRequest) (*dto.SavedQuestionSetResponse, error)
	ListForUser(ctx context.Context, userID string, favoritesOnly bool) ([]dto.SavedQuestionSetResponse, error)
	ToggleFavorite(ctx context.Context, setID uint, userID string) (*dto.SavedQuestionSetResponse, error)
	RecordPractice(ctx context.Context, setID uint, userID string) (*dto.SavedQuestionSetResponse, error)
	Delete(ctx context.Context, setID uint, userID string) error
}

type bookmarkService struct {
	userRepo repository.UserRepository
	setRepo  repository.SavedQuestionSetRepository
	now      func() time.Time
}

func NewBookmarkService(userRepo repository.UserRepository, setRepo repository.SavedQuestionSetRepository) BookmarkService {
	return &bookmarkService{userRepo: userRepo, setRepo: setRepo, now: time.Now}
}

// normalizeTags lowercases, trims and dedupes tags.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (s *bookmarkService) Save(ctx context.Context, req dto.SaveQuestionSetRequest) (*dto.SavedQuestionSetResponse, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, in := range req.Questions {
		id := in.ID
		if id == 0 {
			id = i + 1
		}
		questions = append(questions, model.Question{
			ID:         id,
			Question:   strings.TrimSpace(in.Question),
			Type:       in.Type,
			Difficulty: model.NormalizeDifficulty(in.Difficulty),
			Category:   in.Category,
		})
	}

	set := &model.SavedQuestionSet{
		UserID:      req.UserID,
		InterviewID: req.InterviewID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Questions:   datatypes.JSONSlice[model.Question](questions),
		Tags:        datatypes.JSONSlice[string](normalizeTags(req.Tags)),
	}
	if err := s.userRepo.Ensure(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to ensure user %s: %w", req.UserID, err)
	}
	if err := s.setRepo.Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to save question set: %w", err)
	}
	resp := dto.ToSavedQuestionSetResponse(set)
	return &resp, nil
}

func (s *bookmarkService) ListForUser(ctx context.Context, userID string, favoritesOnly bool) ([]dto.SavedQuestionSetResponse, error) {
	sets, err := s.setRepo.FindByUser(ctx, userID, favoritesOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved question sets: %w", err)
	}
	out := make([]dto.SavedQuestionSetResponse, 0, len(sets))
	for i := range sets {
		out = append(out, dto.ToSavedQuestionSetResponse(&sets[i]))
	}
	return out, nil
}

func (s *bookmarkService) ToggleFavorite(ctx context.Context, setID uint, userID string) (*dto.SavedQuestionSetResponse, error) {
	set, err := s.setRepo.ToggleFavorite(ctx, setID, userID)
	if err != nil {
		return nil, ownedErr("BookmarkService.ToggleFavorite", err)
	}
	resp := dto.ToSavedQuestionSetResponse(set)
	return &resp, nil
}

func (s *bookmarkService) RecordPractice(ctx context.Context, setID uint, userID string) (*dto.SavedQuestionSetResponse, error) {
	set, err := s.setRepo.RecordPractice(ctx, setID, userID, s.now())
	if err != nil {
		return nil, ownedErr("BookmarkService.RecordPractice", err)
	}
	resp := dto.ToSavedQuestionSetResponse(set)
	return &resp, nil
}

func (s *bookmarkService) Delete(ctx context.Context, setID uint, userID string) error {
	if err := s.setRepo.Delete(ctx, setID, userID); err != nil {
		return ownedErr("BookmarkService.Delete", err)
	}
	return nil
}

func ownedErr(op string, err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.E(apperror.CodeNotFound, op, setNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
