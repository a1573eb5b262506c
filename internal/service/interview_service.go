package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const defaultHistoryLimit = 50

type InterviewService interface {
	GenerateInterview(ctx context.Context, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]dto.InterviewSummaryResponse, error)
	GetDetails(ctx context.Context, interviewID uint) (*dto.InterviewDetailResponse, error)
	Complete(ctx context.Context, interviewID uint, req dto.CompleteInterviewRequest) (*dto.InterviewDetailResponse, error)
}

type interviewService struct {
	generator     QuestionGeneratorService
	userRepo      repository.UserRepository
	interviewRepo repository.InterviewRepository
}

func NewInterviewService(
	generator QuestionGeneratorService,
	userRepo repository.UserRepository,
	interviewRepo repository.InterviewRepository,
) InterviewService {
	return &interviewService{
		generator:     generator,
		userRepo:      userRepo,
		interviewRepo: interviewRepo,
	}
}

// GenerateInterview always returns questions. A failed save degrades the
// response to saved=false instead of failing the request.
func (s *interviewService) GenerateInterview(ctx context.Context, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	params := GenerateParams{
		JobRole:    strings.TrimSpace(req.JobRole),
		Company:    strings.TrimSpace(req.Company),
		Experience: req.Experience,
		Difficulty: req.Difficulty,
		Count:      req.NumberOfQuestions,
		Type:       req.QuestionType,
	}.normalized()
	generated := s.generator.Generate(ctx, params)

	resp := &dto.GenerateQuestionsResponse{
		Questions: generated.Questions,
		Fallback:  generated.Fallback,
	}

	interview := &model.Interview{
		UserID:       req.UserID,
		JobRole:      params.JobRole,
		Company:      params.Company,
		Experience:   params.Experience,
		Difficulty:   params.Difficulty,
		QuestionType: params.Type,
		Questions:    datatypes.JSONSlice[model.Question](generated.Questions),
		Status:       model.InterviewStatusInProgress,
	}
	if err := s.save(ctx, interview); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", req.UserID).Msg("Failed to save interview, returning unsaved questions")
		resp.Offline = true
		return resp, nil
	}

	resp.InterviewID = &interview.ID
	resp.Saved = true
	return resp, nil
}

func (s *interviewService) save(ctx context.Context, interview *model.Interview) error {
	if err := s.userRepo.Ensure(ctx, interview.UserID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return fmt.Errorf("create interview: %w", err)
	}
	return nil
}

func (s *interviewService) GetHistory(ctx context.Context, userID string, limit int) ([]dto.InterviewSummaryResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}
	interviews, err := s.interviewRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews for user %s: %w", userID, err)
	}
	out := make([]dto.InterviewSummaryResponse, 0, len(interviews))
	for i := range interviews {
		out = append(out, dto.ToInterviewSummary(&interviews[i]))
	}
	return out, nil
}

func (s *interviewService) GetDetails(ctx context.Context, interviewID uint) (*dto.InterviewDetailResponse, error) {
	interview, err := s.interviewRepo.FindByIDWithAnswers(ctx, interviewID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.E(apperror.CodeNotFound, "InterviewService.GetDetails", "interview not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load interview %d: %w", interviewID, err)
	}
	resp := dto.ToInterviewDetail(interview)
	return &resp, nil
}

func (s *interviewService) Complete(ctx context.Context, interviewID uint, req dto.CompleteInterviewRequest) (*dto.InterviewDetailResponse, error) {
	status := req.Status
	if status == "" {
		status = model.InterviewStatusCompleted
	}
	_, err := s.interviewRepo.UpdateCompletion(ctx, interviewID, req.UserID, repository.InterviewCompletion{
		Status:   status,
		Duration: req.Duration,
		Feedback: req.Feedback,
	})
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.E(apperror.CodeNotFound, "InterviewService.Complete", "interview not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete interview %d: %w", interviewID, err)
	}
	return s.GetDetails(ctx, interviewID)
}
