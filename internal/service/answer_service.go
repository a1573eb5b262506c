package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxAttemptNumberRetries = 3

// AnswerService scores and stores answers. The answer row is committed before
// progress is updated; a failed progress update is logged and left for
// reconciliation.
type AnswerService interface {
	SubmitAnswer(ctx context.Context, req dto.GenerateFeedbackRequest) (*dto.FeedbackResponse, error)
}

type answerService struct {
	feedback      FeedbackService
	progress      ProgressService
	userRepo      repository.UserRepository
	interviewRepo repository.InterviewRepository
	answerRepo    repository.AnswerRepository
}

func NewAnswerService(
	feedback FeedbackService,
	progress ProgressService,
	userRepo repository.UserRepository,
	interviewRepo repository.InterviewRepository,
	answerRepo repository.AnswerRepository,
) AnswerService {
	return &answerService{
		feedback:      feedback,
		progress:      progress,
		userRepo:      userRepo,
		interviewRepo: interviewRepo,
		answerRepo:    answerRepo,
	}
}

func (s *answerService) SubmitAnswer(ctx context.Context, req dto.GenerateFeedbackRequest) (*dto.FeedbackResponse, error) {
	const op = "AnswerService.SubmitAnswer"

	interview, err := s.interviewRepo.FindByID(ctx, req.InterviewID)
	if errors.Is(err, apperror.ErrNotFound) || (err == nil && interview.UserID != req.UserID) {
		return nil, apperror.E(apperror.CodeNotFound, op, "interview not found", apperror.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load interview %d: %w", req.InterviewID, err)
	}
	question, ok := interview.FindQuestion(req.QuestionID)
	if !ok {
		return nil, apperror.E(apperror.CodeInvalidArgument, op,
			fmt.Sprintf("question %d is not part of interview %d", req.QuestionID, req.InterviewID), nil)
	}

	record := s.feedback.Evaluate(ctx, req.Question, req.Answer, question.Type)

	answer := &model.Answer{
		UserID:          req.UserID,
		InterviewID:     req.InterviewID,
		QuestionID:      req.QuestionID,
		QuestionText:    req.Question,
		QuestionType:    question.Type,
		AnswerText:      req.Answer,
		RelevanceScore:  record.Relevance,
		ClarityScore:    record.Clarity,
		DepthScore:      record.Depth,
		FourthAxisScore: record.FourthAxis,
		FourthAxis:      record.FourthAxisKind,
		OverallScore:    record.Overall(),
		OverallFeedback: record.OverallFeedback,
		Suggestion:      record.Suggestion,
		Strengths:       datatypes.JSONSlice[string](record.Strengths),
		Improvements:    datatypes.JSONSlice[string](record.Improvements),
		TimeSpent:       req.TimeSpent,
		IsFallback:      record.Fallback,
	}
	if err := s.persist(ctx, answer); err != nil {
		return nil, apperror.E(apperror.CodeInternal, op, "failed to save answer", err)
	}

	resp := &dto.FeedbackResponse{Feedback: dto.ToAnswerResponse(answer)}
	progress, err := s.progress.RecordAnswer(ctx, answer)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("answer_id", answer.ID).Str("user_id", answer.UserID).
			Msg("Progress update failed, answer left for reconciliation")
		return resp, nil
	}
	p := dto.ToProgressResponse(progress)
	resp.Progress = &p
	return resp, nil
}

// persist appends the answer as the next attempt for its question, retrying
// when a concurrent submission takes the same attempt number.
func (s *answerService) persist(ctx context.Context, answer *model.Answer) error {
	if err := s.userRepo.Ensure(ctx, answer.UserID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	var err error
	for i := 0; i < maxAttemptNumberRetries; i++ {
		answer.AttemptNumber, err = s.answerRepo.NextAttemptNumber(ctx, answer.UserID, answer.InterviewID, answer.QuestionID)
		if err != nil {
			return fmt.Errorf("next attempt number: %w", err)
		}
		err = s.answerRepo.Create(ctx, answer)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		answer.ID = 0
	}
	return fmt.Errorf("create answer: %w", err)
}
