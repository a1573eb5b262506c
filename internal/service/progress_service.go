package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/metrics"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	ProgressSourceRequest   = "request"
	ProgressSourceReconcile = "reconcile"
	ProgressSourceRebuild   = "rebuild"
)

// ProgressService is the only writer of UserProgress. Each answer is folded in
// at most once; answers whose update was lost are picked up by
// ReconcilePending and the whole aggregate can be re-derived with Rebuild.
type ProgressService interface {
	RecordAnswer(ctx context.Context, answer *model.Answer) (*model.UserProgress, error)
	GetProgress(ctx context.Context, userID string) (*model.UserProgress, error)
	Rebuild(ctx context.Context, userID string) (*model.UserProgress, error)
	ReconcilePending(ctx context.Context, grace time.Duration, limit int) (int, error)
}

type progressService struct {
	progressRepo  repository.ProgressRepository
	answerRepo    repository.AnswerRepository
	interviewRepo repository.InterviewRepository
	skills        SkillConverterService
	loc           *time.Location
	maxAttempts   int
	now           func() time.Time
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	answerRepo repository.AnswerRepository,
	interviewRepo repository.InterviewRepository,
	skills SkillConverterService,
	cfg *config.Config,
) ProgressService {
	maxAttempts := cfg.Progress.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &progressService{
		progressRepo:  progressRepo,
		answerRepo:    answerRepo,
		interviewRepo: interviewRepo,
		skills:        skills,
		loc:           cfg.Location(),
		maxAttempts:   maxAttempts,
		now:           time.Now,
	}
}

// load returns the stored row, or the zero state with exists=false.
func (s *progressService) load(ctx context.Context, userID string) (p *model.UserProgress, exists bool, err error) {
	p, err = s.progressRepo.FindByUserID(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return model.NewUserProgress(userID), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load progress for user %s: %w", userID, err)
	}
	return p, true, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*model.UserProgress, error) {
	p, _, err := s.load(ctx, userID)
	return p, err
}

func (s *progressService) interviewFactsFor(ctx context.Context, a *model.Answer) (interviewFacts, error) {
	counts, err := s.interviewRepo.QuestionCounts(ctx, []uint{a.InterviewID})
	if err != nil {
		return interviewFacts{}, err
	}
	before, err := s.answerRepo.DistinctQuestionsUpTo(ctx, a.UserID, a.InterviewID, a.ID-1)
	if err != nil {
		return interviewFacts{}, err
	}
	after, err := s.answerRepo.DistinctQuestionsUpTo(ctx, a.UserID, a.InterviewID, a.ID)
	if err != nil {
		return interviewFacts{}, err
	}
	return factsFromCounts(before, after, counts[a.InterviewID]), nil
}

func (s *progressService) RecordAnswer(ctx context.Context, answer *model.Answer) (*model.UserProgress, error) {
	return s.recordAnswer(ctx, answer, ProgressSourceRequest)
}

func (s *progressService) recordAnswer(ctx context.Context, answer *model.Answer, source string) (*model.UserProgress, error) {
	facts, err := s.interviewFactsFor(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to derive interview facts for answer %d: %w", answer.ID, err)
	}
	sample := sampleFromAnswer(answer, facts)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		current, exists, err := s.load(ctx, answer.UserID)
		if err != nil {
			return nil, err
		}

		next := cloneProgress(current)
		applySample(next, sample, s.loc, s.skills)

		err = s.progressRepo.CompareAndSwap(ctx, repository.ProgressWrite{
			Progress:        next,
			ExpectedVersion: current.Version,
			Exists:          exists,
			AnswerIDs:       []uint{answer.ID},
		})
		switch {
		case err == nil:
			metrics.ObserveProgressApplied(source, 1)
			return next, nil
		case errors.Is(err, repository.ErrAlreadyApplied):
			log.Ctx(ctx).Debug().Uint("answer_id", answer.ID).Msg("Answer already counted in progress")
			p, _, loadErr := s.load(ctx, answer.UserID)
			return p, loadErr
		case errors.Is(err, repository.ErrVersionConflict):
			metrics.ObserveProgressRetry()
			continue
		default:
			return nil, fmt.Errorf("failed to write progress for user %s: %w", answer.UserID, err)
		}
	}
	return nil, apperror.E(apperror.CodeConflict, "ProgressService.RecordAnswer",
		"progress update kept conflicting with concurrent writes", repository.ErrVersionConflict)
}

// Rebuild re-derives the aggregate from the user's full answer history and
// marks every answer as counted.
func (s *progressService) Rebuild(ctx context.Context, userID string) (*model.UserProgress, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		current, exists, err := s.load(ctx, userID)
		if err != nil {
			return nil, err
		}
		answers, err := s.answerRepo.FindByUserOrdered(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load answers for user %s: %w", userID, err)
		}
		if len(answers) == 0 && !exists {
			return current, nil
		}

		next, err := s.fold(ctx, userID, answers)
		if err != nil {
			return nil, err
		}
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt

		ids := make([]uint, len(answers))
		for i := range answers {
			ids[i] = answers[i].ID
		}
		err = s.progressRepo.CompareAndSwap(ctx, repository.ProgressWrite{
			Progress:        next,
			ExpectedVersion: current.Version,
			Exists:          exists,
			AnswerIDs:       ids,
			Rebuild:         true,
		})
		if errors.Is(err, repository.ErrVersionConflict) {
			metrics.ObserveProgressRetry()
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write rebuilt progress for user %s: %w", userID, err)
		}
		metrics.ObserveProgressApplied(ProgressSourceRebuild, len(answers))
		log.Ctx(ctx).Info().Str("user_id", userID).Int("answers", len(answers)).Msg("Progress rebuilt")
		return next, nil
	}
	return nil, apperror.E(apperror.CodeConflict, "ProgressService.Rebuild",
		"progress rebuild kept conflicting with concurrent writes", repository.ErrVersionConflict)
}

// fold computes the aggregate of answers (in id order) from the zero state.
func (s *progressService) fold(ctx context.Context, userID string, answers []model.Answer) (*model.UserProgress, error) {
	interviewIDs := make([]uint, 0)
	seen := map[uint]bool{}
	for _, a := range answers {
		if !seen[a.InterviewID] {
			seen[a.InterviewID] = true
			interviewIDs = append(interviewIDs, a.InterviewID)
		}
	}
	totals, err := s.interviewRepo.QuestionCounts(ctx, interviewIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load interview sizes: %w", err)
	}

	answered := map[uint]map[int]bool{}
	p := model.NewUserProgress(userID)
	for i := range answers {
		a := &answers[i]
		qs := answered[a.InterviewID]
		if qs == nil {
			qs = map[int]bool{}
			answered[a.InterviewID] = qs
		}
		before := len(qs)
		qs[a.QuestionID] = true
		facts := factsFromCounts(before, len(qs), totals[a.InterviewID])
		applySample(p, sampleFromAnswer(a, facts), s.loc, s.skills)
	}
	return p, nil
}

// ReconcilePending folds in answers whose progress update never landed and
// that are older than grace. It returns how many answers were applied.
func (s *progressService) ReconcilePending(ctx context.Context, grace time.Duration, limit int) (int, error) {
	pending, err := s.answerRepo.FindPending(ctx, s.now().Add(-grace), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending answers: %w", err)
	}

	applied := 0
	for i := range pending {
		if _, err := s.recordAnswer(ctx, &pending[i], ProgressSourceReconcile); err != nil {
			log.Ctx(ctx).Error().Err(err).Uint("answer_id", pending[i].ID).Msg("Failed to reconcile answer")
			continue
		}
		applied++
	}
	return applied, nil
}
