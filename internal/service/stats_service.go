package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"github.com/jinzhu/copier"
)

const (
	recentAnswersLimit = 10
	trendDays          = 30
)

type StatsService interface {
	GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
}

type statsService struct {
	progress   ProgressService
	answerRepo repository.AnswerRepository
	loc        *time.Location
	now        func() time.Time
}

func NewStatsService(progress ProgressService, answerRepo repository.AnswerRepository, cfg *config.Config) StatsService {
	return &statsService{
		progress:   progress,
		answerRepo: answerRepo,
		loc:        cfg.Location(),
		now:        time.Now,
	}
}

func (s *statsService) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	progress, err := s.progress.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.answerRepo.FindRecentByUser(ctx, userID, recentAnswersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent answers: %w", err)
	}
	byType, err := s.answerRepo.StatsByQuestionType(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate answers by type: %w", err)
	}
	since := calendarDay(s.now(), s.loc).AddDate(0, 0, -(trendDays - 1))
	// calendarDay is UTC midnight of the local day; shift back into loc
	sinceLocal := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, s.loc)
	window, err := s.answerRepo.FindByUserSince(ctx, userID, sinceLocal)
	if err != nil {
		return nil, fmt.Errorf("failed to load score trend: %w", err)
	}

	resp := &dto.UserStatsResponse{
		Progress:       dto.ToProgressResponse(progress),
		RecentAnswers:  dto.ToAnswerResponses(recent),
		ByQuestionType: []dto.QuestionTypeStat{},
		DailyScores:    dailyScores(window, s.loc),
	}
	if err := copier.Copy(&resp.ByQuestionType, &byType); err != nil {
		return nil, fmt.Errorf("failed to map type stats: %w", err)
	}
	for i := range resp.ByQuestionType {
		resp.ByQuestionType[i].AverageScore = round2(resp.ByQuestionType[i].AverageScore)
	}
	return resp, nil
}

// dailyScores buckets answers by practice day, in ascending date order.
func dailyScores(answers []model.Answer, loc *time.Location) []dto.DailyScore {
	out := []dto.DailyScore{}
	index := map[string]int{}
	sums := []float64{}
	for _, a := range answers {
		day := calendarDay(a.CreatedAt, loc).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(out)
			index[day] = i
			out = append(out, dto.DailyScore{Date: day})
			sums = append(sums, 0)
		}
		out[i].Answers++
		sums[i] += a.OverallScore
	}
	for i := range out {
		out[i].AverageScore = round2(sums[i] / float64(out[i].Answers))
	}
	return out
}
