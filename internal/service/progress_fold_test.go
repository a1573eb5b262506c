package service

import (
	"testing"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyStreakSequence(t *testing.T) {
	p := model.NewUserProgress("alice")
	steps := []struct {
		day     time.Time
		current int
		longest int
		last    time.Time
	}{
		{day(2024, 5, 1), 1, 1, day(2024, 5, 1)},
		{day(2024, 5, 2), 2, 2, day(2024, 5, 2)},
		{day(2024, 5, 3), 3, 3, day(2024, 5, 3)},
		{day(2024, 5, 3), 3, 3, day(2024, 5, 3)},  // same day
		{day(2024, 5, 6), 1, 3, day(2024, 5, 6)},  // gap
		{day(2024, 5, 4), 1, 3, day(2024, 5, 6)},  // late replay
		{day(2024, 5, 7), 2, 3, day(2024, 5, 7)},
	}
	for i, st := range steps {
		applyStreak(p, st.day)
		assert.Equal(t, st.current, p.CurrentStreak, "step %d current", i)
		assert.Equal(t, st.longest, p.LongestStreak, "step %d longest", i)
		assert.True(t, st.last.Equal(storedDay(p.LastPracticeDate)), "step %d last day", i)
	}
}

func TestApplyStreakAcrossMonthBoundary(t *testing.T) {
	p := model.NewUserProgress("alice")
	applyStreak(p, day(2024, 2, 28))
	applyStreak(p, day(2024, 2, 29))
	applyStreak(p, day(2024, 3, 1))
	assert.Equal(t, 3, p.CurrentStreak)
}

func TestCalendarDayUsesLocation(t *testing.T) {
	newYork := time.FixedZone("EST", -5*3600)
	at := time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, day(2024, 3, 10), calendarDay(at, time.UTC))
	assert.Equal(t, day(2024, 3, 9), calendarDay(at, newYork))
}

func TestFactsFromCounts(t *testing.T) {
	assert.Equal(t, interviewFacts{StartsInterview: true}, factsFromCounts(0, 1, 3))
	assert.Equal(t, interviewFacts{}, factsFromCounts(1, 1, 3))
	assert.Equal(t, interviewFacts{CompletesInterview: true}, factsFromCounts(2, 3, 3))
	assert.Equal(t, interviewFacts{}, factsFromCounts(3, 3, 3))
	assert.Equal(t, interviewFacts{StartsInterview: true, CompletesInterview: true}, factsFromCounts(0, 1, 1))
	assert.Equal(t, interviewFacts{StartsInterview: true}, factsFromCounts(0, 1, 0))
}

func TestApplySampleRunningAverageAndAchievements(t *testing.T) {
	skills := NewSkillConverterService()
	p := model.NewUserProgress("alice")
	scores := []float64{8, 6, 7, 9.5}
	for i, s := range scores {
		applySample(p, progressSample{
			AnswerID:        uint(i + 1),
			Overall:         s,
			Clarity:         s,
			FourthAxis:      s,
			FourthKind:      model.FourthAxisCommunication,
			QuestionType:    model.QuestionTypeTechnical,
			PracticedAt:     time.Date(2024, 5, 1+i, 12, 0, 0, 0, time.UTC),
			StartsInterview: i == 0,
		}, time.UTC, skills)
	}

	assert.Equal(t, 4, p.TotalQuestionsAnswered)
	assert.InDelta(t, 7.625, p.AverageScore, 1e-9)
	assert.Equal(t, 1, p.TotalInterviews)
	assert.Equal(t, 0, p.CompletedInterviews)
	assert.Equal(t, 4, p.LongestStreak)
	assert.Equal(t, model.DefaultSkillLevel, int(p.BehavioralSkill))
	assert.Greater(t, p.TechnicalSkill, float64(model.DefaultSkillLevel))
	assert.ElementsMatch(t, []string{AchievementFirstAnswer, AchievementStreak3, AchievementHighScore}, []string(p.Achievements))
}

func TestCloneProgressIsDeep(t *testing.T) {
	p := model.NewUserProgress("alice")
	applyStreak(p, day(2024, 1, 1))
	p.Achievements = append(p.Achievements, AchievementFirstAnswer)

	c := cloneProgress(p)
	c.Achievements[0] = "changed"
	applyStreak(c, day(2024, 1, 2))

	assert.Equal(t, AchievementFirstAnswer, p.Achievements[0])
	assert.True(t, day(2024, 1, 1).Equal(storedDay(p.LastPracticeDate)))
}
