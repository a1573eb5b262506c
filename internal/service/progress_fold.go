package service

import (
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"gorm.io/datatypes"
)

const (
	AchievementFirstAnswer        = "first_answer"
	AchievementTenAnswers         = "ten_answers"
	AchievementFiftyAnswers       = "fifty_answers"
	AchievementHundredAnswers     = "hundred_answers"
	AchievementStreak3            = "streak_3"
	AchievementStreak7            = "streak_7"
	AchievementStreak30           = "streak_30"
	AchievementHighScore          = "high_score"
	AchievementFirstInterviewDone = "first_interview_completed"

	highScoreThreshold = 9.0
)

// progressSample is everything the aggregate needs to know about one answer.
type progressSample struct {
	AnswerID     uint
	Overall      float64
	Clarity      float64
	FourthAxis   float64
	FourthKind   string
	QuestionType string
	PracticedAt  time.Time

	StartsInterview    bool
	CompletesInterview bool
}

func sampleFromAnswer(a *model.Answer, facts interviewFacts) progressSample {
	return progressSample{
		AnswerID:           a.ID,
		Overall:            a.OverallScore,
		Clarity:            a.ClarityScore,
		FourthAxis:         a.FourthAxisScore,
		FourthKind:         a.FourthAxis,
		QuestionType:       a.QuestionType,
		PracticedAt:        a.CreatedAt,
		StartsInterview:    facts.StartsInterview,
		CompletesInterview: facts.CompletesInterview,
	}
}

type interviewFacts struct {
	StartsInterview    bool
	CompletesInterview bool
}

// factsFromCounts derives interview milestones from the number of distinct
// questions answered before and after an answer.
func factsFromCounts(before, after, total int) interviewFacts {
	return interviewFacts{
		StartsInterview:    before == 0,
		CompletesInterview: total > 0 && before < total && after >= total,
	}
}

// calendarDay is the practice day of t in loc, as midnight UTC.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func storedDay(d *datatypes.Date) time.Time {
	y, m, dd := time.Time(*d).Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// applyStreak updates the streak for a practice on day. A day earlier than the
// stored one leaves the streak and date untouched.
func applyStreak(p *model.UserProgress, day time.Time) {
	switch {
	case p.LastPracticeDate == nil:
		p.CurrentStreak = 1
	default:
		last := storedDay(p.LastPracticeDate)
		gap := int(day.Sub(last).Hours() / 24)
		switch {
		case gap < 0:
			return
		case gap == 0:
			if p.CurrentStreak == 0 {
				p.CurrentStreak = 1
			}
		case gap == 1:
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
	}
	d := datatypes.Date(day)
	p.LastPracticeDate = &d
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
}

// applySample folds one scored answer into p. It is the single definition of
// the aggregate used by both incremental updates and rebuilds.
func applySample(p *model.UserProgress, s progressSample, loc *time.Location, skills SkillConverterService) {
	n := float64(p.TotalQuestionsAnswered)
	p.AverageScore = (p.AverageScore*n + s.Overall) / (n + 1)
	p.TotalQuestionsAnswered++

	if s.StartsInterview {
		p.TotalInterviews++
	}
	if s.CompletesInterview {
		p.CompletedInterviews++
	}

	switch s.QuestionType {
	case model.QuestionTypeBehavioral:
		p.BehavioralSkill = skills.Blend(p.BehavioralSkill, s.Overall)
	case model.QuestionTypeTechnical:
		p.TechnicalSkill = skills.Blend(p.TechnicalSkill, s.Overall)
	case model.QuestionTypeSituational:
		p.SituationalSkill = skills.Blend(p.SituationalSkill, s.Overall)
	}
	communication := s.Clarity
	if s.FourthKind == model.FourthAxisCommunication {
		communication = s.FourthAxis
	}
	p.CommunicationSkill = skills.Blend(p.CommunicationSkill, communication)

	applyStreak(p, calendarDay(s.PracticedAt, loc))
	awardAchievements(p, s)
}

func awardAchievements(p *model.UserProgress, s progressSample) {
	award := func(tag string, ok bool) {
		if ok && !p.HasAchievement(tag) {
			p.Achievements = append(p.Achievements, tag)
		}
	}
	award(AchievementFirstAnswer, p.TotalQuestionsAnswered >= 1)
	award(AchievementTenAnswers, p.TotalQuestionsAnswered >= 10)
	award(AchievementFiftyAnswers, p.TotalQuestionsAnswered >= 50)
	award(AchievementHundredAnswers, p.TotalQuestionsAnswered >= 100)
	award(AchievementStreak3, p.LongestStreak >= 3)
	award(AchievementStreak7, p.LongestStreak >= 7)
	award(AchievementStreak30, p.LongestStreak >= 30)
	award(AchievementHighScore, s.Overall >= highScoreThreshold)
	award(AchievementFirstInterviewDone, p.CompletedInterviews >= 1)
}

func cloneProgress(p *model.UserProgress) *model.UserProgress {
	c := *p
	c.Achievements = append(datatypes.JSONSlice[string]{}, p.Achievements...)
	if p.LastPracticeDate != nil {
		d := *p.LastPracticeDate
		c.LastPracticeDate = &d
	}
	return &c
}
