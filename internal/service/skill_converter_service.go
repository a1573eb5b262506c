package service

import (
	"fmt"
	"math"
)

const (
	MinSkillLevel = 1.0
	MaxSkillLevel = 100.0

	// skillLearningRate is how far a skill moves toward a new sample.
	skillLearningRate = 0.2
)

// SkillConverterService maps 0-10 answer scores onto the 1-100 skill scale.
type SkillConverterService interface {
	ToSkillLevel(score float64) (float64, error)
	Blend(current, score float64) float64
}

type skillConverterServiceImpl struct{}

func NewSkillConverterService() SkillConverterService {
	return &skillConverterServiceImpl{}
}

// ToSkillLevel uses a piecewise curve that is steeper in the middle band where
// most answers land.
func (s *skillConverterServiceImpl) ToSkillLevel(score float64) (float64, error) {
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return 0, fmt.Errorf("score %.2f is out of valid range (0-%.0f)", score, MaxScore)
	}

	var level float64
	switch {
	case score <= 3:
		level = 1 + score*7 // 1-22
	case score <= 7:
		level = 22 + (score-3)*12 // 22-70
	default:
		level = 70 + (score-7)*10 // 70-100
	}
	return math.Round(math.Max(MinSkillLevel, math.Min(MaxSkillLevel, level))), nil
}

// Blend moves current a fixed fraction toward the level of score. Invalid
// scores leave the skill unchanged.
func (s *skillConverterServiceImpl) Blend(current, score float64) float64 {
	target, err := s.ToSkillLevel(score)
	if err != nil {
		return current
	}
	next := current + (target-current)*skillLearningRate
	return round2(math.Max(MinSkillLevel, math.Min(MaxSkillLevel, next)))
}
