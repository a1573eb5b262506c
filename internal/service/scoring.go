package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
)

const (
	MinScore = 0.0
	MaxScore = 10.0
)

// ScoreRecord is the bounded evaluation of one answer.
type ScoreRecord struct {
	Relevance       float64  `json:"relevance"`
	Clarity         float64  `json:"clarity"`
	Depth           float64  `json:"depth"`
	FourthAxis      float64  `json:"fourthAxis"`
	FourthAxisKind  string   `json:"fourthAxisKind"`
	OverallFeedback string   `json:"overallFeedback"`
	Suggestion      string   `json:"suggestion"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Fallback        bool     `json:"fallback"`
}

// Overall is the arithmetic mean of the four sub-scores, clamped to [0,10].
func (r ScoreRecord) Overall() float64 {
	mean := (r.Relevance + r.Clarity + r.Depth + r.FourthAxis) / 4
	return round2(clampScore(mean))
}

func fourthAxisFor(questionType string) string {
	if questionType == model.QuestionTypeBehavioral {
		return model.FourthAxisStarMethod
	}
	return model.FourthAxisCommunication
}

// clampScore maps NaN and infinities to 0 and bounds everything else to [0,10].
func clampScore(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinScore
	}
	return math.Max(MinScore, math.Min(MaxScore, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// flexScore accepts a JSON number or a numeric string. Anything else decodes
// to 0 without failing the surrounding object.
type flexScore struct {
	Value float64
	Set   bool
}

func (f *flexScore) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		f.Value, f.Set = MinScore, false
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.Value, f.Set = clampScore(n), true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "/10")
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f.Value, f.Set = clampScore(v), true
			return nil
		}
	}
	f.Value, f.Set = MinScore, false
	return nil
}

// flexText accepts a string and ignores any other JSON type.
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = flexText(strings.TrimSpace(s))
	}
	return nil
}

// flexList accepts an array of strings or a single string.
type flexList []string

func (l *flexList) UnmarshalJSON(b []byte) error {
	var items []interface{}
	if err := json.Unmarshal(b, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		*l = out
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil && strings.TrimSpace(s) != "" {
		*l = []string{strings.TrimSpace(s)}
	}
	return nil
}
