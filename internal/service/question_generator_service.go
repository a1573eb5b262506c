package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/cache"
	"github.com/dhanyabad11/PrepForge-Backend/internal/metrics"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
)

type GenerateParams struct {
	JobRole    string
	Company    string
	Experience string
	Difficulty string
	Count      int
	Type       string // "behavioral", "technical", "situational" or "all"
}

// GeneratedQuestions is never empty-handed: Fallback reports that the
// questions came from the static bank.
type GeneratedQuestions struct {
	Questions []model.Question `json:"questions"`
	Fallback  bool             `json:"fallback"`
}

type QuestionGeneratorService interface {
	Generate(ctx context.Context, params GenerateParams) GeneratedQuestions
}

type questionGeneratorService struct {
	llm  TextGenerator
	memo *cache.Memoizer
	cfg  *config.Config
}

func NewQuestionGeneratorService(llm TextGenerator, memo *cache.Memoizer, cfg *config.Config) QuestionGeneratorService {
	return &questionGeneratorService{llm: llm, memo: memo, cfg: cfg}
}

func (p GenerateParams) normalized() GenerateParams {
	p.Difficulty = model.NormalizeDifficulty(strings.ToLower(strings.TrimSpace(p.Difficulty)))
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	if p.Type == "" || !model.IsQuestionType(p.Type) {
		p.Type = model.QuestionTypeAll
	}
	if p.Count <= 0 {
		p.Count = DefaultQuestionCount
	}
	if p.Count > MaxQuestionCount {
		p.Count = MaxQuestionCount
	}
	p.Experience = strings.TrimSpace(p.Experience)
	return p
}

func (p GenerateParams) cacheKey() string {
	h := sha256.New()
	for _, part := range []string{p.JobRole, p.Company, p.Experience, p.Difficulty, p.Type, fmt.Sprint(p.Count)} {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(part))))
		h.Write([]byte{0})
	}
	return "questions:" + hex.EncodeToString(h.Sum(nil))
}

func (s *questionGeneratorService) Generate(ctx context.Context, params GenerateParams) GeneratedQuestions {
	params = params.normalized()

	result, hit := cache.GetOrCompute(ctx, s.memo, params.cacheKey(), s.cfg.Cache.QuestionTTL,
		func(ctx context.Context) (GeneratedQuestions, bool) {
			questions, err := s.generateWithLLM(ctx, params)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("job_role", params.JobRole).Msg("Question generation failed, using question bank")
				metrics.ObserveGeneration(metrics.ComponentQuestions, metrics.OutcomeFallback)
				return GeneratedQuestions{
					Questions: fallbackQuestions(params.Difficulty, params.Type, params.Count),
					Fallback:  true,
				}, false
			}
			metrics.ObserveGeneration(metrics.ComponentQuestions, metrics.OutcomeSuccess)
			return GeneratedQuestions{Questions: questions}, true
		})
	if hit {
		metrics.ObserveGeneration(metrics.ComponentQuestions, metrics.OutcomeCacheHit)
	}
	return result
}

func (s *questionGeneratorService) generateWithLLM(ctx context.Context, params GenerateParams) ([]model.Question, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Gemini.Timeout)
	defer cancel()

	raw, err := s.llm.GenerateText(callCtx, buildQuestionPrompt(params))
	if err != nil {
		return nil, err
	}
	questions, err := parseGeneratedQuestions(raw, params)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no usable questions in response")
	}
	return questions, nil
}

func buildQuestionPrompt(p GenerateParams) string {
	var sb strings.Builder
	sb.WriteString("You are an experienced interviewer preparing a candidate.\n")
	sb.WriteString(fmt.Sprintf("Generate %d interview questions for the role of %s at %s.\n", p.Count, p.JobRole, p.Company))
	if p.Experience != "" {
		sb.WriteString(fmt.Sprintf("Candidate experience level: %s.\n", p.Experience))
	}
	sb.WriteString(fmt.Sprintf("Difficulty: %s.\n", p.Difficulty))
	if p.Type == model.QuestionTypeAll {
		sb.WriteString("Mix behavioral, technical and situational questions.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Every question must be of type %q.\n", p.Type))
	}
	sb.WriteString(`Respond with only a JSON array, no prose, where each item is:
{"question": "<text>", "type": "behavioral|technical|situational", "difficulty": "easy|medium|hard", "category": "<short topic>"}`)
	return sb.String()
}

type generatedQuestion struct {
	Question   flexText `json:"question"`
	Text       flexText `json:"text"`
	Type       flexText `json:"type"`
	Difficulty flexText `json:"difficulty"`
	Category   flexText `json:"category"`
}

// parseGeneratedQuestions keeps well-formed items matching the requested type,
// truncated to the requested count and renumbered from 1.
func parseGeneratedQuestions(raw string, p GenerateParams) ([]model.Question, error) {
	body := extractJSON(raw, '[', ']')
	if body == "" {
		return nil, fmt.Errorf("response contains no JSON array")
	}
	var items []generatedQuestion
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	out := make([]model.Question, 0, p.Count)
	for _, it := range items {
		if len(out) >= p.Count {
			break
		}
		text := string(it.Question)
		if text == "" {
			text = string(it.Text)
		}
		qType := strings.ToLower(string(it.Type))
		if text == "" || !model.IsQuestionType(qType) {
			continue
		}
		if p.Type != model.QuestionTypeAll && qType != p.Type {
			continue
		}
		difficulty := strings.ToLower(string(it.Difficulty))
		if difficulty != model.DifficultyEasy && difficulty != model.DifficultyMedium && difficulty != model.DifficultyHard {
			difficulty = p.Difficulty
		}
		category := string(it.Category)
		if category == "" {
			category = "General"
		}
		out = append(out, model.Question{
			ID:         len(out) + 1,
			Question:   text,
			Type:       qType,
			Difficulty: difficulty,
			Category:   category,
		})
	}
	return out, nil
}
