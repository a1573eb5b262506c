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
	shortAnswerWords = 20
	longAnswerWords  = 300

	shortAnswerScore   = 3.0
	longAnswerScore    = 6.0
	defaultAnswerScore = 7.0
)

// FeedbackService turns a question and answer into a bounded ScoreRecord. It
// never fails: upstream problems resolve to a length-based fallback.
type FeedbackService interface {
	Evaluate(ctx context.Context, question, answer, questionType string) ScoreRecord
}

type feedbackService struct {
	llm  TextGenerator
	memo *cache.Memoizer
	cfg  *config.Config
}

func NewFeedbackService(llm TextGenerator, memo *cache.Memoizer, cfg *config.Config) FeedbackService {
	return &feedbackService{llm: llm, memo: memo, cfg: cfg}
}

func feedbackCacheKey(question, answer, questionType string) string {
	h := sha256.New()
	h.Write([]byte(questionType))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(question)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(answer)))
	return "feedback:" + hex.EncodeToString(h.Sum(nil))
}

func (s *feedbackService) Evaluate(ctx context.Context, question, answer, questionType string) ScoreRecord {
	key := feedbackCacheKey(question, answer, questionType)
	record, hit := cache.GetOrCompute(ctx, s.memo, key, s.cfg.Cache.FeedbackTTL,
		func(ctx context.Context) (ScoreRecord, bool) {
			rec, err := s.evaluateWithLLM(ctx, question, answer, questionType)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("Answer evaluation failed, using heuristic feedback")
				metrics.ObserveGeneration(metrics.ComponentFeedback, metrics.OutcomeFallback)
				return heuristicFeedback(answer, questionType), false
			}
			metrics.ObserveGeneration(metrics.ComponentFeedback, metrics.OutcomeSuccess)
			return rec, true
		})
	if hit {
		metrics.ObserveGeneration(metrics.ComponentFeedback, metrics.OutcomeCacheHit)
	}
	return record
}

func (s *feedbackService) evaluateWithLLM(ctx context.Context, question, answer, questionType string) (ScoreRecord, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Gemini.Timeout)
	defer cancel()

	raw, err := s.llm.GenerateText(callCtx, buildFeedbackPrompt(question, answer, questionType))
	if err != nil {
		return ScoreRecord{}, err
	}
	return parseEvaluation(raw, questionType)
}

func buildFeedbackPrompt(question, answer, questionType string) string {
	fourth := `"communication": <0-10, how well the answer is communicated>`
	if fourthAxisFor(questionType) != model.FourthAxisCommunication {
		fourth = `"starMethod": <0-10, use of Situation, Task, Action, Result>`
	}

	var sb strings.Builder
	sb.WriteString("You are an expert interview coach. Evaluate the candidate's answer.\n\n")
	sb.WriteString("Question:\n---\n")
	sb.WriteString(question)
	sb.WriteString("\n---\n\nAnswer:\n---\n")
	sb.WriteString(answer)
	sb.WriteString("\n---\n\n")
	sb.WriteString("Respond with only a JSON object, no prose, in this shape:\n")
	sb.WriteString(fmt.Sprintf(`{
  "relevance": <0-10>,
  "clarity": <0-10>,
  "depth": <0-10>,
  %s,
  "overallFeedback": "<2-3 sentences>",
  "suggestion": "<one concrete improvement>",
  "strengths": ["<strength>"],
  "improvements": ["<improvement>"]
}`, fourth))
	return sb.String()
}

type rawEvaluation struct {
	Relevance       flexScore `json:"relevance"`
	Clarity         flexScore `json:"clarity"`
	Depth           flexScore `json:"depth"`
	Communication   flexScore `json:"communication"`
	StarMethod      flexScore `json:"starMethod"`
	OverallFeedback flexText  `json:"overallFeedback"`
	Feedback        flexText  `json:"feedback"`
	Suggestion      flexText  `json:"suggestion"`
	Strengths       flexList  `json:"strengths"`
	Improvements    flexList  `json:"improvements"`
}

// parseEvaluation normalizes a model response. Numeric fields that are
// missing or unparseable become 0 and every score is clamped to [0,10]. Only a
// response without a parseable JSON object is an error.
func parseEvaluation(raw, questionType string) (ScoreRecord, error) {
	body := extractJSON(raw, '{', '}')
	if body == "" {
		return ScoreRecord{}, fmt.Errorf("response contains no JSON object")
	}
	var ev rawEvaluation
	if err := json.Unmarshal([]byte(body), &ev); err != nil {
		return ScoreRecord{}, fmt.Errorf("parse evaluation: %w", err)
	}

	kind := fourthAxisFor(questionType)
	fourth := ev.Communication
	if kind != model.FourthAxisCommunication && ev.StarMethod.Set {
		fourth = ev.StarMethod
	}

	feedback := string(ev.OverallFeedback)
	if feedback == "" {
		feedback = string(ev.Feedback)
	}
	if feedback == "" {
		feedback = "Evaluation completed."
	}

	rec := ScoreRecord{
		Relevance:       round2(ev.Relevance.Value),
		Clarity:         round2(ev.Clarity.Value),
		Depth:           round2(ev.Depth.Value),
		FourthAxis:      round2(fourth.Value),
		FourthAxisKind:  kind,
		OverallFeedback: feedback,
		Suggestion:      string(ev.Suggestion),
		Strengths:       []string(ev.Strengths),
		Improvements:    []string(ev.Improvements),
	}
	if rec.Strengths == nil {
		rec.Strengths = []string{}
	}
	if rec.Improvements == nil {
		rec.Improvements = []string{}
	}
	return rec, nil
}

// heuristicFeedback scores by answer length with all four axes equal.
func heuristicFeedback(answer, questionType string) ScoreRecord {
	words := len(strings.Fields(answer))
	rec := ScoreRecord{
		FourthAxisKind: fourthAxisFor(questionType),
		Fallback:       true,
		Strengths:      []string{},
		Improvements:   []string{},
	}

	var score float64
	switch {
	case words < shortAnswerWords:
		score = shortAnswerScore
		rec.OverallFeedback = "Your answer is too short to demonstrate your experience. Expand on the context, your actions and the outcome."
		rec.Suggestion = "Aim for a structured answer of at least a few sentences with a concrete example."
		rec.Improvements = []string{"Add more detail", "Include a specific example"}
	case words > longAnswerWords:
		score = longAnswerScore
		rec.OverallFeedback = "Your answer covers a lot of ground but is long. Interviewers value focused responses."
		rec.Suggestion = "Trim to the most relevant points and lead with the key result."
		rec.Strengths = []string{"Thorough coverage"}
		rec.Improvements = []string{"Be more concise"}
	default:
		score = defaultAnswerScore
		rec.OverallFeedback = "Good answer with a reasonable level of detail. Detailed AI feedback is temporarily unavailable."
		rec.Suggestion = "Quantify your impact where you can and tie the answer back to the role."
		rec.Strengths = []string{"Appropriate length"}
	}
	rec.Relevance, rec.Clarity, rec.Depth, rec.FourthAxis = score, score, score, score
	return rec
}
