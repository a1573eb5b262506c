package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodAnswer = "In my last role I led the migration of our billing service to a new queue, " +
	"coordinating three teams and cutting failed payments by forty percent within two months."

func assertBounded(t *testing.T, rec ScoreRecord) {
	t.Helper()
	for _, v := range []float64{rec.Relevance, rec.Clarity, rec.Depth, rec.FourthAxis, rec.Overall()} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 10.0)
	}
}

func TestEvaluateNeverFails(t *testing.T) {
	cases := []struct {
		name     string
		gen      *fakeGenerator
		fallback bool
	}{
		{"network failure", &fakeGenerator{err: errors.New("dial tcp: connection refused")}, true},
		{"timeout", &fakeGenerator{block: true}, true},
		{"empty string", &fakeGenerator{response: ""}, true},
		{"non json text", &fakeGenerator{response: "The answer is pretty good overall."}, true},
		{"json missing all fields", &fakeGenerator{response: "{}"}, false},
		{"malformed json", &fakeGenerator{response: `{"relevance": 8, "clarity": }`}, true},
		{"nan and negative", &fakeGenerator{response: `{"relevance":"NaN","clarity":-3,"depth":12,"communication":"7"}`}, false},
		{"out of range", &fakeGenerator{response: `{"relevance":1e9,"clarity":-1e9,"depth":null,"communication":true}`}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewFeedbackService(tc.gen, newMemo(), testConfig())
			rec := svc.Evaluate(context.Background(), "Tell me about a project.", goodAnswer, model.QuestionTypeTechnical)
			assertBounded(t, rec)
			assert.Equal(t, tc.fallback, rec.Fallback)
			assert.NotEmpty(t, rec.OverallFeedback)
		})
	}
}

func TestEvaluateClampsAndParsesNumericStrings(t *testing.T) {
	gen := &fakeGenerator{response: `{"relevance":"NaN","clarity":-3,"depth":12,"communication":"7","overallFeedback":"ok"}`}
	rec := NewFeedbackService(gen, newMemo(), testConfig()).
		Evaluate(context.Background(), "q", goodAnswer, model.QuestionTypeTechnical)

	assert.Equal(t, 0.0, rec.Relevance)
	assert.Equal(t, 0.0, rec.Clarity)
	assert.Equal(t, 10.0, rec.Depth)
	assert.Equal(t, 7.0, rec.FourthAxis)
	assert.Equal(t, model.FourthAxisCommunication, rec.FourthAxisKind)
	assert.Equal(t, 4.25, rec.Overall())
}

func TestEvaluateDefaultsMissingScoresToZero(t *testing.T) {
	gen := &fakeGenerator{response: `{"overallFeedback":"fine"}`}
	rec := NewFeedbackService(gen, newMemo(), testConfig()).
		Evaluate(context.Background(), "q", goodAnswer, model.QuestionTypeTechnical)

	assert.False(t, rec.Fallback)
	assert.Equal(t, "fine", rec.OverallFeedback)
	for _, v := range []float64{rec.Relevance, rec.Clarity, rec.Depth, rec.FourthAxis, rec.Overall()} {
		assert.Equal(t, 0.0, v)
	}

	partial := &fakeGenerator{response: `{"relevance":8,"depth":6}`}
	rec = NewFeedbackService(partial, newMemo(), testConfig()).
		Evaluate(context.Background(), "q", goodAnswer, model.QuestionTypeTechnical)
	assert.False(t, rec.Fallback)
	assert.Equal(t, 0.0, rec.Clarity)
	assert.Equal(t, 3.5, rec.Overall())
}

func TestEvaluateStripsFencesAndUsesStarForBehavioral(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"relevance\":8,\"clarity\":6,\"depth\":7,\"starMethod\":9," +
		"\"overallFeedback\":\"Solid\",\"suggestion\":\"Quantify\",\"strengths\":[\"clear\"],\"improvements\":\"more metrics\"}\n```"}
	rec := NewFeedbackService(gen, newMemo(), testConfig()).
		Evaluate(context.Background(), "Tell me about a conflict.", goodAnswer, model.QuestionTypeBehavioral)

	assert.False(t, rec.Fallback)
	assert.Equal(t, model.FourthAxisStarMethod, rec.FourthAxisKind)
	assert.Equal(t, 9.0, rec.FourthAxis)
	assert.Equal(t, 7.5, rec.Overall())
	assert.Equal(t, []string{"clear"}, rec.Strengths)
	assert.Equal(t, []string{"more metrics"}, rec.Improvements)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "starMethod")
}

func TestHeuristicFeedbackBands(t *testing.T) {
	short := heuristicFeedback("I am a team player", model.QuestionTypeTechnical)
	assert.True(t, short.Fallback)
	for _, v := range []float64{short.Relevance, short.Clarity, short.Depth, short.FourthAxis} {
		assert.LessOrEqual(t, v, 4.0)
		assert.Equal(t, short.Relevance, v)
	}

	long := heuristicFeedback(strings.Repeat("word ", 400), model.QuestionTypeTechnical)
	assert.Equal(t, 6.0, long.Overall())

	mid := heuristicFeedback(goodAnswer, model.QuestionTypeBehavioral)
	assert.Equal(t, 7.0, mid.Overall())
	assert.Equal(t, model.FourthAxisStarMethod, mid.FourthAxisKind)
}

func TestEvaluateCachesOnlySuccesses(t *testing.T) {
	ctx := context.Background()
	memo := newMemo()

	failing := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewFeedbackService(failing, memo, testConfig())
	svc.Evaluate(ctx, "q", goodAnswer, model.QuestionTypeTechnical)
	svc.Evaluate(ctx, "q", goodAnswer, model.QuestionTypeTechnical)
	assert.Equal(t, 2, failing.Calls(), "fallbacks are not cached")

	ok := &fakeGenerator{response: `{"relevance":8,"clarity":8,"depth":8,"communication":8}`}
	svc = NewFeedbackService(ok, memo, testConfig())
	first := svc.Evaluate(ctx, "q", goodAnswer, model.QuestionTypeTechnical)
	second := svc.Evaluate(ctx, "q", goodAnswer, model.QuestionTypeTechnical)
	assert.Equal(t, 1, ok.Calls())
	assert.Equal(t, first, second)

	svc.Evaluate(ctx, "q", goodAnswer+" More detail.", model.QuestionTypeTechnical)
	assert.Equal(t, 2, ok.Calls())
}
