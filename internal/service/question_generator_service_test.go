package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedQuestions = `Here you go:
[
 {"question":"Explain goroutines.","type":"technical","difficulty":"medium","category":"Go"},
 {"question":"Tell me about a conflict.","type":"behavioral","difficulty":"medium","category":"Conflict"},
 {"question":"Design a cache.","type":"technical","difficulty":"hard","category":"Design"},
 {"question":"What if prod goes down?","type":"situational","difficulty":"medium","category":"Ops"},
 {"question":"Explain channels.","type":"technical","difficulty":"medium","category":"Go"},
 {"question":"","type":"technical"},
 {"question":"Explain interfaces.","type":"Technical"},
 {"question":"Explain generics.","type":"technical"},
 {"question":"Explain the scheduler.","type":"technical"},
 {"question":"Explain escape analysis.","type":"technical"}
]`

func TestGenerateFiltersByTypeAndTruncates(t *testing.T) {
	gen := &fakeGenerator{response: mixedQuestions}
	svc := NewQuestionGeneratorService(gen, newMemo(), testConfig())

	out := svc.Generate(context.Background(), GenerateParams{
		JobRole: "Backend Engineer", Company: "Acme", Difficulty: "medium", Count: 5, Type: "technical",
	})
	assert.False(t, out.Fallback)
	require.Len(t, out.Questions, 5)
	for i, q := range out.Questions {
		assert.Equal(t, model.QuestionTypeTechnical, q.Type)
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.NotEmpty(t, q.Category)
	}
}

func TestGenerateFallsBackToBank(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"upstream error", &fakeGenerator{err: errors.New("503")}},
		{"not json", &fakeGenerator{response: "Sorry, I cannot help with that."}},
		{"no matching items", &fakeGenerator{response: `[{"question":"Tell me about you","type":"behavioral"}]`}},
		{"timeout", &fakeGenerator{block: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewQuestionGeneratorService(tc.gen, newMemo(), testConfig())
			out := svc.Generate(context.Background(), GenerateParams{
				JobRole: "SRE", Company: "Acme", Difficulty: "hard", Count: 3, Type: "technical",
			})
			assert.True(t, out.Fallback)
			require.Len(t, out.Questions, 3)
			for _, q := range out.Questions {
				assert.Equal(t, model.QuestionTypeTechnical, q.Type)
				assert.Equal(t, model.DifficultyHard, q.Difficulty)
			}
		})
	}
}

func TestGenerateFallbackLogsWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("request_id", "req-42").Logger().WithContext(context.Background())

	svc := NewQuestionGeneratorService(&fakeGenerator{err: errors.New("503")}, newMemo(), testConfig())
	out := svc.Generate(ctx, GenerateParams{JobRole: "SRE", Count: 2, Type: "technical"})

	assert.True(t, out.Fallback)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), "Question generation failed")
}

func TestGenerateDefaultsAndCaching(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("down")}
	svc := NewQuestionGeneratorService(gen, newMemo(), testConfig())
	out := svc.Generate(context.Background(), GenerateParams{JobRole: "PM", Company: "Acme", Difficulty: "impossible"})
	assert.True(t, out.Fallback)
	assert.Len(t, out.Questions, DefaultQuestionCount)
	assert.Equal(t, model.DifficultyMedium, out.Questions[0].Difficulty)

	ok := &fakeGenerator{response: mixedQuestions}
	svc = NewQuestionGeneratorService(ok, newMemo(), testConfig())
	p := GenerateParams{JobRole: "Backend", Company: "Acme", Count: 2, Type: "all"}
	first := svc.Generate(context.Background(), p)
	second := svc.Generate(context.Background(), p)
	assert.Equal(t, 1, ok.Calls())
	assert.Equal(t, first, second)
	assert.Len(t, first.Questions, 2)
}

func TestFallbackQuestionsMixedInterleavesTypes(t *testing.T) {
	out := fallbackQuestions("easy", "all", 3)
	require.Len(t, out, 3)
	assert.Equal(t, model.QuestionTypeBehavioral, out[0].Type)
	assert.Equal(t, model.QuestionTypeTechnical, out[1].Type)
	assert.Equal(t, model.QuestionTypeSituational, out[2].Type)

	assert.Len(t, fallbackQuestions("medium", "technical", 20), 4)
	assert.Empty(t, fallbackQuestions("medium", "technical", 0))
}
