package service

import (
	"context"
	"sync"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/cache"
)

type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	block    bool
	calls    int
	prompts  []string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	resp, err, block := f.response, f.err, f.block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return resp, err
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv: "test",
		Gemini: config.Gemini{Timeout: 50 * time.Millisecond},
		Cache: config.Cache{
			FeedbackTTL: time.Minute,
			QuestionTTL: time.Minute,
		},
		Progress: config.Progress{TimeZone: "UTC", MaxAttempts: 10},
	}
}

func newMemo() *cache.Memoizer {
	return cache.NewMemoizer(cache.NewMemoryCache())
}
