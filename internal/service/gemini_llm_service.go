package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrGeneratorUnavailable is returned when no API key is configured.
var ErrGeneratorUnavailable = errors.New("text generator not configured")

// TextGenerator is the narrow view of the language model the services need.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type geminiLLMService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (TextGenerator, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question and feedback generation will use fallbacks.")
		return &geminiLLMService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Gemini.Model)
	model.SetTemperature(0.4)
	return &geminiLLMService{client: client, model: model}, nil
}

func (s *geminiLLMService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.model == nil {
		return "", ErrGeneratorUnavailable
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned no text content")
	}
	return text, nil
}

func (s *geminiLLMService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
