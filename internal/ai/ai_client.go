package ai_client

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"Code-Assistant/internal/config"
)

const (
	defaultGeminiModel = "gemini-1.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

// Client は質問を送り、回答テキストを返す AI サービスです。
type Client interface {
	Generate(ctx context.Context, question string) (string, error)
}

// New は設定の provider に応じたクライアントを作成します。
func New(ctx context.Context, cfg *config.Config) (Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.SystemPrompt, timeout)
	case "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.SystemPrompt, timeout)
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// GeminiClient はGemini APIとの連携を担当します。
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiClient は新しいGeminiClientのインスタンスを作成します。
func NewGeminiClient(ctx context.Context, apiKey, model, systemPrompt string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is missing")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	m := client.GenerativeModel(model)
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}
	return &GeminiClient{client: client, model: m, timeout: timeout}, nil
}

// Generate は質問に対する回答を生成します。
func (gc *GeminiClient) Generate(ctx context.Context, question string) (string, error) {
	if gc.model == nil {
		return "", fmt.Errorf("Gemini client is not initialized")
	}
	if gc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gc.timeout)
		defer cancel()
	}
	log.Printf("Sending question to Gemini (%d chars)", len(question))
	resp, err := gc.model.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var answer strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				answer.WriteString(string(txt))
			}
		}
	}
	if answer.Len() == 0 {
		log.Println("Gemini API returned an empty answer.")
	}
	return answer.String(), nil
}

// Close releases the underlying connection.
func (gc *GeminiClient) Close() error {
	if gc.client == nil {
		return nil
	}
	return gc.client.Close()
}
