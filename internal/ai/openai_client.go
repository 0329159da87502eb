package ai_client

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client       *openai.Client
	model        string
	systemPrompt string
	timeout      time.Duration
}

// NewOpenAIClient は OpenAI 互換クライアントを作成します。baseURL が空なら公式エンドポイントです。
func NewOpenAIClient(apiKey, baseURL, model, systemPrompt string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is missing")
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	cc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cc.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:       openai.NewClientWithConfig(cc),
		model:        model,
		systemPrompt: systemPrompt,
		timeout:      timeout,
	}, nil
}

func (oc *OpenAIClient) Generate(ctx context.Context, question string) (string, error) {
	if oc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, oc.timeout)
		defer cancel()
	}

	var messages []openai.ChatCompletionMessage
	if oc.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: oc.systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: question})

	log.Printf("Sending question to %s (%d chars)", oc.model, len(question))
	resp, err := oc.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    oc.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		log.Println("OpenAI API returned no choices.")
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
