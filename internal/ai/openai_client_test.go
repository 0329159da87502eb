package ai_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Code-Assistant/internal/config"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, got *chatRequest, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClientGenerate(t *testing.T) {
	var got chatRequest
	srv := newChatServer(t, &got, http.StatusOK,
		`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Answer: 42"},"finish_reason":"stop"}]}`)

	c, err := NewOpenAIClient("test-key", srv.URL+"/v1", "", "be brief", time.Second)
	require.NoError(t, err)

	answer, err := c.Generate(context.Background(), "what is it?")
	require.NoError(t, err)
	assert.Equal(t, "Answer: 42", answer)

	assert.Equal(t, defaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be brief", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "what is it?", got.Messages[1].Content)
}

func TestOpenAIClientNoChoices(t *testing.T) {
	srv := newChatServer(t, nil, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[]}`)
	c, err := NewOpenAIClient("test-key", srv.URL, "m", "", time.Second)
	require.NoError(t, err)

	answer, err := c.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, answer)
}

func TestOpenAIClientServerError(t *testing.T) {
	srv := newChatServer(t, nil, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`)
	c, err := NewOpenAIClient("test-key", srv.URL, "m", "", time.Second)
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}

func TestConstructorsRequireKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "", "", 0)
	require.Error(t, err)

	_, err = NewGeminiClient(context.Background(), "", "", "", 0)
	require.Error(t, err)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Provider: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestNewOpenAIProvider(t *testing.T) {
	c, err := New(context.Background(), &config.Config{Provider: "openai", OpenAIAPIKey: "k", TimeoutSeconds: 5})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)
}
