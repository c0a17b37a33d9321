package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
)

func TestGetClientCachesByProviderURLKey(t *testing.T) {
	cfg := Config{Provider: "openai", APIKey: "cache-key", APIURL: "http://cache.invalid/v1/chat/completions"}
	a, err := GetClient(cfg)
	require.NoError(t, err)
	b, err := GetClient(cfg)
	require.NoError(t, err)
	assert.Same(t, a, b)

	cfg.APIKey = "other-key"
	c, err := GetClient(cfg)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestGetClientUnknownProvider(t *testing.T) {
	_, err := GetClient(Config{Provider: "llama-cpp", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestGetClientMissingKey(t *testing.T) {
	_, err := GetClient(Config{Provider: "dashscope"})
	require.Error(t, err)
}

func TestChatTextAppliesConfig(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"pong"}}]}`))
	}))
	defer srv.Close()

	cfg := Config{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		APIKey:       "sk-chat-text",
		APIURL:       srv.URL,
		SystemPrompt: "be brief",
		Parameters:   map[string]any{"seed": 1},
	}
	text, err := ChatText(context.Background(), "ping", cfg)
	require.NoError(t, err)
	assert.Equal(t, "pong", text)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.EqualValues(t, 1, body["seed"])
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, string(chat.RoleSystem), msgs[0].(map[string]any)["role"])
}

func TestNewModelCallOptionsOverrideDefaults(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	model, err := NewModel(Config{
		Provider:   "openai",
		Model:      "base",
		APIKey:     "sk-override",
		APIURL:     srv.URL,
		Parameters: map[string]any{"seed": 1},
	})
	require.NoError(t, err)

	_, err = model.Chat(context.Background(), []chat.Message{chat.NewUserMessage("x")},
		chat.WithParameter("seed", 2), chat.WithModel("override"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, body["seed"])
	assert.Equal(t, "override", body["model"])
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(nil) })

	_, err := GetClient(Config{Provider: "generic", APIKey: "k", APIURL: "http://logger.invalid"})
	require.NoError(t, err)
}

func TestNewModelDashscopeNoThinking(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	model, err := NewModel(Config{
		Provider: "dashscope",
		Model:    "qwen3-32b",
		APIKey:   "sk-dashscope-thinking",
		APIURL:   srv.URL,
		Thinking: NoThinking(),
	})
	require.NoError(t, err)

	_, err = model.Chat(context.Background(), []chat.Message{chat.NewUserMessage("x")})
	require.NoError(t, err)
	assert.Equal(t, false, body["enable_thinking"])
}
