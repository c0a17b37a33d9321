package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyCoreFieldsWinOverParameters(t *testing.T) {
	cfg := ApplyOptions(
		WithParameters(map[string]any{"model": "spoofed", "seed": 3}),
		WithTemperature(0.1),
		WithTopP(0.9),
		nil,
	)
	msgs := []Message{NewUserMessage("hi")}
	body := cfg.Body("real", msgs)

	assert.Equal(t, "real", body["model"])
	assert.Equal(t, msgs, body["messages"])
	assert.Equal(t, 3, body["seed"])
	assert.Equal(t, float32(0.1), body["temperature"])
	assert.Equal(t, float32(0.9), body["top_p"])
	assert.NotContains(t, body, "max_tokens")
}

func TestBodyWithModelOverride(t *testing.T) {
	body := ApplyOptions(WithModel("other")).Body("base", nil)
	assert.Equal(t, "other", body["model"])
}

func TestModelFunc(t *testing.T) {
	var got []Message
	m := ModelFunc(func(ctx context.Context, messages []Message, opts ...Option) (*Response, error) {
		got = messages
		return &Response{Message: NewAssistantMessage("ok")}, nil
	})
	resp, err := m.Chat(context.Background(), []Message{NewUserMessage("q")})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Message.Content)
	assert.Equal(t, RoleUser, got[0].Role)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Provider: "openai", StatusCode: 500, Body: "boom"}
	assert.Equal(t, "openai: api error (status 500): boom", err.Error())
	var nilErr *APIError
	assert.Equal(t, 0, nilErr.HTTPStatusCode())
}
