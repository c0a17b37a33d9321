package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
	"github.com/ievan-lhr/go-llm-mindmap/internal/logger"
	"github.com/ievan-lhr/go-llm-mindmap/internal/requester"
)

const (
	DefaultURL = "https://api.openai.com/v1/chat/completions"
	// DashscopeURL 为阿里云百炼的 OpenAI 兼容模式地址
	DashscopeURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
)

// thinkingParams 记录各兼容接口开关思考模式所用的请求字段
var thinkingParams = map[string]string{
	"dashscope": "enable_thinking",
}

// clientImpl 实现了 chat.Client
type clientImpl struct {
	name          string
	thinkingParam string
	requester     *requester.Requester
	config        chat.ClientConfig
}

// modelImpl 实现了 chat.Model
type modelImpl struct {
	client *clientImpl
	name   string
}

// NewClient 创建 OpenAI 客户端。
func NewClient(opts ...chat.ClientOption) (chat.Client, error) {
	return New("openai", DefaultURL, nil, opts...)
}

// NewDashscope 创建走兼容模式的 DashScope 客户端。
func NewDashscope(opts ...chat.ClientOption) (chat.Client, error) {
	return New("dashscope", DashscopeURL, nil, opts...)
}

// New 创建任意 OpenAI 兼容的客户端，name 用于日志和错误信息，
// defaultURL 可被 chat.WithAPIURL 覆盖。
func New(name, defaultURL string, log *logger.Logger, opts ...chat.ClientOption) (chat.Client, error) {
	config := chat.NewClientConfig()
	config.APIURL = defaultURL
	for _, opt := range opts {
		opt(config)
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("%s provider: API key is required, use chat.WithAPIKey()", name)
	}
	if config.APIURL == "" {
		return nil, fmt.Errorf("%s provider: API URL is required, use chat.WithAPIURL()", name)
	}

	return &clientImpl{
		name:          name,
		thinkingParam: thinkingParams[name],
		requester: &requester.Requester{
			HTTPClient: config.HTTPClient,
			Provider:   name,
			Log:        log,
		},
		config: *config,
	}, nil
}

func (c *clientImpl) Model(name string) chat.Model {
	return &modelImpl{client: c, name: name}
}

func (m *modelImpl) Chat(ctx context.Context, messages []chat.Message, opts ...chat.Option) (*chat.Response, error) {
	config := chat.ApplyOptions(opts...)
	requestBody := config.Body(m.name, messages)
	if m.client.thinkingParam != "" && config.Thinking != nil {
		requestBody[m.client.thinkingParam] = *config.Thinking
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer "+m.client.config.APIKey)

	rawBody, err := m.client.requester.Post(ctx, m.client.config.APIURL, headers, requestBody)
	if err != nil {
		return nil, err
	}

	msg, err := DecodeMessage(rawBody)
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", m.client.name, err)
	}

	return &chat.Response{
		Message:     msg,
		RawResponse: rawBody,
	}, nil
}

// DecodeMessage 取出 chat/completions 响应中第一个 choice 的消息。
func DecodeMessage(rawBody []byte) (chat.Message, error) {
	var apiResp struct {
		Choices []struct {
			Message chat.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(rawBody, &apiResp); err != nil {
		return chat.Message{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return chat.Message{}, fmt.Errorf("invalid response, no choices found")
	}
	msg := apiResp.Choices[0].Message
	if msg.Role == "" {
		msg.Role = chat.RoleAssistant
	}
	return msg, nil
}
