package generic

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
	"github.com/ievan-lhr/go-llm-mindmap/internal/logger"
	"github.com/ievan-lhr/go-llm-mindmap/internal/requester"
	"github.com/ievan-lhr/go-llm-mindmap/providers/openai"
)

// clientImpl 实现了 chat.Client
type clientImpl struct {
	requester *requester.Requester
	config    chat.ClientConfig
}

// modelImpl 实现了 chat.Model
type modelImpl struct {
	client *clientImpl
	name   string
}

// thinkTagRegex 匹配私有化 Qwen 模型回复里的 <think>...</think> 段落
var thinkTagRegex = regexp.MustCompile(`(?s)<think>.*?</think>\s*`)

const noThinkSuffix = "\n/no_think"

// NewClient 创建通用（私有化部署）客户端，APIKey 与 APIURL 都必须提供。
func NewClient(opts ...chat.ClientOption) (chat.Client, error) {
	return New(nil, opts...)
}

func New(log *logger.Logger, opts ...chat.ClientOption) (chat.Client, error) {
	config := chat.NewClientConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("generic provider: API key is required, use chat.WithAPIKey()")
	}
	if config.APIURL == "" {
		return nil, fmt.Errorf("generic provider: API URL is required for private deployment, use chat.WithAPIURL()")
	}

	return &clientImpl{
		requester: &requester.Requester{
			HTTPClient: config.HTTPClient,
			Provider:   "generic",
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

	// 在副本上修改，调用方的切片保持不变
	processed := make([]chat.Message, len(messages))
	copy(processed, messages)

	// 关闭思考模式：在第一条 system 消息末尾追加 /no_think
	if config.Thinking != nil && !*config.Thinking {
		for i, msg := range processed {
			if msg.Role == chat.RoleSystem {
				processed[i].Content += noThinkSuffix
				break
			}
		}
	}

	requestBody := config.Body(m.name, processed)

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer "+m.client.config.APIKey)

	rawBody, err := m.client.requester.Post(ctx, m.client.config.APIURL, headers, requestBody)
	if err != nil {
		return nil, err
	}

	msg, err := openai.DecodeMessage(rawBody)
	if err != nil {
		return nil, fmt.Errorf("generic provider: %w", err)
	}
	msg.Content = StripThinking(msg.Content)

	return &chat.Response{
		Message:     msg,
		RawResponse: rawBody,
	}, nil
}

// StripThinking 删除内容中的 <think> 段落。
func StripThinking(content string) string {
	return thinkTagRegex.ReplaceAllString(content, "")
}
