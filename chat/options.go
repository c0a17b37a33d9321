package chat

import (
	"net/http"
	"time"
)

// --- 客户端选项 ---

// ClientOption 在创建提供商客户端时修改 ClientConfig。
type ClientOption func(c *ClientConfig)

// ClientConfig 存储客户端级别的配置。
type ClientConfig struct {
	APIKey     string
	APIURL     string
	HTTPClient *http.Client
}

// NewClientConfig 返回带默认 HTTP 客户端的配置。
func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func WithAPIKey(key string) ClientOption {
	return func(c *ClientConfig) {
		c.APIKey = key
	}
}

// WithAPIURL 覆盖提供商默认的接口地址，用于代理或私有化部署。
func WithAPIURL(url string) ClientOption {
	return func(c *ClientConfig) {
		c.APIURL = url
	}
}

// WithHTTPClient 传入自定义的 http.Client（Transport、TLS、代理等）。
// 传 nil 时保留默认值。
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *ClientConfig) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// --- 请求选项 ---

// Option 调整单次 Chat 请求的参数。
type Option func(r *RequestConfig)

// RequestConfig 存储单次请求的配置。
type RequestConfig struct {
	Model       string
	Temperature *float32
	MaxTokens   *int
	TopP        *float32

	// Thinking 为 nil 时使用提供商默认行为；true/false 表示显式开启或关闭思考模式。
	Thinking *bool

	Parameters map[string]any
}

func NewRequestConfig() *RequestConfig {
	return &RequestConfig{
		Parameters: make(map[string]any),
	}
}

// ApplyOptions 基于默认值依次应用 opts。
func ApplyOptions(opts ...Option) *RequestConfig {
	cfg := NewRequestConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func WithThinking(enabled bool) Option {
	return func(r *RequestConfig) {
		r.Thinking = &enabled
	}
}

// WithModel 临时改用其它模型。
func WithModel(model string) Option {
	return func(r *RequestConfig) {
		r.Model = model
	}
}

func WithTemperature(temp float32) Option {
	return func(r *RequestConfig) {
		r.Temperature = &temp
	}
}

func WithMaxTokens(max int) Option {
	return func(r *RequestConfig) {
		r.MaxTokens = &max
	}
}

func WithTopP(topP float32) Option {
	return func(r *RequestConfig) {
		r.TopP = &topP
	}
}

// WithParameters 合并任意键值参数，已存在的 key 会被覆盖。
func WithParameters(params map[string]any) Option {
	return func(r *RequestConfig) {
		for k, v := range params {
			r.Parameters[k] = v
		}
	}
}

// WithParameter 附加单个模型专有参数。
func WithParameter(key string, value any) Option {
	return func(r *RequestConfig) {
		r.Parameters[key] = value
	}
}

// Body 生成请求体：Parameters 为基础，核心字段强制覆盖。
func (r *RequestConfig) Body(model string, messages []Message) map[string]any {
	body := make(map[string]any, len(r.Parameters)+5)
	for k, v := range r.Parameters {
		body[k] = v
	}
	if r.Model != "" {
		model = r.Model
	}
	body["model"] = model
	body["messages"] = messages
	if r.Temperature != nil {
		body["temperature"] = *r.Temperature
	}
	if r.MaxTokens != nil {
		body["max_tokens"] = *r.MaxTokens
	}
	if r.TopP != nil {
		body["top_p"] = *r.TopP
	}
	return body
}
