package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
	"github.com/ievan-lhr/go-llm-mindmap/internal/logger"
	"github.com/ievan-lhr/go-llm-mindmap/providers/generic"
	"github.com/ievan-lhr/go-llm-mindmap/providers/openai"
)

// clientCache 缓存已初始化的提供商客户端，相同 provider/url/key 只创建一次。
var (
	clientCache = make(map[string]chat.Client)
	cacheMutex  = &sync.RWMutex{}
	factoryLog  = logger.Nop()
)

// SetLogger 设置之后新建客户端所使用的日志器。
func SetLogger(l *logger.Logger) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	factoryLog = logger.OrNop(l)
}

// GetClient 创建或复用提供商客户端。
func GetClient(cfg Config) (chat.Client, error) {
	cacheKey := fmt.Sprintf("%s|%s|%s", cfg.Provider, cfg.APIURL, cfg.APIKey)

	cacheMutex.RLock()
	client, found := clientCache[cacheKey]
	cacheMutex.RUnlock()
	if found {
		return client, nil
	}

	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	client, found = clientCache[cacheKey]
	if found {
		return client, nil
	}

	clientOpts := []chat.ClientOption{
		chat.WithAPIKey(cfg.APIKey),
	}
	if cfg.APIURL != "" {
		clientOpts = append(clientOpts, chat.WithAPIURL(cfg.APIURL))
	}

	var newClient chat.Client
	var err error

	switch cfg.Provider {
	case "dashscope":
		newClient, err = openai.New("dashscope", openai.DashscopeURL, factoryLog, clientOpts...)
	case "generic":
		newClient, err = generic.New(factoryLog, clientOpts...)
	case "openai":
		newClient, err = openai.New("openai", openai.DefaultURL, factoryLog, clientOpts...)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	factoryLog.Info("llm client created", "provider", cfg.Provider, "api_url", cfg.APIURL)
	clientCache[cacheKey] = newClient
	return newClient, nil
}

// boundModel 把配置里的默认请求参数绑定到模型上，调用时的 opts 优先。
type boundModel struct {
	chat.Model
	defaults []chat.Option
}

func (m *boundModel) Chat(ctx context.Context, messages []chat.Message, opts ...chat.Option) (*chat.Response, error) {
	all := make([]chat.Option, 0, len(m.defaults)+len(opts))
	all = append(all, m.defaults...)
	all = append(all, opts...)
	return m.Model.Chat(ctx, messages, all...)
}

// NewModel 返回按 cfg 配置好的 chat.Model。
func NewModel(cfg Config) (chat.Model, error) {
	client, err := GetClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get client for provider '%s': %w", cfg.Provider, err)
	}
	return &boundModel{Model: client.Model(cfg.Model), defaults: defaultOptions(cfg)}, nil
}

func defaultOptions(cfg Config) []chat.Option {
	var opts []chat.Option
	if cfg.Parameters != nil {
		opts = append(opts, chat.WithParameters(cfg.Parameters))
	}
	if cfg.Thinking != nil {
		opts = append(opts, chat.WithThinking(*cfg.Thinking))
	}
	return opts
}
