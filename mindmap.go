// Package mindmap 根据问题与上下文向聊天模型请求一份 PlantUML 思维导图。
//
// 流程只有一步：填充模板，组装 system + user 两条消息，调用一次后端并原样返回结果。
// 不解析、不校验模型输出。
package mindmap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
	"github.com/ievan-lhr/go-llm-mindmap/internal/logger"
	"github.com/ievan-lhr/go-llm-mindmap/llm"
	"github.com/ievan-lhr/go-llm-mindmap/prompt"
)

// ErrNoBackend 表示没有可用的聊天后端。
var ErrNoBackend = errors.New("mindmap: no chat backend configured")

// Pipeline 构造后不再修改，可被多个 goroutine 同时使用，
// 并发安全性取决于注入的后端。
type Pipeline struct {
	llm      chat.Model
	template prompt.Template
	chatOpts []chat.Option
	log      *logger.Logger
}

// Option 配置 Pipeline。
type Option func(p *Pipeline)

// WithPromptTemplate 覆盖默认的 user 消息模板，空字符串保留默认值。
// 模板必须包含 {question} 和 {context}，否则 Run 返回 *prompt.TemplateError。
func WithPromptTemplate(text string) Option {
	return func(p *Pipeline) {
		if text != "" {
			p.template = prompt.New(text)
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) {
		p.log = logger.OrNop(l)
	}
}

// WithChatOptions 附加每次调用后端时传入的请求选项。
func WithChatOptions(opts ...chat.Option) Option {
	return func(p *Pipeline) {
		merged := make([]chat.Option, 0, len(p.chatOpts)+len(opts))
		merged = append(merged, p.chatOpts...)
		p.chatOpts = append(merged, opts...)
	}
}

// New 使用显式注入的后端创建 Pipeline。
func New(backend chat.Model, opts ...Option) (*Pipeline, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	p := &Pipeline{
		llm:      backend,
		template: prompt.New(DefaultPromptTemplate),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewFromConfig 按配置解析一次后端后创建 Pipeline：
// 优先使用 cfg.LLM，其次是 registry 中名为 cfg.Backend 的后端，最后是 registry 的默认后端。
// cfg.LLM.SystemPrompt 不生效，system 消息始终为 SystemPrompt。
func NewFromConfig(cfg Config, reg *llm.Registry, log *logger.Logger, opts ...Option) (*Pipeline, error) {
	backend, err := resolveBackend(cfg, reg)
	if err != nil {
		return nil, err
	}
	if cfg.LLM != nil && cfg.LLM.SystemPrompt != "" {
		logger.OrNop(log).Warn("llm.system_prompt is ignored, the mind-map system prompt is fixed")
	}
	all := append([]Option{WithLogger(log), WithPromptTemplate(cfg.PromptTemplate)}, opts...)
	return New(backend, all...)
}

func resolveBackend(cfg Config, reg *llm.Registry) (chat.Model, error) {
	switch {
	case cfg.LLM != nil:
		return llm.NewModel(*cfg.LLM)
	case reg == nil:
		return nil, ErrNoBackend
	case cfg.Backend != "":
		return reg.Get(cfg.Backend)
	default:
		m, err := reg.Default()
		if errors.Is(err, llm.ErrNoDefault) {
			return nil, ErrNoBackend
		}
		return m, err
	}
}

// PromptTemplate 返回当前使用的模板文本。
func (p *Pipeline) PromptTemplate() string {
	return p.template.Text()
}

// BuildPrompt 把 question 和 context 填入模板。
func (p *Pipeline) BuildPrompt(question, contextText string) (string, error) {
	if err := p.template.Require(placeholderQuestion, placeholderContext); err != nil {
		return "", err
	}
	return p.template.Populate(map[string]string{
		placeholderQuestion: question,
		placeholderContext:  contextText,
	})
}

// Messages 返回发送给后端的消息序列：固定的 system 消息在前，userPrompt 在后。
func Messages(userPrompt string) []chat.Message {
	return []chat.Message{
		chat.NewSystemMessage(SystemPrompt),
		chat.NewUserMessage(userPrompt),
	}
}

// Run 生成思维导图请求并调用一次后端。
// 模板错误在调用后端之前返回；后端返回的结果和错误都原样透传。
func (p *Pipeline) Run(ctx context.Context, question, contextText string) (*chat.Response, error) {
	userPrompt, err := p.BuildPrompt(question, contextText)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	p.log.Debug("mindmap request",
		"run_id", runID,
		"question_chars", len(question),
		"context_chars", len(contextText),
		"prompt_chars", len(userPrompt),
	)

	// 限定容量，后端对 opts 的 append 不会写入 Pipeline 共享的底层数组
	opts := p.chatOpts[:len(p.chatOpts):len(p.chatOpts)]
	resp, err := p.llm.Chat(ctx, Messages(userPrompt), opts...)
	if err != nil {
		p.log.Warn("mindmap backend call failed", "run_id", runID, "error", err)
		return resp, err
	}
	p.log.Debug("mindmap response", "run_id", runID, "duration_ms", time.Since(start).Milliseconds())
	return resp, nil
}

// RunText 与 Run 相同，但只返回回复文本。
func (p *Pipeline) RunText(ctx context.Context, question, contextText string) (string, error) {
	resp, err := p.Run(ctx, question, contextText)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Message.Content, nil
}
