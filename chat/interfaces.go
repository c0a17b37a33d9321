package chat

import "context"

// Model 是一个可对话的后端：接收有序的消息序列，返回模型输出。
// 实现方自行负责鉴权、超时与重试。
type Model interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}

// Client 对应某个 LLM 提供商，按模型名取得 Model。
type Client interface {
	Model(name string) Model
}

// ModelFunc 让普通函数满足 Model 接口。
type ModelFunc func(ctx context.Context, messages []Message, opts ...Option) (*Response, error)

func (f ModelFunc) Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error) {
	return f(ctx, messages, opts...)
}
