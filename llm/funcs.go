package llm

import (
	"context"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
)

// ChatMessages 是无状态的多消息调用。
func ChatMessages(ctx context.Context, messages []chat.Message, cfg Config) (*chat.Response, error) {
	model, err := NewModel(cfg)
	if err != nil {
		return nil, err
	}
	return model.Chat(ctx, messages)
}

// Chat 是单轮问答的便捷调用，SystemPrompt 非空时放在最前面。
func Chat(ctx context.Context, userPrompt string, cfg Config) (*chat.Response, error) {
	var messages []chat.Message
	if cfg.SystemPrompt != "" {
		messages = append(messages, chat.NewSystemMessage(cfg.SystemPrompt))
	}
	messages = append(messages, chat.NewUserMessage(userPrompt))
	return ChatMessages(ctx, messages, cfg)
}

// ChatText 只返回回复文本。
func ChatText(ctx context.Context, userPrompt string, cfg Config) (string, error) {
	resp, err := Chat(ctx, userPrompt, cfg)
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}
