package chat

// Role 标识消息发送方。
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 是带角色标签的一段文本，字段与 OpenAI 兼容接口的 JSON 格式一致。
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ReasoningContent 仅出现在模型回复中（思考过程），请求时为空会被省略。
	ReasoningContent string `json:"reasoning_content,omitempty"`
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
