package llm

// Config 描述一个可调用的模型后端。
type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	APIURL   string `yaml:"api_url"`
	// SystemPrompt 只用于 Chat/ChatText，mindmap.Pipeline 使用自己的固定 system 消息
	SystemPrompt string         `yaml:"system_prompt,omitempty"`
	Thinking     *bool          `yaml:"thinking,omitempty"`
	Parameters   map[string]any `yaml:"parameters,omitempty"`
}

var (
	thinking   = true
	noThinking = false
)

// NoThinking 返回 false 的指针，用于关闭思考模式
func NoThinking() *bool {
	return &noThinking
}

// Thinking 返回 true 的指针，用于开启思考模式
func Thinking() *bool {
	return &thinking
}
