package mindmap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ievan-lhr/go-llm-mindmap/llm"
)

// Config 是 Pipeline 的可覆盖配置项。
type Config struct {
	// PromptTemplate 覆盖默认模板，为空时使用 DefaultPromptTemplate
	PromptTemplate string `yaml:"prompt_template"`
	// LLM 直接描述后端；为 nil 时从 registry 中解析。
	// 其中的 system_prompt 会被忽略，system 消息固定为 SystemPrompt
	LLM *llm.Config `yaml:"llm"`
	// Backend 为 registry 中的后端名称，为空时使用默认后端
	Backend string `yaml:"backend"`
}

const (
	envPromptTemplate = "MINDMAP_PROMPT_TEMPLATE"
	envBackend        = "MINDMAP_BACKEND"
	envProvider       = "LLM_PROVIDER"
	envModel          = "LLM_MODEL"
	envAPIKey         = "LLM_API_KEY"
	envAPIURL         = "LLM_API_URL"
)

// LoadConfig 读取配置：先加载当前目录的 .env（不存在则忽略），
// 再解析 path 指向的 YAML 文件（path 为空则跳过），最后用环境变量覆盖。
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("mindmap: read config %s: %w", path, err)
		}
		if cfg, err = ParseConfig(raw); err != nil {
			return Config{}, fmt.Errorf("mindmap: parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// ParseConfig 解析 YAML 配置，未知字段视为错误。
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envPromptTemplate); v != "" {
		cfg.PromptTemplate = v
	}
	if v := strings.TrimSpace(os.Getenv(envBackend)); v != "" {
		cfg.Backend = v
	}

	// 设置了 LLM_PROVIDER 时才由环境变量创建 llm 配置，否则只覆盖文件中已有的配置
	if cfg.LLM == nil {
		if strings.TrimSpace(os.Getenv(envProvider)) == "" {
			return
		}
		cfg.LLM = &llm.Config{}
	}
	setFromEnv(&cfg.LLM.Provider, envProvider)
	setFromEnv(&cfg.LLM.Model, envModel)
	setFromEnv(&cfg.LLM.APIKey, envAPIKey)
	setFromEnv(&cfg.LLM.APIURL, envAPIURL)
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
