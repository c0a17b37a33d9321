package llm

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ievan-lhr/go-llm-mindmap/chat"
	"github.com/ievan-lhr/go-llm-mindmap/internal/logger"
)

var (
	ErrUnknownModel = errors.New("llm: unknown model")
	ErrNoDefault    = errors.New("llm: no default model registered")
)

// Registry 按名称保存可用的模型后端，并记录默认后端。
// 第一个注册的后端自动成为默认值。
type Registry struct {
	mu       sync.RWMutex
	models   map[string]chat.Model
	fallback string
	log      *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		models: make(map[string]chat.Model),
		log:    logger.OrNop(log),
	}
}

// Register 添加或替换名为 name 的后端。
func (r *Registry) Register(name string, model chat.Model) error {
	if name == "" {
		return fmt.Errorf("llm: model name is required")
	}
	if model == nil {
		return fmt.Errorf("llm: model %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[name] = model
	if r.fallback == "" {
		r.fallback = name
	}
	r.log.Debug("llm model registered", "name", name, "default", r.fallback == name)
	return nil
}

// RegisterConfig 通过 cfg 创建模型并注册。
func (r *Registry) RegisterConfig(name string, cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	return r.Register(name, model)
}

func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	r.fallback = name
	return nil
}

func (r *Registry) Get(name string) (chat.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return m, nil
}

// Default 返回默认后端。
func (r *Registry) Default() (chat.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.fallback == "" {
		return nil, ErrNoDefault
	}
	return r.models[r.fallback], nil
}

// DefaultName 返回默认后端的名称，未注册时为空。
func (r *Registry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
