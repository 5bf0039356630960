package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultMaxTokens is the completion cap used for models missing from the catalog.
const DefaultMaxTokens = 4096

// ModelSpec describes one model offered through the routing API.
type ModelSpec struct {
	ID            string `mapstructure:"id" json:"id"`
	Name          string `mapstructure:"name" json:"name"`
	Provider      string `mapstructure:"provider" json:"provider"`
	MaxTokens     int    `mapstructure:"max_tokens" json:"max_tokens"`
	ContextLength int    `mapstructure:"context_length" json:"context_length"`
	Description   string `mapstructure:"description" json:"description"`
}

// ModelCatalog is the ordered list of known models, indexed by id.
type ModelCatalog struct {
	models []ModelSpec
	byID   map[string]ModelSpec
}

func NewModelCatalog(models []ModelSpec) *ModelCatalog {
	c := &ModelCatalog{
		models: make([]ModelSpec, 0, len(models)),
		byID:   make(map[string]ModelSpec, len(models)),
	}
	for _, m := range models {
		if m.ID == "" {
			continue
		}
		if _, dup := c.byID[m.ID]; !dup {
			c.models = append(c.models, m)
		}
		c.byID[m.ID] = m
	}
	return c
}

// LoadModelCatalog reads the catalog from a YAML, TOML or JSON file holding a
// top-level "models" list. An empty path yields the built-in catalog.
func LoadModelCatalog(path string) (*ModelCatalog, error) {
	if path == "" {
		return NewModelCatalog(defaultModels), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read model catalog %s: %w", path, err)
	}

	var file struct {
		Models []ModelSpec `mapstructure:"models"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode model catalog %s: %w", path, err)
	}
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("model catalog %s defines no models", path)
	}
	return NewModelCatalog(file.Models), nil
}

// List returns the models in catalog order.
func (c *ModelCatalog) List() []ModelSpec {
	out := make([]ModelSpec, len(c.models))
	copy(out, c.models)
	return out
}

func (c *ModelCatalog) Get(id string) (ModelSpec, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// MaxTokens returns the completion cap for a model.
func (c *ModelCatalog) MaxTokens(id string) int {
	if m, ok := c.byID[id]; ok && m.MaxTokens > 0 {
		return m.MaxTokens
	}
	return DefaultMaxTokens
}

var defaultModels = []ModelSpec{
	{ID: "openai/gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Provider: "OpenAI", MaxTokens: 16385, ContextLength: 16385, Description: "Fast, efficient model for most tasks"},
	{ID: "openai/gpt-4", Name: "GPT-4", Provider: "OpenAI", MaxTokens: 8192, ContextLength: 8192, Description: "Most capable GPT-4 model"},
	{ID: "openai/gpt-4-turbo", Name: "GPT-4 Turbo", Provider: "OpenAI", MaxTokens: 128000, ContextLength: 128000, Description: "Latest GPT-4 Turbo with vision"},
	{ID: "openai/gpt-4o", Name: "GPT-4o", Provider: "OpenAI", MaxTokens: 4096, ContextLength: 128000, Description: "Optimized GPT-4 for speed and efficiency"},
	{ID: "openai/gpt-4o-mini", Name: "GPT-4o Mini", Provider: "OpenAI", MaxTokens: 16384, ContextLength: 128000, Description: "Small, fast, and cost-effective"},
	{ID: "anthropic/claude-3-opus", Name: "Claude 3 Opus", Provider: "Anthropic", MaxTokens: 4096, ContextLength: 200000, Description: "Most capable Claude model"},
	{ID: "anthropic/claude-3-sonnet", Name: "Claude 3 Sonnet", Provider: "Anthropic", MaxTokens: 4096, ContextLength: 200000, Description: "Balanced performance and speed"},
	{ID: "anthropic/claude-3-haiku", Name: "Claude 3 Haiku", Provider: "Anthropic", MaxTokens: 4096, ContextLength: 200000, Description: "Fast and cost-effective"},
	{ID: "anthropic/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet", Provider: "Anthropic", MaxTokens: 8192, ContextLength: 200000, Description: "Latest and most capable Claude"},
	{ID: "google/gemini-pro", Name: "Gemini Pro", Provider: "Google", MaxTokens: 8192, ContextLength: 32760, Description: "Google's most capable model"},
	{ID: "google/gemini-pro-vision", Name: "Gemini Pro Vision", Provider: "Google", MaxTokens: 4096, ContextLength: 16384, Description: "Multimodal model with vision"},
	{ID: "google/gemini-flash-1.5", Name: "Gemini Flash 1.5", Provider: "Google", MaxTokens: 8192, ContextLength: 1000000, Description: "Fast model with huge context"},
	{ID: "meta-llama/llama-3.1-8b-instruct", Name: "Llama 3.1 8B", Provider: "Meta", MaxTokens: 4096, ContextLength: 128000, Description: "Efficient open-source model"},
	{ID: "meta-llama/llama-3.1-70b-instruct", Name: "Llama 3.1 70B", Provider: "Meta", MaxTokens: 4096, ContextLength: 128000, Description: "Powerful open-source model"},
	{ID: "meta-llama/llama-3.1-405b-instruct", Name: "Llama 3.1 405B", Provider: "Meta", MaxTokens: 4096, ContextLength: 128000, Description: "Largest Llama model"},
	{ID: "mistralai/mistral-7b-instruct", Name: "Mistral 7B", Provider: "Mistral", MaxTokens: 8192, ContextLength: 32768, Description: "Fast and efficient"},
	{ID: "mistralai/mixtral-8x7b-instruct", Name: "Mixtral 8x7B", Provider: "Mistral", MaxTokens: 4096, ContextLength: 32768, Description: "MoE model with great performance"},
	{ID: "mistralai/mixtral-8x22b-instruct", Name: "Mixtral 8x22B", Provider: "Mistral", MaxTokens: 8192, ContextLength: 65536, Description: "Large MoE model"},
	{ID: "perplexity/llama-3.1-sonar-small-128k-online", Name: "Sonar Small (Online)", Provider: "Perplexity", MaxTokens: 4096, ContextLength: 127072, Description: "With internet access"},
	{ID: "perplexity/llama-3.1-sonar-large-128k-online", Name: "Sonar Large (Online)", Provider: "Perplexity", MaxTokens: 4096, ContextLength: 127072, Description: "Powerful with internet access"},
}
