package llm

import "fmt"

// Config holds backend credentials and the selected provider.
type Config struct {
	Provider ProviderType

	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

// NewTextGenerator creates a TextGenerator for the configured provider. A
// missing credential is a configuration error, never a silent fallback to
// another backend.
func NewTextGenerator(cfg Config) (TextGenerator, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for gemini provider")
		}
		return NewGeminiClient(cfg.GeminiAPIKey), nil

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey), nil

	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
