package llm

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation sent to a backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single generation call. Zero values fall back to
// temperature 0.7 and 1000 max tokens.
type Options struct {
	Temperature float64
	MaxTokens   int
}

func (o Options) temperature() float64 {
	if o.Temperature == 0 {
		return 0.7
	}
	return o.Temperature
}

func (o Options) maxTokens() int {
	if o.MaxTokens == 0 {
		return 1000
	}
	return o.MaxTokens
}

// TextGenerator is the provider-agnostic text-generation entry point.
// Implementations exist for Gemini, OpenAI and Anthropic; tests inject stubs.
type TextGenerator interface {
	GenerateText(ctx context.Context, messages []Message, opts Options) (string, error)
}

// ProviderType selects a backend in the factory.
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
)

// splitSystem separates the system message (if any) from the conversation.
func splitSystem(messages []Message) (system string, rest []Message) {
	rest = make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem && system == "" {
			system = m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
