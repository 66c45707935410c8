package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	SQLitePath  string

	GoogleClientID     string
	GoogleClientSecret string

	TrelloAPIKey string
	TrelloToken  string

	LLMProvider     string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	DefaultUserEmail    string
	DefaultUserName     string
	DefaultUserTimezone string

	SchedulerTimezone string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "briefdesk.db"),

		GoogleClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),

		TrelloAPIKey: getEnv("TRELLO_API_KEY", ""),
		TrelloToken:  getEnv("TRELLO_TOKEN", ""),

		LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		DefaultUserEmail:    getEnv("DEFAULT_USER_EMAIL", "matt@example.com"),
		DefaultUserName:     getEnv("DEFAULT_USER_NAME", "Matt Vaadi"),
		DefaultUserTimezone: getEnv("DEFAULT_USER_TIMEZONE", "America/New_York"),

		SchedulerTimezone: getEnv("SCHEDULER_TIMEZONE", "America/New_York"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
