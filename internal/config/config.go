package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config is read once at startup from the environment. The credential for
// the selected provider is checked here, before any network call.
type Config struct {
	Provider        string `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	ListenAddr      string `env:"LISTEN_ADDR" envDefault:":8080"`
	FrontendURL     string `env:"FRONTEND_URL"`
	TelegramToken   string `env:"TELEGRAM_BOT_TOKEN"`
}

var ErrMissingCredential = errors.New("config: missing credential for selected provider")

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingCredential)
		}
		if cfg.GeminiModel == "" {
			return nil, fmt.Errorf("%w: GEMINI_MODEL", ErrMissingCredential)
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingCredential)
		}
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY", ErrMissingCredential)
		}
	default:
		return nil, fmt.Errorf("config: unknown LLM provider %q", cfg.Provider)
	}

	return cfg, nil
}
