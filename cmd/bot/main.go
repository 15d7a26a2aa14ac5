package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"marketbrief/internal/bot"
	"marketbrief/internal/briefing"
	"marketbrief/internal/config"
	"marketbrief/pkg/llm"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatalf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	pipeline := briefing.New(newGenerator(cfg))

	b, err := bot.New(cfg.TelegramToken, pipeline)
	if err != nil {
		log.Fatalf("error starting bot: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	slog.Info("starting telegram bot", "provider", cfg.Provider)
	b.Start(ctx)
}

func newGenerator(cfg *config.Config) llm.Generator {
	switch cfg.Provider {
	case "openai":
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	case "anthropic":
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	default:
		return llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}
