package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketbrief/internal/briefing"
	"marketbrief/internal/config"
	"marketbrief/internal/handler"
	"marketbrief/pkg/llm"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	pipeline := briefing.New(newGenerator(cfg))
	briefingHandler := handler.NewBriefingHandler(pipeline)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/briefing", briefingHandler.CreateBriefing)
	r.GET("/health", briefingHandler.GetHealth)

	slog.Info("starting briefing API", "addr", cfg.ListenAddr, "provider", cfg.Provider)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
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
