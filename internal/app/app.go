package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"chat-relay/internal/api"
	"chat-relay/internal/config"
	"chat-relay/internal/llm"
	"chat-relay/internal/registry"
	"chat-relay/internal/service"
	"chat-relay/internal/session"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger here.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		slog.Warn("Providers without a configured API key will fail when called", "providers", missing)
	}

	store := session.NewMemoryStore(session.Options{
		TTL:           cfg.SessionTTL,
		SweepInterval: cfg.SessionSweep,
		MaxSessions:   cfg.SessionLimit,
	})
	defer store.Stop()

	reg := registry.New()
	reg.Register(registry.KeyOpenAI, llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), llm.OpenAIModels)
	reg.Register(registry.KeyAnthropic, llm.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL), llm.AnthropicModels)
	reg.Register(registry.KeyGoogle, llm.NewGoogleProvider(cfg.GoogleAPIKey, cfg.GoogleBaseURL), llm.GoogleModels)
	reg.Register(registry.KeyXAI, llm.NewXAIProvider(cfg.XAIAPIKey, cfg.XAIBaseURL), llm.XAIModels)

	chatService := service.NewChatService(reg, store)
	modelService := service.NewModelService(reg)

	chatHandler := api.NewChatHandler(chatService)
	modelHandler := api.NewModelHandler(modelService)
	router := api.NewRouter(chatHandler, modelHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	if file := viper.ConfigFileUsed(); file != "" {
		slog.Info("Loaded configuration from file.", "file", file)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
