package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vikunja-voice-assistant/config"
	_ "vikunja-voice-assistant/docs" // Swagger docs
	"vikunja-voice-assistant/internal/httpserver"
	"vikunja-voice-assistant/internal/middleware"
	"vikunja-voice-assistant/internal/task"
	taskHTTP "vikunja-voice-assistant/internal/task/delivery/http"
	vikunjaRepo "vikunja-voice-assistant/internal/task/repository/vikunja"
	"vikunja-voice-assistant/internal/task/usecase"
	"vikunja-voice-assistant/internal/usercache"
	"vikunja-voice-assistant/pkg/log"
	"vikunja-voice-assistant/pkg/openai"
)

// @title       Vikunja Voice Assistant API
// @description Voice-to-task pipeline: free text in, structured Vikunja task out, via an LLM extraction call.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Vikunja Voice Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Vikunja URL: %s", cfg.Vikunja.URL)

	// 3. Vikunja repository
	vikunjaClient := vikunjaRepo.NewClient(cfg.Vikunja.URL, cfg.Vikunja.APIToken)
	repo := vikunjaRepo.New(vikunjaClient, logger)

	// 4. OpenAI client. Construction only needs a key; request-time
	// config errors are reported per request by the usecase.
	var llm openai.IOpenAI
	if cfg.OpenAI.APIKey != "" {
		llm, err = openai.New(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		})
		if err != nil {
			logger.Error(ctx, "Failed to initialize OpenAI client: ", err)
			return
		}
	} else {
		logger.Warn(ctx, "OPENAI_API_KEY missing: task resolution will report a configuration error")
	}

	// 5. User cache
	staleAfter := time.Duration(cfg.UserCache.RefreshHours) * time.Hour
	cacheStore := usercache.NewFileStore(cfg.UserCache.FilePath)
	cache := usercache.New(repo, cacheStore, logger, staleAfter)
	cache.Load(ctx)
	if cfg.Task.EnableUserAssignment {
		cache.SchedulePeriodicRefresh(staleAfter)
		logger.Infof(ctx, "User cache periodic refresh scheduled every %s", staleAfter)
	}
	defer cache.Stop()

	// 6. Task UseCase
	taskUC := usecase.New(logger, llm, repo, cache,
		usecase.Backend{
			VikunjaURL:      cfg.Vikunja.URL,
			VikunjaAPIToken: cfg.Vikunja.APIToken,
			OpenAIAPIKey:    cfg.OpenAI.APIKey,
		},
		task.Settings{
			DefaultDueDate:       cfg.Task.DefaultDueDate,
			DefaultProjectID:     cfg.Task.DefaultProjectID,
			VoiceCorrection:      cfg.Task.VoiceCorrection,
			AutoVoiceLabel:       cfg.Task.AutoVoiceLabel,
			EnableUserAssignment: cfg.Task.EnableUserAssignment,
			DetailedResponse:     cfg.Task.DetailedResponse,
		},
	)

	// 7. HTTP delivery
	mw := middleware.New(logger, cfg.HTTPServer.RateLimitPerMin)
	taskHandler := taskHTTP.New(logger, taskUC, cache)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware:  mw,
		TaskHandler: taskHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
