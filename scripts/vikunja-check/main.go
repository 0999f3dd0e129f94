// scripts/vikunja-check/main.go
//
// One-shot connectivity check against the configured Vikunja instance.
// Verifies the URL/token pair, lists the visible projects, and optionally
// warms the assignable-user cache file.
//
// Usage:
//   go run scripts/vikunja-check/main.go [--warm-users]

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"vikunja-voice-assistant/config"
	vikunjaRepo "vikunja-voice-assistant/internal/task/repository/vikunja"
	"vikunja-voice-assistant/internal/usercache"
	"vikunja-voice-assistant/pkg/log"
)

func main() {
	warmUsers := flag.Bool("warm-users", false, "fetch assignable users and write the cache file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Vikunja.URL == "" || cfg.Vikunja.APIToken == "" {
		fmt.Println("vikunja.url and vikunja.api_token must be configured (or VIKUNJA_URL / VIKUNJA_API_TOKEN)")
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := vikunjaRepo.NewClient(cfg.Vikunja.URL, cfg.Vikunja.APIToken)
	repo := vikunjaRepo.New(client, logger)

	if err := repo.TestConnection(ctx); err != nil {
		logger.Fatalf(ctx, "Connection test failed: %v", err)
	}
	logger.Infof(ctx, "Connected to %s", cfg.Vikunja.URL)

	projects, err := repo.GetProjects(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to list projects: %v", err)
	}
	for _, p := range projects {
		logger.Infof(ctx, "Project %d: %s", p.ID, p.Title)
	}

	if !*warmUsers {
		return
	}

	store := usercache.NewFileStore(cfg.UserCache.FilePath)
	cache := usercache.New(repo, store, logger, time.Duration(cfg.UserCache.RefreshHours)*time.Hour)
	if !cache.Refresh(ctx, true) {
		logger.Fatal(ctx, "User cache refresh failed")
	}
	logger.Infof(ctx, "Cached %d assignable users in %s", len(cache.CurrentUsers()), cfg.UserCache.FilePath)
}
