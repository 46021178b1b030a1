package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/replay/internal/cache"
	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	var scrobbler services.Scrobbler
	if config.LastFM.APIKey != "" && config.LastFM.Username != "" {
		scrobbler = services.NewLastFMService(config.LastFM.BaseURL, config.LastFM.APIKey, config.LastFM.Username)
	}

	var video services.VideoSearcher
	if config.YouTube.APIKey != "" {
		video = services.NewYouTubeService("", config.YouTube.APIKey)
	}

	var store *cache.Store
	if config.Cache.RedisURL != "" {
		if s, err := cache.NewStore(config.Cache.RedisURL); err == nil {
			store = s
		} else {
			logger.Warn("cache unavailable, responses will not be cached", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Scrobbler: scrobbler,
		Video:     video,
		Store:     store,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "replay",
		Usage:    "Enrich Last.fm listening history with playable YouTube videos",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
