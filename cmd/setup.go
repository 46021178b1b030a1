package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates a starter configuration file from the bundled template.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = r.configPath
	}

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
		r.writePlain("Config file already exists at %s\n", configPath)
		return nil
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	r.logger.Info("config file created", "path", configPath)

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load created config: %w", err)
	}
	r.config = config
	r.configPath = configPath

	r.writePlain("✓ Configuration file created at %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Add your Last.fm API key and username under [lastfm]\n")
	r.writePlain("2. Add your YouTube Data API key under [youtube]\n")
	r.writePlain("3. Point [cache] redis_url at a running Redis instance\n")
	r.writePlain("4. Run 'replay serve' to start the enrichment service\n")

	return nil
}

// Status checks a running enrichment service and its cache.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	baseURL := cmd.String("url")
	if baseURL == "" {
		baseURL = r.serviceURL()
	}
	useJSON := cmd.Bool("json")

	r.logger.Info("checking service health", "url", baseURL)

	client := services.NewClient(baseURL, r.httpClient)
	status, err := client.Health(ctx)
	if err != nil {
		r.writePlain("✗ Service unreachable at %s\n", baseURL)
		return err
	}

	if useJSON {
		return r.writeJSON(status, true)
	}

	r.writePlainHeader("Service Status")
	r.writePlain("Service: %s\n", status.Service)
	r.writePlain("Status: %s\n", status.Status)
	if status.Cache != "" {
		r.writePlain("Cache: %s\n", status.Cache)
	}

	return nil
}
