package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/replay/internal/cache"
	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/shared"
	tu "github.com/desertthunder/replay/internal/testing"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

func testApp(r *Runner) *cli.Command {
	return &cli.Command{Name: "replay", Commands: r.register()}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			scrobbler := services.NewLastFMService("", "key", "listener")
			video := services.NewYouTubeService("", "key")
			store := cache.NewStoreWithClient(redis.NewClient(&redis.Options{Addr: "localhost:6379"}))
			engine := &tu.MockEngine{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "custom.toml",
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Scrobbler:  scrobbler,
				Video:      video,
				Store:      store,
				Engine:     engine,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "custom.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.scrobbler != scrobbler {
				t.Error("expected scrobbler to be set")
			}
			if runner.video != video {
				t.Error("expected video searcher to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
			if runner.engine != engine {
				t.Error("expected provided engine to be used")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with empty configPath uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "",
			})

			if runner.configPath != defaultConfigPath {
				t.Errorf("expected default configPath, got %s", runner.configPath)
			}
		})

		t.Run("without engine builds one", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.engine == nil {
				t.Error("expected an engine to be constructed")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("Recommend", func(t *testing.T) {
		tracks := []models.Recommendation{
			{Name: "Imagine", Artist: "John Lennon", URL: "https://last.fm/u1", Playcount: 5, YouTubeID: "abc123"},
		}

		t.Run("renders JSON output", func(t *testing.T) {
			output := &bytes.Buffer{}
			engine := &tu.MockEngine{Recs: tracks}
			runner := NewRunner(RunnerOpts{Output: output, Engine: engine, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "recommend", "--quiet", "--format", "json", "--limit", "3"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if engine.RecommendationsCalls != 1 {
				t.Errorf("expected 1 engine call, got %d", engine.RecommendationsCalls)
			}
			if engine.GotLimit != 3 {
				t.Errorf("expected limit 3, got %d", engine.GotLimit)
			}
			if !strings.Contains(output.String(), `"name": "Imagine"`) {
				t.Errorf("expected JSON track list, got %s", output.String())
			}
		})

		t.Run("rejects unknown format", func(t *testing.T) {
			engine := &tu.MockEngine{Recs: tracks}
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Engine: engine, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "recommend", "--quiet", "--format", "yaml"})
			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
			if engine.RecommendationsCalls != 0 {
				t.Error("expected engine not to be called for a bad format")
			}
		})

		t.Run("propagates engine failure", func(t *testing.T) {
			engine := &tu.MockEngine{Err: shared.ErrAPIRequest}
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Engine: engine, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "recommend", "--quiet"})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("writes export file", func(t *testing.T) {
			exportPath := filepath.Join(t.TempDir(), "out.csv")
			output := &bytes.Buffer{}
			engine := &tu.MockEngine{Recs: tracks}
			runner := NewRunner(RunnerOpts{Output: output, Engine: engine, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "recommend", "--quiet", "--format", "csv", "--output", exportPath})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			tu.AssertFileExists(t, exportPath)
			if content := tu.MustReadFile(t, exportPath); !strings.Contains(content, "Imagine,John Lennon") {
				t.Errorf("expected CSV row in export, got %s", content)
			}
			if !strings.Contains(output.String(), "✓ Exported 1 tracks") {
				t.Errorf("expected export confirmation, got %s", output.String())
			}
		})
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("passes the query to the engine", func(t *testing.T) {
			output := &bytes.Buffer{}
			engine := &tu.MockEngine{Recs: []models.Recommendation{{Name: "Imagine", Artist: "John Lennon", YouTubeID: "abc123"}}}
			runner := NewRunner(RunnerOpts{Output: output, Engine: engine, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "search", "--quiet", "--format", "json", "imagine"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if engine.SearchCalls != 1 {
				t.Errorf("expected 1 engine call, got %d", engine.SearchCalls)
			}
			if engine.GotQuery != "imagine" {
				t.Errorf("expected query passed through, got %q", engine.GotQuery)
			}
		})

		t.Run("rejects a blank query", func(t *testing.T) {
			engine := &tu.MockEngine{}
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Engine: engine, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "search", "--quiet"})
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
			if engine.SearchCalls != 0 {
				t.Error("expected engine not to be called for a blank query")
			}
		})
	})

	t.Run("Setup", func(t *testing.T) {
		t.Run("creates a config file", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "setup", "--config", configPath})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			tu.AssertFileExists(t, configPath)
			if !strings.Contains(output.String(), "✓ Configuration file created") {
				t.Errorf("expected confirmation, got %s", output.String())
			}
			if runner.configPath != configPath {
				t.Errorf("expected runner configPath updated, got %s", runner.configPath)
			}
		})

		t.Run("leaves an existing config alone", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte("# mine\n"), 0644); err != nil {
				t.Fatalf("failed to seed config: %v", err)
			}

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "setup", "--config", configPath})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.Contains(output.String(), "already exists") {
				t.Errorf("expected existing-file notice, got %s", output.String())
			}
			if content := tu.MustReadFile(t, configPath); content != "# mine\n" {
				t.Errorf("expected config untouched, got %s", content)
			}
		})
	})

	t.Run("Status", func(t *testing.T) {
		t.Run("reports service and cache health", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"status":"ok","service":"replay","cache":"ok"}`)
			}))
			defer ts.Close()

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "status", "--url", ts.URL})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, "Status: ok") || !strings.Contains(result, "Cache: ok") {
				t.Errorf("expected health summary, got %s", result)
			}
		})

		t.Run("fails when the service is unreachable", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

			err := testApp(runner).Run(context.Background(), []string{"replay", "status", "--url", "http://127.0.0.1:1"})
			if err == nil {
				t.Fatal("expected error for unreachable service")
			}
			if !strings.Contains(output.String(), "✗ Service unreachable") {
				t.Errorf("expected unreachable notice, got %s", output.String())
			}
		})
	})
}
