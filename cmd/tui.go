package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/desertthunder/replay/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI against a running enrichment
// service.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	baseURL := cmd.String("url")
	if baseURL == "" {
		baseURL = r.serviceURL()
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/replay-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	client := services.NewClient(baseURL, r.httpClient)
	if _, err := client.Health(ctx); err != nil {
		return fmt.Errorf("%w: no enrichment service at %s (start one with 'replay serve')", shared.ErrServiceUnavailable, baseURL)
	}

	model := ui.NewModel(ctx, client, ui.NewSession())
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
