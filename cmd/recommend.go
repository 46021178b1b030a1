package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/replay/internal/formatter"
	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/desertthunder/replay/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Recommend fetches recently played tracks enriched with videos and renders
// them in the requested format.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	quiet := cmd.Bool("quiet")
	outputPath := cmd.String("output")
	if quiet {
		shared.SetLogLevel(r.logger, log.WarnLevel)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r.logger.Info("fetching recommendations", "limit", limit)

	progressCh := r.startProgress(quiet)
	recs, err := r.engine.Recommendations(ctx, limit, progressCh)
	if progressCh != nil {
		close(progressCh)
	}
	if err != nil {
		return err
	}

	return r.renderTracks(recs, format, "Recent Favorites", outputPath)
}

// Search looks up tracks in the catalog and enriches the matches with videos.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query must not be empty", shared.ErrMissingArgument)
	}

	limit := cmd.Int("limit")
	quiet := cmd.Bool("quiet")
	outputPath := cmd.String("output")
	if quiet {
		shared.SetLogLevel(r.logger, log.WarnLevel)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r.logger.Info("searching catalog", "query", query, "limit", limit)

	progressCh := r.startProgress(quiet)
	recs, err := r.engine.Search(ctx, query, limit, progressCh)
	if progressCh != nil {
		close(progressCh)
	}
	if err != nil {
		return err
	}

	return r.renderTracks(recs, format, fmt.Sprintf("Search Results for %q", query), outputPath)
}

// startProgress spawns a consumer that prints progress updates. Quiet mode
// returns a nil channel, which the engine treats as no reporting.
func (r *Runner) startProgress(quiet bool) chan tasks.ProgressUpdate {
	if quiet {
		return nil
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchScrobbles:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SearchCatalog:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.MatchVideos:
				if update.Step == 0 {
					r.writePlain("\n🎬 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			}
		}
	}()

	return progressCh
}

// renderTracks writes formatted tracks to the runner's output, or to a file
// when a path is given.
func (r *Runner) renderTracks(recs []models.Recommendation, format formatter.Format, title, outputPath string) error {
	if outputPath != "" {
		path, err := formatter.WriteExport(recs, format, title, outputPath)
		if err != nil {
			return err
		}
		r.logger.Info("export written", "file", path)
		return r.writePlain("\n✓ Exported %d tracks to %s\n", len(recs), path)
	}

	if format == formatter.FormatJSON {
		return r.writeJSON(recs, true)
	}

	rendered, err := formatter.Render(recs, format, title)
	if err != nil {
		return err
	}
	return r.writePlain("\n%s", rendered)
}
