// package formatter provides functions to export track recommendations to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
)

// Format identifies an output rendering for one-shot commands.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format flag value. An empty value selects the
// table format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatCSV, FormatMarkdown:
		return Format(s), nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want table, json, csv, or markdown)", shared.ErrInvalidFlag, s)
	}
}

// Render returns the tracks in the requested format. The title heads table
// and markdown output and is ignored for csv and json.
func Render(recs []models.Recommendation, format Format, title string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(recs)
	case FormatCSV:
		return ExportToCSV(recs)
	case FormatMarkdown:
		return ExportToMarkdown(recs, title)
	case FormatTable, "":
		return ExportToText(recs, title)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, string(format))
	}
}

// ExportToCSV converts tracks to CSV format with columns: Name, Artist, Playcount, URL, YouTubeID
func ExportToCSV(recs []models.Recommendation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Artist", "Playcount", "URL", "YouTubeID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range recs {
		record := []string{
			rec.Name,
			rec.Artist,
			strconv.Itoa(rec.Playcount),
			rec.URL,
			rec.YouTubeID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts tracks to Markdown format with watch links for matched videos
func ExportToMarkdown(recs []models.Recommendation, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Tracks"
	}

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(recs)))

	buf.WriteString("## Tracks\n\n")
	for i, rec := range recs {
		line := fmt.Sprintf("%d. %s - %s (%s)", i+1, rec.Artist, rec.Name, plays(rec.Playcount))
		if rec.HasVideo() {
			line += fmt.Sprintf(" [watch](%s)", rec.WatchURL())
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts tracks to plain text format
func ExportToText(recs []models.Recommendation, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Tracks"
	}

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(recs)))

	for i, rec := range recs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, rec.Artist, rec.Name, plays(rec.Playcount)))
		if rec.HasVideo() {
			buf.WriteString(fmt.Sprintf("   %s\n", rec.WatchURL()))
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders tracks as indented JSON with the same field names the
// service endpoints return.
func ExportToJSON(recs []models.Recommendation) ([]byte, error) {
	return shared.MarshalJSON(recs, true)
}

func plays(count int) string {
	if count == 1 {
		return "1 play"
	}
	return fmt.Sprintf("%d plays", count)
}

// WriteExport renders tracks in the requested format and writes them to
// filepath. An empty filepath picks a default name for the format.
func WriteExport(recs []models.Recommendation, format Format, title, filepath string) (string, error) {
	switch format {
	case FormatCSV:
		return WriteCSVExport(recs, filepath)
	case FormatMarkdown:
		return WriteMarkdownExport(recs, title, filepath)
	case FormatJSON:
		return WriteJSONExport(recs, filepath)
	default:
		return WriteTextExport(recs, title, filepath)
	}
}

// WriteCSVExport writes tracks to a CSV file.
//
// Defaults to tracks.csv as the filename.
func WriteCSVExport(recs []models.Recommendation, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tracks.csv"
	}

	data, err := ExportToCSV(recs)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteMarkdownExport writes tracks to a Markdown file.
//
// Defaults to tracks.md as the filename.
func WriteMarkdownExport(recs []models.Recommendation, title, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tracks.md"
	}

	data, err := ExportToMarkdown(recs, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport writes tracks to a plain text file.
//
// Defaults to tracks.txt as the filename.
func WriteTextExport(recs []models.Recommendation, title, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tracks.txt"
	}

	data, err := ExportToText(recs, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteJSONExport writes tracks to a JSON file.
//
// Defaults to tracks.json as the filename.
func WriteJSONExport(recs []models.Recommendation, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tracks.json"
	}

	data, err := ExportToJSON(recs)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filepath, nil
}
