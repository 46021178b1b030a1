// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/tasks"
)

// MockEngine is a test double for [tasks.Engine]. It records call arguments
// and emits a single progress update so consumers are exercised.
type MockEngine struct {
	Recs                 []models.Recommendation
	Err                  error
	RecommendationsCalls int
	SearchCalls          int
	GotQuery             string
	GotLimit             int
}

func (m *MockEngine) Recommendations(ctx context.Context, limit int, progress chan<- tasks.ProgressUpdate) ([]models.Recommendation, error) {
	m.RecommendationsCalls++
	m.GotLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if progress != nil {
		progress <- tasks.ProgressUpdate{Phase: tasks.FetchScrobbles, Message: "fetching scrobbles"}
	}
	return m.Recs, nil
}

func (m *MockEngine) Search(ctx context.Context, query string, limit int, progress chan<- tasks.ProgressUpdate) ([]models.Recommendation, error) {
	m.SearchCalls++
	m.GotQuery = query
	m.GotLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if progress != nil {
		progress <- tasks.ProgressUpdate{Phase: tasks.SearchCatalog, Message: "searching catalog"}
	}
	return m.Recs, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
