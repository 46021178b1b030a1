package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/replay/internal/cache"
	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/desertthunder/replay/internal/tasks"
)

// API serves the enrichment endpoints. Each operation is wrapped in a cache
// lookup/populate cycle so identical requests inside the freshness window are
// answered from the stored bytes without contacting upstream providers.
type API struct {
	engine tasks.Engine
	store  *cache.Store
	logger *log.Logger
}

// NewAPI creates the endpoint handler. The cache store may be nil, in which
// case every request goes upstream.
func NewAPI(engine tasks.Engine, store *cache.Store, logger *log.Logger) *API {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &API{engine: engine, store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (a *API) Routes() []string {
	return []string{"/recommendations", "/search", "/health"}
}

// ServeHTTP dispatches to the endpoint handlers.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch r.URL.Path {
	case "/recommendations":
		a.recommendations(w, r)
	case "/search":
		a.search(w, r)
	case "/health":
		a.health(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (a *API) recommendations(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.Key("recommendations", map[string]string{"limit": strconv.Itoa(limit)})
	if a.serveCached(w, r, key) {
		return
	}

	recs, err := a.engine.Recommendations(r.Context(), limit, nil)
	if err != nil {
		a.writeEngineError(w, r, err)
		return
	}

	a.respond(w, r, key, recs)
}

func (a *API) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.Key("search", map[string]string{"query": query, "limit": strconv.Itoa(limit)})
	if a.serveCached(w, r, key) {
		return
	}

	recs, err := a.engine.Search(r.Context(), query, limit, nil)
	if err != nil {
		a.writeEngineError(w, r, err)
		return
	}

	a.respond(w, r, key, recs)
}

// health reports liveness plus cache reachability. An unreachable cache does
// not fail the check because caching is an optimization, not a dependency.
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Cache   string `json:"cache,omitempty"`
	}{Status: "ok", Service: "replay"}

	if a.store != nil {
		if err := a.store.Ping(r.Context()); err != nil {
			resp.Cache = "unreachable"
		} else {
			resp.Cache = "ok"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// serveCached writes the stored response bytes when the key is warm. Cache
// failures are logged and treated as misses.
func (a *API) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if a.store == nil {
		return false
	}

	body, err := a.store.Get(r.Context(), key)
	if err != nil {
		a.logger.Warn("cache lookup failed", "key", key, "err", err)
		return false
	}
	if body == nil {
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return true
}

// respond serializes the result, stores it under the cache key, and writes
// the same bytes to the caller. Only successful responses are cached.
func (a *API) respond(w http.ResponseWriter, r *http.Request, key string, recs []models.Recommendation) {
	if recs == nil {
		recs = []models.Recommendation{}
	}

	body, err := json.Marshal(recs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if a.store != nil {
		if err := a.store.Set(r.Context(), key, body, cache.DefaultTTL); err != nil {
			a.logger.Warn("cache write failed", "key", key, "err", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (a *API) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, shared.ErrInvalidInput) {
		status = http.StatusBadRequest
	}

	a.logger.Error("request failed", "path", r.URL.Path, "err", err)
	writeError(w, status, err.Error())
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return tasks.DefaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", shared.ErrInvalidInput)
	}

	return limit, nil
}

// errorResponse is the uniform error envelope returned by every endpoint.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
