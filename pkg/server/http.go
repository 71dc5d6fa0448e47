package server

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bastiangx/wordserve/internal/logger"
	"github.com/bastiangx/wordserve/pkg/config"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
)

type httpAPI struct {
	completer suggest.ICompleter
	config    *config.Config
	log       *log.Logger
	access    *log.Logger
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewHTTPHandler returns the HTTP API:
//
//	GET /predict?p=<prefix>&l=<limit>   ranked predictions
//	GET /predict/{prefix}               single best prediction
//	GET /stats                          dictionary statistics
//	GET /health                         liveness
func NewHTTPHandler(completer suggest.ICompleter, cfg *config.Config) http.Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	api := &httpAPI{completer: completer, config: cfg, log: logger.New("http")}
	if log.GetLevel() <= log.DebugLevel {
		api.access = logger.NewAccessLogger(os.Stderr, "http")
	}

	r := mux.NewRouter()
	r.HandleFunc("/predict", api.predict).Methods(http.MethodGet)
	r.HandleFunc("/predict/{prefix}", api.predictOne).Methods(http.MethodGet)
	r.HandleFunc("/stats", api.stats).Methods(http.MethodGet)
	r.HandleFunc("/health", api.health).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(api.notFound)

	return alice.New(api.recoverHandler, api.loggerHandler).Then(r)
}

// NewHTTPServer wraps the API in an http.Server listening on addr.
func NewHTTPServer(addr string, completer suggest.ICompleter, cfg *config.Config) *http.Server {
	return &http.Server{
		Handler:      NewHTTPHandler(completer, cfg),
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
}

func (a *httpAPI) loggerHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.access == nil {
			h.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		a.access.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"took", time.Since(start))
	})
}

func (a *httpAPI) recoverHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.log.Error("panic serving request", "path", r.URL.Path, "panic", rec)
				a.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		h.ServeHTTP(w, r)
	})
}

func (a *httpAPI) predict(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("p")
	if err := validatePrefix(a.config, prefix); err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("l"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	start := time.Now()
	suggestions := a.completer.Complete(prefix, a.config.ClampLimit(limit))
	elapsed := time.Since(start)

	a.writeJSON(w, http.StatusOK, CompletionResponse{
		Suggestions: rankSuggestions(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (a *httpAPI) predictOne(w http.ResponseWriter, r *http.Request) {
	prefix := mux.Vars(r)["prefix"]
	if err := validatePrefix(a.config, prefix); err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	word, ok := a.completer.Predict(prefix)
	if !ok {
		a.writeError(w, http.StatusNotFound, "no prediction")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"prefix": prefix, "word": word})
}

func (a *httpAPI) stats(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, a.completer.Stats())
}

func (a *httpAPI) health(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *httpAPI) notFound(w http.ResponseWriter, r *http.Request) {
	a.writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
}

func (a *httpAPI) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Errorf("Encoding response: %v", err)
	}
}

func (a *httpAPI) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, CompletionError{Error: message, Code: status})
}
