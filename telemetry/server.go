package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Latest holds the most recent window stats for readers on other
// goroutines. The simulation itself stays single-threaded.
type Latest struct {
	mu    sync.RWMutex
	stats WindowStats
	ok    bool
}

// Set publishes a completed window.
func (l *Latest) Set(s WindowStats) {
	l.mu.Lock()
	l.stats, l.ok = s, true
	l.mu.Unlock()
}

// Get returns the last published window, if any.
func (l *Latest) Get() (WindowStats, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stats, l.ok
}

// NewRouter builds the HTTP surface of a running simulation:
// /healthz, /metrics when m is set, and /stats when latest is set.
// It opens no listeners, so tests can mount it on httptest.NewServer.
func NewRouter(m *Metrics, latest *Latest) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	if latest != nil {
		r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
			stats, ok := latest.Get()
			if !ok {
				http.Error(w, "no completed window yet", http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(stats)
		})
	}

	return r
}
