// Package metrics exposes Prometheus counters for game sessions and the
// HTTP handler that serves them.
package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/t2048/internal/engine"
)

// Recorder tracks gameplay events. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry  *prometheus.Registry
	sessions  prometheus.Counter
	active    prometheus.Gauge
	moves     *prometheus.CounterVec
	gamesOver prometheus.Counter
	maxTile   prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "t2048_sessions_total",
			Help: "Total number of game sessions started",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "t2048_active_sessions",
			Help: "Number of sessions currently connected",
		}),
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "t2048_moves_total",
				Help: "Total number of moves that changed the board",
			},
			[]string{"direction"},
		),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "t2048_games_over_total",
			Help: "Total number of games that ran out of moves",
		}),
		maxTile: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "t2048_final_max_tile",
			Help:    "Highest tile on the board when a game ends",
			Buckets: prometheus.ExponentialBuckets(64, 2, 8), // 64 .. 8192
		}),
	}
	r.registry.MustRegister(r.sessions, r.active, r.moves, r.gamesOver, r.maxTile)
	return r
}

// SessionStarted counts a new connected session.
func (r *Recorder) SessionStarted() {
	if r == nil {
		return
	}
	r.sessions.Inc()
	r.active.Inc()
}

// SessionEnded marks a session as disconnected.
func (r *Recorder) SessionEnded() {
	if r == nil {
		return
	}
	r.active.Dec()
}

// Move counts a move that changed the board.
func (r *Recorder) Move(dir engine.Direction) {
	if r == nil {
		return
	}
	r.moves.WithLabelValues(dir.String()).Inc()
}

// GameOver counts a finished game and its highest tile.
func (r *Recorder) GameOver(maxTile int) {
	if r == nil {
		return
	}
	r.gamesOver.Inc()
	r.maxTile.Observe(float64(maxTile))
}

// Handler serves /metrics and /healthz.
func (r *Recorder) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})

	gatherer := prometheus.Gatherer(prometheus.NewRegistry())
	if r != nil {
		gatherer = r.registry
	}
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return router
}
