// Package metrics exposes Prometheus metrics for check runs.
//
// A nil *Manager is valid and records nothing, so callers never need to
// check whether metrics are enabled.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "padel"

// Run outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeScrapeFailed  = "scrape_failed"
	OutcomePersistFailed = "persist_failed"
)

// Manager owns a registry and the collectors registered on it.
type Manager struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	scraped       prometheus.Gauge
	newTotal      prometheus.Counter
	notifications *prometheus.CounterVec
	runDuration   prometheus.Histogram
	lastSuccessTS prometheus.Gauge
}

// New creates a Manager with its own registry, including the Go and process
// collectors.
func New() *Manager {
	m := &Manager{registry: prometheus.NewRegistry()}

	m.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Check runs by outcome",
	}, []string{"outcome"})
	m.scraped = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scraped_tournaments",
		Help:      "Tournaments in the last filtered batch",
	})
	m.newTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "new_tournaments_total",
		Help:      "Tournaments reported as new",
	})
	m.notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notification deliveries by channel and outcome",
	}, []string{"channel", "outcome"})
	m.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of check runs",
		Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 300},
	})
	m.lastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful run",
	})

	m.registry.MustRegister(
		m.runs, m.scraped, m.newTotal, m.notifications, m.runDuration, m.lastSuccessTS,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRun records a finished run.
func (m *Manager) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
	if outcome == OutcomeSuccess {
		m.lastSuccessTS.Set(float64(time.Now().Unix()))
	}
}

// SetScraped records the size of the filtered batch.
func (m *Manager) SetScraped(n int) {
	if m == nil {
		return
	}
	m.scraped.Set(float64(n))
}

// AddNew counts newly reported tournaments.
func (m *Manager) AddNew(n int) {
	if m == nil {
		return
	}
	m.newTotal.Add(float64(n))
}

// Notification counts one delivery attempt on channel.
func (m *Manager) Notification(channel string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.notifications.WithLabelValues(channel, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics and /healthz on addr until ctx is done.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
