// Package metrics exposes Prometheus instrumentation for the booking step.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	// CatalogFetches counts catalog loads by source and outcome ("ok", "error").
	CatalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skiphire_catalog_fetches_total",
			Help: "Total number of catalog fetch attempts",
		},
		[]string{"source", "outcome"},
	)

	// CatalogFetchDuration tracks how long catalog loads take.
	CatalogFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skiphire_catalog_fetch_duration_seconds",
			Help:    "Catalog fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Selections counts skip selections that changed the active choice.
	Selections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skiphire_selections_total",
			Help: "Total number of skip selections",
		},
	)

	// PageChanges counts catalog page navigations.
	PageChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skiphire_page_changes_total",
			Help: "Total number of catalog page changes",
		},
	)

	// HandOffs counts exits from the step by action ("continue", "back", "quit").
	HandOffs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skiphire_handoffs_total",
			Help: "Total number of wizard step exits",
		},
		[]string{"action"},
	)
)

// ObserveCatalogFetch records the outcome and latency of one catalog load.
func ObserveCatalogFetch(source string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CatalogFetches.WithLabelValues(source, outcome).Inc()
	CatalogFetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics listener started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
