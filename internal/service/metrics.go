package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики наполнения каталога. Регистрируются один раз на процесс.
var (
	seedRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Name:      "seed_runs_total",
		Help:      "Seed runs by result.",
	}, []string{"result"})

	seedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pokedex",
		Name:      "seed_records",
		Help:      "Records inserted by the last successful seed.",
	})

	seedDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pokedex",
		Name:      "seed_duration_seconds",
		Help:      "Seed run duration.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
)

// seedOutcome - значение метки result для ошибки прогона.
func seedOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrFetchFailed):
		return "fetch_failed"
	case errors.Is(err, ErrEmptyListing):
		return "empty_listing"
	case errors.Is(err, ErrListingTruncated):
		return "listing_truncated"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
