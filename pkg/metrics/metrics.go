package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector of the application. It is separate from
// the global default so that one-shot runs can push exactly these series.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ListingPagesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "census_listing_pages_total",
			Help: "Total number of listing pages fetched.",
		},
		[]string{"status"}, // status: success, failure, empty
	)

	ProfilesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "census_profiles_total",
			Help: "Total number of profile pages processed.",
		},
		[]string{"result", "reason"}, // result: parsed, dropped
	)

	FetchDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "census_fetch_duration_seconds",
			Help:    "Duration of page fetches.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"fetcher"},
	)

	CensusRunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "census_runs_total",
			Help: "Total number of census pipeline runs.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}
