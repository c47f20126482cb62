package imagecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "scout"

type metrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	fetches       prometheus.Counter
	fetchFailures prometheus.Counter
	writeFailures prometheus.Counter
	prefetched    prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "imagecache",
			Name:      name,
			Help:      help,
		})
	}
	return &metrics{
		hits:          counter("hits_total", "Assets served from the local cache."),
		misses:        counter("misses_total", "Lookups that returned no asset."),
		fetches:       counter("fetches_total", "Remote fetch attempts."),
		fetchFailures: counter("fetch_failures_total", "Remote fetches that failed or returned non-2xx."),
		writeFailures: counter("write_failures_total", "Fetched assets that could not be persisted."),
		prefetched:    counter("prefetched_total", "Assets newly fetched by prefetch."),
	}
}
