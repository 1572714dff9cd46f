package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	CacheRequests      *prometheus.CounterVec
	CacheInvalidations prometheus.Counter
	CacheDiscarded     prometheus.Counter
	AuthFailures       prometheus.Counter
}

// New creates the service metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophis",
			Subsystem: "posts_cache",
			Name:      "requests_total",
			Help:      "Post listing cache lookups by result (hit or miss).",
		}, []string{"result"}),
		CacheInvalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gophis",
			Subsystem: "posts_cache",
			Name:      "invalidations_total",
			Help:      "Post listing cache entries invalidated after a mutation.",
		}),
		CacheDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gophis",
			Subsystem: "posts_cache",
			Name:      "discarded_total",
			Help:      "Listings read from storage but not cached because a mutation happened meanwhile.",
		}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gophis",
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Requests rejected because the bearer credential did not resolve.",
		}),
	}

	reg.MustRegister(m.CacheRequests, m.CacheInvalidations, m.CacheDiscarded, m.AuthFailures)
	return m
}

func (m *Metrics) CacheHit() {
	m.CacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	m.CacheRequests.WithLabelValues("miss").Inc()
}
