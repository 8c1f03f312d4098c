// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests      *prometheus.CounterVec
	CounterWeightEntries prometheus.Counter
	CounterUndos         prometheus.Counter
	CounterDashboards    prometheus.Counter
	CounterLogins        *prometheus.CounterVec

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("weightgoal", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("weightgoal", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterWeightEntries := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "weight_entries",
		Help:      "The total number of recorded weight entries",
	})
	counterUndos := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "weight_entries_undone",
		Help:      "The total number of weight entries removed by undo",
	})
	counterDashboards := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "dashboards",
		Help:      "The total number of computed dashboards",
	})
	counterLogins := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins",
		Help:      "Login attempts by method and outcome",
	}, []string{"method", "outcome"})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.0005, 0.001, 0.005, 0.01,
				0.05, 0.1, 0.5, 1, 5, 10,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:      counterRequests,
		CounterWeightEntries: counterWeightEntries,
		CounterUndos:         counterUndos,
		CounterDashboards:    counterDashboards,
		CounterLogins:        counterLogins,
		HistRequestDuration:  histReqDuration,
	}
}
