package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ScanCycles counts completed scan cycles per interface
	ScanCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wsurvey",
			Name:      "scan_cycles_total",
			Help:      "Total number of completed scan cycles",
		},
		[]string{"interface"},
	)

	// ScanErrors counts failed scan attempts
	ScanErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wsurvey",
			Name:      "scan_errors_total",
			Help:      "Total number of failed scan attempts",
		},
		[]string{"interface"},
	)

	// NetworksObserved counts networks seen across all scan cycles
	NetworksObserved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wsurvey",
			Name:      "networks_observed_total",
			Help:      "Total number of networks observed across scan cycles",
		},
		[]string{"interface"},
	)

	// ElementsDecoded counts decoded information elements by element name
	ElementsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wsurvey",
			Name:      "elements_decoded_total",
			Help:      "Total number of information elements decoded",
		},
		[]string{"element"},
	)

	// DecodeDuration observes the time spent decoding one IE buffer
	DecodeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wsurvey",
			Name:      "decode_duration_seconds",
			Help:      "Time spent decoding the IE buffer of one network",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// This function is idempotent and can be called multiple times safely.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(ScanCycles)
		prometheus.DefaultRegisterer.Register(ScanErrors)
		prometheus.DefaultRegisterer.Register(NetworksObserved)
		prometheus.DefaultRegisterer.Register(ElementsDecoded)
		prometheus.DefaultRegisterer.Register(DecodeDuration)
	})
}
