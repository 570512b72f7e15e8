package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "agrimitra"

// Metrics contains the counters exposed by the marketplace engines.
type Metrics struct {
	OrdersPlaced prometheus.Counter
	// Order status changes labelled by previous and new status.
	OrderTransitions *prometheus.CounterVec

	RentalsCreated prometheus.Counter
	// Bookings refused before any write, labelled by reason.
	RentalsRefused *prometheus.CounterVec

	ObservationsRecorded prometheus.Counter

	HTTPRequests *prometheus.CounterVec
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "order", Name: "placed_total",
			Help: "Number of bids placed.",
		}),
		OrderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "order", Name: "transitions_total",
			Help: "Number of order status changes.",
		}, []string{"from", "to"}),
		RentalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "rental", Name: "created_total",
			Help: "Number of rentals booked.",
		}),
		RentalsRefused: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "rental", Name: "refused_total",
			Help: "Number of rental bookings refused.",
		}, []string{"reason"}),
		ObservationsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "market", Name: "observations_recorded_total",
			Help: "Number of market price observations appended.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "http", Name: "requests_total",
			Help: "Number of HTTP requests served.",
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(
		m.OrdersPlaced,
		m.OrderTransitions,
		m.RentalsCreated,
		m.RentalsRefused,
		m.ObservationsRecorded,
		m.HTTPRequests,
	)
	return m
}

// NopMetrics returns counters registered nowhere.
func NopMetrics() *Metrics {
	return New(prometheus.NewRegistry())
}
