// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"context"
	"net/http"

	"foodorders/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foodorders"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics registers HTTP collectors on reg. A nil reg means the
// default registry.
func NewServerMetrics(reg prometheus.Registerer, service string) *ServerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// OrderEvents counts committed order events by type. It is wired as one of
// the order event publishers.
type OrderEvents struct {
	total *prometheus.CounterVec
}

func NewOrderEvents(reg prometheus.Registerer) *OrderEvents {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_total",
		Help:      "Committed order lifecycle events.",
	}, []string{"type"})

	reg.MustRegister(total)
	return &OrderEvents{total: total}
}

func (m *OrderEvents) Publish(_ context.Context, events ...order.Event) error {
	for _, e := range events {
		m.total.WithLabelValues(string(e.Type)).Inc()
	}
	return nil
}

func Handler() http.Handler {
	return promhttp.Handler()
}
