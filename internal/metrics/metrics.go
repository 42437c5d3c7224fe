package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hub"

const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultDisabled = "disabled"
	ResultInvalid  = "invalid"
)

type Metrics struct {
	onboardings    *prometheus.CounterVec
	uptimeRequests *prometheus.CounterVec
	notifications  *prometheus.CounterVec
	backfillRuns   prometheus.Counter
	wsClients      prometheus.Gauge
}

var (
	once     sync.Once
	instance *Metrics
)

// Global returns the process-wide collectors. They are registered with the
// default registry exactly once.
func Global() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			onboardings: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "onboarding",
				Name:      "requests_total",
				Help:      "Onboarding requests, labeled by outcome",
			}, []string{"result"}),
			uptimeRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "uptime",
				Name:      "requests_total",
				Help:      "Calls to the uptime monitoring vendor, labeled by operation and result",
			}, []string{"op", "result"}),
			notifications: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notify",
				Name:      "webhooks_total",
				Help:      "Incident webhook deliveries, labeled by channel and result",
			}, []string{"channel", "result"}),
			backfillRuns: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "monitor_backfill_runs_total",
				Help:      "Monitor backfill job executions",
			}),
			wsClients: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "realtime",
				Name:      "connected_clients",
				Help:      "Admin dashboard websocket connections",
			}),
		}
	})
	return instance
}

func (m *Metrics) Onboarding(result string) {
	if m == nil {
		return
	}
	m.onboardings.WithLabelValues(result).Inc()
}

func (m *Metrics) UptimeRequest(op, result string) {
	if m == nil {
		return
	}
	m.uptimeRequests.WithLabelValues(op, result).Inc()
}

func (m *Metrics) Notification(channel string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.notifications.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) BackfillRun() {
	if m == nil {
		return
	}
	m.backfillRuns.Inc()
}

func (m *Metrics) WebsocketClients(delta float64) {
	if m == nil {
		return
	}
	m.wsClients.Add(delta)
}
