// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Connected      prometheus.Gauge
	EventsReceived prometheus.Counter
	ParseErrors    prometheus.Counter
	Commands       prometheus.Counter
	CommandLatency prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected",
			Help:      "Whether the client currently holds a room connection",
		}),
		EventsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_received_total",
			Help:      "Total number of pushed room events received",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Total number of inbound frames dropped as unparseable",
		}),
		Commands: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of outbound room commands issued",
		}),
		CommandLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_latency_seconds",
			Help:      "Outbound command round-trip latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
	}

	prometheus.MustRegister(
		m.Connected,
		m.EventsReceived,
		m.ParseErrors,
		m.Commands,
		m.CommandLatency,
	)

	return m
}

// Monitor wraps the metric set behind nil-safe helpers so components can
// hold an optional *Monitor without guarding every call site.
type Monitor struct {
	metrics      *Metrics
	startTime    time.Time
	requestCount int64
	mutex        sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	expvar.Publish("commands", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.requestCount
	}))

	go http.ListenAndServe(addr, nil)
}

func (m *Monitor) SetConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.metrics.Connected.Set(1)
	} else {
		m.metrics.Connected.Set(0)
	}
}

func (m *Monitor) IncEventsReceived() {
	if m == nil {
		return
	}
	m.metrics.EventsReceived.Inc()
}

func (m *Monitor) IncParseErrors() {
	if m == nil {
		return
	}
	m.metrics.ParseErrors.Inc()
}

func (m *Monitor) IncCommands() {
	if m == nil {
		return
	}
	m.metrics.Commands.Inc()
	m.mutex.Lock()
	m.requestCount++
	m.mutex.Unlock()
}

func (m *Monitor) ObserveCommandLatency(duration time.Duration) {
	if m == nil {
		return
	}
	m.metrics.CommandLatency.Observe(duration.Seconds())
}
