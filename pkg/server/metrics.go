package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes server gauges and counters for Prometheus scraping.
type Metrics struct {
	registry *prometheus.Registry
	started  time.Time

	playersConnected prometheus.Gauge
	objectsTotal     prometheus.Gauge
	schedulerDepth   prometheus.Gauge
	uptimeSeconds    prometheus.Gauge
	heapBytes        prometheus.Gauge
	goroutines       prometheus.Gauge
	connectionsTotal prometheus.Counter
	commandsTotal    prometheus.Counter
	relayMessages    prometheus.Counter
}

// NewMetrics creates and registers the metric set on its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
		playersConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mudbits_players_connected",
			Help: "Number of currently connected players.",
		}),
		objectsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mudbits_objects_total",
			Help: "Number of objects in the game database.",
		}),
		schedulerDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mudbits_scheduler_pending_tasks",
			Help: "Number of tasks waiting in the scheduler.",
		}),
		uptimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mudbits_uptime_seconds",
			Help: "Seconds since the server started.",
		}),
		heapBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mudbits_heap_alloc_bytes",
			Help: "Bytes of allocated heap objects.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mudbits_goroutines",
			Help: "Number of running goroutines.",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudbits_connections_total",
			Help: "Total connections accepted since start.",
		}),
		commandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudbits_commands_processed_total",
			Help: "Total commands processed since start.",
		}),
		relayMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudbits_relay_messages_total",
			Help: "Total messages bridged to or from Discord.",
		}),
	}
	m.registry.MustRegister(
		m.playersConnected, m.objectsTotal, m.schedulerDepth,
		m.uptimeSeconds, m.heapBytes, m.goroutines,
		m.connectionsTotal, m.commandsTotal, m.relayMessages,
	)
	return m
}

// Update refreshes the gauges from live server state. Called on scrape via
// the handler wrapper and from the game's periodic tick.
func (m *Metrics) Update(g *Game) {
	m.playersConnected.Set(float64(g.Conns.Count()))
	m.objectsTotal.Set(float64(len(g.DB.Objects)))
	m.schedulerDepth.Set(float64(g.Queue.Len()))
	m.uptimeSeconds.Set(time.Since(m.started).Seconds())

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.heapBytes.Set(float64(ms.HeapAlloc))
	m.goroutines.Set(float64(runtime.NumGoroutine()))
}

// ConnectionAccepted counts a new inbound connection.
func (m *Metrics) ConnectionAccepted() {
	m.connectionsTotal.Inc()
}

// CommandProcessed counts one dispatched command.
func (m *Metrics) CommandProcessed() {
	m.commandsTotal.Inc()
}

// RelayMessage counts one bridged message.
func (m *Metrics) RelayMessage() {
	m.relayMessages.Inc()
}

// Handler serves the metrics endpoint, refreshing gauges per scrape.
func (m *Metrics) Handler(g *Game) http.Handler {
	inner := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.Update(g)
		inner.ServeHTTP(w, r)
	})
}
