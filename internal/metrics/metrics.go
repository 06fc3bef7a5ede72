// Package metrics Prometheus 指标
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fast_note"

// Metrics holds every collector of the service. A nil *Metrics is valid and records nothing.
// Metrics 服务指标集合，nil 值可安全调用
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	HistorySnapshots     prometheus.Counter
	SnapshotsSkipped     prometheus.Counter
	EditConflicts        prometheus.Counter
	EditConflictFailures prometheus.Counter

	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge
	DBWaitSeconds     prometheus.Gauge

	WriteQueueLanes   prometheus.Gauge
	WriteQueueWaiting prometheus.Gauge
	WorkerPoolActive  prometheus.Gauge
	WorkerPoolQueued  prometheus.Gauge
}

// New creates the collectors and registers them on reg
// New 创建并注册指标
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		HistorySnapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "note", Name: "history_snapshots_total",
			Help: "History rows written by note edits.",
		}),
		SnapshotsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "note", Name: "history_snapshots_skipped_total",
			Help: "Changed edits of a pristine default note that wrote no history.",
		}),
		EditConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "note", Name: "edit_conflicts_total",
			Help: "Optimistic version conflicts seen by note edits.",
		}),
		EditConflictFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "note", Name: "edit_conflict_failures_total",
			Help: "Note edits rejected after exhausting conflict retries.",
		}),

		DBOpenConnections: newGauge("db", "open_connections", "Established connections."),
		DBInUse:           newGauge("db", "in_use_connections", "Connections currently in use."),
		DBIdle:            newGauge("db", "idle_connections", "Idle connections."),
		DBWaitCount:       newGauge("db", "wait_count", "Total connections waited for."),
		DBWaitSeconds:     newGauge("db", "wait_duration_seconds", "Total time blocked waiting for a connection."),

		WriteQueueLanes:   newGauge("write_queue", "active_lanes", "Owners with a write running or queued."),
		WriteQueueWaiting: newGauge("write_queue", "waiting", "Writes waiting for their owner's turn."),
		WorkerPoolActive:  newGauge("worker_pool", "active", "Tasks running on the worker pool."),
		WorkerPoolQueued:  newGauge("worker_pool", "queued", "Tasks queued on the worker pool."),
	}

	for _, c := range []prometheus.Collector{
		m.HTTPRequests, m.HTTPDuration,
		m.HistorySnapshots, m.SnapshotsSkipped, m.EditConflicts, m.EditConflictFailures,
		m.DBOpenConnections, m.DBInUse, m.DBIdle, m.DBWaitCount, m.DBWaitSeconds,
		m.WriteQueueLanes, m.WriteQueueWaiting, m.WorkerPoolActive, m.WorkerPoolQueued,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func newGauge(subsystem, name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

// ObserveHTTP 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) SnapshotWritten() {
	if m != nil {
		m.HistorySnapshots.Inc()
	}
}

func (m *Metrics) SnapshotSkipped() {
	if m != nil {
		m.SnapshotsSkipped.Inc()
	}
}

func (m *Metrics) EditConflict() {
	if m != nil {
		m.EditConflicts.Inc()
	}
}

func (m *Metrics) EditConflictFailed() {
	if m != nil {
		m.EditConflictFailures.Inc()
	}
}

// SetDBStats 发布连接池统计
func (m *Metrics) SetDBStats(s sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(s.OpenConnections))
	m.DBInUse.Set(float64(s.InUse))
	m.DBIdle.Set(float64(s.Idle))
	m.DBWaitCount.Set(float64(s.WaitCount))
	m.DBWaitSeconds.Set(s.WaitDuration.Seconds())
}

// SetQueues publishes write queue and worker pool occupancy
// SetQueues 发布写队列与 worker pool 占用
func (m *Metrics) SetQueues(lanes, waiting int, active int64, queued int) {
	if m == nil {
		return
	}
	m.WriteQueueLanes.Set(float64(lanes))
	m.WriteQueueWaiting.Set(float64(waiting))
	m.WorkerPoolActive.Set(float64(active))
	m.WorkerPoolQueued.Set(float64(queued))
}
