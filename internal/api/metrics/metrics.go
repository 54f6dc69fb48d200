// Package metrics defines and registers the custom Prometheus metrics for
// the task management API. It is the single source of truth for metric
// names, labels, and help strings; HTTP-level metrics come from the
// echoprometheus middleware and are not duplicated here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskmgmt"

// ── Notification metrics ─────────────────────────────────────────────────────

// NotificationsSentTotal counts deliveries that the sink accepted.
// Labels:
//   - sink: "broadcast" or "email"
//   - kind: the change event kind ("assigned", "status_changed")
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of change-event deliveries accepted by a sink.",
	},
	[]string{"sink", "kind"},
)

// NotificationsFailedTotal counts deliveries the sink rejected. Failures
// are terminal: there are no retries.
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of change-event deliveries that failed at a sink.",
	},
	[]string{"sink"},
)

// NotificationsDroppedTotal counts events dropped before delivery because a
// sink's queue was full.
var NotificationsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of change events dropped due to a full sink queue.",
	},
	[]string{"sink"},
)

// NotificationQueueDepth tracks the number of events waiting per sink.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of change events pending in each sink queue.",
	},
	[]string{"sink"},
)

// ── Cache metrics ────────────────────────────────────────────────────────────

// CacheRequestsTotal counts cache lookups, labelled hit or miss.
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// CacheInvalidationsTotal counts keys retired by explicit invalidation.
var CacheInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache keys explicitly invalidated by write paths.",
	},
)

// ── Task metrics ─────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TaskMutationsTotal counts task mutations by operation.
// Label:
//   - op: "assign", "update", or "delete"
var TaskMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_mutations_total",
		Help:      "Total number of successful task mutations, by operation.",
	},
	[]string{"op"},
)
