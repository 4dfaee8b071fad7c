// Package metrics exposes Prometheus collectors for the enrichment service.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesFetchedTotal    *prometheus.CounterVec
	boardWritesTotal     *prometheus.CounterVec
	taskRunsTotal        *prometheus.CounterVec
	taskDurationSeconds  *prometheus.HistogramVec
	webhookEventsTotal   *prometheus.CounterVec
	recordsProcessedTotal prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		pagesFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enrich_pages_fetched_total",
				Help: "Total number of pages fetched, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		boardWritesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enrich_board_writes_total",
				Help: "Total number of board column writes, labeled by task and outcome.",
			},
			[]string{"task", "outcome"},
		)

		taskRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enrich_task_runs_total",
				Help: "Total number of task runs, labeled by task and status.",
			},
			[]string{"task", "status"},
		)

		taskDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "enrich_task_duration_seconds",
				Help:    "Duration of full task runs in seconds.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"task"},
		)

		webhookEventsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enrich_webhook_events_total",
				Help: "Total number of webhook events received, labeled by kind.",
			},
			[]string{"kind"},
		)

		recordsProcessedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "enrich_records_processed_total",
				Help: "Total number of board records processed across all tasks.",
			},
		)
	})
}

// ObservePageFetch records the outcome ("ok", "error", "skipped") of one page fetch.
func ObservePageFetch(outcome string) {
	if pagesFetchedTotal == nil {
		return
	}
	pagesFetchedTotal.WithLabelValues(outcome).Inc()
}

// ObserveBoardWrite records the outcome ("applied", "skipped", "failed") of one column write.
func ObserveBoardWrite(task, outcome string) {
	if boardWritesTotal == nil {
		return
	}
	boardWritesTotal.WithLabelValues(task, outcome).Inc()
}

// ObserveTaskRun records one finished task run and its duration.
func ObserveTaskRun(task, status string, d time.Duration) {
	if taskRunsTotal == nil {
		return
	}
	taskRunsTotal.WithLabelValues(task, status).Inc()
	taskDurationSeconds.WithLabelValues(task).Observe(d.Seconds())
}

// ObserveWebhookEvent records one inbound webhook event ("challenge", "trigger", "rejected").
func ObserveWebhookEvent(kind string) {
	if webhookEventsTotal == nil {
		return
	}
	webhookEventsTotal.WithLabelValues(kind).Inc()
}

// ObserveRecord counts one processed record.
func ObserveRecord() {
	if recordsProcessedTotal == nil {
		return
	}
	recordsProcessedTotal.Inc()
}
