package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	chatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medstock_chat_requests_total",
			Help: "Total number of assistant chat requests by outcome.",
		},
		[]string{"outcome"},
	)
	chatToolCallsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "medstock_chat_tool_calls_total",
			Help: "Total number of model replies classified as SQL tool calls.",
		},
	)
	chatRejectedStatementsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "medstock_chat_rejected_statements_total",
			Help: "Total number of statements rejected by the SQL safety gate.",
		},
	)
	chatModelLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medstock_chat_model_latency_ms",
			Help:    "Model round-trip latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000},
		},
	)
	assistantQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medstock_assistant_queries_total",
			Help: "Total number of assistant-issued SQL executions by result.",
		},
		[]string{"result"},
	)
	backupRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medstock_backup_runs_total",
			Help: "Total number of backup runs by result.",
		},
		[]string{"result"},
	)
	backupRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "medstock_backup_rows_total",
			Help: "Total number of rows written to backup files.",
		},
	)
	backupDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medstock_backup_duration_seconds",
			Help:    "Backup run duration in seconds.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)
)

func init() {
	prometheus.MustRegister(
		chatRequestsTotal,
		chatToolCallsTotal,
		chatRejectedStatementsTotal,
		chatModelLatencyMs,
		assistantQueriesTotal,
		backupRunsTotal,
		backupRowsTotal,
		backupDurationSeconds,
	)
}

func ObserveChatRequest(outcome string) {
	chatRequestsTotal.WithLabelValues(outcome).Inc()
}

func ObserveChatToolCall() {
	chatToolCallsTotal.Inc()
}

func ObserveRejectedStatement() {
	chatRejectedStatementsTotal.Inc()
}

func ObserveModelLatency(elapsed time.Duration) {
	chatModelLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func ObserveAssistantQuery(result string) {
	assistantQueriesTotal.WithLabelValues(result).Inc()
}

func ObserveBackupRun(result string, rows int64, elapsed time.Duration) {
	backupRunsTotal.WithLabelValues(result).Inc()
	if rows > 0 {
		backupRowsTotal.Add(float64(rows))
	}
	backupDurationSeconds.Observe(elapsed.Seconds())
}
