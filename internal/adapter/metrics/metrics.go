// Package metrics exposes ledger, workflow and HTTP counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

const namespace = "budget"

// Recorder implements the metrics hooks of the ledger and approval services.
type Recorder struct {
	transitions     *prometheus.CounterVec
	debits          *prometheus.CounterVec
	drift           *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_transitions_total",
			Help:      "Committed approval workflow transitions, partitioned by entity type and action.",
		}, []string{"entity", "action"}),
		debits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_debits_total",
			Help:      "Line item debits attempted on expenditure approval, partitioned by result.",
		}, []string{"result"}),
		drift: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_drift_total",
			Help:      "Stored balances or totals that differed from the recomputed value.",
		}, []string{"entity"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Post-commit notifications, partitioned by delivery result.",
		}, []string{"result"}),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by the ops server, partitioned by status code and method.",
		}, []string{"code", "method", "path"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Ops server request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method", "path"}),
	}

	for _, c := range []prometheus.Collector{
		r.transitions, r.debits, r.drift, r.notifications, r.requestCount, r.requestDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Transition counts one committed workflow transition.
func (r *Recorder) Transition(entity domain.EntityType, action domain.ApprovalAction) {
	r.transitions.WithLabelValues(string(entity), string(action)).Inc()
}

// DebitApplied counts a successful approval debit.
func (r *Recorder) DebitApplied() {
	r.debits.WithLabelValues("applied").Inc()
}

// DebitRejected counts a debit refused for insufficient balance.
func (r *Recorder) DebitRejected() {
	r.debits.WithLabelValues("rejected").Inc()
}

// BalanceDrift counts a corrected line item balance or budget total.
func (r *Recorder) BalanceDrift(entity string) {
	r.drift.WithLabelValues(entity).Inc()
}

// Notification counts a notification attempt.
func (r *Recorder) Notification(delivered bool) {
	result := "failed"
	if delivered {
		result = "delivered"
	}
	r.notifications.WithLabelValues(result).Inc()
}

// ObserveRequest records one HTTP request.
func (r *Recorder) ObserveRequest(method, path string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	r.requestCount.WithLabelValues(code, method, path).Inc()
	r.requestDuration.WithLabelValues(code, method, path).Observe(d.Seconds())
}
