// Package metrics instruments the event log with Prometheus collectors.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"Chirp/internal/core/events"
)

var (
	eventsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_events_appended_total",
		Help: "The total number of events appended to the event log",
	}, []string{"stream", "type"})

	logErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_event_log_errors_total",
		Help: "The total number of failed event log operations",
	}, []string{"op"})

	logDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chirp_event_log_duration_seconds",
		Help:    "Latency of event log operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

const (
	opAppend            = "append"
	opReadByKey         = "read_by_key"
	opReadByCorrelation = "read_by_correlation"
)

// InstrumentedLog records counts, failures and latency of every call to the
// wrapped log
type InstrumentedLog struct {
	next events.Log
}

// NewInstrumentedLog wraps next
func NewInstrumentedLog(next events.Log) *InstrumentedLog {
	return &InstrumentedLog{next: next}
}

func (l *InstrumentedLog) Append(ctx context.Context, event *events.Event) error {
	defer observe(opAppend, time.Now())

	if err := l.next.Append(ctx, event); err != nil {
		logErrors.WithLabelValues(opAppend).Inc()
		return err
	}
	eventsAppended.WithLabelValues(string(event.Stream), string(event.Type)).Inc()
	return nil
}

func (l *InstrumentedLog) ReadByKey(ctx context.Context, stream events.Stream, key string) ([]*events.Event, error) {
	defer observe(opReadByKey, time.Now())

	result, err := l.next.ReadByKey(ctx, stream, key)
	if err != nil {
		logErrors.WithLabelValues(opReadByKey).Inc()
	}
	return result, err
}

func (l *InstrumentedLog) ReadByCorrelation(ctx context.Context, replyToPostID string) ([]*events.Event, error) {
	defer observe(opReadByCorrelation, time.Now())

	result, err := l.next.ReadByCorrelation(ctx, replyToPostID)
	if err != nil {
		logErrors.WithLabelValues(opReadByCorrelation).Inc()
	}
	return result, err
}

func observe(op string, start time.Time) {
	logDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
