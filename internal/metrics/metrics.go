/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "catai_scheduler"

// Skip reasons.
const (
	ReasonNoAudio     = "no_audio"
	ReasonUnsupported = "unsupported"
)

// Metrics holds the scheduler metrics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	schedulesBuilt   prometheus.Counter
	pendingEvents    prometheus.Gauge
	nextEvent        prometheus.Gauge
	eventsFired      prometheus.Counter
	eventsSkipped    *prometheus.CounterVec
	playbackFailures prometheus.Counter
	dispatchDuration prometheus.Histogram
}

// New creates the metrics and registers them on a fresh registry, together
// with the process and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		schedulesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_built_total",
			Help:      "Total number of daily schedules built.",
		}),
		pendingEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_events",
			Help:      "Number of events of the current day which have not fired yet.",
		}),
		nextEvent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "next_event_timestamp_seconds",
			Help:      "Unix timestamp of the next scheduled event, 0 when none is pending today.",
		}),
		eventsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_fired_total",
			Help:      "Total number of events fired.",
		}),
		eventsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_skipped_total",
			Help:      "Total number of fired events which played nothing, by reason.",
		}, []string{"reason"}),
		playbackFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_failures_total",
			Help:      "Total number of failed player invocations.",
		}),
		dispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent selecting and playing a sound per event.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}

	m.registry.MustRegister(
		m.schedulesBuilt,
		m.pendingEvents,
		m.nextEvent,
		m.eventsFired,
		m.eventsSkipped,
		m.playbackFailures,
		m.dispatchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ScheduleBuilt records a freshly built schedule and its pending events.
func (m *Metrics) ScheduleBuilt(pending []time.Time) {
	if m == nil {
		return
	}
	m.schedulesBuilt.Inc()
	m.Pending(pending)
}

// Pending records the events which remain for today.
func (m *Metrics) Pending(pending []time.Time) {
	if m == nil {
		return
	}
	m.pendingEvents.Set(float64(len(pending)))
	if len(pending) == 0 {
		m.nextEvent.Set(0)
		return
	}
	m.nextEvent.Set(float64(pending[0].Unix()))
}

// EventFired records a fired event and how long its dispatch took.
func (m *Metrics) EventFired(took time.Duration) {
	if m == nil {
		return
	}
	m.eventsFired.Inc()
	m.dispatchDuration.Observe(took.Seconds())
}

// EventSkipped records a fired event which played nothing.
func (m *Metrics) EventSkipped(reason string) {
	if m == nil {
		return
	}
	m.eventsSkipped.WithLabelValues(reason).Inc()
}

// PlaybackFailed records a failed player invocation.
func (m *Metrics) PlaybackFailed() {
	if m == nil {
		return
	}
	m.playbackFailures.Inc()
}
