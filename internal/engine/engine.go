/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/diagridio/catai-scheduler/errors"
	"github.com/diagridio/catai-scheduler/internal/metrics"
	"github.com/diagridio/catai-scheduler/internal/runstate"
	"github.com/diagridio/catai-scheduler/internal/scheduler"
	"github.com/diagridio/catai-scheduler/internal/sound"
)

const (
	DefaultEventChunk    = 30 * time.Second
	DefaultMidnightChunk = 60 * time.Second
	DefaultMidnightGrace = 2 * time.Second
)

// Dispatcher plays one event. It is called synchronously from the loop.
type Dispatcher interface {
	Dispatch(ctx context.Context) error
}

// Options are the options for creating a new engine instance.
type Options struct {
	Log        logr.Logger
	Clock      clock.Clock
	Builder    *scheduler.Builder
	Dispatcher Dispatcher

	// RunState is the shared stop flag. A new running state is created if
	// nil.
	RunState *runstate.State

	// Metrics is optional.
	Metrics *metrics.Metrics

	// EventChunk is the longest single sleep while waiting for an event.
	EventChunk time.Duration

	// MidnightChunk is the longest single sleep while waiting for the next
	// day.
	MidnightChunk time.Duration

	// MidnightGrace is added to the next midnight before rebuilding.
	// Defaults to 2s when nil.
	MidnightGrace *time.Duration

	// OnTransition is called with every state the loop enters.
	OnTransition func(State)
}

// Engine runs the daily scheduling loop.
type Engine struct {
	log           logr.Logger
	clock         clock.Clock
	builder       *scheduler.Builder
	dispatcher    Dispatcher
	runState      *runstate.State
	metrics       *metrics.Metrics
	eventChunk    time.Duration
	midnightChunk time.Duration
	midnightGrace time.Duration
	onTransition  func(State)

	state   atomic.Int32
	running atomic.Bool
}

func New(opts Options) (*Engine, error) {
	if opts.Builder == nil {
		return nil, errors.New("builder is required")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if opts.EventChunk < 0 || opts.MidnightChunk < 0 {
		return nil, errors.Newf("chunk durations must not be negative: event=%s midnight=%s",
			opts.EventChunk, opts.MidnightChunk)
	}

	e := &Engine{
		log:           opts.Log.WithName("engine"),
		clock:         opts.Clock,
		builder:       opts.Builder,
		dispatcher:    opts.Dispatcher,
		runState:      opts.RunState,
		metrics:       opts.Metrics,
		eventChunk:    opts.EventChunk,
		midnightChunk: opts.MidnightChunk,
		midnightGrace: DefaultMidnightGrace,
		onTransition:  opts.OnTransition,
	}

	if e.clock == nil {
		e.clock = clock.RealClock{}
	}
	if e.runState == nil {
		e.runState = runstate.New()
	}
	if e.eventChunk == 0 {
		e.eventChunk = DefaultEventChunk
	}
	if e.midnightChunk == 0 {
		e.midnightChunk = DefaultMidnightChunk
	}
	if opts.MidnightGrace != nil {
		if *opts.MidnightGrace < 0 {
			return nil, errors.Newf("midnight grace must not be negative: %s", *opts.MidnightGrace)
		}
		e.midnightGrace = *opts.MidnightGrace
	}

	e.state.Store(int32(StateBuilding))

	return e, nil
}

// State returns the state the loop is currently in.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Run drives the loop until the run state is stopped or ctx is cancelled.
// Dispatch failures never end the loop.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("engine is already running")
	}
	defer e.running.Store(false)

	stop := context.AfterFunc(ctx, func() {
		if e.runState.Stop() {
			e.log.V(1).Info("Context cancelled, stopping scheduler")
		}
	})
	defer stop()

	var pending []time.Time
	state := StateBuilding

	for {
		if state == StateBuilding && !e.runState.Running() {
			state = StateStopped
		}

		e.enter(state)

		switch state {
		case StateBuilding:
			now := e.now()
			pending = e.builder.Build(now).Pending(now)
			e.metrics.ScheduleBuilt(pending)
			e.log.V(1).Info("Built schedule", "date", now.Format(time.DateOnly), "pending", len(pending))

			if len(pending) == 0 {
				state = StateSleepingUntilMidnight
			} else {
				state = StateWaitingForEvent
			}

		case StateWaitingForEvent:
			target := pending[0]
			e.log.Info("Next sound at "+target.Format(time.TimeOnly),
				"sleep", formatSeconds(target.Sub(e.clock.Now())))

			if e.sleepUntil(target, e.eventChunk) {
				state = StateFiringEvent
			} else {
				state = StateStopped
			}

		case StateFiringEvent:
			e.fire(ctx)
			pending = pending[1:]
			e.metrics.Pending(pending)

			if len(pending) == 0 {
				state = StateBuilding
			} else {
				state = StateWaitingForEvent
			}

		case StateSleepingUntilMidnight:
			target := scheduler.NextMidnight(e.now(), e.midnightGrace)
			e.log.Info("No pending events left today. Sleeping until tomorrow.",
				"sleep", formatSeconds(target.Sub(e.clock.Now())))

			if e.sleepUntil(target, e.midnightChunk) {
				state = StateBuilding
			} else {
				state = StateStopped
			}

		case StateStopped:
			e.log.Info("Scheduler loop stopped")
			return nil
		}
	}
}

func (e *Engine) enter(state State) {
	e.state.Store(int32(state))
	e.log.V(2).Info("State transition", "state", state.String())
	if e.onTransition != nil {
		e.onTransition(state)
	}
}

func (e *Engine) now() time.Time {
	return e.clock.Now().In(e.builder.Location())
}

// sleepUntil sleeps in chunks no longer than chunk until target has been
// reached. Returns false if the run state was stopped first.
func (e *Engine) sleepUntil(target time.Time, chunk time.Duration) bool {
	for {
		if !e.runState.Running() {
			return false
		}

		remaining := target.Sub(e.clock.Now())
		if remaining <= 0 {
			return true
		}

		select {
		case <-e.runState.Done():
			return false
		case <-e.clock.After(min(remaining, chunk)):
		}
	}
}

func (e *Engine) fire(ctx context.Context) {
	start := e.clock.Now()
	err := e.dispatch(ctx)
	e.metrics.EventFired(e.clock.Since(start))

	switch {
	case err == nil:
	case errors.Is(err, sound.ErrNoAudio):
		e.log.Info("No audio files found; skipping.", "reason", err.Error())
		e.metrics.EventSkipped(metrics.ReasonNoAudio)
	case errors.Is(err, sound.ErrUnsupported):
		e.log.Info("Unsupported audio file; skipping.", "reason", err.Error())
		e.metrics.EventSkipped(metrics.ReasonUnsupported)
	default:
		e.log.Error(err, "Failed to play sound")
		e.metrics.PlaybackFailed()
	}
}

func (e *Engine) dispatch(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("dispatcher panicked: %v", r)
		}
	}()
	return e.dispatcher.Dispatch(ctx)
}

func formatSeconds(d time.Duration) string {
	return max(d, 0).Round(time.Second).String()
}
