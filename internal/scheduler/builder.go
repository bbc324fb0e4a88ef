/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package scheduler

import (
	"math/rand"
	"sort"
	"time"

	"k8s.io/utils/clock"
)

// Options are the options for creating a new schedule builder.
type Options struct {
	// Times are the nominal times of day, one event per entry.
	Times []TimeOfDay

	// Jitter is the symmetric bound of the random offset applied to each
	// nominal time. Truncated to whole seconds. Negative values are treated
	// as zero.
	Jitter time.Duration

	// Location is the location calendar days are computed in. Defaults to
	// time.Local.
	Location *time.Location
}

// Builder builds the jittered daily schedule.
type Builder struct {
	// clock is the clock used to get the current time. Used for manipulating
	// time in tests.
	clock clock.Clock

	times  []TimeOfDay
	jitter int64
	loc    *time.Location
}

// NewBuilder creates a new schedule builder.
func NewBuilder(opts Options) *Builder {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	jitter := int64(opts.Jitter / time.Second)
	if jitter < 0 {
		jitter = 0
	}

	return &Builder{
		clock:  clock.RealClock{},
		times:  append([]TimeOfDay(nil), opts.Times...),
		jitter: jitter,
		loc:    loc,
	}
}

// WithClock overrides the clock used by Today.
func (b *Builder) WithClock(c clock.Clock) *Builder {
	b.clock = c
	return b
}

// Location returns the location calendar days are computed in.
func (b *Builder) Location() *time.Location {
	return b.loc
}

// Now returns the current time in the builder's location.
func (b *Builder) Now() time.Time {
	return b.clock.Now().In(b.loc)
}

// Today builds the schedule for the current calendar date.
func (b *Builder) Today() *Daily {
	return b.Build(b.Now())
}

// Build builds the schedule for the calendar date of the given time, as
// observed in the builder's location. The result only depends on the date,
// the nominal times and the jitter bound.
func (b *Builder) Build(date time.Time) *Daily {
	date = date.In(b.loc)
	y, m, d := date.Date()

	//nolint:gosec
	rng := rand.New(rand.NewSource(DaySeed(date)))

	times := make([]time.Time, 0, len(b.times))
	for _, tod := range b.times {
		base := time.Date(y, m, d, tod.Hour, tod.Minute, 0, 0, b.loc)
		offset := rng.Int63n(2*b.jitter+1) - b.jitter
		times = append(times, base.Add(time.Duration(offset)*time.Second))
	}

	sort.SliceStable(times, func(i, j int) bool {
		return times[i].Before(times[j])
	})

	return &Daily{
		seed:  DaySeed(date),
		date:  time.Date(y, m, d, 0, 0, 0, 0, b.loc),
		times: times,
	}
}

// DaySeed returns the YYYYMMDD integer of the calendar date of t in t's
// location.
func DaySeed(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

// NextMidnight returns the start of the calendar day following now, in now's
// location, plus grace.
func NextMidnight(now time.Time, grace time.Duration) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Add(grace)
}
