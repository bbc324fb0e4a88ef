/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package scheduler

import (
	"time"

	"github.com/dapr/kit/ptr"
)

// Daily is the immutable, ascending schedule of a single calendar date.
type Daily struct {
	seed  int64
	date  time.Time
	times []time.Time
}

// Seed returns the day seed the schedule was generated from.
func (d *Daily) Seed() int64 {
	return d.seed
}

// Date returns midnight of the schedule's calendar date.
func (d *Daily) Date() time.Time {
	return d.date
}

// Len returns the number of events of the day.
func (d *Daily) Len() int {
	return len(d.times)
}

// Times returns a copy of every timestamp of the day.
func (d *Daily) Times() []time.Time {
	return append([]time.Time(nil), d.times...)
}

// Pending returns the timestamps strictly later than now, ascending.
func (d *Daily) Pending(now time.Time) []time.Time {
	for i, t := range d.times {
		if t.After(now) {
			return append([]time.Time(nil), d.times[i:]...)
		}
	}
	return nil
}

func (d *Daily) Next(now time.Time) *time.Time {
	for _, t := range d.times {
		if t.After(now) {
			return ptr.Of(t)
		}
	}
	return nil
}
