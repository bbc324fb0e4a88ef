/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package scheduler

import (
	"time"
)

// Interface is an interface which returns the next trigger time for a given
// built schedule.
type Interface interface {
	// Next returns the next trigger time strictly after now.
	// Returns nil if the schedule will never trigger again.
	Next(now time.Time) *time.Time
}
