/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diagridio/catai-scheduler/errors"
)

// TimeOfDay is a nominal wall-clock time, without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a HH:MM string. Single digit hours are accepted.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return TimeOfDay{}, errors.Newf("time of day %q must be in HH:MM format", s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, errors.Newf("time of day %q has invalid hour", s)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, errors.Newf("time of day %q has invalid minute", s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimesOfDay parses every entry, keeping order and duplicates.
func ParseTimesOfDay(specs []string) ([]TimeOfDay, error) {
	out := make([]TimeOfDay, 0, len(specs))
	for _, s := range specs {
		t, err := ParseTimeOfDay(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
