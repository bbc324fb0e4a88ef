/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package scheduler

import (
	"testing"
	"time"

	"github.com/dapr/kit/ptr"
	"github.com/stretchr/testify/assert"
)

func Test_Daily(t *testing.T) {
	t.Parallel()

	at := func(h, m int) time.Time {
		return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC)
	}
	daily := &Daily{
		seed:  20240101,
		date:  at(0, 0),
		times: []time.Time{at(7, 0), at(9, 0), at(9, 0), at(20, 0)},
	}

	tests := map[string]struct {
		now        time.Time
		expPending []time.Time
		expNext    *time.Time
	}{
		"before the first event, everything is pending": {
			now:        at(0, 0),
			expPending: []time.Time{at(7, 0), at(9, 0), at(9, 0), at(20, 0)},
			expNext:    ptr.Of(at(7, 0)),
		},
		"event at now is not pending": {
			now:        at(7, 0),
			expPending: []time.Time{at(9, 0), at(9, 0), at(20, 0)},
			expNext:    ptr.Of(at(9, 0)),
		},
		"duplicates stay pending together": {
			now:        at(8, 59),
			expPending: []time.Time{at(9, 0), at(9, 0), at(20, 0)},
			expNext:    ptr.Of(at(9, 0)),
		},
		"after the last event, nothing is pending": {
			now:        at(20, 0),
			expPending: nil,
			expNext:    nil,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expPending, daily.Pending(test.now))
			assert.Equal(t, test.expNext, daily.Next(test.now))
		})
	}

	t.Run("Times returns a copy", func(t *testing.T) {
		t.Parallel()
		times := daily.Times()
		times[0] = at(23, 0)
		assert.Equal(t, at(7, 0), daily.Times()[0])
	})
}
