/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package runstate

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_State(t *testing.T) {
	t.Parallel()

	t.Run("starts running", func(t *testing.T) {
		t.Parallel()
		s := New()
		assert.True(t, s.Running())
		select {
		case <-s.Done():
			t.Fatal("expected done channel to be open")
		default:
		}
	})

	t.Run("stop is one way", func(t *testing.T) {
		t.Parallel()
		s := New()
		assert.True(t, s.Stop())
		assert.False(t, s.Running())
		assert.False(t, s.Stop())
		assert.False(t, s.Running())
		<-s.Done()
	})

	t.Run("concurrent stops transition once", func(t *testing.T) {
		t.Parallel()
		s := New()

		var wg sync.WaitGroup
		var transitions atomic.Int32
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.Stop() {
					transitions.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), transitions.Load())
		assert.False(t, s.Running())
	})
}
