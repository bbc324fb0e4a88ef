/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package fake

import (
	"context"
	"sync/atomic"
)

// Fake is a fake sound dispatcher which counts its calls.
type Fake struct {
	dispatchFn func(context.Context) error
	calls      atomic.Int64
}

func New() *Fake {
	return &Fake{
		dispatchFn: func(context.Context) error {
			return nil
		},
	}
}

func (f *Fake) WithDispatch(fn func(context.Context) error) *Fake {
	f.dispatchFn = fn
	return f
}

func (f *Fake) Dispatch(ctx context.Context) error {
	f.calls.Add(1)
	return f.dispatchFn(ctx)
}

func (f *Fake) Calls() int64 {
	return f.calls.Load()
}
