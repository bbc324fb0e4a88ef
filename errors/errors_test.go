/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package errors

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Wrap(t *testing.T) {
	t.Parallel()

	original := New("original")
	wrapped := Wrapf(original, "wrapped %d", 42)

	assert.Equal(t, "wrapped 42: original", wrapped.Error())
	assert.True(t, Is(wrapped, original))
	assert.False(t, Is(wrapped, New("other")))
}

func Test_WithHint(t *testing.T) {
	t.Parallel()

	err := WithHint(New("bad value"), "try something else")
	assert.Equal(t, "bad value", err.Error())
	assert.Equal(t, []string{"try something else"}, GetAllHints(err))
	assert.Equal(t, "try something else", FlattenHints(err))
}

func Test_As(t *testing.T) {
	t.Parallel()

	var exitErr *exec.ExitError
	assert.False(t, As(New("plain"), &exitErr))

	target := &exec.Error{Name: "mpg123", Err: exec.ErrNotFound}
	var execErr *exec.Error
	require.True(t, As(Wrap(target, "play"), &execErr))
	assert.Equal(t, "mpg123", execErr.Name)
	assert.True(t, Is(Wrap(target, "play"), exec.ErrNotFound))
}
