/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package sound

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/diagridio/catai-scheduler/errors"
)

// Runner runs an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands as child processes. A running child is not killed
// when ctx is cancelled.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (e ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	bin, err := exec.LookPath(name)
	if err != nil {
		return errors.Wrapf(ErrPlayerNotFound, "%s: %v", name, err)
	}

	//nolint:gosec
	cmd := exec.CommandContext(context.WithoutCancel(ctx), bin, args...)
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", name)
	}
	return nil
}
