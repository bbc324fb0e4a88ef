/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package sound

import (
	"context"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/diagridio/catai-scheduler/errors"
)

// PlayerOptions are the options for creating a new player.
type PlayerOptions struct {
	Log logr.Logger

	// Table is the extension dispatch table. Defaults to DefaultTable.
	Table Table

	// Device is the optional output device. Empty means the system default.
	Device string

	// Runner runs the player binary. Defaults to ExecRunner.
	Runner Runner
}

// Player plays files with the external player registered for their
// extension.
type Player struct {
	log    logr.Logger
	table  Table
	device string
	runner Runner
}

// NewPlayer creates a new player.
func NewPlayer(opts PlayerOptions) *Player {
	table := opts.Table
	if table == nil {
		table = DefaultTable()
	}

	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	return &Player{
		log:    opts.Log.WithName("sound"),
		table:  table,
		device: opts.Device,
		runner: runner,
	}
}

// Play blocks until the player for path exits.
func (p *Player) Play(ctx context.Context, path string) error {
	entry, ok := p.table.Lookup(path)
	if !ok {
		return errors.Wrapf(ErrUnsupported, "%s", path)
	}

	bin, args := entry.Template.Expand(path, p.device)
	p.log.Info("Playing "+string(entry.Kind)+": "+filepath.Base(path), "player", bin)

	if err := p.runner.Run(ctx, bin, args...); err != nil {
		return errors.Wrapf(err, "failed to play %s", filepath.Base(path))
	}
	return nil
}
