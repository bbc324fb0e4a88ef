/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package sound

import (
	"context"
)

// Dispatcher selects and plays one file per call.
type Dispatcher struct {
	selector *Selector
	player   *Player
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(selector *Selector, player *Player) *Dispatcher {
	return &Dispatcher{
		selector: selector,
		player:   player,
	}
}

// Dispatch plays one randomly selected file. Errors wrap ErrNoAudio,
// ErrUnsupported or ErrPlayerNotFound where they apply.
func (d *Dispatcher) Dispatch(ctx context.Context) error {
	path, err := d.selector.Select()
	if err != nil {
		return err
	}
	return d.player.Play(ctx, path)
}
