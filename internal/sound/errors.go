/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package sound

import (
	"github.com/diagridio/catai-scheduler/errors"
)

var (
	// ErrNoAudio is returned when neither directory holds an eligible file.
	ErrNoAudio = errors.New("no audio files found")

	// ErrUnsupported is returned for files without a player.
	ErrUnsupported = errors.New("unsupported file type")

	// ErrPlayerNotFound is returned when the player binary is not installed.
	ErrPlayerNotFound = errors.New("player not found")
)
