/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package sound

import (
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/diagridio/catai-scheduler/errors"
)

// Kind is the audio format a player handles.
type Kind string

const (
	KindMP3 Kind = "MP3"
	KindWAV Kind = "WAV"
	KindOGG Kind = "OGG"
)

const (
	fileToken   = "{file}"
	deviceToken = "{device}"
)

// Template is an external player command line. The {file} token expands to
// the file path and is appended when absent. The {device} token expands to
// the output device. When no device is configured, tokens holding {device}
// are dropped, together with a directly preceding flag when {device} is a
// token of its own.
type Template []string

// ParseTemplate splits a shell-like command line into a Template.
func ParseTemplate(s string) (Template, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid player command %q", s)
	}
	if len(words) == 0 {
		return nil, errors.Newf("player command %q is empty", s)
	}
	return Template(words), nil
}

// Expand returns the binary and arguments to play path on device.
func (t Template) Expand(path, device string) (string, []string) {
	var (
		args    []string
		hasFile bool
	)

	for i := 1; i < len(t); i++ {
		word := t[i]

		if strings.Contains(word, deviceToken) {
			if device == "" {
				prev := t[i-1]
				if word == deviceToken && i > 1 && strings.HasPrefix(prev, "-") && !strings.Contains(prev, deviceToken) {
					args = args[:len(args)-1]
				}
				continue
			}
			word = strings.ReplaceAll(word, deviceToken, device)
		}

		if strings.Contains(word, fileToken) {
			hasFile = true
			word = strings.ReplaceAll(word, fileToken, path)
		}

		args = append(args, word)
	}

	if !hasFile {
		args = append(args, path)
	}

	return t[0], args
}

func (t Template) String() string {
	return shellquote.Join(t...)
}

// Entry is a row of the dispatch table.
type Entry struct {
	Kind     Kind
	Template Template
}

// Table maps lower case file extensions, including the dot, to players.
type Table map[string]Entry

// DefaultTable returns the players used when none are configured.
func DefaultTable() Table {
	return Table{
		".mp3": {Kind: KindMP3, Template: Template{"mpg123", "-q", fileToken}},
		".wav": {Kind: KindWAV, Template: Template{"aplay", "-D", deviceToken, fileToken}},
		".ogg": {Kind: KindOGG, Template: Template{"ogg123", "-q", fileToken}},
	}
}

// Lookup returns the entry for the extension of path.
func (t Table) Lookup(path string) (Entry, bool) {
	e, ok := t[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// Extensions returns the set of extensions which have a player.
func (t Table) Extensions() sets.Set[string] {
	return sets.KeySet(map[string]Entry(t))
}
