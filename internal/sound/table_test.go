/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func Test_Template_Expand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		tmpl    Template
		device  string
		expBin  string
		expArgs []string
	}{
		"mp3 default": {
			tmpl:    DefaultTable()[".mp3"].Template,
			expBin:  "mpg123",
			expArgs: []string{"-q", "/a/b.mp3"},
		},
		"wav without device drops the device flag": {
			tmpl:    DefaultTable()[".wav"].Template,
			expBin:  "aplay",
			expArgs: []string{"/a/b.mp3"},
		},
		"wav with device": {
			tmpl:    DefaultTable()[".wav"].Template,
			device:  "plughw:1,0",
			expBin:  "aplay",
			expArgs: []string{"-D", "plughw:1,0", "/a/b.mp3"},
		},
		"joined device token dropped without device": {
			tmpl:    Template{"player", "--device={device}", "-v", "{file}"},
			expBin:  "player",
			expArgs: []string{"-v", "/a/b.mp3"},
		},
		"joined device token expanded": {
			tmpl:    Template{"player", "--device={device}", "{file}"},
			device:  "hw:0",
			expBin:  "player",
			expArgs: []string{"--device=hw:0", "/a/b.mp3"},
		},
		"missing file token appends the file": {
			tmpl:    Template{"mpv", "--no-video"},
			expBin:  "mpv",
			expArgs: []string{"--no-video", "/a/b.mp3"},
		},
		"binary only": {
			tmpl:    Template{"mpv"},
			expBin:  "mpv",
			expArgs: []string{"/a/b.mp3"},
		},
		"file token inside a word": {
			tmpl:    Template{"play", "--input={file}"},
			expBin:  "play",
			expArgs: []string{"--input=/a/b.mp3"},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			bin, args := test.tmpl.Expand("/a/b.mp3", test.device)
			assert.Equal(t, test.expBin, bin)
			assert.Equal(t, test.expArgs, args)
		})
	}
}

func Test_ParseTemplate(t *testing.T) {
	t.Parallel()

	t.Run("splits shell words", func(t *testing.T) {
		t.Parallel()
		tmpl, err := ParseTemplate(`mpv --title "cat ai" {file}`)
		require.NoError(t, err)
		assert.Equal(t, Template{"mpv", "--title", "cat ai", "{file}"}, tmpl)
		again, err := ParseTemplate(tmpl.String())
		require.NoError(t, err)
		assert.Equal(t, tmpl, again)
	})

	t.Run("empty is an error", func(t *testing.T) {
		t.Parallel()
		_, err := ParseTemplate("   ")
		require.Error(t, err)
	})

	t.Run("unterminated quote is an error", func(t *testing.T) {
		t.Parallel()
		_, err := ParseTemplate(`mpv "oops`)
		require.Error(t, err)
	})
}

func Test_Table(t *testing.T) {
	t.Parallel()

	table := DefaultTable()

	tests := map[string]struct {
		path    string
		expKind Kind
		expOK   bool
	}{
		"mp3":            {path: "/x/a.mp3", expKind: KindMP3, expOK: true},
		"wav":            {path: "/x/a.wav", expKind: KindWAV, expOK: true},
		"ogg":            {path: "/x/a.ogg", expKind: KindOGG, expOK: true},
		"upper case ext": {path: "/x/A.MP3", expKind: KindMP3, expOK: true},
		"flac":           {path: "/x/a.flac"},
		"no extension":   {path: "/x/mp3"},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			entry, ok := table.Lookup(test.path)
			assert.Equal(t, test.expOK, ok)
			assert.Equal(t, test.expKind, entry.Kind)
		})
	}

	assert.Equal(t, sets.New(".mp3", ".wav", ".ogg"), table.Extensions())
}
