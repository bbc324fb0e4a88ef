/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package sound

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/diagridio/catai-scheduler/errors"
)

// SelectorOptions are the options for creating a new file selector.
type SelectorOptions struct {
	Log logr.Logger

	// Fs is the filesystem directories are listed on. Defaults to the OS
	// filesystem.
	Fs afero.Fs

	// Primary is the preferred directory.
	Primary string

	// Fallback is searched when Primary holds no eligible file.
	Fallback string

	// Extensions are the eligible lower case extensions, including the dot.
	Extensions sets.Set[string]

	// Rand is the random source files are picked with. Defaults to a time
	// seeded source.
	Rand *rand.Rand
}

// Selector picks a random eligible audio file.
type Selector struct {
	log      logr.Logger
	fs       afero.Fs
	primary  string
	fallback string
	exts     sets.Set[string]
	rng      *rand.Rand
}

// NewSelector creates a new file selector.
func NewSelector(opts SelectorOptions) *Selector {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	rng := opts.Rand
	if rng == nil {
		//nolint:gosec
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	exts := opts.Extensions
	if exts == nil {
		exts = DefaultTable().Extensions()
	}

	return &Selector{
		log:      opts.Log.WithName("sound"),
		fs:       fs,
		primary:  opts.Primary,
		fallback: opts.Fallback,
		exts:     exts,
		rng:      rng,
	}
}

// Select returns a file chosen uniformly from the primary directory, or from
// the fallback directory when the primary one holds no eligible file.
// Returns ErrNoAudio when both are empty or missing.
func (s *Selector) Select() (string, error) {
	for _, dir := range []string{s.primary, s.fallback} {
		files := s.List(dir)
		if len(files) > 0 {
			return files[s.rng.Intn(len(files))], nil
		}
	}
	return "", errors.Wrapf(ErrNoAudio, "searched %s and %s", s.primary, s.fallback)
}

// List returns the sorted eligible files of dir. Missing or unreadable
// directories hold no files.
func (s *Selector) List(dir string) []string {
	if dir == "" {
		return nil
	}

	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		s.log.V(1).Info("Cannot list audio directory", "dir", dir, "error", err.Error())
		return nil
	}

	var out []string
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		if !s.exts.Has(strings.ToLower(filepath.Ext(info.Name()))) {
			continue
		}
		if !s.isFile(path, info) {
			continue
		}
		out = append(out, path)
	}

	sort.Strings(out)
	return out
}

func (s *Selector) isFile(path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := s.fs.Stat(path)
		if err != nil {
			return false
		}
		info = target
	}
	return info.Mode().IsRegular()
}
