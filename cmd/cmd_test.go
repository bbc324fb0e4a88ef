/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagridio/catai-scheduler/errors"
	"github.com/diagridio/catai-scheduler/internal/config"
	"github.com/diagridio/catai-scheduler/internal/logging"
	"github.com/diagridio/catai-scheduler/internal/scheduler"
	"github.com/diagridio/catai-scheduler/internal/sound"
)

func Test_RootCmd(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"schedule", "version"}, names)
	assert.True(t, root.SilenceUsage)
}

func Test_VersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "catai-scheduler dev (commit=none, built=unknown)\n", out.String())
}

func Test_printSchedule(t *testing.T) {
	t.Parallel()

	times, err := scheduler.ParseTimesOfDay([]string{"09:00", "12:00", "18:00"})
	require.NoError(t, err)
	b := scheduler.NewBuilder(scheduler.Options{Times: times, Location: time.UTC})

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	printSchedule(&out, b.Build(now), now, 0)

	assert.Equal(t, "2024-01-01 UTC seed=20240101 jitter=0s events=3 pending=1 next=18:00:00\n"+
		"  09:00:00  done\n"+
		"  12:00:00  done\n"+
		"  18:00:00  pending\n", out.String())
}

func Test_ScheduleCmd(t *testing.T) {
	t.Setenv("CATAI_ASSETS_DIR", "/a")
	t.Setenv("CATAI_SOUNDS_DIR", "/b")
	t.Setenv("CATAI_TIMES", "09:00,10:00")
	t.Setenv("CATAI_TIMEZONE", "UTC")

	var out bytes.Buffer
	cmd := newScheduleCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "UTC")
	assert.Contains(t, lines[0], "events=2")
}

func Test_ScheduleCmd_InvalidConfig(t *testing.T) {
	t.Setenv("CATAI_ASSETS_DIR", "/a")
	t.Setenv("CATAI_SOUNDS_DIR", "/b")
	t.Setenv("CATAI_TIMES", "99:99")

	cmd := newScheduleCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}

func Test_printError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printError(&out, errors.WithHint(errors.New("bad jitter"), "set CATAI_JITTER_SECONDS"))
	assert.Equal(t, "Error: bad jitter\nHint: set CATAI_JITTER_SECONDS\n", out.String())
}

func Test_runDaemon(t *testing.T) {
	t.Parallel()

	times, err := scheduler.ParseTimesOfDay([]string{"09:00"})
	require.NoError(t, err)

	cfg := &config.Config{
		AssetsDir:   t.TempDir(),
		SoundsDir:   t.TempDir(),
		Times:       times,
		Jitter:      time.Minute,
		Location:    time.UTC,
		Players:     sound.DefaultTable(),
		Log:         logging.Options{Level: "info", Format: "console"},
		MetricsAddr: "127.0.0.1:0",
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- runDaemon(ctx, cfg, logr.Discard()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		require.Fail(t, "daemon did not stop in time")
	}
}
