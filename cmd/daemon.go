/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package cmd

import (
	"context"
	"strings"

	"github.com/dapr/kit/concurrency"
	"github.com/go-logr/logr"

	"github.com/diagridio/catai-scheduler/internal/config"
	"github.com/diagridio/catai-scheduler/internal/engine"
	"github.com/diagridio/catai-scheduler/internal/metrics"
	"github.com/diagridio/catai-scheduler/internal/runstate"
	"github.com/diagridio/catai-scheduler/internal/scheduler"
	"github.com/diagridio/catai-scheduler/internal/sound"
)

func newBuilder(cfg *config.Config) *scheduler.Builder {
	return scheduler.NewBuilder(scheduler.Options{
		Times:    cfg.Times,
		Jitter:   cfg.Jitter,
		Location: cfg.Location,
	})
}

// runDaemon runs the scheduling loop, and the metrics server when
// configured, until ctx is cancelled.
func runDaemon(ctx context.Context, cfg *config.Config, log logr.Logger) error {
	m := metrics.New()

	selector := sound.NewSelector(sound.SelectorOptions{
		Log:        log,
		Primary:    cfg.AssetsDir,
		Fallback:   cfg.SoundsDir,
		Extensions: cfg.Players.Extensions(),
	})
	player := sound.NewPlayer(sound.PlayerOptions{
		Log:    log,
		Table:  cfg.Players,
		Device: cfg.ALSADevice,
	})

	eng, err := engine.New(engine.Options{
		Log:        log,
		Builder:    newBuilder(cfg),
		Dispatcher: sound.NewDispatcher(selector, player),
		RunState:   runstate.New(),
		Metrics:    m,
	})
	if err != nil {
		return err
	}

	runners := []concurrency.Runner{eng.Run}

	if cfg.MetricsAddr != "" {
		srv, err := metrics.NewServer(metrics.ServerOptions{
			Log:     log,
			Metrics: m,
			Addr:    cfg.MetricsAddr,
		})
		if err != nil {
			return err
		}
		runners = append(runners, srv.Run)
	}

	times := make([]string, 0, len(cfg.Times))
	for _, t := range cfg.Times {
		times = append(times, t.String())
	}

	log.Info("CatAI scheduler starting",
		"assets", cfg.AssetsDir,
		"sounds", cfg.SoundsDir,
		"device", cfg.ALSADevice,
		"timezone", cfg.Location.String(),
		"jitter", cfg.Jitter.String(),
		"times", strings.Join(times, ","),
		"metrics", cfg.MetricsAddr,
	)
	if len(cfg.Times) == 0 {
		log.Info("No times of day configured; nothing will play")
	}

	err = concurrency.NewRunnerManager(runners...).Run(ctx)
	log.Info("CatAI scheduler stopping")
	return err
}
