/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/diagridio/catai-scheduler/internal/config"
	"github.com/diagridio/catai-scheduler/internal/scheduler"
)

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print today's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			builder := newBuilder(cfg)
			now := builder.Now()
			printSchedule(cmd.OutOrStdout(), builder.Build(now), now, cfg.Jitter)
			return nil
		},
	}
}

func printSchedule(w io.Writer, daily *scheduler.Daily, now time.Time, jitter time.Duration) {
	pending := len(daily.Pending(now))

	var sched scheduler.Interface = daily
	next := "none"
	if t := sched.Next(now); t != nil {
		next = t.Format(time.TimeOnly)
	}

	fmt.Fprintf(w, "%s %s seed=%d jitter=%s events=%d pending=%d next=%s\n",
		daily.Date().Format(time.DateOnly), daily.Date().Location(),
		daily.Seed(), jitter, daily.Len(), pending, next)

	for _, t := range daily.Times() {
		mark := "done"
		if t.After(now) {
			mark = "pending"
		}
		fmt.Fprintf(w, "  %s  %s\n", t.Format(time.TimeOnly), mark)
	}
}
