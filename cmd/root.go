/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diagridio/catai-scheduler/errors"
	"github.com/diagridio/catai-scheduler/internal/config"
	"github.com/diagridio/catai-scheduler/internal/logging"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "catai-scheduler",
		Short: "Play a random cat sound at jittered times of day",
		Long: "catai-scheduler plays a randomly chosen audio file at a fixed list of\n" +
			"times of day, each shifted by a random offset that is stable for the\n" +
			"calendar day. Configuration is read from CATAI_* environment variables.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, flush, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer flush()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runDaemon(ctx, cfg, log)
		},
	}

	root.AddCommand(newScheduleCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(w, "Hint:", hint)
	}
}
