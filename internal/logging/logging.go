/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package logging

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/diagridio/catai-scheduler/errors"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configure the process logger.
type Options struct {
	// Level is a zap level name, e.g. "debug" or "info".
	Level string

	// Format is either "console" or "json".
	Format string
}

// Validate returns an error if the level or format is unknown.
func (o Options) Validate() error {
	if _, err := zapcore.ParseLevel(o.Level); err != nil {
		return errors.Wrapf(err, "invalid log level %q", o.Level)
	}
	switch strings.ToLower(o.Format) {
	case FormatConsole, FormatJSON:
		return nil
	default:
		return errors.Newf("invalid log format %q", o.Format)
	}
}

// New returns a logr.Logger backed by zap, writing timestamped lines to
// stderr.
func New(opts Options) (logr.Logger, func(), error) {
	if err := opts.Validate(); err != nil {
		return logr.Discard(), func() {}, err
	}

	level, _ := zapcore.ParseLevel(opts.Level)

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         strings.ToLower(opts.Format),
		EncoderConfig:    encoderConfig(strings.ToLower(opts.Format)),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	sink, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, errors.Wrap(err, "failed to build logger")
	}

	return zapr.NewLogger(sink).WithName("catai-scheduler"), func() {
		_ = sink.Sync()
	}, nil
}

func encoderConfig(format string) zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	if format == FormatConsole {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return enc
}
