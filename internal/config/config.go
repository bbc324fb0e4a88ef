/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package config

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/diagridio/catai-scheduler/errors"
	"github.com/diagridio/catai-scheduler/internal/logging"
	"github.com/diagridio/catai-scheduler/internal/scheduler"
	"github.com/diagridio/catai-scheduler/internal/sound"
)

const envPrefix = "CATAI_"

// DefaultTimes are the nominal times of day used when CATAI_TIMES is unset.
var DefaultTimes = []string{
	"05:35",
	"07:00", "07:20", "07:30",
	"08:00", "08:45",
	"09:00", "09:10", "09:15", "09:20", "09:40",
	"10:00", "10:05", "10:25", "10:35", "10:55",
	"11:15", "11:25", "11:55",
	"13:00",
	"14:00", "14:10", "14:30",
	"15:00", "15:15", "15:45",
	"16:15",
	"20:00",
}

// Env is the raw environment of the process.
type Env struct {
	AssetsDir     string   `env:"CATAI_ASSETS_DIR"`
	SoundsDir     string   `env:"CATAI_SOUNDS_DIR"`
	ALSADevice    string   `env:"CATAI_ALSA_DEVICE"`
	Times         []string `env:"CATAI_TIMES" env-separator:","`
	JitterSeconds int      `env:"CATAI_JITTER_SECONDS" env-default:"600"`
	Timezone      string   `env:"CATAI_TIMEZONE" env-default:"Local"`
	PlayerMP3     string   `env:"CATAI_PLAYER_MP3" env-default:"mpg123 -q {file}"`
	PlayerWAV     string   `env:"CATAI_PLAYER_WAV" env-default:"aplay -D {device} {file}"`
	PlayerOGG     string   `env:"CATAI_PLAYER_OGG" env-default:"ogg123 -q {file}"`
	LogLevel      string   `env:"CATAI_LOG_LEVEL" env-default:"info"`
	LogFormat     string   `env:"CATAI_LOG_FORMAT" env-default:"console"`
	MetricsAddr   string   `env:"CATAI_METRICS_ADDR"`
}

// Config is the validated process configuration.
type Config struct {
	AssetsDir   string
	SoundsDir   string
	ALSADevice  string
	Times       []scheduler.TimeOfDay
	Jitter      time.Duration
	Location    *time.Location
	Players     sound.Table
	Log         logging.Options
	MetricsAddr string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "failed to read environment"),
			"check the "+envPrefix+"* variables for malformed values")
	}

	if err := normalize(&env); err != nil {
		return nil, err
	}

	return resolve(&env)
}

func normalize(env *Env) error {
	env.AssetsDir = strings.TrimSpace(env.AssetsDir)
	env.SoundsDir = strings.TrimSpace(env.SoundsDir)
	env.ALSADevice = strings.TrimSpace(env.ALSADevice)
	env.Timezone = strings.TrimSpace(env.Timezone)
	env.LogLevel = strings.ToLower(strings.TrimSpace(env.LogLevel))
	env.LogFormat = strings.ToLower(strings.TrimSpace(env.LogFormat))
	env.MetricsAddr = strings.TrimSpace(env.MetricsAddr)

	if _, ok := os.LookupEnv(envPrefix + "TIMES"); !ok {
		env.Times = append([]string(nil), DefaultTimes...)
	}
	times := env.Times[:0]
	for _, t := range env.Times {
		if t = strings.TrimSpace(t); t != "" {
			times = append(times, t)
		}
	}
	env.Times = times

	if env.AssetsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.WithHint(errors.Wrap(err, "failed to resolve home directory"),
				"set "+envPrefix+"ASSETS_DIR")
		}
		env.AssetsDir = filepath.Join(home, "private-assets")
	}

	if env.SoundsDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return errors.WithHint(errors.Wrap(err, "failed to resolve executable directory"),
				"set "+envPrefix+"SOUNDS_DIR")
		}
		env.SoundsDir = filepath.Join(filepath.Dir(exe), "sounds")
	}

	if env.Timezone == "" {
		env.Timezone = "Local"
	}

	return nil
}

func resolve(env *Env) (*Config, error) {
	times, err := scheduler.ParseTimesOfDay(env.Times)
	if err != nil {
		return nil, errors.WithHint(err, "set "+envPrefix+"TIMES to comma separated HH:MM values")
	}

	if env.JitterSeconds < 0 {
		return nil, errors.WithHint(errors.Newf("jitter must not be negative: %d", env.JitterSeconds),
			"set "+envPrefix+"JITTER_SECONDS to 0 or more")
	}

	loc, err := loadLocation(env.Timezone)
	if err != nil {
		return nil, errors.WithHint(err, "set "+envPrefix+"TIMEZONE to an IANA name such as Europe/London")
	}

	players, err := playerTable(env)
	if err != nil {
		return nil, err
	}

	log := logging.Options{Level: env.LogLevel, Format: env.LogFormat}
	if err := log.Validate(); err != nil {
		return nil, errors.WithHint(err,
			"set "+envPrefix+"LOG_LEVEL to debug, info, warn or error and "+envPrefix+"LOG_FORMAT to console or json")
	}

	if env.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(env.MetricsAddr); err != nil {
			return nil, errors.WithHint(errors.Wrapf(err, "invalid metrics address %q", env.MetricsAddr),
				"set "+envPrefix+"METRICS_ADDR to host:port, e.g. :9090")
		}
	}

	return &Config{
		AssetsDir:   env.AssetsDir,
		SoundsDir:   env.SoundsDir,
		ALSADevice:  env.ALSADevice,
		Times:       times,
		Jitter:      time.Duration(env.JitterSeconds) * time.Second,
		Location:    loc,
		Players:     players,
		Log:         log,
		MetricsAddr: env.MetricsAddr,
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	switch name {
	case "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown timezone %q", name)
	}
	return loc, nil
}

func playerTable(env *Env) (sound.Table, error) {
	table := sound.DefaultTable()

	for ext, cmd := range map[string]struct {
		name string
		raw  string
	}{
		".mp3": {name: "PLAYER_MP3", raw: env.PlayerMP3},
		".wav": {name: "PLAYER_WAV", raw: env.PlayerWAV},
		".ogg": {name: "PLAYER_OGG", raw: env.PlayerOGG},
	} {
		tmpl, err := sound.ParseTemplate(cmd.raw)
		if err != nil {
			return nil, errors.WithHintf(err, "set %s%s to a player command such as \"mpg123 -q {file}\"",
				envPrefix, cmd.name)
		}
		entry := table[ext]
		entry.Template = tmpl
		table[ext] = entry
	}

	return table, nil
}
