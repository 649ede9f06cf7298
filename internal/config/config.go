package config

import (
	"fmt"
	"time"
)

type Config struct {
	Archive    ArchiveConfig    `yaml:"archive"`
	Retention  RetentionConfig  `yaml:"retention"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Output     OutputConfig     `yaml:"output"`
}

type ArchiveConfig struct {
	Path     string      `yaml:"path"`
	Timezone string      `yaml:"timezone"` // IANA name, "Local" or "UTC"
	Watch    WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Mode           string        `yaml:"mode" validate:"omitempty,oneof=auto poll fsnotify"`
	PollInterval   time.Duration `yaml:"pollInterval" validate:"gte=0"`   // e.g. 30s
	DebounceWindow time.Duration `yaml:"debounceWindow" validate:"gte=0"` // e.g. 500ms
}

type RetentionConfig struct {
	KeepLast    int `yaml:"keepLast" validate:"gte=0"`
	KeepHourly  int `yaml:"keepHourly" validate:"gte=0"`
	KeepDaily   int `yaml:"keepDaily" validate:"gte=0"`
	KeepWeekly  int `yaml:"keepWeekly" validate:"gte=0"`
	KeepMonthly int `yaml:"keepMonthly" validate:"gte=0"`
	KeepYearly  int `yaml:"keepYearly" validate:"gte=0"`
}

type SimulationConfig struct {
	Schedule string `yaml:"schedule"` // hour:minute, e.g. "8..17:00/30"
	Weekdays string `yaml:"weekdays"` // e.g. "mon..fri"
	Cron     string `yaml:"cron" validate:"omitempty,cron"`
	Weeks    int    `yaml:"weeks" validate:"gte=0,lte=520"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. ":9300", empty disables
}

type OutputConfig struct {
	Format string `yaml:"format" validate:"omitempty,oneof=table json yaml"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Archive.Timezone == "" {
		c.Archive.Timezone = "Local"
	}
	if c.Archive.Watch.Mode == "" {
		c.Archive.Watch.Mode = "auto"
	}
	if c.Archive.Watch.PollInterval == 0 {
		c.Archive.Watch.PollInterval = 30 * time.Second
	}
	if c.Archive.Watch.DebounceWindow == 0 {
		c.Archive.Watch.DebounceWindow = 500 * time.Millisecond
	}
	if c.Simulation.Schedule == "" && c.Simulation.Cron == "" {
		c.Simulation.Schedule = "0:0"
	}
	if c.Simulation.Weeks == 0 {
		c.Simulation.Weeks = 8
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Output.Format == "" {
		c.Output.Format = "table"
	}
}

// Location resolves the archive time zone.
func (a ArchiveConfig) Location() (*time.Location, error) {
	switch a.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}
