// Package config is the festbot configuration: the core bot settings plus
// database and conversation tuning.
package config

import (
	"fmt"
	"time"

	coreconfig "github.com/m3rciful/festbot/core/config"
	"github.com/m3rciful/festbot/core/database"
)

const (
	defaultSessionTTL    = 24 * time.Hour
	defaultSweepInterval = 10 * time.Minute
	defaultQueueDepth    = 64
)

// FlowConfig tunes the registration conversation.
type FlowConfig struct {
	// SessionTTL evicts conversations untouched for this long.
	SessionTTL    time.Duration `yaml:"session_ttl" envconfig:"FLOW_SESSION_TTL"`
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"FLOW_SWEEP_INTERVAL"`
	// HintOnUnexpected answers unusable input with a short hint instead of silence.
	HintOnUnexpected bool `yaml:"hint_on_unexpected" envconfig:"FLOW_HINT_ON_UNEXPECTED"`
	// QueueDepth caps pending updates per user.
	QueueDepth int `yaml:"queue_depth" envconfig:"FLOW_QUEUE_DEPTH"`
}

// Config is the full festbot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database database.Config `yaml:"database"`
	Flow     FlowConfig      `yaml:"flow"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// Load reads and validates the configuration for running the bot.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := cfg.Database.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Flow.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDatabase reads only what schema maintenance needs; no bot token is required.
func LoadDatabase(path string) (database.Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return database.Config{}, err
	}
	if err := cfg.Database.Normalize(); err != nil {
		return database.Config{}, err
	}
	return cfg.Database, nil
}

func (f *FlowConfig) normalize() error {
	if f.SessionTTL < 0 {
		return fmt.Errorf("flow.session_ttl must be >= 0")
	}
	if f.SessionTTL == 0 {
		f.SessionTTL = defaultSessionTTL
	}
	if f.SweepInterval <= 0 {
		f.SweepInterval = min(defaultSweepInterval, f.SessionTTL)
	}
	if f.QueueDepth <= 0 {
		f.QueueDepth = defaultQueueDepth
	}
	return nil
}
