// Package config loads the YAML run configuration for the behavior demo.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/behavior/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes how trees are driven and observed.
type Config struct {
	LogLevel string        `json:"log_level" yaml:"log_level"`
	Ticks    int           `json:"ticks" yaml:"ticks"`
	Interval time.Duration `json:"interval" yaml:"interval"`
	History  int           `json:"history" yaml:"history"`
	Agents   int           `json:"agents" yaml:"agents"`
	Monitor  Monitor       `json:"monitor" yaml:"monitor"`
	Scenario Scenario      `json:"scenario" yaml:"scenario"`
}

// Monitor configures the websocket tick stream. An empty Addr disables it.
type Monitor struct {
	Addr string `json:"addr" yaml:"addr"`
}

// Scenario holds the initial blackboard values of the chase demo.
type Scenario struct {
	Health         int `json:"health" yaml:"health"`
	PlayerDistance int `json:"player_distance" yaml:"player_distance"`
	ChaseSteps     int `json:"chase_steps" yaml:"chase_steps"`
}

// Default mirrors the classic demo: eight ticks, a healthy agent and a
// player fifteen units away.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Ticks:    8,
		History:  64,
		Agents:   1,
		Scenario: Scenario{
			Health:         100,
			PlayerDistance: 15,
			ChaseSteps:     3,
		},
	}
}

// Load reads and validates the YAML file at path on top of Default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML from r on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must be >= 0, got %d", c.Ticks))
	}
	if c.Interval < 0 {
		errs = append(errs, fmt.Errorf("interval must be >= 0, got %s", c.Interval))
	}
	if c.History <= 0 {
		errs = append(errs, fmt.Errorf("history must be > 0, got %d", c.History))
	}
	if c.Agents <= 0 {
		errs = append(errs, fmt.Errorf("agents must be > 0, got %d", c.Agents))
	}
	if c.Scenario.ChaseSteps < 0 {
		errs = append(errs, fmt.Errorf("scenario.chase_steps must be >= 0, got %d", c.Scenario.ChaseSteps))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
