package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// ConfigFileName is searched for under the XDG config directories
const ConfigFileName = "tictactoe/config.yml"

// First mover names accepted in config and flags
const (
	FirstMoverHuman    = "human"
	FirstMoverOpponent = "opponent"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds CLI configuration. Precedence, lowest first: defaults, config
// file, TTT_* environment variables, command line flags.
type Config struct {
	HumanName    string `yaml:"human-name" json:"human_name" env:"TTT_HUMAN_NAME" env-default:"You"`
	OpponentName string `yaml:"opponent-name" json:"opponent_name" env:"TTT_OPPONENT_NAME" env-default:"Computer"`
	WinTarget    int    `yaml:"win-target" json:"win_target" env:"TTT_WIN_TARGET" env-default:"3"`
	FirstMover   string `yaml:"first-mover" json:"first_mover" env:"TTT_FIRST_MOVER" env-default:"human"`
	Strategy     string `yaml:"strategy" json:"strategy" env:"TTT_STRATEGY" env-default:"heuristic"`
	Seed         uint64 `yaml:"seed" json:"seed" env:"TTT_SEED"`
	NoClear      bool   `yaml:"no-clear" json:"no_clear" env:"TTT_NO_CLEAR"`
	Output       string `yaml:"output" json:"output" env:"TTT_OUTPUT" env-default:"text"`
	LogLevel     string `yaml:"log-level" json:"log_level" env:"TTT_LOG_LEVEL" env-default:"warn"`

	// Path is the config file that was read, empty if none
	Path string `yaml:"-" json:"path"`

	// seedSet marks an explicit seed, so that zero is honoured too
	seedSet bool
}

// LoadConfig reads the config file at path, or the first tictactoe/config.yml
// found in the XDG config directories when path is empty. A missing
// file is only an error when path was given explicitly.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if found, err := xdg.SearchConfigFile(ConfigFileName); err == nil {
			path = found
		}
	}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		return cfg, nil
	}

	// An empty yaml file has no document to decode
	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		cfg.Path = path
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// SetSeed records an explicitly chosen seed
func (c *Config) SetSeed(seed uint64) {
	c.Seed = seed
	c.seedSet = true
}

// ReproducibleSeed returns the seed for the opponent's random source, or nil
// when none was chosen and moves should not be replayable
func (c *Config) ReproducibleSeed() *uint64 {
	if c.Seed == 0 && !c.seedSet {
		if v, ok := os.LookupEnv("TTT_SEED"); !ok || v == "" {
			return nil
		}
	}
	seed := c.Seed
	return &seed
}

// DefaultConfigPath is where a user config file is expected to live
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, ConfigFileName)
}

// Validate checks every setting
func (c *Config) Validate() error {
	if c.WinTarget < 1 {
		return fmt.Errorf("%w: win target must be at least 1, got %d", ErrInvalidConfig, c.WinTarget)
	}
	if c.FirstMover != FirstMoverHuman && c.FirstMover != FirstMoverOpponent {
		return fmt.Errorf("%w: first mover must be %q or %q, got %q",
			ErrInvalidConfig, FirstMoverHuman, FirstMoverOpponent, c.FirstMover)
	}
	if !model.IsValidBotStrategy(c.Strategy) {
		return fmt.Errorf("%w: strategy must be one of %s, got %q",
			ErrInvalidConfig, strings.Join(model.ValidBotStrategies(), ", "), c.Strategy)
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("%w: output must be %q or %q, got %q", ErrInvalidConfig, OutputText, OutputJSON, c.Output)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// MatchConfig converts the settings into the match's configuration
func (c *Config) MatchConfig() model.MatchConfig {
	first := model.HumanMarker
	if c.FirstMover == FirstMoverOpponent {
		first = model.OpponentMarker
	}
	return model.MatchConfig{
		WinTarget:  c.WinTarget,
		FirstMover: first,
	}
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return level, nil
}
