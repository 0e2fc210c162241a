package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/rockpaperscissors/internal/catalog"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "rps.hcl"

// Config represents the complete game configuration
type Config struct {
	Game  GameSettings
	Score ScoreSettings
	Log   LogSettings
}

// GameSettings controls session behaviour
type GameSettings struct {
	Mode        string `hcl:"mode,optional"`
	ThinkDelay  string `hcl:"think_delay,optional"`
	RevealDelay string `hcl:"reveal_delay,optional"`
	Seed        int64  `hcl:"seed,optional"`
}

// ScoreSettings selects where scores are persisted
type ScoreSettings struct {
	Backend       string `hcl:"backend,optional"`
	Path          string `hcl:"path,optional"`
	RedisAddr     string `hcl:"redis_addr,optional"`
	RedisPassword string `hcl:"redis_password,optional"`
	RedisDB       int    `hcl:"redis_db,optional"`
}

// LogSettings contains logging configuration
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// fileConfig mirrors Config with optional blocks so any of them may be omitted.
type fileConfig struct {
	Game  *GameSettings  `hcl:"game,block"`
	Score *ScoreSettings `hcl:"score,block"`
	Log   *LogSettings   `hcl:"log,block"`
}

// Backends lists the supported score backends.
var Backends = []string{"memory", "file", "sqlite", "redis"}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			Mode:        string(catalog.Basic),
			ThinkDelay:  "1s",
			RevealDelay: "0s",
		},
		Score: ScoreSettings{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
		Log: LogSettings{
			Level: "info",
			File:  "rps.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	defaults := DefaultConfig()

	if fc.Game != nil {
		config.Game = *fc.Game
	}
	if fc.Score != nil {
		config.Score = *fc.Score
	}
	if fc.Log != nil {
		config.Log = *fc.Log
	}

	// Apply defaults for missing values
	if config.Game.Mode == "" {
		config.Game.Mode = defaults.Game.Mode
	}
	if config.Game.ThinkDelay == "" {
		config.Game.ThinkDelay = defaults.Game.ThinkDelay
	}
	if config.Game.RevealDelay == "" {
		config.Game.RevealDelay = defaults.Game.RevealDelay
	}
	if config.Score.Backend == "" {
		config.Score.Backend = defaults.Score.Backend
	}
	if config.Score.RedisAddr == "" {
		config.Score.RedisAddr = defaults.Score.RedisAddr
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Log.File == "" {
		config.Log.File = defaults.Log.File
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.ThinkDelay(); err != nil {
		return err
	}
	if _, err := c.RevealDelay(); err != nil {
		return err
	}

	validBackend := false
	for _, b := range Backends {
		if c.Score.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid score backend: %s", c.Score.Backend)
	}
	if c.Score.Backend == "redis" && c.Score.RedisAddr == "" {
		return fmt.Errorf("redis backend requires redis_addr")
	}
	if c.Score.RedisDB < 0 {
		return fmt.Errorf("redis_db cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// Mode returns the configured game mode; unknown names fall back to Basic.
func (c *Config) Mode() catalog.GameMode {
	return catalog.ParseMode(c.Game.Mode)
}

// ThinkDelay returns the pause before the computer picks its move.
func (c *Config) ThinkDelay() (time.Duration, error) {
	return parseDelay("think_delay", c.Game.ThinkDelay)
}

// RevealDelay returns the pause between the computer's pick and the result.
func (c *Config) RevealDelay() (time.Duration, error) {
	return parseDelay("reveal_delay", c.Game.RevealDelay)
}

func parseDelay(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s cannot be negative", name)
	}
	return d, nil
}
