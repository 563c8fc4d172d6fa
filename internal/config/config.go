// Package config loads game, storage and server settings from an HCL file
// with an environment overlay.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/wildpoker/internal/game"
)

// Config represents the complete configuration
type Config struct {
	Rules  RulesConfig    `envPrefix:"RULES_"`
	Store  StoreConfig    `envPrefix:"STORE_"`
	Server ServerSettings `envPrefix:"SERVER_"`
	Log    LogConfig      `envPrefix:"LOG_"`
}

// RulesConfig holds the tunable game constants
type RulesConfig struct {
	HandSize          int    `hcl:"hand_size,optional" env:"HAND_SIZE"`
	SubroundsPerRound int    `hcl:"subrounds_per_round,optional" env:"SUBROUNDS_PER_ROUND"`
	TotalRounds       int    `hcl:"total_rounds,optional" env:"TOTAL_ROUNDS"`
	ExtendedRounds    int    `hcl:"extended_rounds,optional" env:"EXTENDED_ROUNDS"`
	MaxOwnedItems     int    `hcl:"max_owned_items,optional" env:"MAX_OWNED_ITEMS"`
	ShopSize          int    `hcl:"shop_size,optional" env:"SHOP_SIZE"`
	Thresholds        []int  `hcl:"thresholds,optional" env:"THRESHOLDS" envSeparator:","`
	RevealDelay       string `hcl:"reveal_delay,optional" env:"REVEAL_DELAY"`
	Seed              int64  `hcl:"seed,optional" env:"SEED"`
}

// StoreConfig selects where game documents are kept
type StoreConfig struct {
	// Driver is one of file, sqlite, postgres or redis.
	Driver string `hcl:"driver,optional" env:"DRIVER"`
	Path   string `hcl:"path,optional" env:"PATH"`
	DSN    string `hcl:"dsn,optional" env:"DSN"`
	Addr   string `hcl:"addr,optional" env:"ADDR"`
	DB     int    `hcl:"db,optional" env:"DB"`
}

// ServerSettings contains HTTP server configuration
type ServerSettings struct {
	Address        string   `hcl:"address,optional" env:"ADDRESS"`
	Port           int      `hcl:"port,optional" env:"PORT"`
	AllowedOrigins []string `hcl:"allowed_origins,optional" env:"ALLOWED_ORIGINS" envSeparator:","`
}

// LogConfig controls logger output
type LogConfig struct {
	Level string `hcl:"level,optional" env:"LEVEL"`
	File  string `hcl:"file,optional" env:"FILE"`
}

// Store drivers
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// EnvPrefix prefixes every environment override, e.g. WILDPOKER_RULES_SEED.
const EnvPrefix = "WILDPOKER_"

// Default returns the default configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename, overlays environment variables and fills anything
// still unset with defaults. A missing file is not an error.
func Load(filename string) (*Config, error) {
	var c Config
	if filename != "" {
		if err := decodeFile(filename, &c); err != nil {
			return nil, err
		}
	}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeFile(filename string, c *Config) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Every block is optional, so decode into a wrapper with pointer blocks.
	var raw struct {
		Rules  *RulesConfig    `hcl:"rules,block"`
		Store  *StoreConfig    `hcl:"store,block"`
		Server *ServerSettings `hcl:"server,block"`
		Log    *LogConfig      `hcl:"log,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if raw.Rules != nil {
		c.Rules = *raw.Rules
	}
	if raw.Store != nil {
		c.Store = *raw.Store
	}
	if raw.Server != nil {
		c.Server = *raw.Server
	}
	if raw.Log != nil {
		c.Log = *raw.Log
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := game.DefaultRules()
	r := &c.Rules
	if r.HandSize == 0 {
		r.HandSize = def.HandSize
	}
	if r.SubroundsPerRound == 0 {
		r.SubroundsPerRound = def.SubroundsPerRound
	}
	if r.TotalRounds == 0 {
		r.TotalRounds = def.TotalRounds
	}
	if r.ExtendedRounds == 0 {
		r.ExtendedRounds = max(def.ExtendedRounds, r.TotalRounds)
	}
	if r.MaxOwnedItems == 0 {
		r.MaxOwnedItems = def.MaxOwnedItems
	}
	if r.ShopSize == 0 {
		r.ShopSize = def.ShopSize
	}
	if len(r.Thresholds) == 0 {
		r.Thresholds = slices.Clone(def.Thresholds)
	}
	if r.RevealDelay == "" {
		r.RevealDelay = def.RevealDelay.String()
	}

	if c.Store.Driver == "" {
		c.Store.Driver = DriverFile
	}
	if c.Store.Path == "" {
		switch c.Store.Driver {
		case DriverSQLite:
			c.Store.Path = "wildpoker.db"
		default:
			c.Store.Path = "saves"
		}
	}
	if c.Store.Addr == "" {
		c.Store.Addr = "localhost:6379"
	}

	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.GameRules(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}

	switch c.Store.Driver {
	case DriverFile, DriverSQLite:
	case DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store: postgres requires a dsn"))
		}
	case DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("store: unknown driver %q", c.Store.Driver))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server: invalid port: %d", c.Server.Port))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	return errors.Join(errs...)
}

// GameRules converts the rules block into engine rules
func (c *Config) GameRules() (game.Rules, error) {
	delay, err := time.ParseDuration(c.Rules.RevealDelay)
	if err != nil {
		return game.Rules{}, fmt.Errorf("reveal delay: %w", err)
	}
	rules := game.Rules{
		HandSize:          c.Rules.HandSize,
		SubroundsPerRound: c.Rules.SubroundsPerRound,
		TotalRounds:       c.Rules.TotalRounds,
		ExtendedRounds:    c.Rules.ExtendedRounds,
		MaxOwnedItems:     c.Rules.MaxOwnedItems,
		ShopSize:          c.Rules.ShopSize,
		Thresholds:        slices.Clone(c.Rules.Thresholds),
		RevealDelay:       delay,
	}
	if err := rules.Validate(); err != nil {
		return game.Rules{}, err
	}
	return rules, nil
}

// Seed returns the configured seed, or a time based one when unset.
func (c *Config) Seed() int64 {
	if c.Rules.Seed != 0 {
		return c.Rules.Seed
	}
	return time.Now().UnixNano()
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
