// Package config loads table configuration from HCL files with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

// KindHuman marks a seat driven from the terminal.
const KindHuman = "human"

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "HOLDEM_"

// Config is a table with its seats.
type Config struct {
	Table *TableSettings `hcl:"table,block"`
	Seats []SeatConfig   `hcl:"seat,block"`
}

// TableSettings holds blinds, rules and session settings.
type TableSettings struct {
	SmallBlind      int    `hcl:"small_blind,optional"`
	BigBlind        int    `hcl:"big_blind,optional"`
	StartingStack   int    `hcl:"starting_stack,optional"`
	Hands           int    `hcl:"hands,optional"`
	Seed            int64  `hcl:"seed,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`

	EnforceMinRaise *bool  `hcl:"enforce_min_raise,optional"`
	ClampOverbets   *bool  `hcl:"clamp_overbets,optional"`
	BurnCards       *bool  `hcl:"burn_cards,optional"`
	IllegalAction   string `hcl:"illegal_action,optional"`
	MaxAttempts     int    `hcl:"max_attempts,optional"`
	OrphanPots      string `hcl:"orphan_pots,optional"`
}

// SeatConfig is one player at the table.
type SeatConfig struct {
	Name  string `hcl:"name,label"`
	Kind  string `hcl:"kind,optional"`
	Seat  *int   `hcl:"seat,optional"`
	Stack int    `hcl:"stack,optional"`
}

// Overrides are the settings that can be replaced from the environment.
// Zero values leave the file configuration untouched.
type Overrides struct {
	Seed            int64         `env:"SEED"`
	LogLevel        string        `env:"LOG_LEVEL"`
	SmallBlind      int           `env:"SMALL_BLIND"`
	BigBlind        int           `env:"BIG_BLIND"`
	Hands           int           `env:"HANDS"`
	DecisionTimeout time.Duration `env:"DECISION_TIMEOUT"`
}

// Default returns a four-handed table with one human seat.
func Default() *Config {
	c := &Config{
		Seats: []SeatConfig{
			{Name: "hero", Kind: KindHuman},
			{Name: "alice", Kind: "heuristic"},
			{Name: "bob", Kind: "call"},
			{Name: "carol", Kind: "heuristic"},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads an HCL file. A missing file yields the default configuration.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes HCL source already in memory.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	t := c.Table
	if t.SmallBlind == 0 {
		t.SmallBlind = 5
	}
	if t.BigBlind == 0 {
		t.BigBlind = t.SmallBlind * 2
	}
	if t.StartingStack == 0 {
		t.StartingStack = t.BigBlind * 100
	}
	if t.Hands == 0 {
		t.Hands = 10
	}
	if t.LogLevel == "" {
		t.LogLevel = "info"
	}
	if t.DecisionTimeout == "" {
		t.DecisionTimeout = "30s"
	}
	if t.IllegalAction == "" {
		t.IllegalAction = game.IllegalRetry.String()
	}
	if t.MaxAttempts == 0 {
		t.MaxAttempts = 3
	}
	if t.OrphanPots == "" {
		t.OrphanPots = game.OrphanRefund.String()
	}

	for i := range c.Seats {
		s := &c.Seats[i]
		if s.Kind == "" {
			s.Kind = "heuristic"
		}
		if s.Seat == nil {
			seat := i
			s.Seat = &seat
		}
		if s.Stack == 0 {
			s.Stack = t.StartingStack
		}
	}
}

// ApplyEnv overrides settings from HOLDEM_ prefixed variables. A nil
// environment reads the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var o Overrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	c.Override(o)
	return nil
}

// Override applies the non-zero fields of o.
func (c *Config) Override(o Overrides) {
	if c.Table == nil {
		c.applyDefaults()
	}
	t := c.Table
	if o.Seed != 0 {
		t.Seed = o.Seed
	}
	if o.LogLevel != "" {
		t.LogLevel = o.LogLevel
	}
	if o.SmallBlind != 0 {
		t.SmallBlind = o.SmallBlind
	}
	if o.BigBlind != 0 {
		t.BigBlind = o.BigBlind
	}
	if o.Hands != 0 {
		t.Hands = o.Hands
	}
	if o.DecisionTimeout != 0 {
		t.DecisionTimeout = o.DecisionTimeout.String()
	}
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	t := c.Table
	if t == nil {
		return fmt.Errorf("missing table block")
	}
	if _, err := c.Rules(); err != nil {
		return err
	}
	if t.Hands < 1 {
		return fmt.Errorf("hands must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	if len(c.Seats) < 2 || len(c.Seats) > game.MaxSeats {
		return fmt.Errorf("between 2 and %d seats must be configured, got %d", game.MaxSeats, len(c.Seats))
	}
	kinds := append(bot.Kinds(), KindHuman)
	names := map[string]bool{}
	numbers := map[int]bool{}
	humans := 0
	for _, s := range c.Seats {
		if names[s.Name] {
			return fmt.Errorf("seat %s: duplicate name", s.Name)
		}
		names[s.Name] = true
		if s.Seat == nil || *s.Seat < 0 {
			return fmt.Errorf("seat %s: seat number must not be negative", s.Name)
		}
		if numbers[*s.Seat] {
			return fmt.Errorf("seat %s: seat %d is taken", s.Name, *s.Seat)
		}
		numbers[*s.Seat] = true
		if s.Stack <= 0 {
			return fmt.Errorf("seat %s: stack must be positive", s.Name)
		}
		if !slices.Contains(kinds, s.Kind) {
			return fmt.Errorf("seat %s: invalid kind %s", s.Name, s.Kind)
		}
		if s.Kind == KindHuman {
			humans++
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}
	return nil
}

// Rules converts the table settings into betting rules.
func (c *Config) Rules() (game.Rules, error) {
	t := c.Table
	rules := game.DefaultRules(t.SmallBlind, t.BigBlind)
	if t.EnforceMinRaise != nil {
		rules.EnforceMinRaise = *t.EnforceMinRaise
	}
	if t.ClampOverbets != nil {
		rules.ClampOverbets = *t.ClampOverbets
	}
	if t.BurnCards != nil {
		rules.BurnCards = *t.BurnCards
	}
	rules.MaxAttempts = t.MaxAttempts

	var err error
	if rules.IllegalPolicy, err = game.ParseIllegalPolicy(t.IllegalAction); err != nil {
		return game.Rules{}, err
	}
	if rules.OrphanPolicy, err = game.ParseOrphanPolicy(t.OrphanPots); err != nil {
		return game.Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return game.Rules{}, err
	}
	return rules, nil
}

// Players returns the configured seats in declaration order.
func (c *Config) Players() []game.Player {
	players := make([]game.Player, 0, len(c.Seats))
	for _, s := range c.Seats {
		players = append(players, game.Player{Seat: *s.Seat, Name: s.Name, Stack: s.Stack})
	}
	return players
}

// Level parses the configured log level.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.Table.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Table.LogLevel, err)
	}
	return level, nil
}

// Timeout parses the per-decision time limit. Zero disables the limit.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Table.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision timeout %q: %w", c.Table.DecisionTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("decision timeout must not be negative")
	}
	return d, nil
}
