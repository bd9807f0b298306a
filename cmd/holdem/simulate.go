package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/simulator"
)

type SimulateCmd struct {
	Tables      int           `short:"t" default:"8" help:"Number of independent tables"`
	Hands       int           `short:"n" default:"1000" help:"Hands per table"`
	Seats       int           `default:"6" help:"Players per table"`
	Stack       int           `default:"200" help:"Starting stack"`
	SmallBlind  int           `default:"1" env:"HOLDEM_SMALL_BLIND" help:"Small blind"`
	BigBlind    int           `default:"2" env:"HOLDEM_BIG_BLIND" help:"Big blind"`
	Bots        []string      `default:"heuristic,call,random,maniac,fold,heuristic" help:"Bot kinds assigned to seats in turn"`
	Seed        int64         `env:"HOLDEM_SEED" help:"RNG seed (0 for random)"`
	Concurrency int           `short:"j" help:"Tables run at once (defaults to GOMAXPROCS)"`
	HandTimeout time.Duration `default:"10s" help:"Abort when a single hand runs longer than this"`
	LogLevel    string        `default:"warn" env:"HOLDEM_LOG_LEVEL" help:"Log level (debug|info|warn|error)"`
	Plain       bool          `help:"Disable colours"`
}

func (c *SimulateCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()
	return c.run(ctx, os.Stdout, os.Stderr)
}

func (c *SimulateCmd) run(ctx context.Context, out, errOut io.Writer) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(errOut, level, "simulate")

	seed := randutil.Seed(c.Seed)
	logger.Info("starting simulation", "seed", seed, "tables", c.Tables, "hands", c.Hands)

	start := time.Now()
	report, err := simulator.New(simulator.Config{
		Tables:      c.Tables,
		Hands:       c.Hands,
		Seats:       c.Seats,
		Stack:       c.Stack,
		Rules:       game.DefaultRules(c.SmallBlind, c.BigBlind),
		Bots:        c.Bots,
		Seed:        seed,
		Concurrency: c.Concurrency,
		HandTimeout: c.HandTimeout,
		Logger:      logger,
	}).Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("simulation complete", "hands", report.Hands, "elapsed", time.Since(start).Round(time.Millisecond))

	display.NewPrinter(out, c.Plain).Report(report)
	return nil
}
