package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/randutil"
)

type PlayCmd struct {
	Config   string `short:"c" default:"table.hcl" type:"path" help:"HCL table configuration (defaults are used when the file is missing)"`
	Hands    int    `help:"Number of hands to play (overrides the configuration)"`
	Seed     int64  `help:"RNG seed (overrides the configuration, 0 for random)"`
	LogLevel string `help:"Log level (debug|info|warn|error)"`
	Plain    bool   `help:"Disable colours and suit symbols"`
	Format   string `enum:"text,phh" default:"text" help:"Hand output format (text|phh)"`
}

func (c *PlayCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()
	return c.run(ctx, os.Stdin, os.Stdout, os.Stderr, nil)
}

func (c *PlayCmd) run(ctx context.Context, in io.Reader, out, errOut io.Writer, environ map[string]string) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return err
	}
	cfg.Override(config.Overrides{Seed: c.Seed, Hands: c.Hands, LogLevel: c.LogLevel})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", c.Config, err)
	}

	level, _ := cfg.Level()
	logger := newLogger(errOut, level, "play")
	rules, _ := cfg.Rules()
	timeout, _ := cfg.Timeout()
	seed := randutil.Seed(cfg.Table.Seed)
	logger.Info("starting session", "seed", seed, "hands", cfg.Table.Hands, "players", len(cfg.Seats),
		"blinds", fmt.Sprintf("%d/%d", rules.SmallBlind, rules.BigBlind))

	agents := make(map[int]game.Agent, len(cfg.Seats))
	for _, s := range cfg.Seats {
		var agent game.Agent
		if s.Kind == config.KindHuman {
			agent = game.NewInteractive(in, out)
		} else {
			agent, err = bot.New(s.Kind, randutil.New(randutil.Child(seed, *s.Seat)), logger)
			if err != nil {
				return err
			}
		}
		if timeout > 0 {
			agent = game.NewTimeout(agent, timeout, quartz.NewReal())
		}
		agents[*s.Seat] = agent
	}

	table, err := game.NewTable(randutil.New(seed), cfg.Players(), rules, game.WithTableLogger(logger))
	if err != nil {
		return err
	}

	printer := display.NewPrinter(out, c.Plain)
	for hand := 0; hand < cfg.Table.Hands; hand++ {
		result, err := table.PlayHand(ctx, agents)
		if errors.Is(err, game.ErrTableFinished) {
			logger.Info("table finished", "hands", table.HandsPlayed())
			break
		}
		if ctx.Err() != nil {
			logger.Warn("session interrupted", "hands", table.HandsPlayed())
			break
		}
		if err != nil {
			return fmt.Errorf("hand %d: %w", hand+1, err)
		}
		if c.Format == "phh" {
			if err := phh.Encode(out, phh.FromHand(result, "holdem", time.Now())); err != nil {
				return fmt.Errorf("hand %d: %w", hand+1, err)
			}
		} else {
			printer.Hand(result)
		}
		fmt.Fprintln(out)
	}

	if c.Format != "phh" {
		printer.Standings(table.Players(), table.Busted())
	}
	return nil
}
