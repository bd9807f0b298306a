// Package simulator plays many independent tables of bots concurrently and
// aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Tables      int
	Hands       int // per table
	Seats       int
	Stack       int
	Rules       game.Rules
	Bots        []string // bot kinds, assigned to seats round robin
	Seed        int64
	Concurrency int           // tables in flight, defaults to GOMAXPROCS
	HandTimeout time.Duration // a hand running longer is treated as hung
	Logger      *log.Logger
}

// TableReport is the final state of one simulated table.
type TableReport struct {
	Table    int
	Seed     int64
	Hands    int
	Finished bool // stopped early because one player had every chip
	Chips    int
	Players  []game.Player
	Busted   []game.Player
}

// Report aggregates every table.
type Report struct {
	Seed      int64
	Tables    []TableReport
	Hands     int
	Showdowns int
	SplitPots int
	SidePots  int // hands where seats were eligible for different pots
	Refunds   int
	ByBot     map[string]*statistics.Statistics
}

// Simulator runs poker table simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: config}
}

// Validate checks the configuration can be run.
func (c Config) Validate() error {
	if c.Tables < 1 {
		return fmt.Errorf("tables must be positive, got %d", c.Tables)
	}
	if c.Hands < 1 {
		return fmt.Errorf("hands must be positive, got %d", c.Hands)
	}
	if c.Seats < 2 || c.Seats > game.MaxSeats {
		return fmt.Errorf("seats must be between 2 and %d, got %d", game.MaxSeats, c.Seats)
	}
	if c.Stack <= 0 {
		return fmt.Errorf("stack must be positive, got %d", c.Stack)
	}
	if len(c.Bots) == 0 {
		return fmt.Errorf("at least one bot kind is required")
	}
	return c.Rules.Validate()
}

// Run plays every table and returns the combined report. Tables are seeded
// from the configured seed so a run is reproducible regardless of the
// concurrency.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	outcomes := make([]tableOutcome, s.config.Tables)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)
	for i := range outcomes {
		g.Go(func() error {
			out, err := s.runTable(ctx, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Seed: s.config.Seed, ByBot: map[string]*statistics.Statistics{}}
	for _, out := range outcomes {
		report.Tables = append(report.Tables, out.report)
		report.Hands += out.report.Hands
		report.Showdowns += out.showdowns
		report.SplitPots += out.splits
		report.SidePots += out.sidePots
		report.Refunds += out.refunds
		for _, kind := range slices.Sorted(maps.Keys(out.byBot)) {
			if report.ByBot[kind] == nil {
				report.ByBot[kind] = &statistics.Statistics{}
			}
			report.ByBot[kind].Merge(out.byBot[kind])
		}
	}
	for kind, stats := range report.ByBot {
		if err := stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics for %s: %w", kind, err)
		}
	}
	return report, nil
}

type tableOutcome struct {
	report    TableReport
	showdowns int
	splits    int
	sidePots  int
	refunds   int
	byBot     map[string]*statistics.Statistics
}

func (s *Simulator) runTable(ctx context.Context, index int) (tableOutcome, error) {
	cfg := s.config
	seed := randutil.Child(cfg.Seed, index)
	logger := cfg.Logger.With("table", index)

	players := make([]game.Player, cfg.Seats)
	agents := make(map[int]game.Agent, cfg.Seats)
	kinds := make(map[int]string, cfg.Seats)
	for seat := range players {
		kind := cfg.Bots[seat%len(cfg.Bots)]
		agent, err := bot.New(kind, randutil.New(randutil.Child(seed, seat)), logger)
		if err != nil {
			return tableOutcome{}, err
		}
		players[seat] = game.Player{Seat: seat, Name: fmt.Sprintf("%s-%d", kind, seat), Stack: cfg.Stack}
		agents[seat] = agent
		kinds[seat] = kind
	}

	table, err := game.NewTable(randutil.New(seed), players, cfg.Rules, game.WithTableLogger(logger))
	if err != nil {
		return tableOutcome{}, err
	}

	out := tableOutcome{
		report: TableReport{Table: index, Seed: seed},
		byBot:  map[string]*statistics.Statistics{},
	}
	for hand := 0; hand < cfg.Hands; hand++ {
		result, err := s.playHand(ctx, table, agents)
		if errors.Is(err, game.ErrTableFinished) {
			out.report.Finished = true
			break
		}
		if err != nil {
			return tableOutcome{}, fmt.Errorf("hand %d (seed %d): %w", hand+1, seed, err)
		}
		out.record(result, kinds, cfg.Rules.BigBlind)
	}

	out.report.Hands = table.HandsPlayed()
	out.report.Chips = table.Chips()
	out.report.Players = table.Players()
	out.report.Busted = table.Busted()
	if want := cfg.Seats * cfg.Stack; out.report.Chips != want {
		return tableOutcome{}, fmt.Errorf("%w: table %d holds %d chips, want %d", game.ErrChipConservation, index, out.report.Chips, want)
	}
	logger.Debug("table complete", "hands", out.report.Hands, "busted", len(out.report.Busted))
	return out, nil
}

func (s *Simulator) playHand(ctx context.Context, table *game.Table, agents map[int]game.Agent) (game.HandResult, error) {
	if s.config.HandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.HandTimeout)
		defer cancel()
	}
	result, err := table.PlayHand(ctx, agents)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return result, fmt.Errorf("hand timed out after %v: %w", s.config.HandTimeout, err)
	}
	return result, err
}

func (o *tableOutcome) record(result game.HandResult, kinds map[int]string, bigBlind int) {
	if result.Showdown {
		o.showdowns++
	}
	if len(game.MergePots(result.Pots)) > 1 {
		o.sidePots++
	}
	for _, a := range game.MergeAwards(result.Awards, result.Pots) {
		switch {
		case a.Refunded:
			o.refunds++
		case len(a.Shares) > 1:
			o.splits++
		}
	}
	results := statistics.Results(result, bigBlind)
	for _, seat := range result.Seats {
		kind := kinds[seat.ID]
		if o.byBot[kind] == nil {
			o.byBot[kind] = &statistics.Statistics{}
		}
		o.byBot[kind].Add(results[seat.ID])
	}
}
