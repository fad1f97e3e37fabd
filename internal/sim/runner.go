// Package sim runs many independent battles of one matchup and tallies the outcome.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/famsim/internal/config"
	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/game/battle"
	"github.com/udisondev/famsim/internal/rng"
)

// Runner — Monte-Carlo прогон одного матчапа.
// Каждый бой получает свой rng-поток (seed, index), поэтому результат
// не зависит от числа воркеров.
type Runner struct {
	cat   *data.Catalog
	rules config.Rules
	sim   config.Simulation
	setup battle.Setup

	// trace receives the combat log of battle 0. nil disables tracing.
	trace *zap.Logger
}

// NewRunner validates the matchup against the catalog.
// trace may be nil.
func NewRunner(cat *data.Catalog, cfg config.Simulator, trace *zap.Logger) (*Runner, error) {
	if cfg.Simulation.Battles <= 0 {
		return nil, fmt.Errorf("battles must be positive, got %d", cfg.Simulation.Battles)
	}
	if cfg.Simulation.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Simulation.Workers)
	}
	setup, err := BuildSetup(cfg.Simulation, cfg.Teams)
	if err != nil {
		return nil, err
	}
	// A lineup the catalog cannot build would fail every battle the same way.
	if _, err := battle.New(setup, cat, cfg.Rules, rng.NewStream(0, 0), nil); err != nil {
		return nil, fmt.Errorf("building matchup: %w", err)
	}
	return &Runner{cat: cat, rules: cfg.Rules, sim: cfg.Simulation, setup: setup, trace: trace}, nil
}

type outcome struct {
	res  battle.Result
	err  error
	done bool
}

// Run plays the configured number of battles on a bounded worker pool.
// A failed battle is counted and logged; with fail_fast it cancels the run
// and its error is returned along with the partial report.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	seed := r.sim.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	workers := r.sim.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rep := Report{RunID: uuid.New(), Seed: seed, Requested: r.sim.Battles}
	log := slog.With("run_id", rep.RunID.String())
	log.Info("simulation started",
		"battles", r.sim.Battles,
		"workers", workers,
		"seed", seed,
		"mode", r.setup.Mode.String(),
	)

	outcomes := make([]outcome, r.sim.Battles)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range outcomes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, err := r.play(seed, i)
			outcomes[i] = outcome{res: res, err: err, done: true}
			if err != nil {
				log.Warn("battle failed", "battle", i, "err", err)
				if r.sim.FailFast {
					return fmt.Errorf("battle %d: %w", i, err)
				}
			}
			return nil
		})
	}
	waitErr := g.Wait()

	for _, o := range outcomes {
		switch {
		case !o.done:
		case o.err != nil:
			rep.Failed++
		default:
			rep.add(o.res)
		}
	}

	if waitErr == nil {
		waitErr = ctx.Err()
	}
	if waitErr != nil {
		log.Warn("simulation stopped early", "report", rep, "err", waitErr)
		return rep, waitErr
	}
	log.Info("simulation finished", "report", rep)
	return rep, nil
}

// play runs battle index of the run seeded with seed.
func (r *Runner) play(seed uint64, index int) (res battle.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("battle panicked: %v", p)
		}
	}()

	var log *zap.Logger
	if index == 0 && r.trace != nil {
		log = r.trace.With(zap.Uint64("seed", seed))
	}

	b, err := battle.New(r.setup, r.cat, r.rules, rng.NewStream(seed, index), log)
	if err != nil {
		return battle.Result{}, err
	}
	res, err = b.Run()
	if err != nil {
		if errors.Is(err, battle.ErrInvariant) {
			return res, fmt.Errorf("engine invariant broken: %w", err)
		}
		return res, err
	}
	return res, nil
}
