// Package simulation plays many encounters to estimate outcome odds
package simulation

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/services/encounter"
)

// DefaultMaxRounds stops encounters that never resolve (e.g. nobody can hit)
const DefaultMaxRounds = 100

// Policy chooses the action for the combatant whose turn it is
type Policy func(session *combat.Session, actor *combat.Combatant) (encounter.ActionRequest, error)

// Config describes a simulation
type Config struct {
	Runs        int
	Concurrency int   // defaults to GOMAXPROCS
	Seed        int64 // base seed; run i uses a seed derived from it
	MaxRounds   int   // encounters still running after this many rounds count as fled
	Build       func() []*combat.Combatant
	Policy      Policy // defaults to DefaultPolicy
	Logger      *zap.Logger
}

// Report aggregates simulation outcomes
type Report struct {
	Runs          int     `json:"runs"`
	Victories     int     `json:"victories"`
	Defeats       int     `json:"defeats"`
	Fled          int     `json:"fled"`
	AverageRounds float64 `json:"average_rounds"`
}

// VictoryRate is the fraction of runs that ended in victory
func (r *Report) VictoryRate() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Victories) / float64(r.Runs)
}

// String renders a one-line summary
func (r *Report) String() string {
	return fmt.Sprintf("%d runs: %d victories (%.1f%%), %d defeats, %d fled, %.2f rounds on average",
		r.Runs, r.Victories, r.VictoryRate()*100, r.Defeats, r.Fled, r.AverageRounds)
}

type runResult struct {
	outcome combat.Outcome
	rounds  int
}

// DefaultPolicy attacks the first living opponent with the first attack action,
// and passes when the actor has no attack
func DefaultPolicy(_ *combat.Session, actor *combat.Combatant) (encounter.ActionRequest, error) {
	if _, ok := actor.FirstAction(combat.ActionKindAttack); ok {
		return encounter.ActionRequest{}, nil
	}
	if pass, ok := actor.FirstAction(combat.ActionKindPass); ok {
		return encounter.ActionRequest{ActionID: pass.ID}, nil
	}
	return encounter.ActionRequest{}, dnderr.InvalidArgumentf("%s has no usable action", actor.ID)
}

// Run plays cfg.Runs encounters in parallel. Results depend only on the seed.
func Run(ctx context.Context, cfg *Config) (*Report, error) {
	if cfg == nil || cfg.Build == nil {
		return nil, dnderr.InvalidArgument("simulation needs a combatant builder")
	}
	if cfg.Runs < 1 {
		return nil, dnderr.InvalidArgumentf("runs must be at least 1, got %d", cfg.Runs)
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	maxRounds := cfg.MaxRounds
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	policy := cfg.Policy
	if policy == nil {
		policy = DefaultPolicy
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	resolver := encounter.NewResolver(nil)
	results := make([]runResult, cfg.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := 0; i < cfg.Runs; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src := dice.NewSeededSource(DeriveSeed(cfg.Seed, i))
			result, err := playOne(resolver, fmt.Sprintf("sim-%d", i), cfg.Build(), src, policy, maxRounds)
			if err != nil {
				return dnderr.Wrapf(err, "run %d failed", i)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Runs: cfg.Runs}
	totalRounds := 0
	for _, r := range results {
		switch r.outcome {
		case combat.OutcomeVictory:
			report.Victories++
		case combat.OutcomeDefeat:
			report.Defeats++
		default:
			report.Fled++
		}
		totalRounds += r.rounds
	}
	report.AverageRounds = float64(totalRounds) / float64(cfg.Runs)

	logger.Info("simulation finished",
		zap.Int("runs", report.Runs),
		zap.Int("victories", report.Victories),
		zap.Int("defeats", report.Defeats),
		zap.Int("fled", report.Fled),
		zap.Float64("average_rounds", report.AverageRounds))

	return report, nil
}

func playOne(resolver *encounter.Resolver, id string, combatants []*combat.Combatant, src dice.Source, policy Policy, maxRounds int) (runResult, error) {
	session, err := resolver.Start(id, combatants, src)
	if err != nil {
		return runResult{}, err
	}

	for !session.IsEnded() {
		if session.Round > maxRounds {
			session, _, err = resolver.Flee(session)
			if err != nil {
				return runResult{}, err
			}
			break
		}

		actor := session.Current()
		req, err := policy(session, actor)
		if err != nil {
			return runResult{}, err
		}
		session, _, err = resolver.ResolveAction(session, actor.ID, req, src)
		if err != nil {
			return runResult{}, err
		}
	}

	return runResult{outcome: session.Outcome, rounds: session.Round}, nil
}

// DeriveSeed mixes a base seed with a run index (splitmix64) so neighbouring runs get unrelated streams
func DeriveSeed(base int64, index int) int64 {
	z := uint64(base) + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
