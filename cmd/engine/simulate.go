package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	"github.com/KirkDiggler/tabletop-engine/internal/simulation"
)

var (
	simRuns        int
	simConcurrency int
	simSeed        int64
	simGoblins     int
	simMaxRounds   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate fight odds by playing many encounters",
	Long: `Plays the duel roster many times in parallel and reports the outcomes.
The same seed always produces the same report regardless of concurrency.

  Example: engine simulate --runs 10000 --goblins 3 --seed 1`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simRuns, "runs", 1000, "number of encounters to play")
	simulateCmd.Flags().IntVar(&simConcurrency, "concurrency", 0, "parallel encounters (defaults to GOMAXPROCS)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "base seed")
	simulateCmd.Flags().IntVar(&simGoblins, "goblins", 1, "number of goblins")
	simulateCmd.Flags().IntVar(&simMaxRounds, "max-rounds", simulation.DefaultMaxRounds, "count encounters still running after this many rounds as fled")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	input := heroInput()
	input.ID = "hero"
	input.HitDie = 10

	hero, err := character.New(input)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	template, err := a.CharacterService.CombatantFromCharacter(hero, shared.SidePlayer, longsword())
	if err != nil {
		return err
	}

	report, err := simulation.Run(cmd.Context(), &simulation.Config{
		Runs:        simRuns,
		Concurrency: simConcurrency,
		Seed:        simSeed,
		MaxRounds:   simMaxRounds,
		Build: func() []*combat.Combatant {
			return append([]*combat.Combatant{template.Clone()}, goblins(max(simGoblins, 1))...)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}
