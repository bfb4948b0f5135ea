package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	"github.com/KirkDiggler/tabletop-engine/internal/narration"
	"github.com/KirkDiggler/tabletop-engine/internal/services/encounter"
)

const victoryExperience = 50

var (
	duelSeed      int64
	duelGoblins   int
	duelMaxRounds int
	duelEmbed     bool
)

var duelCmd = &cobra.Command{
	Use:   "duel",
	Short: "Run a scripted fight and print the narration",
	Long: `Creates a level 1 fighter, pits them against goblins and narrates every action.
The fighter's hit points are written back when the fight ends and a victory awards experience.

  Example: engine duel --seed 7 --goblins 2`,
	Args: cobra.NoArgs,
	RunE: runDuel,
}

func init() {
	duelCmd.Flags().Int64Var(&duelSeed, "seed", 0, "seed for reproducible fights")
	duelCmd.Flags().IntVar(&duelGoblins, "goblins", 1, "number of goblins")
	duelCmd.Flags().IntVar(&duelMaxRounds, "max-rounds", 50, "flee after this many rounds")
	duelCmd.Flags().BoolVar(&duelEmbed, "embed", false, "print the opening and final Discord messages as JSON")
}

func runDuel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx, sourceFor(cmd, duelSeed))
	if err != nil {
		return err
	}
	defer a.Close()

	narration.Subscribe(a.Bus, func(line string) {
		fmt.Fprintln(out, line)
	})

	hero, err := a.CharacterService.CreateCharacter(ctx, heroInput())
	if err != nil {
		return err
	}
	combatant, err := a.CharacterService.CombatantFromCharacter(hero, shared.SidePlayer, longsword())
	if err != nil {
		return err
	}

	session, err := a.EncounterService.StartEncounter(ctx, &encounter.StartEncounterInput{
		Combatants: append([]*combat.Combatant{combatant}, goblins(max(duelGoblins, 1))...),
	})
	if err != nil {
		return err
	}
	for _, entry := range session.Log {
		fmt.Fprintln(out, narration.Line(entry))
	}
	if duelEmbed {
		if err := printMessage(cmd, session, session.Log[len(session.Log)-1]); err != nil {
			return err
		}
	}

	var last *combat.LogEntry
	for !session.IsEnded() {
		var outcome *encounter.ActionOutcome
		if session.Round > duelMaxRounds {
			outcome, err = a.EncounterService.Flee(ctx, session.ID)
		} else {
			outcome, err = a.EncounterService.SubmitAction(ctx, &encounter.SubmitActionInput{
				EncounterID: session.ID,
				ActorID:     session.Current().ID,
			})
		}
		if err != nil {
			return err
		}
		session, last = outcome.Session, outcome.Entry
	}

	if session.Outcome == combat.OutcomeVictory {
		if _, err := a.CharacterService.AwardExperience(ctx, hero.ID, victoryExperience); err != nil {
			return err
		}
	}

	stored, err := a.CharacterService.GetCharacter(ctx, hero.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s ends with %d/%d HP and %d XP.\n", stored.Name, stored.HitPoints, stored.MaxHitPoints, stored.Experience)

	if duelEmbed {
		return printMessage(cmd, session, last)
	}

	return nil
}

// printMessage writes the Discord message a chat surface would post for entry
func printMessage(cmd *cobra.Command, session *combat.Session, entry *combat.LogEntry) error {
	msg, err := narration.Message(session, entry)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
