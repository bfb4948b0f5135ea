package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/narration"
)

var (
	createName      string
	createClass     string
	createLevel     int
	createAbilities []int
)

var createCharacterCmd = &cobra.Command{
	Use:   "create-character",
	Short: "Create a character in the configured store",
	Long: `Creates a character with derived hit points, armor class and class unlocks.

  Example: engine create-character --name Aria --class fighter --abilities 16,14,15,10,13,12`,
	Args: cobra.NoArgs,
	RunE: runCreateCharacter,
}

var awardCmd = &cobra.Command{
	Use:   "award [character-id] [amount]",
	Short: "Award experience to a stored character",
	Long: `Adds experience and applies every level crossed.

  Example: engine award 6f1c2d3e-... 300`,
	Args: cobra.ExactArgs(2),
	RunE: runAward,
}

func init() {
	createCharacterCmd.Flags().StringVar(&createName, "name", "", "character name")
	createCharacterCmd.Flags().StringVar(&createClass, "class", "fighter", "class key")
	createCharacterCmd.Flags().IntVar(&createLevel, "level", 1, "starting level")
	createCharacterCmd.Flags().IntSliceVar(&createAbilities, "abilities", []int{10, 10, 10, 10, 10, 10}, "STR,DEX,CON,INT,WIS,CHA")
	_ = createCharacterCmd.MarkFlagRequired("name")
}

func runCreateCharacter(cmd *cobra.Command, args []string) error {
	if len(createAbilities) != 6 {
		return fmt.Errorf("expected 6 ability scores, got %d", len(createAbilities))
	}

	a, err := newApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	char, err := a.CharacterService.CreateCharacter(cmd.Context(), &character.NewInput{
		Name:     createName,
		ClassKey: createClass,
		Level:    createLevel,
		Abilities: character.AbilityScores{
			Strength:     createAbilities[0],
			Dexterity:    createAbilities[1],
			Constitution: createAbilities[2],
			Intelligence: createAbilities[3],
			Wisdom:       createAbilities[4],
			Charisma:     createAbilities[5],
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s): level %d %s, %d HP, AC %d\n",
		char.Name, char.ID, char.Level, char.ClassKey, char.MaxHitPoints, char.ArmorClass)
	return nil
}

func runAward(cmd *cobra.Command, args []string) error {
	var amount int
	if _, err := fmt.Sscanf(args[1], "%d", &amount); err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	a, err := newApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.CharacterService.AwardExperience(cmd.Context(), args[0], amount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.LevelUp != nil {
		fmt.Fprintln(out, narration.LevelUpLine(result.Character.Name, result.LevelUp))
	}

	progress := a.ProgressionService.Progress(result.Character)
	fmt.Fprintf(out, "%s has %d XP (level %d)", result.Character.Name, result.Character.Experience, result.Character.Level)
	if !progress.MaxLevel {
		fmt.Fprintf(out, ", %d XP to level %d", progress.Remaining, progress.Level+1)
	}
	fmt.Fprintln(out)

	return nil
}
