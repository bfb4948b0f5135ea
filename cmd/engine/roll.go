package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
)

var rollSeed int64

var rollCmd = &cobra.Command{
	Use:   "roll [expression...]",
	Short: "Roll dice expressions",
	Long: `Roll one or more dice expressions such as 1d20+5 or 3d6.

  Example: engine roll 1d20+5 2d6+3 --seed 42`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().Int64Var(&rollSeed, "seed", 0, "seed for reproducible rolls")
}

func runRoll(cmd *cobra.Command, args []string) error {
	src := sourceFor(cmd, rollSeed)
	out := cmd.OutOrStdout()

	for _, arg := range args {
		result, err := dice.RollString(arg, src)
		if err != nil {
			return err
		}

		var flags []string
		if result.IsCritical() {
			flags = append(flags, "critical")
		}
		if result.IsFumble() {
			flags = append(flags, "fumble")
		}

		if len(flags) > 0 {
			fmt.Fprintf(out, "%s (%s)\n", result, strings.Join(flags, ", "))
		} else {
			fmt.Fprintln(out, result)
		}
	}

	return nil
}
