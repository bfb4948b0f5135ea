package simulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/simulation"
	"github.com/KirkDiggler/tabletop-engine/internal/testutils"
)

func duel() []*combat.Combatant {
	return []*combat.Combatant{
		testutils.CreateTestCombatant("hero", shared.SidePlayer, 20, 15),
		testutils.CreateTestCombatant("ogre", shared.SideOpponent, 20, 12),
	}
}

func TestRun_DeterministicAcrossConcurrency(t *testing.T) {
	ctx := context.Background()

	serial, err := simulation.Run(ctx, &simulation.Config{Runs: 200, Concurrency: 1, Seed: 7, Build: duel})
	require.NoError(t, err)

	parallel, err := simulation.Run(ctx, &simulation.Config{Runs: 200, Concurrency: 8, Seed: 7, Build: duel})
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Equal(t, 200, serial.Victories+serial.Defeats+serial.Fled)
	assert.Positive(t, serial.Victories)
	assert.Positive(t, serial.Defeats)
	assert.GreaterOrEqual(t, serial.AverageRounds, 1.0)
}

func TestRun_StalemateCountsAsFled(t *testing.T) {
	pacifists := func() []*combat.Combatant {
		a := testutils.CreateTestCombatant("monk", shared.SidePlayer, 5, 10)
		b := testutils.CreateTestCombatant("statue", shared.SideOpponent, 5, 10)
		a.Actions = []*combat.Action{{ID: "meditate", Kind: combat.ActionKindPass}}
		b.Actions = []*combat.Action{{ID: "stand", Kind: combat.ActionKindPass}}
		return []*combat.Combatant{a, b}
	}

	report, err := simulation.Run(context.Background(), &simulation.Config{
		Runs:      3,
		Seed:      1,
		MaxRounds: 5,
		Build:     pacifists,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Fled)
	assert.Equal(t, 6.0, report.AverageRounds)
}

func TestRun_Validation(t *testing.T) {
	_, err := simulation.Run(context.Background(), &simulation.Config{Runs: 0, Build: duel})
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = simulation.Run(context.Background(), &simulation.Config{Runs: 1})
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = simulation.Run(context.Background(), &simulation.Config{
		Runs:  1,
		Build: func() []*combat.Combatant { return duel()[:1] },
	})
	assert.True(t, dnderr.IsEmptyEncounter(err))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := simulation.Run(ctx, &simulation.Config{Runs: 10, Build: duel})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, simulation.DeriveSeed(42, 3), simulation.DeriveSeed(42, 3))
	assert.NotEqual(t, simulation.DeriveSeed(42, 3), simulation.DeriveSeed(42, 4))

	a := dice.NewSeededSource(simulation.DeriveSeed(42, 0))
	b := dice.NewSeededSource(simulation.DeriveSeed(42, 0))
	for i := 0; i < 10; i++ {
		x, _ := a.Roll(20)
		y, _ := b.Roll(20)
		assert.Equal(t, x, y)
	}
}
