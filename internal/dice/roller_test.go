package dice_test

import (
	"testing"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	mockdice "github.com/KirkDiggler/tabletop-engine/internal/dice/mock"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d20 roll",
			setupRolls: []int{15},
			count:      1,
			sides:      20,
			bonus:      0,
			wantTotal:  15,
			wantRolls:  []int{15},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12, // 4+5+3
			wantRolls:  []int{4, 5},
		},
		{
			name:       "negative modifier",
			setupRolls: []int{1},
			count:      1,
			sides:      8,
			bonus:      -1,
			wantTotal:  0,
			wantRolls:  []int{1},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      6,
			bonus:      0,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{7},
			count:      1,
			sides:      6,
			bonus:      0,
			wantErr:    true,
		},
		{
			name:    "zero dice",
			count:   0,
			sides:   6,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := dice.NewRoller(mockdice.NewScriptedSource(tt.setupRolls...))

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
			assert.Equal(t, tt.bonus, result.Modifier)
		})
	}
}

func TestRoller_RollWithAdvantage(t *testing.T) {
	tests := []struct {
		name          string
		setupRolls    []int
		sides         int
		bonus         int
		wantTotal     int
		wantKept      int
		wantDiscarded int
	}{
		{
			name:          "advantage takes higher",
			setupRolls:    []int{10, 15},
			sides:         20,
			bonus:         3,
			wantTotal:     18, // 15+3
			wantKept:      15,
			wantDiscarded: 10,
		},
		{
			name:          "advantage with same rolls",
			setupRolls:    []int{12, 12},
			sides:         20,
			wantTotal:     12,
			wantKept:      12,
			wantDiscarded: 12,
		},
		{
			name:          "advantage first roll higher",
			setupRolls:    []int{17, 8},
			sides:         20,
			bonus:         2,
			wantTotal:     19, // 17+2
			wantKept:      17,
			wantDiscarded: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := dice.NewRoller(mockdice.NewScriptedSource(tt.setupRolls...))

			result, err := roller.RollWithAdvantage(tt.sides, tt.bonus)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, []int{tt.wantKept}, result.Rolls)
			assert.Equal(t, []int{tt.wantDiscarded}, result.Discarded)
		})
	}
}

func TestRoller_RollWithDisadvantage(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		sides      int
		bonus      int
		wantTotal  int
		wantKept   int
	}{
		{
			name:       "disadvantage takes lower",
			setupRolls: []int{10, 15},
			sides:      20,
			bonus:      3,
			wantTotal:  13, // 10+3
			wantKept:   10,
		},
		{
			name:       "disadvantage second roll lower",
			setupRolls: []int{17, 8},
			sides:      20,
			bonus:      2,
			wantTotal:  10, // 8+2
			wantKept:   8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := dice.NewRoller(mockdice.NewScriptedSource(tt.setupRolls...))

			result, err := roller.RollWithDisadvantage(tt.sides, tt.bonus)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, []int{tt.wantKept}, result.Rolls)
			assert.Len(t, result.Discarded, 1)
		})
	}
}

func TestRoller_SequentialRolls(t *testing.T) {
	src := mockdice.NewScriptedSource(20, 1, 15, 8)
	roller := dice.NewRoller(src)

	// First roll - critical
	result, err := roller.Roll(1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Total)
	assert.True(t, result.IsCritical())

	// Second roll - critical miss
	result, err = roller.Roll(1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.True(t, result.IsFumble())

	// Third roll - normal hit
	result, err = roller.Roll(1, 20, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Total) // 15+5
	assert.False(t, result.IsCritical())

	// Fourth roll - damage
	result, err = roller.Roll(1, 8, 3)
	require.NoError(t, err)
	assert.Equal(t, 11, result.Total) // 8+3
	assert.Equal(t, 0, src.Remaining())

	// Fifth roll should error - no more rolls
	_, err = roller.Roll(1, 20, 0)
	assert.Error(t, err)
}

func TestRoller_CryptoSource(t *testing.T) {
	// Just verify the crypto source stays inside bounds
	roller := dice.NewRoller(dice.NewCryptoSource())

	for i := 0; i < 50; i++ {
		result, err := roller.Roll(2, 6, 3)
		require.NoError(t, err)
		assert.Len(t, result.Rolls, 2)
		assert.GreaterOrEqual(t, result.Total, 5) // minimum: 1+1+3
		assert.LessOrEqual(t, result.Total, 15)   // maximum: 6+6+3
	}

	advResult, err := roller.RollWithAdvantage(20, 2)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, advResult.Rolls[0], advResult.Discarded[0])
}

func TestRollWithMode(t *testing.T) {
	tests := []struct {
		name          string
		expression    string
		mode          dice.RollMode
		setupRolls    []int
		wantTotal     int
		wantDiscarded []int
		wantText      string
		wantCode      dnderr.Code
	}{
		{
			name:       "normal",
			expression: "2d6+1",
			setupRolls: []int{3, 4},
			wantTotal:  8,
			wantText:   "2d6+1 [3,4] = 8",
		},
		{
			name:          "advantage",
			expression:    "1d20+2",
			mode:          dice.RollAdvantage,
			setupRolls:    []int{4, 15},
			wantTotal:     17,
			wantDiscarded: []int{4},
			wantText:      "1d20+2 [15] (dropped 4) = 17",
		},
		{
			name:          "disadvantage",
			expression:    "1d20+2",
			mode:          dice.RollDisadvantage,
			setupRolls:    []int{4, 15},
			wantTotal:     6,
			wantDiscarded: []int{15},
			wantText:      "1d20+2 [4] (dropped 15) = 6",
		},
		{
			name:       "advantage on several dice",
			expression: "2d20",
			mode:       dice.RollAdvantage,
			wantCode:   dnderr.CodeMalformedExpression,
		},
		{
			name:       "unknown mode",
			expression: "1d20",
			mode:       dice.RollMode("lucky"),
			setupRolls: []int{1},
			wantCode:   dnderr.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := dice.RollWithMode(dice.MustParse(tt.expression), tt.mode, mockdice.NewScriptedSource(tt.setupRolls...))
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, dnderr.GetCode(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantDiscarded, result.Discarded)
			assert.Equal(t, tt.wantText, result.String())
		})
	}
}

func TestRollWithMode_NilSource(t *testing.T) {
	_, err := dice.RollWithMode(dice.MustParse("1d20"), dice.RollAdvantage, nil)
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestParseRollMode(t *testing.T) {
	mode, ok := dice.ParseRollMode(" Advantage ")
	assert.True(t, ok)
	assert.Equal(t, dice.RollAdvantage, mode)

	mode, ok = dice.ParseRollMode("disadvantage")
	assert.True(t, ok)
	assert.Equal(t, dice.RollDisadvantage, mode)

	_, ok = dice.ParseRollMode("Perception")
	assert.False(t, ok)
}

func TestRoller_NilSourcePanics(t *testing.T) {
	assert.Panics(t, func() { dice.NewRoller(nil) })
}

func TestRoll_SourceError(t *testing.T) {
	_, err := dice.Roll(dice.MustParse("3d6"), mockdice.NewScriptedSource(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to roll d6")
}

func TestRoll_NilSource(t *testing.T) {
	_, err := dice.Roll(dice.MustParse("1d6"), nil)
	assert.True(t, dnderr.IsInvalidArgument(err))
}
