package testutils

import (
	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
)

// CreateTestCharacter creates a level 1 fighter with derived stats
func CreateTestCharacter(id, name string) *character.Character {
	char, err := character.New(&character.NewInput{
		ID:       id,
		Name:     name,
		ClassKey: "fighter",
		HitDie:   10,
		Abilities: character.AbilityScores{
			Strength:     16,
			Dexterity:    14,
			Constitution: 15,
			Intelligence: 10,
			Wisdom:       13,
			Charisma:     12,
		},
	})
	if err != nil {
		panic(err)
	}
	return char
}

// CreateTestCombatant creates a combatant with a single 1d8+3 attack
func CreateTestCombatant(id string, side shared.Side, hp, ac int) *combat.Combatant {
	return &combat.Combatant{
		ID:             id,
		Name:           id,
		Side:           side,
		HitPoints:      hp,
		MaxHitPoints:   hp,
		ArmorClass:     ac,
		AttackModifier: 5,
		Actions: []*combat.Action{
			{ID: "strike", Name: "Strike", Kind: combat.ActionKindAttack, Damage: dice.MustParse("1d8+3")},
		},
	}
}

// CreateTestSession creates an encounter awaiting the first combatant's action
func CreateTestSession(id string, combatants ...*combat.Combatant) *combat.Session {
	return &combat.Session{
		ID:         id,
		State:      combat.StateAwaitingAction,
		Combatants: combatants,
		Round:      1,
	}
}
