package main

import (
	"fmt"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
)

func heroInput() *character.NewInput {
	return &character.NewInput{
		Name:     "Aria",
		ClassKey: "fighter",
		Abilities: character.AbilityScores{
			Strength:     16,
			Dexterity:    14,
			Constitution: 15,
			Intelligence: 10,
			Wisdom:       13,
			Charisma:     12,
		},
	}
}

func longsword() []*combat.Action {
	return []*combat.Action{{
		ID:     "longsword",
		Name:   "Longsword",
		Kind:   combat.ActionKindAttack,
		Damage: dice.MustParse("1d8+3"),
	}}
}

func goblins(n int) []*combat.Combatant {
	out := make([]*combat.Combatant, n)
	for i := range out {
		name := "Goblin"
		if n > 1 {
			name = fmt.Sprintf("Goblin %d", i+1)
		}
		out[i] = &combat.Combatant{
			ID:                fmt.Sprintf("goblin-%d", i+1),
			Name:              name,
			Side:              shared.SideOpponent,
			HitPoints:         7,
			MaxHitPoints:      7,
			ArmorClass:        15,
			DexterityModifier: 2,
			AttackModifier:    4,
			Actions: []*combat.Action{{
				ID:     "scimitar",
				Name:   "Scimitar",
				Kind:   combat.ActionKindAttack,
				Damage: dice.MustParse("1d6+2"),
			}},
		}
	}
	return out
}
