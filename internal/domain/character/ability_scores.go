package character

import (
	"fmt"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
)

// AbilityScores holds the six raw scores. Values are not clamped.
type AbilityScores struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// Get returns the raw score for an attribute
func (a AbilityScores) Get(attr shared.Attribute) int {
	switch attr {
	case shared.AttributeStrength:
		return a.Strength
	case shared.AttributeDexterity:
		return a.Dexterity
	case shared.AttributeConstitution:
		return a.Constitution
	case shared.AttributeIntelligence:
		return a.Intelligence
	case shared.AttributeWisdom:
		return a.Wisdom
	case shared.AttributeCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// Modifier returns the ability modifier for an attribute
func (a AbilityScores) Modifier(attr shared.Attribute) int {
	return AbilityModifier(a.Get(attr))
}

func (a AbilityScores) DexterityModifier() int {
	return AbilityModifier(a.Dexterity)
}

func (a AbilityScores) ConstitutionModifier() int {
	return AbilityModifier(a.Constitution)
}

// String renders "Str 16 (+3), Dex 12 (+1), ..."
func (a AbilityScores) String() string {
	out := ""
	for i, attr := range shared.Attributes {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %d (%+d)", attr, a.Get(attr), a.Modifier(attr))
	}
	return out
}
