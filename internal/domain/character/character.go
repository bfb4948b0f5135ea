package character

import (
	"slices"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// Character is the canonical character record the engine reads and produces.
// Derived values (ArmorClass, ProficiencyBonus, MaxHitPoints) are stored so the
// persistence layer can write them back without recomputing.
type Character struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	ClassKey         string        `json:"class_key"`
	Level            int           `json:"level"`
	Experience       int           `json:"experience"`
	Abilities        AbilityScores `json:"abilities"`
	HitDie           int           `json:"hit_die"`
	HitPoints        int           `json:"hit_points"`
	MaxHitPoints     int           `json:"max_hit_points"`
	ArmorClass       int           `json:"armor_class"`
	ProficiencyBonus int           `json:"proficiency_bonus"`
	Features         []string      `json:"features,omitempty"`
	Spells           []string      `json:"spells,omitempty"`
}

// NewInput describes a character to build
type NewInput struct {
	ID         string
	Name       string
	ClassKey   string
	HitDie     int
	Level      int // defaults to 1
	Experience int
	Abilities  AbilityScores
	Features   []string
	Spells     []string
}

// New builds a character at full health with derived AC, HP and proficiency
func New(input *NewInput) (*Character, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, dnderr.InvalidArgument("name is required")
	}
	if input.HitDie < 2 {
		return nil, dnderr.InvalidArgumentf("hit die must be at least 2, got %d", input.HitDie)
	}
	if input.Experience < 0 {
		return nil, dnderr.InvalidArgumentf("experience cannot be negative, got %d", input.Experience)
	}

	level := input.Level
	if level == 0 {
		level = 1
	}
	if level < 1 {
		return nil, dnderr.InvalidArgumentf("level must be at least 1, got %d", level)
	}

	c := &Character{
		ID:         input.ID,
		Name:       input.Name,
		ClassKey:   input.ClassKey,
		Level:      level,
		Experience: input.Experience,
		Abilities:  input.Abilities,
		HitDie:     input.HitDie,
	}
	c.MaxHitPoints = DeriveHitPoints(c.HitDie, c.Abilities.ConstitutionModifier(), c.Level)
	c.HitPoints = c.MaxHitPoints
	c.ArmorClass = DeriveArmorClass(c)
	c.ProficiencyBonus = ProficiencyBonus(c.Level)
	c.UnlockFeatures(input.Features...)
	c.UnlockSpells(input.Spells...)

	return c, nil
}

// Clone returns a deep copy
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Features = slices.Clone(c.Features)
	clone.Spells = slices.Clone(c.Spells)
	return &clone
}

// Validate checks the record invariants
func (c *Character) Validate() error {
	if c == nil {
		return dnderr.InvalidArgument("character is required")
	}
	if c.Level < 1 {
		return dnderr.InvalidArgumentf("level must be at least 1, got %d", c.Level)
	}
	if c.Experience < 0 {
		return dnderr.InvalidArgumentf("experience cannot be negative, got %d", c.Experience)
	}
	if c.HitDie < 2 {
		return dnderr.InvalidArgumentf("hit die must be at least 2, got %d", c.HitDie)
	}
	if c.HitPoints < 0 || c.HitPoints > c.MaxHitPoints {
		return dnderr.InvalidArgumentf("hit points %d outside [0, %d]", c.HitPoints, c.MaxHitPoints)
	}
	if c.ProficiencyBonus != ProficiencyBonus(c.Level) {
		return dnderr.InvalidArgumentf("proficiency bonus %d does not match level %d", c.ProficiencyBonus, c.Level)
	}
	return nil
}

// AttackModifier is the ability modifier plus proficiency bonus
func (c *Character) AttackModifier(attr shared.Attribute) int {
	return c.Abilities.Modifier(attr) + c.ProficiencyBonus
}

// IsAlive returns true if the character has more than 0 HP
func (c *Character) IsAlive() bool {
	return c.HitPoints > 0
}

func (c *Character) HasFeature(key string) bool {
	return slices.Contains(c.Features, key)
}

func (c *Character) HasSpell(key string) bool {
	return slices.Contains(c.Spells, key)
}

// UnlockFeatures adds features not already present and returns the ones added
func (c *Character) UnlockFeatures(keys ...string) []string {
	var added []string
	c.Features, added = union(c.Features, keys)
	return added
}

// UnlockSpells adds spells not already present and returns the ones added
func (c *Character) UnlockSpells(keys ...string) []string {
	var added []string
	c.Spells, added = union(c.Spells, keys)
	return added
}

func union(have, keys []string) (merged, added []string) {
	merged = have
	for _, k := range keys {
		if k == "" || slices.Contains(merged, k) {
			continue
		}
		merged = append(merged, k)
		added = append(added, k)
	}
	return merged, added
}
