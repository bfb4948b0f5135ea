package combat

import (
	"slices"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
)

// ActionKind is what an action does when resolved
type ActionKind string

const (
	ActionKindAttack ActionKind = "attack"
	ActionKindPass   ActionKind = "pass"
)

// Action is one thing a combatant can do on its turn
type Action struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        ActionKind      `json:"kind"`
	AttackBonus int             `json:"attack_bonus,omitempty"` // on top of the combatant's attack modifier
	Damage      dice.Expression `json:"damage,omitempty"`
}

// Combatant is the runtime projection of a character or monster inside one encounter
type Combatant struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Side              shared.Side `json:"side"`
	HitPoints         int         `json:"hit_points"`
	MaxHitPoints      int         `json:"max_hit_points"`
	ArmorClass        int         `json:"armor_class"`
	DexterityModifier int         `json:"dexterity_modifier"`
	AttackModifier    int         `json:"attack_modifier"`
	Initiative        int         `json:"initiative"`
	Actions           []*Action   `json:"actions"`
	CharacterID       string      `json:"character_id,omitempty"`
}

// IsAlive returns true if the combatant has more than 0 HP
func (c *Combatant) IsAlive() bool {
	return c.HitPoints > 0
}

// IsHostileTo reports whether other fights for the opposing side
func (c *Combatant) IsHostileTo(other *Combatant) bool {
	return other != nil && c.Side != other.Side
}

// Action looks up an action by id
func (c *Combatant) Action(id string) (*Action, bool) {
	for _, a := range c.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// FirstAction returns the first action of a kind
func (c *Combatant) FirstAction(kind ActionKind) (*Action, bool) {
	for _, a := range c.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return nil, false
}

// ApplyDamage subtracts damage floored at 0 and returns the HP actually lost
func (c *Combatant) ApplyDamage(damage int) int {
	if damage <= 0 {
		return 0
	}
	before := c.HitPoints
	c.HitPoints -= damage
	if c.HitPoints < 0 {
		c.HitPoints = 0
	}
	return before - c.HitPoints
}

// Clone returns a deep copy
func (c *Combatant) Clone() *Combatant {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Actions = make([]*Action, len(c.Actions))
	for i, a := range c.Actions {
		ac := *a
		clone.Actions[i] = &ac
	}
	return &clone
}

// HasAction reports whether the combatant knows the action id
func (c *Combatant) HasAction(id string) bool {
	return slices.ContainsFunc(c.Actions, func(a *Action) bool { return a.ID == id })
}
