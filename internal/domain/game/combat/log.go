package combat

import (
	"github.com/KirkDiggler/tabletop-engine/internal/dice"
)

// LogKind identifies what a log entry records
type LogKind string

const (
	LogKindInitiative LogKind = "initiative"
	LogKindAttack     LogKind = "attack"
	LogKindPass       LogKind = "pass"
	LogKindFlee       LogKind = "flee"
	LogKindRoll       LogKind = "roll"
	LogKindEnd        LogKind = "end"
)

// LogEntry is one resolved step. Entries are append-only; the narration
// layer renders them, the engine never formats text.
type LogEntry struct {
	Sequence int     `json:"sequence"`
	Round    int     `json:"round"`
	Kind     LogKind `json:"kind"`

	ActorID    string `json:"actor_id,omitempty"`
	ActorName  string `json:"actor_name,omitempty"`
	TargetID   string `json:"target_id,omitempty"`
	TargetName string `json:"target_name,omitempty"`
	ActionID   string `json:"action_id,omitempty"`
	ActionName string `json:"action_name,omitempty"`

	// Initiative, attack and free-form rolls
	Roll *dice.RollResult `json:"roll,omitempty"`

	// Attack resolution
	TargetArmorClass   int              `json:"target_armor_class,omitempty"`
	Hit                bool             `json:"hit,omitempty"`
	Critical           bool             `json:"critical,omitempty"`
	Fumble             bool             `json:"fumble,omitempty"`
	DamageRoll         *dice.RollResult `json:"damage_roll,omitempty"`
	Damage             int              `json:"damage,omitempty"`
	TargetHitPoints    int              `json:"target_hit_points,omitempty"`
	TargetMaxHitPoints int              `json:"target_max_hit_points,omitempty"`
	Defeated           bool             `json:"defeated,omitempty"`

	Description string  `json:"description,omitempty"`
	Outcome     Outcome `json:"outcome,omitempty"`
}
