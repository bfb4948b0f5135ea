package events

import (
	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
)

// ExperienceAwardedEvent fires after every successful award, level-up or not
type ExperienceAwardedEvent struct {
	BaseEvent
	Character *character.Character
	Amount    int
}

// LeveledUpEvent carries the level-up notification
type LeveledUpEvent struct {
	BaseEvent
	Character *character.Character
	LevelUp   *character.LevelUp
}

// EncounterStartedEvent fires once initiative is rolled
type EncounterStartedEvent struct {
	BaseEvent
	Session *combat.Session
}

// ActionResolvedEvent fires for every log entry produced by an actor's action
type ActionResolvedEvent struct {
	BaseEvent
	Session *combat.Session
	Entry   *combat.LogEntry
}

// EncounterEndedEvent fires when a session reaches the ended state
type EncounterEndedEvent struct {
	BaseEvent
	Session *combat.Session
	Outcome combat.Outcome
}

func NewExperienceAwarded(c *character.Character, amount int) *ExperienceAwardedEvent {
	return &ExperienceAwardedEvent{BaseEvent: BaseEvent{Type: EventTypeExperienceAwarded}, Character: c, Amount: amount}
}

func NewLeveledUp(c *character.Character, levelUp *character.LevelUp) *LeveledUpEvent {
	return &LeveledUpEvent{BaseEvent: BaseEvent{Type: EventTypeLeveledUp}, Character: c, LevelUp: levelUp}
}

func NewEncounterStarted(s *combat.Session) *EncounterStartedEvent {
	return &EncounterStartedEvent{BaseEvent: BaseEvent{Type: EventTypeEncounterStarted}, Session: s}
}

func NewActionResolved(s *combat.Session, entry *combat.LogEntry) *ActionResolvedEvent {
	return &ActionResolvedEvent{BaseEvent: BaseEvent{Type: EventTypeActionResolved}, Session: s, Entry: entry}
}

func NewEncounterEnded(s *combat.Session) *EncounterEndedEvent {
	return &EncounterEndedEvent{BaseEvent: BaseEvent{Type: EventTypeEncounterEnded}, Session: s, Outcome: s.Outcome}
}
