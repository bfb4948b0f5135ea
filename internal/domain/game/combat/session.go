package combat

import (
	"time"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
)

// State is the resolver state machine
type State string

const (
	StateNotStarted     State = "not_started"
	StateAwaitingAction State = "awaiting_action"
	StateResolving      State = "resolving"
	StateEnded          State = "ended"
)

// Outcome is how an ended session finished
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
)

// Session is one encounter. Combatants are kept in initiative order and
// Turn indexes the combatant who acts next.
type Session struct {
	ID         string       `json:"id"`
	State      State        `json:"state"`
	Outcome    Outcome      `json:"outcome,omitempty"`
	Combatants []*Combatant `json:"combatants"`
	Turn       int          `json:"turn"`
	Round      int          `json:"round"`
	Log        []*LogEntry  `json:"log"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Clone returns a deep copy. Log entries are shared; they are never mutated once appended.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Combatants = make([]*Combatant, len(s.Combatants))
	for i, c := range s.Combatants {
		clone.Combatants[i] = c.Clone()
	}
	clone.Log = append([]*LogEntry(nil), s.Log...)
	return &clone
}

// IsEnded returns true once an outcome is decided
func (s *Session) IsEnded() bool {
	return s.State == StateEnded
}

// Current returns the combatant whose turn it is
func (s *Session) Current() *Combatant {
	if s.State != StateAwaitingAction || s.Turn < 0 || s.Turn >= len(s.Combatants) {
		return nil
	}
	return s.Combatants[s.Turn]
}

// Combatant looks up a combatant by id
func (s *Session) Combatant(id string) *Combatant {
	for _, c := range s.Combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Living returns the living combatants of a side in initiative order
func (s *Session) Living(side shared.Side) []*Combatant {
	var out []*Combatant
	for _, c := range s.Combatants {
		if c.Side == side && c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// CheckEnd evaluates the terminal condition. When both sides are down the
// side with a survivor wins; with no survivors at all the result is a defeat.
func (s *Session) CheckEnd() (bool, Outcome) {
	players := len(s.Living(shared.SidePlayer))
	opponents := len(s.Living(shared.SideOpponent))

	switch {
	case opponents == 0 && players > 0:
		return true, OutcomeVictory
	case players == 0:
		return true, OutcomeDefeat
	default:
		return false, OutcomeNone
	}
}

// End concludes the session
func (s *Session) End(outcome Outcome) {
	s.State = StateEnded
	s.Outcome = outcome
}

// AdvanceTurn moves Turn to the next living combatant, circularly.
// Wrapping past the end of the order starts a new round.
func (s *Session) AdvanceTurn() {
	n := len(s.Combatants)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		s.Turn++
		if s.Turn >= n {
			s.Turn = 0
			s.Round++
		}
		if s.Combatants[s.Turn].IsAlive() {
			return
		}
	}
}

// SkipToLiving moves Turn forward from its current position to the first living
// combatant without counting a new round. Used when a session starts.
func (s *Session) SkipToLiving() {
	for s.Turn < len(s.Combatants) && !s.Combatants[s.Turn].IsAlive() {
		s.Turn++
	}
	if s.Turn >= len(s.Combatants) {
		s.Turn = 0
	}
}

// AppendLog stamps the entry with sequence and round and appends it
func (s *Session) AppendLog(entry *LogEntry) *LogEntry {
	entry.Sequence = len(s.Log) + 1
	entry.Round = s.Round
	s.Log = append(s.Log, entry)
	return entry
}
