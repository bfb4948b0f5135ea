package narration

import (
	"github.com/KirkDiggler/tabletop-engine/internal/events"
)

// Subscribe renders action and level-up events through emit as they happen
func Subscribe(bus *events.Bus, emit func(line string)) {
	bus.Subscribe(events.EventTypeActionResolved, &events.ListenerFunc{
		Name:  "narration-actions",
		Order: events.PriorityNarration,
		Fn: func(e events.Event) error {
			if resolved, ok := e.(*events.ActionResolvedEvent); ok {
				emit(Line(resolved.Entry))
			}
			return nil
		},
	})
	bus.Subscribe(events.EventTypeEncounterEnded, &events.ListenerFunc{
		Name:  "narration-outcome",
		Order: events.PriorityNarration,
		Fn: func(e events.Event) error {
			if ended, ok := e.(*events.EncounterEndedEvent); ok {
				emit(OutcomeTitle(ended.Outcome))
			}
			return nil
		},
	})
	bus.Subscribe(events.EventTypeLeveledUp, &events.ListenerFunc{
		Name:  "narration-level-up",
		Order: events.PriorityNarration,
		Fn: func(e events.Event) error {
			if leveled, ok := e.(*events.LeveledUpEvent); ok {
				emit(LevelUpLine(leveled.Character.Name, leveled.LevelUp))
			}
			return nil
		},
	})
}
