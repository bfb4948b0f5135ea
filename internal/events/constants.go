package events

// Event type constants
const (
	// Progression events
	EventTypeExperienceAwarded EventType = "experience_awarded"
	EventTypeLeveledUp         EventType = "leveled_up"

	// Encounter events
	EventTypeEncounterStarted EventType = "encounter_started"
	EventTypeActionResolved   EventType = "action_resolved"
	EventTypeEncounterEnded   EventType = "encounter_ended"
)

// Priority levels for listener order
const (
	PriorityPersistence = 100 // Write-back to storage
	PriorityNarration   = 200 // Render to chat
	PriorityMetrics     = 300 // Counters, logging
)
