package encounters

import (
	"context"
	"sync"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

type inMemoryRepository struct {
	mu         sync.RWMutex
	encounters map[string]*combat.Session
}

// NewInMemoryRepository creates a new in-memory encounter repository.
// Sessions are cloned on the way in and out so callers never share state with the store.
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		encounters: make(map[string]*combat.Session),
	}
}

// Create stores a new encounter
func (r *inMemoryRepository) Create(_ context.Context, session *combat.Session) error {
	if session == nil || session.ID == "" {
		return dnderr.InvalidArgument("encounter ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[session.ID]; exists {
		return dnderr.AlreadyExistsf("encounter with ID '%s' already exists", session.ID).
			WithMeta("encounter_id", session.ID)
	}

	r.encounters[session.ID] = session.Clone()
	return nil
}

// Get retrieves an encounter by ID
func (r *inMemoryRepository) Get(_ context.Context, id string) (*combat.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.encounters[id]
	if !exists {
		return nil, dnderr.NotFoundf("encounter with ID '%s' not found", id).
			WithMeta("encounter_id", id)
	}

	return session.Clone(), nil
}

// Update replaces an existing encounter
func (r *inMemoryRepository) Update(_ context.Context, session *combat.Session) error {
	if session == nil || session.ID == "" {
		return dnderr.InvalidArgument("encounter ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[session.ID]; !exists {
		return dnderr.NotFoundf("encounter with ID '%s' not found", session.ID).
			WithMeta("encounter_id", session.ID)
	}

	r.encounters[session.ID] = session.Clone()
	return nil
}

// Delete removes an encounter
func (r *inMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[id]; !exists {
		return dnderr.NotFoundf("encounter with ID '%s' not found", id).
			WithMeta("encounter_id", id)
	}

	delete(r.encounters, id)
	return nil
}
