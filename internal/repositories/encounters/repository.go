package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
)

// Repository defines the interface for encounter storage operations
type Repository interface {
	// Create stores a new encounter
	Create(ctx context.Context, session *combat.Session) error

	// Get retrieves an encounter by ID
	Get(ctx context.Context, id string) (*combat.Session, error)

	// Update replaces an existing encounter
	Update(ctx context.Context, session *combat.Session) error

	// Delete removes an encounter
	Delete(ctx context.Context, id string) error
}
