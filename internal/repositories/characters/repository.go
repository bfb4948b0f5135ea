package characters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcharrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
)

// Repository defines the interface for character storage operations
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, char *character.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*character.Character, error)

	// Update replaces an existing character
	Update(ctx context.Context, char *character.Character) error

	// Delete removes a character
	Delete(ctx context.Context, id string) error

	// List returns every stored character ordered by ID
	List(ctx context.Context) ([]*character.Character, error)
}
