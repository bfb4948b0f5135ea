package dice

//go:generate mockgen -destination=mock/mock_source.go -package=mockdice -source=source.go

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// Source is the randomness capability every roll draws from.
// It matches the single-die half of the rpg-toolkit roller, so toolkit rollers plug in directly.
type Source interface {
	// Roll returns a uniform value in [1, size]
	Roll(size int) (int, error)
}

// seededSource replays the same sequence for the same seed
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a deterministic source
func NewSeededSource(seed int64) Source {
	return &seededSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Source.Roll
func (s *seededSource) Roll(size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(size) + 1, nil
}

// NewCryptoSource returns the rpg-toolkit default roller, backed by crypto/rand
func NewCryptoSource() Source {
	return toolkitdice.DefaultRoller
}

// NewSeed generates a random seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
