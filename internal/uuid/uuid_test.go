package uuid_test

import (
	"sync"
	"testing"

	"github.com/KirkDiggler/tabletop-engine/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	a, b := gen.New(), gen.New()
	assert.True(t, uuid.IsValid(a))
	assert.NotEqual(t, a, b)
	assert.False(t, uuid.IsValid("not-a-uuid"))
}

func TestSequenceGenerator(t *testing.T) {
	gen := uuid.NewSequenceGenerator("enc")
	assert.Equal(t, "enc-1", gen.New())
	assert.Equal(t, "enc-2", gen.New())
}

func TestSequenceGenerator_Concurrent(t *testing.T) {
	gen := uuid.NewSequenceGenerator("c")

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.New()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}
