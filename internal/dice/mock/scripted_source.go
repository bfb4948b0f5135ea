package mockdice

import (
	"fmt"
	"sync"
)

// ScriptedSource implements dice.Source for testing with predetermined results
type ScriptedSource struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewScriptedSource creates a source that returns rolls in order
func NewScriptedSource(rolls ...int) *ScriptedSource {
	return &ScriptedSource{
		rolls: append([]int{}, rolls...),
	}
}

// SetRolls replaces the queued results
func (m *ScriptedSource) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append([]int{}, rolls...)
	m.rollIndex = 0
}

// Remaining returns how many queued rolls have not been consumed
func (m *ScriptedSource) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

// Roll implements dice.Source.Roll
func (m *ScriptedSource) Roll(size int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	if roll < 1 || roll > size {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, size)
	}
	m.rollIndex++
	return roll, nil
}
