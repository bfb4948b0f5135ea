package rulebook

import (
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// ExperienceTable maps level to minimum experience. Index 0 is level 1.
type ExperienceTable []int

// DefaultExperienceTable is the standard 5e table for levels 1-20
var DefaultExperienceTable = ExperienceTable{
	0, 300, 900, 2700, 6500, 14000, 23000, 34000, 48000, 64000,
	85000, 100000, 120000, 140000, 165000, 195000, 225000, 265000, 305000, 355000,
}

// MaxLevel is the highest level the table reaches
func (t ExperienceTable) MaxLevel() int {
	return len(t)
}

// LevelForExperience returns the highest level whose threshold is <= xp
func (t ExperienceTable) LevelForExperience(xp int) int {
	level := 1
	for i, threshold := range t {
		if threshold > xp {
			break
		}
		level = i + 1
	}
	return level
}

// CheckLevel returns InvalidArgument unless level is the one the table assigns to xp
func (t ExperienceTable) CheckLevel(level, xp int) error {
	if want := t.LevelForExperience(xp); level != want {
		return dnderr.InvalidArgumentf("level %d does not match %d experience, which is level %d", level, xp, want).
			WithMeta("level", level).
			WithMeta("experience", xp)
	}
	return nil
}

// ThresholdFor returns the experience needed to reach level
func (t ExperienceTable) ThresholdFor(level int) (int, bool) {
	if level < 1 || level > len(t) {
		return 0, false
	}
	return t[level-1], true
}

// NextThreshold returns the experience needed for the level after level.
// ok is false at the top of the table.
func (t ExperienceTable) NextThreshold(level int) (int, bool) {
	return t.ThresholdFor(level + 1)
}

// Validate checks the table starts at 0 and strictly increases
func (t ExperienceTable) Validate() bool {
	if len(t) == 0 || t[0] != 0 {
		return false
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return false
		}
	}
	return true
}
