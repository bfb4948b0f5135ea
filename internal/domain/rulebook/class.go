package rulebook

import (
	"slices"
)

// Class carries what progression needs from a character class: its hit die
// and the features and spells unlocked at each level.
type Class struct {
	Key      string           `json:"key" yaml:"key"`
	Name     string           `json:"name" yaml:"name"`
	HitDie   int              `json:"hit_die" yaml:"hit_die"`
	Features map[int][]string `json:"features,omitempty" yaml:"features,omitempty"`
	Spells   map[int][]string `json:"spells,omitempty" yaml:"spells,omitempty"`
}

// UnlocksThrough returns every feature and spell gated at or below level
func (c *Class) UnlocksThrough(level int) (features, spells []string) {
	return c.UnlocksBetween(0, level)
}

// UnlocksBetween returns unlocks gated in (fromLevel, toLevel], lowest level first
func (c *Class) UnlocksBetween(fromLevel, toLevel int) (features, spells []string) {
	if c == nil {
		return nil, nil
	}
	return collect(c.Features, fromLevel, toLevel), collect(c.Spells, fromLevel, toLevel)
}

func collect(byLevel map[int][]string, from, to int) []string {
	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		if level > from && level <= to {
			levels = append(levels, level)
		}
	}
	slices.Sort(levels)

	var out []string
	for _, level := range levels {
		for _, key := range byLevel[level] {
			if !slices.Contains(out, key) {
				out = append(out, key)
			}
		}
	}
	return out
}
