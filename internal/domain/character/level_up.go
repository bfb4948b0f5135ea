package character

// LevelUp is the notification raised when an experience award crosses one or more thresholds
type LevelUp struct {
	CharacterID      string   `json:"character_id"`
	OldLevel         int      `json:"old_level"`
	NewLevel         int      `json:"new_level"`
	HitPointsGained  int      `json:"hit_points_gained"`
	ProficiencyBonus int      `json:"proficiency_bonus"`
	NewFeatures      []string `json:"new_features,omitempty"`
	NewSpells        []string `json:"new_spells,omitempty"`
}

// LevelsGained returns how many levels the award granted
func (l *LevelUp) LevelsGained() int {
	if l == nil {
		return 0
	}
	return l.NewLevel - l.OldLevel
}
