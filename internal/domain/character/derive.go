package character

// AbilityModifier returns floor((score-10)/2)
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// DeriveArmorClass is the unarmored AC: 10 + dexterity modifier.
// Equipment bonuses are applied by the caller.
func DeriveArmorClass(c *Character) int {
	if c == nil {
		return 10
	}
	return 10 + c.Abilities.DexterityModifier()
}

// ProficiencyBonus returns ceil(level/4) + 1
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return (level+3)/4 + 1
}

// HitPointGain is the average-roll gain for one level after the first:
// ceil(hitDie/2) + con modifier, never below 1.
func HitPointGain(hitDie, conMod int) int {
	return max(1, (hitDie+1)/2+conMod)
}

// DeriveHitPoints returns max hit points at level. The first level grants the full
// hit die plus con modifier; each later level adds HitPointGain. Every level grants at least 1.
func DeriveHitPoints(hitDie, conMod, level int) int {
	if level < 1 {
		return 0
	}

	hp := max(1, hitDie+conMod)
	for l := 2; l <= level; l++ {
		hp += HitPointGain(hitDie, conMod)
	}
	return hp
}
