// Package narration renders engine results as text for a chat surface
package narration

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
)

// Line renders a log entry as one sentence
func Line(entry *combat.LogEntry) string {
	if entry == nil {
		return ""
	}

	switch entry.Kind {
	case combat.LogKindInitiative:
		return fmt.Sprintf("%s rolls initiative: %s.", entry.ActorName, entry.Roll)

	case combat.LogKindAttack:
		return attackLine(entry)

	case combat.LogKindPass:
		return fmt.Sprintf("%s holds their action.", entry.ActorName)

	case combat.LogKindFlee:
		if entry.ActorName == "" {
			return "The party flees."
		}
		return fmt.Sprintf("%s calls the retreat and the party flees.", entry.ActorName)

	case combat.LogKindRoll:
		what := entry.Description
		if what == "" {
			what = "a check"
		}
		if entry.ActorName == "" {
			return fmt.Sprintf("Roll for %s: %s.", what, entry.Roll)
		}
		return fmt.Sprintf("%s rolls %s: %s.", entry.ActorName, what, entry.Roll)

	case combat.LogKindEnd:
		return OutcomeTitle(entry.Outcome)

	default:
		return entry.Description
	}
}

func attackLine(entry *combat.LogEntry) string {
	var b strings.Builder

	if entry.Critical {
		b.WriteString("Natural 20! ")
	} else if entry.Fumble {
		b.WriteString("Natural 1. ")
	}

	fmt.Fprintf(&b, "%s attacks %s", entry.ActorName, entry.TargetName)
	if entry.ActionName != "" {
		fmt.Fprintf(&b, " with %s", entry.ActionName)
	}
	fmt.Fprintf(&b, ": %s against AC %d", entry.Roll, entry.TargetArmorClass)

	if !entry.Hit {
		b.WriteString(", miss.")
		return b.String()
	}

	fmt.Fprintf(&b, ", hit! %s damage, %s has %d/%d HP.",
		entry.DamageRoll, entry.TargetName, entry.TargetHitPoints, entry.TargetMaxHitPoints)
	if entry.Defeated {
		fmt.Fprintf(&b, " %s is defeated.", entry.TargetName)
	}
	return b.String()
}

// OutcomeTitle names how an encounter finished
func OutcomeTitle(outcome combat.Outcome) string {
	switch outcome {
	case combat.OutcomeVictory:
		return "Victory!"
	case combat.OutcomeDefeat:
		return "Defeat."
	case combat.OutcomeFled:
		return "The party fled."
	default:
		return "The encounter continues."
	}
}

// LevelUpLine renders a level-up notification
func LevelUpLine(name string, levelUp *character.LevelUp) string {
	if levelUp == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s reaches level %d (+%d HP, proficiency +%d).",
		name, levelUp.NewLevel, levelUp.HitPointsGained, levelUp.ProficiencyBonus)
	if len(levelUp.NewFeatures) > 0 {
		fmt.Fprintf(&b, " New features: %s.", strings.Join(levelUp.NewFeatures, ", "))
	}
	if len(levelUp.NewSpells) > 0 {
		fmt.Fprintf(&b, " New spells: %s.", strings.Join(levelUp.NewSpells, ", "))
	}
	return b.String()
}

// Embed renders the latest entry with a roster of hit points, colored by outcome
func Embed(session *combat.Session, entry *combat.LogEntry) *discordgo.MessageEmbed {
	b := NewEmbed().
		Title(fmt.Sprintf("Round %d", session.Round)).
		Description(Line(entry)).
		Color(outcomeColor(session.Outcome)).
		Timestamp(session.UpdatedAt)

	for _, c := range session.Combatants {
		status := fmt.Sprintf("%d/%d HP, AC %d", c.HitPoints, c.MaxHitPoints, c.ArmorClass)
		if !c.IsAlive() {
			status = "defeated"
		}
		b.Field(c.Name, status, true)
	}

	if session.IsEnded() {
		b.Footer(OutcomeTitle(session.Outcome))
	} else if current := session.Current(); current != nil {
		b.Footer(fmt.Sprintf("%s to act", current.Name))
	}

	return b.Build()
}

// CharacterEmbed renders a character sheet summary
func CharacterEmbed(char *character.Character) *discordgo.MessageEmbed {
	b := NewEmbed().
		Title(char.Name).
		Description(fmt.Sprintf("Level %d %s", char.Level, char.ClassKey)).
		Color(ColorPrimary).
		Field("Ability Scores", char.Abilities.String(), false).
		Field("HP", fmt.Sprintf("%d/%d", char.HitPoints, char.MaxHitPoints), true).
		Field("AC", fmt.Sprintf("%d", char.ArmorClass), true).
		Field("XP", fmt.Sprintf("%d", char.Experience), true)

	if len(char.Features) > 0 {
		b.Field("Features", strings.Join(char.Features, ", "), false)
	}
	if len(char.Spells) > 0 {
		b.Field("Spells", strings.Join(char.Spells, ", "), false)
	}

	return b.Build()
}

func outcomeColor(outcome combat.Outcome) int {
	switch outcome {
	case combat.OutcomeVictory:
		return ColorVictory
	case combat.OutcomeDefeat:
		return ColorDefeat
	case combat.OutcomeFled:
		return ColorFled
	default:
		return ColorInfo
	}
}
