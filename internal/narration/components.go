package narration

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

const (
	// CustomIDSeparator is the character used to separate parts
	CustomIDSeparator = ":"

	// MaxCustomIDLength is Discord's limit for custom IDs
	MaxCustomIDLength = 100

	customIDDomain = "encounter"
	verbAct        = "act"
	verbFlee       = "flee"

	maxButtonsPerRow = 5
	maxRows          = 5
)

// NoTarget marks an untargeted ActionChoice
const NoTarget = -1

// ActionChoice is what an encounter button submits. Combatants and actions are
// referenced by position so a custom ID stays short whatever the ids look like.
// Encoded as encounter:act:<encounter>:<turn>:<action>[:<target>] or encounter:flee:<encounter>.
type ActionChoice struct {
	EncounterID string
	Turn        int // index of the acting combatant in initiative order
	Action      int // index into the actor's actions
	Target      int // index of the target in initiative order, or NoTarget
	Flee        bool
}

// Selection is an ActionChoice mapped back onto a session's ids
type Selection struct {
	ActorID  string
	ActionID string
	TargetID string
	Flee     bool
}

// CustomID encodes the choice for a Discord component
func (c *ActionChoice) CustomID() (string, error) {
	if c.EncounterID == "" || strings.Contains(c.EncounterID, CustomIDSeparator) {
		return "", dnderr.InvalidArgumentf("encounter ID %q is empty or contains %q", c.EncounterID, CustomIDSeparator)
	}

	parts := []string{customIDDomain, verbFlee, c.EncounterID}
	if !c.Flee {
		if c.Turn < 0 || c.Action < 0 || c.Target < NoTarget {
			return "", dnderr.InvalidArgumentf("negative index in choice %d/%d/%d", c.Turn, c.Action, c.Target)
		}
		parts = []string{customIDDomain, verbAct, c.EncounterID, strconv.Itoa(c.Turn), strconv.Itoa(c.Action)}
		if c.Target != NoTarget {
			parts = append(parts, strconv.Itoa(c.Target))
		}
	}

	result := strings.Join(parts, CustomIDSeparator)
	if len(result) > MaxCustomIDLength {
		return "", dnderr.InvalidArgumentf("custom ID exceeds maximum length of %d characters", MaxCustomIDLength)
	}
	return result, nil
}

// ParseActionChoice decodes a custom ID produced by ActionChoice.CustomID
func ParseActionChoice(customID string) (*ActionChoice, error) {
	parts := strings.Split(customID, CustomIDSeparator)
	if len(parts) < 3 || parts[0] != customIDDomain || parts[2] == "" {
		return nil, dnderr.InvalidArgumentf("not an encounter custom ID: %q", customID)
	}

	switch parts[1] {
	case verbFlee:
		if len(parts) != 3 {
			return nil, dnderr.InvalidArgumentf("invalid flee custom ID: %q", customID)
		}
		return &ActionChoice{EncounterID: parts[2], Target: NoTarget, Flee: true}, nil
	case verbAct:
		if len(parts) != 5 && len(parts) != 6 {
			return nil, dnderr.InvalidArgumentf("invalid action custom ID: %q", customID)
		}
		indexes := []int{0, 0, NoTarget}
		for i, part := range parts[3:] {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 {
				return nil, dnderr.InvalidArgumentf("invalid index %q in custom ID %q", part, customID)
			}
			indexes[i] = n
		}
		return &ActionChoice{
			EncounterID: parts[2],
			Turn:        indexes[0],
			Action:      indexes[1],
			Target:      indexes[2],
		}, nil
	default:
		return nil, dnderr.InvalidArgumentf("unknown encounter verb %q", parts[1])
	}
}

// Resolve maps the choice onto session ids. A button pressed after the turn
// moved on is rejected as not the actor's turn.
func (c *ActionChoice) Resolve(session *combat.Session) (*Selection, error) {
	if session == nil || session.ID != c.EncounterID {
		return nil, dnderr.InvalidArgumentf("choice is for encounter %s", c.EncounterID)
	}
	if session.IsEnded() {
		return nil, dnderr.EncounterEndedf("encounter %s has ended", session.ID).
			WithMeta("encounter_id", session.ID)
	}
	if c.Flee {
		return &Selection{Flee: true}, nil
	}

	actor := session.Current()
	if actor == nil || c.Turn != session.Turn {
		return nil, dnderr.NotYourTurnf("choice was made on turn %d, the encounter is on turn %d", c.Turn, session.Turn).
			WithMeta("encounter_id", session.ID)
	}
	if c.Action >= len(actor.Actions) {
		return nil, dnderr.InvalidArgumentf("%s has no action %d", actor.ID, c.Action)
	}

	selection := &Selection{ActorID: actor.ID, ActionID: actor.Actions[c.Action].ID}
	if c.Target != NoTarget {
		if c.Target >= len(session.Combatants) {
			return nil, dnderr.InvalidArgumentf("encounter has no combatant %d", c.Target)
		}
		selection.TargetID = session.Combatants[c.Target].ID
	}
	return selection, nil
}

// componentBuilder packs buttons into rows of at most five
type componentBuilder struct {
	rows       []discordgo.MessageComponent
	currentRow []discordgo.MessageComponent
}

func (b *componentBuilder) button(label string, style discordgo.ButtonStyle, choice *ActionChoice) error {
	customID, err := choice.CustomID()
	if err != nil {
		return err
	}
	if len(b.currentRow) == maxButtonsPerRow {
		b.newRow()
	}
	b.currentRow = append(b.currentRow, discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: customID,
	})
	return nil
}

func (b *componentBuilder) newRow() {
	if len(b.currentRow) == 0 {
		return
	}
	b.rows = append(b.rows, discordgo.ActionsRow{Components: b.currentRow})
	b.currentRow = nil
}

func (b *componentBuilder) build() []discordgo.MessageComponent {
	b.newRow()
	if len(b.rows) > maxRows {
		return b.rows[:maxRows]
	}
	return b.rows
}

// ActionButtons offers the current combatant one button per attack and living target,
// then its other actions, then a flee button for player turns. Ended sessions get none.
func ActionButtons(session *combat.Session) ([]discordgo.MessageComponent, error) {
	if session == nil || session.IsEnded() || session.Current() == nil {
		return nil, nil
	}
	actor := session.Current()
	b := &componentBuilder{}

	for a, action := range actor.Actions {
		if action.Kind != combat.ActionKindAttack {
			continue
		}
		for t, target := range session.Combatants {
			if !target.IsAlive() || target.Side != actor.Side.Opposing() {
				continue
			}
			label := fmt.Sprintf("%s → %s", displayName(action.Name, action.ID), target.Name)
			if err := b.button(label, discordgo.DangerButton, &ActionChoice{
				EncounterID: session.ID,
				Turn:        session.Turn,
				Action:      a,
				Target:      t,
			}); err != nil {
				return nil, err
			}
		}
	}
	b.newRow()

	for a, action := range actor.Actions {
		if action.Kind == combat.ActionKindAttack {
			continue
		}
		if err := b.button(displayName(action.Name, action.ID), discordgo.SecondaryButton, &ActionChoice{
			EncounterID: session.ID,
			Turn:        session.Turn,
			Action:      a,
			Target:      NoTarget,
		}); err != nil {
			return nil, err
		}
	}

	if actor.Side == shared.SidePlayer {
		if err := b.button("Flee", discordgo.SecondaryButton, &ActionChoice{EncounterID: session.ID, Target: NoTarget, Flee: true}); err != nil {
			return nil, err
		}
	}

	return b.build(), nil
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// Message renders an entry as a chat message: the embed plus buttons for whoever acts next
func Message(session *combat.Session, entry *combat.LogEntry) (*discordgo.MessageSend, error) {
	components, err := ActionButtons(session)
	if err != nil {
		return nil, err
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{Embed(session, entry)},
		Components: components,
	}, nil
}
