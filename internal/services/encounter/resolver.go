package encounter

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// ActionRequest names the action to take and, for attacks, its target.
// An empty ActionID means the actor's first attack; an empty TargetID means
// the first living opponent in initiative order.
type ActionRequest struct {
	ActionID string `json:"action_id"`
	TargetID string `json:"target_id"`
}

// Resolver runs the combat state machine. It holds no session state: every
// operation takes a session and returns a new one, leaving the input untouched,
// so a failed call never changes what the caller holds.
type Resolver struct {
	logger *zap.Logger
}

// ResolverConfig holds configuration for the resolver
type ResolverConfig struct {
	Logger *zap.Logger
}

// NewResolver creates a resolver
func NewResolver(cfg *ResolverConfig) *Resolver {
	r := &Resolver{logger: zap.NewNop()}
	if cfg != nil && cfg.Logger != nil {
		r.logger = cfg.Logger
	}
	return r
}

// Start rolls initiative (1d20 + dexterity modifier) for every combatant and
// orders them by initiative, then dexterity modifier, then insertion order.
func (r *Resolver) Start(sessionID string, combatants []*combat.Combatant, src dice.Source) (*combat.Session, error) {
	if err := validateRoster(combatants); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, dnderr.InvalidArgument("dice source is required")
	}

	session := &combat.Session{
		ID:         sessionID,
		State:      combat.StateNotStarted,
		Combatants: make([]*combat.Combatant, len(combatants)),
		Round:      1,
	}

	for i, c := range combatants {
		clone := c.Clone()
		roll, err := dice.Roll(dice.Expression{Count: 1, Sides: 20, Modifier: clone.DexterityModifier}, src)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to roll initiative for %s", clone.ID)
		}
		clone.Initiative = roll.Total
		session.Combatants[i] = clone

		session.AppendLog(&combat.LogEntry{
			Kind:      combat.LogKindInitiative,
			ActorID:   clone.ID,
			ActorName: clone.Name,
			Roll:      roll,
		})
	}

	sort.SliceStable(session.Combatants, func(i, j int) bool {
		a, b := session.Combatants[i], session.Combatants[j]
		if a.Initiative != b.Initiative {
			return a.Initiative > b.Initiative
		}
		return a.DexterityModifier > b.DexterityModifier
	})

	session.State = combat.StateAwaitingAction
	session.Turn = 0
	session.SkipToLiving()

	if ended, outcome := session.CheckEnd(); ended {
		r.end(session, outcome)
	}

	r.logger.Debug("encounter started",
		zap.String("encounter_id", session.ID),
		zap.Int("combatants", len(session.Combatants)),
		zap.String("state", string(session.State)))

	return session, nil
}

// ResolveAction resolves one action for the combatant whose turn it is and returns
// the next session with the log entry describing what happened.
func (r *Resolver) ResolveAction(session *combat.Session, actorID string, req ActionRequest, src dice.Source) (*combat.Session, *combat.LogEntry, error) {
	if session == nil {
		return nil, nil, dnderr.InvalidArgument("session is required")
	}
	if session.IsEnded() {
		return nil, nil, dnderr.EncounterEndedf("encounter %s has ended (%s)", session.ID, session.Outcome).
			WithMeta("encounter_id", session.ID)
	}
	if session.State != combat.StateAwaitingAction {
		return nil, nil, dnderr.InvalidArgumentf("encounter %s is %s, not awaiting an action", session.ID, session.State)
	}

	current := session.Current()
	if current == nil || current.ID != actorID {
		expected := ""
		if current != nil {
			expected = current.ID
		}
		return nil, nil, dnderr.NotYourTurnf("it is not %s's turn", actorID).
			WithMeta("actor_id", actorID).
			WithMeta("expected_actor_id", expected)
	}

	action, err := pickAction(current, req.ActionID)
	if err != nil {
		return nil, nil, err
	}

	next := session.Clone()
	next.State = combat.StateResolving
	actor := next.Combatant(actorID)

	var entry *combat.LogEntry
	switch action.Kind {
	case combat.ActionKindPass:
		entry = &combat.LogEntry{
			Kind:       combat.LogKindPass,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			ActionID:   action.ID,
			ActionName: action.Name,
		}
	case combat.ActionKindAttack:
		target, err := pickTarget(next, actor, req.TargetID)
		if err != nil {
			return nil, nil, err
		}
		if src == nil {
			return nil, nil, dnderr.InvalidArgument("dice source is required")
		}
		entry, err = r.attack(actor, target, action, src)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, dnderr.InvalidArgumentf("action %s has unsupported kind %q", action.ID, action.Kind)
	}

	next.AppendLog(entry)

	if ended, outcome := next.CheckEnd(); ended {
		r.end(next, outcome)
	} else {
		next.State = combat.StateAwaitingAction
		next.AdvanceTurn()
	}

	r.logger.Debug("action resolved",
		zap.String("encounter_id", next.ID),
		zap.String("actor_id", entry.ActorID),
		zap.String("target_id", entry.TargetID),
		zap.String("kind", string(entry.Kind)),
		zap.Int("attack_total", rollTotal(entry.Roll)),
		zap.Bool("hit", entry.Hit),
		zap.Int("damage", entry.Damage))

	return next, entry, nil
}

// Flee ends an encounter that is awaiting an action, regardless of hit points
func (r *Resolver) Flee(session *combat.Session) (*combat.Session, *combat.LogEntry, error) {
	if session == nil {
		return nil, nil, dnderr.InvalidArgument("session is required")
	}
	if session.IsEnded() {
		return nil, nil, dnderr.EncounterEndedf("encounter %s has ended (%s)", session.ID, session.Outcome).
			WithMeta("encounter_id", session.ID)
	}
	if session.State != combat.StateAwaitingAction {
		return nil, nil, dnderr.InvalidArgumentf("encounter %s is %s, not awaiting an action", session.ID, session.State)
	}

	next := session.Clone()
	entry := &combat.LogEntry{Kind: combat.LogKindFlee}
	if current := next.Current(); current != nil {
		entry.ActorID = current.ID
		entry.ActorName = current.Name
	}
	next.AppendLog(entry)
	r.end(next, combat.OutcomeFled)

	r.logger.Debug("encounter fled", zap.String("encounter_id", next.ID))

	return next, entry, nil
}

// ResolveTag rolls a narrator-requested check, with advantage or disadvantage when the
// tag asks for it, and records it without touching the turn order.
// actorID may be empty for rolls that belong to no combatant.
func (r *Resolver) ResolveTag(session *combat.Session, actorID string, tag dice.ActionTag, src dice.Source) (*combat.Session, *combat.LogEntry, error) {
	if session == nil {
		return nil, nil, dnderr.InvalidArgument("session is required")
	}
	if session.IsEnded() {
		return nil, nil, dnderr.EncounterEndedf("encounter %s has ended (%s)", session.ID, session.Outcome)
	}
	if src == nil {
		return nil, nil, dnderr.InvalidArgument("dice source is required")
	}

	entry := &combat.LogEntry{
		Kind:        combat.LogKindRoll,
		Description: tag.Description,
	}
	if actorID != "" {
		actor := session.Combatant(actorID)
		if actor == nil {
			return nil, nil, dnderr.NotFoundf("combatant %s not found in encounter %s", actorID, session.ID)
		}
		entry.ActorID = actor.ID
		entry.ActorName = actor.Name
	}

	roll, err := dice.RollWithMode(tag.Expression, tag.Mode, src)
	if err != nil {
		return nil, nil, err
	}
	entry.Roll = roll
	entry.Critical = roll.IsCritical()
	entry.Fumble = roll.IsFumble()

	next := session.Clone()
	next.AppendLog(entry)
	return next, entry, nil
}

// attack rolls 1d20 + attack modifier + action bonus against the target's AC.
// A hit rolls damage, floored at 0, and applies it to target.
func (r *Resolver) attack(actor, target *combat.Combatant, action *combat.Action, src dice.Source) (*combat.LogEntry, error) {
	attackRoll, err := dice.Roll(dice.Expression{Count: 1, Sides: 20, Modifier: actor.AttackModifier + action.AttackBonus}, src)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to roll attack for %s", actor.ID)
	}

	entry := &combat.LogEntry{
		Kind:             combat.LogKindAttack,
		ActorID:          actor.ID,
		ActorName:        actor.Name,
		TargetID:         target.ID,
		TargetName:       target.Name,
		ActionID:         action.ID,
		ActionName:       action.Name,
		Roll:             attackRoll,
		TargetArmorClass: target.ArmorClass,
		Hit:              attackRoll.Total >= target.ArmorClass,
		Critical:         attackRoll.IsCritical(),
		Fumble:           attackRoll.IsFumble(),
	}

	if entry.Hit {
		damageRoll, err := dice.Roll(action.Damage, src)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to roll damage for %s", action.ID)
		}
		entry.DamageRoll = damageRoll
		entry.Damage = max(0, damageRoll.Total)
		target.ApplyDamage(entry.Damage)
	}

	entry.TargetHitPoints = target.HitPoints
	entry.TargetMaxHitPoints = target.MaxHitPoints
	entry.Defeated = !target.IsAlive()

	return entry, nil
}

func (r *Resolver) end(session *combat.Session, outcome combat.Outcome) {
	session.End(outcome)
	session.AppendLog(&combat.LogEntry{
		Kind:    combat.LogKindEnd,
		Outcome: outcome,
	})
}

func validateRoster(combatants []*combat.Combatant) error {
	if len(combatants) < 2 {
		return dnderr.EmptyEncounter(fmt.Sprintf("an encounter needs at least 2 combatants, got %d", len(combatants)))
	}

	seen := make(map[string]bool, len(combatants))
	players := 0
	for i, c := range combatants {
		if c == nil {
			return dnderr.InvalidArgumentf("combatant %d is nil", i)
		}
		if c.ID == "" {
			return dnderr.InvalidArgumentf("combatant %d has no id", i)
		}
		if seen[c.ID] {
			return dnderr.InvalidArgumentf("duplicate combatant id %s", c.ID)
		}
		seen[c.ID] = true

		if !c.Side.Valid() {
			return dnderr.InvalidArgumentf("combatant %s has unknown side %q", c.ID, c.Side)
		}
		if c.Side == shared.SidePlayer {
			players++
		}
		if c.HitPoints < 0 || c.HitPoints > c.MaxHitPoints {
			return dnderr.InvalidArgumentf("combatant %s has hit points %d outside [0, %d]", c.ID, c.HitPoints, c.MaxHitPoints)
		}

		for _, a := range c.Actions {
			if err := validateAction(c.ID, a); err != nil {
				return err
			}
		}
	}

	if players == 0 {
		return dnderr.EmptyEncounter("an encounter needs at least one combatant on the player side")
	}
	return nil
}

func validateAction(combatantID string, a *combat.Action) error {
	if a == nil || a.ID == "" {
		return dnderr.InvalidArgumentf("combatant %s has an action without an id", combatantID)
	}
	switch a.Kind {
	case combat.ActionKindPass:
		return nil
	case combat.ActionKindAttack:
		if err := a.Damage.Validate(); err != nil {
			return dnderr.Wrapf(err, "combatant %s action %s has invalid damage", combatantID, a.ID)
		}
		return nil
	default:
		return dnderr.InvalidArgumentf("combatant %s action %s has unsupported kind %q", combatantID, a.ID, a.Kind)
	}
}

func pickAction(actor *combat.Combatant, actionID string) (*combat.Action, error) {
	if actionID == "" {
		if a, ok := actor.FirstAction(combat.ActionKindAttack); ok {
			return a, nil
		}
		return nil, dnderr.InvalidArgumentf("%s has no attack action", actor.ID)
	}
	a, ok := actor.Action(actionID)
	if !ok {
		return nil, dnderr.InvalidArgumentf("%s has no action %s", actor.ID, actionID).
			WithMeta("action_id", actionID)
	}
	return a, nil
}

func pickTarget(session *combat.Session, actor *combat.Combatant, targetID string) (*combat.Combatant, error) {
	if targetID == "" {
		for _, c := range session.Combatants {
			if actor.IsHostileTo(c) && c.IsAlive() {
				return c, nil
			}
		}
		return nil, dnderr.NoValidTargetf("%s has no living opponent to attack", actor.ID)
	}

	target := session.Combatant(targetID)
	switch {
	case target == nil:
		return nil, dnderr.NoValidTargetf("target %s is not in this encounter", targetID).WithMeta("target_id", targetID)
	case !actor.IsHostileTo(target):
		return nil, dnderr.NoValidTargetf("target %s is on %s's side", targetID, actor.ID).WithMeta("target_id", targetID)
	case !target.IsAlive():
		return nil, dnderr.NoValidTargetf("target %s is already defeated", targetID).WithMeta("target_id", targetID)
	}
	return target, nil
}

func rollTotal(r *dice.RollResult) int {
	if r == nil {
		return 0
	}
	return r.Total
}
