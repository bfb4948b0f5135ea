package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	mockdice "github.com/KirkDiggler/tabletop-engine/internal/dice/mock"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/services/encounter"
)

func aria() *combat.Combatant {
	return &combat.Combatant{
		ID:                "aria",
		Name:              "Aria",
		Side:              shared.SidePlayer,
		HitPoints:         12,
		MaxHitPoints:      12,
		ArmorClass:        16,
		DexterityModifier: 2,
		AttackModifier:    5,
		CharacterID:       "char-aria",
		Actions: []*combat.Action{
			{ID: "longsword", Name: "Longsword", Kind: combat.ActionKindAttack, Damage: dice.MustParse("1d8+3")},
			{ID: "wait", Name: "Wait", Kind: combat.ActionKindPass},
		},
	}
}

func goblin(id string) *combat.Combatant {
	return &combat.Combatant{
		ID:             id,
		Name:           "Goblin",
		Side:           shared.SideOpponent,
		HitPoints:      7,
		MaxHitPoints:   7,
		ArmorClass:     18,
		AttackModifier: 4,
		Actions: []*combat.Action{
			{ID: "scimitar", Name: "Scimitar", Kind: combat.ActionKindAttack, Damage: dice.MustParse("1d6+2")},
		},
	}
}

type ResolverTestSuite struct {
	suite.Suite
	resolver *encounter.Resolver
}

func (s *ResolverTestSuite) SetupTest() {
	s.resolver = encounter.NewResolver(nil)
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

// startDuel puts Aria first: 15+2 against the goblin's 5
func (s *ResolverTestSuite) startDuel() *combat.Session {
	session, err := s.resolver.Start("enc-1", []*combat.Combatant{aria(), goblin("goblin")}, mockdice.NewScriptedSource(15, 5))
	s.Require().NoError(err)
	return session
}

func (s *ResolverTestSuite) TestStart_RollsInitiativeAndOrders() {
	// goblin rolls higher
	session, err := s.resolver.Start("enc-1", []*combat.Combatant{aria(), goblin("goblin")}, mockdice.NewScriptedSource(10, 17))
	s.Require().NoError(err)

	s.Equal(combat.StateAwaitingAction, session.State)
	s.Equal(1, session.Round)
	s.Equal(0, session.Turn)
	s.Equal("goblin", session.Combatants[0].ID)
	s.Equal(17, session.Combatants[0].Initiative)
	s.Equal(12, session.Combatants[1].Initiative)
	s.Equal("goblin", session.Current().ID)

	s.Require().Len(session.Log, 2)
	s.Equal(combat.LogKindInitiative, session.Log[0].Kind)
	s.Equal("aria", session.Log[0].ActorID, "initiative is logged in roll order")
	s.Equal(1, session.Log[0].Sequence)
	s.Equal(2, session.Log[1].Sequence)
}

func (s *ResolverTestSuite) TestStart_TieBreaks() {
	quick := goblin("quick")
	quick.DexterityModifier = 3
	slow := goblin("slow")
	slow.DexterityModifier = 1
	first := goblin("first")
	first.DexterityModifier = 1
	hero := aria()
	hero.DexterityModifier = 1

	// totals: hero 11, slow 11, quick 11, first 11
	src := mockdice.NewScriptedSource(10, 10, 8, 10)
	session, err := s.resolver.Start("enc-1", []*combat.Combatant{hero, slow, quick, first}, src)
	s.Require().NoError(err)

	ids := make([]string, len(session.Combatants))
	for i, c := range session.Combatants {
		ids[i] = c.ID
	}
	s.Equal([]string{"quick", "aria", "slow", "first"}, ids,
		"equal initiative falls back to dexterity, then insertion order")
}

func (s *ResolverTestSuite) TestStart_DoesNotMutateInput() {
	hero := aria()
	_, err := s.resolver.Start("enc-1", []*combat.Combatant{hero, goblin("goblin")}, mockdice.NewScriptedSource(15, 5))
	s.Require().NoError(err)
	s.Equal(0, hero.Initiative)
}

func (s *ResolverTestSuite) TestStart_Validation() {
	dead := aria()
	dead.HitPoints = -1

	badDamage := goblin("bad")
	badDamage.Actions[0].Damage = dice.Expression{Count: 0, Sides: 6}

	testCases := []struct {
		name       string
		combatants []*combat.Combatant
		check      func(error) bool
	}{
		{name: "no combatants", combatants: nil, check: dnderr.IsEmptyEncounter},
		{name: "single combatant", combatants: []*combat.Combatant{aria()}, check: dnderr.IsEmptyEncounter},
		{name: "no players", combatants: []*combat.Combatant{goblin("a"), goblin("b")}, check: dnderr.IsEmptyEncounter},
		{name: "duplicate ids", combatants: []*combat.Combatant{aria(), aria()}, check: dnderr.IsInvalidArgument},
		{name: "nil combatant", combatants: []*combat.Combatant{aria(), nil}, check: dnderr.IsInvalidArgument},
		{name: "hp out of range", combatants: []*combat.Combatant{dead, goblin("g")}, check: dnderr.IsInvalidArgument},
		{name: "invalid damage", combatants: []*combat.Combatant{aria(), badDamage}, check: dnderr.IsMalformedExpression},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			session, err := s.resolver.Start("enc-1", tc.combatants, mockdice.NewScriptedSource(10, 10, 10))
			s.Error(err)
			s.True(tc.check(err), "unexpected error code %s: %v", dnderr.GetCode(err), err)
			s.Nil(session)
		})
	}
}

func (s *ResolverTestSuite) TestStart_AllOpponentsDownEndsImmediately() {
	down := goblin("goblin")
	down.HitPoints = 0

	session, err := s.resolver.Start("enc-1", []*combat.Combatant{aria(), down}, mockdice.NewScriptedSource(15, 5))
	s.Require().NoError(err)
	s.Equal(combat.StateEnded, session.State)
	s.Equal(combat.OutcomeVictory, session.Outcome)
}

func (s *ResolverTestSuite) TestResolveAction_HitAndVictory() {
	session := s.startDuel()

	// 15 + 5 = 20 against AC 18, then 1d8+3 rolls 6
	next, entry, err := s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{
		ActionID: "longsword",
		TargetID: "goblin",
	}, mockdice.NewScriptedSource(15, 6))
	s.Require().NoError(err)

	s.Equal(combat.LogKindAttack, entry.Kind)
	s.Equal(20, entry.Roll.Total)
	s.Equal(18, entry.TargetArmorClass)
	s.True(entry.Hit)
	s.Equal(9, entry.DamageRoll.Total)
	s.Equal(9, entry.Damage)
	s.Equal(0, entry.TargetHitPoints)
	s.True(entry.Defeated)

	s.Equal(combat.StateEnded, next.State)
	s.Equal(combat.OutcomeVictory, next.Outcome)
	s.Equal(combat.LogKindEnd, next.Log[len(next.Log)-1].Kind)

	_, _, err = s.resolver.ResolveAction(next, "aria", encounter.ActionRequest{}, mockdice.NewScriptedSource(10, 1))
	s.True(dnderr.IsEncounterEnded(err))

	_, _, err = s.resolver.Flee(next)
	s.True(dnderr.IsEncounterEnded(err))
}

func (s *ResolverTestSuite) TestResolveAction_MissAdvancesTurn() {
	session := s.startDuel()

	// 12 + 5 = 17 against AC 18
	next, entry, err := s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{}, mockdice.NewScriptedSource(12))
	s.Require().NoError(err)

	s.False(entry.Hit)
	s.Nil(entry.DamageRoll)
	s.Equal("goblin", entry.TargetID, "empty target picks the first living opponent")
	s.Equal("longsword", entry.ActionID, "empty action picks the first attack")
	s.Equal(7, next.Combatant("goblin").HitPoints)
	s.Equal("goblin", next.Current().ID)
	s.Equal(1, next.Round)

	next, _, err = s.resolver.ResolveAction(next, "goblin", encounter.ActionRequest{}, mockdice.NewScriptedSource(2))
	s.Require().NoError(err)
	s.Equal("aria", next.Current().ID)
	s.Equal(2, next.Round, "wrapping the order starts round 2")
}

func (s *ResolverTestSuite) TestResolveAction_NaturalTwentyAndOne() {
	session := s.startDuel()

	_, entry, err := s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{}, mockdice.NewScriptedSource(20, 1))
	s.Require().NoError(err)
	s.True(entry.Critical)
	s.False(entry.Fumble)

	_, entry, err = s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{}, mockdice.NewScriptedSource(1))
	s.Require().NoError(err)
	s.True(entry.Fumble)
	s.False(entry.Hit, "1 + 5 is below AC 18")
}

func (s *ResolverTestSuite) TestResolveAction_NegativeDamageCountsAsZero() {
	hero := aria()
	hero.Actions[0].Damage = dice.MustParse("1d4-5")
	session, err := s.resolver.Start("enc-1", []*combat.Combatant{hero, goblin("goblin")}, mockdice.NewScriptedSource(15, 5))
	s.Require().NoError(err)

	_, entry, err := s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{}, mockdice.NewScriptedSource(19, 2))
	s.Require().NoError(err)
	s.True(entry.Hit)
	s.Equal(-3, entry.DamageRoll.Total)
	s.Equal(0, entry.Damage)
	s.Equal(7, entry.TargetHitPoints)
}

func (s *ResolverTestSuite) TestResolveAction_Pass() {
	session := s.startDuel()

	next, entry, err := s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{ActionID: "wait"}, nil)
	s.Require().NoError(err)
	s.Equal(combat.LogKindPass, entry.Kind)
	s.Equal("goblin", next.Current().ID)
}

func (s *ResolverTestSuite) TestResolveAction_Errors() {
	session := s.startDuel()

	friendly := aria()
	friendly.ID = "bran"
	withAlly, err := s.resolver.Start("enc-2", []*combat.Combatant{aria(), friendly, goblin("goblin")}, mockdice.NewScriptedSource(18, 2, 1))
	s.Require().NoError(err)
	s.Require().Equal("aria", withAlly.Current().ID)

	testCases := []struct {
		name    string
		session *combat.Session
		actorID string
		req     encounter.ActionRequest
		check   func(error) bool
	}{
		{name: "wrong actor", session: session, actorID: "goblin", check: dnderr.IsNotYourTurn},
		{name: "unknown actor", session: session, actorID: "nobody", check: dnderr.IsNotYourTurn},
		{name: "unknown action", session: session, actorID: "aria", req: encounter.ActionRequest{ActionID: "fireball"}, check: dnderr.IsInvalidArgument},
		{name: "unknown target", session: session, actorID: "aria", req: encounter.ActionRequest{TargetID: "dragon"}, check: dnderr.IsNoValidTarget},
		{name: "self target", session: session, actorID: "aria", req: encounter.ActionRequest{TargetID: "aria"}, check: dnderr.IsNoValidTarget},
		{name: "friendly target", session: withAlly, actorID: "aria", req: encounter.ActionRequest{TargetID: "bran"}, check: dnderr.IsNoValidTarget},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			next, entry, err := s.resolver.ResolveAction(tc.session, tc.actorID, tc.req, mockdice.NewScriptedSource(10, 1))
			s.Error(err)
			s.True(tc.check(err), "unexpected error code %s: %v", dnderr.GetCode(err), err)
			s.Nil(next)
			s.Nil(entry)
		})
	}
}

func (s *ResolverTestSuite) TestResolveAction_DefeatedTarget() {
	session, err := s.resolver.Start("enc-1", []*combat.Combatant{aria(), goblin("g1"), goblin("g2")}, mockdice.NewScriptedSource(15, 5, 4))
	s.Require().NoError(err)

	next, _, err := s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{TargetID: "g1"}, mockdice.NewScriptedSource(15, 8))
	s.Require().NoError(err)
	s.Require().Equal(combat.StateAwaitingAction, next.State)
	s.False(next.Combatant("g1").IsAlive())

	// g2 acts, then Aria again
	next, _, err = s.resolver.ResolveAction(next, "g2", encounter.ActionRequest{}, mockdice.NewScriptedSource(2))
	s.Require().NoError(err)
	s.Require().Equal("aria", next.Current().ID)

	_, _, err = s.resolver.ResolveAction(next, "aria", encounter.ActionRequest{TargetID: "g1"}, mockdice.NewScriptedSource(15, 8))
	s.True(dnderr.IsNoValidTarget(err))

	_, entry, err := s.resolver.ResolveAction(next, "aria", encounter.ActionRequest{}, mockdice.NewScriptedSource(2))
	s.Require().NoError(err)
	s.Equal("g2", entry.TargetID, "default target skips the defeated goblin")
}

func (s *ResolverTestSuite) TestResolveAction_FailureLeavesSessionUnchanged() {
	session := s.startDuel()
	before := session.Clone()

	// attack hits, then the source runs dry before damage
	next, entry, err := s.resolver.ResolveAction(session, "aria", encounter.ActionRequest{}, mockdice.NewScriptedSource(15))
	s.Error(err)
	s.Nil(next)
	s.Nil(entry)
	s.Equal(before, session)
	s.Equal(7, session.Combatant("goblin").HitPoints)
}

func (s *ResolverTestSuite) TestResolveAction_Defeat() {
	weak := aria()
	weak.HitPoints = 3
	session, err := s.resolver.Start("enc-1", []*combat.Combatant{weak, goblin("goblin")}, mockdice.NewScriptedSource(2, 19))
	s.Require().NoError(err)
	s.Require().Equal("goblin", session.Current().ID)

	// 15 + 4 = 19 against AC 16, 1d6+2 rolls 4
	next, entry, err := s.resolver.ResolveAction(session, "goblin", encounter.ActionRequest{}, mockdice.NewScriptedSource(15, 4))
	s.Require().NoError(err)
	s.True(entry.Defeated)
	s.Equal(combat.StateEnded, next.State)
	s.Equal(combat.OutcomeDefeat, next.Outcome)
}

func (s *ResolverTestSuite) TestFlee() {
	session := s.startDuel()

	next, entry, err := s.resolver.Flee(session)
	s.Require().NoError(err)
	s.Equal(combat.LogKindFlee, entry.Kind)
	s.Equal("aria", entry.ActorID)
	s.Equal(combat.StateEnded, next.State)
	s.Equal(combat.OutcomeFled, next.Outcome)
	s.Equal(12, next.Combatant("aria").HitPoints, "fleeing ignores hit points")

	s.Equal(combat.StateAwaitingAction, session.State, "input session is untouched")
}

func (s *ResolverTestSuite) TestResolveTag() {
	session := s.startDuel()
	tags, err := dice.ParseActionTags("Aria leaps the chasm. [DICE_ROLL:d20+3:Athletics check]")
	s.Require().NoError(err)
	s.Require().Len(tags, 1)

	next, entry, err := s.resolver.ResolveTag(session, "aria", tags[0], mockdice.NewScriptedSource(11))
	s.Require().NoError(err)
	s.Equal(combat.LogKindRoll, entry.Kind)
	s.Equal("Athletics check", entry.Description)
	s.Equal(14, entry.Roll.Total)
	s.Equal(session.Turn, next.Turn, "narrator rolls do not use the turn")
	s.Len(next.Log, len(session.Log)+1)

	_, _, err = s.resolver.ResolveTag(session, "nobody", tags[0], mockdice.NewScriptedSource(11))
	s.True(dnderr.IsNotFound(err))
}

func (s *ResolverTestSuite) TestResolveTag_Advantage() {
	session := s.startDuel()
	tags, err := dice.ParseActionTags("[DICE_ROLL:d20+3:Athletics check:advantage]")
	s.Require().NoError(err)

	_, entry, err := s.resolver.ResolveTag(session, "aria", tags[0], mockdice.NewScriptedSource(4, 20))
	s.Require().NoError(err)
	s.Equal(23, entry.Roll.Total)
	s.Equal([]int{4}, entry.Roll.Discarded)
	s.True(entry.Critical)

	tags, err = dice.ParseActionTags("[DICE_ROLL:d20+3:Athletics check:disadvantage]")
	s.Require().NoError(err)

	_, entry, err = s.resolver.ResolveTag(session, "aria", tags[0], mockdice.NewScriptedSource(1, 20))
	s.Require().NoError(err)
	s.Equal(4, entry.Roll.Total)
	s.True(entry.Fumble)
}
