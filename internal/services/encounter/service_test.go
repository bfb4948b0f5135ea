package encounter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	mockdice "github.com/KirkDiggler/tabletop-engine/internal/dice/mock"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/events"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/encounters"
	mockencrepo "github.com/KirkDiggler/tabletop-engine/internal/repositories/encounters/mock"
	"github.com/KirkDiggler/tabletop-engine/internal/services/encounter"
	"github.com/KirkDiggler/tabletop-engine/internal/uuid"
	mockuuid "github.com/KirkDiggler/tabletop-engine/internal/uuid/mock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     encounters.Repository
	source   *mockdice.ScriptedSource
	bus      *events.Bus
	received []events.EventType
	now      time.Time
	service  encounter.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = encounters.NewInMemoryRepository()
	s.source = mockdice.NewScriptedSource()
	s.bus = events.NewBus(nil)
	s.received = nil
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	record := func(e events.Event) error {
		s.received = append(s.received, e.GetType())
		return nil
	}
	for _, t := range []events.EventType{events.EventTypeEncounterStarted, events.EventTypeActionResolved, events.EventTypeEncounterEnded} {
		s.bus.Subscribe(t, &events.ListenerFunc{Name: "recorder", Order: events.PriorityMetrics, Fn: record})
	}

	s.service = encounter.NewService(&encounter.ServiceConfig{
		Repository:    s.repo,
		Source:        s.source,
		UUIDGenerator: uuid.NewSequenceGenerator("enc"),
		Bus:           s.bus,
		Clock:         func() time.Time { return s.now },
	})
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) start() *combat.Session {
	s.source.SetRolls([]int{15, 5})
	session, err := s.service.StartEncounter(s.ctx, &encounter.StartEncounterInput{
		Combatants: []*combat.Combatant{aria(), goblin("goblin")},
	})
	s.Require().NoError(err)
	return session
}

func (s *ServiceTestSuite) TestStartEncounter_StoresSession() {
	session := s.start()

	s.Equal("enc-1", session.ID)
	s.Equal(s.now, session.CreatedAt)
	s.Equal(combat.StateAwaitingAction, session.State)

	stored, err := s.service.GetEncounter(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal(session, stored)
	s.Equal([]events.EventType{events.EventTypeEncounterStarted}, s.received)
}

func (s *ServiceTestSuite) TestStartEncounter_Invalid() {
	_, err := s.service.StartEncounter(s.ctx, &encounter.StartEncounterInput{
		Combatants: []*combat.Combatant{aria()},
	})
	s.True(dnderr.IsEmptyEncounter(err))

	_, err = s.service.StartEncounter(s.ctx, nil)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestSubmitAction_PersistsAndPublishes() {
	s.start()
	s.now = s.now.Add(time.Minute)

	s.source.SetRolls([]int{15, 6})
	outcome, err := s.service.SubmitAction(s.ctx, &encounter.SubmitActionInput{
		EncounterID: "enc-1",
		ActorID:     "aria",
	})
	s.Require().NoError(err)
	s.True(outcome.Entry.Hit)
	s.Equal(combat.OutcomeVictory, outcome.Session.Outcome)

	stored, err := s.service.GetEncounter(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal(combat.StateEnded, stored.State)
	s.Equal(s.now, stored.UpdatedAt)

	s.Equal([]events.EventType{
		events.EventTypeEncounterStarted,
		events.EventTypeActionResolved,
		events.EventTypeEncounterEnded,
	}, s.received)

	_, err = s.service.SubmitAction(s.ctx, &encounter.SubmitActionInput{EncounterID: "enc-1", ActorID: "aria"})
	s.True(dnderr.IsEncounterEnded(err))
}

func (s *ServiceTestSuite) TestSubmitAction_RejectedLeavesStoreUnchanged() {
	before := s.start()

	_, err := s.service.SubmitAction(s.ctx, &encounter.SubmitActionInput{EncounterID: "enc-1", ActorID: "goblin"})
	s.True(dnderr.IsNotYourTurn(err))

	stored, err := s.service.GetEncounter(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal(before, stored)
}

func (s *ServiceTestSuite) TestSubmitAction_UnknownEncounter() {
	_, err := s.service.SubmitAction(s.ctx, &encounter.SubmitActionInput{EncounterID: "missing", ActorID: "aria"})
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestFlee() {
	s.start()

	outcome, err := s.service.Flee(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal(combat.OutcomeFled, outcome.Session.Outcome)

	stored, err := s.service.GetEncounter(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal(combat.OutcomeFled, stored.Outcome)
	s.Contains(s.received, events.EventTypeEncounterEnded)
}

func (s *ServiceTestSuite) TestRollNarration() {
	start := s.start()

	s.source.SetRolls([]int{11, 4})
	outcome, err := s.service.RollNarration(s.ctx, &encounter.RollNarrationInput{
		EncounterID: "enc-1",
		ActorID:     "aria",
		Text:        "The ledge crumbles. [DICE_ROLL:d20+3:Athletics check] Dust rises. [DICE_ROLL:1d6:Falling rubble]",
	})
	s.Require().NoError(err)

	s.Equal("The ledge crumbles. Dust rises.", outcome.Narration)
	s.Require().Len(outcome.Entries, 2)
	s.Equal(14, outcome.Entries[0].Roll.Total)
	s.Equal("Falling rubble", outcome.Entries[1].Description)
	s.Equal(start.Turn, outcome.Session.Turn)

	stored, err := s.service.GetEncounter(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Len(stored.Log, len(start.Log)+2)
}

func (s *ServiceTestSuite) TestRollNarration_MalformedTag() {
	s.start()

	_, err := s.service.RollNarration(s.ctx, &encounter.RollNarrationInput{
		EncounterID: "enc-1",
		Text:        "[DICE_ROLL:2dX:Broken]",
	})
	s.True(dnderr.IsMalformedExpression(err))
}

func (s *ServiceTestSuite) TestRollNarration_NoTags() {
	start := s.start()

	outcome, err := s.service.RollNarration(s.ctx, &encounter.RollNarrationInput{
		EncounterID: "enc-1",
		Text:        "  The goblin snarls.  ",
	})
	s.Require().NoError(err)
	s.Empty(outcome.Entries)
	s.Equal("The goblin snarls.", outcome.Narration)
	s.Equal(start, outcome.Session)
}

type ServiceRepositoryErrorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    *mockencrepo.MockRepository
	uuidGen *mockuuid.MockGenerator
	service encounter.Service
}

func (s *ServiceRepositoryErrorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mockencrepo.NewMockRepository(s.ctrl)
	s.uuidGen = mockuuid.NewMockGenerator(s.ctrl)
	s.service = encounter.NewService(&encounter.ServiceConfig{
		Repository:    s.repo,
		Source:        dice.NewSeededSource(42),
		UUIDGenerator: s.uuidGen,
	})
}

func (s *ServiceRepositoryErrorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceRepositoryErrorSuite(t *testing.T) {
	suite.Run(t, new(ServiceRepositoryErrorSuite))
}

func (s *ServiceRepositoryErrorSuite) TestStartEncounter_CreateFails() {
	ctx := context.Background()
	s.uuidGen.EXPECT().New().Return("enc-42")
	s.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("connection refused"))

	session, err := s.service.StartEncounter(ctx, &encounter.StartEncounterInput{
		Combatants: []*combat.Combatant{aria(), goblin("goblin")},
	})
	s.Error(err)
	s.Nil(session)
	s.Contains(err.Error(), "failed to save encounter")
}

func (s *ServiceRepositoryErrorSuite) TestFlee_UpdateFails() {
	ctx := context.Background()
	stored := &combat.Session{
		ID:         "enc-42",
		State:      combat.StateAwaitingAction,
		Round:      1,
		Combatants: []*combat.Combatant{aria(), goblin("goblin")},
	}
	s.repo.EXPECT().Get(ctx, "enc-42").Return(stored, nil)
	s.repo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("connection refused"))

	outcome, err := s.service.Flee(ctx, "enc-42")
	s.Error(err)
	s.Nil(outcome)
	s.Equal(combat.StateAwaitingAction, stored.State)
}
