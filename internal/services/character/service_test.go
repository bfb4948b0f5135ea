package character_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/rulebook"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/events"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/characters"
	charService "github.com/KirkDiggler/tabletop-engine/internal/services/character"
	"github.com/KirkDiggler/tabletop-engine/internal/services/progression"
	mockprogression "github.com/KirkDiggler/tabletop-engine/internal/services/progression/mock"
	"github.com/KirkDiggler/tabletop-engine/internal/testutils"
	"github.com/KirkDiggler/tabletop-engine/internal/uuid"
)

type CharacterServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *characters.InMemoryRepository
	bus     *events.Bus
	service charService.Service
}

func (s *CharacterServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = characters.NewInMemoryRepository()
	s.bus = events.NewBus(nil)

	catalog := rulebook.DefaultCatalog()
	s.service = charService.NewService(&charService.ServiceConfig{
		Repository:    s.repo,
		Progression:   progression.NewService(&progression.ServiceConfig{Catalog: catalog}),
		Catalog:       catalog,
		UUIDGenerator: uuid.NewSequenceGenerator("char"),
		Bus:           s.bus,
	})
}

func TestCharacterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CharacterServiceTestSuite))
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_UsesClassCatalog() {
	char, err := s.service.CreateCharacter(s.ctx, &character.NewInput{
		Name:      "Merlin",
		ClassKey:  "wizard",
		Abilities: character.AbilityScores{Dexterity: 14, Constitution: 12},
	})
	s.Require().NoError(err)

	s.Equal("char-1", char.ID)
	s.Equal(6, char.HitDie)
	s.Equal(7, char.MaxHitPoints)
	s.Equal(12, char.ArmorClass)
	s.True(char.HasFeature("arcane-recovery"))
	s.True(char.HasSpell("magic-missile"))
	s.False(char.HasSpell("fireball"))

	stored, err := s.service.GetCharacter(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal(char, stored)
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_UnknownClassNeedsHitDie() {
	_, err := s.service.CreateCharacter(s.ctx, &character.NewInput{Name: "Odd", ClassKey: "artificer"})
	s.True(dnderr.IsInvalidArgument(err))

	char, err := s.service.CreateCharacter(s.ctx, &character.NewInput{Name: "Odd", ClassKey: "artificer", HitDie: 8})
	s.Require().NoError(err)
	s.Empty(char.Features)
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_SettlesLevelAgainstExperience() {
	tests := []struct {
		name       string
		level      int
		experience int
		wantLevel  int
		wantXP     int
		wantErr    bool
	}{
		{name: "level from experience", experience: 5000, wantLevel: 4, wantXP: 5000},
		{name: "experience from level", level: 5, wantLevel: 5, wantXP: 6500},
		{name: "fresh character", wantLevel: 1, wantXP: 0},
		{name: "matching pair", level: 3, experience: 1000, wantLevel: 3, wantXP: 1000},
		{name: "level too low for experience", level: 1, experience: 5000, wantErr: true},
		{name: "level too high for experience", level: 5, experience: 300, wantErr: true},
		{name: "beyond the table", level: 21, wantErr: true},
		{name: "negative level", level: -1, wantErr: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			char, err := s.service.CreateCharacter(s.ctx, &character.NewInput{
				Name:       "Aria",
				ClassKey:   "fighter",
				Level:      tt.level,
				Experience: tt.experience,
			})
			if tt.wantErr {
				s.True(dnderr.IsInvalidArgument(err), "got %v", err)
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.wantLevel, char.Level)
			s.Equal(tt.wantXP, char.Experience)
			s.Equal(character.ProficiencyBonus(tt.wantLevel), char.ProficiencyBonus)
		})
	}
}

func (s *CharacterServiceTestSuite) TestAwardExperience_ZeroAwardOnCreatedCharacter() {
	char, err := s.service.CreateCharacter(s.ctx, &character.NewInput{
		Name:       "Aria",
		ClassKey:   "fighter",
		Experience: 5000,
	})
	s.Require().NoError(err)

	result, err := s.service.AwardExperience(s.ctx, char.ID, 0)
	s.Require().NoError(err)
	s.Nil(result.LevelUp)
	s.Equal(char.Level, result.Character.Level)
	s.Equal(char.MaxHitPoints, result.Character.MaxHitPoints)
}

func (s *CharacterServiceTestSuite) TestAwardExperience_LevelsAndSaves() {
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestCharacter("aria", "Aria")))

	result, err := s.service.AwardExperience(s.ctx, "aria", 300)
	s.Require().NoError(err)
	s.Require().NotNil(result.LevelUp)
	s.Equal(2, result.LevelUp.NewLevel)
	s.Equal(7, result.LevelUp.HitPointsGained)
	s.Contains(result.LevelUp.NewFeatures, "action-surge-1-use")

	stored, err := s.service.GetCharacter(s.ctx, "aria")
	s.Require().NoError(err)
	s.Equal(2, stored.Level)
	s.Equal(300, stored.Experience)
	s.Equal(19, stored.MaxHitPoints)
}

func (s *CharacterServiceTestSuite) TestAwardExperience_Errors() {
	_, err := s.service.AwardExperience(s.ctx, "missing", 100)
	s.True(dnderr.IsNotFound(err))

	_, err = s.service.AwardExperience(s.ctx, "missing", -1)
	s.True(dnderr.IsInvalidAmount(err))
}

func (s *CharacterServiceTestSuite) TestCombatantFromCharacter() {
	char := testutils.CreateTestCharacter("aria", "Aria")

	c, err := s.service.CombatantFromCharacter(char, shared.SidePlayer, nil)
	s.Require().NoError(err)
	s.Equal("aria", c.ID)
	s.Equal("aria", c.CharacterID)
	s.Equal(char.HitPoints, c.HitPoints)
	s.Equal(char.ArmorClass, c.ArmorClass)
	s.Equal(2, c.DexterityModifier)
	s.Equal(5, c.AttackModifier, "strength +3 and proficiency +2")
	s.Require().Len(c.Actions, 1)
	s.Equal("1d4+3", c.Actions[0].Damage.String())

	sword := &combat.Action{ID: "longsword", Kind: combat.ActionKindAttack, Damage: dice.MustParse("1d8+3")}
	c, err = s.service.CombatantFromCharacter(char, shared.SidePlayer, []*combat.Action{sword})
	s.Require().NoError(err)
	s.Equal("longsword", c.Actions[0].ID)
	s.NotSame(sword, c.Actions[0])

	_, err = s.service.CombatantFromCharacter(char, shared.Side("neutral"), nil)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *CharacterServiceTestSuite) TestEncounterEnded_WritesBackHitPoints() {
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestCharacter("aria", "Aria")))

	hero, err := s.service.CombatantFromCharacter(testutils.CreateTestCharacter("aria", "Aria"), shared.SidePlayer, nil)
	s.Require().NoError(err)
	hero.HitPoints = 4
	monster := testutils.CreateTestCombatant("goblin", shared.SideOpponent, 0, 15)

	session := testutils.CreateTestSession("enc-1", hero, monster)
	session.End(combat.OutcomeVictory)

	s.Require().NoError(s.bus.Emit(events.NewEncounterEnded(session)))

	stored, err := s.service.GetCharacter(s.ctx, "aria")
	s.Require().NoError(err)
	s.Equal(4, stored.HitPoints)
}

func (s *CharacterServiceTestSuite) TestApplyEncounterResult_RequiresEndedSession() {
	session := testutils.CreateTestSession("enc-1")
	err := s.service.ApplyEncounterResult(s.ctx, session)
	s.True(dnderr.IsInvalidArgument(err))
}

func TestAwardExperience_ProgressionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := characters.NewInMemoryRepository()
	char := testutils.CreateTestCharacter("aria", "Aria")
	if err := repo.Create(context.Background(), char); err != nil {
		t.Fatal(err)
	}

	prog := mockprogression.NewMockService(ctrl)
	prog.EXPECT().AwardExperience(gomock.Any(), 50).Return(nil, errors.New("table unavailable"))

	svc := charService.NewService(&charService.ServiceConfig{
		Repository:  repo,
		Progression: prog,
	})

	_, err := svc.AwardExperience(context.Background(), "aria", 50)
	if err == nil {
		t.Fatal("expected error")
	}

	stored, _ := repo.Get(context.Background(), "aria")
	if stored.Experience != 0 {
		t.Fatalf("experience changed to %d", stored.Experience)
	}
}
