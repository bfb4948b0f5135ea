package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/rulebook"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/events"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/characters"
	"github.com/KirkDiggler/tabletop-engine/internal/services/progression"
	"github.com/KirkDiggler/tabletop-engine/internal/uuid"
)

// Service defines the character service interface
type Service interface {
	// CreateCharacter builds and stores a character. A zero hit die is taken from the class catalog.
	CreateCharacter(ctx context.Context, input *character.NewInput) (*character.Character, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, characterID string) (*character.Character, error)

	// ListCharacters lists all stored characters
	ListCharacters(ctx context.Context) ([]*character.Character, error)

	// AwardExperience loads a character, applies the award and saves the result
	AwardExperience(ctx context.Context, characterID string, amount int) (*progression.Result, error)

	// CombatantFromCharacter projects a character into an encounter
	CombatantFromCharacter(char *character.Character, side shared.Side, actions []*combat.Action) (*combat.Combatant, error)

	// ApplyEncounterResult writes final hit points back for every combatant backed by a character
	ApplyEncounterResult(ctx context.Context, session *combat.Session) error
}

type service struct {
	repository    characters.Repository
	progression   progression.Service
	catalog       *rulebook.Catalog
	table         rulebook.ExperienceTable
	uuidGenerator uuid.Generator
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    characters.Repository    // Required
	Progression   progression.Service      // Required
	Catalog       *rulebook.Catalog        // Optional, defaults to the embedded catalog
	Table         rulebook.ExperienceTable // Optional, defaults to rulebook.DefaultExperienceTable
	UUIDGenerator uuid.Generator
	Bus           *events.Bus // Optional, subscribes encounter write-back when set
	Logger        *zap.Logger
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Progression == nil {
		panic("progression service is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		progression:   cfg.Progression,
		catalog:       cfg.Catalog,
		table:         cfg.Table,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
	}

	if svc.catalog == nil {
		svc.catalog = rulebook.DefaultCatalog()
	}
	if svc.table == nil {
		svc.table = rulebook.DefaultExperienceTable
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	if cfg.Bus != nil {
		cfg.Bus.Subscribe(events.EventTypeEncounterEnded, &events.ListenerFunc{
			Name:  "character-writeback",
			Order: events.PriorityPersistence,
			Fn: func(e events.Event) error {
				ended, ok := e.(*events.EncounterEndedEvent)
				if !ok {
					return nil
				}
				return svc.ApplyEncounterResult(context.Background(), ended.Session)
			},
		})
	}

	return svc
}

// CreateCharacter implements Service.CreateCharacter
func (s *service) CreateCharacter(ctx context.Context, input *character.NewInput) (*character.Character, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	in := *input
	if in.ID == "" {
		in.ID = s.uuidGenerator.New()
	}

	class, hasClass := s.catalog.Get(in.ClassKey)
	if in.HitDie == 0 {
		if !hasClass {
			return nil, dnderr.InvalidArgumentf("unknown class %q and no hit die given", in.ClassKey).
				WithMeta("class_key", in.ClassKey)
		}
		in.HitDie = class.HitDie
	}
	if err := s.settleLevel(&in); err != nil {
		return nil, err
	}

	char, err := character.New(&in)
	if err != nil {
		return nil, err
	}
	if hasClass {
		features, spells := class.UnlocksThrough(char.Level)
		char.UnlockFeatures(features...)
		char.UnlockSpells(spells...)
	}

	if err := s.repository.Create(ctx, char); err != nil {
		return nil, dnderr.Wrap(err, "failed to save character")
	}

	s.logger.Info("character created",
		zap.String("character_id", char.ID),
		zap.String("class_key", char.ClassKey),
		zap.Int("level", char.Level))

	return char, nil
}

// settleLevel lines level and experience up with the table. A missing level comes
// from experience and a level given without experience starts at its threshold.
func (s *service) settleLevel(in *character.NewInput) error {
	switch {
	case in.Level == 0:
		in.Level = s.table.LevelForExperience(in.Experience)
	case in.Level > 1 && in.Experience == 0:
		threshold, ok := s.table.ThresholdFor(in.Level)
		if !ok {
			return dnderr.InvalidArgumentf("level must be between 1 and %d, got %d", s.table.MaxLevel(), in.Level)
		}
		in.Experience = threshold
	}
	return s.table.CheckLevel(in.Level, in.Experience)
}

// GetCharacter implements Service.GetCharacter
func (s *service) GetCharacter(ctx context.Context, characterID string) (*character.Character, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	return s.repository.Get(ctx, characterID)
}

// ListCharacters implements Service.ListCharacters
func (s *service) ListCharacters(ctx context.Context) ([]*character.Character, error) {
	return s.repository.List(ctx)
}

// AwardExperience implements Service.AwardExperience
func (s *service) AwardExperience(ctx context.Context, characterID string, amount int) (*progression.Result, error) {
	if amount < 0 {
		return nil, dnderr.InvalidAmountf("experience award cannot be negative, got %d", amount).
			WithMeta("character_id", characterID)
	}

	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	result, err := s.progression.AwardExperience(char, amount)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Update(ctx, result.Character); err != nil {
		return nil, dnderr.Wrap(err, "failed to save character")
	}

	return result, nil
}

// CombatantFromCharacter implements Service.CombatantFromCharacter.
// With no actions the combatant gets an unarmed strike (1d4 + strength modifier).
func (s *service) CombatantFromCharacter(char *character.Character, side shared.Side, actions []*combat.Action) (*combat.Combatant, error) {
	if char == nil {
		return nil, dnderr.InvalidArgument("character is required")
	}
	if err := char.Validate(); err != nil {
		return nil, err
	}
	if !side.Valid() {
		return nil, dnderr.InvalidArgumentf("unknown side %q", side)
	}

	c := &combat.Combatant{
		ID:                char.ID,
		Name:              char.Name,
		Side:              side,
		HitPoints:         char.HitPoints,
		MaxHitPoints:      char.MaxHitPoints,
		ArmorClass:        char.ArmorClass,
		DexterityModifier: char.Abilities.DexterityModifier(),
		AttackModifier:    char.AttackModifier(shared.AttributeStrength),
		CharacterID:       char.ID,
	}

	if len(actions) == 0 {
		c.Actions = []*combat.Action{{
			ID:   "unarmed-strike",
			Name: "Unarmed Strike",
			Kind: combat.ActionKindAttack,
			Damage: dice.Expression{
				Count:    1,
				Sides:    4,
				Modifier: char.Abilities.Modifier(shared.AttributeStrength),
			},
		}}
		return c, nil
	}

	c.Actions = make([]*combat.Action, len(actions))
	for i, a := range actions {
		if a == nil {
			return nil, dnderr.InvalidArgumentf("action %d is nil", i)
		}
		copied := *a
		c.Actions[i] = &copied
	}
	return c, nil
}

// ApplyEncounterResult implements Service.ApplyEncounterResult
func (s *service) ApplyEncounterResult(ctx context.Context, session *combat.Session) error {
	if session == nil {
		return dnderr.InvalidArgument("session is required")
	}
	if !session.IsEnded() {
		return dnderr.InvalidArgumentf("encounter %s has not ended", session.ID).
			WithMeta("encounter_id", session.ID)
	}

	for _, c := range session.Combatants {
		if c.CharacterID == "" {
			continue
		}

		char, err := s.repository.Get(ctx, c.CharacterID)
		if err != nil {
			return dnderr.Wrapf(err, "failed to load character %s", c.CharacterID)
		}

		char.HitPoints = min(c.HitPoints, char.MaxHitPoints)
		if err := s.repository.Update(ctx, char); err != nil {
			return dnderr.Wrapf(err, "failed to save character %s", c.CharacterID)
		}

		s.logger.Debug("hit points written back",
			zap.String("encounter_id", session.ID),
			zap.String("character_id", char.ID),
			zap.Int("hit_points", char.HitPoints))
	}

	return nil
}
