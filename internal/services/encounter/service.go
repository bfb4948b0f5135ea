package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/events"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/tabletop-engine/internal/uuid"
)

// Service defines the encounter service interface
type Service interface {
	// StartEncounter rolls initiative and stores a new encounter
	StartEncounter(ctx context.Context, input *StartEncounterInput) (*combat.Session, error)

	// GetEncounter retrieves an encounter by ID
	GetEncounter(ctx context.Context, encounterID string) (*combat.Session, error)

	// SubmitAction resolves the current combatant's action
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*ActionOutcome, error)

	// Flee ends the encounter with the fled outcome
	Flee(ctx context.Context, encounterID string) (*ActionOutcome, error)

	// RollNarration resolves every roll tag in narrator text against the encounter
	RollNarration(ctx context.Context, input *RollNarrationInput) (*NarrationOutcome, error)
}

// StartEncounterInput contains data for starting an encounter
type StartEncounterInput struct {
	Combatants []*combat.Combatant `json:"combatants"`
}

// SubmitActionInput contains data for resolving one action
type SubmitActionInput struct {
	EncounterID string `json:"encounter_id"`
	ActorID     string `json:"actor_id"`
	ActionID    string `json:"action_id"`
	TargetID    string `json:"target_id"`
}

// ActionOutcome is the stored session after an action and the entry it produced
type ActionOutcome struct {
	Session *combat.Session  `json:"session"`
	Entry   *combat.LogEntry `json:"entry"`
}

// RollNarrationInput contains narrator text carrying [DICE_ROLL:...] tags
type RollNarrationInput struct {
	EncounterID string `json:"encounter_id"`
	ActorID     string `json:"actor_id"`
	Text        string `json:"text"`
}

// NarrationOutcome holds one roll entry per tag and the prose with tags removed
type NarrationOutcome struct {
	Session   *combat.Session    `json:"session"`
	Entries   []*combat.LogEntry `json:"entries"`
	Narration string             `json:"narration"`
}

type service struct {
	repository    encounters.Repository
	resolver      *Resolver
	source        dice.Source
	uuidGenerator uuid.Generator
	bus           *events.Bus
	logger        *zap.Logger
	now           func() time.Time
	locks         *keyedMutex
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    encounters.Repository
	Resolver      *Resolver
	Source        dice.Source // defaults to the crypto source
	UUIDGenerator uuid.Generator
	Bus           *events.Bus
	Logger        *zap.Logger
	Clock         func() time.Time
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		resolver:      cfg.Resolver,
		source:        cfg.Source,
		uuidGenerator: cfg.UUIDGenerator,
		bus:           cfg.Bus,
		logger:        cfg.Logger,
		now:           cfg.Clock,
		locks:         newKeyedMutex(),
	}

	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.resolver == nil {
		svc.resolver = NewResolver(&ResolverConfig{Logger: svc.logger})
	}
	if svc.source == nil {
		svc.source = dice.NewCryptoSource()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.now == nil {
		svc.now = time.Now
	}

	return svc
}

// StartEncounter implements Service.StartEncounter
func (s *service) StartEncounter(ctx context.Context, input *StartEncounterInput) (*combat.Session, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	session, err := s.resolver.Start(s.uuidGenerator.New(), input.Combatants, s.source)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session.CreatedAt = now
	session.UpdatedAt = now

	if err := s.repository.Create(ctx, session); err != nil {
		return nil, dnderr.Wrap(err, "failed to save encounter")
	}

	s.logger.Info("encounter started",
		zap.String("encounter_id", session.ID),
		zap.Int("combatants", len(session.Combatants)))

	s.publish(events.NewEncounterStarted(session))
	if session.IsEnded() {
		s.publish(events.NewEncounterEnded(session))
	}

	return session, nil
}

// GetEncounter implements Service.GetEncounter
func (s *service) GetEncounter(ctx context.Context, encounterID string) (*combat.Session, error) {
	if encounterID == "" {
		return nil, dnderr.InvalidArgument("encounter ID is required")
	}
	return s.repository.Get(ctx, encounterID)
}

// SubmitAction implements Service.SubmitAction
func (s *service) SubmitAction(ctx context.Context, input *SubmitActionInput) (*ActionOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.EncounterID == "" {
		return nil, dnderr.InvalidArgument("encounter ID is required")
	}

	unlock := s.locks.Lock(input.EncounterID)
	defer unlock()

	session, err := s.repository.Get(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	next, entry, err := s.resolver.ResolveAction(session, input.ActorID, ActionRequest{
		ActionID: input.ActionID,
		TargetID: input.TargetID,
	}, s.source)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.publish(events.NewActionResolved(next, entry))
	if next.IsEnded() {
		s.logger.Info("encounter ended",
			zap.String("encounter_id", next.ID),
			zap.String("outcome", string(next.Outcome)),
			zap.Int("round", next.Round))
		s.publish(events.NewEncounterEnded(next))
	}

	return &ActionOutcome{Session: next, Entry: entry}, nil
}

// Flee implements Service.Flee
func (s *service) Flee(ctx context.Context, encounterID string) (*ActionOutcome, error) {
	if encounterID == "" {
		return nil, dnderr.InvalidArgument("encounter ID is required")
	}

	unlock := s.locks.Lock(encounterID)
	defer unlock()

	session, err := s.repository.Get(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	next, entry, err := s.resolver.Flee(session)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("encounter fled", zap.String("encounter_id", next.ID))
	s.publish(events.NewEncounterEnded(next))

	return &ActionOutcome{Session: next, Entry: entry}, nil
}

// RollNarration implements Service.RollNarration
func (s *service) RollNarration(ctx context.Context, input *RollNarrationInput) (*NarrationOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.EncounterID == "" {
		return nil, dnderr.InvalidArgument("encounter ID is required")
	}

	tags, err := dice.ParseActionTags(input.Text)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(input.EncounterID)
	defer unlock()

	session, err := s.repository.Get(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	outcome := &NarrationOutcome{
		Session:   session,
		Narration: dice.StripActionTags(input.Text),
	}
	if len(tags) == 0 {
		return outcome, nil
	}

	next := session
	for _, tag := range tags {
		var entry *combat.LogEntry
		next, entry, err = s.resolver.ResolveTag(next, input.ActorID, tag, s.source)
		if err != nil {
			return nil, err
		}
		outcome.Entries = append(outcome.Entries, entry)
	}

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	outcome.Session = next

	for _, entry := range outcome.Entries {
		s.publish(events.NewActionResolved(next, entry))
	}

	return outcome, nil
}

func (s *service) save(ctx context.Context, session *combat.Session) error {
	session.UpdatedAt = s.now()
	if err := s.repository.Update(ctx, session); err != nil {
		return dnderr.Wrap(err, "failed to save encounter")
	}
	return nil
}

// publish emits on the bus when one is configured. The session is already stored,
// so listener failures are logged rather than returned.
func (s *service) publish(event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(event); err != nil {
		s.logger.Warn("event listener failed",
			zap.String("event", string(event.GetType())),
			zap.Error(err))
	}
}
