package progression

//go:generate mockgen -destination=mock/mock_service.go -package=mockprogression -source=service.go

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/events"
)

// Service applies experience awards to characters
type Service interface {
	// AwardExperience returns the character with amount added and any level-ups applied.
	// The input character is never modified.
	AwardExperience(char *character.Character, amount int) (*Result, error)

	// Progress reports where a character sits on the experience table
	Progress(char *character.Character) *Progress
}

// Result is the outcome of an award. LevelUp is nil when no threshold was crossed.
type Result struct {
	Character *character.Character `json:"character"`
	LevelUp   *character.LevelUp   `json:"level_up,omitempty"`
}

// Progress is a read-only view for display
type Progress struct {
	Level       int  `json:"level"`
	Experience  int  `json:"experience"`
	NextLevelAt int  `json:"next_level_at,omitempty"`
	Remaining   int  `json:"remaining,omitempty"`
	MaxLevel    bool `json:"max_level"`
}

type service struct {
	catalog *rulebook.Catalog
	table   rulebook.ExperienceTable
	bus     *events.Bus
	logger  *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Catalog *rulebook.Catalog
	Table   rulebook.ExperienceTable // defaults to rulebook.DefaultExperienceTable
	Bus     *events.Bus              // optional
	Logger  *zap.Logger              // optional
}

// NewService creates a new progression service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Catalog == nil {
		panic("class catalog is required")
	}

	svc := &service{
		catalog: cfg.Catalog,
		table:   cfg.Table,
		bus:     cfg.Bus,
		logger:  cfg.Logger,
	}

	if svc.table == nil {
		svc.table = rulebook.DefaultExperienceTable
	}
	if !svc.table.Validate() {
		panic("experience table must start at 0 and strictly increase")
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

// AwardExperience implements Service.AwardExperience
func (s *service) AwardExperience(char *character.Character, amount int) (*Result, error) {
	if amount < 0 {
		return nil, dnderr.InvalidAmountf("experience award cannot be negative, got %d", amount)
	}
	if char == nil {
		return nil, dnderr.InvalidArgument("character is required")
	}
	if err := s.table.CheckLevel(char.Level, char.Experience); err != nil {
		return nil, dnderr.Wrapf(err, "character %s is off the experience table", char.ID)
	}

	next := char.Clone()
	next.Experience += amount

	result := &Result{Character: next}

	newLevel := s.table.LevelForExperience(next.Experience)
	if newLevel > char.Level {
		result.LevelUp = s.levelUp(next, char.Level, newLevel)
	}

	s.publish(events.NewExperienceAwarded(next, amount))
	if result.LevelUp != nil {
		s.logger.Info("character leveled up",
			zap.String("character_id", next.ID),
			zap.Int("old_level", result.LevelUp.OldLevel),
			zap.Int("new_level", result.LevelUp.NewLevel),
			zap.Int("hit_points_gained", result.LevelUp.HitPointsGained))
		s.publish(events.NewLeveledUp(next, result.LevelUp))
	}

	return result, nil
}

// levelUp mutates next from oldLevel to newLevel and describes the change
func (s *service) levelUp(next *character.Character, oldLevel, newLevel int) *character.LevelUp {
	conMod := next.Abilities.ConstitutionModifier()

	gained := 0
	for level := oldLevel + 1; level <= newLevel; level++ {
		gained += character.HitPointGain(next.HitDie, conMod)
	}

	next.Level = newLevel
	next.ProficiencyBonus = character.ProficiencyBonus(newLevel)
	next.MaxHitPoints += gained
	next.HitPoints = min(next.HitPoints+gained, next.MaxHitPoints)

	levelUp := &character.LevelUp{
		CharacterID:      next.ID,
		OldLevel:         oldLevel,
		NewLevel:         newLevel,
		HitPointsGained:  gained,
		ProficiencyBonus: next.ProficiencyBonus,
	}

	class, ok := s.catalog.Get(next.ClassKey)
	if !ok {
		s.logger.Debug("no class unlocks", zap.String("class_key", next.ClassKey))
		return levelUp
	}

	features, spells := class.UnlocksThrough(newLevel)
	levelUp.NewFeatures = next.UnlockFeatures(features...)
	levelUp.NewSpells = next.UnlockSpells(spells...)

	return levelUp
}

// Progress implements Service.Progress
func (s *service) Progress(char *character.Character) *Progress {
	if char == nil {
		return nil
	}

	p := &Progress{
		Level:      char.Level,
		Experience: char.Experience,
	}
	next, ok := s.table.NextThreshold(char.Level)
	if !ok {
		p.MaxLevel = true
		return p
	}
	p.NextLevelAt = next
	p.Remaining = max(0, next-char.Experience)
	return p
}

// publish emits on the bus when one is configured. Listener failures are logged
// and do not undo the award.
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
