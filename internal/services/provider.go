package services

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/rulebook"
	"github.com/KirkDiggler/tabletop-engine/internal/events"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/characters"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/encounters"
	characterService "github.com/KirkDiggler/tabletop-engine/internal/services/character"
	encounterService "github.com/KirkDiggler/tabletop-engine/internal/services/encounter"
	"github.com/KirkDiggler/tabletop-engine/internal/services/progression"
	"github.com/KirkDiggler/tabletop-engine/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	Bus                *events.Bus
	Catalog            *rulebook.Catalog
	ProgressionService progression.Service
	CharacterService   characterService.Service
	EncounterService   encounterService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	EncounterRepository encounters.Repository
	Catalog             *rulebook.Catalog
	Source              dice.Source
	UUIDGenerator       uuid.Generator
	Logger              *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Use in-memory repositories if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	encounterRepo := cfg.EncounterRepository
	if encounterRepo == nil {
		encounterRepo = encounters.NewInMemoryRepository()
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = rulebook.DefaultCatalog()
	}

	bus := events.NewBus(logger)

	progressionSvc := progression.NewService(&progression.ServiceConfig{
		Catalog: catalog,
		Bus:     bus,
		Logger:  logger.Named("progression"),
	})

	// The character service subscribes encounter write-back on the bus
	charSvc := characterService.NewService(&characterService.ServiceConfig{
		Repository:    charRepo,
		Progression:   progressionSvc,
		Catalog:       catalog,
		UUIDGenerator: cfg.UUIDGenerator,
		Bus:           bus,
		Logger:        logger.Named("characters"),
	})

	encSvc := encounterService.NewService(&encounterService.ServiceConfig{
		Repository:    encounterRepo,
		Source:        cfg.Source,
		UUIDGenerator: cfg.UUIDGenerator,
		Bus:           bus,
		Logger:        logger.Named("encounters"),
	})

	return &Provider{
		Bus:                bus,
		Catalog:            catalog,
		ProgressionService: progressionSvc,
		CharacterService:   charSvc,
		EncounterService:   encSvc,
	}
}
