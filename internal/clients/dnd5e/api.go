package dnd5e

//go:generate mockgen -destination=mock/mock_api.go -package=mockdnd5e -source=api.go

import (
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

// API is the part of the dnd5e-api client the class loader needs
type API interface {
	GetClass(key string) (*apiEntities.Class, error)
	GetClassLevel(key string, level int) (*apiEntities.Level, error)
}
