package services

import (
	"context"
	"fmt"

	"drying-engine/internal/catalog"
	"drying-engine/internal/config"
	"drying-engine/internal/repository"
)

// CatalogSource produces a fresh equipment catalog on demand
type CatalogSource interface {
	Name() string
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// ReferenceSource serves the built-in equipment set
type ReferenceSource struct{}

func (ReferenceSource) Name() string { return config.CatalogReference }

func (ReferenceSource) Load(context.Context) (*catalog.Catalog, error) {
	return catalog.Reference(), nil
}

// FileSource reads a YAML or JSON catalog document on every load
type FileSource struct {
	Path string
}

func (FileSource) Name() string { return config.CatalogFile }

func (s FileSource) Load(context.Context) (*catalog.Catalog, error) {
	return catalog.LoadFile(s.Path)
}

// RepositorySource reads the equipment_catalog table
type RepositorySource struct {
	Repo repository.CatalogRepository
}

func (RepositorySource) Name() string { return config.CatalogPostgres }

func (s RepositorySource) Load(ctx context.Context) (*catalog.Catalog, error) {
	specs, err := s.Repo.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("equipment_catalog table is empty, run migrate with -seed")
	}
	return catalog.New(specs)
}
