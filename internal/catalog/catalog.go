package catalog

import (
	"context"
	"errors"
)

var (
	ErrLineaNotFound     = errors.New("linea de intervencion not found")
	ErrRegionNotFound    = errors.New("region not found")
	ErrProvinciaNotFound = errors.New("provincia not found")
)

type Region struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type Provincia struct {
	ID       int64  `json:"id"`
	RegionID int64  `json:"region_id"`
	Nombre   string `json:"nombre"`
}

type Comuna struct {
	ID          int64  `json:"id"`
	ProvinciaID int64  `json:"provincia_id"`
	Nombre      string `json:"nombre"`
}

type LineaIntervencion struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type Repository interface {
	SeedCatalog(ctx context.Context, seed Seed) error
	ListRegiones(ctx context.Context) ([]Region, error)
	ListProvincias(ctx context.Context, regionID int64) ([]Provincia, error)
	ListComunas(ctx context.Context, provinciaID int64) ([]Comuna, error)
	ListLineas(ctx context.Context) ([]LineaIntervencion, error)
	LineaExists(ctx context.Context, lineaID int64) (bool, error)
	RegionExists(ctx context.Context, regionID int64) (bool, error)
	ProvinciaExists(ctx context.Context, provinciaID int64) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Regiones(ctx context.Context) ([]Region, error) {
	return s.repo.ListRegiones(ctx)
}

func (s *Service) Provincias(ctx context.Context, regionID int64) ([]Provincia, error) {
	found, err := s.repo.RegionExists(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRegionNotFound
	}
	return s.repo.ListProvincias(ctx, regionID)
}

func (s *Service) Comunas(ctx context.Context, provinciaID int64) ([]Comuna, error) {
	found, err := s.repo.ProvinciaExists(ctx, provinciaID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProvinciaNotFound
	}
	return s.repo.ListComunas(ctx, provinciaID)
}

func (s *Service) Lineas(ctx context.Context) ([]LineaIntervencion, error) {
	return s.repo.ListLineas(ctx)
}

func (s *Service) LineaExists(ctx context.Context, lineaID int64) (bool, error) {
	return s.repo.LineaExists(ctx, lineaID)
}
