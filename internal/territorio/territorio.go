package territorio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casos-nna/internal/validation"
)

var (
	ErrTerritorioNotFound  = errors.New("territorio not found")
	ErrInstitucionNotFound = errors.New("institucion not found")

	// ErrSinCupos means the conditional slot decrement matched zero rows:
	// the territory has no capacity left.
	ErrSinCupos = errors.New("territorio sin cupos disponibles")
)

// Territorio is a geographic service area with a slot budget. The id lists
// are stored serialized as JSON arrays in single columns.
type Territorio struct {
	ID               int64   `json:"id"`
	Nombre           string  `json:"nombre"`
	Codigo           string  `json:"codigo"`
	RegionIDs        []int64 `json:"region_ids"`
	ProvinciaIDs     []int64 `json:"provincia_ids"`
	ComunaIDs        []int64 `json:"comuna_ids"`
	LineaID          int64   `json:"linea_id"`
	Cupo1            int     `json:"cupo_1"`
	Cupo2            int     `json:"cupo_2"`
	CupoTotal        int     `json:"cupo_total"`
	CuposDisponibles int     `json:"cupos_disponibles"`
}

type Institucion struct {
	ID                 int64  `json:"id"`
	Nombre             string `json:"nombre"`
	Rut                string `json:"rut"`
	Email              string `json:"email"`
	Telefono           string `json:"telefono"`
	TerritorioID       int64  `json:"territorio_id"`
	InicioConvocatoria string `json:"inicio_convocatoria"`
	FinConvocatoria    string `json:"fin_convocatoria"`
}

type Repository interface {
	CreateTerritorio(ctx context.Context, territorio Territorio) (Territorio, error)
	ListTerritorios(ctx context.Context) ([]Territorio, error)
	GetTerritorio(ctx context.Context, territorioID int64) (Territorio, error)
	CreateInstitucion(ctx context.Context, institucion Institucion) (Institucion, error)
	ListInstituciones(ctx context.Context) ([]Institucion, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CrearTerritorio(ctx context.Context, territorio Territorio) (Territorio, error) {
	verr := validation.New()

	territorio.Nombre = strings.TrimSpace(territorio.Nombre)
	if territorio.Nombre == "" {
		verr.Add("nombre", "es obligatorio")
	}
	territorio.Codigo = strings.TrimSpace(territorio.Codigo)
	if territorio.Codigo == "" {
		verr.Add("codigo", "es obligatorio")
	}
	if territorio.LineaID <= 0 {
		verr.Add("linea_id", "es obligatorio")
	}
	if territorio.Cupo1 < 0 {
		verr.Add("cupo_1", "debe ser mayor o igual a cero")
	}
	if territorio.Cupo2 < 0 {
		verr.Add("cupo_2", "debe ser mayor o igual a cero")
	}
	for _, pair := range []struct {
		field string
		ids   []int64
	}{
		{"region_ids", territorio.RegionIDs},
		{"provincia_ids", territorio.ProvinciaIDs},
		{"comuna_ids", territorio.ComunaIDs},
	} {
		for _, id := range pair.ids {
			if id <= 0 {
				verr.Add(pair.field, fmt.Sprintf("contiene un id invalido: %d", id))
				break
			}
		}
	}

	if err := verr.Err(); err != nil {
		return Territorio{}, err
	}

	territorio.CupoTotal = territorio.Cupo1 + territorio.Cupo2
	territorio.CuposDisponibles = territorio.CupoTotal
	return s.repo.CreateTerritorio(ctx, territorio)
}

func (s *Service) ListarTerritorios(ctx context.Context) ([]Territorio, error) {
	return s.repo.ListTerritorios(ctx)
}

func (s *Service) ObtenerTerritorio(ctx context.Context, territorioID int64) (Territorio, error) {
	return s.repo.GetTerritorio(ctx, territorioID)
}

func (s *Service) CrearInstitucion(ctx context.Context, institucion Institucion) (Institucion, error) {
	verr := validation.New()

	institucion.Nombre = strings.TrimSpace(institucion.Nombre)
	if institucion.Nombre == "" {
		verr.Add("nombre", "es obligatorio")
	}
	institucion.Rut = strings.TrimSpace(institucion.Rut)
	if institucion.Rut == "" {
		verr.Add("rut", "es obligatorio")
	}
	if institucion.TerritorioID <= 0 {
		verr.Add("territorio_id", "es obligatorio")
	} else {
		if _, err := s.repo.GetTerritorio(ctx, institucion.TerritorioID); err != nil {
			if errors.Is(err, ErrTerritorioNotFound) {
				verr.Add("territorio_id", "no existe")
			} else {
				return Institucion{}, err
			}
		}
	}

	if err := verr.Err(); err != nil {
		return Institucion{}, err
	}

	return s.repo.CreateInstitucion(ctx, institucion)
}

func (s *Service) ListarInstituciones(ctx context.Context) ([]Institucion, error) {
	return s.repo.ListInstituciones(ctx)
}
