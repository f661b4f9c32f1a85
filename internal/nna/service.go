package nna

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"casos-nna/internal/validation"
)

type CuidadorInput struct {
	Nombres    string `json:"nombres"`
	Rut        string `json:"rut"`
	Parentesco string `json:"parentesco"`
}

type AsplInput struct {
	Nombres string `json:"nombres"`
	Recinto string `json:"recinto"`
}

type RegistrarInput struct {
	Nombres         string         `json:"nombres"`
	Apellidos       string         `json:"apellidos"`
	Rut             string         `json:"rut"`
	FechaNacimiento string         `json:"fecha_nacimiento"`
	ComunaID        int64          `json:"comuna_id"`
	TerritorioID    int64          `json:"territorio_id"`
	LineaID         int64          `json:"linea_id"`
	Cuidador        *CuidadorInput `json:"cuidador"`
	Aspl            *AsplInput     `json:"aspl"`
}

// Repository persists registration as one transaction: consume a territory
// slot, then insert the nna with its optional cuidador and aspl. A failed
// slot decrement surfaces territorio.ErrSinCupos and nothing persists.
type Repository interface {
	RegistrarNna(ctx context.Context, subject Nna, cuidador *Cuidador, aspl *Aspl) (Ficha, error)
	GetFicha(ctx context.Context, nnaID int64) (Ficha, error)
	DeleteNna(ctx context.Context, nnaID int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Registrar(ctx context.Context, input RegistrarInput) (Ficha, error) {
	verr := validation.New()

	input.Nombres = strings.TrimSpace(input.Nombres)
	if input.Nombres == "" {
		verr.Add("nombres", "es obligatorio")
	}
	input.Apellidos = strings.TrimSpace(input.Apellidos)
	if input.Apellidos == "" {
		verr.Add("apellidos", "es obligatorio")
	}
	if input.TerritorioID <= 0 {
		verr.Add("territorio_id", "es obligatorio")
	}
	if input.LineaID <= 0 {
		verr.Add("linea_id", "es obligatorio")
	}
	if input.FechaNacimiento != "" {
		if _, err := time.Parse("2006-01-02", input.FechaNacimiento); err != nil {
			verr.Add("fecha_nacimiento", "debe tener formato AAAA-MM-DD")
		}
	}
	if input.Cuidador != nil && strings.TrimSpace(input.Cuidador.Nombres) == "" {
		verr.Add("cuidador.nombres", "es obligatorio")
	}
	if input.Aspl != nil && strings.TrimSpace(input.Aspl.Nombres) == "" {
		verr.Add("aspl.nombres", "es obligatorio")
	}

	if err := verr.Err(); err != nil {
		return Ficha{}, err
	}

	subject := Nna{
		Folio:           uuid.NewString(),
		Nombres:         input.Nombres,
		Apellidos:       input.Apellidos,
		Rut:             strings.TrimSpace(input.Rut),
		FechaNacimiento: input.FechaNacimiento,
		ComunaID:        input.ComunaID,
		TerritorioID:    input.TerritorioID,
		LineaID:         input.LineaID,
	}

	var cuidador *Cuidador
	if input.Cuidador != nil {
		cuidador = &Cuidador{
			Nombres:    strings.TrimSpace(input.Cuidador.Nombres),
			Rut:        strings.TrimSpace(input.Cuidador.Rut),
			Parentesco: strings.TrimSpace(input.Cuidador.Parentesco),
		}
	}
	var aspl *Aspl
	if input.Aspl != nil {
		aspl = &Aspl{
			Nombres: strings.TrimSpace(input.Aspl.Nombres),
			Recinto: strings.TrimSpace(input.Aspl.Recinto),
		}
	}

	return s.repo.RegistrarNna(ctx, subject, cuidador, aspl)
}

func (s *Service) Obtener(ctx context.Context, nnaID int64) (Ficha, error) {
	return s.repo.GetFicha(ctx, nnaID)
}

func (s *Service) Eliminar(ctx context.Context, nnaID int64) error {
	return s.repo.DeleteNna(ctx, nnaID)
}
