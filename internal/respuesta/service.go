package respuesta

import (
	"context"
	"fmt"
	"strings"

	"casos-nna/internal/plan"
	"casos-nna/internal/validation"
)

type Repository interface {
	UpsertRespuestas(ctx context.Context, nnaID, evaluacionID int64, items []Item) error
	ListEstadoPorNna(ctx context.Context, nnaID int64) ([]EstadoEvaluacion, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GuardarRespuestas upserts one row per item keyed on (nna, evaluacion,
// pregunta, subpregunta). Resubmitting overwrites tipo and valor. The batch
// does not verify that each pregunta belongs to the evaluación; stray rows
// stay inert because read paths join through the evaluación's own preguntas.
func (s *Service) GuardarRespuestas(ctx context.Context, nnaID, evaluacionID int64, items []Item) error {
	verr := validation.New()
	if nnaID <= 0 {
		verr.Add("nna_id", "es obligatorio")
	}
	if evaluacionID <= 0 {
		verr.Add("evaluacion_id", "es obligatorio")
	}
	if len(items) == 0 {
		verr.Add("respuestas", "se requiere al menos una respuesta")
	}

	for idx := range items {
		item := &items[idx]
		prefix := fmt.Sprintf("respuestas.%d", idx)
		if item.PreguntaID <= 0 {
			verr.Add(prefix+".pregunta_id", "es obligatorio")
		}
		item.Tipo = strings.TrimSpace(item.Tipo)
		if item.Tipo != "" && !plan.TipoValido(item.Tipo) {
			verr.Add(prefix+".tipo", "no es un tipo de respuesta valido")
		}
	}

	if err := verr.Err(); err != nil {
		return err
	}

	return s.repo.UpsertRespuestas(ctx, nnaID, evaluacionID, items)
}

// EstadoPorNna reports per-evaluación completion for one subject across every
// evaluación in the system.
func (s *Service) EstadoPorNna(ctx context.Context, nnaID int64) ([]EstadoEvaluacion, error) {
	return s.repo.ListEstadoPorNna(ctx, nnaID)
}
