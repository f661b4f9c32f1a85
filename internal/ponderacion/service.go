package ponderacion

import (
	"context"
	"fmt"
	"strings"

	"casos-nna/internal/validation"
)

const maxRespuestaCorrectaLen = 500

type GuardarInput struct {
	PlanID       int64     `json:"plan_id"`
	EvaluacionID int64     `json:"evaluacion_id"`
	UserID       int64     `json:"-"`
	Detalles     []Detalle `json:"detalles"`
}

type Repository interface {
	CreatePonderacion(ctx context.Context, header Ponderacion, detalles []Detalle) (Ponderacion, []Detalle, error)
	ListReporte(ctx context.Context) ([]ReportePonderacion, error)
}

// Catalogo resolves the reference targets a detalle may point at. Every
// lookup happens before the write transaction starts.
type Catalogo interface {
	PlanExists(ctx context.Context, planID int64) (bool, error)
	EvaluacionExists(ctx context.Context, evaluacionID int64) (bool, error)
	PreguntaExists(ctx context.Context, preguntaID int64) (bool, error)
	OpcionExists(ctx context.Context, opcionID int64) (bool, error)
	SubpreguntaExists(ctx context.Context, subpreguntaID int64) (bool, error)
	OpcionLikertExists(ctx context.Context, opcionLikertID int64) (bool, error)
}

type Service struct {
	repo     Repository
	catalogo Catalogo
}

func NewService(repo Repository, catalogo Catalogo) *Service {
	return &Service{repo: repo, catalogo: catalogo}
}

// Guardar validates every detalle (rules keyed by tipo), normalizes the rows
// and writes header plus detalles in one transaction. Any validation failure
// rejects the whole submission before anything is persisted.
func (s *Service) Guardar(ctx context.Context, input GuardarInput) (Ponderacion, []Detalle, error) {
	verr := validation.New()

	if input.PlanID <= 0 {
		verr.Add("plan_id", "es obligatorio")
	} else if err := s.checkExists(ctx, verr, "plan_id", input.PlanID, s.catalogo.PlanExists, "no existe"); err != nil {
		return Ponderacion{}, nil, err
	}

	if input.EvaluacionID <= 0 {
		verr.Add("evaluacion_id", "es obligatorio")
	} else if err := s.checkExists(ctx, verr, "evaluacion_id", input.EvaluacionID, s.catalogo.EvaluacionExists, "no existe"); err != nil {
		return Ponderacion{}, nil, err
	}

	if len(input.Detalles) == 0 {
		verr.Add("detalles", "se requiere al menos un detalle")
	}

	for idx := range input.Detalles {
		if err := s.validarDetalle(ctx, verr, idx, &input.Detalles[idx]); err != nil {
			return Ponderacion{}, nil, err
		}
	}

	if err := verr.Err(); err != nil {
		return Ponderacion{}, nil, err
	}

	for idx := range input.Detalles {
		input.Detalles[idx].Normalizar()
	}

	header := Ponderacion{
		PlanID:       input.PlanID,
		EvaluacionID: input.EvaluacionID,
		UserID:       input.UserID,
	}
	return s.repo.CreatePonderacion(ctx, header, input.Detalles)
}

func (s *Service) Reporte(ctx context.Context) ([]ReportePonderacion, error) {
	return s.repo.ListReporte(ctx)
}

func (s *Service) validarDetalle(ctx context.Context, verr *validation.Error, idx int, detalle *Detalle) error {
	prefix := fmt.Sprintf("detalles.%d", idx)

	if detalle.PreguntaID <= 0 {
		verr.Add(prefix+".pregunta_id", "es obligatorio")
	} else if err := s.checkExists(ctx, verr, prefix+".pregunta_id", detalle.PreguntaID, s.catalogo.PreguntaExists, "no existe"); err != nil {
		return err
	}

	detalle.Tipo = strings.TrimSpace(detalle.Tipo)
	rules, conocido := reglasPorTipo[detalle.Tipo]
	if !conocido {
		verr.Add(prefix+".tipo", "no es un tipo de respuesta valido")
		return nil
	}

	if detalle.Valor == nil {
		verr.Add(prefix+".valor", "es obligatorio")
	} else if *detalle.Valor < 0 {
		verr.Add(prefix+".valor", "debe ser mayor o igual a cero")
	}

	if rules.textoCorrecto {
		if detalle.RespuestaCorrecta == nil || strings.TrimSpace(*detalle.RespuestaCorrecta) == "" {
			verr.Add(prefix+".respuesta_correcta", "es obligatoria para tipo "+detalle.Tipo)
		} else if len(*detalle.RespuestaCorrecta) > maxRespuestaCorrectaLen {
			verr.Add(prefix+".respuesta_correcta", fmt.Sprintf("no puede superar %d caracteres", maxRespuestaCorrectaLen))
		}
	}

	if rules.referenciaOpcion {
		if detalle.RespuestaCorrectaID == nil {
			verr.Add(prefix+".respuesta_correcta_id", "es obligatorio para tipo "+detalle.Tipo)
		} else if err := s.checkExists(ctx, verr, prefix+".respuesta_correcta_id", *detalle.RespuestaCorrectaID, s.catalogo.OpcionExists, "no existe en el catalogo de opciones"); err != nil {
			return err
		}
	}

	if rules.referenciaLikert {
		if detalle.RespuestaCorrectaID == nil {
			verr.Add(prefix+".respuesta_correcta_id", "es obligatorio para tipo "+detalle.Tipo)
		} else if err := s.checkExists(ctx, verr, prefix+".respuesta_correcta_id", *detalle.RespuestaCorrectaID, s.catalogo.OpcionLikertExists, "no existe en el catalogo de opciones likert"); err != nil {
			return err
		}
	}

	if rules.subpreguntaInvolv {
		if detalle.SubpreguntaID == nil {
			verr.Add(prefix+".subpregunta_id", "es obligatorio para tipo "+detalle.Tipo)
		} else if err := s.checkExists(ctx, verr, prefix+".subpregunta_id", *detalle.SubpreguntaID, s.catalogo.SubpreguntaExists, "no existe en el catalogo de subpreguntas"); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) checkExists(ctx context.Context, verr *validation.Error, field string, id int64, lookup func(context.Context, int64) (bool, error), message string) error {
	found, err := lookup(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		verr.Add(field, message)
	}
	return nil
}
