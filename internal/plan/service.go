package plan

import (
	"context"
	"fmt"
	"strings"

	"casos-nna/internal/validation"
)

const maxNombreLen = 255

type CrearPreguntaInput struct {
	Texto string `json:"pregunta"`
}

type CrearEvaluacionInput struct {
	Nombre    string               `json:"nombre"`
	Preguntas []CrearPreguntaInput `json:"preguntas"`
}

type CrearPlanInput struct {
	Nombre       string                 `json:"nombre"`
	Descripcion  string                 `json:"descripcion"`
	LineaID      int64                  `json:"linea_id"`
	Evaluaciones []CrearEvaluacionInput `json:"evaluaciones"`
}

type RegistrarOpcionInput struct {
	Etiqueta string `json:"etiqueta"`
	Valor    string `json:"valor"`
}

type RegistrarSubpreguntaInput struct {
	Texto          string   `json:"texto"`
	OpcionesLikert []string `json:"opciones_likert"`
}

type RegistrarRespuestaInput struct {
	Tipo         string                      `json:"tipo"`
	Opciones     []RegistrarOpcionInput      `json:"opciones"`
	Subpreguntas []RegistrarSubpreguntaInput `json:"subpreguntas"`
}

type Repository interface {
	CreatePlan(ctx context.Context, input CrearPlanInput) (PlanTree, error)
	ListPlanes(ctx context.Context) ([]Plan, error)
	GetPlan(ctx context.Context, planID int64) (Plan, error)
	DeletePlan(ctx context.Context, planID int64) error
	GetDetalleEvaluacion(ctx context.Context, evaluacionID int64) (DetalleEvaluacion, error)
	ListEvaluacionesPendientes(ctx context.Context, planID int64) ([]Evaluacion, error)
	CreateRespuesta(ctx context.Context, preguntaID int64, input RegistrarRespuestaInput) (RespuestaTree, error)
}

// LineaCatalog resolves línea references during validation.
type LineaCatalog interface {
	LineaExists(ctx context.Context, lineaID int64) (bool, error)
}

type Service struct {
	repo   Repository
	lineas LineaCatalog
}

func NewService(repo Repository, lineas LineaCatalog) *Service {
	return &Service{repo: repo, lineas: lineas}
}

// CrearPlan validates the whole nested payload before any write. The
// repository performs the plan→evaluaciones→preguntas create in one
// transaction, so a failure there leaves no partial rows either.
func (s *Service) CrearPlan(ctx context.Context, input CrearPlanInput) (PlanTree, error) {
	verr := validation.New()

	input.Nombre = strings.TrimSpace(input.Nombre)
	if input.Nombre == "" {
		verr.Add("nombre", "es obligatorio")
	} else if len(input.Nombre) > maxNombreLen {
		verr.Add("nombre", fmt.Sprintf("no puede superar %d caracteres", maxNombreLen))
	}

	if input.LineaID <= 0 {
		verr.Add("linea_id", "es obligatorio")
	} else {
		found, err := s.lineas.LineaExists(ctx, input.LineaID)
		if err != nil {
			return PlanTree{}, err
		}
		if !found {
			verr.Add("linea_id", "no existe en el catalogo de lineas")
		}
	}

	if len(input.Evaluaciones) == 0 {
		verr.Add("evaluaciones", "se requiere al menos una evaluacion")
	}
	for idx := range input.Evaluaciones {
		evaluacion := &input.Evaluaciones[idx]
		prefix := fmt.Sprintf("evaluaciones.%d", idx)

		evaluacion.Nombre = strings.TrimSpace(evaluacion.Nombre)
		if evaluacion.Nombre == "" {
			verr.Add(prefix+".nombre", "es obligatorio")
		}
		if len(evaluacion.Preguntas) == 0 {
			verr.Add(prefix+".preguntas", "se requiere al menos una pregunta")
		}
		for pidx := range evaluacion.Preguntas {
			pregunta := &evaluacion.Preguntas[pidx]
			pregunta.Texto = strings.TrimSpace(pregunta.Texto)
			if pregunta.Texto == "" {
				verr.Add(fmt.Sprintf("%s.preguntas.%d.pregunta", prefix, pidx), "es obligatoria")
			}
		}
	}

	if err := verr.Err(); err != nil {
		return PlanTree{}, err
	}

	return s.repo.CreatePlan(ctx, input)
}

func (s *Service) ListarPlanes(ctx context.Context) ([]Plan, error) {
	return s.repo.ListPlanes(ctx)
}

func (s *Service) ObtenerPlan(ctx context.Context, planID int64) (Plan, error) {
	return s.repo.GetPlan(ctx, planID)
}

func (s *Service) EliminarPlan(ctx context.Context, planID int64) error {
	return s.repo.DeletePlan(ctx, planID)
}

func (s *Service) DetalleEvaluacion(ctx context.Context, evaluacionID int64) (DetalleEvaluacion, error) {
	return s.repo.GetDetalleEvaluacion(ctx, evaluacionID)
}

// EvaluacionesPendientes lists the evaluaciones of a plan whose preguntas
// have no RespuestaNna rows at all.
func (s *Service) EvaluacionesPendientes(ctx context.Context, planID int64) ([]Evaluacion, error) {
	return s.repo.ListEvaluacionesPendientes(ctx, planID)
}

// RegistrarRespuesta attaches the answer definition (tipo plus option or
// likert catalog) to a pregunta. Scoring references resolve against the rows
// created here.
func (s *Service) RegistrarRespuesta(ctx context.Context, preguntaID int64, input RegistrarRespuestaInput) (RespuestaTree, error) {
	verr := validation.New()

	input.Tipo = strings.TrimSpace(input.Tipo)
	if input.Tipo == "" {
		verr.Add("tipo", "es obligatorio")
	} else if !TipoValido(input.Tipo) {
		verr.Add("tipo", "no es un tipo de respuesta valido")
	}

	if input.Tipo == TipoLikert && len(input.Subpreguntas) == 0 {
		verr.Add("subpreguntas", "se requiere al menos una subpregunta para tipo likert")
	}

	for idx := range input.Opciones {
		opcion := &input.Opciones[idx]
		opcion.Etiqueta = strings.TrimSpace(opcion.Etiqueta)
		if opcion.Etiqueta == "" {
			verr.Add(fmt.Sprintf("opciones.%d.etiqueta", idx), "es obligatoria")
		}
	}
	for idx := range input.Subpreguntas {
		subpregunta := &input.Subpreguntas[idx]
		subpregunta.Texto = strings.TrimSpace(subpregunta.Texto)
		if subpregunta.Texto == "" {
			verr.Add(fmt.Sprintf("subpreguntas.%d.texto", idx), "es obligatorio")
		}
		if len(subpregunta.OpcionesLikert) == 0 {
			verr.Add(fmt.Sprintf("subpreguntas.%d.opciones_likert", idx), "se requiere al menos una opcion")
		}
	}

	if err := verr.Err(); err != nil {
		return RespuestaTree{}, err
	}

	return s.repo.CreateRespuesta(ctx, preguntaID, input)
}
