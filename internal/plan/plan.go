package plan

import "errors"

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrEvaluacionNotFound = errors.New("evaluacion not found")
	ErrPreguntaNotFound   = errors.New("pregunta not found")
)

// Tipos de respuesta soportados. Cada tipo cambia qué campos exige una
// ponderación y contra qué catálogo se resuelve su respuesta correcta.
const (
	TipoTexto               = "texto"
	TipoNumero              = "numero"
	TipoBarraSatisfaccion   = "barra_satisfaccion"
	TipoSiNo                = "si_no"
	TipoSiNoNoEstoySeguro   = "si_no_noestoyseguro"
	TipoCincoEmojis         = "5emojis"
	TipoOpcionPersonalizada = "opcion_personalizada"
	TipoLikert              = "likert"
)

var tiposValidos = map[string]bool{
	TipoTexto:               true,
	TipoNumero:              true,
	TipoBarraSatisfaccion:   true,
	TipoSiNo:                true,
	TipoSiNoNoEstoySeguro:   true,
	TipoCincoEmojis:         true,
	TipoOpcionPersonalizada: true,
	TipoLikert:              true,
}

func TipoValido(tipo string) bool {
	return tiposValidos[tipo]
}

type Plan struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	LineaID     int64  `json:"linea_id"`
}

type Evaluacion struct {
	ID     int64  `json:"id"`
	PlanID int64  `json:"plan_id"`
	Nombre string `json:"nombre"`
}

type Pregunta struct {
	ID           int64  `json:"id"`
	EvaluacionID int64  `json:"evaluacion_id"`
	Texto        string `json:"pregunta"`
}

// Respuesta is the answer definition registered against a pregunta. Opciones
// and subpreguntas hang off it, so a pregunta without a registered respuesta
// exposes an empty catalog.
type Respuesta struct {
	ID         int64  `json:"id"`
	PreguntaID int64  `json:"pregunta_id"`
	Tipo       string `json:"tipo"`
}

type Opcion struct {
	ID          int64  `json:"id"`
	RespuestaID int64  `json:"respuesta_id"`
	Etiqueta    string `json:"etiqueta"`
	Valor       string `json:"valor"`
}

type Subpregunta struct {
	ID          int64  `json:"id"`
	RespuestaID int64  `json:"respuesta_id"`
	Texto       string `json:"texto"`
}

type OpcionLikert struct {
	ID            int64  `json:"id"`
	SubpreguntaID int64  `json:"subpregunta_id"`
	Etiqueta      string `json:"etiqueta"`
}

// PlanTree is the persisted result of a nested create.
type PlanTree struct {
	Plan
	Evaluaciones []EvaluacionTree `json:"evaluaciones"`
}

type EvaluacionTree struct {
	Evaluacion
	Preguntas []Pregunta `json:"preguntas"`
}

// RespuestaTree is the persisted answer definition with its catalog entries.
type RespuestaTree struct {
	Respuesta
	Opciones     []Opcion          `json:"opciones,omitempty"`
	Subpreguntas []SubpreguntaTree `json:"subpreguntas,omitempty"`
}

type SubpreguntaTree struct {
	Subpregunta
	OpcionesLikert []OpcionLikert `json:"opciones_likert"`
}

// DetalleEvaluacion is the read model for one evaluación: owning plan and
// línea names plus the per-pregunta catalog reachable through registered
// respuestas.
type DetalleEvaluacion struct {
	Evaluacion
	PlanNombre      string            `json:"plan_nombre"`
	PlanDescripcion string            `json:"plan_descripcion"`
	LineaNombre     string            `json:"linea_nombre"`
	Preguntas       []DetallePregunta `json:"preguntas"`
}

type DetallePregunta struct {
	Pregunta
	Tipo         *string           `json:"tipo"`
	Opciones     []Opcion          `json:"opciones"`
	Subpreguntas []SubpreguntaTree `json:"subpreguntas"`
}
