package ponderacion

import (
	"errors"

	"casos-nna/internal/plan"
)

var ErrPonderacionNotFound = errors.New("ponderacion not found")

// Ponderacion is one scoring pass over one evaluación, stamped with the
// acting user.
type Ponderacion struct {
	ID           int64 `json:"id"`
	PlanID       int64 `json:"plan_id"`
	EvaluacionID int64 `json:"evaluacion_id"`
	UserID       int64 `json:"user_id"`
}

// Detalle assigns a point value and a correct-answer reference to one
// pregunta. Which fields are meaningful depends on the tipo; Normalizar
// blanks the rest before persistence.
type Detalle struct {
	ID                  int64    `json:"id"`
	PonderacionID       int64    `json:"ponderacion_id"`
	PreguntaID          int64    `json:"pregunta_id"`
	SubpreguntaID       *int64   `json:"subpregunta_id"`
	Tipo                string   `json:"tipo"`
	Valor               *float64 `json:"valor"`
	RespuestaCorrecta   *string  `json:"respuesta_correcta"`
	RespuestaCorrectaID *int64   `json:"respuesta_correcta_id"`
}

// regla captures what one tipo requires beyond the always-mandatory valor.
// The rule table keeps the per-tipo differences in one place instead of
// scattering tipo checks across the write path.
type regla struct {
	textoCorrecto     bool // respuesta_correcta free text required
	referenciaOpcion  bool // respuesta_correcta_id resolves in opciones
	referenciaLikert  bool // respuesta_correcta_id resolves in opciones_likert
	subpreguntaInvolv bool // subpregunta_id required, resolves in subpreguntas
}

var reglasPorTipo = map[string]regla{
	plan.TipoTexto:               {textoCorrecto: true},
	plan.TipoNumero:              {},
	plan.TipoBarraSatisfaccion:   {},
	plan.TipoSiNo:                {referenciaOpcion: true},
	plan.TipoSiNoNoEstoySeguro:   {referenciaOpcion: true},
	plan.TipoCincoEmojis:         {referenciaOpcion: true},
	plan.TipoOpcionPersonalizada: {referenciaOpcion: true},
	plan.TipoLikert:              {referenciaLikert: true, subpreguntaInvolv: true},
}

// Normalizar forces the fields a tipo does not use to nil so a stored row
// never carries stray client-supplied values.
func (d *Detalle) Normalizar() {
	rules, ok := reglasPorTipo[d.Tipo]
	if !ok {
		return
	}
	if !rules.textoCorrecto {
		d.RespuestaCorrecta = nil
	}
	if !rules.referenciaOpcion && !rules.referenciaLikert {
		d.RespuestaCorrectaID = nil
	}
	if !rules.subpreguntaInvolv {
		d.SubpreguntaID = nil
	}
}

// ReportePonderacion is the read model of a scoring pass: evaluación name,
// aggregate puntos and resolved per-detalle labels.
type ReportePonderacion struct {
	ID               int64            `json:"id"`
	PlanID           int64            `json:"plan_id"`
	EvaluacionID     int64            `json:"evaluacion_id"`
	EvaluacionNombre string           `json:"evaluacion_nombre"`
	UserID           int64            `json:"user_id"`
	TotalPuntos      float64          `json:"total_puntos"`
	Detalles         []ReporteDetalle `json:"detalles"`
}

type ReporteDetalle struct {
	ID                int64   `json:"id"`
	PreguntaID        int64   `json:"pregunta_id"`
	PreguntaTexto     string  `json:"pregunta_texto"`
	SubpreguntaID     *int64  `json:"subpregunta_id"`
	SubpreguntaTexto  *string `json:"subpregunta_texto"`
	Tipo              string  `json:"tipo"`
	Valor             float64 `json:"valor"`
	RespuestaCorrecta *string `json:"respuesta_correcta"`
}
