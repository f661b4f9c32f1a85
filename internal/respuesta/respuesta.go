package respuesta

import (
	"errors"
	"math"
)

var ErrEvaluacionNotFound = errors.New("evaluacion not found")

// Estados de avance de una evaluación para un NNA.
const (
	EstadoNoIniciada = "no_iniciada"
	EstadoEnProceso  = "en_proceso"
	EstadoCompletada = "completada"
)

// RespuestaNna is one answer of a subject to a questionnaire item. The tuple
// (nna, evaluacion, pregunta, subpregunta) is a logical primary key enforced
// by upsert semantics, not by a storage constraint.
type RespuestaNna struct {
	ID            int64   `json:"id"`
	NnaID         int64   `json:"nna_id"`
	EvaluacionID  int64   `json:"evaluacion_id"`
	PreguntaID    int64   `json:"pregunta_id"`
	SubpreguntaID *int64  `json:"subpregunta_id"`
	Tipo          string  `json:"tipo"`
	Valor         *string `json:"respuesta"`
}

// Item is one entry of a submitted batch. A nil Valor clears the stored
// answer while keeping the row.
type Item struct {
	PreguntaID    int64
	SubpreguntaID *int64
	Tipo          string
	Valor         *string
}

type EstadoEvaluacion struct {
	EvaluacionID   int64   `json:"evaluacion_id"`
	Nombre         string  `json:"nombre"`
	TotalPreguntas int     `json:"total_preguntas"`
	Respondidas    int     `json:"respondidas"`
	Estado         string  `json:"estado"`
	Porcentaje     float64 `json:"porcentaje"`
}

// ClasificarEstado derives the estado and percentage from answered vs. total
// question counts. A zero-question evaluación reports no_iniciada at 0%.
func ClasificarEstado(respondidas, total int) (string, float64) {
	if total <= 0 || respondidas <= 0 {
		return EstadoNoIniciada, 0
	}
	if respondidas >= total {
		return EstadoCompletada, 100
	}
	porcentaje := float64(respondidas) / float64(total) * 100
	return EstadoEnProceso, math.Round(porcentaje*100) / 100
}
