package httpapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"casos-nna/internal/ponderacion"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors map[string][]string `json:"errors"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// subpreguntaID tolerates the historical client encodings of the field: a
// number, a numeric string, the literal string "null", an empty string or
// JSON null. The sentinels all normalize to absence.
type subpreguntaID struct {
	Value *int64
}

func (s *subpreguntaID) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		s.Value = nil
		return nil
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" || strings.EqualFold(text, "null") {
			s.Value = nil
			return nil
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return err
		}
		s.Value = &id
		return nil
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return err
	}
	s.Value = &id
	return nil
}

type respuestaItemRequest struct {
	PreguntaID int64   `json:"pregunta_id"`
	Tipo       string  `json:"tipo"`
	Respuesta  *string `json:"respuesta"`
	// respuesta_texto is the older field name some clients still send.
	RespuestaTexto  *string       `json:"respuesta_texto"`
	RespuestaOpcion *int64        `json:"respuesta_opcion_id"`
	SubpreguntaID   subpreguntaID `json:"subpregunta_id"`
}

// valor resolves the submitted value: respuesta wins, then respuesta_texto,
// then the option id rendered as text.
func (item respuestaItemRequest) valor() *string {
	if item.Respuesta != nil {
		return item.Respuesta
	}
	if item.RespuestaTexto != nil {
		return item.RespuestaTexto
	}
	if item.RespuestaOpcion != nil {
		value := strconv.FormatInt(*item.RespuestaOpcion, 10)
		return &value
	}
	return nil
}

type guardarRespuestasRequest struct {
	NnaID        int64                  `json:"nna_id"`
	EvaluacionID int64                  `json:"evaluacion_id"`
	Respuestas   []respuestaItemRequest `json:"respuestas"`
}

type guardarPonderacionRequest struct {
	PlanID       int64                       `json:"plan_id"`
	EvaluacionID int64                       `json:"evaluacion_id"`
	Detalles     []detallePonderacionRequest `json:"detalles"`
}

type detallePonderacionRequest struct {
	PreguntaID          int64         `json:"pregunta_id"`
	Tipo                string        `json:"tipo"`
	Valor               *float64      `json:"valor"`
	RespuestaCorrecta   *string       `json:"respuesta_correcta"`
	RespuestaCorrectaID *int64        `json:"respuesta_correcta_id"`
	SubpreguntaID       subpreguntaID `json:"subpregunta_id"`
}

func (r guardarPonderacionRequest) toInput(userID int64) ponderacion.GuardarInput {
	detalles := make([]ponderacion.Detalle, 0, len(r.Detalles))
	for _, detalle := range r.Detalles {
		detalles = append(detalles, ponderacion.Detalle{
			PreguntaID:          detalle.PreguntaID,
			SubpreguntaID:       detalle.SubpreguntaID.Value,
			Tipo:                detalle.Tipo,
			Valor:               detalle.Valor,
			RespuestaCorrecta:   detalle.RespuestaCorrecta,
			RespuestaCorrectaID: detalle.RespuestaCorrectaID,
		})
	}
	return ponderacion.GuardarInput{
		PlanID:       r.PlanID,
		EvaluacionID: r.EvaluacionID,
		UserID:       userID,
		Detalles:     detalles,
	}
}

type ponderacionCreadaResponse struct {
	ID       int64                 `json:"id"`
	Detalles []ponderacion.Detalle `json:"detalles"`
}
