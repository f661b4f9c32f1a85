package httpapi

import (
	"net/http"

	"casos-nna/internal/respuesta"
)

// HandleGuardarRespuestas and HandleGuardarRespuestasParcial share upsert
// semantics; the parcial endpoint exists so clients can stream answers while
// a questionnaire is still open.
func (a *API) HandleGuardarRespuestas(w http.ResponseWriter, r *http.Request) {
	a.guardarRespuestas(w, r, "respuestas guardadas correctamente")
}

func (a *API) HandleGuardarRespuestasParcial(w http.ResponseWriter, r *http.Request) {
	a.guardarRespuestas(w, r, "respuestas parciales guardadas correctamente")
}

func (a *API) guardarRespuestas(w http.ResponseWriter, r *http.Request, confirmation string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var request guardarRespuestasRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	items := make([]respuesta.Item, 0, len(request.Respuestas))
	for _, item := range request.Respuestas {
		items = append(items, respuesta.Item{
			PreguntaID:    item.PreguntaID,
			SubpreguntaID: item.SubpreguntaID.Value,
			Tipo:          item.Tipo,
			Valor:         item.valor(),
		})
	}

	if err := a.respuestas.GuardarRespuestas(r.Context(), request.NnaID, request.EvaluacionID, items); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: confirmation})
}

func (a *API) HandleEstadoEvaluaciones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	nnaID, err := parsePathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	estados, err := a.respuestas.EstadoPorNna(r.Context(), nnaID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, estados)
}
