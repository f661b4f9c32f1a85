package httpapi

import "net/http"

func (a *API) HandlePonderaciones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var request guardarPonderacionRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	header, detalles, err := a.ponderaciones.Guardar(r.Context(), request.toInput(parseUserID(r)))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ponderacionCreadaResponse{
		ID:       header.ID,
		Detalles: detalles,
	})
}

func (a *API) HandleReportePonderaciones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	reportes, err := a.ponderaciones.Reporte(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportes)
}
