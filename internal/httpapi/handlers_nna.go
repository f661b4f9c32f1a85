package httpapi

import (
	"net/http"

	"casos-nna/internal/nna"
)

func (a *API) HandleRegistrarNna(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var input nna.RegistrarInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ficha, err := a.sujetos.Registrar(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ficha)
}

func (a *API) HandleNna(w http.ResponseWriter, r *http.Request) {
	nnaID, err := parsePathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	switch r.Method {
	case http.MethodGet:
		ficha, err := a.sujetos.Obtener(r.Context(), nnaID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ficha)
	case http.MethodDelete:
		if err := a.sujetos.Eliminar(r.Context(), nnaID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodDelete)
	}
}
