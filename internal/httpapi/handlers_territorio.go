package httpapi

import (
	"net/http"

	"casos-nna/internal/territorio"
)

func (a *API) HandleTerritorios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		territorios, err := a.territorios.ListarTerritorios(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, territorios)
	case http.MethodPost:
		var input territorio.Territorio
		if !decodeJSON(w, r, &input) {
			return
		}

		created, err := a.territorios.CrearTerritorio(r.Context(), input)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (a *API) HandleTerritorio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	territorioID, err := parsePathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	item, err := a.territorios.ObtenerTerritorio(r.Context(), territorioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) HandleInstituciones(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		instituciones, err := a.territorios.ListarInstituciones(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, instituciones)
	case http.MethodPost:
		var input territorio.Institucion
		if !decodeJSON(w, r, &input) {
			return
		}

		created, err := a.territorios.CrearInstitucion(r.Context(), input)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}
