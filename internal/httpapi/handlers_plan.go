package httpapi

import (
	"net/http"

	"casos-nna/internal/plan"
)

func (a *API) HandlePlanes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		planes, err := a.planes.ListarPlanes(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, planes)
	case http.MethodPost:
		var input plan.CrearPlanInput
		if !decodeJSON(w, r, &input) {
			return
		}

		tree, err := a.planes.CrearPlan(r.Context(), input)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tree)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (a *API) HandlePlan(w http.ResponseWriter, r *http.Request) {
	planID, err := parsePathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := a.planes.ObtenerPlan(r.Context(), planID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if err := a.planes.EliminarPlan(r.Context(), planID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) HandleEvaluacionesPendientes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	planID, err := parsePathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	pendientes, err := a.planes.EvaluacionesPendientes(r.Context(), planID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pendientes)
}

func (a *API) HandleDetalleEvaluacion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	evaluacionID, err := parsePathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	detalle, err := a.planes.DetalleEvaluacion(r.Context(), evaluacionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detalle)
}

func (a *API) HandleRegistrarRespuesta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	preguntaID, err := parsePathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var input plan.RegistrarRespuestaInput
	if !decodeJSON(w, r, &input) {
		return
	}

	tree, err := a.planes.RegistrarRespuesta(r.Context(), preguntaID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tree)
}
