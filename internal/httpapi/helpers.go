package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"casos-nna/internal/catalog"
	"casos-nna/internal/nna"
	"casos-nna/internal/plan"
	"casos-nna/internal/respuesta"
	"casos-nna/internal/territorio"
	"casos-nna/internal/validation"
)

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: verr.Fields})
	case errors.Is(err, plan.ErrPlanNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "plan not found"})
	case errors.Is(err, plan.ErrEvaluacionNotFound), errors.Is(err, respuesta.ErrEvaluacionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "evaluacion not found"})
	case errors.Is(err, plan.ErrPreguntaNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "pregunta not found"})
	case errors.Is(err, catalog.ErrRegionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "region not found"})
	case errors.Is(err, catalog.ErrProvinciaNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "provincia not found"})
	case errors.Is(err, territorio.ErrTerritorioNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "territorio not found"})
	case errors.Is(err, nna.ErrNnaNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "nna not found"})
	case errors.Is(err, territorio.ErrSinCupos):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "territorio sin cupos disponibles"})
	default:
		// The cause stays in the operator log; callers get a generic message.
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func parsePathID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// parseUserID reads the acting user from the X-User-ID header. Auth itself
// is handled upstream; an absent header stamps user 0.
func parseUserID(r *http.Request) int64 {
	raw := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethods ...string) {
	w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
