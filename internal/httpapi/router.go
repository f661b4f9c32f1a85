package httpapi

import (
	"net/http"

	"casos-nna/internal/catalog"
	"casos-nna/internal/nna"
	"casos-nna/internal/plan"
	"casos-nna/internal/ponderacion"
	"casos-nna/internal/respuesta"
	"casos-nna/internal/territorio"
)

func NewRouter(
	catalogo *catalog.Service,
	planes *plan.Service,
	respuestas *respuesta.Service,
	ponderaciones *ponderacion.Service,
	territorios *territorio.Service,
	sujetos *nna.Service,
) http.Handler {
	api := NewAPI(catalogo, planes, respuestas, ponderaciones, territorios, sujetos)

	mux := http.NewServeMux()
	mux.HandleFunc("/regiones", api.HandleRegiones)
	mux.HandleFunc("/regiones/{id}/provincias", api.HandleProvincias)
	mux.HandleFunc("/provincias/{id}/comunas", api.HandleComunas)
	mux.HandleFunc("/lineas", api.HandleLineas)

	mux.HandleFunc("/planes", api.HandlePlanes)
	mux.HandleFunc("/planes/{id}", api.HandlePlan)
	mux.HandleFunc("/planes/{id}/evaluaciones-pendientes", api.HandleEvaluacionesPendientes)
	mux.HandleFunc("/evaluaciones/{id}", api.HandleDetalleEvaluacion)
	mux.HandleFunc("/preguntas/{id}/respuestas", api.HandleRegistrarRespuesta)

	mux.HandleFunc("/respuestas", api.HandleGuardarRespuestas)
	mux.HandleFunc("/respuestas/parcial", api.HandleGuardarRespuestasParcial)
	mux.HandleFunc("/nna/{id}/estado-evaluaciones", api.HandleEstadoEvaluaciones)

	mux.HandleFunc("/ponderaciones", api.HandlePonderaciones)
	mux.HandleFunc("/ponderaciones/reporte", api.HandleReportePonderaciones)

	mux.HandleFunc("/territorios", api.HandleTerritorios)
	mux.HandleFunc("/territorios/{id}", api.HandleTerritorio)
	mux.HandleFunc("/instituciones", api.HandleInstituciones)

	mux.HandleFunc("/nna", api.HandleRegistrarNna)
	mux.HandleFunc("/nna/{id}", api.HandleNna)

	return mux
}
