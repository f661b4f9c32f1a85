package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"casos-nna/internal/catalog"
	"casos-nna/internal/nna"
	"casos-nna/internal/plan"
	"casos-nna/internal/ponderacion"
	"casos-nna/internal/respuesta"
	"casos-nna/internal/sqlite"
	"casos-nna/internal/territorio"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	err = store.SeedCatalog(context.Background(), catalog.Seed{
		Regiones:   []catalog.Region{{ID: 13, Nombre: "Metropolitana"}},
		Provincias: []catalog.Provincia{{ID: 131, RegionID: 13, Nombre: "Santiago"}},
		Comunas:    []catalog.Comuna{{ID: 13101, ProvinciaID: 131, Nombre: "Santiago"}},
		Lineas:     []catalog.LineaIntervencion{{ID: 1, Nombre: "Linea ASPL"}},
	})
	if err != nil {
		t.Fatalf("SeedCatalog failed: %v", err)
	}

	catalogo := catalog.NewService(store)
	return NewRouter(
		catalogo,
		plan.NewService(store, catalogo),
		respuesta.NewService(store),
		ponderacion.NewService(store, store),
		territorio.NewService(store),
		nna.NewService(store),
	)
}

func doJSON(t *testing.T, router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
}

func crearPlan(t *testing.T, router http.Handler) plan.PlanTree {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/planes", `{
		"nombre": "Plan piloto",
		"linea_id": 1,
		"evaluaciones": [
			{"nombre": "Inicial", "preguntas": [{"pregunta": "Como estas?"}, {"pregunta": "Con quien vives?"}]}
		]
	}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("crear plan: status %d body %s", recorder.Code, recorder.Body.String())
	}
	var tree plan.PlanTree
	decodeBody(t, recorder, &tree)
	return tree
}

func TestCatalogEndpoints(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/regiones", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("GET /regiones: status %d", recorder.Code)
	}
	var regiones []catalog.Region
	decodeBody(t, recorder, &regiones)
	if len(regiones) != 1 || regiones[0].Nombre != "Metropolitana" {
		t.Fatalf("unexpected regiones: %+v", regiones)
	}

	recorder = doJSON(t, router, http.MethodGet, "/regiones/13/provincias", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("GET provincias: status %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodGet, "/regiones/99/provincias", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown region, got %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodGet, "/regiones/abc/provincias", "")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", recorder.Code)
	}
}

func TestCrearPlanValidationResponse(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/planes", `{
		"nombre": "",
		"linea_id": 99,
		"evaluaciones": [{"nombre": "Inicial", "preguntas": []}]
	}`)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body %s", recorder.Code, recorder.Body.String())
	}

	var response validationResponse
	decodeBody(t, recorder, &response)
	for _, field := range []string{"nombre", "linea_id", "evaluaciones.0.preguntas"} {
		if len(response.Errors[field]) == 0 {
			t.Fatalf("expected error for %q, got %v", field, response.Errors)
		}
	}
}

func TestPlanLifecycle(t *testing.T) {
	router := newTestRouter(t)
	tree := crearPlan(t, router)

	recorder := doJSON(t, router, http.MethodGet, fmt.Sprintf("/planes/%d", tree.ID), "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("GET plan: status %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodGet, fmt.Sprintf("/planes/%d/evaluaciones-pendientes", tree.ID), "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("GET pendientes: status %d", recorder.Code)
	}
	var pendientes []plan.Evaluacion
	decodeBody(t, recorder, &pendientes)
	if len(pendientes) != 1 {
		t.Fatalf("expected 1 pending evaluacion, got %+v", pendientes)
	}

	recorder = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/planes/%d", tree.ID), "")
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("DELETE plan: status %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodGet, fmt.Sprintf("/planes/%d", tree.ID), "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodPut, "/planes", "{}")
	if recorder.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", recorder.Code)
	}
	if allow := recorder.Header().Get("Allow"); !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("expected Allow header with POST, got %q", allow)
	}
}

func TestGuardarRespuestasFlow(t *testing.T) {
	router := newTestRouter(t)
	tree := crearPlan(t, router)
	evaluacion := tree.Evaluaciones[0]

	body := fmt.Sprintf(`{
		"nna_id": 7,
		"evaluacion_id": %d,
		"respuestas": [
			{"pregunta_id": %d, "tipo": "texto", "respuesta": "bien", "subpregunta_id": "null"},
			{"pregunta_id": %d, "tipo": "si_no", "respuesta_opcion_id": 42}
		]
	}`, evaluacion.ID, evaluacion.Preguntas[0].ID, evaluacion.Preguntas[1].ID)

	recorder := doJSON(t, router, http.MethodPost, "/respuestas", body)
	if recorder.Code != http.StatusOK {
		t.Fatalf("POST /respuestas: status %d body %s", recorder.Code, recorder.Body.String())
	}
	var message messageResponse
	decodeBody(t, recorder, &message)
	if message.Message != "respuestas guardadas correctamente" {
		t.Fatalf("unexpected message: %q", message.Message)
	}

	recorder = doJSON(t, router, http.MethodPost, "/respuestas/parcial", body)
	if recorder.Code != http.StatusOK {
		t.Fatalf("POST /respuestas/parcial: status %d", recorder.Code)
	}
	decodeBody(t, recorder, &message)
	if message.Message != "respuestas parciales guardadas correctamente" {
		t.Fatalf("unexpected message: %q", message.Message)
	}

	recorder = doJSON(t, router, http.MethodGet, "/nna/7/estado-evaluaciones", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("GET estado: status %d", recorder.Code)
	}
	var estados []respuesta.EstadoEvaluacion
	decodeBody(t, recorder, &estados)
	if len(estados) != 1 {
		t.Fatalf("expected 1 estado, got %+v", estados)
	}
	if estados[0].Estado != respuesta.EstadoCompletada || estados[0].Porcentaje != 100 {
		t.Fatalf("expected completada 100%%, got %+v", estados[0])
	}

	// Unknown evaluacion maps to 404.
	recorder = doJSON(t, router, http.MethodPost, "/respuestas", `{
		"nna_id": 7,
		"evaluacion_id": 9999,
		"respuestas": [{"pregunta_id": 1, "tipo": "texto", "respuesta": "x"}]
	}`)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown evaluacion, got %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodPost, "/respuestas", `{"nna_id": 0`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", recorder.Code)
	}
}

func TestPonderacionFlow(t *testing.T) {
	router := newTestRouter(t)
	tree := crearPlan(t, router)
	evaluacion := tree.Evaluaciones[0]

	recorder := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/preguntas/%d/respuestas", evaluacion.Preguntas[0].ID), `{
		"tipo": "si_no",
		"opciones": [{"etiqueta": "Si", "valor": "1"}, {"etiqueta": "No", "valor": "0"}]
	}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("registrar respuesta: status %d body %s", recorder.Code, recorder.Body.String())
	}
	var respuestaTree plan.RespuestaTree
	decodeBody(t, recorder, &respuestaTree)
	if len(respuestaTree.Opciones) != 2 {
		t.Fatalf("expected 2 opciones, got %+v", respuestaTree.Opciones)
	}

	body := fmt.Sprintf(`{
		"plan_id": %d,
		"evaluacion_id": %d,
		"detalles": [
			{"pregunta_id": %d, "tipo": "si_no", "valor": 5, "respuesta_correcta_id": %d, "subpregunta_id": ""}
		]
	}`, tree.ID, evaluacion.ID, evaluacion.Preguntas[0].ID, respuestaTree.Opciones[0].ID)

	request := httptest.NewRequest(http.MethodPost, "/ponderaciones", bytes.NewReader([]byte(body)))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-User-ID", "11")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("POST /ponderaciones: status %d body %s", recorder.Code, recorder.Body.String())
	}
	var created ponderacionCreadaResponse
	decodeBody(t, recorder, &created)
	if created.ID == 0 || len(created.Detalles) != 1 {
		t.Fatalf("unexpected response: %+v", created)
	}

	recorder = doJSON(t, router, http.MethodGet, "/ponderaciones/reporte", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("GET reporte: status %d", recorder.Code)
	}
	var reportes []ponderacion.ReportePonderacion
	decodeBody(t, recorder, &reportes)
	if len(reportes) != 1 {
		t.Fatalf("expected 1 reporte, got %+v", reportes)
	}
	if reportes[0].UserID != 11 || reportes[0].TotalPuntos != 5 {
		t.Fatalf("unexpected reporte: %+v", reportes[0])
	}
	detalle := reportes[0].Detalles[0]
	if detalle.RespuestaCorrecta == nil || *detalle.RespuestaCorrecta != "Si" {
		t.Fatalf("expected resolved option label, got %+v", detalle.RespuestaCorrecta)
	}

	// A row missing valor rejects the whole submission.
	recorder = doJSON(t, router, http.MethodPost, "/ponderaciones", fmt.Sprintf(`{
		"plan_id": %d,
		"evaluacion_id": %d,
		"detalles": [{"pregunta_id": %d, "tipo": "numero"}]
	}`, tree.ID, evaluacion.ID, evaluacion.Preguntas[0].ID))
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body %s", recorder.Code, recorder.Body.String())
	}
	var response validationResponse
	decodeBody(t, recorder, &response)
	if len(response.Errors["detalles.0.valor"]) == 0 {
		t.Fatalf("expected detalles.0.valor error, got %v", response.Errors)
	}
}

func TestRegistrarNnaSinCupos(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/territorios", `{
		"nombre": "Territorio Norte",
		"codigo": "T-01",
		"linea_id": 1,
		"cupo_1": 1,
		"cupo_2": 0
	}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("crear territorio: status %d body %s", recorder.Code, recorder.Body.String())
	}
	var creado territorio.Territorio
	decodeBody(t, recorder, &creado)
	if creado.CupoTotal != 1 || creado.CuposDisponibles != 1 {
		t.Fatalf("unexpected territorio: %+v", creado)
	}

	nnaBody := fmt.Sprintf(`{
		"nombres": "Ana",
		"apellidos": "Perez",
		"territorio_id": %d,
		"linea_id": 1,
		"cuidador": {"nombres": "Rosa", "parentesco": "abuela"}
	}`, creado.ID)

	recorder = doJSON(t, router, http.MethodPost, "/nna", nnaBody)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("registrar nna: status %d body %s", recorder.Code, recorder.Body.String())
	}
	var ficha nna.Ficha
	decodeBody(t, recorder, &ficha)
	if ficha.Folio == "" || ficha.Cuidador == nil {
		t.Fatalf("unexpected ficha: %+v", ficha)
	}

	recorder = doJSON(t, router, http.MethodPost, "/nna", nnaBody)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 sin cupos, got %d body %s", recorder.Code, recorder.Body.String())
	}

	recorder = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/nna/%d", ficha.ID), "")
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("delete nna: status %d", recorder.Code)
	}

	// Released slot lets a new registration through.
	recorder = doJSON(t, router, http.MethodPost, "/nna", nnaBody)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201 after release, got %d body %s", recorder.Code, recorder.Body.String())
	}
}

func TestRegistrarNnaValidation(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/nna", `{
		"nombres": "",
		"apellidos": "Perez",
		"territorio_id": 1,
		"linea_id": 1,
		"fecha_nacimiento": "15-03-2019"
	}`)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body %s", recorder.Code, recorder.Body.String())
	}
	var response validationResponse
	decodeBody(t, recorder, &response)
	for _, field := range []string{"nombres", "fecha_nacimiento"} {
		if len(response.Errors[field]) == 0 {
			t.Fatalf("expected error for %q, got %v", field, response.Errors)
		}
	}
}

func TestCrearInstitucionRequiresTerritorio(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/instituciones", `{
		"nombre": "Fundacion Abrazo",
		"rut": "65.123.456-7",
		"territorio_id": 9999
	}`)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body %s", recorder.Code, recorder.Body.String())
	}
	var response validationResponse
	decodeBody(t, recorder, &response)
	if len(response.Errors["territorio_id"]) == 0 {
		t.Fatalf("expected territorio_id error, got %v", response.Errors)
	}
}
