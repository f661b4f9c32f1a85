package ponderacion

import (
	"context"
	"errors"
	"testing"

	"casos-nna/internal/plan"
	"casos-nna/internal/validation"
)

type fakeRepo struct {
	createCalls int
	header      Ponderacion
	detalles    []Detalle
}

func (f *fakeRepo) CreatePonderacion(_ context.Context, header Ponderacion, detalles []Detalle) (Ponderacion, []Detalle, error) {
	f.createCalls++
	header.ID = 1
	f.header = header
	f.detalles = detalles
	return header, detalles, nil
}

func (f *fakeRepo) ListReporte(context.Context) ([]ReportePonderacion, error) {
	return nil, nil
}

// fakeCatalogo resolves every reference except the ids listed as missing.
type fakeCatalogo struct {
	missing map[int64]bool
}

func (f *fakeCatalogo) lookup(id int64) (bool, error) { return !f.missing[id], nil }

func (f *fakeCatalogo) PlanExists(_ context.Context, id int64) (bool, error) { return f.lookup(id) }

func (f *fakeCatalogo) EvaluacionExists(_ context.Context, id int64) (bool, error) {
	return f.lookup(id)
}

func (f *fakeCatalogo) PreguntaExists(_ context.Context, id int64) (bool, error) {
	return f.lookup(id)
}

func (f *fakeCatalogo) OpcionExists(_ context.Context, id int64) (bool, error) { return f.lookup(id) }
func (f *fakeCatalogo) SubpreguntaExists(_ context.Context, id int64) (bool, error) {
	return f.lookup(id)
}
func (f *fakeCatalogo) OpcionLikertExists(_ context.Context, id int64) (bool, error) {
	return f.lookup(id)
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int64) *int64 { return &v }

func ptrString(v string) *string { return &v }

func TestGuardarRejectsMissingValor(t *testing.T) {
	repo := &fakeRepo{}
	service := NewService(repo, &fakeCatalogo{})

	_, _, err := service.Guardar(context.Background(), GuardarInput{
		PlanID:       1,
		EvaluacionID: 2,
		Detalles: []Detalle{
			{PreguntaID: 10, Tipo: plan.TipoNumero, Valor: ptrFloat(3)},
			{PreguntaID: 11, Tipo: plan.TipoNumero},
		},
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields["detalles.1.valor"]) == 0 {
		t.Fatalf("expected valor message, got %v", verr.Fields)
	}
	// One bad row rejects the whole submission.
	if repo.createCalls != 0 {
		t.Fatal("repo must not be called on validation failure")
	}
}

func TestGuardarTextoRequiresRespuestaCorrecta(t *testing.T) {
	service := NewService(&fakeRepo{}, &fakeCatalogo{})

	_, _, err := service.Guardar(context.Background(), GuardarInput{
		PlanID:       1,
		EvaluacionID: 2,
		Detalles: []Detalle{
			{PreguntaID: 10, Tipo: plan.TipoTexto, Valor: ptrFloat(5), RespuestaCorrecta: ptrString("  ")},
		},
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields["detalles.0.respuesta_correcta"]) == 0 {
		t.Fatalf("expected respuesta_correcta message, got %v", verr.Fields)
	}
}

func TestGuardarOpcionReferenceMustResolve(t *testing.T) {
	service := NewService(&fakeRepo{}, &fakeCatalogo{missing: map[int64]bool{77: true}})

	_, _, err := service.Guardar(context.Background(), GuardarInput{
		PlanID:       1,
		EvaluacionID: 2,
		Detalles: []Detalle{
			{PreguntaID: 10, Tipo: plan.TipoSiNo, Valor: ptrFloat(2), RespuestaCorrectaID: ptrInt(77)},
		},
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields["detalles.0.respuesta_correcta_id"]) == 0 {
		t.Fatalf("expected respuesta_correcta_id message, got %v", verr.Fields)
	}
}

func TestGuardarLikertRequiresSubpregunta(t *testing.T) {
	service := NewService(&fakeRepo{}, &fakeCatalogo{})

	_, _, err := service.Guardar(context.Background(), GuardarInput{
		PlanID:       1,
		EvaluacionID: 2,
		Detalles: []Detalle{
			{PreguntaID: 10, Tipo: plan.TipoLikert, Valor: ptrFloat(1), RespuestaCorrectaID: ptrInt(5)},
		},
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields["detalles.0.subpregunta_id"]) == 0 {
		t.Fatalf("expected subpregunta_id message, got %v", verr.Fields)
	}
}

func TestGuardarRejectsUnknownTipoAndMissingHeaderRefs(t *testing.T) {
	service := NewService(&fakeRepo{}, &fakeCatalogo{missing: map[int64]bool{2: true}})

	_, _, err := service.Guardar(context.Background(), GuardarInput{
		PlanID:       1,
		EvaluacionID: 2,
		Detalles: []Detalle{
			{PreguntaID: 10, Tipo: "ranking", Valor: ptrFloat(1)},
		},
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields["detalles.0.tipo"]) == 0 {
		t.Fatalf("expected tipo message, got %v", verr.Fields)
	}
	if len(verr.Fields["evaluacion_id"]) == 0 {
		t.Fatalf("expected evaluacion_id message, got %v", verr.Fields)
	}
}

func TestGuardarNormalizesBeforePersisting(t *testing.T) {
	repo := &fakeRepo{}
	service := NewService(repo, &fakeCatalogo{})

	// numero needs only valor; the stray reference fields must not survive.
	header, detalles, err := service.Guardar(context.Background(), GuardarInput{
		PlanID:       1,
		EvaluacionID: 2,
		UserID:       11,
		Detalles: []Detalle{
			{
				PreguntaID:          10,
				SubpreguntaID:       ptrInt(4),
				Tipo:                plan.TipoNumero,
				Valor:               ptrFloat(3),
				RespuestaCorrecta:   ptrString("sobra"),
				RespuestaCorrectaID: ptrInt(9),
			},
		},
	})
	if err != nil {
		t.Fatalf("Guardar failed: %v", err)
	}
	if header.ID != 1 || header.UserID != 11 {
		t.Fatalf("unexpected header: %+v", header)
	}
	saved := detalles[0]
	if saved.RespuestaCorrecta != nil || saved.RespuestaCorrectaID != nil || saved.SubpreguntaID != nil {
		t.Fatalf("expected normalized detalle, got %+v", saved)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected one repo call, got %d", repo.createCalls)
	}
}

func TestNormalizarKeepsRelevantFields(t *testing.T) {
	detalle := Detalle{
		SubpreguntaID:       ptrInt(4),
		Tipo:                plan.TipoLikert,
		Valor:               ptrFloat(2),
		RespuestaCorrecta:   ptrString("sobra"),
		RespuestaCorrectaID: ptrInt(9),
	}
	detalle.Normalizar()
	if detalle.SubpreguntaID == nil || detalle.RespuestaCorrectaID == nil {
		t.Fatalf("likert must keep subpregunta and reference: %+v", detalle)
	}
	if detalle.RespuestaCorrecta != nil {
		t.Fatalf("likert must drop free text: %+v", detalle)
	}
}
