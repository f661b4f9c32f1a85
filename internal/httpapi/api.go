package httpapi

import (
	"casos-nna/internal/catalog"
	"casos-nna/internal/nna"
	"casos-nna/internal/plan"
	"casos-nna/internal/ponderacion"
	"casos-nna/internal/respuesta"
	"casos-nna/internal/territorio"
)

type API struct {
	catalogo      *catalog.Service
	planes        *plan.Service
	respuestas    *respuesta.Service
	ponderaciones *ponderacion.Service
	territorios   *territorio.Service
	sujetos       *nna.Service
}

func NewAPI(
	catalogo *catalog.Service,
	planes *plan.Service,
	respuestas *respuesta.Service,
	ponderaciones *ponderacion.Service,
	territorios *territorio.Service,
	sujetos *nna.Service,
) *API {
	return &API{
		catalogo:      catalogo,
		planes:        planes,
		respuestas:    respuestas,
		ponderaciones: ponderaciones,
		territorios:   territorios,
		sujetos:       sujetos,
	}
}
