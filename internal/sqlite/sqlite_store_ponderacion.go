package sqlite

import (
	"context"

	"casos-nna/internal/ponderacion"
)

// CreatePonderacion writes the header and every detalle in one transaction;
// a failed detalle insert rolls the header back so no orphan header exists.
func (s *Store) CreatePonderacion(ctx context.Context, header ponderacion.Ponderacion, detalles []ponderacion.Detalle) (ponderacion.Ponderacion, []ponderacion.Detalle, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ponderacion.Ponderacion{}, nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO ponderaciones (plan_id, evaluacion_id, user_id) VALUES (?, ?, ?)`,
		header.PlanID, header.EvaluacionID, header.UserID,
	)
	if err != nil {
		return ponderacion.Ponderacion{}, nil, err
	}
	header.ID, err = result.LastInsertId()
	if err != nil {
		return ponderacion.Ponderacion{}, nil, err
	}

	saved := make([]ponderacion.Detalle, 0, len(detalles))
	for _, detalle := range detalles {
		var valor float64
		if detalle.Valor != nil {
			valor = *detalle.Valor
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO detalle_ponderaciones
				(ponderacion_id, pregunta_id, subpregunta_id, tipo, valor, respuesta_correcta, respuesta_correcta_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			header.ID, detalle.PreguntaID, detalle.SubpreguntaID, detalle.Tipo,
			valor, detalle.RespuestaCorrecta, detalle.RespuestaCorrectaID,
		)
		if err != nil {
			return ponderacion.Ponderacion{}, nil, err
		}
		detalle.ID, err = result.LastInsertId()
		if err != nil {
			return ponderacion.Ponderacion{}, nil, err
		}
		detalle.PonderacionID = header.ID
		saved = append(saved, detalle)
	}

	if err := tx.Commit(); err != nil {
		return ponderacion.Ponderacion{}, nil, err
	}
	return header, saved, nil
}

// ListReporte resolves each detalle's correct-answer label against the
// catalog its tipo references: literal text for texto, likert rung label for
// likert, option label for the remaining option-bearing tipos. Non-likert
// rows report subpregunta fields as null even if stored values stray.
func (s *Store) ListReporte(ctx context.Context) ([]ponderacion.ReportePonderacion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.plan_id, p.evaluacion_id, COALESCE(e.nombre, ''), p.user_id,
			COALESCE((SELECT SUM(d.valor) FROM detalle_ponderaciones d WHERE d.ponderacion_id = p.id), 0)
		 FROM ponderaciones p
		 LEFT JOIN evaluaciones e ON e.id = p.evaluacion_id
		 ORDER BY p.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reportes := make([]ponderacion.ReportePonderacion, 0)
	for rows.Next() {
		var reporte ponderacion.ReportePonderacion
		if err := rows.Scan(
			&reporte.ID, &reporte.PlanID, &reporte.EvaluacionID,
			&reporte.EvaluacionNombre, &reporte.UserID, &reporte.TotalPuntos,
		); err != nil {
			return nil, err
		}
		reportes = append(reportes, reporte)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for idx := range reportes {
		detalles, err := s.listReporteDetalles(ctx, reportes[idx].ID)
		if err != nil {
			return nil, err
		}
		reportes[idx].Detalles = detalles
	}

	return reportes, nil
}

func (s *Store) listReporteDetalles(ctx context.Context, ponderacionID int64) ([]ponderacion.ReporteDetalle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.pregunta_id, COALESCE(q.texto, ''), d.subpregunta_id, sp.texto, d.tipo, d.valor,
			CASE
				WHEN d.tipo IN ('texto', 'numero') THEN d.respuesta_correcta
				WHEN d.tipo = 'likert' THEN ol.etiqueta
				ELSE op.etiqueta
			END,
			d.tipo = 'likert'
		 FROM detalle_ponderaciones d
		 LEFT JOIN preguntas q ON q.id = d.pregunta_id
		 LEFT JOIN subpreguntas sp ON sp.id = d.subpregunta_id
		 LEFT JOIN opciones_likert ol ON ol.id = d.respuesta_correcta_id
		 LEFT JOIN opciones op ON op.id = d.respuesta_correcta_id
		 WHERE d.ponderacion_id = ?
		 ORDER BY d.id ASC`,
		ponderacionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detalles := make([]ponderacion.ReporteDetalle, 0)
	for rows.Next() {
		var (
			detalle  ponderacion.ReporteDetalle
			esLikert bool
		)
		if err := rows.Scan(
			&detalle.ID, &detalle.PreguntaID, &detalle.PreguntaTexto,
			&detalle.SubpreguntaID, &detalle.SubpreguntaTexto,
			&detalle.Tipo, &detalle.Valor, &detalle.RespuestaCorrecta, &esLikert,
		); err != nil {
			return nil, err
		}
		if !esLikert {
			detalle.SubpreguntaID = nil
			detalle.SubpreguntaTexto = nil
		}
		detalles = append(detalles, detalle)
	}
	return detalles, rows.Err()
}

func (s *Store) PlanExists(ctx context.Context, planID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM planes WHERE id = ? LIMIT 1`, planID)
}

func (s *Store) EvaluacionExists(ctx context.Context, evaluacionID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM evaluaciones WHERE id = ? LIMIT 1`, evaluacionID)
}

func (s *Store) PreguntaExists(ctx context.Context, preguntaID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM preguntas WHERE id = ? LIMIT 1`, preguntaID)
}

func (s *Store) OpcionExists(ctx context.Context, opcionID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM opciones WHERE id = ? LIMIT 1`, opcionID)
}

func (s *Store) SubpreguntaExists(ctx context.Context, subpreguntaID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM subpreguntas WHERE id = ? LIMIT 1`, subpreguntaID)
}

func (s *Store) OpcionLikertExists(ctx context.Context, opcionLikertID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM opciones_likert WHERE id = ? LIMIT 1`, opcionLikertID)
}
