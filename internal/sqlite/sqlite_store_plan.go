package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"casos-nna/internal/plan"
)

// CreatePlan persists the nested plan→evaluaciones→preguntas tree in one
// transaction so a failure anywhere leaves no partial rows.
func (s *Store) CreatePlan(ctx context.Context, input plan.CrearPlanInput) (plan.PlanTree, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return plan.PlanTree{}, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO planes (nombre, descripcion, linea_id) VALUES (?, ?, ?)`,
		input.Nombre, input.Descripcion, input.LineaID,
	)
	if err != nil {
		return plan.PlanTree{}, err
	}
	planID, err := result.LastInsertId()
	if err != nil {
		return plan.PlanTree{}, err
	}

	tree := plan.PlanTree{
		Plan: plan.Plan{
			ID:          planID,
			Nombre:      input.Nombre,
			Descripcion: input.Descripcion,
			LineaID:     input.LineaID,
		},
		Evaluaciones: make([]plan.EvaluacionTree, 0, len(input.Evaluaciones)),
	}

	for _, evaluacion := range input.Evaluaciones {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO evaluaciones (plan_id, nombre) VALUES (?, ?)`,
			planID, evaluacion.Nombre,
		)
		if err != nil {
			return plan.PlanTree{}, err
		}
		evaluacionID, err := result.LastInsertId()
		if err != nil {
			return plan.PlanTree{}, err
		}

		evaluacionTree := plan.EvaluacionTree{
			Evaluacion: plan.Evaluacion{
				ID:     evaluacionID,
				PlanID: planID,
				Nombre: evaluacion.Nombre,
			},
			Preguntas: make([]plan.Pregunta, 0, len(evaluacion.Preguntas)),
		}

		for _, pregunta := range evaluacion.Preguntas {
			result, err := tx.ExecContext(ctx,
				`INSERT INTO preguntas (evaluacion_id, texto) VALUES (?, ?)`,
				evaluacionID, pregunta.Texto,
			)
			if err != nil {
				return plan.PlanTree{}, err
			}
			preguntaID, err := result.LastInsertId()
			if err != nil {
				return plan.PlanTree{}, err
			}
			evaluacionTree.Preguntas = append(evaluacionTree.Preguntas, plan.Pregunta{
				ID:           preguntaID,
				EvaluacionID: evaluacionID,
				Texto:        pregunta.Texto,
			})
		}

		tree.Evaluaciones = append(tree.Evaluaciones, evaluacionTree)
	}

	if err := tx.Commit(); err != nil {
		return plan.PlanTree{}, err
	}
	return tree, nil
}

func (s *Store) ListPlanes(ctx context.Context) ([]plan.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nombre, descripcion, linea_id FROM planes ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	planes := make([]plan.Plan, 0)
	for rows.Next() {
		var item plan.Plan
		if err := rows.Scan(&item.ID, &item.Nombre, &item.Descripcion, &item.LineaID); err != nil {
			return nil, err
		}
		planes = append(planes, item)
	}
	return planes, rows.Err()
}

func (s *Store) GetPlan(ctx context.Context, planID int64) (plan.Plan, error) {
	var item plan.Plan
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre, descripcion, linea_id FROM planes WHERE id = ?`,
		planID,
	).Scan(&item.ID, &item.Nombre, &item.Descripcion, &item.LineaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return plan.Plan{}, plan.ErrPlanNotFound
		}
		return plan.Plan{}, err
	}
	return item, nil
}

// DeletePlan cascades to evaluaciones and preguntas inside one transaction.
func (s *Store) DeletePlan(ctx context.Context, planID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM planes WHERE id = ?`, planID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return plan.ErrPlanNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM preguntas WHERE evaluacion_id IN (SELECT id FROM evaluaciones WHERE plan_id = ?)`,
		planID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM evaluaciones WHERE plan_id = ?`, planID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetDetalleEvaluacion builds the read model of one evaluación. The option
// and subpregunta catalogs come transitively through registered respuestas,
// so a pregunta without one reports an empty catalog and a nil tipo.
func (s *Store) GetDetalleEvaluacion(ctx context.Context, evaluacionID int64) (plan.DetalleEvaluacion, error) {
	var detalle plan.DetalleEvaluacion
	err := s.db.QueryRowContext(ctx,
		`SELECT e.id, e.plan_id, e.nombre, p.nombre, p.descripcion, COALESCE(l.nombre, '')
		 FROM evaluaciones e
		 JOIN planes p ON p.id = e.plan_id
		 LEFT JOIN lineas_intervencion l ON l.id = p.linea_id
		 WHERE e.id = ?`,
		evaluacionID,
	).Scan(&detalle.ID, &detalle.PlanID, &detalle.Nombre, &detalle.PlanNombre, &detalle.PlanDescripcion, &detalle.LineaNombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return plan.DetalleEvaluacion{}, plan.ErrEvaluacionNotFound
		}
		return plan.DetalleEvaluacion{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, evaluacion_id, texto FROM preguntas WHERE evaluacion_id = ? ORDER BY id ASC`,
		evaluacionID,
	)
	if err != nil {
		return plan.DetalleEvaluacion{}, err
	}
	defer rows.Close()

	detalle.Preguntas = make([]plan.DetallePregunta, 0)
	for rows.Next() {
		var pregunta plan.DetallePregunta
		if err := rows.Scan(&pregunta.ID, &pregunta.EvaluacionID, &pregunta.Texto); err != nil {
			return plan.DetalleEvaluacion{}, err
		}
		pregunta.Opciones = make([]plan.Opcion, 0)
		pregunta.Subpreguntas = make([]plan.SubpreguntaTree, 0)
		detalle.Preguntas = append(detalle.Preguntas, pregunta)
	}
	if err := rows.Err(); err != nil {
		return plan.DetalleEvaluacion{}, err
	}

	for idx := range detalle.Preguntas {
		if err := s.cargarCatalogoPregunta(ctx, &detalle.Preguntas[idx]); err != nil {
			return plan.DetalleEvaluacion{}, err
		}
	}

	return detalle, nil
}

func (s *Store) cargarCatalogoPregunta(ctx context.Context, pregunta *plan.DetallePregunta) error {
	var respuestaID int64
	var tipo string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tipo FROM respuestas WHERE pregunta_id = ? ORDER BY id ASC LIMIT 1`,
		pregunta.ID,
	).Scan(&respuestaID, &tipo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	pregunta.Tipo = &tipo

	opciones, err := s.db.QueryContext(ctx,
		`SELECT id, respuesta_id, etiqueta, valor FROM opciones WHERE respuesta_id = ? ORDER BY id ASC`,
		respuestaID,
	)
	if err != nil {
		return err
	}
	defer opciones.Close()
	for opciones.Next() {
		var opcion plan.Opcion
		if err := opciones.Scan(&opcion.ID, &opcion.RespuestaID, &opcion.Etiqueta, &opcion.Valor); err != nil {
			return err
		}
		pregunta.Opciones = append(pregunta.Opciones, opcion)
	}
	if err := opciones.Err(); err != nil {
		return err
	}

	subpreguntas, err := s.db.QueryContext(ctx,
		`SELECT id, respuesta_id, texto FROM subpreguntas WHERE respuesta_id = ? ORDER BY id ASC`,
		respuestaID,
	)
	if err != nil {
		return err
	}
	defer subpreguntas.Close()
	for subpreguntas.Next() {
		var subpregunta plan.SubpreguntaTree
		if err := subpreguntas.Scan(&subpregunta.ID, &subpregunta.RespuestaID, &subpregunta.Texto); err != nil {
			return err
		}
		subpregunta.OpcionesLikert = make([]plan.OpcionLikert, 0)
		pregunta.Subpreguntas = append(pregunta.Subpreguntas, subpregunta)
	}
	if err := subpreguntas.Err(); err != nil {
		return err
	}

	for idx := range pregunta.Subpreguntas {
		subpregunta := &pregunta.Subpreguntas[idx]
		rungs, err := s.db.QueryContext(ctx,
			`SELECT id, subpregunta_id, etiqueta FROM opciones_likert WHERE subpregunta_id = ? ORDER BY id ASC`,
			subpregunta.ID,
		)
		if err != nil {
			return err
		}
		for rungs.Next() {
			var rung plan.OpcionLikert
			if err := rungs.Scan(&rung.ID, &rung.SubpreguntaID, &rung.Etiqueta); err != nil {
				_ = rungs.Close()
				return err
			}
			subpregunta.OpcionesLikert = append(subpregunta.OpcionesLikert, rung)
		}
		if err := rungs.Err(); err != nil {
			_ = rungs.Close()
			return err
		}
		_ = rungs.Close()
	}

	return nil
}

// ListEvaluacionesPendientes returns the evaluaciones of a plan with zero
// RespuestaNna rows linked through their own preguntas.
func (s *Store) ListEvaluacionesPendientes(ctx context.Context, planID int64) ([]plan.Evaluacion, error) {
	found, err := s.exists(ctx, `SELECT 1 FROM planes WHERE id = ? LIMIT 1`, planID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, plan.ErrPlanNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.plan_id, e.nombre
		 FROM evaluaciones e
		 WHERE e.plan_id = ?
		   AND NOT EXISTS (
			SELECT 1 FROM respuestas_nna rn
			JOIN preguntas q ON q.id = rn.pregunta_id
			WHERE q.evaluacion_id = e.id
		   )
		 ORDER BY e.id ASC`,
		planID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pendientes := make([]plan.Evaluacion, 0)
	for rows.Next() {
		var evaluacion plan.Evaluacion
		if err := rows.Scan(&evaluacion.ID, &evaluacion.PlanID, &evaluacion.Nombre); err != nil {
			return nil, err
		}
		pendientes = append(pendientes, evaluacion)
	}
	return pendientes, rows.Err()
}

// CreateRespuesta registers the answer definition of a pregunta with its
// option or likert catalog, all in one transaction.
func (s *Store) CreateRespuesta(ctx context.Context, preguntaID int64, input plan.RegistrarRespuestaInput) (plan.RespuestaTree, error) {
	found, err := s.exists(ctx, `SELECT 1 FROM preguntas WHERE id = ? LIMIT 1`, preguntaID)
	if err != nil {
		return plan.RespuestaTree{}, err
	}
	if !found {
		return plan.RespuestaTree{}, plan.ErrPreguntaNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return plan.RespuestaTree{}, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO respuestas (pregunta_id, tipo) VALUES (?, ?)`,
		preguntaID, input.Tipo,
	)
	if err != nil {
		return plan.RespuestaTree{}, err
	}
	respuestaID, err := result.LastInsertId()
	if err != nil {
		return plan.RespuestaTree{}, err
	}

	tree := plan.RespuestaTree{
		Respuesta: plan.Respuesta{
			ID:         respuestaID,
			PreguntaID: preguntaID,
			Tipo:       input.Tipo,
		},
	}

	for _, opcion := range input.Opciones {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO opciones (respuesta_id, etiqueta, valor) VALUES (?, ?, ?)`,
			respuestaID, opcion.Etiqueta, opcion.Valor,
		)
		if err != nil {
			return plan.RespuestaTree{}, err
		}
		opcionID, err := result.LastInsertId()
		if err != nil {
			return plan.RespuestaTree{}, err
		}
		tree.Opciones = append(tree.Opciones, plan.Opcion{
			ID:          opcionID,
			RespuestaID: respuestaID,
			Etiqueta:    opcion.Etiqueta,
			Valor:       opcion.Valor,
		})
	}

	for _, subpregunta := range input.Subpreguntas {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO subpreguntas (respuesta_id, texto) VALUES (?, ?)`,
			respuestaID, subpregunta.Texto,
		)
		if err != nil {
			return plan.RespuestaTree{}, err
		}
		subpreguntaID, err := result.LastInsertId()
		if err != nil {
			return plan.RespuestaTree{}, err
		}

		subpreguntaTree := plan.SubpreguntaTree{
			Subpregunta: plan.Subpregunta{
				ID:          subpreguntaID,
				RespuestaID: respuestaID,
				Texto:       subpregunta.Texto,
			},
			OpcionesLikert: make([]plan.OpcionLikert, 0, len(subpregunta.OpcionesLikert)),
		}

		for _, etiqueta := range subpregunta.OpcionesLikert {
			result, err := tx.ExecContext(ctx,
				`INSERT INTO opciones_likert (subpregunta_id, etiqueta) VALUES (?, ?)`,
				subpreguntaID, etiqueta,
			)
			if err != nil {
				return plan.RespuestaTree{}, err
			}
			rungID, err := result.LastInsertId()
			if err != nil {
				return plan.RespuestaTree{}, err
			}
			subpreguntaTree.OpcionesLikert = append(subpreguntaTree.OpcionesLikert, plan.OpcionLikert{
				ID:            rungID,
				SubpreguntaID: subpreguntaID,
				Etiqueta:      etiqueta,
			})
		}

		tree.Subpreguntas = append(tree.Subpreguntas, subpreguntaTree)
	}

	if err := tx.Commit(); err != nil {
		return plan.RespuestaTree{}, err
	}
	return tree, nil
}
