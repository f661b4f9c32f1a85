package sqlite

import (
	"context"
	"database/sql"

	"casos-nna/internal/respuesta"
)

// UpsertRespuestas writes one row per item keyed on (nna, evaluacion,
// pregunta, subpregunta) in a single transaction. The nullable subpregunta
// component rules out a UNIQUE constraint, so the key is enforced with an
// update-then-insert.
func (s *Store) UpsertRespuestas(ctx context.Context, nnaID, evaluacionID int64, items []respuesta.Item) error {
	found, err := s.exists(ctx, `SELECT 1 FROM evaluaciones WHERE id = ? LIMIT 1`, evaluacionID)
	if err != nil {
		return err
	}
	if !found {
		return respuesta.ErrEvaluacionNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		var result sql.Result
		if item.SubpreguntaID == nil {
			result, err = tx.ExecContext(ctx,
				`UPDATE respuestas_nna SET tipo = ?, respuesta = ?
				 WHERE nna_id = ? AND evaluacion_id = ? AND pregunta_id = ? AND subpregunta_id IS NULL`,
				item.Tipo, item.Valor, nnaID, evaluacionID, item.PreguntaID,
			)
		} else {
			result, err = tx.ExecContext(ctx,
				`UPDATE respuestas_nna SET tipo = ?, respuesta = ?
				 WHERE nna_id = ? AND evaluacion_id = ? AND pregunta_id = ? AND subpregunta_id = ?`,
				item.Tipo, item.Valor, nnaID, evaluacionID, item.PreguntaID, *item.SubpreguntaID,
			)
		}
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected > 0 {
			continue
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO respuestas_nna (nna_id, evaluacion_id, pregunta_id, subpregunta_id, tipo, respuesta)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			nnaID, evaluacionID, item.PreguntaID, item.SubpreguntaID, item.Tipo, item.Valor,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListEstadoPorNna counts, for every evaluación, total preguntas against the
// distinct preguntas the subject has answered. A likert pregunta counts as
// answered as soon as any of its rows exists.
func (s *Store) ListEstadoPorNna(ctx context.Context, nnaID int64) ([]respuesta.EstadoEvaluacion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.nombre,
			(SELECT COUNT(*) FROM preguntas q WHERE q.evaluacion_id = e.id),
			(SELECT COUNT(DISTINCT rn.pregunta_id)
			 FROM respuestas_nna rn
			 JOIN preguntas q ON q.id = rn.pregunta_id
			 WHERE q.evaluacion_id = e.id AND rn.nna_id = ?)
		 FROM evaluaciones e
		 ORDER BY e.id ASC`,
		nnaID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	estados := make([]respuesta.EstadoEvaluacion, 0)
	for rows.Next() {
		var estado respuesta.EstadoEvaluacion
		if err := rows.Scan(&estado.EvaluacionID, &estado.Nombre, &estado.TotalPreguntas, &estado.Respondidas); err != nil {
			return nil, err
		}
		estado.Estado, estado.Porcentaje = respuesta.ClasificarEstado(estado.Respondidas, estado.TotalPreguntas)
		estados = append(estados, estado)
	}
	return estados, rows.Err()
}
