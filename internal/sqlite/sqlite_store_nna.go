package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"casos-nna/internal/nna"
	"casos-nna/internal/territorio"
)

// RegistrarNna consumes one territory slot and inserts the subject with its
// optional cuidador and aspl, all in one transaction. The slot consumption
// is a conditional decrement so two concurrent registrations can never drive
// the counter negative: zero affected rows means no capacity and the whole
// registration rolls back.
func (s *Store) RegistrarNna(ctx context.Context, subject nna.Nna, cuidador *nna.Cuidador, aspl *nna.Aspl) (nna.Ficha, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nna.Ficha{}, err
	}
	defer tx.Rollback()

	found, err := s.existsTx(ctx, tx, `SELECT 1 FROM territorios WHERE id = ? LIMIT 1`, subject.TerritorioID)
	if err != nil {
		return nna.Ficha{}, err
	}
	if !found {
		return nna.Ficha{}, territorio.ErrTerritorioNotFound
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE territorios SET cupos_disponibles = cupos_disponibles - 1
		 WHERE id = ? AND cupos_disponibles > 0`,
		subject.TerritorioID,
	)
	if err != nil {
		return nna.Ficha{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nna.Ficha{}, err
	}
	if affected == 0 {
		return nna.Ficha{}, territorio.ErrSinCupos
	}

	result, err = tx.ExecContext(ctx,
		`INSERT INTO nna (folio, nombres, apellidos, rut, fecha_nacimiento, comuna_id, territorio_id, linea_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		subject.Folio, subject.Nombres, subject.Apellidos, subject.Rut,
		subject.FechaNacimiento, subject.ComunaID, subject.TerritorioID, subject.LineaID,
	)
	if err != nil {
		return nna.Ficha{}, err
	}
	subject.ID, err = result.LastInsertId()
	if err != nil {
		return nna.Ficha{}, err
	}

	ficha := nna.Ficha{Nna: subject}

	if cuidador != nil {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO cuidadores (nna_id, nombres, rut, parentesco) VALUES (?, ?, ?, ?)`,
			subject.ID, cuidador.Nombres, cuidador.Rut, cuidador.Parentesco,
		)
		if err != nil {
			return nna.Ficha{}, err
		}
		cuidador.ID, err = result.LastInsertId()
		if err != nil {
			return nna.Ficha{}, err
		}
		cuidador.NnaID = subject.ID
		ficha.Cuidador = cuidador
	}

	if aspl != nil {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO aspl (nna_id, nombres, recinto) VALUES (?, ?, ?)`,
			subject.ID, aspl.Nombres, aspl.Recinto,
		)
		if err != nil {
			return nna.Ficha{}, err
		}
		aspl.ID, err = result.LastInsertId()
		if err != nil {
			return nna.Ficha{}, err
		}
		aspl.NnaID = subject.ID
		ficha.Aspl = aspl
	}

	if err := tx.Commit(); err != nil {
		return nna.Ficha{}, err
	}
	return ficha, nil
}

func (s *Store) GetFicha(ctx context.Context, nnaID int64) (nna.Ficha, error) {
	var ficha nna.Ficha
	err := s.db.QueryRowContext(ctx,
		`SELECT id, folio, nombres, apellidos, rut, fecha_nacimiento, comuna_id, territorio_id, linea_id
		 FROM nna WHERE id = ?`,
		nnaID,
	).Scan(
		&ficha.ID, &ficha.Folio, &ficha.Nombres, &ficha.Apellidos, &ficha.Rut,
		&ficha.FechaNacimiento, &ficha.ComunaID, &ficha.TerritorioID, &ficha.LineaID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nna.Ficha{}, nna.ErrNnaNotFound
		}
		return nna.Ficha{}, err
	}

	var cuidador nna.Cuidador
	err = s.db.QueryRowContext(ctx,
		`SELECT id, nna_id, nombres, rut, parentesco FROM cuidadores WHERE nna_id = ? ORDER BY id ASC LIMIT 1`,
		nnaID,
	).Scan(&cuidador.ID, &cuidador.NnaID, &cuidador.Nombres, &cuidador.Rut, &cuidador.Parentesco)
	if err == nil {
		ficha.Cuidador = &cuidador
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nna.Ficha{}, err
	}

	var aspl nna.Aspl
	err = s.db.QueryRowContext(ctx,
		`SELECT id, nna_id, nombres, recinto FROM aspl WHERE nna_id = ? ORDER BY id ASC LIMIT 1`,
		nnaID,
	).Scan(&aspl.ID, &aspl.NnaID, &aspl.Nombres, &aspl.Recinto)
	if err == nil {
		ficha.Aspl = &aspl
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nna.Ficha{}, err
	}

	return ficha, nil
}

// DeleteNna removes the subject with its linked records and releases the
// territory slot, capped at cupo_total.
func (s *Store) DeleteNna(ctx context.Context, nnaID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var territorioID int64
	err = tx.QueryRowContext(ctx, `SELECT territorio_id FROM nna WHERE id = ?`, nnaID).Scan(&territorioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nna.ErrNnaNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM nna WHERE id = ?`, nnaID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cuidadores WHERE nna_id = ?`, nnaID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM aspl WHERE nna_id = ?`, nnaID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE territorios SET cupos_disponibles = cupos_disponibles + 1
		 WHERE id = ? AND cupos_disponibles < cupo_total`,
		territorioID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) existsTx(ctx context.Context, tx *sql.Tx, query string, id int64) (bool, error) {
	var found int
	err := tx.QueryRowContext(ctx, query, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
