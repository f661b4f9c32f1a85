package sqlite

import (
	"context"

	"casos-nna/internal/catalog"
)

// SeedCatalog loads the reference tables. INSERT OR IGNORE keeps reloads of
// the same seed file idempotent.
func (s *Store) SeedCatalog(ctx context.Context, seed catalog.Seed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, region := range seed.Regiones {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO regiones (id, nombre) VALUES (?, ?)`,
			region.ID, region.Nombre,
		); err != nil {
			return err
		}
	}
	for _, provincia := range seed.Provincias {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO provincias (id, region_id, nombre) VALUES (?, ?, ?)`,
			provincia.ID, provincia.RegionID, provincia.Nombre,
		); err != nil {
			return err
		}
	}
	for _, comuna := range seed.Comunas {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO comunas (id, provincia_id, nombre) VALUES (?, ?, ?)`,
			comuna.ID, comuna.ProvinciaID, comuna.Nombre,
		); err != nil {
			return err
		}
	}
	for _, linea := range seed.Lineas {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO lineas_intervencion (id, nombre) VALUES (?, ?)`,
			linea.ID, linea.Nombre,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) ListRegiones(ctx context.Context) ([]catalog.Region, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nombre FROM regiones ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regiones := make([]catalog.Region, 0)
	for rows.Next() {
		var region catalog.Region
		if err := rows.Scan(&region.ID, &region.Nombre); err != nil {
			return nil, err
		}
		regiones = append(regiones, region)
	}
	return regiones, rows.Err()
}

func (s *Store) ListProvincias(ctx context.Context, regionID int64) ([]catalog.Provincia, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, region_id, nombre FROM provincias WHERE region_id = ? ORDER BY id ASC`,
		regionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	provincias := make([]catalog.Provincia, 0)
	for rows.Next() {
		var provincia catalog.Provincia
		if err := rows.Scan(&provincia.ID, &provincia.RegionID, &provincia.Nombre); err != nil {
			return nil, err
		}
		provincias = append(provincias, provincia)
	}
	return provincias, rows.Err()
}

func (s *Store) ListComunas(ctx context.Context, provinciaID int64) ([]catalog.Comuna, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, provincia_id, nombre FROM comunas WHERE provincia_id = ? ORDER BY id ASC`,
		provinciaID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comunas := make([]catalog.Comuna, 0)
	for rows.Next() {
		var comuna catalog.Comuna
		if err := rows.Scan(&comuna.ID, &comuna.ProvinciaID, &comuna.Nombre); err != nil {
			return nil, err
		}
		comunas = append(comunas, comuna)
	}
	return comunas, rows.Err()
}

func (s *Store) ListLineas(ctx context.Context) ([]catalog.LineaIntervencion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nombre FROM lineas_intervencion ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lineas := make([]catalog.LineaIntervencion, 0)
	for rows.Next() {
		var linea catalog.LineaIntervencion
		if err := rows.Scan(&linea.ID, &linea.Nombre); err != nil {
			return nil, err
		}
		lineas = append(lineas, linea)
	}
	return lineas, rows.Err()
}

func (s *Store) LineaExists(ctx context.Context, lineaID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM lineas_intervencion WHERE id = ? LIMIT 1`, lineaID)
}

func (s *Store) RegionExists(ctx context.Context, regionID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM regiones WHERE id = ? LIMIT 1`, regionID)
}

func (s *Store) ProvinciaExists(ctx context.Context, provinciaID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM provincias WHERE id = ? LIMIT 1`, provinciaID)
}
