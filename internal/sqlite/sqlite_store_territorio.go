package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"casos-nna/internal/territorio"
)

// Territory id lists are persisted as JSON arrays in single columns.
func marshalIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalIDs(raw string) ([]int64, error) {
	if raw == "" {
		return []int64{}, nil
	}
	ids := make([]int64, 0)
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) CreateTerritorio(ctx context.Context, item territorio.Territorio) (territorio.Territorio, error) {
	regionIDs, err := marshalIDs(item.RegionIDs)
	if err != nil {
		return territorio.Territorio{}, err
	}
	provinciaIDs, err := marshalIDs(item.ProvinciaIDs)
	if err != nil {
		return territorio.Territorio{}, err
	}
	comunaIDs, err := marshalIDs(item.ComunaIDs)
	if err != nil {
		return territorio.Territorio{}, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO territorios
			(nombre, codigo, region_ids, provincia_ids, comuna_ids, linea_id, cupo_1, cupo_2, cupo_total, cupos_disponibles)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Nombre, item.Codigo, regionIDs, provinciaIDs, comunaIDs,
		item.LineaID, item.Cupo1, item.Cupo2, item.CupoTotal, item.CuposDisponibles,
	)
	if err != nil {
		return territorio.Territorio{}, err
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return territorio.Territorio{}, err
	}
	return item, nil
}

func (s *Store) ListTerritorios(ctx context.Context) ([]territorio.Territorio, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nombre, codigo, region_ids, provincia_ids, comuna_ids, linea_id, cupo_1, cupo_2, cupo_total, cupos_disponibles
		 FROM territorios ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	territorios := make([]territorio.Territorio, 0)
	for rows.Next() {
		item, err := scanTerritorio(rows.Scan)
		if err != nil {
			return nil, err
		}
		territorios = append(territorios, item)
	}
	return territorios, rows.Err()
}

func (s *Store) GetTerritorio(ctx context.Context, territorioID int64) (territorio.Territorio, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, nombre, codigo, region_ids, provincia_ids, comuna_ids, linea_id, cupo_1, cupo_2, cupo_total, cupos_disponibles
		 FROM territorios WHERE id = ?`,
		territorioID,
	)
	item, err := scanTerritorio(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return territorio.Territorio{}, territorio.ErrTerritorioNotFound
		}
		return territorio.Territorio{}, err
	}
	return item, nil
}

func scanTerritorio(scan func(...any) error) (territorio.Territorio, error) {
	var (
		item                               territorio.Territorio
		regionIDs, provinciaIDs, comunaIDs string
	)
	if err := scan(
		&item.ID, &item.Nombre, &item.Codigo, &regionIDs, &provinciaIDs, &comunaIDs,
		&item.LineaID, &item.Cupo1, &item.Cupo2, &item.CupoTotal, &item.CuposDisponibles,
	); err != nil {
		return territorio.Territorio{}, err
	}

	var err error
	if item.RegionIDs, err = unmarshalIDs(regionIDs); err != nil {
		return territorio.Territorio{}, err
	}
	if item.ProvinciaIDs, err = unmarshalIDs(provinciaIDs); err != nil {
		return territorio.Territorio{}, err
	}
	if item.ComunaIDs, err = unmarshalIDs(comunaIDs); err != nil {
		return territorio.Territorio{}, err
	}
	return item, nil
}

func (s *Store) CreateInstitucion(ctx context.Context, item territorio.Institucion) (territorio.Institucion, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO instituciones
			(nombre, rut, email, telefono, territorio_id, inicio_convocatoria, fin_convocatoria)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Nombre, item.Rut, item.Email, item.Telefono,
		item.TerritorioID, item.InicioConvocatoria, item.FinConvocatoria,
	)
	if err != nil {
		return territorio.Institucion{}, err
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return territorio.Institucion{}, err
	}
	return item, nil
}

func (s *Store) ListInstituciones(ctx context.Context) ([]territorio.Institucion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nombre, rut, email, telefono, territorio_id, inicio_convocatoria, fin_convocatoria
		 FROM instituciones ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instituciones := make([]territorio.Institucion, 0)
	for rows.Next() {
		var item territorio.Institucion
		if err := rows.Scan(
			&item.ID, &item.Nombre, &item.Rut, &item.Email, &item.Telefono,
			&item.TerritorioID, &item.InicioConvocatoria, &item.FinConvocatoria,
		); err != nil {
			return nil, err
		}
		instituciones = append(instituciones, item)
	}
	return instituciones, rows.Err()
}
