package sqlite

import (
	"context"
)

func (s *Store) initSchema(ctx context.Context) error {
	// References between tables are application-enforced; the schema carries
	// no FK constraints so cascades stay controlled by store transactions.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS regiones (
			id INTEGER PRIMARY KEY,
			nombre TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS provincias (
			id INTEGER PRIMARY KEY,
			region_id INTEGER NOT NULL,
			nombre TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS comunas (
			id INTEGER PRIMARY KEY,
			provincia_id INTEGER NOT NULL,
			nombre TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lineas_intervencion (
			id INTEGER PRIMARY KEY,
			nombre TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS planes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre TEXT NOT NULL,
			descripcion TEXT NOT NULL DEFAULT '',
			linea_id INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS evaluaciones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			plan_id INTEGER NOT NULL,
			nombre TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS preguntas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			evaluacion_id INTEGER NOT NULL,
			texto TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS respuestas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pregunta_id INTEGER NOT NULL,
			tipo TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS opciones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			respuesta_id INTEGER NOT NULL,
			etiqueta TEXT NOT NULL,
			valor TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS subpreguntas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			respuesta_id INTEGER NOT NULL,
			texto TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS opciones_likert (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subpregunta_id INTEGER NOT NULL,
			etiqueta TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS respuestas_nna (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nna_id INTEGER NOT NULL,
			evaluacion_id INTEGER NOT NULL,
			pregunta_id INTEGER NOT NULL,
			subpregunta_id INTEGER,
			tipo TEXT NOT NULL DEFAULT '',
			respuesta TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS ponderaciones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			plan_id INTEGER NOT NULL,
			evaluacion_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS detalle_ponderaciones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ponderacion_id INTEGER NOT NULL,
			pregunta_id INTEGER NOT NULL,
			subpregunta_id INTEGER,
			tipo TEXT NOT NULL,
			valor REAL NOT NULL,
			respuesta_correcta TEXT,
			respuesta_correcta_id INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS territorios (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre TEXT NOT NULL,
			codigo TEXT NOT NULL,
			region_ids TEXT NOT NULL DEFAULT '[]',
			provincia_ids TEXT NOT NULL DEFAULT '[]',
			comuna_ids TEXT NOT NULL DEFAULT '[]',
			linea_id INTEGER NOT NULL,
			cupo_1 INTEGER NOT NULL DEFAULT 0,
			cupo_2 INTEGER NOT NULL DEFAULT 0,
			cupo_total INTEGER NOT NULL DEFAULT 0,
			cupos_disponibles INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS instituciones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre TEXT NOT NULL,
			rut TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			telefono TEXT NOT NULL DEFAULT '',
			territorio_id INTEGER NOT NULL,
			inicio_convocatoria TEXT NOT NULL DEFAULT '',
			fin_convocatoria TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS nna (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			folio TEXT NOT NULL,
			nombres TEXT NOT NULL,
			apellidos TEXT NOT NULL,
			rut TEXT NOT NULL DEFAULT '',
			fecha_nacimiento TEXT NOT NULL DEFAULT '',
			comuna_id INTEGER NOT NULL DEFAULT 0,
			territorio_id INTEGER NOT NULL,
			linea_id INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cuidadores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nna_id INTEGER NOT NULL,
			nombres TEXT NOT NULL,
			rut TEXT NOT NULL DEFAULT '',
			parentesco TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS aspl (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nna_id INTEGER NOT NULL,
			nombres TEXT NOT NULL,
			recinto TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_provincias_region ON provincias(region_id);`,
		`CREATE INDEX IF NOT EXISTS idx_comunas_provincia ON comunas(provincia_id);`,
		`CREATE INDEX IF NOT EXISTS idx_evaluaciones_plan ON evaluaciones(plan_id);`,
		`CREATE INDEX IF NOT EXISTS idx_preguntas_evaluacion ON preguntas(evaluacion_id);`,
		`CREATE INDEX IF NOT EXISTS idx_respuestas_pregunta ON respuestas(pregunta_id);`,
		`CREATE INDEX IF NOT EXISTS idx_opciones_respuesta ON opciones(respuesta_id);`,
		`CREATE INDEX IF NOT EXISTS idx_subpreguntas_respuesta ON subpreguntas(respuesta_id);`,
		`CREATE INDEX IF NOT EXISTS idx_opciones_likert_subpregunta ON opciones_likert(subpregunta_id);`,
		`CREATE INDEX IF NOT EXISTS idx_respuestas_nna_clave ON respuestas_nna(nna_id, evaluacion_id, pregunta_id);`,
		`CREATE INDEX IF NOT EXISTS idx_detalle_ponderacion ON detalle_ponderaciones(ponderacion_id);`,
		`CREATE INDEX IF NOT EXISTS idx_instituciones_territorio ON instituciones(territorio_id);`,
		`CREATE INDEX IF NOT EXISTS idx_nna_territorio ON nna(territorio_id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
