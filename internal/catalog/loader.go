package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Seed mirrors the reference-data file shipped alongside the service. The
// file is authoritative for ids so the same territory definitions can be
// reloaded on every start without drift.
type Seed struct {
	Regiones   []Region            `json:"regiones"`
	Provincias []Provincia         `json:"provincias"`
	Comunas    []Comuna            `json:"comunas"`
	Lineas     []LineaIntervencion `json:"lineas"`
}

func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read catalog seed: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse catalog seed: %w", err)
	}

	for idx, region := range seed.Regiones {
		if region.ID <= 0 || region.Nombre == "" {
			return Seed{}, fmt.Errorf("catalog seed: regiones[%d] needs id and nombre", idx)
		}
	}
	for idx, provincia := range seed.Provincias {
		if provincia.ID <= 0 || provincia.RegionID <= 0 || provincia.Nombre == "" {
			return Seed{}, fmt.Errorf("catalog seed: provincias[%d] needs id, region_id and nombre", idx)
		}
	}
	for idx, comuna := range seed.Comunas {
		if comuna.ID <= 0 || comuna.ProvinciaID <= 0 || comuna.Nombre == "" {
			return Seed{}, fmt.Errorf("catalog seed: comunas[%d] needs id, provincia_id and nombre", idx)
		}
	}
	for idx, linea := range seed.Lineas {
		if linea.ID <= 0 || linea.Nombre == "" {
			return Seed{}, fmt.Errorf("catalog seed: lineas[%d] needs id and nombre", idx)
		}
	}

	return seed, nil
}

func (s *Service) LoadAndSeed(ctx context.Context, path string) error {
	seed, err := LoadSeed(path)
	if err != nil {
		return err
	}
	return s.repo.SeedCatalog(ctx, seed)
}
