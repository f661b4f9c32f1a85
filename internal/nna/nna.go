package nna

import "errors"

var ErrNnaNotFound = errors.New("nna not found")

// Nna is a registered child subject. Registration consumes one slot of its
// territorio; deletion releases it.
type Nna struct {
	ID              int64  `json:"id"`
	Folio           string `json:"folio"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	Rut             string `json:"rut"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	ComunaID        int64  `json:"comuna_id"`
	TerritorioID    int64  `json:"territorio_id"`
	LineaID         int64  `json:"linea_id"`
}

type Cuidador struct {
	ID         int64  `json:"id"`
	NnaID      int64  `json:"nna_id"`
	Nombres    string `json:"nombres"`
	Rut        string `json:"rut"`
	Parentesco string `json:"parentesco"`
}

// Aspl is the incarcerated relative linked to the subject.
type Aspl struct {
	ID      int64  `json:"id"`
	NnaID   int64  `json:"nna_id"`
	Nombres string `json:"nombres"`
	Recinto string `json:"recinto"`
}

// Ficha is the full read model of one subject.
type Ficha struct {
	Nna
	Cuidador *Cuidador `json:"cuidador,omitempty"`
	Aspl     *Aspl     `json:"aspl,omitempty"`
}
