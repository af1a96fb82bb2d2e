package entity

import "time"

// Unidades de medida admitidas por el catálogo.
const (
	UnitUnit  = "UNIT"
	UnitKG    = "KG"
	UnitG     = "G"
	UnitL     = "L"
	UnitML    = "ML"
	UnitM     = "M"
	UnitCM    = "CM"
	UnitM2    = "M2"
	UnitM3    = "M3"
	UnitPack  = "PACK"
	UnitBox   = "BOX"
	UnitDozen = "DOZEN"
)

// ValidUnit indica si la unidad pertenece al catálogo de unidades.
func ValidUnit(u string) bool {
	switch u {
	case UnitUnit, UnitKG, UnitG, UnitL, UnitML, UnitM, UnitCM, UnitM2, UnitM3, UnitPack, UnitBox, UnitDozen:
		return true
	}
	return false
}

// Product es la vista mínima del producto que necesita el libro de inventario.
// El catálogo (externo) es dueño del resto de atributos; aquí solo importan la identidad y el tenant.
type Product struct {
	ID        string
	TenantID  string
	SKU       string // único por tenant
	Barcode   string // opcional, único por tenant
	Name      string
	Unit      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
