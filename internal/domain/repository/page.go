package repository

// Valores de paginación por defecto.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page paginación por número de página (1-based). Es reanudable: la misma página
// sobre los mismos datos devuelve los mismos elementos.
type Page struct {
	Page  int
	Limit int
}

// Normalize aplica valores por defecto y topes.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset desplazamiento SQL de la página ya normalizada.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}
