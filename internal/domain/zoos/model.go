package zoos

import (
	"time"

	"github.com/shopspring/decimal"

	"zoo-registry/internal/domain/animals"
)

// Zoo es el agregado principal: dirección 1:1 y animales 1:N son propiedad
// exclusiva del zoo y mueren con él.
type Zoo struct {
	ID      int64
	Version int64 // contador de concurrencia optimista, lo incrementa cada update

	Designation string // único a nivel global
	EntranceFee decimal.Decimal
	Open        bool
	Homepage    string

	// Address siempre se carga junto al zoo; Animals solo bajo demanda.
	Address *Address
	Animals []animals.Animal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address no tiene ciclo de vida propio: se crea y borra con su Zoo.
type Address struct {
	ID          int64
	ZooID       int64
	Country     string
	PostalCode  string
	Street      string
	HouseNumber int
	Surname     string
}

// CoreUpdate son los únicos campos mutables vía PUT; dirección y animales
// no se tocan por esa vía. Llega al repositorio ya resuelto, sin campos
// opcionales.
type CoreUpdate struct {
	Designation string
	EntranceFee decimal.Decimal
	Open        bool
	Homepage    string
}

// CorePatch es lo que manda el cliente: un campo nil conserva el valor
// persistido.
type CorePatch struct {
	Designation *string
	EntranceFee *decimal.Decimal
	Open        *bool
	Homepage    *string
}

// applyTo mergea el patch sobre el zoo persistido y devuelve los campos
// core resueltos.
func (p CorePatch) applyTo(z Zoo) CoreUpdate {
	core := CoreUpdate{
		Designation: z.Designation,
		EntranceFee: z.EntranceFee,
		Open:        z.Open,
		Homepage:    z.Homepage,
	}
	if p.Designation != nil {
		core.Designation = *p.Designation
	}
	if p.EntranceFee != nil {
		core.EntranceFee = *p.EntranceFee
	}
	if p.Open != nil {
		core.Open = *p.Open
	}
	if p.Homepage != nil {
		core.Homepage = *p.Homepage
	}
	return core
}
