package zoos

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDesignationExists = errors.New("designation already exists")
	ErrVersionInvalid    = errors.New("version is not a number")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrVersionConflict lo devuelve el repositorio cuando el update
	// condicional no afecta filas (la versión cambió entre leer y escribir).
	ErrVersionConflict = errors.New("version conflict")
)

// VersionOutdatedError lleva la versión persistida actual para que el
// cliente pueda reintentar.
type VersionOutdatedError struct {
	Current int64
}

func (e *VersionOutdatedError) Error() string {
	return fmt.Sprintf("version is outdated, current version is %d", e.Current)
}
