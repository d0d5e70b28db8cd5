package zoos

import "context"

type Repository interface {
	// Create persiste el zoo junto con su dirección y animales anidados en
	// una sola transacción. Una violación de unicidad en designation se
	// mapea a ErrDesignationExists.
	Create(ctx context.Context, z Zoo) (Zoo, error)

	// GetByID carga el zoo siempre con su dirección; los animales solo si
	// withAnimals es true.
	GetByID(ctx context.Context, id int64, withAnimals bool) (Zoo, error)

	// FindMatching aplica los criterios y la paginación y devuelve además
	// el total de coincidencias ignorando la paginación (mismo predicado).
	FindMatching(ctx context.Context, c SearchCriteria, p Pageable) ([]Zoo, int64, error)

	ExistsByDesignation(ctx context.Context, designation string) (bool, error)

	// UpdateCore es un compare-and-swap: escribe los campos core e
	// incrementa la versión solo si la persistida coincide con
	// expectedVersion. Devuelve la versión nueva o ErrVersionConflict.
	UpdateCore(ctx context.Context, id int64, core CoreUpdate, expectedVersion int64) (int64, error)

	// Delete borra dirección, animales y zoo dentro de una transacción.
	// Devuelve true si el borrado final del zoo afectó alguna fila.
	Delete(ctx context.Context, id int64) (bool, error)
}
