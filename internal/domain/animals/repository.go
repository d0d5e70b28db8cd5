package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) (Animal, error)
	// GetByID carga el animal con los metadatos de su archivo (si tiene).
	GetByID(ctx context.Context, id int64) (Animal, error)
	// GetFileByAnimalID devuelve el archivo completo; (zero, false, nil) si no hay.
	GetFileByAnimalID(ctx context.Context, animalID int64) (AnimalFile, bool, error)
	// ReplaceFile borra cualquier archivo previo del animal e inserta el nuevo,
	// todo dentro de una transacción. Incrementa la versión del animal.
	ReplaceFile(ctx context.Context, f AnimalFile) (AnimalFile, error)
}
