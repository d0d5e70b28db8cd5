package memory

import (
	"sync"
	"time"

	"zoo-registry/internal/domain/animals"
	"zoo-registry/internal/domain/zoos"
)

// Store es el almacenamiento in-memory compartido por ambos repositorios.
// Tiene que ser uno solo porque el borrado de un zoo cascadea sobre los
// animales y sus archivos.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	zoos         map[int64]zoos.Zoo // sin animales; esos viven en animals
	animals      map[int64]animals.Animal
	files        map[int64]animals.AnimalFile
	fileByAnimal map[int64]int64
}

func NewStore() *Store {
	return &Store{
		now:          time.Now,
		zoos:         make(map[int64]zoos.Zoo),
		animals:      make(map[int64]animals.Animal),
		files:        make(map[int64]animals.AnimalFile),
		fileByAnimal: make(map[int64]int64),
	}
}

func (s *Store) Zoos() zoos.Repository       { return &zooRepo{s: s} }
func (s *Store) Animals() animals.Repository { return &animalRepo{s: s} }

// nextID asume que el caller ya tiene el lock.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}
