package animals

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("animal not found")
	ErrInvalidInput = errors.New("invalid input")
)

type ReadService struct {
	repo Repository
}

func NewReadService(repo Repository) *ReadService {
	return &ReadService{repo: repo}
}

// FindByID carga un animal con los metadatos de su archivo adjunto.
func (s *ReadService) FindByID(ctx context.Context, id int64) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Animal{}, fmt.Errorf("no animal with id %d: %w", id, ErrNotFound)
		}
		return Animal{}, err
	}
	return a, nil
}

// FindFileByAnimalID devuelve el archivo del animal. Que no haya archivo
// no es un error: se devuelve ok=false.
func (s *ReadService) FindFileByAnimalID(ctx context.Context, animalID int64) (AnimalFile, bool, error) {
	return s.repo.GetFileByAnimalID(ctx, animalID)
}
