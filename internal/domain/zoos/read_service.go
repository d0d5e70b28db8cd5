package zoos

import (
	"context"
	"errors"
	"fmt"
)

type ReadService struct {
	repo Repository
}

func NewReadService(repo Repository) *ReadService {
	return &ReadService{repo: repo}
}

// FindByID carga un zoo por id, siempre con su dirección; los animales
// solo cuando se piden.
func (s *ReadService) FindByID(ctx context.Context, id int64, withAnimals bool) (Zoo, error) {
	z, err := s.repo.GetByID(ctx, id, withAnimals)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Zoo{}, fmt.Errorf("there is no zoo with id %d: %w", id, ErrNotFound)
		}
		return Zoo{}, err
	}
	return z, nil
}

// Find busca zoos según el mapa crudo de criterios. Un mapa vacío delega en
// el listado sin filtrar. Una clave desconocida, un resultado vacío o una
// página vacía fallan con NotFound; se distinguen por el mensaje, no por el
// tipo.
func (s *ReadService) Find(ctx context.Context, raw map[string]string, p Pageable) (Slice, error) {
	if len(raw) == 0 {
		return s.findAll(ctx, p)
	}

	criteria, ok := parseCriteria(raw)
	if !ok {
		return Slice{}, fmt.Errorf("invalid search criteria: %w", ErrNotFound)
	}

	content, total, err := s.repo.FindMatching(ctx, criteria, p)
	if err != nil {
		return Slice{}, err
	}
	if len(content) == 0 {
		return Slice{}, fmt.Errorf("no zoos found for the given criteria, page %d: %w", p.Page, ErrNotFound)
	}
	return Slice{Content: content, TotalElements: total}, nil
}

func (s *ReadService) findAll(ctx context.Context, p Pageable) (Slice, error) {
	content, total, err := s.repo.FindMatching(ctx, SearchCriteria{}, p)
	if err != nil {
		return Slice{}, err
	}
	if len(content) == 0 {
		return Slice{}, fmt.Errorf("invalid page %d: %w", p.Page, ErrNotFound)
	}
	return Slice{Content: content, TotalElements: total}, nil
}
