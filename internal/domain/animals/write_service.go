package animals

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type WriteService struct {
	repo Repository
	read *ReadService
}

func NewWriteService(repo Repository, read *ReadService) *WriteService {
	return &WriteService{repo: repo, read: read}
}

type CreateInput struct {
	ZooID       int64
	Designation string
	Species     Species
	Weight      decimal.Decimal
}

func (s *WriteService) Create(ctx context.Context, in CreateInput) (int64, error) {
	if strings.TrimSpace(in.Designation) == "" {
		return 0, ErrInvalidInput
	}
	if !in.Species.Valid() {
		return 0, ErrInvalidInput
	}
	if in.Weight.IsNegative() {
		return 0, ErrInvalidInput
	}

	a := Animal{
		ZooID:       in.ZooID,
		Designation: strings.TrimSpace(in.Designation),
		Species:     in.Species,
		Weight:      in.Weight,
	}

	saved, err := s.repo.Create(ctx, a)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

// AddFile reemplaza el archivo adjunto del animal: el contenido anterior se
// borra por completo, nunca se versiona ni se mezcla.
func (s *WriteService) AddFile(ctx context.Context, animalID int64, data []byte, filename, mimetype string) (AnimalFile, error) {
	if len(data) == 0 || strings.TrimSpace(filename) == "" {
		return AnimalFile{}, ErrInvalidInput
	}

	// El animal tiene que existir; NotFound se propaga tal cual.
	if _, err := s.read.FindByID(ctx, animalID); err != nil {
		return AnimalFile{}, err
	}

	f := AnimalFile{
		AnimalID: animalID,
		Data:     data,
		Filename: filename,
		Mimetype: mimetype,
	}
	return s.repo.ReplaceFile(ctx, f)
}
