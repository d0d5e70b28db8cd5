package memory

import (
	"context"

	"zoo-registry/internal/domain/animals"
)

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.ID = r.s.nextID()
	a.Version = 0
	a.File = nil
	r.s.animals[a.ID] = a

	return a, nil
}

func (r *animalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}

	if fid, ok := r.s.fileByAnimal[id]; ok {
		f := r.s.files[fid]
		// solo metadatos, el payload se pide aparte
		a.File = &animals.AnimalFile{
			ID:       f.ID,
			AnimalID: f.AnimalID,
			Filename: f.Filename,
			Mimetype: f.Mimetype,
		}
	}
	return a, nil
}

func (r *animalRepo) GetFileByAnimalID(ctx context.Context, animalID int64) (animals.AnimalFile, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	fid, ok := r.s.fileByAnimal[animalID]
	if !ok {
		return animals.AnimalFile{}, false, nil
	}

	f := r.s.files[fid]
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	f.Data = data
	return f, true, nil
}

func (r *animalRepo) ReplaceFile(ctx context.Context, f animals.AnimalFile) (animals.AnimalFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.animals[f.AnimalID]
	if !ok {
		return animals.AnimalFile{}, animals.ErrNotFound
	}

	if oldID, ok := r.s.fileByAnimal[f.AnimalID]; ok {
		delete(r.s.files, oldID)
	}

	f.ID = r.s.nextID()
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	f.Data = data

	r.s.files[f.ID] = f
	r.s.fileByAnimal[f.AnimalID] = f.ID

	// el animal se re-graba con la referencia nueva, eso sube su versión
	a.Version++
	r.s.animals[f.AnimalID] = a

	return f, nil
}
