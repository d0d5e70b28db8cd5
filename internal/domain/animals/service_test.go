package animals

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID  map[int64]Animal
	files map[int64]AnimalFile // por animal
	seq   int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Animal{}, files: map[int64]AnimalFile{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) (Animal, error) {
	r.seq++
	a.ID = r.seq
	a.Version = 0
	r.byID[a.ID] = a
	return a, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	if f, ok := r.files[id]; ok {
		a.File = &AnimalFile{ID: f.ID, AnimalID: f.AnimalID, Filename: f.Filename, Mimetype: f.Mimetype}
	}
	return a, nil
}

func (r *testRepo) GetFileByAnimalID(ctx context.Context, animalID int64) (AnimalFile, bool, error) {
	f, ok := r.files[animalID]
	if !ok {
		return AnimalFile{}, false, nil
	}
	return f, true, nil
}

func (r *testRepo) ReplaceFile(ctx context.Context, f AnimalFile) (AnimalFile, error) {
	a, ok := r.byID[f.AnimalID]
	if !ok {
		return AnimalFile{}, ErrNotFound
	}
	r.seq++
	f.ID = r.seq
	r.files[f.AnimalID] = f
	a.Version++
	r.byID[f.AnimalID] = a
	return f, nil
}

func newFixture() (*WriteService, *ReadService, *testRepo) {
	repo := newTestRepo()
	read := NewReadService(repo)
	return NewWriteService(repo, read), read, repo
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newFixture()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"blank designation", CreateInput{Designation: "  ", Species: SpeciesFish, Weight: decimal.NewFromInt(1)}},
		{"unknown species", CreateInput{Designation: "Nemo", Species: "dragon", Weight: decimal.NewFromInt(1)}},
		{"negative weight", CreateInput{Designation: "Nemo", Species: SpeciesFish, Weight: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreate_FindByIDRoundTrip(t *testing.T) {
	svc, read, _ := newFixture()

	id, err := svc.Create(context.Background(), CreateInput{
		Designation: "Nemo",
		Species:     SpeciesFish,
		Weight:      decimal.NewFromFloat(0.250),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err := read.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if a.Designation != "Nemo" || a.Species != SpeciesFish {
		t.Fatalf("unexpected animal: %+v", a)
	}
	if a.File != nil {
		t.Fatalf("fresh animal must have no file")
	}
}

func TestFindByID_NotFound(t *testing.T) {
	_, read, _ := newFixture()

	_, err := read.FindByID(context.Background(), 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddFile_ReplacesPrevious(t *testing.T) {
	svc, read, _ := newFixture()

	id, err := svc.Create(context.Background(), CreateInput{
		Designation: "Nemo", Species: SpeciesFish, Weight: decimal.NewFromFloat(0.250),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddFile(context.Background(), id, []byte("first"), "a.png", "image/png"); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if _, err := svc.AddFile(context.Background(), id, []byte("second"), "b.jpg", "image/jpeg"); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	f, found, err := read.FindFileByAnimalID(context.Background(), id)
	if err != nil || !found {
		t.Fatalf("file lookup: found=%v err=%v", found, err)
	}
	if string(f.Data) != "second" || f.Filename != "b.jpg" {
		t.Fatalf("previous file survived: %+v", f)
	}
}

func TestAddFile_Validation(t *testing.T) {
	svc, _, _ := newFixture()

	id, err := svc.Create(context.Background(), CreateInput{
		Designation: "Nemo", Species: SpeciesFish, Weight: decimal.NewFromFloat(0.250),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddFile(context.Background(), id, nil, "a.png", "image/png"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty data: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.AddFile(context.Background(), id, []byte("x"), " ", "image/png"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank filename: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.AddFile(context.Background(), 99, []byte("x"), "a.png", "image/png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown animal: expected ErrNotFound, got %v", err)
	}
}
