package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"zoo-registry/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sqlx.DB
}

func NewAnimalsRepo(db *sqlx.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

type animalRow struct {
	ID          int64           `db:"id"`
	Version     int64           `db:"version"`
	ZooID       sql.NullInt64   `db:"zoo_id"`
	Designation string          `db:"designation"`
	Species     string          `db:"species"`
	Weight      decimal.Decimal `db:"weight"`
}

func (row animalRow) toDomain() animals.Animal {
	return animals.Animal{
		ID:          row.ID,
		Version:     row.Version,
		ZooID:       row.ZooID.Int64,
		Designation: row.Designation,
		Species:     animals.Species(row.Species),
		Weight:      row.Weight,
	}
}

func toNullID(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO animals (zoo_id, designation, species, weight)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version
	`, toNullID(a.ZooID), a.Designation, a.Species, a.Weight).
		Scan(&a.ID, &a.Version)
	if err != nil {
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	var row struct {
		animalRow
		FileID       sql.NullInt64  `db:"file_id"`
		FileFilename sql.NullString `db:"file_filename"`
		FileMimetype sql.NullString `db:"file_mimetype"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT a.id, a.version, a.zoo_id, a.designation, a.species, a.weight,
		       f.id AS file_id, f.filename AS file_filename, f.mimetype AS file_mimetype
		FROM animals a
		LEFT JOIN animal_files f ON f.animal_id = a.id
		WHERE a.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}

	a := row.toDomain()
	if row.FileID.Valid {
		a.File = &animals.AnimalFile{
			ID:       row.FileID.Int64,
			AnimalID: a.ID,
			Filename: row.FileFilename.String,
			Mimetype: row.FileMimetype.String,
		}
	}
	return a, nil
}

func (r *AnimalsRepo) GetFileByAnimalID(ctx context.Context, animalID int64) (animals.AnimalFile, bool, error) {
	var f animals.AnimalFile
	err := r.db.QueryRowxContext(ctx, `
		SELECT id, animal_id, data, mimetype, filename
		FROM animal_files
		WHERE animal_id = $1
	`, animalID).Scan(&f.ID, &f.AnimalID, &f.Data, &f.Mimetype, &f.Filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.AnimalFile{}, false, nil
		}
		return animals.AnimalFile{}, false, err
	}
	return f, true, nil
}

// ReplaceFile borra el archivo anterior del animal (si hay) e inserta el
// nuevo en la misma transacción; después re-graba el animal subiendo su
// versión, igual que hacía el save de la entidad.
func (r *AnimalsRepo) ReplaceFile(ctx context.Context, f animals.AnimalFile) (animals.AnimalFile, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return animals.AnimalFile{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM animal_files WHERE animal_id = $1`, f.AnimalID); err != nil {
		return animals.AnimalFile{}, err
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO animal_files (animal_id, data, mimetype, filename)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, f.AnimalID, f.Data, f.Mimetype, f.Filename).Scan(&f.ID)
	if err != nil {
		return animals.AnimalFile{}, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE animals SET version = version + 1 WHERE id = $1`, f.AnimalID)
	if err != nil {
		return animals.AnimalFile{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return animals.AnimalFile{}, err
	} else if n == 0 {
		return animals.AnimalFile{}, animals.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return animals.AnimalFile{}, err
	}
	return f, nil
}
