package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"zoo-registry/internal/domain/animals"
	"zoo-registry/internal/domain/zoos"
)

type ZoosRepo struct {
	db *sqlx.DB
}

func NewZoosRepo(db *sqlx.DB) *ZoosRepo {
	return &ZoosRepo{db: db}
}

type zooRow struct {
	ID          int64           `db:"id"`
	Version     int64           `db:"version"`
	Designation string          `db:"designation"`
	EntranceFee decimal.Decimal `db:"entrance_fee"`
	Open        bool            `db:"open"`
	Homepage    string          `db:"homepage"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (row zooRow) toDomain() zoos.Zoo {
	return zoos.Zoo{
		ID:          row.ID,
		Version:     row.Version,
		Designation: row.Designation,
		EntranceFee: row.EntranceFee,
		Open:        row.Open,
		Homepage:    row.Homepage,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

type addressRow struct {
	ID          int64  `db:"id"`
	ZooID       int64  `db:"zoo_id"`
	Country     string `db:"country"`
	PostalCode  string `db:"postal_code"`
	Street      string `db:"street"`
	HouseNumber int    `db:"house_number"`
	Surname     string `db:"surname"`
}

func (row addressRow) toDomain() zoos.Address {
	return zoos.Address{
		ID:          row.ID,
		ZooID:       row.ZooID,
		Country:     row.Country,
		PostalCode:  row.PostalCode,
		Street:      row.Street,
		HouseNumber: row.HouseNumber,
		Surname:     row.Surname,
	}
}

// Create inserta zoo, dirección y animales en una sola transacción. La
// constraint UNIQUE de designation es la fuente de verdad: su violación se
// devuelve como ErrDesignationExists.
func (r *ZoosRepo) Create(ctx context.Context, z zoos.Zoo) (zoos.Zoo, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return zoos.Zoo{}, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op después del commit

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO zoos (designation, entrance_fee, open, homepage)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version, created_at, updated_at
	`, z.Designation, z.EntranceFee, z.Open, z.Homepage).
		Scan(&z.ID, &z.Version, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return zoos.Zoo{}, fmt.Errorf("%w: %s", zoos.ErrDesignationExists, z.Designation)
		}
		return zoos.Zoo{}, err
	}

	addr := *z.Address
	addr.ZooID = z.ID
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO addresses (zoo_id, country, postal_code, street, house_number, surname)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, addr.ZooID, addr.Country, addr.PostalCode, addr.Street, addr.HouseNumber, addr.Surname).
		Scan(&addr.ID)
	if err != nil {
		return zoos.Zoo{}, err
	}
	z.Address = &addr

	created := make([]animals.Animal, 0, len(z.Animals))
	for _, a := range z.Animals {
		a.ZooID = z.ID
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO animals (zoo_id, designation, species, weight)
			VALUES ($1, $2, $3, $4)
			RETURNING id, version
		`, a.ZooID, a.Designation, a.Species, a.Weight).
			Scan(&a.ID, &a.Version)
		if err != nil {
			return zoos.Zoo{}, err
		}
		created = append(created, a)
	}
	z.Animals = created

	if err := tx.Commit(); err != nil {
		return zoos.Zoo{}, err
	}
	return z, nil
}

func (r *ZoosRepo) GetByID(ctx context.Context, id int64, withAnimals bool) (zoos.Zoo, error) {
	var row zooRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, version, designation, entrance_fee, open, homepage, created_at, updated_at
		FROM zoos
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zoos.Zoo{}, zoos.ErrNotFound
		}
		return zoos.Zoo{}, err
	}
	z := row.toDomain()

	var addr addressRow
	err = r.db.GetContext(ctx, &addr, `
		SELECT id, zoo_id, country, postal_code, street, house_number, surname
		FROM addresses
		WHERE zoo_id = $1
	`, id)
	if err == nil {
		a := addr.toDomain()
		z.Address = &a
	} else if !errors.Is(err, sql.ErrNoRows) {
		return zoos.Zoo{}, err
	}

	if withAnimals {
		var rows []animalRow
		err = r.db.SelectContext(ctx, &rows, `
			SELECT id, version, zoo_id, designation, species, weight
			FROM animals
			WHERE zoo_id = $1
			ORDER BY id ASC
		`, id)
		if err != nil {
			return zoos.Zoo{}, err
		}
		z.Animals = make([]animals.Animal, 0, len(rows))
		for _, ar := range rows {
			z.Animals = append(z.Animals, ar.toDomain())
		}
	}

	return z, nil
}

func (r *ZoosRepo) FindMatching(ctx context.Context, c zoos.SearchCriteria, p zoos.Pageable) ([]zoos.Zoo, int64, error) {
	query, args, err := buildFindQuery(c, p)
	if err != nil {
		return nil, 0, err
	}

	var rows []zooRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := buildCountQuery(c)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	out := make([]zoos.Zoo, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

func (r *ZoosRepo) ExistsByDesignation(ctx context.Context, designation string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM zoos WHERE designation = $1)`, designation)
	return exists, err
}

// UpdateCore es el compare-and-swap: la condición de versión va en el
// WHERE, así dos updates concurrentes nunca pisan la misma versión.
func (r *ZoosRepo) UpdateCore(ctx context.Context, id int64, core zoos.CoreUpdate, expectedVersion int64) (int64, error) {
	var newVersion int64
	err := r.db.QueryRowxContext(ctx, `
		UPDATE zoos
		SET designation = $2,
		    entrance_fee = $3,
		    open = $4,
		    homepage = $5,
		    version = version + 1,
		    updated_at = now()
		WHERE id = $1 AND version = $6
		RETURNING version
	`, id, core.Designation, core.EntranceFee, core.Open, core.Homepage, expectedVersion).
		Scan(&newVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, zoos.ErrVersionConflict
		}
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", zoos.ErrDesignationExists, core.Designation)
		}
		return 0, err
	}
	return newVersion, nil
}

// Delete borra dirección, animales y zoo dentro de una transacción; los
// archivos de los animales caen por la FK ON DELETE CASCADE. Cualquier
// fallo revierte los tres borrados.
func (r *ZoosRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM addresses WHERE zoo_id = $1`, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM animals WHERE zoo_id = $1`, id); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM zoos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
