package postgres

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"zoo-registry/internal/domain/zoos"
)

var dialect = goqu.Dialect("postgres")

const zoosTable = "zoos"

var zooColumns = []any{
	"id", "version", "designation", "entrance_fee",
	"open", "homepage", "created_at", "updated_at",
}

// filterExpressions arma un predicado por criterio presente; se combinan
// con AND. designation busca substring case-insensitive, entranceFee es
// cota superior, open y homepage igualdad exacta.
func filterExpressions(c zoos.SearchCriteria) []goqu.Expression {
	exprs := make([]goqu.Expression, 0, 4)
	if c.Designation != nil {
		exprs = append(exprs, goqu.I("designation").ILike("%"+*c.Designation+"%"))
	}
	if c.EntranceFee != nil {
		exprs = append(exprs, goqu.I("entrance_fee").Lte(c.EntranceFee.String()))
	}
	if c.Open != nil {
		exprs = append(exprs, goqu.I("open").Eq(*c.Open))
	}
	if c.Homepage != nil {
		exprs = append(exprs, goqu.I("homepage").Eq(*c.Homepage))
	}
	return exprs
}

// buildFindQuery genera el SELECT filtrado y paginado. Size == 0 saltea la
// paginación (lectura completa). El orden por id es fijo para que la
// paginación sea estable.
func buildFindQuery(c zoos.SearchCriteria, p zoos.Pageable) (string, []any, error) {
	ds := dialect.From(zoosTable).
		Select(zooColumns...).
		Where(filterExpressions(c)...).
		Order(goqu.I("id").Asc())

	if p.Size > 0 {
		ds = ds.Limit(uint(p.Size)).Offset(uint(p.Page * p.Size))
	}

	return ds.Prepared(true).ToSQL()
}

// buildCountQuery comparte el WHERE con buildFindQuery pero ignora la
// paginación; de acá sale totalElements.
func buildCountQuery(c zoos.SearchCriteria) (string, []any, error) {
	ds := dialect.From(zoosTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(filterExpressions(c)...)

	return ds.Prepared(true).ToSQL()
}
