package zoos

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 5
)

// Pageable describe la paginación pedida. Size == 0 significa "sin
// paginación": se devuelven todas las filas (se usa internamente para
// obtener resultados completos).
type Pageable struct {
	Page int
	Size int
}

// Slice es una página de resultados más el total de coincidencias
// ignorando la paginación.
type Slice struct {
	Content       []Zoo
	TotalElements int64
}

// SearchCriteria es el conjunto cerrado de filtros reconocidos. Un campo
// nil no aplica predicado; los presentes se combinan con AND.
type SearchCriteria struct {
	Designation *string          // substring, case-insensitive
	EntranceFee *decimal.Decimal // cota superior: fee <= valor
	Open        *bool            // igualdad exacta
	Homepage    *string          // igualdad exacta
}

func (c SearchCriteria) Empty() bool {
	return c.Designation == nil && c.EntranceFee == nil && c.Open == nil && c.Homepage == nil
}

// filterKeys es el set estático de claves de búsqueda válidas; cualquier
// otra clave se rechaza antes de llegar al repositorio.
var filterKeys = map[string]struct{}{
	"designation": {},
	"entranceFee": {},
	"open":        {},
	"homepage":    {},
}

// parseCriteria convierte el mapa crudo de la query en criterios tipados.
// Claves desconocidas: error. entranceFee no numérico: se ignora el
// predicado. open: "true"/"false" (cualquier capitalización) coercionan a
// bool, cualquier otro string coerciona a false.
func parseCriteria(raw map[string]string) (SearchCriteria, bool) {
	var c SearchCriteria
	for key, value := range raw {
		if _, ok := filterKeys[key]; !ok {
			return SearchCriteria{}, false
		}
		switch key {
		case "designation":
			v := value
			c.Designation = &v
		case "entranceFee":
			fee, err := decimal.NewFromString(value)
			if err != nil {
				continue
			}
			c.EntranceFee = &fee
		case "open":
			open := strings.EqualFold(value, "true")
			c.Open = &open
		case "homepage":
			v := value
			c.Homepage = &v
		}
	}
	return c, true
}
