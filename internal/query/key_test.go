package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altovivo/client-go/internal/query"
)

func TestKey_IgualdadEstructural(t *testing.T) {
	// Caso 1: tuplas estructuralmente iguales direccionan el mismo slot.
	a := query.NewKey("businesses", int64(5), "clients")
	b := query.ClientsKey(5)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())

	// Caso 2: el orden de los segmentos importa.
	c := query.NewKey("clients", int64(5), "businesses")
	assert.False(t, a.Equal(c))

	// Caso 3: distinta longitud nunca es igual.
	assert.False(t, a.Equal(query.ClientKey(5, 9)))
}

func TestKey_PrefijoPorSegmentos(t *testing.T) {
	base := query.ClientsKey(5)

	// Caso 1: toda clave es prefijo de sí misma.
	assert.True(t, base.HasPrefix(base))

	// Caso 2: el prefijo alcanza claves anidadas.
	assert.True(t, query.ClientStatsKey(5, 9).HasPrefix(base))
	assert.True(t, query.ClientKey(5, 9).HasPrefix(base))

	// Caso 3: negocio distinto no comparte prefijo.
	assert.False(t, query.ClientsKey(6).HasPrefix(base))

	// Caso 4: el prefijo es por segmento, no por texto: "businesses/5" no es
	// prefijo de "businesses/55".
	assert.False(t, query.BusinessKey(55).HasPrefix(query.BusinessKey(5)))
}

func TestKey_ParamsCanonicos(t *testing.T) {
	// Caso 1: el orden de inserción no afecta la forma canónica.
	a := query.SalesKey(5).WithParams(query.Params{"from": "2026-01-01", "to": "2026-01-31"})
	b := query.SalesKey(5).WithParams(query.Params{"to": "2026-01-31", "from": "2026-01-01"})
	assert.True(t, a.Equal(b), "los filtros se ordenan por nombre")

	// Caso 2: valores nil se omiten.
	c := query.SalesKey(5).WithParams(query.Params{"from": "2026-01-01", "to": nil})
	d := query.SalesKey(5).WithParams(query.Params{"from": "2026-01-01"})
	assert.True(t, c.Equal(d))

	// Caso 3: un mapa nil no agrega segmento.
	assert.True(t, query.SalesKey(5).WithParams(nil).Equal(query.SalesKey(5)))

	// Caso 4: un valor con '/' queda escapado y no rompe la jerarquía.
	e := query.ClientsKey(5).WithParams(query.Params{"search": "a/b"})
	assert.True(t, e.HasPrefix(query.ClientsKey(5)))
	assert.Equal(t, e.Len(), query.ClientsKey(5).Len()+1, "los filtros ocupan exactamente un segmento")

	// Caso 5: filtros distintos cachean aparte.
	f := query.ClientsKey(5).WithParams(query.Params{"search": "ana"})
	g := query.ClientsKey(5).WithParams(query.Params{"search": "luis"})
	assert.False(t, f.Equal(g))
}
