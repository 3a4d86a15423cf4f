package query_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altovivo/client-go/internal/domain"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/pkg/logger"
)

func newTestCache() *query.Cache {
	return query.NewCache(query.Config{
		MaxEntries: 64,
		TTL:        time.Minute,
		MaxRetries: 2,
		Backoff:    time.Millisecond,
	}, logger.Nop())
}

// counterFetch devuelve un fetcher que cuenta llamadas y responde "valor-N".
func counterFetch(calls *atomic.Int32) query.FetchFunc {
	return func(ctx context.Context) (any, error) {
		n := calls.Add(1)
		return fmt.Sprintf("valor-%d", n), nil
	}
}

func TestCache_FetchCachea(t *testing.T) {
	c := newTestCache()
	var calls atomic.Int32
	key := query.ClientsKey(5)

	// Caso 1: primera lectura va al backend.
	v, err := c.Fetch(context.Background(), key, counterFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, "valor-1", v)

	// Caso 2: segunda lectura es acierto de caché, sin viaje.
	v, err = c.Fetch(context.Background(), key, counterFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, "valor-1", v)
	assert.Equal(t, int32(1), calls.Load(), "una entrada fresca no refetchea")

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCache_InvalidacionPorPrefijo(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	var a, b, other atomic.Int32

	_, err := c.Fetch(ctx, query.ClientsKey(5), counterFetch(&a))
	require.NoError(t, err)
	_, err = c.Fetch(ctx, query.ClientStatsKey(5, 9), counterFetch(&b))
	require.NoError(t, err)
	_, err = c.Fetch(ctx, query.ClientsKey(6), counterFetch(&other))
	require.NoError(t, err)

	// Invalidar el prefijo de clientes del negocio 5 alcanza la clave anidada
	// de stats, pero no toca el negocio 6.
	c.Invalidate(ctx, query.ClientsKey(5))
	c.Wait()

	_, _ = c.Fetch(ctx, query.ClientsKey(5), counterFetch(&a))
	_, _ = c.Fetch(ctx, query.ClientStatsKey(5, 9), counterFetch(&b))
	_, _ = c.Fetch(ctx, query.ClientsKey(6), counterFetch(&other))

	assert.Equal(t, int32(2), a.Load(), "la clave invalidada refetchea")
	assert.Equal(t, int32(2), b.Load(), "el prefijo alcanza claves anidadas")
	assert.Equal(t, int32(1), other.Load(), "otro negocio queda intacto")
}

func TestCache_RefetchEnSegundoPlanoConSuscriptor(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	var calls atomic.Int32
	key := query.SalesKey(5)

	_, err := c.Fetch(ctx, key, counterFetch(&calls))
	require.NoError(t, err)

	sub := c.Subscribe(key)
	defer sub.Close()

	c.Invalidate(ctx, key)
	c.Wait()

	// El refetch corre sin que nadie vuelva a llamar Fetch, y notifica.
	assert.Equal(t, int32(2), calls.Load(), "el lector montado refetchea en segundo plano")
	select {
	case <-sub.Updates():
	case <-time.After(time.Second):
		t.Fatal("el suscriptor no recibió la señal del refetch")
	}

	// La lectura siguiente ya encuentra el valor nuevo sin otro viaje.
	v, err := c.Fetch(ctx, key, counterFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, "valor-2", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_InvalidacionDobleEsIdempotente(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	key := query.SalesKey(5)

	var calls atomic.Int32
	gate := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		if calls.Add(1) > 1 {
			<-gate // el refetch queda en vuelo hasta que el test lo libere
		}
		return "ok", nil
	}

	_, err := c.Fetch(ctx, key, fn)
	require.NoError(t, err)
	sub := c.Subscribe(key)
	defer sub.Close()

	// Dos invalidaciones seguidas con el refetch aún en vuelo: la segunda no
	// agenda otro viaje.
	c.Invalidate(ctx, key)
	c.Invalidate(ctx, key)
	close(gate)
	c.Wait()

	assert.Equal(t, int32(2), calls.Load(), "invalidar dos veces no duplica refetches en vuelo")
}

func TestCache_SinSuscriptorNoHayRefetch(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	var calls atomic.Int32
	key := query.WasteKey(5)

	_, err := c.Fetch(ctx, key, counterFetch(&calls))
	require.NoError(t, err)

	c.Invalidate(ctx, key)
	c.Wait()

	// Sin lectores montados la invalidación solo marca; el costo se paga en
	// la próxima lectura.
	assert.Equal(t, int32(1), calls.Load())
	_, _ = c.Fetch(ctx, key, counterFetch(&calls))
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_AusenciaTerminal(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	var calls atomic.Int32
	key := query.CashSessionKey(5, 3)
	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, fmt.Errorf("sesión: %w", domain.ErrNotFound)
	}

	// Caso 1: el 404 es resultado, no fallo, y no se reintenta.
	v, err := c.Fetch(ctx, key, fn, query.WithPolicy(query.TerminalOnAbsence))
	require.NoError(t, err, "la ausencia esperada no es un error")
	assert.Nil(t, v)
	assert.Equal(t, int32(1), calls.Load(), "la ausencia terminal no se reintenta")

	// Caso 2: la ausencia queda cacheada.
	v, err = c.Fetch(ctx, key, fn, query.WithPolicy(query.TerminalOnAbsence))
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_ReintentosSoloTransitorios(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	// Caso 1: fallo transitorio → reintenta y termina bien.
	var transitorias atomic.Int32
	v, err := c.Fetch(ctx, query.SalesKey(1), func(ctx context.Context) (any, error) {
		if transitorias.Add(1) == 1 {
			return nil, fmt.Errorf("backend caído: %w", domain.ErrUnavailable)
		}
		return "recuperado", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recuperado", v)
	assert.Equal(t, int32(2), transitorias.Load())

	// Caso 2: rechazo semántico del backend → sin reintentos.
	var terminales atomic.Int32
	_, err = c.Fetch(ctx, query.SalesKey(2), func(ctx context.Context) (any, error) {
		terminales.Add(1)
		return nil, fmt.Errorf("sin permiso: %w", domain.ErrForbidden)
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, int32(1), terminales.Load(), "un 403 no se reintenta")

	// Caso 3: un error no cachea nada; la próxima lectura vuelve a intentar.
	_, err = c.Fetch(ctx, query.SalesKey(2), func(ctx context.Context) (any, error) {
		terminales.Add(1)
		return nil, fmt.Errorf("sin permiso: %w", domain.ErrForbidden)
	})
	require.Error(t, err)
	assert.Equal(t, int32(2), terminales.Load())
}

// TestCache_InvalidarClaveSembradaConSuscriptor: una clave sembrada con Prime
// y suscrita puede no tener fetcher conocido (nadie la ha leído con Fetch).
// Invalidarla debe dejarla obsoleta sin agendar nada en segundo plano.
func TestCache_InvalidarClaveSembradaConSuscriptor(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	key := query.MeKey()

	c.Prime(key, "perfil")
	sub := c.Subscribe(key)
	defer sub.Close()

	c.Invalidate(ctx, key)
	c.Wait()

	// La entrada quedó obsoleta; la próxima lectura trae el valor fresco.
	var calls atomic.Int32
	v, err := c.Fetch(ctx, key, counterFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, "valor-1", v)
	assert.Equal(t, int32(1), calls.Load())
}

// TestCache_GanaElQueCompletaUltimo: el orden de las escrituras lo da la
// completitud, no el inicio. Un fetch lanzado antes de un Prime pero que
// completa después es la escritura vigente.
func TestCache_GanaElQueCompletaUltimo(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	key := query.MeKey()

	gate := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
			close(started)
			<-gate
			return "del-fetch", nil
		})
	}()
	<-started

	// Con el fetch todavía en vuelo, un Prime completa primero.
	c.Prime(key, "del-prime")

	close(gate)
	<-done

	// El fetch completó después: su escritura pisa al Prime.
	var calls atomic.Int32
	v, err := c.Fetch(ctx, key, counterFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, "del-fetch", v)
	assert.Equal(t, int32(0), calls.Load(), "la entrada vigente está fresca, no hay viaje")

	// Y un Prime posterior vuelve a ser el último en completar.
	c.Prime(key, "mas-nuevo")
	v, _ = c.Fetch(ctx, key, counterFetch(&calls))
	assert.Equal(t, "mas-nuevo", v)
}

func TestCache_PrimeYClear(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	var calls atomic.Int32
	key := query.MeKey()

	// Caso 1: Prime siembra sin viaje.
	c.Prime(key, "perfil")
	v, err := c.Fetch(ctx, key, counterFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, "perfil", v)
	assert.Equal(t, int32(0), calls.Load())

	// Caso 2: Prime posterior pisa al anterior (completó después).
	c.Prime(key, "perfil-nuevo")
	v, _ = c.Fetch(ctx, key, counterFetch(&calls))
	assert.Equal(t, "perfil-nuevo", v)

	// Caso 3: Clear vacía todo (logout).
	c.Clear()
	_, err = c.Fetch(ctx, key, counterFetch(&calls))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_FetchAsTipado(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	type resumen struct{ Total int }

	v, err := query.FetchAs(ctx, c, query.FinanceSummaryKey(5), func(ctx context.Context) (*resumen, error) {
		return &resumen{Total: 10}, nil
	})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 10, v.Total)

	// La ausencia terminal degrada al valor cero del tipo.
	missing, err := query.FetchAs(ctx, c, query.CashSessionKey(5, 1), func(ctx context.Context) (*resumen, error) {
		return nil, domain.ErrNotFound
	}, query.WithPolicy(query.TerminalOnAbsence))
	require.NoError(t, err)
	assert.Nil(t, missing)
}
