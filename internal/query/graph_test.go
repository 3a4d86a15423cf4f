package query_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altovivo/client-go/internal/query"
)

// ──────────────────────────────────────────────────────────────────────────────
// El grafo de invalidación es estático y explícito: cada mutación declara
// exactamente qué claves deja obsoletas. Estos tests fijan las aristas
// cruzadas de dominio, que son las fáciles de romper sin querer.
// ──────────────────────────────────────────────────────────────────────────────

func containsKey(keys []query.Key, k query.Key) bool {
	for _, have := range keys {
		if have.Equal(k) {
			return true
		}
	}
	return false
}

func TestKeysFor_VentaCruzaInventarioYClientes(t *testing.T) {
	keys := query.KeysFor(query.MutSaleCreate, query.Scope{BusinessID: 5})
	require.Len(t, keys, 4)

	assert.True(t, containsKey(keys, query.SalesKey(5)))
	assert.True(t, containsKey(keys, query.DailySalesKey(5)))
	assert.True(t, containsKey(keys, query.InventoryKey(5)), "la venta consume stock")
	assert.True(t, containsKey(keys, query.ClientsKey(5)), "la venta puede dejar crédito")

	// El negocio vecino no aparece en ninguna arista.
	for _, k := range keys {
		assert.False(t, k.HasPrefix(query.BusinessKey(6)), "la venta del negocio 5 no toca al 6")
	}
}

func TestKeysFor_CancelacionIncluyeLaVenta(t *testing.T) {
	keys := query.KeysFor(query.MutSaleCancel, query.Scope{BusinessID: 5, SaleID: 33})
	assert.True(t, containsKey(keys, query.SaleKey(5, 33)), "cancelar invalida el detalle de la venta")
	assert.True(t, containsKey(keys, query.InventoryKey(5)), "cancelar repone stock")
}

func TestKeysFor_CompraIngresaStock(t *testing.T) {
	keys := query.KeysFor(query.MutPurchaseCreate, query.Scope{BusinessID: 5, SupplierID: 8})
	assert.True(t, containsKey(keys, query.SupplierPurchasesKey(5, 8)))
	assert.True(t, containsKey(keys, query.SupplierPortfolioKey(5)))
	assert.True(t, containsKey(keys, query.InventoryKey(5)), "la compra ingresa stock a bodega")
}

func TestKeysFor_MermaDescuentaStock(t *testing.T) {
	keys := query.KeysFor(query.MutWasteCreate, query.Scope{BusinessID: 5})
	assert.True(t, containsKey(keys, query.WasteKey(5)))
	assert.True(t, containsKey(keys, query.InventoryKey(5)), "la merma descuenta stock")
}

func TestKeysFor_AbonoDeCartera(t *testing.T) {
	keys := query.KeysFor(query.MutPortfolioPayment, query.Scope{BusinessID: 5, ClientID: 9})
	assert.True(t, containsKey(keys, query.PortfolioSummaryKey(5)))
	assert.True(t, containsKey(keys, query.DebtClientsKey(5)))
	assert.True(t, containsKey(keys, query.ClientKey(5, 9)), "el abono cambia la ficha del cliente")
}

func TestKeysFor_MutacionDesconocida(t *testing.T) {
	assert.Nil(t, query.KeysFor(query.Mutation("no.existe"), query.Scope{}), "sin fila no se invalida nada")
}

// TestInvalidateAfter_AplicaLaFilaCompleta verifica el puente grafo→caché:
// una venta del negocio 5 deja obsoletas sus cuatro familias de claves y no
// toca las del negocio 6.
func TestInvalidateAfter_AplicaLaFilaCompleta(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	var ventas5, productos5, clientes5, ventas6 atomic.Int32
	_, _ = c.Fetch(ctx, query.SalesKey(5), counterFetch(&ventas5))
	_, _ = c.Fetch(ctx, query.ProductsKey(5), counterFetch(&productos5))
	_, _ = c.Fetch(ctx, query.ClientsKey(5), counterFetch(&clientes5))
	_, _ = c.Fetch(ctx, query.SalesKey(6), counterFetch(&ventas6))

	c.InvalidateAfter(ctx, query.MutSaleCreate, query.Scope{BusinessID: 5})
	c.Wait()

	_, _ = c.Fetch(ctx, query.SalesKey(5), counterFetch(&ventas5))
	_, _ = c.Fetch(ctx, query.ProductsKey(5), counterFetch(&productos5))
	_, _ = c.Fetch(ctx, query.ClientsKey(5), counterFetch(&clientes5))
	_, _ = c.Fetch(ctx, query.SalesKey(6), counterFetch(&ventas6))

	assert.Equal(t, int32(2), ventas5.Load())
	assert.Equal(t, int32(2), productos5.Load(), "products cuelga del prefijo de inventario")
	assert.Equal(t, int32(2), clientes5.Load())
	assert.Equal(t, int32(1), ventas6.Load(), "el negocio 6 queda intacto")
}
