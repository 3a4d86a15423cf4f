package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altovivo/client-go/internal/apitest"
	"github.com/altovivo/client-go/internal/application/dto"
	"github.com/altovivo/client-go/internal/application/sales"
	"github.com/altovivo/client-go/internal/domain"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/config"
	"github.com/altovivo/client-go/pkg/logger"
)

func newService(t *testing.T) (*sales.Service, *query.Cache, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)

	store := session.NewStore("", logger.Nop())
	access, refresh := srv.IssueTokens(t)
	store.SetUser(&srv.User)
	store.SetTokens(access, refresh)

	api := rest.New(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, store, logger.Nop())
	cache := query.NewCache(query.Config{MaxEntries: 64, TTL: time.Minute}, logger.Nop())
	return sales.NewService(api, cache, logger.Nop()), cache, srv
}

func saleForm() dto.SaleForm {
	return dto.SaleForm{
		WarehouseID: 1,
		Items:       []dto.SaleItemForm{{PresentationID: 3, Quantity: "2", UnitPrice: "1500"}},
		Payments:    []dto.SalePaymentForm{{PaymentMethodID: 1, Amount: "3000"}},
	}
}

// TestCreate_ExitoInvalidaAristasCruzadas: una venta registrada con éxito
// deja obsoletas las lecturas de ventas, inventario y clientes del negocio.
func TestCreate_ExitoInvalidaAristasCruzadas(t *testing.T) {
	svc, cache, srv := newService(t)
	ctx := context.Background()

	srv.JSON(fiber.MethodGet, "/businesses/5/sales", []map[string]any{})
	srv.JSON(fiber.MethodGet, "/businesses/5/inventory/products", []map[string]any{})
	srv.JSON(fiber.MethodPost, "/businesses/5/sales", map[string]any{"id": 77, "status": "completed"})

	// Sembrar el caché con lecturas frescas.
	_, err := svc.List(ctx, 5, "", "")
	require.NoError(t, err)
	listHits := srv.Hits(fiber.MethodGet, "/businesses/5/sales")

	sale, err := svc.Create(ctx, 5, saleForm())
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, int64(77), sale.ID)
	cache.Wait()

	// La lista quedó obsoleta: la próxima lectura vuelve al backend.
	_, err = svc.List(ctx, 5, "", "")
	require.NoError(t, err)
	assert.Equal(t, listHits+1, srv.Hits(fiber.MethodGet, "/businesses/5/sales"),
		"tras la venta la lista debe refetchear")
}

// TestCreate_FalloDejaElCacheIntacto: si el backend rechaza la venta, ninguna
// clave se invalida y las lecturas siguen sirviéndose del caché.
func TestCreate_FalloDejaElCacheIntacto(t *testing.T) {
	svc, cache, srv := newService(t)
	ctx := context.Background()

	srv.JSON(fiber.MethodGet, "/businesses/5/sales", []map[string]any{})
	srv.Fail(fiber.MethodPost, "/businesses/5/sales", fiber.StatusUnprocessableEntity,
		"INSUFFICIENT_STOCK", "stock insuficiente")

	_, err := svc.List(ctx, 5, "", "")
	require.NoError(t, err)
	listHits := srv.Hits(fiber.MethodGet, "/businesses/5/sales")

	sale, err := svc.Create(ctx, 5, saleForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, sale)
	cache.Wait()

	// La lista sigue fresca: ni refetch ni viaje extra.
	_, err = svc.List(ctx, 5, "", "")
	require.NoError(t, err)
	assert.Equal(t, listHits, srv.Hits(fiber.MethodGet, "/businesses/5/sales"),
		"una mutación fallida no debe invalidar nada")
}

func TestCancel_InvalidaElDetalle(t *testing.T) {
	svc, cache, srv := newService(t)
	ctx := context.Background()

	srv.JSON(fiber.MethodGet, "/businesses/5/sales/33", map[string]any{"id": 33, "status": "completed"})
	srv.JSON(fiber.MethodPost, "/businesses/5/sales/33/cancel", map[string]any{"id": 33, "status": "cancelled"})

	first, err := svc.Get(ctx, 5, 33)
	require.NoError(t, err)
	assert.Equal(t, "completed", first.Status)
	detailHits := srv.Hits(fiber.MethodGet, "/businesses/5/sales/33")

	cancelled, err := svc.Cancel(ctx, 5, 33, "cliente se arrepintió")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	cache.Wait()

	refreshed, err := svc.Get(ctx, 5, 33)
	require.NoError(t, err)
	assert.Equal(t, detailHits+1, srv.Hits(fiber.MethodGet, "/businesses/5/sales/33"),
		"el detalle cancelado debe refetchear")
	assert.NotNil(t, refreshed)
}
