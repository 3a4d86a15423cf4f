// Package inventory expone las lecturas de inventario: categorías, bodegas,
// productos, movimientos y alertas. En este cliente el inventario no se
// escribe directo; el stock lo mueven ventas, compras y mermas, y esas
// mutaciones invalidan el prefijo completo del inventario.
package inventory

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/pkg/logger"
)

type Service struct {
	api   *rest.Client
	cache *query.Cache
	log   *logger.Logger
}

func NewService(api *rest.Client, cache *query.Cache, log *logger.Logger) *Service {
	return &Service{api: api, cache: cache, log: log}
}

func (s *Service) Categories(ctx context.Context, businessID int64) ([]entity.Category, error) {
	return query.FetchAs(ctx, s.cache, query.CategoriesKey(businessID), func(ctx context.Context) ([]entity.Category, error) {
		var out []entity.Category
		err := s.api.Get(ctx, s.path(businessID, "/categories"), nil, &out)
		return out, err
	})
}

func (s *Service) Warehouses(ctx context.Context, businessID int64) ([]entity.Warehouse, error) {
	return query.FetchAs(ctx, s.cache, query.WarehousesKey(businessID), func(ctx context.Context) ([]entity.Warehouse, error) {
		var out []entity.Warehouse
		err := s.api.Get(ctx, s.path(businessID, "/warehouses"), nil, &out)
		return out, err
	})
}

func (s *Service) Products(ctx context.Context, businessID int64, search string) ([]entity.Product, error) {
	key := query.ProductsKey(businessID).WithParams(query.Params{"search": paramOrNil(search)})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.Product, error) {
		params := url.Values{}
		if search != "" {
			params.Set("search", search)
		}
		var out []entity.Product
		err := s.api.Get(ctx, s.path(businessID, "/products"), params, &out)
		return out, err
	})
}

func (s *Service) Product(ctx context.Context, businessID, productID int64) (*entity.Product, error) {
	return query.FetchAs(ctx, s.cache, query.ProductKey(businessID, productID), func(ctx context.Context) (*entity.Product, error) {
		var out entity.Product
		if err := s.api.Get(ctx, s.path(businessID, fmt.Sprintf("/products/%d", productID)), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Movements(ctx context.Context, businessID int64) ([]entity.InventoryMovement, error) {
	return query.FetchAs(ctx, s.cache, query.InventoryMovementsKey(businessID), func(ctx context.Context) ([]entity.InventoryMovement, error) {
		var out []entity.InventoryMovement
		err := s.api.Get(ctx, s.path(businessID, "/movements"), nil, &out)
		return out, err
	})
}

func (s *Service) LowStockAlerts(ctx context.Context, businessID int64) ([]entity.LowStockAlert, error) {
	return query.FetchAs(ctx, s.cache, query.LowStockKey(businessID), func(ctx context.Context) ([]entity.LowStockAlert, error) {
		var out []entity.LowStockAlert
		err := s.api.Get(ctx, s.path(businessID, "/alerts/low-stock"), nil, &out)
		return out, err
	})
}

// ExpiringAlerts lotes que vencen dentro de la ventana de días dada.
func (s *Service) ExpiringAlerts(ctx context.Context, businessID int64, days int) ([]entity.ExpiringLotAlert, error) {
	key := query.ExpiringKey(businessID).WithParams(query.Params{"days": days})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.ExpiringLotAlert, error) {
		params := url.Values{}
		params.Set("days", strconv.Itoa(days))
		var out []entity.ExpiringLotAlert
		err := s.api.Get(ctx, s.path(businessID, "/alerts/expiring"), params, &out)
		return out, err
	})
}

func (s *Service) path(businessID int64, suffix string) string {
	return fmt.Sprintf("/businesses/%d/inventory%s", businessID, suffix)
}

func paramOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}
