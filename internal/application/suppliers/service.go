// Package suppliers gestiona proveedores: fichas, catálogo por proveedor,
// compras, pagos y la cartera por pagar. El recibo de una compra ingresa
// stock, así que sus mutaciones cruzan hacia el inventario.
package suppliers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/altovivo/client-go/internal/application/dto"
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

func (s *Service) List(ctx context.Context, businessID int64, search string) ([]entity.Supplier, error) {
	key := query.SuppliersKey(businessID).WithParams(query.Params{"search": paramOrNil(search)})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.Supplier, error) {
		params := url.Values{}
		if search != "" {
			params.Set("search", search)
		}
		var out []entity.Supplier
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/suppliers", businessID), params, &out)
		return out, err
	})
}

func (s *Service) Get(ctx context.Context, businessID, supplierID int64) (*entity.Supplier, error) {
	return query.FetchAs(ctx, s.cache, query.SupplierKey(businessID, supplierID), func(ctx context.Context) (*entity.Supplier, error) {
		var out entity.Supplier
		if err := s.api.Get(ctx, s.path(businessID, supplierID, ""), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Stats(ctx context.Context, businessID, supplierID int64) (*entity.SupplierStats, error) {
	return query.FetchAs(ctx, s.cache, query.SupplierStatsKey(businessID, supplierID), func(ctx context.Context) (*entity.SupplierStats, error) {
		var out entity.SupplierStats
		if err := s.api.Get(ctx, s.path(businessID, supplierID, "/stats"), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Portfolio resumen de deuda con todos los proveedores del negocio.
func (s *Service) Portfolio(ctx context.Context, businessID int64) (*entity.SupplierPortfolio, error) {
	return query.FetchAs(ctx, s.cache, query.SupplierPortfolioKey(businessID), func(ctx context.Context) (*entity.SupplierPortfolio, error) {
		var out entity.SupplierPortfolio
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/suppliers/portfolio", businessID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Create(ctx context.Context, businessID int64, form dto.SupplierForm) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/suppliers", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSupplierCreate, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) Update(ctx context.Context, businessID, supplierID int64, form dto.SupplierForm) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := s.api.Patch(ctx, s.path(businessID, supplierID, ""), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSupplierUpdate, query.Scope{BusinessID: businessID, SupplierID: supplierID})
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, businessID, supplierID int64) error {
	if err := s.api.Delete(ctx, s.path(businessID, supplierID, "")); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutSupplierDelete, query.Scope{BusinessID: businessID, SupplierID: supplierID})
	return nil
}

// ── Catálogo del proveedor ──────────────────────────────────────────────────

func (s *Service) Products(ctx context.Context, businessID, supplierID int64) ([]entity.SupplierProduct, error) {
	return query.FetchAs(ctx, s.cache, query.SupplierProductsKey(businessID, supplierID), func(ctx context.Context) ([]entity.SupplierProduct, error) {
		var out []entity.SupplierProduct
		err := s.api.Get(ctx, s.path(businessID, supplierID, "/products"), nil, &out)
		return out, err
	})
}

func (s *Service) AddProduct(ctx context.Context, businessID, supplierID int64, form dto.SupplierProductForm) (*entity.SupplierProduct, error) {
	var out entity.SupplierProduct
	if err := s.api.Post(ctx, s.path(businessID, supplierID, "/products"), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSupplierProductAdd, query.Scope{BusinessID: businessID, SupplierID: supplierID})
	return &out, nil
}

func (s *Service) RemoveProduct(ctx context.Context, businessID, supplierID, productID int64) error {
	if err := s.api.Delete(ctx, s.path(businessID, supplierID, fmt.Sprintf("/products/%d", productID))); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutSupplierProductRemove, query.Scope{BusinessID: businessID, SupplierID: supplierID})
	return nil
}

// ── Compras y pagos ─────────────────────────────────────────────────────────

func (s *Service) Purchases(ctx context.Context, businessID, supplierID int64) ([]entity.SupplierPurchase, error) {
	return query.FetchAs(ctx, s.cache, query.SupplierPurchasesKey(businessID, supplierID), func(ctx context.Context) ([]entity.SupplierPurchase, error) {
		var out []entity.SupplierPurchase
		err := s.api.Get(ctx, s.path(businessID, supplierID, "/purchases"), nil, &out)
		return out, err
	})
}

// CreatePurchase registra el recibo de una compra. El stock entra a bodega,
// así que además de las claves del proveedor cae el inventario del negocio.
func (s *Service) CreatePurchase(ctx context.Context, businessID, supplierID int64, form dto.PurchaseForm) (*entity.SupplierPurchase, error) {
	var out entity.SupplierPurchase
	if err := s.api.Post(ctx, s.path(businessID, supplierID, "/purchases"), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutPurchaseCreate, query.Scope{BusinessID: businessID, SupplierID: supplierID})
	return &out, nil
}

func (s *Service) Payments(ctx context.Context, businessID, supplierID int64) ([]entity.SupplierPayment, error) {
	return query.FetchAs(ctx, s.cache, query.SupplierPaymentsKey(businessID, supplierID), func(ctx context.Context) ([]entity.SupplierPayment, error) {
		var out []entity.SupplierPayment
		err := s.api.Get(ctx, s.path(businessID, supplierID, "/payments"), nil, &out)
		return out, err
	})
}

func (s *Service) AddPayment(ctx context.Context, businessID, supplierID int64, form dto.SupplierPaymentForm) (*entity.SupplierPayment, error) {
	var out entity.SupplierPayment
	if err := s.api.Post(ctx, s.path(businessID, supplierID, "/payments"), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSupplierPayment, query.Scope{BusinessID: businessID, SupplierID: supplierID})
	return &out, nil
}

func (s *Service) path(businessID, supplierID int64, suffix string) string {
	return fmt.Sprintf("/businesses/%d/suppliers/%d%s", businessID, supplierID, suffix)
}

func paramOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}
