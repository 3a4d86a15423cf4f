// Package sales cubre ventas, el resumen diario y los métodos de pago.
// Una venta mueve stock y puede dejar crédito, por eso sus mutaciones
// invalidan también inventario y clientes del mismo negocio.
package sales

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

// ── Ventas ──────────────────────────────────────────────────────────────────

// List lista ventas del negocio, opcionalmente acotadas por rango de fechas
// (YYYY-MM-DD). Cada combinación de filtros cachea por separado.
func (s *Service) List(ctx context.Context, businessID int64, from, to string) ([]entity.SaleSummary, error) {
	key := query.SalesKey(businessID).WithParams(query.Params{
		"from": paramOrNil(from),
		"to":   paramOrNil(to),
	})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.SaleSummary, error) {
		params := url.Values{}
		if from != "" {
			params.Set("from_date", from)
		}
		if to != "" {
			params.Set("to_date", to)
		}
		var out []entity.SaleSummary
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/sales", businessID), params, &out)
		return out, err
	})
}

func (s *Service) Get(ctx context.Context, businessID, saleID int64) (*entity.Sale, error) {
	return query.FetchAs(ctx, s.cache, query.SaleKey(businessID, saleID), func(ctx context.Context) (*entity.Sale, error) {
		var out entity.Sale
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/sales/%d", businessID, saleID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// DailySummary el resumen de ventas del día dado (YYYY-MM-DD; vacío = hoy).
func (s *Service) DailySummary(ctx context.Context, businessID int64, date string) (*entity.DailySummary, error) {
	key := query.DailySalesKey(businessID).WithParams(query.Params{"date": paramOrNil(date)})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) (*entity.DailySummary, error) {
		params := url.Values{}
		if date != "" {
			params.Set("target_date", date)
		}
		var out entity.DailySummary
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/sales/summary/daily", businessID), params, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Create registra la venta. Solo con éxito remoto se invalida: ventas, resumen
// diario, inventario (stock consumido) y clientes (posible crédito).
func (s *Service) Create(ctx context.Context, businessID int64, form dto.SaleForm) (*entity.Sale, error) {
	var out entity.Sale
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/sales", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSaleCreate, query.Scope{BusinessID: businessID})
	return &out, nil
}

// Cancel anula la venta y revierte stock y crédito en el backend.
func (s *Service) Cancel(ctx context.Context, businessID, saleID int64, reason string) (*entity.Sale, error) {
	payload := map[string]string{"reason": reason}
	var out entity.Sale
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/sales/%d/cancel", businessID, saleID), payload, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSaleCancel, query.Scope{BusinessID: businessID, SaleID: saleID})
	return &out, nil
}

// ── Métodos de pago ─────────────────────────────────────────────────────────

func (s *Service) PaymentMethods(ctx context.Context, businessID int64) ([]entity.PaymentMethod, error) {
	return query.FetchAs(ctx, s.cache, query.PaymentMethodsKey(businessID), func(ctx context.Context) ([]entity.PaymentMethod, error) {
		var out []entity.PaymentMethod
		err := s.api.Get(ctx, s.methodsPath(businessID, 0), nil, &out)
		return out, err
	})
}

func (s *Service) CreatePaymentMethod(ctx context.Context, businessID int64, form dto.PaymentMethodForm) (*entity.PaymentMethod, error) {
	var out entity.PaymentMethod
	if err := s.api.Post(ctx, s.methodsPath(businessID, 0), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutPaymentMethodCreate, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) UpdatePaymentMethod(ctx context.Context, businessID, methodID int64, form dto.PaymentMethodForm) (*entity.PaymentMethod, error) {
	var out entity.PaymentMethod
	if err := s.api.Patch(ctx, s.methodsPath(businessID, methodID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutPaymentMethodUpdate, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) DeletePaymentMethod(ctx context.Context, businessID, methodID int64) error {
	if err := s.api.Delete(ctx, s.methodsPath(businessID, methodID)); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutPaymentMethodDelete, query.Scope{BusinessID: businessID})
	return nil
}

// methodsPath methodID en cero direcciona la colección.
func (s *Service) methodsPath(businessID, methodID int64) string {
	if methodID == 0 {
		return fmt.Sprintf("/businesses/%d/payment-methods", businessID)
	}
	return fmt.Sprintf("/businesses/%d/payment-methods/%d", businessID, methodID)
}

func paramOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}
