// Package portfolio cubre la cartera por cobrar: resumen de deuda, historial
// de movimientos de crédito y los abonos de clientes. Reutiliza los endpoints
// de clientes; lo propio del módulo son las claves y la fila de invalidación.
package portfolio

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

func (s *Service) Summary(ctx context.Context, businessID int64) (*entity.PortfolioSummary, error) {
	return query.FetchAs(ctx, s.cache, query.PortfolioSummaryKey(businessID), func(ctx context.Context) (*entity.PortfolioSummary, error) {
		var out entity.PortfolioSummary
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/clients/portfolio/summary", businessID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Movements historial de movimientos de crédito de toda la cartera,
// opcionalmente filtrado por tipo (charge o payment).
func (s *Service) Movements(ctx context.Context, businessID int64, movementType string) ([]entity.PortfolioMovement, error) {
	key := query.PortfolioMovementsKey(businessID).WithParams(query.Params{"type": paramOrNil(movementType)})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.PortfolioMovement, error) {
		params := url.Values{}
		if movementType != "" {
			params.Set("movement_type", movementType)
		}
		var out []entity.PortfolioMovement
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/clients/portfolio/movements", businessID), params, &out)
		return out, err
	})
}

// ClientsWithDebt los clientes con saldo pendiente.
func (s *Service) ClientsWithDebt(ctx context.Context, businessID int64) ([]entity.Client, error) {
	return query.FetchAs(ctx, s.cache, query.DebtClientsKey(businessID), func(ctx context.Context) ([]entity.Client, error) {
		params := url.Values{}
		params.Set("has_debt", "true")
		params.Set("limit", "100")
		var out []entity.Client
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/clients", businessID), params, &out)
		return out, err
	})
}

// AddPayment registra un abono del cliente. El saldo cambia, así que caen el
// resumen de cartera, los movimientos, los deudores y la ficha del cliente.
func (s *Service) AddPayment(ctx context.Context, businessID, clientID int64, form dto.CreditMovementForm) (*entity.CreditMovement, error) {
	var out entity.CreditMovement
	path := fmt.Sprintf("/businesses/%d/clients/%d/credit", businessID, clientID)
	if err := s.api.Post(ctx, path, form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutPortfolioPayment, query.Scope{BusinessID: businessID, ClientID: clientID})
	return &out, nil
}

func paramOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}
