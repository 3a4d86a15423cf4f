// Package finance cubre cajas registradoras, sesiones de caja y el resumen
// financiero del negocio.
package finance

import (
	"context"
	"fmt"

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

func (s *Service) Summary(ctx context.Context, businessID int64) (*entity.FinanceSummary, error) {
	return query.FetchAs(ctx, s.cache, query.FinanceSummaryKey(businessID), func(ctx context.Context) (*entity.FinanceSummary, error) {
		var out entity.FinanceSummary
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/finance/summary", businessID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// ── Cajas ───────────────────────────────────────────────────────────────────

func (s *Service) Registers(ctx context.Context, businessID int64) ([]entity.CashRegister, error) {
	return query.FetchAs(ctx, s.cache, query.CashRegistersKey(businessID), func(ctx context.Context) ([]entity.CashRegister, error) {
		var out []entity.CashRegister
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/finance/registers", businessID), nil, &out)
		return out, err
	})
}

func (s *Service) CreateRegister(ctx context.Context, businessID int64, form dto.CashRegisterForm) (*entity.CashRegister, error) {
	var out entity.CashRegister
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/finance/registers", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutRegisterCreate, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) UpdateRegister(ctx context.Context, businessID, registerID int64, form dto.CashRegisterForm) (*entity.CashRegister, error) {
	var out entity.CashRegister
	if err := s.api.Patch(ctx, s.path(businessID, registerID, ""), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutRegisterUpdate, query.Scope{BusinessID: businessID, RegisterID: registerID})
	return &out, nil
}

func (s *Service) DeleteRegister(ctx context.Context, businessID, registerID int64) error {
	if err := s.api.Delete(ctx, s.path(businessID, registerID, "")); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutRegisterDelete, query.Scope{BusinessID: businessID, RegisterID: registerID})
	return nil
}

// ── Sesiones de caja ────────────────────────────────────────────────────────

// CurrentSession la sesión abierta de la caja. Que no haya sesión abierta es
// un estado normal, no un fallo: el 404 se cachea como ausencia y la llamada
// devuelve (nil, nil) sin reintentos.
func (s *Service) CurrentSession(ctx context.Context, businessID, registerID int64) (*entity.CashSession, error) {
	return query.FetchAs(ctx, s.cache, query.CashSessionKey(businessID, registerID), func(ctx context.Context) (*entity.CashSession, error) {
		var out entity.CashSession
		if err := s.api.Get(ctx, s.path(businessID, registerID, "/session"), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, query.WithPolicy(query.TerminalOnAbsence))
}

func (s *Service) Sessions(ctx context.Context, businessID, registerID int64) ([]entity.CashSession, error) {
	return query.FetchAs(ctx, s.cache, query.CashSessionsKey(businessID, registerID), func(ctx context.Context) ([]entity.CashSession, error) {
		var out []entity.CashSession
		err := s.api.Get(ctx, s.path(businessID, registerID, "/sessions"), nil, &out)
		return out, err
	})
}

func (s *Service) OpenSession(ctx context.Context, businessID, registerID int64, form dto.OpenSessionForm) (*entity.CashSession, error) {
	var out entity.CashSession
	if err := s.api.Post(ctx, s.path(businessID, registerID, "/open"), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSessionOpen, query.Scope{BusinessID: businessID, RegisterID: registerID})
	return &out, nil
}

func (s *Service) CloseSession(ctx context.Context, businessID, registerID int64, form dto.CloseSessionForm) (*entity.CashSession, error) {
	var out entity.CashSession
	if err := s.api.Post(ctx, s.path(businessID, registerID, "/close"), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutSessionClose, query.Scope{BusinessID: businessID, RegisterID: registerID})
	return &out, nil
}

// AddMovement registra un ingreso o egreso manual sobre la sesión abierta.
func (s *Service) AddMovement(ctx context.Context, businessID, registerID int64, form dto.CashMovementForm) (*entity.CashMovement, error) {
	var out entity.CashMovement
	if err := s.api.Post(ctx, s.path(businessID, registerID, "/movements"), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutCashMovementAdd, query.Scope{BusinessID: businessID, RegisterID: registerID})
	return &out, nil
}

func (s *Service) path(businessID, registerID int64, suffix string) string {
	return fmt.Sprintf("/businesses/%d/finance/registers/%d%s", businessID, registerID, suffix)
}
