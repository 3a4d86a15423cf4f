// Package waste cubre mermas: registro manual, procesamiento automático de
// lotes vencidos y los resúmenes por causa. Toda merma descuenta stock, así
// que sus mutaciones invalidan también el inventario.
package waste

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

// List registros de merma, opcionalmente acotados por rango de fechas.
func (s *Service) List(ctx context.Context, businessID int64, from, to string) ([]entity.WasteRecord, error) {
	key := query.WasteKey(businessID).WithParams(query.Params{
		"from": paramOrNil(from),
		"to":   paramOrNil(to),
	})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.WasteRecord, error) {
		var out []entity.WasteRecord
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/waste", businessID), dateParams(from, to), &out)
		return out, err
	})
}

func (s *Service) Summary(ctx context.Context, businessID int64, from, to string) (*entity.WasteSummary, error) {
	key := query.WasteSummaryKey(businessID).WithParams(query.Params{
		"from": paramOrNil(from),
		"to":   paramOrNil(to),
	})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) (*entity.WasteSummary, error) {
		var out entity.WasteSummary
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/waste/summary", businessID), dateParams(from, to), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Create(ctx context.Context, businessID int64, form dto.WasteForm) (*entity.WasteRecord, error) {
	var out entity.WasteRecord
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/waste", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutWasteCreate, query.Scope{BusinessID: businessID})
	return &out, nil
}

// ProcessExpired da de baja todos los lotes vencidos del negocio en un solo
// paso y devuelve cuántos registros de merma generó.
func (s *Service) ProcessExpired(ctx context.Context, businessID int64) (*entity.AutoWasteResult, error) {
	var out entity.AutoWasteResult
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/waste/auto-expired", businessID), nil, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutWasteProcessExpired, query.Scope{BusinessID: businessID})
	return &out, nil
}

func dateParams(from, to string) url.Values {
	params := url.Values{}
	if from != "" {
		params.Set("from_date", from)
	}
	if to != "" {
		params.Set("to_date", to)
	}
	return params
}

func paramOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}
