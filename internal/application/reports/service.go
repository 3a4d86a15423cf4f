// Package reports expone los reportes agregados del negocio. Son solo
// lecturas; se refrescan por TTL, no por invalidación.
package reports

import (
	"context"
	"fmt"
	"net/url"

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

// Sales reporte de ventas del rango dado (YYYY-MM-DD), agrupado por day,
// week o month.
func (s *Service) Sales(ctx context.Context, businessID int64, from, to, groupBy string) (*entity.SalesReport, error) {
	key := query.ReportKey(businessID, "sales").WithParams(query.Params{
		"from": paramOrNil(from), "to": paramOrNil(to), "group": paramOrNil(groupBy),
	})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) (*entity.SalesReport, error) {
		params := dateParams(from, to)
		if groupBy != "" {
			params.Set("group_by", groupBy)
		}
		var out entity.SalesReport
		if err := s.api.Get(ctx, s.path(businessID, "sales"), params, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Clients(ctx context.Context, businessID int64) (*entity.ClientsReport, error) {
	return query.FetchAs(ctx, s.cache, query.ReportKey(businessID, "clients"), func(ctx context.Context) (*entity.ClientsReport, error) {
		var out entity.ClientsReport
		if err := s.api.Get(ctx, s.path(businessID, "clients"), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Inventory(ctx context.Context, businessID int64) (*entity.InventoryReport, error) {
	return query.FetchAs(ctx, s.cache, query.ReportKey(businessID, "inventory"), func(ctx context.Context) (*entity.InventoryReport, error) {
		var out entity.InventoryReport
		if err := s.api.Get(ctx, s.path(businessID, "inventory"), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Waste(ctx context.Context, businessID int64, from, to string) (*entity.WasteReport, error) {
	key := query.ReportKey(businessID, "waste").WithParams(query.Params{
		"from": paramOrNil(from), "to": paramOrNil(to),
	})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) (*entity.WasteReport, error) {
		var out entity.WasteReport
		if err := s.api.Get(ctx, s.path(businessID, "waste"), dateParams(from, to), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Portfolio(ctx context.Context, businessID int64) (*entity.PortfolioReport, error) {
	return query.FetchAs(ctx, s.cache, query.ReportKey(businessID, "portfolio"), func(ctx context.Context) (*entity.PortfolioReport, error) {
		var out entity.PortfolioReport
		if err := s.api.Get(ctx, s.path(businessID, "portfolio"), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Profitability(ctx context.Context, businessID int64, from, to string) (*entity.ProfitabilityReport, error) {
	key := query.ReportKey(businessID, "profitability").WithParams(query.Params{
		"from": paramOrNil(from), "to": paramOrNil(to),
	})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) (*entity.ProfitabilityReport, error) {
		var out entity.ProfitabilityReport
		if err := s.api.Get(ctx, s.path(businessID, "profitability"), dateParams(from, to), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) path(businessID int64, report string) string {
	return fmt.Sprintf("/businesses/%d/reports/%s", businessID, report)
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
