// Package clients gestiona la cartera de clientes del negocio: fichas,
// estadísticas, historial de compras y movimientos de crédito.
package clients

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/altovivo/client-go/internal/application/dto"
	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/pkg/logger"
)

// collator ordena nombres con reglas del español (ñ después de n, tildes
// ignoradas para el orden). Collate no es seguro para uso concurrente, así
// que cada ordenamiento crea el suyo.
func collator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase)
}

type Service struct {
	api   *rest.Client
	cache *query.Cache
	log   *logger.Logger
}

func NewService(api *rest.Client, cache *query.Cache, log *logger.Logger) *Service {
	return &Service{api: api, cache: cache, log: log}
}

// ListOptions filtros del listado de clientes. El valor cero lista todo.
type ListOptions struct {
	Search  string
	Status  string // active, inactive
	HasDebt bool
}

// List lista clientes según los filtros dados. Cada combinación de filtros
// cachea por separado; el resultado llega ordenado por nombre con colación
// en español.
func (s *Service) List(ctx context.Context, businessID int64, opts ListOptions) ([]entity.Client, error) {
	key := query.ClientsKey(businessID).WithParams(query.Params{
		"search":   paramOrNil(opts.Search),
		"status":   paramOrNil(opts.Status),
		"has_debt": boolOrNil(opts.HasDebt),
	})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.Client, error) {
		params := url.Values{}
		if opts.Search != "" {
			params.Set("search", opts.Search)
		}
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
		if opts.HasDebt {
			params.Set("has_debt", "true")
		}
		var out []entity.Client
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/clients", businessID), params, &out); err != nil {
			return nil, err
		}
		col := collator()
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
		return out, nil
	})
}

func (s *Service) Get(ctx context.Context, businessID, clientID int64) (*entity.Client, error) {
	return query.FetchAs(ctx, s.cache, query.ClientKey(businessID, clientID), func(ctx context.Context) (*entity.Client, error) {
		var out entity.Client
		if err := s.api.Get(ctx, s.path(businessID, clientID, ""), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Stats(ctx context.Context, businessID, clientID int64) (*entity.ClientStats, error) {
	return query.FetchAs(ctx, s.cache, query.ClientStatsKey(businessID, clientID), func(ctx context.Context) (*entity.ClientStats, error) {
		var out entity.ClientStats
		if err := s.api.Get(ctx, s.path(businessID, clientID, "/stats"), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Purchases(ctx context.Context, businessID, clientID int64) ([]entity.SaleSummary, error) {
	return query.FetchAs(ctx, s.cache, query.ClientPurchasesKey(businessID, clientID), func(ctx context.Context) ([]entity.SaleSummary, error) {
		var out []entity.SaleSummary
		err := s.api.Get(ctx, s.path(businessID, clientID, "/purchases"), nil, &out)
		return out, err
	})
}

func (s *Service) CreditHistory(ctx context.Context, businessID, clientID int64) ([]entity.CreditMovement, error) {
	return query.FetchAs(ctx, s.cache, query.ClientCreditKey(businessID, clientID), func(ctx context.Context) ([]entity.CreditMovement, error) {
		var out []entity.CreditMovement
		err := s.api.Get(ctx, s.path(businessID, clientID, "/credit"), nil, &out)
		return out, err
	})
}

func (s *Service) Create(ctx context.Context, businessID int64, form dto.ClientForm) (*entity.Client, error) {
	var out entity.Client
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/clients", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutClientCreate, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) Update(ctx context.Context, businessID, clientID int64, form dto.ClientForm) (*entity.Client, error) {
	var out entity.Client
	if err := s.api.Patch(ctx, s.path(businessID, clientID, ""), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutClientUpdate, query.Scope{BusinessID: businessID, ClientID: clientID})
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, businessID, clientID int64) error {
	if err := s.api.Delete(ctx, s.path(businessID, clientID, "")); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutClientDelete, query.Scope{BusinessID: businessID, ClientID: clientID})
	return nil
}

// AddCreditMovement registra un cargo o un abono sobre el crédito del cliente.
func (s *Service) AddCreditMovement(ctx context.Context, businessID, clientID int64, form dto.CreditMovementForm) (*entity.CreditMovement, error) {
	var out entity.CreditMovement
	if err := s.api.Post(ctx, s.path(businessID, clientID, "/credit"), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutClientCredit, query.Scope{BusinessID: businessID, ClientID: clientID})
	return &out, nil
}

func (s *Service) path(businessID, clientID int64, suffix string) string {
	return fmt.Sprintf("/businesses/%d/clients/%d%s", businessID, clientID, suffix)
}

func paramOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func boolOrNil(v bool) any {
	if !v {
		return nil
	}
	return v
}
