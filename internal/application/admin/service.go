// Package admin expone la consola de plataforma: usuarios y negocios de todo
// el sistema, bitácora global, métricas y configuración. El backend exige rol
// de sistema admin; acá el AdminGuard solo corta el paso en el cliente.
package admin

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

// ── Usuarios de plataforma ──────────────────────────────────────────────────

func (s *Service) Users(ctx context.Context, search string) ([]entity.User, error) {
	key := query.AdminUsersKey().WithParams(query.Params{"search": paramOrNil(search)})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.User, error) {
		params := url.Values{}
		if search != "" {
			params.Set("search", search)
		}
		var out []entity.User
		err := s.api.Get(ctx, "/admin/users", params, &out)
		return out, err
	})
}

func (s *Service) User(ctx context.Context, userID int64) (*entity.User, error) {
	return query.FetchAs(ctx, s.cache, query.AdminUserKey(userID), func(ctx context.Context) (*entity.User, error) {
		var out entity.User
		if err := s.api.Get(ctx, fmt.Sprintf("/admin/users/%d", userID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) UpdateUser(ctx context.Context, userID int64, form dto.AdminUserUpdateForm) (*entity.User, error) {
	var out entity.User
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/users/%d/full", userID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutAdminUserUpdate, query.Scope{UserID: userID})
	return &out, nil
}

// ToggleUserActive activa o desactiva la cuenta.
func (s *Service) ToggleUserActive(ctx context.Context, userID int64) (*entity.User, error) {
	var out entity.User
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/users/%d/toggle-active", userID), nil, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutAdminUserToggle, query.Scope{UserID: userID})
	return &out, nil
}

// ── Negocios de plataforma ──────────────────────────────────────────────────

func (s *Service) Businesses(ctx context.Context, search string) ([]entity.Business, error) {
	key := query.AdminBusinessesKey().WithParams(query.Params{"search": paramOrNil(search)})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.Business, error) {
		params := url.Values{}
		if search != "" {
			params.Set("search", search)
		}
		var out []entity.Business
		err := s.api.Get(ctx, "/admin/businesses", params, &out)
		return out, err
	})
}

func (s *Service) Business(ctx context.Context, businessID int64) (*entity.Business, error) {
	return query.FetchAs(ctx, s.cache, query.AdminBusinessKey(businessID), func(ctx context.Context) (*entity.Business, error) {
		var out entity.Business
		if err := s.api.Get(ctx, fmt.Sprintf("/admin/businesses/%d", businessID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) UpdateBusiness(ctx context.Context, businessID int64, form dto.AdminBusinessUpdateForm) (*entity.Business, error) {
	var out entity.Business
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/businesses/%d/full", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutAdminBusinessUpdate, query.Scope{BusinessID: businessID})
	return &out, nil
}

// ── Bitácora, métricas y configuración ──────────────────────────────────────

func (s *Service) AuditLogs(ctx context.Context, action string) ([]entity.AuditLog, error) {
	key := query.AuditLogsKey().WithParams(query.Params{"action": paramOrNil(action)})
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.AuditLog, error) {
		params := url.Values{}
		if action != "" {
			params.Set("action", action)
		}
		var out []entity.AuditLog
		err := s.api.Get(ctx, "/admin/audit-logs", params, &out)
		return out, err
	})
}

// AuditActions catálogo de acciones registradas, para poblar filtros.
func (s *Service) AuditActions(ctx context.Context) ([]string, error) {
	return query.FetchAs(ctx, s.cache, query.AuditLogsKey().With("actions"), func(ctx context.Context) ([]string, error) {
		var out []string
		err := s.api.Get(ctx, "/admin/audit-logs/actions", nil, &out)
		return out, err
	})
}

// AuditEntityTypes catálogo de tipos de entidad auditados.
func (s *Service) AuditEntityTypes(ctx context.Context) ([]string, error) {
	return query.FetchAs(ctx, s.cache, query.AuditLogsKey().With("entity-types"), func(ctx context.Context) ([]string, error) {
		var out []string
		err := s.api.Get(ctx, "/admin/audit-logs/entity-types", nil, &out)
		return out, err
	})
}

func (s *Service) Stats(ctx context.Context) (*entity.AdminStats, error) {
	return query.FetchAs(ctx, s.cache, query.AdminStatsKey(), func(ctx context.Context) (*entity.AdminStats, error) {
		var out entity.AdminStats
		if err := s.api.Get(ctx, "/admin/stats", nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Settings(ctx context.Context) ([]entity.SystemSetting, error) {
	return query.FetchAs(ctx, s.cache, query.AdminSettingsKey(), func(ctx context.Context) ([]entity.SystemSetting, error) {
		var out []entity.SystemSetting
		err := s.api.Get(ctx, "/admin/settings", nil, &out)
		return out, err
	})
}

func (s *Service) UpdateSettings(ctx context.Context, settings []dto.SettingForm) ([]entity.SystemSetting, error) {
	payload := map[string]any{"settings": settings}
	var out []entity.SystemSetting
	if err := s.api.Patch(ctx, "/admin/settings", payload, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutAdminSettingsUpdate, query.Scope{})
	return out, nil
}

func paramOrNil(v string) any {
	if v == "" {
		return nil
	}
	return v
}
