// Package business cubre negocios, miembros, roles y el catálogo de permisos.
// También deriva las capacidades del usuario autenticado sobre un negocio.
package business

import (
	"context"
	"fmt"

	"github.com/altovivo/client-go/internal/application/dto"
	"github.com/altovivo/client-go/internal/authz"
	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/logger"
)

type Service struct {
	api   *rest.Client
	cache *query.Cache
	store *session.Store
	log   *logger.Logger
}

func NewService(api *rest.Client, cache *query.Cache, store *session.Store, log *logger.Logger) *Service {
	return &Service{api: api, cache: cache, store: store, log: log}
}

// ── Negocios ────────────────────────────────────────────────────────────────

func (s *Service) List(ctx context.Context) ([]entity.Business, error) {
	return query.FetchAs(ctx, s.cache, query.BusinessesKey(), func(ctx context.Context) ([]entity.Business, error) {
		var out []entity.Business
		err := s.api.Get(ctx, "/businesses", nil, &out)
		return out, err
	})
}

func (s *Service) Get(ctx context.Context, businessID int64) (*entity.Business, error) {
	return query.FetchAs(ctx, s.cache, query.BusinessKey(businessID), func(ctx context.Context) (*entity.Business, error) {
		var out entity.Business
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d", businessID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) Create(ctx context.Context, form dto.BusinessCreateForm) (*entity.Business, error) {
	var out entity.Business
	if err := s.api.Post(ctx, "/businesses", form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutBusinessCreate, query.Scope{})
	return &out, nil
}

func (s *Service) Update(ctx context.Context, businessID int64, form dto.BusinessUpdateForm) (*entity.Business, error) {
	var out entity.Business
	if err := s.api.Patch(ctx, fmt.Sprintf("/businesses/%d", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutBusinessUpdate, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, businessID int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/businesses/%d", businessID)); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutBusinessDelete, query.Scope{BusinessID: businessID})
	return nil
}

// ── Miembros ────────────────────────────────────────────────────────────────

func (s *Service) Members(ctx context.Context, businessID int64) ([]entity.BusinessMember, error) {
	return query.FetchAs(ctx, s.cache, query.BusinessUsersKey(businessID), func(ctx context.Context) ([]entity.BusinessMember, error) {
		var out []entity.BusinessMember
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/users", businessID), nil, &out)
		return out, err
	})
}

func (s *Service) InviteUser(ctx context.Context, businessID int64, form dto.InviteUserForm) (*entity.BusinessMember, error) {
	var out entity.BusinessMember
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/users", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutMemberInvite, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) UpdateUserRole(ctx context.Context, businessID, userID, roleID int64) (*entity.BusinessMember, error) {
	payload := map[string]int64{"business_role_id": roleID}
	var out entity.BusinessMember
	if err := s.api.Patch(ctx, fmt.Sprintf("/businesses/%d/users/%d/role", businessID, userID), payload, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutMemberUpdate, query.Scope{BusinessID: businessID, UserID: userID})
	return &out, nil
}

func (s *Service) RemoveUser(ctx context.Context, businessID, userID int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/businesses/%d/users/%d", businessID, userID)); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutMemberRemove, query.Scope{BusinessID: businessID, UserID: userID})
	return nil
}

// ── Roles y permisos ────────────────────────────────────────────────────────

func (s *Service) Roles(ctx context.Context, businessID int64) ([]entity.Role, error) {
	return query.FetchAs(ctx, s.cache, query.RolesKey(businessID), func(ctx context.Context) ([]entity.Role, error) {
		var out []entity.Role
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/roles", businessID), nil, &out)
		return out, err
	})
}

func (s *Service) Role(ctx context.Context, businessID, roleID int64) (*entity.Role, error) {
	return query.FetchAs(ctx, s.cache, query.RoleKey(businessID, roleID), func(ctx context.Context) (*entity.Role, error) {
		var out entity.Role
		if err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/roles/%d", businessID, roleID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Service) CreateRole(ctx context.Context, businessID int64, form dto.RoleForm) (*entity.Role, error) {
	var out entity.Role
	if err := s.api.Post(ctx, fmt.Sprintf("/businesses/%d/roles", businessID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutRoleCreate, query.Scope{BusinessID: businessID})
	return &out, nil
}

func (s *Service) UpdateRole(ctx context.Context, businessID, roleID int64, form dto.RoleForm) (*entity.Role, error) {
	var out entity.Role
	if err := s.api.Put(ctx, fmt.Sprintf("/businesses/%d/roles/%d", businessID, roleID), form, &out); err != nil {
		return nil, err
	}
	s.cache.InvalidateAfter(ctx, query.MutRoleUpdate, query.Scope{BusinessID: businessID, RoleID: roleID})
	return &out, nil
}

func (s *Service) DeleteRole(ctx context.Context, businessID, roleID int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/businesses/%d/roles/%d", businessID, roleID)); err != nil {
		return err
	}
	s.cache.InvalidateAfter(ctx, query.MutRoleDelete, query.Scope{BusinessID: businessID, RoleID: roleID})
	return nil
}

// Permissions el catálogo de permisos asignables del negocio.
func (s *Service) Permissions(ctx context.Context, businessID int64) ([]entity.Permission, error) {
	return query.FetchAs(ctx, s.cache, query.PermissionsKey(businessID), func(ctx context.Context) ([]entity.Permission, error) {
		var out []entity.Permission
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/permissions", businessID), nil, &out)
		return out, err
	})
}

// ── Capacidades ─────────────────────────────────────────────────────────────

// Capabilities deriva las capacidades del usuario autenticado sobre el negocio
// a partir del detalle del negocio y su lista de miembros.
func (s *Service) Capabilities(ctx context.Context, businessID int64) (authz.Capabilities, error) {
	user := s.store.User()
	biz, err := s.Get(ctx, businessID)
	if err != nil {
		return authz.Capabilities{}, err
	}
	members, err := s.Members(ctx, businessID)
	if err != nil {
		return authz.Capabilities{}, err
	}
	return authz.Derive(user, biz, members), nil
}

// AuditLogs bitácora del negocio (solo el dueño la ve).
func (s *Service) AuditLogs(ctx context.Context, businessID int64) ([]entity.AuditLog, error) {
	key := query.BusinessKey(businessID).With("audit-logs")
	return query.FetchAs(ctx, s.cache, key, func(ctx context.Context) ([]entity.AuditLog, error) {
		var out []entity.AuditLog
		err := s.api.Get(ctx, fmt.Sprintf("/businesses/%d/audit-logs", businessID), nil, &out)
		return out, err
	})
}
