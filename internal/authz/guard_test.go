package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altovivo/client-go/internal/authz"
	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/logger"
)

func emptyStore() *session.Store {
	return session.NewStore("", logger.Nop())
}

func loggedInStore(role string) *session.Store {
	s := emptyStore()
	s.Login(&entity.User{ID: 42, Email: "maria@altovivo.test", SystemRole: role}, "tok-acceso", "tok-refresh")
	return s
}

func TestSessionGuard(t *testing.T) {
	// Caso 1: sin sesión → denegado hacia /login preservando el destino.
	out := authz.SessionGuard(emptyStore(), "/businesses/5/sales")
	assert.Equal(t, authz.StateDenied, out.State)
	assert.Equal(t, authz.LoginPath, out.RedirectTo)
	assert.Equal(t, "/businesses/5/sales", out.From, "From debe preservar la ruta pedida")

	// Caso 2: con token pero sin usuario cargado → también denegado.
	partial := emptyStore()
	partial.SetTokens("tok-acceso", "tok-refresh")
	out = authz.SessionGuard(partial, "/dashboard")
	assert.Equal(t, authz.StateDenied, out.State, "token sin usuario no es sesión completa")

	// Caso 3: sesión completa → permitido.
	out = authz.SessionGuard(loggedInStore(entity.SystemRoleUser), "/dashboard")
	assert.True(t, out.Allowed())
}

func TestPublicOnlyGuard(t *testing.T) {
	// Caso 1: sin credencial → la ruta pública se muestra.
	assert.True(t, authz.PublicOnlyGuard(emptyStore()).Allowed())

	// Caso 2: basta la credencial para rebotar al dashboard, aunque el
	// usuario todavía no haya cargado.
	partial := emptyStore()
	partial.SetTokens("tok-acceso", "")
	out := authz.PublicOnlyGuard(partial)
	assert.Equal(t, authz.StateDenied, out.State)
	assert.Equal(t, authz.DashboardPath, out.RedirectTo)
}

func TestBusinessGuard(t *testing.T) {
	user := &entity.User{ID: 42}
	biz := &entity.Business{ID: 5, OwnerID: 7}

	// Caso 1: entradas sin cargar → Loading, nunca redirección.
	out := authz.BusinessGuard(authz.Capabilities{}, false, authz.RequireManageUsers, 5, "")
	assert.Equal(t, authz.StateLoading, out.State)
	assert.Empty(t, out.RedirectTo, "en Loading no se decide redirección")

	// Caso 2: miembro sin la capacidad → denegado a la página del negocio.
	caps := authz.Derive(user, biz, []entity.BusinessMember{{UserID: 42}})
	out = authz.BusinessGuard(caps, true, authz.RequireManageUsers, 5, "")
	assert.Equal(t, authz.StateDenied, out.State)
	assert.Equal(t, "/businesses/5", out.RedirectTo)

	// Caso 3: fallback explícito.
	out = authz.BusinessGuard(caps, true, authz.RequireManageRoles, 5, "/acceso-denegado")
	assert.Equal(t, "/acceso-denegado", out.RedirectTo)

	// Caso 4: la capacidad puntual alcanza sin ser dueño.
	caps = authz.Derive(user, biz, []entity.BusinessMember{{UserID: 42, CanManageUsers: true}})
	assert.True(t, authz.BusinessGuard(caps, true, authz.RequireManageUsers, 5, "").Allowed())
	assert.False(t, authz.BusinessGuard(caps, true, authz.RequireManageRoles, 5, "").Allowed())
	assert.False(t, authz.BusinessGuard(caps, true, authz.RequireOwner, 5, "").Allowed(),
		"RequireOwner solo lo pasa el dueño")

	// Caso 5: el dueño pasa cualquier exigencia.
	ownerCaps := authz.Derive(&entity.User{ID: 7}, biz, nil)
	assert.True(t, authz.BusinessGuard(ownerCaps, true, authz.RequireOwner, 5, "").Allowed())
	assert.True(t, authz.BusinessGuard(ownerCaps, true, authz.RequireManageRoles, 5, "").Allowed())
}

func TestAdminGuard(t *testing.T) {
	// Caso 1: sin sesión → /login.
	out := authz.AdminGuard(emptyStore())
	assert.Equal(t, authz.StateDenied, out.State)
	assert.Equal(t, authz.LoginPath, out.RedirectTo)

	// Caso 2: usuario regular → /dashboard.
	out = authz.AdminGuard(loggedInStore(entity.SystemRoleUser))
	assert.Equal(t, authz.StateDenied, out.State)
	assert.Equal(t, authz.DashboardPath, out.RedirectTo)

	// Caso 3: roles de plataforma permitidos.
	for _, role := range []string{entity.SystemRoleSuperAdmin, entity.SystemRoleAdmin, entity.SystemRoleSupport} {
		assert.True(t, authz.AdminGuard(loggedInStore(role)).Allowed(), "el rol %s debe entrar al panel", role)
	}
}
