package authz

import (
	"fmt"
	"slices"

	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/session"
)

// GuardState resultado de evaluar un guard de navegación.
type GuardState int

const (
	// StateLoading las entradas aún no cargan: renderizar placeholder, no redirigir.
	StateLoading GuardState = iota
	// StateAllowed renderizar el contenido protegido.
	StateAllowed
	// StateDenied redirigir a Outcome.RedirectTo.
	StateDenied
)

// Rutas de redirección por defecto.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Outcome decisión de un guard. RedirectTo solo aplica en StateDenied;
// From preserva la ruta originalmente pedida para volver tras el login.
type Outcome struct {
	State      GuardState
	RedirectTo string
	From       string
}

// Allowed azúcar para comprobar el caso feliz.
func (o Outcome) Allowed() bool { return o.State == StateAllowed }

// SessionGuard protege rutas que requieren autenticación: exige credencial
// no vacía y usuario cargado. Si falta cualquiera, redirige a /login
// preservando la ruta destino.
func SessionGuard(store *session.Store, target string) Outcome {
	if !store.IsAuthenticated() {
		return Outcome{State: StateDenied, RedirectTo: LoginPath, From: target}
	}
	return Outcome{State: StateAllowed}
}

// PublicOnlyGuard protege rutas públicas (login, register): con sesión
// iniciada redirige al dashboard. Basta la credencial; el usuario puede
// no estar cargado todavía al arrancar.
func PublicOnlyGuard(store *session.Store) Outcome {
	if store.AccessToken() != "" {
		return Outcome{State: StateDenied, RedirectTo: DashboardPath}
	}
	return Outcome{State: StateAllowed}
}

// Requirement capacidad exigida por una ruta de negocio.
type Requirement int

const (
	RequireOwner Requirement = iota
	RequireManageUsers
	RequireManageRoles
)

// BusinessGuard protege rutas internas de un negocio.
// Mientras el negocio o las membresías no cargan devuelve StateLoading
// (placeholder, nunca redirección). Con entradas cargadas, el dueño pasa
// cualquier exigencia; si la capacidad falta, redirige a fallback o a la
// página del negocio.
func BusinessGuard(caps Capabilities, loaded bool, req Requirement, businessID int64, fallback string) Outcome {
	if !loaded {
		return Outcome{State: StateLoading}
	}

	ok := caps.IsOwner
	switch req {
	case RequireManageUsers:
		ok = ok || caps.CanManageUsers
	case RequireManageRoles:
		ok = ok || caps.CanManageRoles
	}

	if !ok {
		if fallback == "" {
			fallback = fmt.Sprintf("/businesses/%d", businessID)
		}
		return Outcome{State: StateDenied, RedirectTo: fallback}
	}
	return Outcome{State: StateAllowed}
}

// adminRoles roles de sistema con acceso al panel de administración.
var adminRoles = []string{
	entity.SystemRoleSuperAdmin,
	entity.SystemRoleAdmin,
	entity.SystemRoleSupport,
}

// AdminGuard protege el panel de administración de la plataforma.
// Sin credencial o sin usuario cargado → /login; con usuario fuera de la
// lista de roles permitidos → /dashboard.
func AdminGuard(store *session.Store) Outcome {
	user := store.User()
	if store.AccessToken() == "" || user == nil {
		return Outcome{State: StateDenied, RedirectTo: LoginPath}
	}
	if !slices.Contains(adminRoles, user.SystemRole) {
		return Outcome{State: StateDenied, RedirectTo: DashboardPath}
	}
	return Outcome{State: StateAllowed}
}
