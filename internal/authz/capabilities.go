package authz

import (
	"slices"

	"github.com/altovivo/client-go/internal/domain/entity"
)

// PermissionWildcard sentinela que marca el acceso irrestricto del dueño.
// Solo Derive lo coloca en Permissions; HasPermission nunca lo compara
// literalmente, así que un permiso real llamado "*" no escala a acceso total.
const PermissionWildcard = "*"

// Capabilities conjunto de capacidades derivado para un par (usuario, negocio).
// Es un valor puro: se recalcula cada vez que cambia alguna de sus entradas
// y nunca se cachea por separado.
type Capabilities struct {
	IsOwner        bool
	CanManageUsers bool
	CanManageRoles bool
	Permissions    []string

	unrestricted bool
}

// HasPermission indica si la capacidad incluye el permiso dado.
// El dueño responde true para cualquier código; para miembros es pertenencia
// literal a la lista de permisos de su membresía.
func (c Capabilities) HasPermission(code string) bool {
	if c.unrestricted {
		return true
	}
	return slices.Contains(c.Permissions, code)
}

// Derive calcula las capacidades de user sobre business, en orden estricto
// de primera coincidencia:
//
//  1. Sin usuario o sin negocio cargado → capacidades cero (aún no autorizado).
//  2. user es dueño del negocio → todo permitido, sin consultar membresías.
//  3. Sin fila de membresía → capacidades cero (no es miembro).
//  4. Con membresía → los flags y permisos explícitos de la fila.
//
// Pura y total: nunca lanza pánico y acepta entradas parcialmente cargadas.
func Derive(user *entity.User, business *entity.Business, members []entity.BusinessMember) Capabilities {
	if user == nil || business == nil {
		return Capabilities{Permissions: []string{}}
	}

	if user.ID == business.OwnerID {
		return Capabilities{
			IsOwner:        true,
			CanManageUsers: true,
			CanManageRoles: true,
			Permissions:    []string{PermissionWildcard},
			unrestricted:   true,
		}
	}

	for _, m := range members {
		if m.UserID == user.ID {
			perms := m.Permissions
			if perms == nil {
				perms = []string{}
			}
			return Capabilities{
				CanManageUsers: m.CanManageUsers,
				CanManageRoles: m.CanManageRoles,
				Permissions:    perms,
			}
		}
	}

	return Capabilities{Permissions: []string{}}
}
