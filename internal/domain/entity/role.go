package entity

import "time"

// Permission catálogo de permisos por módulo que expone el backend.
type Permission struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Module      string `json:"module"`
	Description string `json:"description"`
}

// Role rol definido dentro de un negocio, con permisos agrupados.
type Role struct {
	ID             int64        `json:"id"`
	BusinessID     int64        `json:"business_id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	IsDefault      bool         `json:"is_default"`
	CanManageUsers bool         `json:"can_manage_users"`
	CanManageRoles bool         `json:"can_manage_roles"`
	Permissions    []Permission `json:"permissions"`
	CreatedAt      time.Time    `json:"created_at"`
}
