package entity

import "time"

// AuditLog registro de auditoría de la plataforma (solo administración).
type AuditLog struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   *int64    `json:"entity_id"`
	Detail     string    `json:"detail"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

// SystemSetting parámetro global de la plataforma, editable por administradores.
type SystemSetting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminStats contadores globales del panel de administración.
type AdminStats struct {
	TotalUsers       int            `json:"total_users"`
	ActiveUsers      int            `json:"active_users"`
	TotalBusinesses  int            `json:"total_businesses"`
	ActiveBusinesses int            `json:"active_businesses"`
	BusinessesByPlan map[string]int `json:"businesses_by_plan"`
	UsersLast30Days  int            `json:"users_last_30_days"`
}
