package entity

import "time"

// Roles de sistema (plataforma completa, no por negocio).
const (
	SystemRoleSuperAdmin = "super_admin"
	SystemRoleAdmin      = "admin"
	SystemRoleSupport    = "support"
	SystemRoleUser       = "user"
)

// Planes de suscripción disponibles.
const (
	PlanFree         = "free"
	PlanBasic        = "basic"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// User representa la identidad autenticada en la plataforma.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	Phone            string    `json:"phone"`
	SystemRole       string    `json:"system_role"`
	SubscriptionPlan string    `json:"subscription_plan"`
	IsActive         bool      `json:"is_active"`
	IsVerified       bool      `json:"is_verified"`
	CreatedAt        time.Time `json:"created_at"`
}

// TokenPair respuesta de /auth/login y /auth/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
