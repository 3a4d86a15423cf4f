package entity

import "time"

// Módulos funcionales contratables por negocio. Los flags booleanos del
// negocio deben coincidir con estas constantes (module_<nombre> en el wire).
const (
	ModuleInventory = "inventory"
	ModuleSales     = "sales"
	ModuleClients   = "clients"
	ModulePortfolio = "portfolio"
	ModuleFinance   = "finance"
	ModuleSuppliers = "suppliers"
	ModuleReports   = "reports"
	ModuleWaste     = "waste"
)

// Business representa un negocio (tenant) con su dueño y módulos activos.
// Invariante: exactamente un dueño; el dueño tiene todos los permisos
// aunque no aparezca en la lista de miembros.
type Business struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	BusinessType string    `json:"business_type"` // retail, restaurant, wholesale, other
	PlanType     string    `json:"plan_type"`
	MaxUsers     int       `json:"max_users"`
	MaxProducts  int       `json:"max_products"`
	OwnerID      int64     `json:"owner_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	ModuleInventoryOn bool `json:"module_inventory"`
	ModuleSalesOn     bool `json:"module_sales"`
	ModuleClientsOn   bool `json:"module_clients"`
	ModulePortfolioOn bool `json:"module_portfolio"`
	ModuleFinanceOn   bool `json:"module_finance"`
	ModuleSuppliersOn bool `json:"module_suppliers"`
	ModuleReportsOn   bool `json:"module_reports"`
	ModuleWasteOn     bool `json:"module_waste"`
}

// ModuleEnabled indica si un módulo está activo en el negocio.
// Un nombre desconocido se trata como módulo inactivo.
func (b *Business) ModuleEnabled(name string) bool {
	if b == nil {
		return false
	}
	switch name {
	case ModuleInventory:
		return b.ModuleInventoryOn
	case ModuleSales:
		return b.ModuleSalesOn
	case ModuleClients:
		return b.ModuleClientsOn
	case ModulePortfolio:
		return b.ModulePortfolioOn
	case ModuleFinance:
		return b.ModuleFinanceOn
	case ModuleSuppliers:
		return b.ModuleSuppliersOn
	case ModuleReports:
		return b.ModuleReportsOn
	case ModuleWaste:
		return b.ModuleWasteOn
	default:
		return false
	}
}

// BusinessMember vincula un usuario con un negocio y sus permisos explícitos.
// A lo sumo una fila por par (usuario, negocio); sin fila no hay acceso.
type BusinessMember struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	UserName       string    `json:"user_name"`
	RoleID         *int64    `json:"role_id"`
	RoleName       string    `json:"role_name"`
	IsActive       bool      `json:"is_active"`
	JoinedAt       time.Time `json:"joined_at"`
	CanManageUsers bool      `json:"can_manage_users"`
	CanManageRoles bool      `json:"can_manage_roles"`
	Permissions    []string  `json:"permissions"`
}
