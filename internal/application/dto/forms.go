package dto

// Payloads de escritura hacia el backend. Validar reglas de negocio es tarea
// del servidor; aquí solo viaja lo que el formulario capturó.

// ── Auth ────────────────────────────────────────────────────────────────────

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterForm struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

type ChangePasswordForm struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ProfileForm struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ── Negocios, miembros y roles ──────────────────────────────────────────────

type BusinessCreateForm struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	BusinessType string `json:"business_type"`
	PlanType     string `json:"plan_type"`
}

type BusinessUpdateForm struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type InviteUserForm struct {
	UserEmail      string `json:"user_email"`
	BusinessRoleID int64  `json:"business_role_id"`
}

type RoleForm struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	PermissionCodes []string `json:"permission_codes"`
	CanManageUsers  bool     `json:"can_manage_users"`
	CanManageRoles  bool     `json:"can_manage_roles"`
}

// ── Clientes ────────────────────────────────────────────────────────────────

type ClientForm struct {
	Name        string `json:"name"`
	ClientType  string `json:"client_type"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	DocumentID  string `json:"document_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreditLimit string `json:"credit_limit,omitempty"`
	CreditDays  int    `json:"credit_days,omitempty"`
}

type CreditMovementForm struct {
	Amount       string `json:"amount"`
	MovementType string `json:"movement_type"` // charge, payment
	Description  string `json:"description,omitempty"`
}

// ── Proveedores ─────────────────────────────────────────────────────────────

type SupplierForm struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	DocumentID  string `json:"document_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreditLimit string `json:"credit_limit,omitempty"`
	CreditDays  int    `json:"credit_days,omitempty"`
}

type SupplierProductForm struct {
	PresentationID int64  `json:"presentation_id"`
	CostPrice      string `json:"cost_price,omitempty"`
}

type PurchaseItemForm struct {
	PresentationID int64  `json:"presentation_id"`
	Quantity       string `json:"quantity"`
	CostPerUnit    string `json:"cost_per_unit"`
	LotNumber      string `json:"lot_number,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"` // YYYY-MM-DD
}

type PurchaseForm struct {
	WarehouseID int64              `json:"warehouse_id"`
	Items       []PurchaseItemForm `json:"items"`
	Discount    string             `json:"discount,omitempty"`
	AmountPaid  string             `json:"amount_paid"`
	Notes       string             `json:"notes,omitempty"`
}

type SupplierPaymentForm struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// ── Ventas ──────────────────────────────────────────────────────────────────

type PaymentMethodForm struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsCredit    bool   `json:"is_credit,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type SaleItemForm struct {
	PresentationID int64  `json:"presentation_id"`
	Quantity       string `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	Discount       string `json:"discount,omitempty"`
}

type SalePaymentForm struct {
	PaymentMethodID int64  `json:"payment_method_id"`
	Amount          string `json:"amount"`
}

type SaleForm struct {
	ClientID    *int64            `json:"client_id,omitempty"`
	WarehouseID int64             `json:"warehouse_id"`
	Items       []SaleItemForm    `json:"items"`
	Payments    []SalePaymentForm `json:"payments"`
	Discount    string            `json:"discount,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// ── Finanzas ────────────────────────────────────────────────────────────────

type CashRegisterForm struct {
	Name        string `json:"name"`
	WarehouseID int64  `json:"warehouse_id,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type OpenSessionForm struct {
	OpeningAmount string `json:"opening_amount"`
	Notes         string `json:"notes,omitempty"`
}

type CloseSessionForm struct {
	ClosingAmount string `json:"closing_amount"`
	Notes         string `json:"notes,omitempty"`
}

type CashMovementForm struct {
	MovementType string `json:"movement_type"` // income, expense
	Amount       string `json:"amount"`
	Description  string `json:"description"`
}

// ── Mermas ──────────────────────────────────────────────────────────────────

type WasteForm struct {
	PresentationID int64  `json:"presentation_id"`
	WarehouseID    int64  `json:"warehouse_id"`
	LotID          *int64 `json:"lot_id,omitempty"`
	Cause          string `json:"cause"`
	Quantity       string `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

// ── Administración ──────────────────────────────────────────────────────────

type AdminUserUpdateForm struct {
	SystemRole       string `json:"system_role,omitempty"`
	SubscriptionPlan string `json:"subscription_plan,omitempty"`
	IsActive         *bool  `json:"is_active,omitempty"`
	FullName         string `json:"full_name,omitempty"`
	Phone            string `json:"phone,omitempty"`
}

type AdminBusinessUpdateForm struct {
	PlanType    string `json:"plan_type,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
	MaxUsers    *int   `json:"max_users,omitempty"`
	MaxProducts *int   `json:"max_products,omitempty"`
}

type SettingForm struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
