package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor del negocio, con cartera por pagar.
type Supplier struct {
	ID             int64           `json:"id"`
	BusinessID     int64           `json:"business_id"`
	Name           string          `json:"name"`
	ContactName    string          `json:"contact_name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	DocumentID     string          `json:"document_id"`
	Notes          string          `json:"notes"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreditDays     int             `json:"credit_days"`
	Status         string          `json:"status"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	LastPurchaseAt *time.Time      `json:"last_purchase_at"`
}

// SupplierStats agregados de compras y pagos a un proveedor.
type SupplierStats struct {
	TotalPurchases        int             `json:"total_purchases"`
	TotalSpent            decimal.Decimal `json:"total_spent"`
	AveragePurchase       decimal.Decimal `json:"average_purchase"`
	CurrentBalance        decimal.Decimal `json:"current_balance"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	DaysSinceLastPurchase *int            `json:"days_since_last_purchase"`
}

// SupplierProduct presentación que surte un proveedor, con costo acordado.
type SupplierProduct struct {
	ID               int64            `json:"id"`
	SupplierID       int64            `json:"supplier_id"`
	PresentationID   int64            `json:"presentation_id"`
	ProductName      string           `json:"product_name"`
	PresentationName string           `json:"presentation_name"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	IsActive         bool             `json:"is_active"`
}

// PurchaseItem renglón de una compra a proveedor.
type PurchaseItem struct {
	ID               int64           `json:"id"`
	PresentationID   int64           `json:"presentation_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	CostPerUnit      decimal.Decimal `json:"cost_per_unit"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	LotNumber        string          `json:"lot_number"`
	ExpiryDate       *time.Time      `json:"expiry_date"`
	ProductName      string          `json:"product_name"`
	PresentationName string          `json:"presentation_name"`
}

// SupplierPurchase compra a proveedor; su recepción genera entrada de stock.
type SupplierPurchase struct {
	ID            int64           `json:"id"`
	SupplierID    int64           `json:"supplier_id"`
	BusinessID    int64           `json:"business_id"`
	WarehouseID   int64           `json:"warehouse_id"`
	CreatedBy     int64           `json:"created_by"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountCredit  decimal.Decimal `json:"amount_credit"`
	PaymentStatus string          `json:"payment_status"` // pending, paid, overdue
	Status        string          `json:"status"`         // completed, partial, cancelled
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []PurchaseItem  `json:"items"`
}

// SupplierPayment abono a la deuda con un proveedor.
type SupplierPayment struct {
	ID          int64           `json:"id"`
	SupplierID  int64           `json:"supplier_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedBy   *int64          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SupplierPortfolio cartera por pagar consolidada del negocio.
type SupplierPortfolio struct {
	TotalSuppliersWithDebt int             `json:"total_suppliers_with_debt"`
	TotalDebt              decimal.Decimal `json:"total_debt"`
	TotalOverdue           decimal.Decimal `json:"total_overdue"`
	PaidLast30Days         decimal.Decimal `json:"paid_last_30_days"`
}
