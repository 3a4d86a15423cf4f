package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
	SalePartial   = "partial"
)

// PaymentMethod método de pago configurable por negocio.
type PaymentMethod struct {
	ID          int64     `json:"id"`
	BusinessID  int64     `json:"business_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsDefault   bool      `json:"is_default"`
	IsCredit    bool      `json:"is_credit"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// SalePayment pago aplicado a una venta.
type SalePayment struct {
	ID                int64           `json:"id"`
	PaymentMethodID   int64           `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	Amount            decimal.Decimal `json:"amount"`
	IsCredit          bool            `json:"is_credit"`
}

// SaleItem renglón de una venta.
type SaleItem struct {
	ID               int64           `json:"id"`
	PresentationID   int64           `json:"presentation_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount         decimal.Decimal `json:"discount"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ProductName      string          `json:"product_name"`
	PresentationName string          `json:"presentation_name"`
}

// Sale venta completa. Consumir stock y afectar el saldo del cliente es
// responsabilidad del backend; aquí solo importa para la invalidación de caché.
type Sale struct {
	ID           int64           `json:"id"`
	BusinessID   int64           `json:"business_id"`
	ClientID     *int64          `json:"client_id"`
	ClientName   string          `json:"client_name"`
	WarehouseID  int64           `json:"warehouse_id"`
	CreatedBy    int64           `json:"created_by"`
	SellerName   string          `json:"seller_name"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	AmountCredit decimal.Decimal `json:"amount_credit"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
	CancelledAt  *time.Time      `json:"cancelled_at"`
	CancelReason string          `json:"cancel_reason"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []SaleItem      `json:"items"`
	Payments     []SalePayment   `json:"payments"`
}

// SaleSummary renglón de listado de ventas.
type SaleSummary struct {
	ID           int64           `json:"id"`
	ClientID     *int64          `json:"client_id"`
	ClientName   string          `json:"client_name"`
	Total        decimal.Decimal `json:"total"`
	AmountCredit decimal.Decimal `json:"amount_credit"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DailySummary resumen de ventas de un día.
type DailySummary struct {
	Date        string          `json:"date"`
	TotalSales  int             `json:"total_sales"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalCash   decimal.Decimal `json:"total_cash"`
}
