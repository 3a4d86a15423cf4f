package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashIncome  = "income"
	CashExpense = "expense"
)

// CashRegister caja registradora de un negocio, con su sesión activa si existe.
type CashRegister struct {
	ID            int64            `json:"id"`
	BusinessID    int64            `json:"business_id"`
	WarehouseID   int64            `json:"warehouse_id"`
	Name          string           `json:"name"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	OpenSessionID *int64           `json:"open_session_id"`
	OpenedAt      *time.Time       `json:"opened_at"`
	OpenedByName  string           `json:"opened_by_name"`
	OpeningAmount *decimal.Decimal `json:"opening_amount"`
}

// PaymentBreakdown total por método de pago dentro de una sesión.
type PaymentBreakdown struct {
	PaymentMethodID   int64           `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	Total             decimal.Decimal `json:"total"`
	IsCredit          bool            `json:"is_credit"`
}

// CashMovement ingreso o egreso manual dentro de una sesión de caja.
type CashMovement struct {
	ID           int64           `json:"id"`
	SessionID    int64           `json:"session_id"`
	MovementType string          `json:"movement_type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CashSession sesión de caja (apertura → cierre) con sus totales.
// Que no exista sesión abierta para una caja es un resultado normal,
// no un error: la lectura usa la política TerminalOnAbsence.
type CashSession struct {
	ID               int64              `json:"id"`
	RegisterID       int64              `json:"register_id"`
	BusinessID       int64              `json:"business_id"`
	Status           string             `json:"status"` // open, closed
	OpeningAmount    decimal.Decimal    `json:"opening_amount"`
	OpenedAt         time.Time          `json:"opened_at"`
	OpeningNotes     string             `json:"opening_notes"`
	OpenedByName     string             `json:"opened_by_name"`
	ClosingAmount    *decimal.Decimal   `json:"closing_amount"`
	ExpectedAmount   *decimal.Decimal   `json:"expected_amount"`
	Difference       *decimal.Decimal   `json:"difference"`
	ClosedAt         *time.Time         `json:"closed_at"`
	ClosingNotes     string             `json:"closing_notes"`
	ClosedByName     string             `json:"closed_by_name"`
	TotalSales       *decimal.Decimal   `json:"total_sales"`
	TotalIncome      *decimal.Decimal   `json:"total_income"`
	TotalExpense     *decimal.Decimal   `json:"total_expense"`
	TotalCredit      *decimal.Decimal   `json:"total_credit"`
	PaymentBreakdown []PaymentBreakdown `json:"payment_breakdown"`
	Movements        []CashMovement     `json:"movements"`
}

// FinanceSummary panorama financiero del día para el dashboard.
type FinanceSummary struct {
	OpenSessions       int             `json:"open_sessions"`
	TotalOpenRegisters int             `json:"total_open_registers"`
	TodayRevenue       decimal.Decimal `json:"today_revenue"`
	TodayExpenses      decimal.Decimal `json:"today_expenses"`
	TodayCredit        decimal.Decimal `json:"today_credit"`
	TodayNet           decimal.Decimal `json:"today_net"`
}
