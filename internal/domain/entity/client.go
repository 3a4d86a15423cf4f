package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client cliente del negocio, con estado de crédito.
type Client struct {
	ID             int64           `json:"id"`
	BusinessID     int64           `json:"business_id"`
	Name           string          `json:"name"`
	ClientType     string          `json:"client_type"` // individual, company
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

// ClientStats agregados de compras y crédito de un cliente.
type ClientStats struct {
	TotalPurchases   int             `json:"total_purchases"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	AveragePurchase  decimal.Decimal `json:"average_purchase"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	LastPurchaseDays *int            `json:"days_since_last_purchase"`
}

// CreditMovement movimiento de crédito de un cliente (cargo o abono).
type CreditMovement struct {
	ID           int64           `json:"id"`
	ClientID     int64           `json:"client_id"`
	Amount       decimal.Decimal `json:"amount"`
	MovementType string          `json:"movement_type"` // charge, payment
	Description  string          `json:"description"`
	CreatedBy    *int64          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}
