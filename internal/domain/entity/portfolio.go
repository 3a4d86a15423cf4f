package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSummary estado consolidado de la cartera por cobrar.
type PortfolioSummary struct {
	TotalClientsWithDebt int             `json:"total_clients_with_debt"`
	TotalPortfolio       decimal.Decimal `json:"total_portfolio"`
	TotalOverdue         decimal.Decimal `json:"total_overdue"`
	MorososCount         int             `json:"morosos_count"`
	CollectedLast30Days  decimal.Decimal `json:"collected_last_30_days"`
}

// PortfolioMovement cargo o abono visto desde la cartera del negocio.
type PortfolioMovement struct {
	ID           int64           `json:"id"`
	ClientID     int64           `json:"client_id"`
	ClientName   string          `json:"client_name"`
	Amount       decimal.Decimal `json:"amount"`
	MovementType string          `json:"movement_type"` // charge, payment
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}
