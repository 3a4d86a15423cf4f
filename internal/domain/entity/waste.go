package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Causas de merma reconocidas por el backend.
const (
	WasteExpired        = "expired"
	WasteDamaged        = "damaged"
	WasteTheft          = "theft"
	WasteInventoryError = "inventory_error"
	WasteSample         = "sample"
)

// WasteRecord merma registrada; descuenta stock en el backend.
type WasteRecord struct {
	ID               int64            `json:"id"`
	BusinessID       int64            `json:"business_id"`
	PresentationID   int64            `json:"presentation_id"`
	WarehouseID      int64            `json:"warehouse_id"`
	LotID            *int64           `json:"lot_id"`
	CreatedBy        int64            `json:"created_by"`
	Cause            string           `json:"cause"`
	Quantity         decimal.Decimal  `json:"quantity"`
	CostPerUnit      *decimal.Decimal `json:"cost_per_unit"`
	TotalCost        *decimal.Decimal `json:"total_cost"`
	Notes            string           `json:"notes"`
	IsAuto           bool             `json:"is_auto"`
	CreatedAt        time.Time        `json:"created_at"`
	ProductName      string           `json:"product_name"`
	PresentationName string           `json:"presentation_name"`
	WarehouseName    string           `json:"warehouse_name"`
	LotNumber        string           `json:"lot_number"`
	CreatorName      string           `json:"creator_name"`
}

// WasteByCause total de mermas agrupado por causa.
type WasteByCause struct {
	Cause     string          `json:"cause"`
	Count     int             `json:"count"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// WasteSummary agregado de mermas de un período.
type WasteSummary struct {
	TotalRecords int             `json:"total_records"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	ByCause      []WasteByCause  `json:"by_cause"`
}

// AutoWasteResult resultado de procesar lotes vencidos como merma automática.
type AutoWasteResult struct {
	Processed int             `json:"processed"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Records   []WasteRecord   `json:"records"`
}
