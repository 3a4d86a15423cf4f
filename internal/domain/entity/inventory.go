package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category categoría de productos del negocio.
type Category struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Warehouse bodega o punto de almacenamiento.
type Warehouse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	IsDefault  bool      `json:"is_default"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Presentation presentación vendible de un producto (unidad, caja, etc.).
type Presentation struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode"`
	SalePrice decimal.Decimal `json:"sale_price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Stock     decimal.Decimal `json:"stock"`
	IsActive  bool            `json:"is_active"`
}

// Product producto del catálogo con sus presentaciones.
type Product struct {
	ID            int64          `json:"id"`
	BusinessID    int64          `json:"business_id"`
	CategoryID    *int64         `json:"category_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	Presentations []Presentation `json:"presentations"`
}

// InventoryMovement movimiento de inventario (entrada, salida, ajuste, traslado).
type InventoryMovement struct {
	ID                     int64            `json:"id"`
	PresentationID         int64            `json:"presentation_id"`
	WarehouseID            int64            `json:"warehouse_id"`
	MovementType           string           `json:"movement_type"`
	Quantity               decimal.Decimal  `json:"quantity"`
	CostPerUnit            *decimal.Decimal `json:"cost_per_unit"`
	Reason                 string           `json:"reason"`
	DestinationWarehouseID *int64           `json:"destination_warehouse_id"`
	ReferenceType          string           `json:"reference_type"`
	CreatedBy              int64            `json:"created_by"`
	CreatedAt              time.Time        `json:"created_at"`
}

// LowStockAlert presentación por debajo de su stock mínimo.
type LowStockAlert struct {
	ProductID        int64           `json:"product_id"`
	ProductName      string          `json:"product_name"`
	PresentationID   int64           `json:"presentation_id"`
	PresentationName string          `json:"presentation_name"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	MinStock         decimal.Decimal `json:"min_stock"`
}

// ExpiringLotAlert lote próximo a vencer.
type ExpiringLotAlert struct {
	LotID            int64           `json:"lot_id"`
	LotNumber        string          `json:"lot_number"`
	ProductName      string          `json:"product_name"`
	PresentationName string          `json:"presentation_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	ExpiryDate       time.Time       `json:"expiry_date"`
	DaysLeft         int             `json:"days_left"`
}
