package entity

import "github.com/shopspring/decimal"

// SalesByPeriod agregado de ventas por período (día, semana o mes).
type SalesByPeriod struct {
	Period       string          `json:"period"`
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	TotalCash    decimal.Decimal `json:"total_cash"`
}

// TopProduct producto más vendido dentro de un reporte de ventas.
type TopProduct struct {
	PresentationID   int64           `json:"presentation_id"`
	ProductName      string          `json:"product_name"`
	PresentationName string          `json:"presentation_name"`
	UnitsSold        decimal.Decimal `json:"units_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TimesSold        int             `json:"times_sold"`
}

// SalesReport reporte de ventas de un rango de fechas.
type SalesReport struct {
	DateFrom      string          `json:"date_from"`
	DateTo        string          `json:"date_to"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalSales    int             `json:"total_sales"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	ByPeriod      []SalesByPeriod `json:"by_period"`
	TopProducts   []TopProduct    `json:"top_products"`
}

// TopClient cliente destacado dentro del reporte de clientes.
type TopClient struct {
	ClientID       int64           `json:"client_id"`
	ClientName     string          `json:"client_name"`
	TotalPurchases int             `json:"total_purchases"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// ClientsReport estado general de la base de clientes.
type ClientsReport struct {
	TotalActiveClients int             `json:"total_active_clients"`
	TotalWithDebt      int             `json:"total_with_debt"`
	TotalPortfolio     decimal.Decimal `json:"total_portfolio"`
	TopClients         []TopClient     `json:"top_clients"`
}

// InventoryStatusItem estado de stock de una presentación.
type InventoryStatusItem struct {
	PresentationID   int64           `json:"presentation_id"`
	ProductName      string          `json:"product_name"`
	PresentationName string          `json:"presentation_name"`
	CategoryName     string          `json:"category_name"`
	TotalStock       decimal.Decimal `json:"total_stock"`
	MinStock         int             `json:"min_stock"`
	IsLowStock       bool            `json:"is_low_stock"`
	ExpiringSoon     int             `json:"expiring_soon"`
	ExpiredLots      int             `json:"expired_lots"`
}

// InventoryReport fotografía del inventario completo.
type InventoryReport struct {
	TotalProducts int                   `json:"total_products"`
	LowStockCount int                   `json:"low_stock_count"`
	ExpiringCount int                   `json:"expiring_count"`
	ExpiredCount  int                   `json:"expired_count"`
	Items         []InventoryStatusItem `json:"items"`
}

// WasteByProduct merma acumulada por producto.
type WasteByProduct struct {
	ProductName      string          `json:"product_name"`
	PresentationName string          `json:"presentation_name"`
	TotalQuantity    decimal.Decimal `json:"total_quantity"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	RecordsCount     int             `json:"records_count"`
}

// WasteReport reporte de mermas de un rango de fechas.
type WasteReport struct {
	DateFrom     string           `json:"date_from"`
	DateTo       string           `json:"date_to"`
	TotalRecords int              `json:"total_records"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	AutoCount    int              `json:"auto_count"`
	ManualCount  int              `json:"manual_count"`
	ByCause      []WasteByCause   `json:"by_cause"`
	ByProduct    []WasteByProduct `json:"by_product"`
}

// PortfolioDebtItem deudor dentro del reporte de cartera.
type PortfolioDebtItem struct {
	ClientID       int64           `json:"client_id"`
	ClientName     string          `json:"client_name"`
	Phone          string          `json:"phone"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	DaysOverdue    int             `json:"days_overdue"`
}

// PortfolioReport reporte de cartera por cobrar.
type PortfolioReport struct {
	TotalPortfolio decimal.Decimal     `json:"total_portfolio"`
	TotalOverdue   decimal.Decimal     `json:"total_overdue"`
	DebtorsCount   int                 `json:"debtors_count"`
	Debtors        []PortfolioDebtItem `json:"debtors"`
}

// ProfitabilityReport margen bruto por rango de fechas.
type ProfitabilityReport struct {
	DateFrom     string          `json:"date_from"`
	DateTo       string          `json:"date_to"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	GrossMargin  decimal.Decimal `json:"gross_margin"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}
