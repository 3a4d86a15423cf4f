package query

// Constructores de claves por dominio de recurso. Centralizados para que el
// grafo de invalidación (graph.go) y los servicios construyan exactamente las
// mismas tuplas: una clave escrita a mano en un servicio no existe.

// ── Sesión / usuario actual ─────────────────────────────────────────────────

// MeKey clave del perfil del usuario autenticado (/auth/me).
func MeKey() Key { return NewKey("me") }

// ── Negocios, miembros y roles ──────────────────────────────────────────────

func BusinessesKey() Key { return NewKey("businesses") }
func BusinessKey(businessID int64) Key { return NewKey("businesses", businessID) }
func BusinessUsersKey(businessID int64) Key {
	return NewKey("businesses", businessID, "users")
}
func RolesKey(businessID int64) Key { return NewKey("businesses", businessID, "roles") }
func RoleKey(businessID, roleID int64) Key {
	return NewKey("businesses", businessID, "roles", roleID)
}
func PermissionsKey(businessID int64) Key {
	return NewKey("businesses", businessID, "permissions")
}

// ── Clientes ────────────────────────────────────────────────────────────────

func ClientsKey(businessID int64) Key { return NewKey("businesses", businessID, "clients") }
func ClientKey(businessID, clientID int64) Key {
	return NewKey("businesses", businessID, "clients", clientID)
}
func ClientStatsKey(businessID, clientID int64) Key {
	return ClientKey(businessID, clientID).With("stats")
}
func ClientPurchasesKey(businessID, clientID int64) Key {
	return ClientKey(businessID, clientID).With("purchases")
}
func ClientCreditKey(businessID, clientID int64) Key {
	return ClientKey(businessID, clientID).With("credit")
}

// ── Proveedores ─────────────────────────────────────────────────────────────

func SuppliersKey(businessID int64) Key { return NewKey("businesses", businessID, "suppliers") }
func SupplierKey(businessID, supplierID int64) Key {
	return NewKey("businesses", businessID, "suppliers", supplierID)
}
func SupplierStatsKey(businessID, supplierID int64) Key {
	return SupplierKey(businessID, supplierID).With("stats")
}
func SupplierProductsKey(businessID, supplierID int64) Key {
	return SupplierKey(businessID, supplierID).With("products")
}
func SupplierPurchasesKey(businessID, supplierID int64) Key {
	return SupplierKey(businessID, supplierID).With("purchases")
}
func SupplierPaymentsKey(businessID, supplierID int64) Key {
	return SupplierKey(businessID, supplierID).With("payments")
}
func SupplierPortfolioKey(businessID int64) Key {
	return NewKey("businesses", businessID, "suppliers", "portfolio")
}

// ── Ventas y métodos de pago ────────────────────────────────────────────────

func SalesKey(businessID int64) Key { return NewKey("businesses", businessID, "sales") }
func SaleKey(businessID, saleID int64) Key {
	return NewKey("businesses", businessID, "sales", saleID)
}

// DailySalesKey prefijo del resumen diario; con fecha concreta se extiende
// con .With(date) para que cada día cachee aparte.
func DailySalesKey(businessID int64) Key {
	return NewKey("businesses", businessID, "sales", "daily")
}
func PaymentMethodsKey(businessID int64) Key {
	return NewKey("businesses", businessID, "payment-methods")
}

// ── Finanzas (cajas y sesiones) ─────────────────────────────────────────────

func FinanceSummaryKey(businessID int64) Key {
	return NewKey("businesses", businessID, "finance", "summary")
}
func CashRegistersKey(businessID int64) Key {
	return NewKey("businesses", businessID, "finance", "registers")
}
func CashSessionKey(businessID, registerID int64) Key {
	return NewKey("businesses", businessID, "finance", "registers", registerID, "session")
}
func CashSessionsKey(businessID, registerID int64) Key {
	return NewKey("businesses", businessID, "finance", "registers", registerID, "sessions")
}

// ── Cartera ─────────────────────────────────────────────────────────────────

func PortfolioSummaryKey(businessID int64) Key {
	return NewKey("businesses", businessID, "portfolio", "summary")
}
func PortfolioMovementsKey(businessID int64) Key {
	return NewKey("businesses", businessID, "portfolio", "movements")
}
func DebtClientsKey(businessID int64) Key {
	return NewKey("businesses", businessID, "portfolio", "clients")
}

// ── Inventario ──────────────────────────────────────────────────────────────

// InventoryKey prefijo de todo el inventario del negocio; es el blanco de las
// aristas cruzadas (ventas, compras y mermas mueven stock).
func InventoryKey(businessID int64) Key { return NewKey("businesses", businessID, "inventory") }

func CategoriesKey(businessID int64) Key { return InventoryKey(businessID).With("categories") }
func WarehousesKey(businessID int64) Key { return InventoryKey(businessID).With("warehouses") }
func ProductsKey(businessID int64) Key { return InventoryKey(businessID).With("products") }
func ProductKey(businessID, productID int64) Key {
	return ProductsKey(businessID).With(productID)
}
func InventoryMovementsKey(businessID int64) Key {
	return InventoryKey(businessID).With("movements")
}
func LowStockKey(businessID int64) Key {
	return InventoryKey(businessID).With("alerts", "low-stock")
}
func ExpiringKey(businessID int64) Key {
	return InventoryKey(businessID).With("alerts", "expiring")
}

// ── Mermas ──────────────────────────────────────────────────────────────────

func WasteKey(businessID int64) Key { return NewKey("businesses", businessID, "waste") }
func WasteSummaryKey(businessID int64) Key {
	return NewKey("businesses", businessID, "waste", "summary")
}

// ── Reportes ────────────────────────────────────────────────────────────────

func ReportKey(businessID int64, reportType string) Key {
	return NewKey("businesses", businessID, "reports", reportType)
}

// ── Administración de plataforma ────────────────────────────────────────────

func AdminUsersKey() Key { return NewKey("admin", "users") }
func AdminUserKey(userID int64) Key { return NewKey("admin", "users", userID) }
func AdminBusinessesKey() Key { return NewKey("admin", "businesses") }
func AdminBusinessKey(businessID int64) Key {
	return NewKey("admin", "businesses", businessID)
}
func AdminStatsKey() Key { return NewKey("admin", "stats") }
func AuditLogsKey() Key { return NewKey("admin", "audit-logs") }
func AdminSettingsKey() Key { return NewKey("admin", "settings") }
