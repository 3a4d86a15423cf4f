package query

// Mutation identifica una escritura contra el backend. Cada una tiene una
// fila en el grafo de invalidación; una mutación sin fila no invalida nada.
type Mutation string

const (
	MutBusinessCreate Mutation = "business.create"
	MutBusinessUpdate Mutation = "business.update"
	MutBusinessDelete Mutation = "business.delete"

	MutMemberInvite Mutation = "member.invite"
	MutMemberUpdate Mutation = "member.update"
	MutMemberRemove Mutation = "member.remove"

	MutRoleCreate Mutation = "role.create"
	MutRoleUpdate Mutation = "role.update"
	MutRoleDelete Mutation = "role.delete"

	MutClientCreate Mutation = "client.create"
	MutClientUpdate Mutation = "client.update"
	MutClientDelete Mutation = "client.delete"
	MutClientCredit Mutation = "client.credit"

	MutSupplierCreate        Mutation = "supplier.create"
	MutSupplierUpdate        Mutation = "supplier.update"
	MutSupplierDelete        Mutation = "supplier.delete"
	MutSupplierProductAdd    Mutation = "supplier.product.add"
	MutSupplierProductRemove Mutation = "supplier.product.remove"
	MutPurchaseCreate        Mutation = "supplier.purchase.create"
	MutSupplierPayment       Mutation = "supplier.payment"

	MutPaymentMethodCreate Mutation = "payment-method.create"
	MutPaymentMethodUpdate Mutation = "payment-method.update"
	MutPaymentMethodDelete Mutation = "payment-method.delete"

	MutSaleCreate Mutation = "sale.create"
	MutSaleCancel Mutation = "sale.cancel"

	MutRegisterCreate  Mutation = "register.create"
	MutRegisterUpdate  Mutation = "register.update"
	MutRegisterDelete  Mutation = "register.delete"
	MutSessionOpen     Mutation = "session.open"
	MutSessionClose    Mutation = "session.close"
	MutCashMovementAdd Mutation = "cash-movement.add"

	MutPortfolioPayment Mutation = "portfolio.payment"

	MutWasteCreate         Mutation = "waste.create"
	MutWasteProcessExpired Mutation = "waste.process-expired"

	MutAdminUserUpdate     Mutation = "admin.user.update"
	MutAdminUserToggle     Mutation = "admin.user.toggle"
	MutAdminBusinessUpdate Mutation = "admin.business.update"
	MutAdminSettingsUpdate Mutation = "admin.settings.update"
)

// Scope parámetros de ruta de la mutación; cada fila del grafo usa los que
// necesita. Un ID en cero significa "no aplica".
type Scope struct {
	BusinessID int64
	ClientID   int64
	SupplierID int64
	SaleID     int64
	RegisterID int64
	RoleID     int64
	UserID     int64
}

// graph el grafo completo de invalidación: mutación → claves que quedan
// obsoletas cuando la llamada remota tiene éxito. Las aristas cruzadas de
// dominio son explícitas y deliberadas:
//
//   - una venta consume stock y afecta el saldo del cliente → inventario y clientes;
//   - una compra a proveedor ingresa stock → inventario;
//   - una merma descuenta stock → inventario;
//   - un abono de cartera cambia el saldo del cliente → clientes.
//
// No hay inferencia automática de dependencias: lo que no está acá, no se
// invalida.
var graph = map[Mutation]func(Scope) []Key{
	MutBusinessCreate: func(s Scope) []Key { return []Key{BusinessesKey()} },
	MutBusinessUpdate: func(s Scope) []Key {
		return []Key{BusinessesKey(), BusinessKey(s.BusinessID)}
	},
	MutBusinessDelete: func(s Scope) []Key { return []Key{BusinessesKey()} },

	MutMemberInvite: func(s Scope) []Key { return []Key{BusinessUsersKey(s.BusinessID)} },
	MutMemberUpdate: func(s Scope) []Key { return []Key{BusinessUsersKey(s.BusinessID)} },
	MutMemberRemove: func(s Scope) []Key { return []Key{BusinessUsersKey(s.BusinessID)} },

	MutRoleCreate: func(s Scope) []Key { return []Key{RolesKey(s.BusinessID)} },
	MutRoleUpdate: func(s Scope) []Key {
		return []Key{RolesKey(s.BusinessID), RoleKey(s.BusinessID, s.RoleID)}
	},
	MutRoleDelete: func(s Scope) []Key { return []Key{RolesKey(s.BusinessID)} },

	MutClientCreate: func(s Scope) []Key { return []Key{ClientsKey(s.BusinessID)} },
	MutClientUpdate: func(s Scope) []Key {
		return []Key{ClientsKey(s.BusinessID), ClientKey(s.BusinessID, s.ClientID)}
	},
	MutClientDelete: func(s Scope) []Key { return []Key{ClientsKey(s.BusinessID)} },
	MutClientCredit: func(s Scope) []Key {
		return []Key{
			ClientCreditKey(s.BusinessID, s.ClientID),
			ClientKey(s.BusinessID, s.ClientID),
			ClientStatsKey(s.BusinessID, s.ClientID),
			ClientsKey(s.BusinessID),
		}
	},

	MutSupplierCreate: func(s Scope) []Key { return []Key{SuppliersKey(s.BusinessID)} },
	MutSupplierUpdate: func(s Scope) []Key {
		return []Key{SuppliersKey(s.BusinessID), SupplierKey(s.BusinessID, s.SupplierID)}
	},
	MutSupplierDelete: func(s Scope) []Key { return []Key{SuppliersKey(s.BusinessID)} },
	MutSupplierProductAdd: func(s Scope) []Key {
		return []Key{SupplierProductsKey(s.BusinessID, s.SupplierID)}
	},
	MutSupplierProductRemove: func(s Scope) []Key {
		return []Key{SupplierProductsKey(s.BusinessID, s.SupplierID)}
	},
	// El recibo de la compra ingresa stock: el inventario del negocio queda obsoleto.
	MutPurchaseCreate: func(s Scope) []Key {
		return []Key{
			SupplierPurchasesKey(s.BusinessID, s.SupplierID),
			SupplierKey(s.BusinessID, s.SupplierID),
			SupplierStatsKey(s.BusinessID, s.SupplierID),
			SupplierPortfolioKey(s.BusinessID),
			InventoryKey(s.BusinessID),
		}
	},
	MutSupplierPayment: func(s Scope) []Key {
		return []Key{
			SupplierPaymentsKey(s.BusinessID, s.SupplierID),
			SupplierKey(s.BusinessID, s.SupplierID),
			SupplierPurchasesKey(s.BusinessID, s.SupplierID),
			SupplierPortfolioKey(s.BusinessID),
		}
	},

	MutPaymentMethodCreate: func(s Scope) []Key { return []Key{PaymentMethodsKey(s.BusinessID)} },
	MutPaymentMethodUpdate: func(s Scope) []Key { return []Key{PaymentMethodsKey(s.BusinessID)} },
	MutPaymentMethodDelete: func(s Scope) []Key { return []Key{PaymentMethodsKey(s.BusinessID)} },

	// Una venta consume stock y puede dejar crédito: además de sus propias
	// claves invalida inventario y clientes del mismo negocio.
	MutSaleCreate: func(s Scope) []Key {
		return []Key{
			SalesKey(s.BusinessID),
			DailySalesKey(s.BusinessID),
			InventoryKey(s.BusinessID),
			ClientsKey(s.BusinessID),
		}
	},
	MutSaleCancel: func(s Scope) []Key {
		return []Key{
			SalesKey(s.BusinessID),
			SaleKey(s.BusinessID, s.SaleID),
			DailySalesKey(s.BusinessID),
			InventoryKey(s.BusinessID),
			ClientsKey(s.BusinessID),
		}
	},

	MutRegisterCreate: func(s Scope) []Key { return []Key{CashRegistersKey(s.BusinessID)} },
	MutRegisterUpdate: func(s Scope) []Key { return []Key{CashRegistersKey(s.BusinessID)} },
	MutRegisterDelete: func(s Scope) []Key { return []Key{CashRegistersKey(s.BusinessID)} },
	MutSessionOpen: func(s Scope) []Key {
		return []Key{
			CashRegistersKey(s.BusinessID),
			CashSessionKey(s.BusinessID, s.RegisterID),
			FinanceSummaryKey(s.BusinessID),
		}
	},
	MutSessionClose: func(s Scope) []Key {
		return []Key{
			CashRegistersKey(s.BusinessID),
			CashSessionKey(s.BusinessID, s.RegisterID),
			CashSessionsKey(s.BusinessID, s.RegisterID),
			FinanceSummaryKey(s.BusinessID),
		}
	},
	MutCashMovementAdd: func(s Scope) []Key {
		return []Key{
			CashSessionKey(s.BusinessID, s.RegisterID),
			FinanceSummaryKey(s.BusinessID),
		}
	},

	// Un abono cambia el saldo del cliente: cae toda la cartera y la ficha
	// del cliente afectado.
	MutPortfolioPayment: func(s Scope) []Key {
		return []Key{
			PortfolioSummaryKey(s.BusinessID),
			PortfolioMovementsKey(s.BusinessID),
			DebtClientsKey(s.BusinessID),
			ClientsKey(s.BusinessID),
			ClientKey(s.BusinessID, s.ClientID),
		}
	},

	// La merma descuenta stock.
	MutWasteCreate: func(s Scope) []Key {
		return []Key{
			WasteKey(s.BusinessID),
			WasteSummaryKey(s.BusinessID),
			InventoryKey(s.BusinessID),
		}
	},
	MutWasteProcessExpired: func(s Scope) []Key {
		return []Key{
			WasteKey(s.BusinessID),
			WasteSummaryKey(s.BusinessID),
			InventoryKey(s.BusinessID),
		}
	},

	MutAdminUserUpdate: func(s Scope) []Key {
		return []Key{AdminUsersKey(), AdminUserKey(s.UserID)}
	},
	MutAdminUserToggle: func(s Scope) []Key { return []Key{AdminUsersKey()} },
	MutAdminBusinessUpdate: func(s Scope) []Key {
		return []Key{AdminBusinessesKey(), AdminBusinessKey(s.BusinessID)}
	},
	MutAdminSettingsUpdate: func(s Scope) []Key { return []Key{AdminSettingsKey()} },
}

// KeysFor devuelve las claves que la mutación invalida bajo el scope dado.
// Una mutación desconocida devuelve nil (y no invalida nada).
func KeysFor(m Mutation, s Scope) []Key {
	build, ok := graph[m]
	if !ok {
		return nil
	}
	return build(s)
}

// Mutations lista las mutaciones declaradas en el grafo, para inspección.
func Mutations() []Mutation {
	out := make([]Mutation, 0, len(graph))
	for m := range graph {
		out = append(out, m)
	}
	return out
}
