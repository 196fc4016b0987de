package entity

// Capability permiso sobre una operación concreta. Los roles se traducen a un conjunto de capacidades.
type Capability string

const (
	CapFeedsRead         Capability = "feeds:read"
	CapFeedsWrite        Capability = "feeds:write"
	CapStockAdjust       Capability = "stock:adjust"
	CapRationsManage     Capability = "rations:manage"
	CapPurchasesRead     Capability = "purchases:read"
	CapPurchasesWrite    Capability = "purchases:write"
	CapPurchasesTransit  Capability = "purchases:transition"
	CapFeedingsRecord    Capability = "feedings:record"
	CapExpensesOwn       Capability = "expenses:own"
	CapExpensesAll       Capability = "expenses:all"
	CapAnalyticsRead     Capability = "analytics:read"
	CapEmployeesRegister Capability = "employees:register"
	CapFaultsReport      Capability = "faults:report"
	CapFaultsManage      Capability = "faults:manage"
)

var roleCapabilities = map[string][]Capability{
	RoleAdmin: {
		CapFeedsRead, CapFeedsWrite, CapStockAdjust, CapRationsManage,
		CapPurchasesRead, CapPurchasesWrite, CapPurchasesTransit,
		CapFeedingsRecord, CapExpensesAll, CapAnalyticsRead, CapEmployeesRegister,
		CapFaultsReport, CapFaultsManage,
	},
	RoleDirector: {
		CapFeedsRead, CapFeedsWrite,
		CapPurchasesRead, CapPurchasesWrite, CapPurchasesTransit,
		CapExpensesAll, CapAnalyticsRead,
		CapFaultsReport, CapFaultsManage,
	},
	RoleManager: {
		CapFeedsRead, CapFeedsWrite, CapPurchasesRead, CapExpensesAll,
		CapFaultsReport, CapFaultsManage,
	},
	RoleZootechnician: {
		CapFeedsRead, CapRationsManage, CapFeedingsRecord, CapExpensesOwn,
		CapFaultsReport,
	},
}

// HasCapability indica si el rol concede la capacidad.
func HasCapability(role string, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}
