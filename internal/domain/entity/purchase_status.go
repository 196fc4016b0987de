package entity

import "strings"

// PurchaseStatus estado de un pedido de compra (enum cerrado).
type PurchaseStatus string

// Estados canónicos. SUBMITTED es el inicial y único editable; DELIVERED es terminal.
const (
	PurchaseStatusSubmitted  PurchaseStatus = "SUBMITTED"
	PurchaseStatusPending    PurchaseStatus = "PENDING"
	PurchaseStatusInProgress PurchaseStatus = "IN_PROGRESS"
	PurchaseStatusDelivered  PurchaseStatus = "DELIVERED"
)

// PurchaseStatuses orden de presentación de los estados.
var PurchaseStatuses = []PurchaseStatus{
	PurchaseStatusSubmitted,
	PurchaseStatusPending,
	PurchaseStatusInProgress,
	PurchaseStatusDelivered,
}

// ValidPurchaseTransitions transiciones permitidas por estado de origen.
// DELIVERED -> DELIVERED se admite como no-op idempotente.
var ValidPurchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchaseStatusSubmitted:  {PurchaseStatusPending, PurchaseStatusInProgress, PurchaseStatusDelivered},
	PurchaseStatusPending:    {PurchaseStatusInProgress, PurchaseStatusDelivered},
	PurchaseStatusInProgress: {PurchaseStatusDelivered},
	PurchaseStatusDelivered:  {PurchaseStatusDelivered},
}

// purchaseStatusLabels etiquetas aceptadas al pedir una transición por nombre,
// incluidos los vocabularios históricos en inglés y ruso.
var purchaseStatusLabels = map[string]PurchaseStatus{
	"submitted":   PurchaseStatusSubmitted,
	"pending":     PurchaseStatusPending,
	"in_progress": PurchaseStatusInProgress,
	"in progress": PurchaseStatusInProgress,
	"inprogress":  PurchaseStatusInProgress,
	"delivered":   PurchaseStatusDelivered,
	"подана":      PurchaseStatusSubmitted,
	"создана":     PurchaseStatusSubmitted,
	"новая":       PurchaseStatusSubmitted,
	"ожидание":    PurchaseStatusPending,
	"в ожидании":  PurchaseStatusPending,
	"в процессе":  PurchaseStatusInProgress,
	"в работе":    PurchaseStatusInProgress,
	"доставлено":  PurchaseStatusDelivered,
}

// ParsePurchaseStatus traduce un nombre de estado al enum; ok=false si no existe.
func ParsePurchaseStatus(s string) (PurchaseStatus, bool) {
	st, ok := purchaseStatusLabels[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// IsEditable solo SUBMITTED admite nuevas líneas.
func (s PurchaseStatus) IsEditable() bool {
	return s == PurchaseStatusSubmitted
}

// IsTerminal indica el estado final del flujo.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseStatusDelivered
}

// CanTransitionTo valida el par (s -> target) contra ValidPurchaseTransitions.
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	for _, allowed := range ValidPurchaseTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s PurchaseStatus) String() string { return string(s) }
