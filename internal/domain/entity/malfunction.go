package entity

import (
	"strings"
	"time"
)

// MalfunctionStatus estado de una avería de instalaciones.
type MalfunctionStatus string

// REPORTED es el estado inicial; RESOLVED es terminal y fija ResolvedAt.
const (
	MalfunctionStatusReported   MalfunctionStatus = "REPORTED"
	MalfunctionStatusInProgress MalfunctionStatus = "IN_PROGRESS"
	MalfunctionStatusResolved   MalfunctionStatus = "RESOLVED"
)

// MalfunctionStatuses orden de presentación en reportes.
var MalfunctionStatuses = []MalfunctionStatus{
	MalfunctionStatusReported,
	MalfunctionStatusInProgress,
	MalfunctionStatusResolved,
}

var validMalfunctionTransitions = map[MalfunctionStatus][]MalfunctionStatus{
	MalfunctionStatusReported:   {MalfunctionStatusInProgress, MalfunctionStatusResolved},
	MalfunctionStatusInProgress: {MalfunctionStatusResolved},
}

var malfunctionStatusLabels = map[string]MalfunctionStatus{
	"reported":      MalfunctionStatusReported,
	"in_progress":   MalfunctionStatusInProgress,
	"in progress":   MalfunctionStatusInProgress,
	"resolved":      MalfunctionStatusResolved,
	"зафиксировано": MalfunctionStatusReported,
	"в процессе":    MalfunctionStatusInProgress,
	"устранено":     MalfunctionStatusResolved,
}

// ParseMalfunctionStatus acepta el código o las etiquetas históricas; ok=false si no existe.
func ParseMalfunctionStatus(s string) (MalfunctionStatus, bool) {
	st, ok := malfunctionStatusLabels[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// CanTransitionTo solo hacia adelante; RESOLVED no admite cambios.
func (s MalfunctionStatus) CanTransitionTo(target MalfunctionStatus) bool {
	for _, allowed := range validMalfunctionTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s MalfunctionStatus) String() string { return string(s) }

// Lugares donde se registran averías.
const (
	PlaceEnclosure      = "ENCLOSURE"
	PlaceSection        = "SECTION"
	PlaceKitchen        = "KITCHEN"
	PlaceWarehouse      = "WAREHOUSE"
	PlaceAdministration = "ADMINISTRATION"
	PlaceInfirmary      = "INFIRMARY"
	PlaceTerrarium      = "TERRARIUM"
	PlaceWigwam         = "WIGWAM"
	PlacePark           = "PARK"
	PlaceNursery        = "NURSERY"
)

// MalfunctionPlaces lugares válidos, en el orden del formulario.
var MalfunctionPlaces = []string{
	PlaceEnclosure, PlaceSection, PlaceKitchen, PlaceWarehouse, PlaceAdministration,
	PlaceInfirmary, PlaceTerrarium, PlaceWigwam, PlacePark, PlaceNursery,
}

// FaultReportPlaces lugares con reporte de averías por estado.
var FaultReportPlaces = []string{PlaceEnclosure, PlaceSection}

// placeLabels nombres con que el personal conoce cada lugar.
var placeLabels = map[string]string{
	PlaceEnclosure:      "Вольер",
	PlaceSection:        "Участок",
	PlaceKitchen:        "Кухня",
	PlaceWarehouse:      "Склад",
	PlaceAdministration: "Администрация",
	PlaceInfirmary:      "Медпункт",
	PlaceTerrarium:      "Террариум",
	PlaceWigwam:         "Вигвам",
	PlacePark:           "Парк",
	PlaceNursery:        "Питомник",
}

// ParsePlace acepta el código o la etiqueta del lugar; ok=false si no existe.
func ParsePlace(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for code, label := range placeLabels {
		if strings.EqualFold(s, code) || strings.EqualFold(s, label) {
			return code, true
		}
	}
	return "", false
}

// PlaceLabel etiqueta visible de un lugar; el propio código si no se conoce.
func PlaceLabel(code string) string {
	if l, ok := placeLabels[code]; ok {
		return l
	}
	return code
}

// IsFaultReportPlace indica si el lugar tiene reporte de averías.
func IsFaultReportPlace(code string) bool {
	for _, p := range FaultReportPlaces {
		if p == code {
			return true
		}
	}
	return false
}

// Malfunction avería registrada por un empleado. EmployeeName se resuelve al listar.
type Malfunction struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Place        string
	Description  string
	Status       MalfunctionStatus
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}
