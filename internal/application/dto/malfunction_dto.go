package dto

import "time"

// MalfunctionRequest body de POST /api/malfunctions. Place acepta el código o la etiqueta del lugar.
type MalfunctionRequest struct {
	Place       string `json:"place"`
	Description string `json:"description"`
}

// MalfunctionStatusRequest body de POST /api/malfunctions/:id/status.
type MalfunctionStatusRequest struct {
	Status string `json:"status"`
}

// MalfunctionDTO avería en respuestas HTTP.
type MalfunctionDTO struct {
	ID           string     `json:"id"`
	Place        string     `json:"place"`
	PlaceLabel   string     `json:"place_label"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// PlaceDTO lugar seleccionable en el formulario de averías.
type PlaceDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// FaultQuery filtros de los reportes de averías: fechas YYYY-MM-DD inclusivas, vacías = sin límite.
type FaultQuery struct {
	Place    string `query:"place"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
}

// FaultReportDTO respuesta de GET /api/analytics/faults.
// Statuses lleva siempre los tres estados en orden de flujo.
type FaultReportDTO struct {
	Place    string           `json:"place"`
	From     *time.Time       `json:"from,omitempty"`
	To       *time.Time       `json:"to,omitempty"`
	Total    int              `json:"total"`
	Statuses []StatusCountDTO `json:"statuses"`
	Items    []MalfunctionDTO `json:"items"`
}
