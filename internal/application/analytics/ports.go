// Package analytics contiene los casos de uso de reportes: pedidos por estado,
// consumo de alimento por empleado y por alimento, averías por estado, y su exportación.
package analytics

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/application/dto"
)

// ConsumptionExporter puerto de salida para la planilla de consumo (infrastructure/xlsx).
type ConsumptionExporter interface {
	ExportConsumption(ctx context.Context, report *dto.ConsumptionReportDTO, lines []dto.ConsumptionLineDTO) ([]byte, error)
}

// FaultsExporter puerto de salida para la planilla de averías.
type FaultsExporter interface {
	ExportFaults(ctx context.Context, report *dto.FaultReportDTO) ([]byte, error)
}
