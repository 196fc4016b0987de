package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/zoo-api/internal/application/analytics"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

var _ analytics.FaultsExporter = (*FaultsExporter)(nil)

// Hojas de la planilla de averías.
const (
	SheetFaultSummary = "Resumen"
	SheetFaults       = "Averías"
)

var faultHeaders = []string{"ID", "Lugar", "Descripción", "Estado", "Fecha de registro", "Fecha de resolución", "Empleado"}

// FaultsExporter planilla de averías de un lugar: conteo por estado y detalle.
type FaultsExporter struct{}

// NewFaultsExporter construye el exportador.
func NewFaultsExporter() *FaultsExporter {
	return &FaultsExporter{}
}

// ExportFaults escribe el reporte y devuelve el .xlsx en memoria.
func (e *FaultsExporter) ExportFaults(_ context.Context, report *dto.FaultReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetFaultSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetFaults); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	headerStyle, titleStyle, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	sheet := SheetFaultSummary
	f.SetCellValue(sheet, "A1", "Averías: "+entity.PlaceLabel(report.Place))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	if report.From != nil {
		f.SetCellValue(sheet, "A2", "Desde")
		f.SetCellValue(sheet, "B2", report.From.Format("2006-01-02"))
	}
	if report.To != nil {
		f.SetCellValue(sheet, "A3", "Hasta")
		f.SetCellValue(sheet, "B3", report.To.Format("2006-01-02"))
	}
	writeHeaders(f, sheet, 5, []string{"Estado", "Cantidad"}, headerStyle)
	row := 6
	for _, s := range report.Statuses {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.Status)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.Count)
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.Total)
	setColWidths(f, sheet, []float64{24, 12})

	sheet = SheetFaults
	writeHeaders(f, sheet, 1, faultHeaders, headerStyle)
	for i, m := range report.Items {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.PlaceLabel)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.CreatedAt.Format("2006-01-02 15:04"))
		if m.ResolvedAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), m.ResolvedAt.Format("2006-01-02 15:04"))
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), m.EmployeeName)
	}
	setColWidths(f, sheet, []float64{38, 14, 48, 14, 18, 18, 24})

	return writeFile(f)
}
