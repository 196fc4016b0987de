// Package xlsx exporta reportes a planillas Excel con excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/zoo-api/internal/application/analytics"
	"github.com/jhoicas/zoo-api/internal/application/dto"
)

var _ analytics.ConsumptionExporter = (*ConsumptionExporter)(nil)

// Nombres de hojas de la planilla de consumo.
const (
	SheetTotals = "Totales"
	SheetDetail = "Detalle"
)

var detailHeaders = []string{"Fecha", "Empleado", "Alimento", "Unidad", "Cantidad"}

// ConsumptionExporter genera la planilla de consumo: totales por empleado y por alimento,
// más el detalle línea a línea.
type ConsumptionExporter struct{}

// NewConsumptionExporter construye el exportador.
func NewConsumptionExporter() *ConsumptionExporter {
	return &ConsumptionExporter{}
}

// ExportConsumption escribe el reporte y devuelve el .xlsx en memoria.
func (e *ConsumptionExporter) ExportConsumption(
	_ context.Context,
	report *dto.ConsumptionReportDTO,
	lines []dto.ConsumptionLineDTO,
) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTotals); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetDetail); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	headerStyle, titleStyle, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	writeTotals(f, report, headerStyle, titleStyle)
	writeDetail(f, lines, headerStyle)

	return writeFile(f)
}

// newStyles estilos compartidos por las planillas: encabezado de tabla y título.
func newStyles(f *excelize.File) (header, title int, err error) {
	header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9EAD3"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("xlsx: estilo: %w", err)
	}
	title, _ = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	return header, title, nil
}

// writeHeaders escribe los encabezados en la fila row desde la columna A.
func writeHeaders(f *excelize.File, sheet string, row int, headers []string, style int) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func setColWidths(f *excelize.File, sheet string, widths []float64) {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
}

func writeFile(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTotals(f *excelize.File, report *dto.ConsumptionReportDTO, headerStyle, titleStyle int) {
	sheet := SheetTotals
	f.SetCellValue(sheet, "A1", "Consumo de alimento")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", "Período")
	f.SetCellValue(sheet, "B2", report.Period)
	if report.From != nil && report.To != nil {
		f.SetCellValue(sheet, "C2", report.From.Format("2006-01-02")+" / "+report.To.Format("2006-01-02"))
	}

	row := 4
	row = writeTotalsBlock(f, sheet, row, "Empleado", report.ByEmployee, headerStyle)
	row++
	writeTotalsBlock(f, sheet, row, "Alimento", report.ByFeed, headerStyle)

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "C", 14)
}

// writeTotalsBlock escribe encabezado + filas a partir de row y devuelve la siguiente fila libre.
func writeTotalsBlock(f *excelize.File, sheet string, row int, label string, totals []dto.ConsumptionTotalDTO, headerStyle int) int {
	writeHeaders(f, sheet, row, []string{label, "Unidad", "Total"}, headerStyle)
	row++
	for _, t := range totals {
		total, _ := t.Total.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), total)
		row++
	}
	return row
}

func writeDetail(f *excelize.File, lines []dto.ConsumptionLineDTO, headerStyle int) {
	sheet := SheetDetail
	writeHeaders(f, sheet, 1, detailHeaders, headerStyle)
	for i, l := range lines {
		row := i + 2
		qty, _ := l.Quantity.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.EmployeeName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), l.FeedName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), l.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), qty)
	}

	setColWidths(f, sheet, []float64{12, 24, 24, 8, 12})
}
