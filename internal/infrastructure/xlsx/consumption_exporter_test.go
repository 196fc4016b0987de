package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/zoo-api/internal/application/dto"
)

func TestExportConsumption_WritesTotalsAndDetail(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	report := &dto.ConsumptionReportDTO{
		Period: "day",
		From:   &day,
		To:     &day,
		ByEmployee: []dto.ConsumptionTotalDTO{
			{ID: "e1", Name: "Ana Pérez", Unit: "kg", Total: decimal.RequireFromString("7.5")},
		},
		ByFeed: []dto.ConsumptionTotalDTO{
			{ID: "f1", Name: "Carne", Unit: "kg", Total: decimal.RequireFromString("7.5")},
		},
	}
	lines := []dto.ConsumptionLineDTO{
		{ID: "c1", Date: day, EmployeeName: "Ana Pérez", FeedName: "Carne", Unit: "kg", Quantity: decimal.RequireFromString("5")},
		{ID: "c2", Date: day, EmployeeName: "Ana Pérez", FeedName: "Carne", Unit: "kg", Quantity: decimal.RequireFromString("2.5")},
	}

	out, err := NewConsumptionExporter().ExportConsumption(context.Background(), report, lines)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetTotals, SheetDetail}, f.GetSheetList())

	period, _ := f.GetCellValue(SheetTotals, "B2")
	assert.Equal(t, "day", period)
	emp, _ := f.GetCellValue(SheetTotals, "A5")
	assert.Equal(t, "Ana Pérez", emp, "primera fila de totales por empleado")

	rows, err := f.GetRows(SheetDetail)
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado + 2 líneas")
	assert.Equal(t, detailHeaders, rows[0])
	assert.Equal(t, "2026-03-04", rows[1][0])
	assert.Equal(t, "2.5", rows[2][4])
}

func TestExportConsumption_EmptyReport(t *testing.T) {
	out, err := NewConsumptionExporter().ExportConsumption(context.Background(),
		&dto.ConsumptionReportDTO{Period: "all"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetDetail)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "solo encabezado")
}
