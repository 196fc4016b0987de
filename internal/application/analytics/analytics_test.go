package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/infrastructure/memory"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

var fixedNow = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

// seedConsumption: Ana gasta 4 kg de carne hoy y 3 kg de heno a inicio de mes; Boris 2 kg de carne en abril.
func seedConsumption(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	s.PutFeed(entity.Feed{ID: "feed-meat", Name: "Meat", Unit: "kg"})
	s.PutFeed(entity.Feed{ID: "feed-hay", Name: "Hay", Unit: "kg"})
	ctx := context.Background()
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "emp-ana", FullName: "Ana", Username: "ana"}))
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "emp-boris", FullName: "Boris", Username: "boris"}))

	recs := []entity.ConsumptionRecord{
		{ID: "c1", FeedID: "feed-meat", EmployeeID: "emp-ana", Quantity: decimal.NewFromInt(4), Date: fixedNow.Add(-time.Hour)},
		{ID: "c2", FeedID: "feed-hay", EmployeeID: "emp-ana", Quantity: decimal.NewFromInt(3), Date: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "c3", FeedID: "feed-meat", EmployeeID: "emp-boris", Quantity: decimal.NewFromInt(2), Date: time.Date(2024, 4, 28, 9, 0, 0, 0, time.UTC)},
	}
	for i := range recs {
		require.NoError(t, s.Repos().Consumption.Create(ctx, &recs[i]))
	}
	return s
}

func newConsumption(s *memory.Store, exp ConsumptionExporter) *ConsumptionUseCase {
	uc := NewConsumptionUseCase(s.Analytics(), exp)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func totalOf(t *testing.T, rows []dto.ConsumptionTotalDTO, id string) decimal.Decimal {
	t.Helper()
	for _, r := range rows {
		if r.ID == id {
			return r.Total
		}
	}
	t.Fatalf("sin total para %s", id)
	return decimal.Zero
}

func TestGetReport_Periodos(t *testing.T) {
	uc := newConsumption(seedConsumption(t), nil)
	ctx := context.Background()

	all, err := uc.GetReport(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, all.Period)
	assert.Nil(t, all.From)
	assert.True(t, totalOf(t, all.ByEmployee, "emp-ana").Equal(decimal.NewFromInt(7)))
	assert.True(t, totalOf(t, all.ByFeed, "feed-meat").Equal(decimal.NewFromInt(6)))

	month, err := uc.GetReport(ctx, PeriodMonth)
	require.NoError(t, err)
	require.Len(t, month.ByEmployee, 1)
	assert.Equal(t, "Ana", month.ByEmployee[0].Name)
	assert.True(t, month.ByEmployee[0].Total.Equal(decimal.NewFromInt(7)))

	day, err := uc.GetReport(ctx, PeriodDay)
	require.NoError(t, err)
	require.Len(t, day.ByFeed, 1)
	assert.Equal(t, "Meat", day.ByFeed[0].Name)
	assert.True(t, day.ByFeed[0].Total.Equal(decimal.NewFromInt(4)))

	_, err = uc.GetReport(ctx, "week")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListExpenses_FiltraPorEmpleado(t *testing.T) {
	uc := newConsumption(seedConsumption(t), nil)

	lines, err := uc.ListExpenses(context.Background(), "emp-ana", PeriodAll)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "c1", lines[0].ID)
	for _, l := range lines {
		assert.Equal(t, "Ana", l.EmployeeName)
	}

	lines, err = uc.ListExpenses(context.Background(), "", PeriodAll)
	require.NoError(t, err)
	assert.Len(t, lines, 3)
}

type captureExporter struct {
	report *dto.ConsumptionReportDTO
	lines  []dto.ConsumptionLineDTO
}

func (c *captureExporter) ExportConsumption(_ context.Context, report *dto.ConsumptionReportDTO, lines []dto.ConsumptionLineDTO) ([]byte, error) {
	c.report, c.lines = report, lines
	return []byte("xlsx"), nil
}

func TestExport_UsaElMismoPeriodoParaTotalesYDetalle(t *testing.T) {
	exp := &captureExporter{}
	uc := newConsumption(seedConsumption(t), exp)

	data, name, err := uc.Export(context.Background(), PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "consumo_month_20240520.xlsx", name)
	assert.Equal(t, PeriodMonth, exp.report.Period)
	assert.Len(t, exp.lines, 2)

	_, _, err = newConsumption(seedConsumption(t), nil).Export(context.Background(), PeriodAll)
	assert.Error(t, err)
}

func TestPurchasesByStatus_SiempreCuatroEstados(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	orders := []entity.PurchaseOrder{
		{ID: "o1", Supplier: "Agro", Status: entity.PurchaseStatusSubmitted, RequestDate: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "o2", Supplier: "Agro", Status: entity.PurchaseStatusDelivered, RequestDate: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)},
		{ID: "o3", Supplier: "Agro", Status: entity.PurchaseStatusDelivered, RequestDate: time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)},
	}
	for i := range orders {
		require.NoError(t, s.Repos().Orders.Create(ctx, &orders[i]))
	}
	uc := NewPurchasesUseCase(s.Analytics())

	all, err := uc.ByStatus(ctx, "")
	require.NoError(t, err)
	require.Len(t, all.Statuses, len(entity.PurchaseStatuses))
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, entity.PurchaseStatusSubmitted.String(), all.Statuses[0].Status)
	assert.Equal(t, 1, all.Statuses[0].Count)
	assert.Equal(t, 0, all.Statuses[1].Count)

	may, err := uc.ByStatus(ctx, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, 2, may.Total)

	_, err = uc.ByStatus(ctx, "05/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Con cualquier zona horaria del reloj, lo registrado hoy por el motor de alimentación
// aparece en el período "day". +14 y -12 garantizan que al menos una difiere del día UTC.
func TestListExpenses_DiaIncluyeAlimentacionRecienRegistrada(t *testing.T) {
	zones := []*time.Location{
		time.FixedZone("UTC+14", 14*3600),
		time.FixedZone("UTC-12", -12*3600),
	}
	for _, loc := range zones {
		t.Run(loc.String(), func(t *testing.T) {
			s := memory.NewStore()
			ctx := context.Background()
			s.PutFeed(entity.Feed{ID: "feed-meat", Name: "Meat", Unit: "kg", Quantity: decimal.NewFromInt(20)})
			s.PutAnimal(entity.Animal{ID: "animal-leo", Name: "Leo", Species: "lion", Status: entity.AnimalStatusActive})
			s.PutRation(entity.Ration{ID: "ration-lion", FeedID: "feed-meat", Species: "lion", Amount: decimal.NewFromInt(5), Frequency: entity.DefaultRationFrequency})
			require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "emp-ana", FullName: "Ana", Username: "ana"}))

			feeding := inventory.NewFeedingUseCase(s, s.Repos().Feedings, inventory.NopMetrics{}, logger.Nop())
			_, err := feeding.RecordFeeding(ctx, "animal-leo", "emp-ana")
			require.NoError(t, err)

			uc := NewConsumptionUseCase(s.Analytics(), nil)
			uc.now = func() time.Time { return time.Now().In(loc) }

			day, err := uc.ListExpenses(ctx, "emp-ana", PeriodDay)
			require.NoError(t, err)
			assert.Len(t, day, 1)

			month, err := uc.ListExpenses(ctx, "emp-ana", PeriodMonth)
			require.NoError(t, err)
			assert.Len(t, month, 1)
		})
	}
}

type captureFaults struct{ report *dto.FaultReportDTO }

func (c *captureFaults) ExportFaults(_ context.Context, report *dto.FaultReportDTO) ([]byte, error) {
	c.report = report
	return []byte("xlsx"), nil
}

// seedFaults: dos averías en recintos (mayo, una resuelta), una en parcelas y una en cocina.
func seedFaults(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "emp-ana", FullName: "Ana", Username: "ana"}))
	resolvedAt := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
	faults := []entity.Malfunction{
		{ID: "m1", EmployeeID: "emp-ana", Place: entity.PlaceEnclosure, Description: "Malla", Status: entity.MalfunctionStatusResolved,
			CreatedAt: time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC), ResolvedAt: &resolvedAt},
		{ID: "m2", EmployeeID: "emp-ana", Place: entity.PlaceEnclosure, Description: "Puerta", Status: entity.MalfunctionStatusReported,
			CreatedAt: time.Date(2024, 5, 20, 23, 30, 0, 0, time.UTC)},
		{ID: "m3", EmployeeID: "emp-ana", Place: entity.PlaceEnclosure, Description: "Techo", Status: entity.MalfunctionStatusInProgress,
			CreatedAt: time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)},
		{ID: "m4", EmployeeID: "emp-ana", Place: entity.PlaceSection, Description: "Cerca", Status: entity.MalfunctionStatusReported,
			CreatedAt: time.Date(2024, 5, 11, 8, 0, 0, 0, time.UTC)},
		{ID: "m5", EmployeeID: "emp-ana", Place: entity.PlaceKitchen, Description: "Horno", Status: entity.MalfunctionStatusReported,
			CreatedAt: time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)},
	}
	for i := range faults {
		require.NoError(t, s.Malfunctions().Create(ctx, &faults[i]))
	}
	return s
}

func TestFaultsReport_ConteoFijoYDetalle(t *testing.T) {
	s := seedFaults(t)
	uc := NewFaultsUseCase(s.Analytics(), s.Malfunctions(), nil)
	ctx := context.Background()

	all, err := uc.Report(ctx, dto.FaultQuery{Place: "Вольер"})
	require.NoError(t, err)
	assert.Equal(t, entity.PlaceEnclosure, all.Place)
	assert.Equal(t, 3, all.Total)
	require.Len(t, all.Statuses, 3)
	assert.Equal(t, []dto.StatusCountDTO{
		{Status: "REPORTED", Count: 1},
		{Status: "IN_PROGRESS", Count: 1},
		{Status: "RESOLVED", Count: 1},
	}, all.Statuses)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "m2", all.Items[0].ID, "más recientes primero")
	assert.Equal(t, "Ana", all.Items[0].EmployeeName)

	// date_to incluye el día completo: m2 se registró a las 23:30.
	may, err := uc.Report(ctx, dto.FaultQuery{Place: "ENCLOSURE", DateFrom: "2024-05-01", DateTo: "2024-05-20"})
	require.NoError(t, err)
	assert.Equal(t, 2, may.Total)
	assert.Equal(t, 0, may.Statuses[1].Count)
	assert.Len(t, may.Items, 2)

	section, err := uc.Report(ctx, dto.FaultQuery{Place: "SECTION"})
	require.NoError(t, err)
	assert.Equal(t, 1, section.Total)
}

func TestFaultsReport_Validaciones(t *testing.T) {
	s := seedFaults(t)
	uc := NewFaultsUseCase(s.Analytics(), s.Malfunctions(), nil)
	ctx := context.Background()

	for _, q := range []dto.FaultQuery{
		{Place: "KITCHEN"},
		{Place: ""},
		{Place: "ENCLOSURE", DateFrom: "20-05-2024"},
		{Place: "ENCLOSURE", DateTo: "mayo"},
		{Place: "ENCLOSURE", DateFrom: "2024-05-21", DateTo: "2024-05-20"},
	} {
		_, err := uc.Report(ctx, q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, q)
	}
}

func TestFaultsExport_NombreYReporte(t *testing.T) {
	s := seedFaults(t)
	exp := &captureFaults{}
	uc := NewFaultsUseCase(s.Analytics(), s.Malfunctions(), exp)
	uc.now = func() time.Time { return fixedNow }

	data, name, err := uc.Export(context.Background(), dto.FaultQuery{Place: "Участок"})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "averias_section_20240520.xlsx", name)
	require.NotNil(t, exp.report)
	assert.Equal(t, 1, exp.report.Total)

	_, _, err = NewFaultsUseCase(s.Analytics(), s.Malfunctions(), nil).Export(context.Background(), dto.FaultQuery{Place: "SECTION"})
	assert.Error(t, err)
}
