package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

// Períodos aceptados por los reportes de consumo.
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// ConsumptionUseCase reportes de gasto de alimento.
//
// Fuente de datos: AnalyticsRepository (consultas read-only sobre consumption_records).
type ConsumptionUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	exporter      ConsumptionExporter
	now           func() time.Time
}

// NewConsumptionUseCase construye el caso de uso. exporter puede ser nil si no se expone la descarga.
func NewConsumptionUseCase(analyticsRepo repository.AnalyticsRepository, exporter ConsumptionExporter) *ConsumptionUseCase {
	return &ConsumptionUseCase{analyticsRepo: analyticsRepo, exporter: exporter, now: time.Now}
}

// GetReport totales por empleado y por alimento en el período (day | month | all; vacío = all).
//
// Las dos agregaciones se consultan en paralelo.
func (uc *ConsumptionUseCase) GetReport(ctx context.Context, period string) (*dto.ConsumptionReportDTO, error) {
	period, from, to, err := uc.periodRange(period)
	if err != nil {
		return nil, err
	}

	type totalsResult struct {
		rows []repository.ConsumptionTotal
		err  error
	}
	byEmpCh := make(chan totalsResult, 1)
	byFeedCh := make(chan totalsResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.ConsumptionByEmployee(ctx, from, to)
		byEmpCh <- totalsResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.ConsumptionByFeed(ctx, from, to)
		byFeedCh <- totalsResult{rows, err}
	}()

	byEmp := <-byEmpCh
	byFeed := <-byFeedCh
	if byEmp.err != nil {
		return nil, fmt.Errorf("consumo: por empleado: %w", byEmp.err)
	}
	if byFeed.err != nil {
		return nil, fmt.Errorf("consumo: por alimento: %w", byFeed.err)
	}

	return &dto.ConsumptionReportDTO{
		Period:     period,
		From:       from,
		To:         to,
		ByEmployee: toTotalDTOs(byEmp.rows),
		ByFeed:     toTotalDTOs(byFeed.rows),
	}, nil
}

// ListExpenses detalle de gastos del período. employeeID vacío = todos los empleados.
func (uc *ConsumptionUseCase) ListExpenses(ctx context.Context, employeeID, period string) ([]dto.ConsumptionLineDTO, error) {
	_, from, to, err := uc.periodRange(period)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.ConsumptionDetail(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumptionLineDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConsumptionLineDTO{
			ID:           r.ID,
			Date:         r.Date,
			EmployeeName: r.EmployeeName,
			FeedName:     r.FeedName,
			Unit:         r.Unit,
			Quantity:     r.Quantity,
		})
	}
	return out, nil
}

// Export genera la planilla del período: hoja de totales más hoja de detalle.
// Devuelve (bytes, filename).
func (uc *ConsumptionUseCase) Export(ctx context.Context, period string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("consumo: exportador no configurado")
	}
	report, err := uc.GetReport(ctx, period)
	if err != nil {
		return nil, "", err
	}
	lines, err := uc.ListExpenses(ctx, "", report.Period)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportConsumption(ctx, report, lines)
	if err != nil {
		return nil, "", fmt.Errorf("consumo: exportación fallida: %w", err)
	}
	return data, fmt.Sprintf("consumo_%s_%s.xlsx", report.Period, uc.now().Format("20060102")), nil
}

// periodRange traduce el período a un rango [from, to]; nil, nil para "all".
// Los límites son días calendario UTC, igual que ConsumptionRecord.Date.
func (uc *ConsumptionUseCase) periodRange(period string) (string, *time.Time, *time.Time, error) {
	now := uc.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	switch period {
	case "", PeriodAll:
		return PeriodAll, nil, nil, nil
	case PeriodDay:
		return PeriodDay, &dayStart, &dayEnd, nil
	case PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return PeriodMonth, &monthStart, &dayEnd, nil
	default:
		return "", nil, nil, fmt.Errorf("%w: período %q", domain.ErrInvalidInput, period)
	}
}

func toTotalDTOs(rows []repository.ConsumptionTotal) []dto.ConsumptionTotalDTO {
	out := make([]dto.ConsumptionTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConsumptionTotalDTO{ID: r.Key, Name: r.Label, Unit: r.Unit, Total: r.Total})
	}
	return out
}
