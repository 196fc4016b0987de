package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/usecase"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

// FaultsUseCase averías por estado de un lugar (recintos o parcelas) y su detalle.
type FaultsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	malfunctions  repository.MalfunctionRepository
	exporter      FaultsExporter
	now           func() time.Time
}

// NewFaultsUseCase construye el caso de uso. exporter puede ser nil si no se expone la descarga.
func NewFaultsUseCase(analyticsRepo repository.AnalyticsRepository, malfunctions repository.MalfunctionRepository, exporter FaultsExporter) *FaultsUseCase {
	return &FaultsUseCase{analyticsRepo: analyticsRepo, malfunctions: malfunctions, exporter: exporter, now: time.Now}
}

// Report conteo por estado más el detalle de averías del lugar en el rango.
//
// Conteo y detalle se consultan en paralelo.
func (uc *FaultsUseCase) Report(ctx context.Context, q dto.FaultQuery) (*dto.FaultReportDTO, error) {
	place, from, to, err := parseFaultQuery(q)
	if err != nil {
		return nil, err
	}

	type countsResult struct {
		rows []repository.FaultStatusCount
		err  error
	}
	type itemsResult struct {
		rows []*entity.Malfunction
		err  error
	}
	countsCh := make(chan countsResult, 1)
	itemsCh := make(chan itemsResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.FaultsByStatus(ctx, place, from, to)
		countsCh <- countsResult{rows, err}
	}()
	go func() {
		rows, err := uc.malfunctions.List(ctx, repository.MalfunctionFilter{Place: place, From: from, To: to})
		itemsCh <- itemsResult{rows, err}
	}()

	counts := <-countsCh
	items := <-itemsCh
	if counts.err != nil {
		return nil, fmt.Errorf("averías: por estado: %w", counts.err)
	}
	if items.err != nil {
		return nil, fmt.Errorf("averías: detalle: %w", items.err)
	}

	byStatus := make(map[entity.MalfunctionStatus]int, len(counts.rows))
	for _, r := range counts.rows {
		byStatus[r.Status] += r.Count
	}
	out := &dto.FaultReportDTO{
		Place:    place,
		From:     from,
		To:       to,
		Statuses: make([]dto.StatusCountDTO, 0, len(entity.MalfunctionStatuses)),
		Items:    make([]dto.MalfunctionDTO, 0, len(items.rows)),
	}
	for _, st := range entity.MalfunctionStatuses {
		out.Statuses = append(out.Statuses, dto.StatusCountDTO{Status: st.String(), Count: byStatus[st]})
		out.Total += byStatus[st]
	}
	for _, m := range items.rows {
		out.Items = append(out.Items, usecase.ToMalfunctionDTO(m))
	}
	return out, nil
}

// Export planilla del reporte. Devuelve (bytes, filename).
func (uc *FaultsUseCase) Export(ctx context.Context, q dto.FaultQuery) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("averías: exportador no configurado")
	}
	report, err := uc.Report(ctx, q)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportFaults(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("averías: exportación fallida: %w", err)
	}
	name := fmt.Sprintf("averias_%s_%s.xlsx", strings.ToLower(report.Place), uc.now().UTC().Format("20060102"))
	return data, name, nil
}

// parseFaultQuery valida el lugar y convierte las fechas en días calendario UTC completos.
func parseFaultQuery(q dto.FaultQuery) (string, *time.Time, *time.Time, error) {
	place, ok := entity.ParsePlace(q.Place)
	if !ok || !entity.IsFaultReportPlace(place) {
		return "", nil, nil, fmt.Errorf("%w: lugar %q sin reporte de averías", domain.ErrInvalidInput, q.Place)
	}
	var from, to *time.Time
	if q.DateFrom != "" {
		d, err := time.Parse("2006-01-02", q.DateFrom)
		if err != nil {
			return "", nil, nil, fmt.Errorf("%w: date_from %q", domain.ErrInvalidInput, q.DateFrom)
		}
		from = &d
	}
	if q.DateTo != "" {
		d, err := time.Parse("2006-01-02", q.DateTo)
		if err != nil {
			return "", nil, nil, fmt.Errorf("%w: date_to %q", domain.ErrInvalidInput, q.DateTo)
		}
		end := d.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return "", nil, nil, fmt.Errorf("%w: date_from posterior a date_to", domain.ErrInvalidInput)
	}
	return place, from, to, nil
}
