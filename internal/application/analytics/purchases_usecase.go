package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

// PurchasesUseCase distribución de pedidos por estado.
type PurchasesUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewPurchasesUseCase construye el caso de uso.
func NewPurchasesUseCase(analyticsRepo repository.AnalyticsRepository) *PurchasesUseCase {
	return &PurchasesUseCase{analyticsRepo: analyticsRepo}
}

// ByStatus cuenta pedidos por estado, opcionalmente solo los solicitados en month (YYYY-MM).
// La respuesta trae siempre los cuatro estados en orden de flujo.
func (uc *PurchasesUseCase) ByStatus(ctx context.Context, month string) (*dto.PurchasesByStatusDTO, error) {
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return nil, fmt.Errorf("%w: mes %q, se espera YYYY-MM", domain.ErrInvalidInput, month)
		}
	}
	rows, err := uc.analyticsRepo.PurchasesByStatus(ctx, month)
	if err != nil {
		return nil, err
	}
	counts := make(map[entity.PurchaseStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] += r.Count
	}

	out := &dto.PurchasesByStatusDTO{Month: month, Statuses: make([]dto.StatusCountDTO, 0, len(entity.PurchaseStatuses))}
	for _, st := range entity.PurchaseStatuses {
		n := counts[st]
		out.Total += n
		out.Statuses = append(out.Statuses, dto.StatusCountDTO{Status: st.String(), Count: n})
	}
	return out, nil
}
