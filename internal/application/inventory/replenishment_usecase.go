package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase marca los alimentos con existencias bajas y sugiere cuánto pedir.
// Un alimento está bajo cuando su existencia es menor al promedio de las raciones que lo usan.
type ReplenishmentUseCase struct {
	feeds         repository.FeedRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	feeds repository.FeedRepository,
	analyticsRepo repository.AnalyticsRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		feeds:         feeds,
		analyticsRepo: analyticsRepo,
	}
}

// ListFeeds lista los alimentos con su marca IsLow. feedType vacío = todos; lowOnly deja solo los bajos.
func (uc *ReplenishmentUseCase) ListFeeds(ctx context.Context, feedType string, lowOnly bool) ([]dto.FeedDTO, error) {
	filter := repository.FeedFilter{}
	if feedType != "" {
		t, ok := entity.ParseFeedType(feedType)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Type = t
	}
	feeds, err := uc.feeds.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	demand, err := uc.demandByFeed(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FeedDTO, 0, len(feeds))
	for _, f := range feeds {
		avg := demand[f.ID]
		low := f.Quantity.LessThan(avg)
		if lowOnly && !low {
			continue
		}
		out = append(out, dto.FeedDTO{
			ID:            f.ID,
			Name:          f.Name,
			Type:          f.Type,
			Unit:          f.Unit,
			Quantity:      f.Quantity,
			AverageRation: avg,
			IsLow:         low,
		})
	}
	return out, nil
}

// GenerateReplenishmentList devuelve los alimentos bajos con la cantidad sugerida de pedido
// (stock ideal = promedio de ración * 1.5), priorizando el mayor déficit relativo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.ListFeeds(ctx, "", true)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, f := range low {
		ideal := f.AverageRation.Mul(factor)
		qty := ideal.Sub(f.Quantity)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			FeedID:            f.ID,
			FeedName:          f.Name,
			Unit:              f.Unit,
			CurrentStock:      f.Quantity,
			AverageRation:     f.AverageRation,
			IdealStock:        ideal,
			SuggestedOrderQty: qty,
		})
	}

	// Mayor cobertura faltante primero (existencia / ración más baja); empate por nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ca := a.CurrentStock.Div(a.AverageRation)
		cb := b.CurrentStock.Div(b.AverageRation)
		if !ca.Equal(cb) {
			return ca.LessThan(cb)
		}
		return a.FeedName < b.FeedName
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func (uc *ReplenishmentUseCase) demandByFeed(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := uc.analyticsRepo.FeedDemand(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		m[r.FeedID] = r.AverageAmount
	}
	return m, nil
}
