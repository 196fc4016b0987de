package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// FeedUseCase alta y consulta del catálogo de alimentos. La existencia se maneja vía StockLedger.
type FeedUseCase struct {
	repo      repository.FeedRepository
	movements repository.StockMovementRepository
}

// NewFeedUseCase construye el caso de uso.
func NewFeedUseCase(repo repository.FeedRepository, movements repository.StockMovementRepository) *FeedUseCase {
	return &FeedUseCase{repo: repo, movements: movements}
}

// Create crea un alimento. Quantity inicia en 0.
func (uc *FeedUseCase) Create(ctx context.Context, in dto.CreateFeedRequest) (*dto.FeedDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	feedType, ok := entity.ParseFeedType(in.Type)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultFeedUnit
	}
	now := time.Now()
	feed := &entity.Feed{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      feedType,
		Unit:      unit,
		Quantity:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, feed); err != nil {
		return nil, err
	}
	return toFeedDTO(feed), nil
}

// GetByID obtiene un alimento; domain.ErrNotFound si no existe.
func (uc *FeedUseCase) GetByID(ctx context.Context, id string) (*dto.FeedDTO, error) {
	feed, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, domain.ErrNotFound
	}
	return toFeedDTO(feed), nil
}

// ListMovements historial de existencias del alimento, más reciente primero.
func (uc *FeedUseCase) ListMovements(ctx context.Context, feedID string, limit, offset int) ([]dto.StockMovementDTO, error) {
	if _, err := uc.GetByID(ctx, feedID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.movements.ListByFeed(ctx, feedID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToStockMovementDTO(m))
	}
	return out, nil
}

// ToStockMovementDTO convierte un movimiento del libro a su DTO.
func ToStockMovementDTO(m *entity.StockMovement) dto.StockMovementDTO {
	return dto.StockMovementDTO{
		ID:            m.ID,
		FeedID:        m.FeedID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Balance:       m.Balance,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toFeedDTO(f *entity.Feed) *dto.FeedDTO {
	return &dto.FeedDTO{
		ID:       f.ID,
		Name:     f.Name,
		Type:     f.Type,
		Unit:     f.Unit,
		Quantity: f.Quantity,
	}
}
