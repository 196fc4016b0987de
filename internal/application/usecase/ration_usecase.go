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
)

// RationUseCase administración explícita del catálogo de raciones (una por especie).
type RationUseCase struct {
	rations repository.RationRepository
	feeds   repository.FeedRepository
}

// NewRationUseCase construye el caso de uso.
func NewRationUseCase(rations repository.RationRepository, feeds repository.FeedRepository) *RationUseCase {
	return &RationUseCase{rations: rations, feeds: feeds}
}

// List devuelve todas las raciones ordenadas por especie.
func (uc *RationUseCase) List(ctx context.Context) ([]dto.RationDTO, error) {
	list, err := uc.rations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RationDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toRationDTO(r))
	}
	return out, nil
}

// Upsert crea o reemplaza la ración de la especie. El alimento debe existir y amount > 0.
func (uc *RationUseCase) Upsert(ctx context.Context, in dto.RationRequest) (*dto.RationDTO, error) {
	species := strings.TrimSpace(in.Species)
	if species == "" || in.FeedID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	feed, err := uc.feeds.GetByID(ctx, in.FeedID)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, domain.ErrNotFound
	}
	freq := strings.TrimSpace(in.Frequency)
	if freq == "" {
		freq = entity.DefaultRationFrequency
	}

	ration := &entity.Ration{
		ID:        uuid.New().String(),
		FeedID:    feed.ID,
		Species:   species,
		Amount:    in.Amount,
		Frequency: freq,
		CreatedAt: time.Now(),
	}
	if existing, err := uc.rations.GetBySpecies(ctx, species); err != nil {
		return nil, err
	} else if existing != nil {
		ration.ID = existing.ID
		ration.CreatedAt = existing.CreatedAt
	}
	if err := uc.rations.Upsert(ctx, ration); err != nil {
		return nil, err
	}
	out := toRationDTO(ration)
	return &out, nil
}

// Delete elimina una ración; domain.ErrNotFound si no existe.
func (uc *RationUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.rations.Delete(ctx, id)
}

func toRationDTO(r *entity.Ration) dto.RationDTO {
	return dto.RationDTO{
		ID:        r.ID,
		Species:   r.Species,
		FeedID:    r.FeedID,
		Amount:    r.Amount,
		Frequency: r.Frequency,
		CreatedAt: r.CreatedAt,
	}
}
