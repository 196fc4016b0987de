package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

// FeedingUseCase motor de consumo: cada alimentación descuenta la ración de la especie
// y deja registro de la alimentación y del gasto.
type FeedingUseCase struct {
	txRunner TxRunner
	feedings repository.FeedingRepository
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewFeedingUseCase construye el caso de uso. feedings se usa solo para lecturas fuera de tx.
func NewFeedingUseCase(txRunner TxRunner, feedings repository.FeedingRepository, metrics Metrics, log *logger.Logger) *FeedingUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FeedingUseCase{
		txRunner: txRunner,
		feedings: feedings,
		metrics:  metrics,
		log:      log.Component("feeding"),
		now:      time.Now,
	}
}

// RecordFeeding registra que employeeID alimentó a animalID.
// Orden: animal existente y activo, ración de la especie, débito de existencias,
// luego FeedingEvent y ConsumptionRecord. Todo o nada.
func (uc *FeedingUseCase) RecordFeeding(ctx context.Context, animalID, employeeID string) (*entity.FeedingEvent, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" || employeeID == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		event   *entity.FeedingEvent
		species string
		ration  *entity.Ration
	)
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		animal, err := repos.Animals.GetByID(ctx, animalID)
		if err != nil {
			return err
		}
		if animal == nil {
			return domain.ErrNotFound
		}
		if !animal.IsActive() {
			return &domain.StateError{Resource: "animal", Current: animal.Status, Reason: "solo se alimentan animales activos"}
		}
		species = animal.Species

		ration, err = repos.Rations.GetBySpecies(ctx, animal.Species)
		if err != nil {
			return err
		}
		if ration == nil {
			return &domain.ConfigurationError{Species: animal.Species}
		}

		now := uc.now().UTC()
		event = &entity.FeedingEvent{
			ID:         uuid.New().String(),
			AnimalID:   animal.ID,
			EmployeeID: employeeID,
			FeedID:     ration.FeedID,
			Amount:     ration.Amount,
			FedAt:      now,
		}

		ref := Reference{Type: entity.MovementRefFeeding, ID: event.ID, CreatedBy: employeeID}
		if _, err := NewStockLedger(repos).Debit(ctx, ration.FeedID, ration.Amount, ref); err != nil {
			return err
		}
		if err := repos.Feedings.Create(ctx, event); err != nil {
			return err
		}
		return repos.Consumption.Create(ctx, &entity.ConsumptionRecord{
			ID:             uuid.New().String(),
			FeedingEventID: event.ID,
			FeedID:         ration.FeedID,
			EmployeeID:     employeeID,
			Quantity:       ration.Amount,
			Date:           time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		})
	})
	if err != nil {
		if isInsufficient(err) && ration != nil {
			uc.metrics.InsufficientStock(ration.FeedID)
		}
		uc.log.Warn().Err(err).Str("animal_id", animalID).Msg("alimentación rechazada")
		return nil, err
	}

	uc.metrics.StockDebited(event.FeedID, event.Amount)
	uc.metrics.FeedingRecorded(species)
	uc.log.Info().
		Str("animal_id", event.AnimalID).
		Str("employee_id", employeeID).
		Str("feed_id", event.FeedID).
		Str("amount", event.Amount.String()).
		Msg("alimentación registrada")
	return event, nil
}

// ListFeedings lista las alimentaciones más recientes primero.
func (uc *FeedingUseCase) ListFeedings(ctx context.Context, limit, offset int) ([]*entity.FeedingEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.feedings.List(ctx, limit, offset)
}
