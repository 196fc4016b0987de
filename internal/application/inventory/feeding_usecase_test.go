package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

func TestRecordFeeding_DebitsRationAndRecordsConsumption(t *testing.T) {
	ctx := context.Background()
	store := newZoo(t, "12")
	metrics := &recordingMetrics{}
	uc := inventory.NewFeedingUseCase(store, store.Repos().Feedings, metrics, nil)

	event, err := uc.RecordFeeding(ctx, animalLeo, employeeAna)
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, feedMeat, event.FeedID)
	assert.True(t, event.Amount.Equal(dec("5")))
	assert.True(t, stockOf(t, store, feedMeat).Equal(dec("7")), "12 - 5 = 7")

	feedings, err := uc.ListFeedings(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, feedings, 1)
	assert.Equal(t, event.ID, feedings[0].ID)

	records, err := store.Repos().Consumption.List(ctx, employeeAna, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, event.ID, records[0].FeedingEventID)
	assert.True(t, records[0].Quantity.Equal(dec("5")))

	movs, err := store.Repos().Movements.ListByReference(ctx, entity.MovementRefFeeding, event.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeDebit, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec("-5")))
	assert.True(t, movs[0].Balance.Equal(dec("7")))

	assert.Equal(t, []string{feedMeat}, metrics.debited)
	assert.Equal(t, []string{"lion"}, metrics.feedings)
}

func TestRecordFeeding_InsufficientStockLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	store := newZoo(t, "2")
	metrics := &recordingMetrics{}
	uc := inventory.NewFeedingUseCase(store, store.Repos().Feedings, metrics, nil)

	_, err := uc.RecordFeeding(ctx, animalLeo, employeeAna)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "el error debe traer necesario vs disponible")
	assert.Equal(t, feedMeat, stockErr.FeedID)
	assert.True(t, stockErr.Needed.Equal(dec("5")))
	assert.True(t, stockErr.Available.Equal(dec("2")))

	assert.True(t, stockOf(t, store, feedMeat).Equal(dec("2")), "la existencia no cambia")
	feedings, err := uc.ListFeedings(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, feedings)
	records, err := store.Repos().Consumption.List(ctx, "", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.Equal(t, []string{feedMeat}, metrics.insufficient)
	assert.Empty(t, metrics.debited)
}

func TestRecordFeeding_NoRationFailsBeforeTouchingStock(t *testing.T) {
	ctx := context.Background()
	store := newZoo(t, "50")
	store.PutAnimal(entity.Animal{ID: "animal-zebra", Name: "Zed", Species: "zebra", Status: entity.AnimalStatusActive})

	feeds := &mockFeedRepo{}
	repos := store.Repos()
	repos.Feeds = feeds
	uc := inventory.NewFeedingUseCase(passthroughRunner{repos: repos}, repos.Feedings, nil, nil)

	_, err := uc.RecordFeeding(ctx, "animal-zebra", employeeAna)
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "zebra", cfgErr.Species)
	assert.ErrorIs(t, err, domain.ErrNoRation)

	feeds.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	feeds.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordFeeding_AnimalChecks(t *testing.T) {
	ctx := context.Background()
	store := newZoo(t, "50")
	uc := inventory.NewFeedingUseCase(store, store.Repos().Feedings, nil, nil)

	tests := []struct {
		name     string
		animalID string
		employee string
		wantErr  error
	}{
		{"animal inexistente", "animal-ghost", employeeAna, domain.ErrNotFound},
		{"animal inactivo", animalOld, employeeAna, domain.ErrInvalidState},
		{"sin animal", "  ", employeeAna, domain.ErrInvalidInput},
		{"sin empleado", animalLeo, "", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RecordFeeding(ctx, tt.animalID, tt.employee)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.True(t, stockOf(t, store, feedMeat).Equal(dec("50")))
}

func TestRecordFeeding_ConcurrentFeedingsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newZoo(t, "12")
	uc := inventory.NewFeedingUseCase(store, store.Repos().Feedings, nil, nil)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		refused int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordFeeding(ctx, animalLeo, employeeAna)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				refused++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, ok, "12 kg alcanzan para dos raciones de 5")
	assert.Equal(t, workers-2, refused)
	assert.True(t, stockOf(t, store, feedMeat).Equal(dec("2")))
}
