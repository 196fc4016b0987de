package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	feedMeat    = "feed-meat"
	feedHay     = "feed-hay"
	animalLeo   = "animal-leo"
	animalOld   = "animal-old"
	employeeAna = "employee-ana"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newZoo crea un store con carne (meatStock kg), heno, un león activo con ración de 5 kg de carne
// y un animal inactivo.
func newZoo(t *testing.T, meatStock string) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	now := time.Now()
	s.PutFeed(entity.Feed{ID: feedMeat, Name: "Meat", Type: entity.FeedTypeWet, Unit: "kg", Quantity: dec(meatStock), CreatedAt: now, UpdatedAt: now})
	s.PutFeed(entity.Feed{ID: feedHay, Name: "Hay", Type: entity.FeedTypeDry, Unit: "kg", Quantity: dec("10"), CreatedAt: now, UpdatedAt: now})
	s.PutAnimal(entity.Animal{ID: animalLeo, Name: "Leo", Species: "lion", Status: entity.AnimalStatusActive})
	s.PutAnimal(entity.Animal{ID: animalOld, Name: "Old", Species: "lion", Status: entity.AnimalStatusInactive})
	s.PutRation(entity.Ration{ID: "ration-lion", FeedID: feedMeat, Species: "lion", Amount: dec("5"), Frequency: entity.DefaultRationFrequency})
	return s
}

func stockOf(t *testing.T, s *memory.Store, feedID string) decimal.Decimal {
	t.Helper()
	f, err := s.Repos().Feeds.GetByID(context.Background(), feedID)
	require.NoError(t, err)
	require.NotNil(t, f)
	return f.Quantity
}

// recordingMetrics cuenta las llamadas para verificar que se registran solo tras el Commit.
type recordingMetrics struct {
	mu           sync.Mutex
	debited      []string
	credited     []string
	insufficient []string
	feedings     []string
}

func (m *recordingMetrics) StockCredited(feedID string, _ decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credited = append(m.credited, feedID)
}

func (m *recordingMetrics) StockDebited(feedID string, _ decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debited = append(m.debited, feedID)
}

func (m *recordingMetrics) InsufficientStock(feedID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insufficient = append(m.insufficient, feedID)
}

func (m *recordingMetrics) OrderTransitioned(entity.PurchaseStatus, entity.PurchaseStatus) {}

func (m *recordingMetrics) FeedingRecorded(species string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedings = append(m.feedings, species)
}

// passthroughRunner ejecuta fn con repos fijos, sin transacción.
type passthroughRunner struct{ repos inventory.Repos }

func (r passthroughRunner) Run(_ context.Context, fn func(repos inventory.Repos) error) error {
	return fn(r.repos)
}

// mockFeedRepo FeedRepository de testify: cualquier llamada no esperada hace fallar el test.
type mockFeedRepo struct{ mock.Mock }

var _ repository.FeedRepository = (*mockFeedRepo)(nil)

func (m *mockFeedRepo) Create(ctx context.Context, feed *entity.Feed) error {
	return m.Called(ctx, feed).Error(0)
}

func (m *mockFeedRepo) GetByID(ctx context.Context, id string) (*entity.Feed, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*entity.Feed)
	return f, args.Error(1)
}

func (m *mockFeedRepo) GetForUpdate(ctx context.Context, id string) (*entity.Feed, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*entity.Feed)
	return f, args.Error(1)
}

func (m *mockFeedRepo) AddQuantity(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockFeedRepo) SetQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *mockFeedRepo) List(ctx context.Context, filter repository.FeedFilter) ([]*entity.Feed, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*entity.Feed)
	return list, args.Error(1)
}
