package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/application/purchasing"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/zoo-api/pkg/config"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

// Contra una base real: DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
// Cada test crea sus filas con nombres únicos, así que la base puede tener datos previos.

func openTestDB(t *testing.T) (*pgxpool.Pool, inventory.TxRunner, inventory.Repos) {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10}, "zoo-api-test")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool, postgres.NewTxRunner(pool, 5*time.Second), postgres.NewRepos(pool)
}

func createEmployee(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	now := time.Now()
	e := &entity.Employee{
		ID: uuid.New().String(), FullName: "Test", Username: "it-" + uuid.New().String(),
		PasswordHash: "x", Role: entity.RoleManager, Status: entity.EmployeeStatusActive,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewEmployeeRepository(pool).Create(context.Background(), e))
	return e.ID
}

func createFeed(t *testing.T, repos inventory.Repos, qty int64) string {
	t.Helper()
	now := time.Now()
	f := &entity.Feed{
		ID: uuid.New().String(), Name: "it-feed-" + uuid.New().String(), Type: entity.FeedTypeWet,
		Unit: "kg", Quantity: decimal.NewFromInt(qty), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Feeds.Create(context.Background(), f))
	return f.ID
}

func TestIntegration_AddLineItemConcurrenteUnSoloPedidoAbierto(t *testing.T) {
	pool, tx, repos := openTestDB(t)
	ctx := context.Background()
	employeeID := createEmployee(t, pool)
	feedID := createFeed(t, repos, 0)
	supplier := "it-supplier-" + uuid.New().String()

	orders := purchasing.NewOrderUseCase(tx, repos.Orders, logger.Nop())
	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := orders.AddLineItem(ctx, purchasing.AddLineItemInput{
				Supplier: supplier, EmployeeID: employeeID, FeedID: feedID, Quantity: decimal.NewFromInt(3),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var open int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchase_orders WHERE supplier = $1 AND employee_id = $2 AND status = 'SUBMITTED'`,
		supplier, employeeID).Scan(&open))
	assert.Equal(t, 1, open)

	order, err := repos.Orders.FindOpenForUpdate(ctx, supplier, employeeID)
	require.NoError(t, err)
	require.NotNil(t, order)
	items, err := repos.Orders.ListItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(3*workers)), items[0].Quantity.String())
}

func TestIntegration_DebitoConcurrenteNuncaDejaExistenciaNegativa(t *testing.T) {
	pool, tx, repos := openTestDB(t)
	ctx := context.Background()
	employeeID := createEmployee(t, pool)
	feedID := createFeed(t, repos, 12)

	species := "it-species-" + uuid.New().String()
	require.NoError(t, repos.Rations.Upsert(ctx, &entity.Ration{
		ID: uuid.New().String(), FeedID: feedID, Species: species, Amount: decimal.NewFromInt(5),
		Frequency: entity.DefaultRationFrequency, CreatedAt: time.Now(),
	}))
	animalID := uuid.New().String()
	_, err := pool.Exec(ctx, `INSERT INTO animals (id, name, species, status) VALUES ($1, 'Leo', $2, 'ACTIVE')`, animalID, species)
	require.NoError(t, err)

	feeding := inventory.NewFeedingUseCase(tx, repos.Feedings, inventory.NopMetrics{}, logger.Nop())
	const attempts = 6
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := feeding.RecordFeeding(ctx, animalID, employeeID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, ok)
	assert.Equal(t, attempts-2, rejected)

	feed, err := repos.Feeds.GetByID(ctx, feedID)
	require.NoError(t, err)
	assert.True(t, feed.Quantity.Equal(decimal.NewFromInt(2)), feed.Quantity.String())

	movements, err := repos.Movements.ListByFeed(ctx, feedID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 2)
	for _, m := range movements {
		assert.False(t, m.Balance.IsNegative())
	}
}

func TestIntegration_CheckDeLaTablaRechazaExistenciaNegativa(t *testing.T) {
	_, _, repos := openTestDB(t)
	feedID := createFeed(t, repos, 1)

	_, err := repos.Feeds.AddQuantity(context.Background(), feedID, decimal.NewFromInt(-2))
	assert.ErrorIs(t, err, domain.ErrStorage)

	feed, err := repos.Feeds.GetByID(context.Background(), feedID)
	require.NoError(t, err)
	assert.True(t, feed.Quantity.Equal(decimal.NewFromInt(1)))
}

func TestIntegration_IdMalFormadoEsInexistente(t *testing.T) {
	_, _, repos := openTestDB(t)
	feed, err := repos.Feeds.GetByID(context.Background(), "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, feed)
}

func TestIntegration_AveriaCambioDeEstadoCondicional(t *testing.T) {
	pool, _, _ := openTestDB(t)
	ctx := context.Background()
	repo := postgres.NewMalfunctionRepository(pool)
	m := &entity.Malfunction{
		ID: uuid.New().String(), EmployeeID: createEmployee(t, pool), Place: entity.PlaceEnclosure,
		Description: "Malla rota", Status: entity.MalfunctionStatusReported, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, m))

	changed, err := repo.TransitionStatus(ctx, m.ID, entity.MalfunctionStatusReported, entity.MalfunctionStatusInProgress, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	// Segundo cambio con el estado previo ya obsoleto: ninguna fila coincide.
	changed, err = repo.TransitionStatus(ctx, m.ID, entity.MalfunctionStatusReported, entity.MalfunctionStatusResolved, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.MalfunctionStatusInProgress, got.Status)
	assert.Equal(t, "Test", got.EmployeeName)

	counts, err := postgres.NewAnalyticsRepository(pool).FaultsByStatus(ctx, entity.PlaceEnclosure, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, counts)

	err = repo.Create(ctx, &entity.Malfunction{
		ID: uuid.New().String(), EmployeeID: uuid.New().String(), Place: entity.PlaceKitchen,
		Description: "x", Status: entity.MalfunctionStatusReported, CreatedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
