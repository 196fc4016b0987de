package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/application/purchasing"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/internal/infrastructure/memory"
)

const (
	feedHay     = "feed-hay"
	feedMeat    = "feed-meat"
	employeeAna = "employee-ana"
	employeeBob = "employee-bob"
	supplierA   = "Granja Norte"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	now := time.Now()
	s.PutFeed(entity.Feed{ID: feedHay, Name: "Hay", Type: entity.FeedTypeDry, Unit: "kg", Quantity: dec("10"), CreatedAt: now, UpdatedAt: now})
	s.PutFeed(entity.Feed{ID: feedMeat, Name: "Meat", Type: entity.FeedTypeWet, Unit: "kg", Quantity: dec("2"), CreatedAt: now, UpdatedAt: now})
	return s
}

func stockOf(t *testing.T, s *memory.Store, feedID string) decimal.Decimal {
	t.Helper()
	f, err := s.Repos().Feeds.GetByID(context.Background(), feedID)
	require.NoError(t, err)
	require.NotNil(t, f)
	return f.Quantity
}

// addItem agrega una línea al pedido abierto de (supplierA, employeeAna).
func addItem(t *testing.T, uc *purchasing.OrderUseCase, feedID, qty string) *purchasing.AddLineItemResult {
	t.Helper()
	res, err := uc.AddLineItem(context.Background(), purchasing.AddLineItemInput{
		Supplier:   supplierA,
		EmployeeID: employeeAna,
		FeedID:     feedID,
		Quantity:   dec(qty),
	})
	require.NoError(t, err)
	return res
}

// failingFeeds simula una caída del almacenamiento al acreditar un alimento concreto.
type failingFeeds struct {
	repository.FeedRepository
	failID string
}

func (f failingFeeds) AddQuantity(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	if id == f.failID {
		return decimal.Zero, domain.StorageErr("add feed quantity", errors.New("connection reset by peer"))
	}
	return f.FeedRepository.AddQuantity(ctx, id, delta)
}

// failingRunner transacción real del store con el repositorio de alimentos saboteado.
type failingRunner struct {
	store  *memory.Store
	failID string
}

func (r failingRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return r.store.Run(ctx, func(repos inventory.Repos) error {
		repos.Feeds = failingFeeds{FeedRepository: repos.Feeds, failID: r.failID}
		return fn(repos)
	})
}
