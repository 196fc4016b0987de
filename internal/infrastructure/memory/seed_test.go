package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/internal/infrastructure/memory"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

const seedYAML = `
feeds:
  - name: Meat
    type: wet
    quantity: 12
  - name: Hay
    type: dry
    quantity: "7,5"
rations:
  - species: lion
    feed: meat
    amount: 5
animals:
  - id: leo
    name: Leo
    species: lion
  - name: Old
    species: lion
    status: inactive
`

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestApplySeed_PermiteAlimentarEnMemoria(t *testing.T) {
	seed, err := memory.LoadSeedFile(writeSeed(t, "seed.yaml", seedYAML))
	require.NoError(t, err)
	require.Len(t, seed.Feeds, 2)

	s := memory.NewStore()
	animals, err := s.ApplySeed(seed)
	require.NoError(t, err)
	require.Len(t, animals, 2)
	assert.Equal(t, "leo", animals[0].ID)
	assert.Equal(t, entity.AnimalStatusActive, animals[0].Status)
	assert.Equal(t, entity.AnimalStatusInactive, animals[1].Status)
	assert.NotEmpty(t, animals[1].ID)

	ctx := context.Background()
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "emp-ana", FullName: "Ana", Username: "ana"}))
	feeding := inventory.NewFeedingUseCase(s, s.Repos().Feedings, inventory.NopMetrics{}, logger.Nop())
	event, err := feeding.RecordFeeding(ctx, "leo", "emp-ana")
	require.NoError(t, err)
	assert.True(t, event.Amount.Equal(decimal.NewFromInt(5)))

	feeds, err := s.Repos().Feeds.List(ctx, repository.FeedFilter{})
	require.NoError(t, err)
	for _, f := range feeds {
		switch f.Name {
		case "Meat":
			assert.True(t, f.Quantity.Equal(decimal.NewFromInt(7)), f.Quantity.String())
		case "Hay":
			assert.True(t, f.Quantity.Equal(decimal.RequireFromString("7.5")), f.Quantity.String())
		}
	}
}

func TestApplySeed_ErrorNoCargaNada(t *testing.T) {
	s := memory.NewStore()
	_, err := s.ApplySeed(memory.Seed{
		Feeds:   []memory.SeedFeed{{Name: "Meat", Type: "wet", Quantity: "10"}},
		Rations: []memory.SeedRation{{Species: "lion", Feed: "Fish", Amount: "2"}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	feeds, err := s.Repos().Feeds.List(context.Background(), repository.FeedFilter{})
	require.NoError(t, err)
	assert.Empty(t, feeds)

	_, err = s.ApplySeed(memory.Seed{Feeds: []memory.SeedFeed{{Name: "Meat", Type: "liquid"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.ApplySeed(memory.Seed{Animals: []memory.SeedAnimal{{Name: "Leo", Species: "lion", Status: "asleep"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadSeedFile_EjemploDelRepositorio(t *testing.T) {
	seed, err := memory.LoadSeedFile(filepath.Join("..", "..", "..", "docs", "memory_seed.yaml"))
	require.NoError(t, err)

	animals, err := memory.NewStore().ApplySeed(seed)
	require.NoError(t, err)
	assert.Len(t, animals, 4)
}

func TestLoadSeedFile_Inexistente(t *testing.T) {
	_, err := memory.LoadSeedFile(filepath.Join(t.TempDir(), "nada.yaml"))
	assert.Error(t, err)
}
