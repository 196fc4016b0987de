package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// Seed datos iniciales de la base en memoria: el alta de animales no tiene ruta HTTP,
// así que sin semilla el motor de alimentación no tiene a quién alimentar.
type Seed struct {
	Feeds   []SeedFeed   `mapstructure:"feeds"`
	Rations []SeedRation `mapstructure:"rations"`
	Animals []SeedAnimal `mapstructure:"animals"`
}

// SeedFeed alimento con existencia inicial. Quantity admite coma decimal.
type SeedFeed struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Type     string `mapstructure:"type"`
	Unit     string `mapstructure:"unit"`
	Quantity string `mapstructure:"quantity"`
}

// SeedRation ración de una especie; Feed es el nombre del alimento.
type SeedRation struct {
	Species   string `mapstructure:"species"`
	Feed      string `mapstructure:"feed"`
	Amount    string `mapstructure:"amount"`
	Frequency string `mapstructure:"frequency"`
}

// SeedAnimal animal a alimentar. Status vacío = ACTIVE.
type SeedAnimal struct {
	ID      string `mapstructure:"id"`
	Name    string `mapstructure:"name"`
	Species string `mapstructure:"species"`
	Status  string `mapstructure:"status"`
}

// LoadSeedFile lee la semilla desde YAML, JSON o TOML (según la extensión).
func LoadSeedFile(path string) (Seed, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Seed{}, fmt.Errorf("leer semilla %s: %w", path, err)
	}
	var seed Seed
	if err := v.Unmarshal(&seed); err != nil {
		return Seed{}, fmt.Errorf("decodificar semilla %s: %w", path, err)
	}
	return seed, nil
}

// ApplySeed valida la semilla completa y la carga de una vez; ante cualquier error no carga nada.
// Devuelve los animales cargados con su id.
func (s *Store) ApplySeed(seed Seed) ([]entity.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	now := time.Now()

	byName := make(map[string]string, len(work.feeds)+len(seed.Feeds))
	for id, f := range work.feeds {
		byName[strings.ToLower(f.Name)] = id
	}
	for i, sf := range seed.Feeds {
		name := strings.TrimSpace(sf.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: alimento %d sin nombre", domain.ErrInvalidInput, i+1)
		}
		if _, dup := byName[strings.ToLower(name)]; dup {
			return nil, fmt.Errorf("%w: alimento %q", domain.ErrDuplicate, name)
		}
		feedType, ok := entity.ParseFeedType(sf.Type)
		if !ok {
			return nil, fmt.Errorf("%w: tipo de alimento %q", domain.ErrInvalidInput, sf.Type)
		}
		qty, err := parseSeedAmount(sf.Quantity)
		if err != nil || qty.IsNegative() {
			return nil, fmt.Errorf("%w: existencia de %q", domain.ErrInvalidInput, name)
		}
		unit := strings.TrimSpace(sf.Unit)
		if unit == "" {
			unit = entity.DefaultFeedUnit
		}
		id := orNewID(sf.ID)
		work.feeds[id] = entity.Feed{ID: id, Name: name, Type: feedType, Unit: unit, Quantity: qty, CreatedAt: now, UpdatedAt: now}
		byName[strings.ToLower(name)] = id
	}

	for _, sr := range seed.Rations {
		species := strings.TrimSpace(sr.Species)
		feedID, ok := byName[strings.ToLower(strings.TrimSpace(sr.Feed))]
		if species == "" || !ok {
			return nil, fmt.Errorf("%w: ración %q con alimento %q", domain.ErrNotFound, species, sr.Feed)
		}
		amount, err := parseSeedAmount(sr.Amount)
		if err != nil || !amount.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad de la ración %q", domain.ErrInvalidInput, species)
		}
		freq := strings.TrimSpace(sr.Frequency)
		if freq == "" {
			freq = entity.DefaultRationFrequency
		}
		ration := entity.Ration{ID: uuid.New().String(), FeedID: feedID, Species: species, Amount: amount, Frequency: freq, CreatedAt: now}
		for id, existing := range work.rations {
			if existing.Species == species {
				ration.ID = id
				ration.CreatedAt = existing.CreatedAt
			}
		}
		work.rations[ration.ID] = ration
	}

	animals := make([]entity.Animal, 0, len(seed.Animals))
	for _, sa := range seed.Animals {
		name, species := strings.TrimSpace(sa.Name), strings.TrimSpace(sa.Species)
		if name == "" || species == "" {
			return nil, fmt.Errorf("%w: animal sin nombre o especie", domain.ErrInvalidInput)
		}
		status := strings.ToUpper(strings.TrimSpace(sa.Status))
		switch status {
		case "":
			status = entity.AnimalStatusActive
		case entity.AnimalStatusActive, entity.AnimalStatusInactive:
		default:
			return nil, fmt.Errorf("%w: estado de animal %q", domain.ErrInvalidInput, sa.Status)
		}
		a := entity.Animal{ID: orNewID(sa.ID), Name: name, Species: species, Status: status}
		work.animals[a.ID] = a
		animals = append(animals, a)
	}

	s.st = work
	return animals, nil
}

func parseSeedAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func orNewID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.New().String()
}
