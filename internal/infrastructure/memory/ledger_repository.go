package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

var (
	_ repository.FeedingRepository       = (*FeedingRepo)(nil)
	_ repository.ConsumptionRepository   = (*ConsumptionRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// FeedingRepo alimentaciones (solo inserción).
type FeedingRepo struct{ v view }

func (r *FeedingRepo) Create(_ context.Context, event *entity.FeedingEvent) error {
	return r.v.do(func(st *state) error {
		st.feedings = append(st.feedings, *event)
		return nil
	})
}

func (r *FeedingRepo) List(_ context.Context, limit, offset int) ([]*entity.FeedingEvent, error) {
	var out []*entity.FeedingEvent
	err := r.v.do(func(st *state) error {
		for i := len(st.feedings) - 1 - offset; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			e := st.feedings[i]
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

// ConsumptionRepo gastos de alimento (solo inserción).
type ConsumptionRepo struct{ v view }

func (r *ConsumptionRepo) Create(_ context.Context, rec *entity.ConsumptionRecord) error {
	return r.v.do(func(st *state) error {
		st.consumption = append(st.consumption, *rec)
		return nil
	})
}

func (r *ConsumptionRepo) List(_ context.Context, employeeID string, from, to *time.Time) ([]*entity.ConsumptionRecord, error) {
	var out []*entity.ConsumptionRecord
	err := r.v.do(func(st *state) error {
		for _, c := range st.consumption {
			if employeeID != "" && c.EmployeeID != employeeID {
				continue
			}
			if !inRange(c.Date, from, to) {
				continue
			}
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}

// StockMovementRepo libro de movimientos (solo inserción).
type StockMovementRepo struct{ v view }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.v.do(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByReference(_ context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.do(func(st *state) error {
		for _, m := range st.movements {
			if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) ListByFeed(_ context.Context, feedID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.do(func(st *state) error {
		skipped := 0
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.FeedID != feedID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

// inRange from/to nil = sin límite; ambos inclusivos.
func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
