package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.FeedRepository     = (*FeedRepo)(nil)
	_ repository.RationRepository   = (*RationRepo)(nil)
	_ repository.AnimalRepository   = (*AnimalRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
)

// FeedRepo alimentos en memoria.
type FeedRepo struct{ v view }

func (r *FeedRepo) Create(_ context.Context, feed *entity.Feed) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.feeds[feed.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, f := range st.feeds {
			if f.Name == feed.Name {
				return domain.ErrDuplicate
			}
		}
		st.feeds[feed.ID] = *feed
		return nil
	})
}

func (r *FeedRepo) GetByID(_ context.Context, id string) (*entity.Feed, error) {
	var out *entity.Feed
	err := r.v.do(func(st *state) error {
		if f, ok := st.feeds[id]; ok {
			out = &f
		}
		return nil
	})
	return out, err
}

// GetForUpdate el mutex del Store ya serializa la transacción completa.
func (r *FeedRepo) GetForUpdate(ctx context.Context, id string) (*entity.Feed, error) {
	return r.GetByID(ctx, id)
}

func (r *FeedRepo) AddQuantity(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.v.do(func(st *state) error {
		f, ok := st.feeds[id]
		if !ok {
			return domain.ErrNotFound
		}
		f.Quantity = f.Quantity.Add(delta)
		if f.Quantity.IsNegative() {
			return domain.StorageErr("add feed quantity", errCheckQuantity)
		}
		st.feeds[id] = f
		balance = f.Quantity
		return nil
	})
	return balance, err
}

func (r *FeedRepo) SetQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	return r.v.do(func(st *state) error {
		f, ok := st.feeds[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity.IsNegative() {
			return domain.StorageErr("set feed quantity", errCheckQuantity)
		}
		f.Quantity = quantity
		st.feeds[id] = f
		return nil
	})
}

func (r *FeedRepo) List(_ context.Context, filter repository.FeedFilter) ([]*entity.Feed, error) {
	var out []*entity.Feed
	err := r.v.do(func(st *state) error {
		for _, f := range st.feeds {
			if filter.Type != "" && f.Type != filter.Type {
				continue
			}
			f := f
			out = append(out, &f)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// errCheckQuantity equivalente al CHECK (quantity >= 0) de PostgreSQL.
var errCheckQuantity = fmt.Errorf("feeds_quantity_check: la existencia no puede ser negativa")

// RationRepo raciones en memoria.
type RationRepo struct{ v view }

func (r *RationRepo) GetBySpecies(_ context.Context, species string) (*entity.Ration, error) {
	var out *entity.Ration
	err := r.v.do(func(st *state) error {
		for _, ra := range st.rations {
			if ra.Species == species {
				ra := ra
				out = &ra
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *RationRepo) Upsert(_ context.Context, ration *entity.Ration) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.feeds[ration.FeedID]; !ok {
			return domain.ErrNotFound
		}
		for id, ra := range st.rations {
			if ra.Species == ration.Species {
				delete(st.rations, id)
			}
		}
		st.rations[ration.ID] = *ration
		return nil
	})
}

func (r *RationRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.rations[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.rations, id)
		return nil
	})
}

func (r *RationRepo) List(_ context.Context) ([]*entity.Ration, error) {
	var out []*entity.Ration
	err := r.v.do(func(st *state) error {
		for _, ra := range st.rations {
			ra := ra
			out = append(out, &ra)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Species < out[j].Species })
	return out, err
}

// AnimalRepo animales en memoria (solo lectura para el núcleo).
type AnimalRepo struct{ v view }

func (r *AnimalRepo) GetByID(_ context.Context, id string) (*entity.Animal, error) {
	var out *entity.Animal
	err := r.v.do(func(st *state) error {
		if a, ok := st.animals[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

// EmployeeRepo empleados en memoria.
type EmployeeRepo struct{ v view }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.v.do(func(st *state) error {
		for _, ex := range st.employees {
			if ex.Username == e.Username {
				return domain.ErrDuplicate
			}
		}
		st.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.v.do(func(st *state) error {
		if e, ok := st.employees[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) FindByUsername(_ context.Context, username string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.v.do(func(st *state) error {
		for _, e := range st.employees {
			if e.Username == username {
				e := e
				out = &e
				return nil
			}
		}
		return nil
	})
	return out, err
}
