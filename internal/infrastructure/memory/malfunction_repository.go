package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

var _ repository.MalfunctionRepository = (*MalfunctionRepo)(nil)

// MalfunctionRepo averías de instalaciones.
type MalfunctionRepo struct{ v view }

func (r *MalfunctionRepo) Create(_ context.Context, m *entity.Malfunction) error {
	return r.v.do(func(st *state) error {
		c := *m
		c.EmployeeName = ""
		st.faults = append(st.faults, c)
		return nil
	})
}

func (r *MalfunctionRepo) GetByID(_ context.Context, id string) (*entity.Malfunction, error) {
	var out *entity.Malfunction
	err := r.v.do(func(st *state) error {
		for _, m := range st.faults {
			if m.ID == id {
				m.EmployeeName = st.employees[m.EmployeeID].FullName
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MalfunctionRepo) TransitionStatus(_ context.Context, id string, from, to entity.MalfunctionStatus, resolvedAt *time.Time) (bool, error) {
	changed := false
	err := r.v.do(func(st *state) error {
		for i := range st.faults {
			m := &st.faults[i]
			if m.ID != id || m.Status != from {
				continue
			}
			m.Status = to
			if resolvedAt != nil {
				t := *resolvedAt
				m.ResolvedAt = &t
			}
			changed = true
			return nil
		}
		return nil
	})
	return changed, err
}

func (r *MalfunctionRepo) List(_ context.Context, filter repository.MalfunctionFilter) ([]*entity.Malfunction, error) {
	var out []*entity.Malfunction
	err := r.v.do(func(st *state) error {
		var matched []entity.Malfunction
		for _, m := range st.faults {
			if !matchesFault(m, filter.Place, filter.From, filter.To) {
				continue
			}
			if filter.Status != "" && m.Status != filter.Status {
				continue
			}
			matched = append(matched, m)
		}
		// Igual que Postgres: created_at DESC, id DESC.
		sort.Slice(matched, func(i, j int) bool {
			if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
				return matched[i].CreatedAt.After(matched[j].CreatedAt)
			}
			return matched[i].ID > matched[j].ID
		})
		if filter.Offset < 0 {
			filter.Offset = 0
		}
		if filter.Offset >= len(matched) {
			return nil
		}
		matched = matched[filter.Offset:]
		if filter.Limit > 0 && len(matched) > filter.Limit {
			matched = matched[:filter.Limit]
		}
		for i := range matched {
			m := matched[i]
			m.EmployeeName = st.employees[m.EmployeeID].FullName
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func matchesFault(m entity.Malfunction, place string, from, to *time.Time) bool {
	if place != "" && m.Place != place {
		return false
	}
	return inRange(m.CreatedAt, from, to)
}
