package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo reportes calculados sobre el estado en memoria.
type AnalyticsRepo struct{ v view }

func (r *AnalyticsRepo) PurchasesByStatus(_ context.Context, month string) ([]repository.StatusCount, error) {
	counts := map[entity.PurchaseStatus]int{}
	err := r.v.do(func(st *state) error {
		for _, o := range st.orders {
			if month != "" && o.RequestDate.Format("2006-01") != month {
				continue
			}
			counts[o.Status]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.StatusCount, 0, len(counts))
	for _, s := range entity.PurchaseStatuses {
		if n, ok := counts[s]; ok {
			out = append(out, repository.StatusCount{Status: s, Count: n})
		}
	}
	return out, nil
}

func (r *AnalyticsRepo) ConsumptionByEmployee(_ context.Context, from, to *time.Time) ([]repository.ConsumptionTotal, error) {
	return r.totals(from, to, func(st *state, c entity.ConsumptionRecord) (string, string, string) {
		label := c.EmployeeID
		if e, ok := st.employees[c.EmployeeID]; ok {
			label = e.FullName
		}
		return c.EmployeeID, label, ""
	})
}

func (r *AnalyticsRepo) ConsumptionByFeed(_ context.Context, from, to *time.Time) ([]repository.ConsumptionTotal, error) {
	return r.totals(from, to, func(st *state, c entity.ConsumptionRecord) (string, string, string) {
		f := st.feeds[c.FeedID]
		return c.FeedID, f.Name, f.Unit
	})
}

func (r *AnalyticsRepo) totals(from, to *time.Time, key func(*state, entity.ConsumptionRecord) (string, string, string)) ([]repository.ConsumptionTotal, error) {
	byKey := map[string]*repository.ConsumptionTotal{}
	err := r.v.do(func(st *state) error {
		for _, c := range st.consumption {
			if !inRange(c.Date, from, to) {
				continue
			}
			k, label, unit := key(st, c)
			t, ok := byKey[k]
			if !ok {
				t = &repository.ConsumptionTotal{Key: k, Label: label, Unit: unit, Total: decimal.Zero}
				byKey[k] = t
			}
			t.Total = t.Total.Add(c.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.ConsumptionTotal, 0, len(byKey))
	for _, t := range byKey {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Label < out[j].Label
	})
	return out, nil
}

func (r *AnalyticsRepo) ConsumptionDetail(_ context.Context, employeeID string, from, to *time.Time) ([]repository.ConsumptionLine, error) {
	var out []repository.ConsumptionLine
	err := r.v.do(func(st *state) error {
		for _, c := range st.consumption {
			if employeeID != "" && c.EmployeeID != employeeID {
				continue
			}
			if !inRange(c.Date, from, to) {
				continue
			}
			f := st.feeds[c.FeedID]
			out = append(out, repository.ConsumptionLine{
				ID:           c.ID,
				Date:         c.Date,
				EmployeeName: st.employees[c.EmployeeID].FullName,
				FeedName:     f.Name,
				Unit:         f.Unit,
				Quantity:     c.Quantity,
			})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}

func (r *AnalyticsRepo) FeedDemand(_ context.Context) ([]repository.FeedDemand, error) {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	err := r.v.do(func(st *state) error {
		for _, ra := range st.rations {
			sums[ra.FeedID] = sums[ra.FeedID].Add(ra.Amount)
			counts[ra.FeedID]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.FeedDemand, 0, len(sums))
	for feedID, sum := range sums {
		n := counts[feedID]
		out = append(out, repository.FeedDemand{
			FeedID:        feedID,
			AverageAmount: sum.Div(decimal.NewFromInt(int64(n))),
			RationCount:   n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FeedID < out[j].FeedID })
	return out, nil
}

func (r *AnalyticsRepo) FaultsByStatus(_ context.Context, place string, from, to *time.Time) ([]repository.FaultStatusCount, error) {
	counts := map[entity.MalfunctionStatus]int{}
	err := r.v.do(func(st *state) error {
		for _, m := range st.faults {
			if matchesFault(m, place, from, to) {
				counts[m.Status]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.FaultStatusCount, 0, len(counts))
	for _, s := range entity.MalfunctionStatuses {
		if n, ok := counts[s]; ok {
			out = append(out, repository.FaultStatusCount{Status: s, Count: n})
		}
	}
	return out, nil
}
