package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo pedidos y líneas en memoria.
type PurchaseOrderRepo struct{ v view }

func (r *PurchaseOrderRepo) Create(_ context.Context, order *entity.PurchaseOrder) error {
	return r.v.do(func(st *state) error {
		if orderIndex(st, order.ID) >= 0 {
			return domain.ErrDuplicate
		}
		o := *order
		o.Items = nil
		st.orders = append(st.orders, o)
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.v.do(func(st *state) error {
		i := orderIndex(st, id)
		if i < 0 {
			return nil
		}
		o := st.orders[i]
		o.Items = itemsOf(st, id)
		out = &o
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) GetForUpdate(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.v.do(func(st *state) error {
		if i := orderIndex(st, id); i >= 0 {
			o := st.orders[i]
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) FindOpenForUpdate(_ context.Context, supplier, employeeID string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.v.do(func(st *state) error {
		for i := len(st.orders) - 1; i >= 0; i-- {
			o := st.orders[i]
			if o.Supplier == supplier && o.EmployeeID == employeeID && o.Status == entity.PurchaseStatusSubmitted {
				out = &o
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) UpsertLineItem(_ context.Context, orderID, feedID string, quantity decimal.Decimal) (*entity.PurchaseLineItem, error) {
	var out *entity.PurchaseLineItem
	err := r.v.do(func(st *state) error {
		if orderIndex(st, orderID) < 0 {
			return domain.ErrNotFound
		}
		if _, ok := st.feeds[feedID]; !ok {
			return domain.ErrNotFound
		}
		items := st.items[orderID]
		for i := range items {
			if items[i].FeedID == feedID {
				items[i].Quantity = items[i].Quantity.Add(quantity)
				it := items[i]
				out = &it
				return nil
			}
		}
		it := entity.PurchaseLineItem{ID: uuid.New().String(), OrderID: orderID, FeedID: feedID, Quantity: quantity}
		st.items[orderID] = append(items, it)
		out = &it
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) ListItems(_ context.Context, orderID string) ([]entity.PurchaseLineItem, error) {
	var out []entity.PurchaseLineItem
	err := r.v.do(func(st *state) error {
		out = itemsOf(st, orderID)
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, id string, status entity.PurchaseStatus, deliveredAt *time.Time) error {
	return r.v.do(func(st *state) error {
		i := orderIndex(st, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		st.orders[i].Status = status
		if deliveredAt != nil {
			t := *deliveredAt
			st.orders[i].DeliveredAt = &t
		}
		st.orders[i].UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *PurchaseOrderRepo) List(_ context.Context, filter repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.v.do(func(st *state) error {
		skipped := 0
		for i := len(st.orders) - 1; i >= 0; i-- {
			o := st.orders[i]
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			if skipped < filter.Offset {
				skipped++
				continue
			}
			if filter.Limit > 0 && len(out) >= filter.Limit {
				break
			}
			o.Items = itemsOf(st, o.ID)
			out = append(out, &o)
		}
		return nil
	})
	return out, err
}

func orderIndex(st *state, id string) int {
	for i := range st.orders {
		if st.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// itemsOf copia las líneas del pedido con nombre y unidad del alimento resueltos.
func itemsOf(st *state, orderID string) []entity.PurchaseLineItem {
	src := st.items[orderID]
	out := make([]entity.PurchaseLineItem, 0, len(src))
	for _, it := range src {
		if f, ok := st.feeds[it.FeedID]; ok {
			it.FeedName = f.Name
			it.Unit = f.Unit
		}
		out = append(out, it)
	}
	return out
}
