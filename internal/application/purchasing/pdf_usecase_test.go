package purchasing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/purchasing"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

type fakePDF struct {
	order     *entity.PurchaseOrder
	requester *entity.Employee
}

func (f *fakePDF) GeneratePurchaseOrderPDF(_ context.Context, order *entity.PurchaseOrder, requester *entity.Employee) ([]byte, error) {
	f.order, f.requester = order, requester
	return []byte("%PDF-1.4"), nil
}

func TestDownloadPurchaseOrderPDF(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Employees().Create(ctx, &entity.Employee{ID: employeeAna, FullName: "Ana Petrova", Username: "ana", Role: entity.RoleManager}))

	orders := purchasing.NewOrderUseCase(store, store.Repos().Orders, nil)
	gen := &fakePDF{}
	uc := purchasing.NewPDFUseCase(store.Repos().Orders, store.Employees(), gen)

	empty, err := orders.CreateOrder(ctx, supplierA, employeeAna)
	require.NoError(t, err)
	_, _, err = uc.DownloadPurchaseOrderPDF(ctx, empty.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas no hay hoja que imprimir")

	addItem(t, orders, feedHay, "5")
	data, filename, err := uc.DownloadPurchaseOrderPDF(ctx, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Equal(t, "pedido_"+empty.ID[:8]+".pdf", filename)
	require.NotNil(t, gen.requester)
	assert.Equal(t, "Ana Petrova", gen.requester.FullName)
	require.Len(t, gen.order.Items, 1)
	assert.Equal(t, "Hay", gen.order.Items[0].FeedName)

	_, _, err = uc.DownloadPurchaseOrderPDF(ctx, "order-ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
