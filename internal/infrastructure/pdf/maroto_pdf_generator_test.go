package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

func TestGeneratePurchaseOrderPDF(t *testing.T) {
	order := &entity.PurchaseOrder{
		ID:          "3f2b8a10-7c1d-4e55-9a0b-5d2f1c3e4b6a",
		Supplier:    "AgroSur",
		Status:      entity.PurchaseStatusSubmitted,
		RequestDate: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
		Items: []entity.PurchaseLineItem{
			{FeedID: "f1", FeedName: "Heno", Unit: "kg", Quantity: decimal.NewFromInt(120)},
			{FeedID: "f2", FeedName: "Carne", Unit: "kg", Quantity: decimal.RequireFromString("35.5")},
		},
	}
	requester := &entity.Employee{FullName: "Ana Pérez", Username: "ana", Phone: "555-0101"}

	out, err := NewMarotoPDFGenerator("Zoo Central").GeneratePurchaseOrderPDF(context.Background(), order, requester)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGeneratePurchaseOrderPDF_WithoutRequester(t *testing.T) {
	order := &entity.PurchaseOrder{
		ID:       "a1",
		Supplier: "AgroSur",
		Status:   entity.PurchaseStatusDelivered,
		Items:    []entity.PurchaseLineItem{{FeedID: "f1", Quantity: decimal.NewFromInt(1)}},
	}

	out, err := NewMarotoPDFGenerator("").GeneratePurchaseOrderPDF(context.Background(), order, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2b8a10", shortID("3f2b8a10-7c1d"))
	assert.Equal(t, "abc", shortID("abc"))
}
