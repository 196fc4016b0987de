package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

func TestPrometheus_Counters(t *testing.T) {
	p := NewPrometheus(false)

	p.StockCredited("hay", decimal.NewFromInt(5))
	p.StockCredited("hay", decimal.RequireFromString("2.5"))
	p.StockDebited("meat", decimal.NewFromInt(3))
	p.InsufficientStock("meat")
	p.OrderTransitioned(entity.PurchaseStatusPending, entity.PurchaseStatusDelivered)
	p.FeedingRecorded("lion")
	p.FeedingRecorded("lion")

	assert.InDelta(t, 7.5, testutil.ToFloat64(p.stockCredited.WithLabelValues("hay")), 1e-9)
	assert.InDelta(t, 3.0, testutil.ToFloat64(p.stockDebited.WithLabelValues("meat")), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.insufficientStock.WithLabelValues("meat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.orderTransitions.WithLabelValues("PENDING", "DELIVERED")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.feedings.WithLabelValues("lion")))
}

func TestPrometheus_Handler(t *testing.T) {
	p := NewPrometheus(false)
	p.FeedingRecorded("zebra")

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `zoo_feedings_total{species="zebra"} 1`), body)
}
