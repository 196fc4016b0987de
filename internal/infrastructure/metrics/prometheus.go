// Package metrics publica los contadores de negocio en formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

const namespace = "zoo"

var _ inventory.Metrics = (*Prometheus)(nil)

// Prometheus implementa inventory.Metrics sobre un registry propio.
type Prometheus struct {
	registry          *prometheus.Registry
	stockCredited     *prometheus.CounterVec
	stockDebited      *prometheus.CounterVec
	insufficientStock *prometheus.CounterVec
	orderTransitions  *prometheus.CounterVec
	feedings          *prometheus.CounterVec
}

// NewPrometheus crea y registra los contadores. withRuntime agrega los collectors de proceso y Go.
func NewPrometheus(withRuntime bool) *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		stockCredited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_credited_total",
			Help:      "Cantidad de alimento acreditada a bodega.",
		}, []string{"feed_id"}),
		stockDebited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_debited_total",
			Help:      "Cantidad de alimento descontada de bodega.",
		}, []string{"feed_id"}),
		insufficientStock: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insufficient_stock_total",
			Help:      "Débitos rechazados por falta de existencia.",
		}, []string{"feed_id"}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_order_transitions_total",
			Help:      "Transiciones de estado de pedidos de compra.",
		}, []string{"from", "to"}),
		feedings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedings_total",
			Help:      "Alimentaciones registradas por especie.",
		}, []string{"species"}),
	}
	reg.MustRegister(p.stockCredited, p.stockDebited, p.insufficientStock, p.orderTransitions, p.feedings)
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return p
}

// Handler expone el registry en formato de texto Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry acceso directo (tests).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) StockCredited(feedID string, quantity decimal.Decimal) {
	p.stockCredited.WithLabelValues(feedID).Add(quantity.InexactFloat64())
}

func (p *Prometheus) StockDebited(feedID string, quantity decimal.Decimal) {
	p.stockDebited.WithLabelValues(feedID).Add(quantity.InexactFloat64())
}

func (p *Prometheus) InsufficientStock(feedID string) {
	p.insufficientStock.WithLabelValues(feedID).Inc()
}

func (p *Prometheus) OrderTransitioned(from, to entity.PurchaseStatus) {
	p.orderTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (p *Prometheus) FeedingRecorded(species string) {
	p.feedings.WithLabelValues(species).Inc()
}
