// Package pdf genera la hoja imprimible de un pedido de compra de alimento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Zoológico + título  │  N° Pedido + Fecha + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR / SOLICITANTE                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Alimento | Unidad | Cantidad                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL de líneas y cantidad                                 │
//	│  FOOTER: QR con el id del pedido + firma de recepción       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/zoo-api/internal/application/purchasing"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

var _ purchasing.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 100, Blue: 54}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa purchasing.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	orgName string
}

// NewMarotoPDFGenerator construye el generador. orgName encabeza la hoja.
func NewMarotoPDFGenerator(orgName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{orgName: nonEmpty(orgName, "Zoo")}
}

// GeneratePurchaseOrderPDF genera el PDF y devuelve sus bytes. requester puede ser nil.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(
	_ context.Context,
	order *entity.PurchaseOrder,
	requester *entity.Employee,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pedido de alimento "+order.ID, true).
		WithAuthor(g.orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(order, requester))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(order *entity.PurchaseOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.orgName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pedido de alimento", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+order.RequestDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+order.Status.String(), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func partiesRow(order *entity.PurchaseOrder, requester *entity.Employee) core.Row {
	name, phone := "—", "—"
	if requester != nil {
		name = nonEmpty(requester.FullName, requester.Username)
		phone = nonEmpty(requester.Phone, "—")
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.Supplier, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
		col.New(6).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Size: 10, Top: 6}),
			text.New("Tel: "+phone, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Alimento", 6, align.Left),
		h("Unidad", 2, align.Center),
		h("Cantidad", 3, align.Right),
	)
}

func tableItemRows(items []entity.PurchaseLineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nonEmpty(it.FeedName, it.FeedID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Unit, entity.DefaultFeedUnit), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(order *entity.PurchaseOrder) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New(fmt.Sprintf("Líneas: %d", len(order.Items)), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
		col.New(3).Add(text.New("Total: "+order.TotalQuantity().String(), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func footerRow(order *entity.PurchaseOrder) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(order.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Recibido por: ______________________________", props.Text{
				Size: 9, Top: 10, Left: 3,
			}),
			text.New("Fecha de recepción: ____/____/________", props.Text{
				Size: 9, Top: 20, Left: 3,
			}),
			text.New("Verifique cantidades contra este pedido antes de firmar.", props.Text{
				Size: 7, Top: 30, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
