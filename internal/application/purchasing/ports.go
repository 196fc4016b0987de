package purchasing

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// PurchaseOrderPDFGenerator puerto de salida para la hoja imprimible de un pedido.
// La implementación vive en infrastructure/pdf.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, order *entity.PurchaseOrder, requester *entity.Employee) ([]byte, error)
}
