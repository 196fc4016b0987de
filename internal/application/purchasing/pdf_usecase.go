package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

// PDFUseCase genera la hoja imprimible de un pedido para enviar al proveedor.
type PDFUseCase struct {
	orders    repository.PurchaseOrderRepository
	employees repository.EmployeeRepository
	generator PurchaseOrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	orders repository.PurchaseOrderRepository,
	employees repository.EmployeeRepository,
	generator PurchaseOrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{orders: orders, employees: employees, generator: generator}
}

// DownloadPurchaseOrderPDF devuelve (pdfBytes, filename). domain.ErrNotFound si el pedido no existe;
// domain.ErrInvalidInput si no tiene líneas.
func (uc *PDFUseCase) DownloadPurchaseOrderPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if len(order.Items) == 0 {
		return nil, "", fmt.Errorf("%w: el pedido no tiene líneas", domain.ErrInvalidInput)
	}

	requester, err := uc.employees.GetByID(ctx, order.EmployeeID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empleado: %w", err)
	}

	pdfBytes, err := uc.generator.GeneratePurchaseOrderPDF(ctx, order, requester)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	short := order.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", short), nil
}
