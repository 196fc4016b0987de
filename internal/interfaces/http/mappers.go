package http

import (
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

func toPurchaseOrderDTO(o *entity.PurchaseOrder) dto.PurchaseOrderDTO {
	items := make([]dto.PurchaseLineItemDTO, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, toLineItemDTO(&o.Items[i]))
	}
	return dto.PurchaseOrderDTO{
		ID:            o.ID,
		EmployeeID:    o.EmployeeID,
		Supplier:      o.Supplier,
		Status:        o.Status.String(),
		RequestDate:   o.RequestDate,
		DeliveredAt:   o.DeliveredAt,
		TotalQuantity: o.TotalQuantity(),
		Items:         items,
	}
}

func toLineItemDTO(it *entity.PurchaseLineItem) dto.PurchaseLineItemDTO {
	return dto.PurchaseLineItemDTO{
		ID:       it.ID,
		FeedID:   it.FeedID,
		FeedName: it.FeedName,
		Unit:     it.Unit,
		Quantity: it.Quantity,
	}
}

func toFeedingDTO(e *entity.FeedingEvent) dto.FeedingDTO {
	return dto.FeedingDTO{
		ID:         e.ID,
		AnimalID:   e.AnimalID,
		EmployeeID: e.EmployeeID,
		FeedID:     e.FeedID,
		Amount:     e.Amount,
		FedAt:      e.FedAt,
	}
}
