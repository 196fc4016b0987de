package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

func TestParsePurchaseStatus_VocabulariosHistoricos(t *testing.T) {
	cases := map[string]entity.PurchaseStatus{
		"SUBMITTED":   entity.PurchaseStatusSubmitted,
		"pending":     entity.PurchaseStatusPending,
		"In Progress": entity.PurchaseStatusInProgress,
		"IN_PROGRESS": entity.PurchaseStatusInProgress,
		" Delivered ": entity.PurchaseStatusDelivered,
		"Доставлено":  entity.PurchaseStatusDelivered,
		"В процессе":  entity.PurchaseStatusInProgress,
		"Подана":      entity.PurchaseStatusSubmitted,
	}
	for in, want := range cases {
		got, ok := entity.ParsePurchaseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := entity.ParsePurchaseStatus("cancelled")
	assert.False(t, ok, "estados fuera del enum se rechazan")
}

func TestPurchaseStatus_TransicionesMonotonicas(t *testing.T) {
	s := entity.PurchaseStatusSubmitted
	assert.True(t, s.CanTransitionTo(entity.PurchaseStatusPending))
	assert.True(t, s.CanTransitionTo(entity.PurchaseStatusInProgress))
	assert.True(t, s.CanTransitionTo(entity.PurchaseStatusDelivered))
	assert.False(t, s.CanTransitionTo(entity.PurchaseStatusSubmitted))

	assert.True(t, entity.PurchaseStatusPending.CanTransitionTo(entity.PurchaseStatusInProgress))
	assert.False(t, entity.PurchaseStatusInProgress.CanTransitionTo(entity.PurchaseStatusPending))
	assert.False(t, entity.PurchaseStatusPending.CanTransitionTo(entity.PurchaseStatusSubmitted))

	d := entity.PurchaseStatusDelivered
	assert.True(t, d.CanTransitionTo(entity.PurchaseStatusDelivered), "DELIVERED->DELIVERED es no-op")
	assert.False(t, d.CanTransitionTo(entity.PurchaseStatusInProgress))
	assert.True(t, d.IsTerminal())
}

func TestPurchaseStatus_SoloSubmittedEsEditable(t *testing.T) {
	for _, s := range entity.PurchaseStatuses {
		assert.Equal(t, s == entity.PurchaseStatusSubmitted, s.IsEditable(), s)
	}
}

func TestHasCapability_TablaDeRoles(t *testing.T) {
	assert.True(t, entity.HasCapability(entity.RoleAdmin, entity.CapPurchasesTransit))
	assert.True(t, entity.HasCapability(entity.RoleDirector, entity.CapPurchasesWrite))
	assert.False(t, entity.HasCapability(entity.RoleManager, entity.CapPurchasesWrite))
	assert.True(t, entity.HasCapability(entity.RoleManager, entity.CapPurchasesRead))
	assert.True(t, entity.HasCapability(entity.RoleZootechnician, entity.CapFeedingsRecord))
	assert.False(t, entity.HasCapability(entity.RoleZootechnician, entity.CapAnalyticsRead))
	assert.False(t, entity.HasCapability("desconocido", entity.CapFeedsRead))
}

func TestParseFeedType(t *testing.T) {
	got, ok := entity.ParseFeedType("Комбикорм")
	assert.True(t, ok)
	assert.Equal(t, entity.FeedTypeCompound, got)

	got, ok = entity.ParseFeedType("dry")
	assert.True(t, ok)
	assert.Equal(t, entity.FeedTypeDry, got)

	_, ok = entity.ParseFeedType("liquid")
	assert.False(t, ok)
}
