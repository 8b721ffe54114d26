package services

import (
	"testing"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/stretchr/testify/assert"
)

func TestOpenWorkflowAllowsEveryStatus(t *testing.T) {
	wf := OpenWorkflow()

	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			assert.True(t, wf.allows(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, wf.allows(models.OrderStatusPending, "shipped"))
	assert.Nil(t, wf.Sources(models.OrderStatusDelivered))
}

func TestStrictWorkflow(t *testing.T) {
	wf := StrictWorkflow()

	assert.True(t, wf.allows(models.OrderStatusPending, models.OrderStatusConfirmed))
	assert.True(t, wf.allows(models.OrderStatusReady, models.OrderStatusReady))
	assert.True(t, wf.allows(models.OrderStatusCanceledStaff, models.OrderStatusPending))
	assert.False(t, wf.allows(models.OrderStatusPending, models.OrderStatusDelivered))
	assert.False(t, wf.allows(models.OrderStatusReturned, models.OrderStatusPending))

	assert.ElementsMatch(t, []models.OrderStatus{
		models.OrderStatusOnTheWay,
		models.OrderStatusDelivered,
	}, wf.Sources(models.OrderStatusDelivered))
}

func TestWorkflowSourcesMatchAllowedMoves(t *testing.T) {
	wf := StrictWorkflow()

	for _, to := range models.OrderStatuses {
		sources := wf.Sources(to)
		for _, from := range models.OrderStatuses {
			assert.Equal(t, wf.allows(from, to), contains(sources, from), "%s -> %s", from, to)
		}
	}
}

func contains(statuses []models.OrderStatus, st models.OrderStatus) bool {
	for _, s := range statuses {
		if s == st {
			return true
		}
	}
	return false
}
