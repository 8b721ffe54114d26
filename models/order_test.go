package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountsAsRevenue(t *testing.T) {
	for _, st := range OrderStatuses {
		want := st == OrderStatusConfirmed || st == OrderStatusDelivered
		assert.Equal(t, want, st.CountsAsRevenue(), st)
	}
	assert.False(t, OrderStatus("shipped").CountsAsRevenue())
}
