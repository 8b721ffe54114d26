package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0, 20)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = normalizePage(3, 500, 20)
	assert.Equal(t, 3, page)
	assert.Equal(t, 500, limit)
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page, limit int
		offset      int
		ok          bool
	}{
		{1, 10, 0, true},
		{3, 10, 20, true},
		{1, math.MaxInt, 0, true},
		{2, math.MaxInt, math.MaxInt, true},
		{3, math.MaxInt, 0, false},
		{1 << 62, 4, 0, false},
		{math.MaxInt, 1, math.MaxInt - 1, true},
	}
	for _, tt := range tests {
		offset, ok := pageOffset(tt.page, tt.limit)
		assert.Equal(t, tt.ok, ok, "page %d limit %d", tt.page, tt.limit)
		assert.Equal(t, tt.offset, offset, "page %d limit %d", tt.page, tt.limit)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 1, totalPages(5, math.MaxInt))
	assert.Equal(t, 0, totalPages(5, 0))
}
