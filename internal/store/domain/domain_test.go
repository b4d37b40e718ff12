package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"two products", "29.99", "35.99"},
		{"zero subtotal", "0", "0"},
		{"rounds half up", "10.0375", "12.05"},
		{"exact cents", "10.00", "12"},
		{"single cheap product", "0.01", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal := decimal.RequireFromString(tt.subtotal)
			got := OrderTotal(subtotal)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"OrderTotal(%s) = %s, want %s", tt.subtotal, got, tt.want)
		})
	}
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(1))
	assert.True(t, ValidScore(5))
	assert.False(t, ValidScore(6))
	assert.False(t, ValidScore(-1))
}

func TestHashPassword(t *testing.T) {
	h := HashPassword("azerty")

	// SHA-512 hex digest is always 128 characters.
	assert.Len(t, h, 128)
	assert.Equal(t, h, HashPassword("azerty"))
	assert.NotEqual(t, h, HashPassword("azerty2"))
}
