package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCardDetails(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		card := generateCardDetails(now)

		assert.Len(t, card.Number, 16)
		assert.Contains(t, []byte{'4', '5'}, card.Number[0])
		assert.True(t, validateLuhn(card.Number), "card %s fails Luhn", card.Number)
		assert.Len(t, card.CVV, 3)
		assert.Equal(t, "03/29", card.Expiry)
	}
}

func TestValidateLuhn(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"known valid visa", "4532015112830366", true},
		{"check digit off by one", "4532015112830367", false},
		{"too short", "453201", false},
		{"non-digit characters", "4532a15112830366", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validateLuhn(tt.number))
		})
	}
}
