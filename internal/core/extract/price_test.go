package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"ukrainian space grouped", "1 234,56 грн", 1234.56, true},
		{"us comma grouped", "$1,299.99", 1299.99, true},
		{"european comma decimal", "€99,90", 99.90, true},
		{"european dot grouped", "1.234,56", 1234.56, true},
		{"plain integer", "2599 ₴", 2599, true},
		{"nbsp grouped", "12 499 грн", 12499, true},
		{"comma thousands only", "1,234,567", 1234567, true},
		{"bare decimal", "49.99", 49.99, true},
		{"no digits", "free", 0, false},
		{"empty", "", 0, false},
		{"currency only", "$", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizePrice(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestNormalizePriceIsDeterministic(t *testing.T) {
	t.Parallel()

	a, okA := NormalizePrice("1 234,56 грн")
	b, okB := NormalizePrice("1 234,56 грн")
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}

func TestSweepPrice(t *testing.T) {
	t.Parallel()

	t.Run("currency prefix", func(t *testing.T) {
		t.Parallel()
		got := sweepPrice("Limited offer $1,299.99 today only", false)
		assert.Equal(t, "$1,299.99", got)
	})

	t.Run("hryvnia suffix", func(t *testing.T) {
		t.Parallel()
		got := sweepPrice("Ціна на сайті 12 499 грн з доставкою", false)
		assert.Equal(t, "12 499 грн", got)
	})

	t.Run("price label", func(t *testing.T) {
		t.Parallel()
		got := sweepPrice("shipping info... Price: 49.99 more text", false)
		v, ok := NormalizePrice(got)
		assert.True(t, ok)
		assert.InDelta(t, 49.99, v, 0.001)
	})

	t.Run("vid form only when widened", func(t *testing.T) {
		t.Parallel()
		text := "Пропозиції від 1 234 у продавців"
		assert.Empty(t, sweepPrice(text, false))
		got := sweepPrice(text, true)
		v, ok := NormalizePrice(got)
		assert.True(t, ok)
		assert.InDelta(t, 1234, v, 0.001)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, sweepPrice("nothing for sale here", true))
	})
}
