package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHost(t *testing.T) {
	t.Parallel()

	t.Run("known retailers by containment", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			host string
			want Retailer
		}{
			{"rozetka.com.ua", "rozetka"},
			{"m.rozetka.com.ua", "rozetka"},
			{"prom.ua", "prom"},
			{"www.amazon.de", "amazon"},
			{"aliexpress.ru", "aliexpress"},
			{"shop.comfy.ua", "comfy"},
		}
		for _, tt := range tests {
			got, err := ClassifyHost(tt.host)
			require.NoError(t, err, tt.host)
			assert.Equal(t, tt.want, got, tt.host)
		}
	})

	t.Run("unknown host falls through to generic", func(t *testing.T) {
		t.Parallel()
		got, err := ClassifyHost("shop.unknownsite.io")
		require.NoError(t, err)
		assert.Equal(t, RetailerGeneric, got)
	})

	t.Run("denylisted hosts are rejected", func(t *testing.T) {
		t.Parallel()
		for _, host := range []string{"facebook.com", "www.instagram.com", "m.youtube.com", "x.com"} {
			_, err := ClassifyHost(host)
			assert.ErrorIs(t, err, ErrUnsupportedDomain, host)
		}
	})

	t.Run("denylist matches whole labels only", func(t *testing.T) {
		t.Parallel()
		// notx.com merely ends in "x.com" as a string, not as a label
		got, err := ClassifyHost("notx.com")
		require.NoError(t, err)
		assert.Equal(t, RetailerGeneric, got)
	})

	t.Run("case and trailing dot insensitive", func(t *testing.T) {
		t.Parallel()
		got, err := ClassifyHost("ROZETKA.COM.UA.")
		require.NoError(t, err)
		assert.Equal(t, Retailer("rozetka"), got)
	})
}
