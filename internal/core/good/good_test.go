package good

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist/internal/core/extract"
)

func strPtr(s string) *string { return &s }

func TestFromProductInfo(t *testing.T) {
	t.Parallel()

	t.Run("full extraction result", func(t *testing.T) {
		t.Parallel()
		info := extract.ProductInfo{
			Title: strPtr("Lego Millennium Falcon"),
			Price: strPtr("8 499 грн"),
			Image: strPtr("https://cdn.shop/falcon.jpg"),
		}
		g := FromProductInfo("https://shop/falcon", info)

		assert.Equal(t, "https://shop/falcon", g.URL)
		assert.Equal(t, "Lego Millennium Falcon", g.Name)
		require.NotNil(t, g.Price)
		assert.InDelta(t, 8499, *g.Price, 0.001)
		require.NotNil(t, g.ImageURL)
		assert.Equal(t, "https://cdn.shop/falcon.jpg", *g.ImageURL)
	})

	t.Run("empty result keeps the placeholder name", func(t *testing.T) {
		t.Parallel()
		g := FromProductInfo("https://shop/mystery", extract.ProductInfo{})

		assert.Equal(t, NamePlaceholder, g.Name)
		assert.Nil(t, g.Price)
		assert.Nil(t, g.ImageURL)
	})

	t.Run("unparseable price stays nil", func(t *testing.T) {
		t.Parallel()
		info := extract.ProductInfo{
			Title: strPtr("Gift Card"),
			Price: strPtr("договірна"),
		}
		g := FromProductInfo("https://shop/card", info)

		assert.Equal(t, "Gift Card", g.Name)
		assert.Nil(t, g.Price)
	})

	t.Run("blank title falls back to placeholder", func(t *testing.T) {
		t.Parallel()
		info := extract.ProductInfo{Title: strPtr("   ")}
		g := FromProductInfo("https://shop/x", info)
		assert.Equal(t, NamePlaceholder, g.Name)
	})
}
