package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSnapshot(t *testing.T, pageURL, html string, images []ImageInfo) *Snapshot {
	t.Helper()
	snap, err := NewSnapshot(pageURL, html, images)
	require.NoError(t, err)
	return snap
}

func mustSelectorSets(t *testing.T) map[Retailer]SelectorSet {
	t.Helper()
	sets, err := loadSelectorSets()
	require.NoError(t, err)
	return sets
}

func TestLoadSelectorSets(t *testing.T) {
	t.Parallel()

	sets := mustSelectorSets(t)
	for _, r := range supportedRetailers {
		set, ok := sets[r]
		require.True(t, ok, "missing selector set for %s", r)
		assert.NotEmpty(t, set.Title, "%s has no title selectors", r)
		assert.NotEmpty(t, set.Price, "%s has no price selectors", r)
		assert.NotEmpty(t, set.Image, "%s has no image selectors", r)
	}
}

func TestSiteStage(t *testing.T) {
	t.Parallel()

	set := mustSelectorSets(t)["rozetka"]

	t.Run("tuned selectors win", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>ROZETKA | Інтернет-магазин</title></head><body>
			<h1 class="product__title">Apple iPhone 15 128GB Black</h1>
			<p class="product-price__big">41 999 ₴</p>
			<img class="picture-container__picture" src="https://content.rozetka.com.ua/goods/images/big/1.jpg">
		</body></html>`
		snap := mustSnapshot(t, "https://rozetka.com.ua/p1/", html, nil)

		info := siteStage(set).run(snap)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Apple iPhone 15 128GB Black", *info.Title)
		require.NotNil(t, info.Price)
		assert.Equal(t, "41 999 ₴", *info.Price)
		require.NotNil(t, info.Image)
		assert.Equal(t, "https://content.rozetka.com.ua/goods/images/big/1.jpg", *info.Image)
	})

	t.Run("selector misses cascade down the list", func(t *testing.T) {
		t.Parallel()
		// no product__title, plain h1 is further down the cascade
		html := `<html><body><h1>Samsung Galaxy S24</h1></body></html>`
		snap := mustSnapshot(t, "https://rozetka.com.ua/p2/", html, nil)

		info := siteStage(set).run(snap)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Samsung Galaxy S24", *info.Title)
		assert.Nil(t, info.Image)
	})

	t.Run("price falls back to text sweep", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<h1 class="product__title">Чайник електричний</h1>
			<div class="buy-box">Ціна: 1 099 грн</div>
		</body></html>`
		snap := mustSnapshot(t, "https://rozetka.com.ua/p3/", html, nil)

		info := siteStage(set).run(snap)
		require.NotNil(t, info.Price)
		v, ok := NormalizePrice(*info.Price)
		require.True(t, ok)
		assert.InDelta(t, 1099, v, 0.001)
	})

	t.Run("relative image sources are absolutized", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			src  string
			want string
		}{
			{"protocol relative", "//cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
			{"root relative", "/img/a.jpg", "https://rozetka.com.ua/img/a.jpg"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				html := `<html><body><img class="picture-container__picture" src="` + tt.src + `"></body></html>`
				snap := mustSnapshot(t, "https://rozetka.com.ua/p/", html, nil)
				info := siteStage(set).run(snap)
				require.NotNil(t, info.Image)
				assert.Equal(t, tt.want, *info.Image)
			})
		}
	})

	t.Run("lazy loaded image uses data-src", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><img class="picture-container__picture" src="data:image/gif;base64,R0lGOD" data-src="/goods/2.jpg"></body></html>`
		snap := mustSnapshot(t, "https://rozetka.com.ua/p/", html, nil)
		info := siteStage(set).run(snap)
		require.NotNil(t, info.Image)
		assert.Equal(t, "https://rozetka.com.ua/goods/2.jpg", *info.Image)
	})
}

func TestMetaStage(t *testing.T) {
	t.Parallel()

	t.Run("open graph fields", func(t *testing.T) {
		t.Parallel()
		html := `<html><head>
			<meta property="og:title" content="Wireless Mouse MX3">
			<meta property="product:price:amount" content="49.99">
			<meta property="og:image" content="https://shop.example.com/mx3.jpg">
			<meta property="og:description" content="Ergonomic wireless mouse">
		</head><body></body></html>`
		snap := mustSnapshot(t, "https://shop.example.com/mx3", html, nil)

		info := metaStage().run(snap)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Wireless Mouse MX3", *info.Title)
		require.NotNil(t, info.Price)
		assert.Equal(t, "49.99", *info.Price)
		require.NotNil(t, info.Image)
		assert.Equal(t, "https://shop.example.com/mx3.jpg", *info.Image)
		require.NotNil(t, info.Description)
		assert.Equal(t, "Ergonomic wireless mouse", *info.Description)
	})

	t.Run("document title fallback", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Настільна лампа LED</title></head><body></body></html>`
		snap := mustSnapshot(t, "https://shop.example.com/lamp", html, nil)

		info := metaStage().run(snap)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Настільна лампа LED", *info.Title)
	})

	t.Run("anti-bot title is rejected", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Just a moment...</title></head><body></body></html>`
		snap := mustSnapshot(t, "https://shop.example.com/x", html, nil)

		info := metaStage().run(snap)
		assert.Nil(t, info.Title)
	})

	t.Run("image falls back to largest rendered", func(t *testing.T) {
		t.Parallel()
		html := `<html><body></body></html>`
		images := []ImageInfo{
			{Src: "/small.jpg", Width: 60, Height: 60, Area: 3600, Visible: true},
			{Src: "/hero.jpg", Width: 600, Height: 400, Area: 240000, Visible: true},
			{Src: "/huge-hidden.jpg", Width: 900, Height: 900, Area: 810000, Visible: false},
		}
		snap := mustSnapshot(t, "https://shop.example.com/x", html, images)

		info := metaStage().run(snap)
		require.NotNil(t, info.Image)
		assert.Equal(t, "https://shop.example.com/hero.jpg", *info.Image)
	})
}

func TestContentStage(t *testing.T) {
	t.Parallel()

	t.Run("first substantial heading wins", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<h2>Кошик</h2>
			<h1>Dyson</h1>
			<h1>Пилосос Dyson V15 Detect</h1>
			<p>Ціна: 29 999 грн</p>
		</body></html>`
		snap := mustSnapshot(t, "https://newshop.example/p", html, nil)

		info := contentStage().run(snap)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Пилосос Dyson V15 Detect", *info.Title)
		require.NotNil(t, info.Price)
	})

	t.Run("navigational headings are skipped", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Generic Shop</title></head><body>
			<h1>Оформлення замовлення</h1>
			<h2>Категорії товарів</h2>
		</body></html>`
		snap := mustSnapshot(t, "https://newshop.example/cart", html, nil)

		info := contentStage().run(snap)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Generic Shop", *info.Title)
	})

	t.Run("product area images preferred over page-wide", func(t *testing.T) {
		t.Parallel()
		images := []ImageInfo{
			{Src: "/banner.jpg", Width: 1200, Height: 300, Area: 360000, Visible: true, InProductArea: false},
			{Src: "/product.jpg", Width: 500, Height: 500, Area: 250000, Visible: true, InProductArea: true},
		}
		snap := mustSnapshot(t, "https://newshop.example/p", `<html><body></body></html>`, images)

		info := contentStage().run(snap)
		require.NotNil(t, info.Image)
		assert.Equal(t, "https://newshop.example/product.jpg", *info.Image)
	})

	t.Run("falls back to page-wide largest without product area", func(t *testing.T) {
		t.Parallel()
		images := []ImageInfo{
			{Src: "/only.jpg", Width: 400, Height: 300, Area: 120000, Visible: true, InProductArea: false},
		}
		snap := mustSnapshot(t, "https://newshop.example/p", `<html><body></body></html>`, images)

		info := contentStage().run(snap)
		require.NotNil(t, info.Image)
		assert.Equal(t, "https://newshop.example/only.jpg", *info.Image)
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("earlier fields are kept", func(t *testing.T) {
		t.Parallel()
		dst := ProductInfo{Title: strPtr("Real Product"), Price: strPtr("100")}
		src := ProductInfo{Title: strPtr("Other"), Price: strPtr("200"), Image: strPtr("https://x/img.jpg")}

		got := merge(dst, src, "shop.example")
		assert.Equal(t, "Real Product", *got.Title)
		assert.Equal(t, "100", *got.Price)
		assert.Equal(t, "https://x/img.jpg", *got.Image)
	})

	t.Run("hostname echo title yields to a real one", func(t *testing.T) {
		t.Parallel()
		dst := ProductInfo{Title: strPtr("rozetka.com.ua"), Price: strPtr("100")}
		src := ProductInfo{Title: strPtr("Navi Kuhonnyi Nizh")}

		got := merge(dst, src, "rozetka.com.ua")
		assert.Equal(t, "Navi Kuhonnyi Nizh", *got.Title)
		assert.Equal(t, "100", *got.Price)
	})
}

func TestTitleDomainLike(t *testing.T) {
	t.Parallel()

	host := "www.rozetka.com.ua"
	assert.True(t, titleDomainLike(nil, host))
	assert.True(t, titleDomainLike(strPtr("  "), host))
	assert.True(t, titleDomainLike(strPtr("ROZETKA.COM.UA — інтернет-магазин"), host))
	assert.True(t, titleDomainLike(strPtr("rozetka"), host))
	assert.False(t, titleDomainLike(strPtr("Apple iPhone 15"), host))
}

func TestJunkImageSrc(t *testing.T) {
	t.Parallel()

	assert.True(t, junkImageSrc("data:image/gif;base64,AAAA"))
	assert.True(t, junkImageSrc("https://cdn.x/logo.svg"))
	assert.True(t, junkImageSrc("https://cdn.x/no-image.png"))
	assert.True(t, junkImageSrc("https://cdn.x/pixel.gif?v=2"))
	assert.False(t, junkImageSrc("https://cdn.x/product-front.jpg"))
}
