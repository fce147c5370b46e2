package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// contentStage is the last resort: no selectors matched and the metadata was
// useless, so scan what the page actually shows. Heading-like elements for a
// title, a widened regex sweep for a price, and the biggest image near the
// product area.
func contentStage() stage {
	return stage{name: "content", run: func(snap *Snapshot) ProductInfo {
		info := ProductInfo{
			Title: strPtr(headingTitle(snap)),
			Price: strPtr(sweepPrice(snap.VisibleText(), true)),
		}
		image := largestImage(snap, true)
		if image == "" {
			image = largestImage(snap, false)
		}
		info.Image = strPtr(image)
		return info
	}}
}

const headingSelectors = "h1, h2, h3, .product-title, .product__title, .item-title, .page-title"

// Navigational words that disqualify a heading as a product title. Covers
// the localized storefront chrome seen on the supported retailers.
var navWords = []string{
	"cart", "checkout", "login", "log in", "sign in", "register",
	"category", "categories", "home",
	"кошик", "корзина", "оформлення", "вхід", "увійти",
	"реєстрація", "категорії", "головна",
}

func headingTitle(snap *Snapshot) string {
	var found string
	snap.Doc.Find(headingSelectors).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseSpace(sel.Text())
		if utf8.RuneCountInString(text) <= 5 || navigational(text) {
			return true
		}
		found = text
		return false
	})
	if found != "" {
		return found
	}
	if t := snap.Title(); t != "" && !placeholderTitle(t) {
		return t
	}
	return ""
}

func navigational(text string) bool {
	t := strings.ToLower(text)
	for _, w := range navWords {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
