package extract

import "github.com/PuerkitoBio/goquery"

// stage is one extractor in the fallback cascade. Stages never fail: a page
// where nothing matches yields an empty ProductInfo, which is expected
// control flow, not an error.
type stage struct {
	name string
	run  func(*Snapshot) ProductInfo
}

// siteStage builds the retailer-specific extractor from its selector set.
// All retailers share this one cascade; they contribute only data.
func siteStage(set SelectorSet) stage {
	return stage{name: "site", run: func(snap *Snapshot) ProductInfo {
		info := ProductInfo{
			Title: strPtr(cascadeText(snap.Doc, set.Title)),
			Image: strPtr(cascadeImage(snap, set.Image)),
		}
		price := cascadeText(snap.Doc, set.Price)
		if price == "" {
			price = sweepPrice(snap.VisibleText(), false)
		}
		info.Price = strPtr(price)
		return info
	}}
}

// cascadeText tries selectors in order and returns the first non-empty,
// whitespace-collapsed text. Misses are silently skipped.
func cascadeText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		text := collapseSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// image source attributes in lookup order; lazy-loading layouts park the
// real URL in data-src before swapping it in.
var imageSrcAttrs = []string{"src", "data-src", "data-lazy-src", "content"}

// cascadeImage tries selectors in order and returns the first resolvable
// image source, absolutized against the page origin.
func cascadeImage(snap *Snapshot, selectors []string) string {
	for _, sel := range selectors {
		node := snap.Doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		for _, attr := range imageSrcAttrs {
			if src, ok := node.Attr(attr); ok {
				if resolved := snap.ResolveURL(src); resolved != "" && !junkImageSrc(resolved) {
					return resolved
				}
			}
		}
	}
	return ""
}
