package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaStage reads structured metadata: Open Graph first, then Twitter cards,
// then schema.org itemprops. It is the primary extractor for domains without
// a tuned selector set and the first fallback for those with one.
func metaStage() stage {
	return stage{name: "meta", run: func(snap *Snapshot) ProductInfo {
		doc := snap.Doc
		info := ProductInfo{
			Title: strPtr(metaContent(doc,
				`meta[property="og:title"]`,
				`meta[name="twitter:title"]`,
				`meta[itemprop="name"]`,
			)),
			Price: strPtr(metaContent(doc,
				`meta[property="product:price:amount"]`,
				`meta[property="og:price:amount"]`,
				`meta[itemprop="price"]`,
				`[itemprop="price"]`,
			)),
			Description: strPtr(metaContent(doc,
				`meta[property="og:description"]`,
				`meta[name="description"]`,
			)),
		}

		if info.Title == nil {
			if t := snap.Title(); t != "" && !placeholderTitle(t) {
				info.Title = strPtr(t)
			}
		}

		image := metaContent(doc,
			`meta[property="og:image"]`,
			`meta[name="twitter:image"]`,
			`meta[itemprop="image"]`,
		)
		if image == "" {
			image = largestImage(snap, false)
		} else {
			image = snap.ResolveURL(image)
		}
		info.Image = strPtr(image)
		return info
	}}
}

// metaContent returns the first non-empty content attribute (or, for
// non-meta itemprop nodes, text) across the given selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if content, ok := node.Attr("content"); ok {
			if c := collapseSpace(content); c != "" {
				return c
			}
			continue
		}
		if text := collapseSpace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

// Titles served by anti-bot walls and error pages. A document title carrying
// one of these is worse than no title at all.
var placeholderTitleMarkers = []string{
	"just a moment",
	"attention required",
	"access denied",
	"page not found",
	"404",
	"robot check",
}

func placeholderTitle(title string) bool {
	t := strings.ToLower(title)
	for _, marker := range placeholderTitleMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}
