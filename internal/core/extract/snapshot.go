package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot is everything the extractor stages are allowed to see: the page
// captured once, after navigation and ready-wait. Stages are pure functions
// over a Snapshot, which keeps them deterministic and fixture-testable.
type Snapshot struct {
	// URL is the final page URL after redirects.
	URL string
	Doc *goquery.Document
	// Images carries rendered metrics evaluated in the page, since parsed
	// HTML alone cannot tell a hero shot from a tracking pixel.
	Images []ImageInfo

	base *url.URL
}

// ImageInfo is one <img> as the browser rendered it.
type ImageInfo struct {
	Src           string
	Width, Height int
	Area          float64
	Visible       bool
	InProductArea bool
}

// NewSnapshot parses the captured HTML. Tests build snapshots from fixture
// strings the same way the browser session does from live pages.
func NewSnapshot(pageURL, html string, images []ImageInfo) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	return &Snapshot{URL: pageURL, Doc: doc, Images: images, base: base}, nil
}

// ResolveURL makes a protocol-relative or root-relative reference absolute
// against the page's own origin. A relative URL never leaves the pipeline.
func (s *Snapshot) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return s.base.ResolveReference(u).String()
}

// Title returns the trimmed document title.
func (s *Snapshot) Title() string {
	return strings.TrimSpace(s.Doc.Find("title").First().Text())
}

// VisibleText approximates the page's rendered text, for regex price sweeps.
func (s *Snapshot) VisibleText() string {
	body := s.Doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return body.Text()
}

// Hostname of the final page URL, lowercased.
func (s *Snapshot) Hostname() string {
	return strings.ToLower(s.base.Hostname())
}
