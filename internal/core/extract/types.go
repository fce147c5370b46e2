package extract

import "strings"

// ProductInfo is the result of one extraction. Any field may be nil; a
// partial result is still a success — callers decide what to do with gaps.
type ProductInfo struct {
	Title       *string `json:"title"`
	Price       *string `json:"price"`
	Image       *string `json:"image"`
	Description *string `json:"description,omitempty"`
}

func (p ProductInfo) TitleOr(def string) string {
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		return def
	}
	return strings.TrimSpace(*p.Title)
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// merge fills gaps in dst from src. Earlier stages are more targeted, so a
// populated field is never overwritten — with one exception: a title that
// merely echoes the hostname is treated as a gap and yields to a later
// stage's real title.
func merge(dst, src ProductInfo, host string) ProductInfo {
	if dst.Title == nil || (titleDomainLike(dst.Title, host) && !titleDomainLike(src.Title, host)) {
		if src.Title != nil {
			dst.Title = src.Title
		}
	}
	if dst.Price == nil {
		dst.Price = src.Price
	}
	if dst.Image == nil {
		dst.Image = src.Image
	}
	if dst.Description == nil {
		dst.Description = src.Description
	}
	return dst
}

// titleDomainLike reports whether a recovered title is empty or just echoes
// the page's hostname — the signature of a login wall or error page.
func titleDomainLike(title *string, host string) bool {
	if title == nil {
		return true
	}
	t := strings.ToLower(strings.TrimSpace(*title))
	if t == "" {
		return true
	}
	host = strings.ToLower(host)
	bare := strings.TrimPrefix(host, "www.")
	if strings.Contains(t, host) || strings.Contains(t, bare) {
		return true
	}
	// "rozetka.com.ua" vs a title of just "rozetka"
	if i := strings.IndexByte(bare, '.'); i > 0 && t == bare[:i] {
		return true
	}
	return false
}
