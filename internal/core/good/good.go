package good

import (
	"time"

	"wishlist/internal/core/extract"
)

// NamePlaceholder fills in for pages where no title could be recovered; a
// wishlist entry must always render with some name.
const NamePlaceholder = "Подарунок"

// Good is one wishlist entry built from an extraction result.
type Good struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Price     *float64  `json:"price"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromProductInfo maps an extraction result onto a Good: name defaults to
// the placeholder, the raw price string is normalized to a number or nil.
func FromProductInfo(url string, info extract.ProductInfo) Good {
	g := Good{
		URL:      url,
		Name:     info.TitleOr(NamePlaceholder),
		ImageURL: info.Image,
	}
	if info.Price != nil {
		if v, ok := extract.NormalizePrice(*info.Price); ok {
			g.Price = &v
		}
	}
	return g
}
