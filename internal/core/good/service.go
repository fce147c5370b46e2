package good

import (
	"context"
	"fmt"

	"wishlist/internal/core/extract"
	"wishlist/internal/logger"
)

// Service stores wishlist goods, resolving product details through the
// extraction pipeline before persisting.
type Service struct {
	log       *logger.Logger
	repo      *Repository
	extractor *extract.Service
}

func NewService(repo *Repository, extractor *extract.Service) *Service {
	return &Service{
		log:       logger.New("GoodService"),
		repo:      repo,
		extractor: extractor,
	}
}

// CreateFromURL extracts product info for the URL and stores the result.
// Extraction failures other than invalid input still produce a good with
// placeholder fields, so a flaky retailer page never blocks adding a gift.
func (s *Service) CreateFromURL(ctx context.Context, rawURL string) (Good, error) {
	info, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		if isRejectedInput(err) {
			return Good{}, err
		}
		s.log.LogWarnf("extraction failed for %s, storing placeholder: %v", rawURL, err)
		info = extract.ProductInfo{}
	}
	g, err := s.repo.Create(ctx, FromProductInfo(rawURL, info))
	if err != nil {
		return Good{}, fmt.Errorf("create good: %w", err)
	}
	return g, nil
}

func (s *Service) Get(ctx context.Context, id string) (Good, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Good, error) {
	return s.repo.List(ctx)
}

func isRejectedInput(err error) bool {
	return extract.IsInvalidInput(err) || extract.IsUnsupportedDomain(err)
}
