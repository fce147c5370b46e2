package extract

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wishlist/internal/config"
	"wishlist/internal/logger"
	rds "wishlist/internal/platform/redis"
)

// launcher is the browser boundary of the orchestrator. The production
// implementation is SessionManager; tests substitute doubles that count
// launches or never return.
type launcher interface {
	Capture(ctx context.Context, url, readySelector string) (*Snapshot, error)
}

type Service struct {
	log       *logger.Logger
	redis     *rds.Service
	launcher  launcher
	selectors map[Retailer]SelectorSet
	timeout   time.Duration
	cacheTTL  int
}

func NewService(cfg config.Config, redis *rds.Service) (*Service, error) {
	sets, err := loadSelectorSets()
	if err != nil {
		return nil, err
	}
	sm := NewSessionManager(BrowserConfig{
		ExecPath:     cfg.BrowserPath,
		Headless:     cfg.BrowserHeadless,
		NavTimeout:   cfg.NavTimeout,
		OpTimeout:    cfg.OpTimeout,
		ReadyTimeout: cfg.ReadyTimeout,
	})
	timeout := cfg.ExtractTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Service{
		log:       logger.New("ExtractService"),
		redis:     redis,
		launcher:  sm,
		selectors: sets,
		timeout:   timeout,
		cacheTTL:  cfg.CacheTTLSeconds,
	}, nil
}

// Extract is the single entry point of the pipeline: URL in, ProductInfo
// out. Partial results are successes; an error means no extractor could run
// at all. The whole browser span races one wall-clock deadline.
func (s *Service) Extract(ctx context.Context, rawURL string) (ProductInfo, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return ProductInfo{}, fmt.Errorf("%w: %q", ErrInvalidInput, rawURL)
	}

	retailer, err := ClassifyHost(u.Hostname())
	if err != nil {
		// Deliberate cost-saving gate: no browser is launched for hosts
		// that cannot carry a product page.
		s.log.Info().Str("url", rawURL).Msg("denylisted host, skipping browser")
		return ProductInfo{}, err
	}

	if cached := s.getCached(ctx, u.String()); cached != nil {
		s.log.Info().Str("url", rawURL).Msg("cache hit")
		return *cached, nil
	}

	s.log.Info().Str("url", rawURL).Str("retailer", string(retailer)).Msg("extract start")

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		info ProductInfo
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		info, err := s.run(ctx, u, retailer)
		done <- outcome{info, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			s.log.Info().Str("url", rawURL).Str("error", out.err.Error()).Msg("extract failed")
			return ProductInfo{}, out.err
		}
		s.cache(ctx, u.String(), out.info)
		s.log.Info().Str("url", rawURL).Msg("extract complete")
		return out.info, nil
	case <-ctx.Done():
		// The abandoned goroutine still runs the session's deferred
		// cleanup when the in-flight browser call settles, so the
		// process does not leak past the call's own timeouts.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ProductInfo{}, fmt.Errorf("%w: %s after %s", ErrDeadline, rawURL, s.timeout)
		}
		return ProductInfo{}, ctx.Err()
	}
}

// run drives one browser session and the extractor cascade over its
// snapshot. Stage order: tuned selectors for a recognized retailer, then
// metadata, then content heuristics — each later stage only runs while the
// merged title still looks like a hostname echo.
func (s *Service) run(ctx context.Context, u *url.URL, retailer Retailer) (ProductInfo, error) {
	set, tuned := s.selectors[retailer]

	readySelector := ""
	if tuned {
		readySelector = set.Ready
	}
	snap, err := s.launcher.Capture(ctx, u.String(), readySelector)
	if err != nil {
		return ProductInfo{}, err
	}

	var stages []stage
	if tuned {
		stages = append(stages, siteStage(set))
	}
	stages = append(stages, metaStage(), contentStage())

	host := u.Hostname()
	var info ProductInfo
	for i, st := range stages {
		if i > 0 && !titleDomainLike(info.Title, host) {
			break
		}
		info = merge(info, st.run(snap), host)
		s.log.LogDebugf("stage %s done for %s (title=%q)", st.name, u.String(), info.TitleOr(""))
	}
	return info, nil
}

func (s *Service) getCached(ctx context.Context, url string) *ProductInfo {
	if s.redis == nil {
		return nil
	}
	var info ProductInfo
	if err := s.redis.CacheGet(ctx, cacheKey(url), &info); err != nil {
		return nil
	}
	return &info
}

func (s *Service) cache(ctx context.Context, url string, info ProductInfo) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	_ = s.redis.CacheSet(ctx, cacheKey(url), info, s.cacheTTL)
}

func cacheKey(url string) string {
	replacer := strings.NewReplacer(":", "_", "/", "_", "?", "_", "&", "_")
	return "extract:" + replacer.Replace(url)
}
