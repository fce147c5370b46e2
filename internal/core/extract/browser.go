package extract

import (
	"context"
	"fmt"
	"time"

	"wishlist/internal/logger"

	"github.com/playwright-community/playwright-go"
)

// BrowserConfig is the explicit launch configuration for one session. Passed
// in at construction so tests can swap the whole session manager for a
// double that never touches a real browser.
type BrowserConfig struct {
	// ExecPath points at a system Chromium; empty means the playwright
	// managed build.
	ExecPath string
	Headless bool
	// NavTimeout bounds the first navigation attempt; the lenient retry
	// gets twice this budget.
	NavTimeout time.Duration
	// OpTimeout is the default protocol timeout for everything else.
	OpTimeout time.Duration
	// ReadyTimeout bounds the post-navigation ready-wait.
	ReadyTimeout time.Duration
	UserAgent    string

	ViewportWidth  int
	ViewportHeight int
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

func (c BrowserConfig) withDefaults() BrowserConfig {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 10 * time.Second
	}
	if c.OpTimeout <= 0 {
		c.OpTimeout = 15 * time.Second
	}
	if c.ReadyTimeout <= 0 {
		c.ReadyTimeout = 5 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		c.ViewportWidth, c.ViewportHeight = 1366, 768
	}
	return c
}

// SessionManager owns the lifecycle of one headless browser process per
// Capture call. No pooling: a session belongs to exactly one request and is
// torn down on every exit path.
type SessionManager struct {
	log *logger.Logger
	cfg BrowserConfig
}

func NewSessionManager(cfg BrowserConfig) *SessionManager {
	return &SessionManager{log: logger.New("BrowserSession"), cfg: cfg.withDefaults()}
}

// Capture navigates to url in a fresh browser, waits for the page to settle,
// and returns a Snapshot of it. readySelector, when non-empty, is a
// heading-like selector whose appearance counts as page-ready; otherwise a
// generic DOM-ready wait is used.
func (m *SessionManager) Capture(ctx context.Context, url, readySelector string) (*Snapshot, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: playwright run: %v", ErrBrowserCrash, err)
	}
	defer m.closeQuietly("driver", pw.Stop)

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.cfg.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-gpu",
			"--single-process",
			"--disable-dev-shm-usage",
			"--disable-blink-features=AutomationControlled",
		},
	}
	if m.cfg.ExecPath != "" {
		launchOpts.ExecutablePath = playwright.String(m.cfg.ExecPath)
	}
	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: launch: %v", ErrBrowserCrash, err)
	}
	defer m.closeQuietly("browser", func() error { return browser.Close() })
	browser.OnDisconnected(func(playwright.Browser) {
		m.log.LogWarnf("browser disconnected for %s", url)
	})

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(m.cfg.UserAgent),
		Viewport:  &playwright.Size{Width: m.cfg.ViewportWidth, Height: m.cfg.ViewportHeight},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: new context: %v", ErrBrowserCrash, err)
	}
	defer m.closeQuietly("context", func() error { return bctx.Close() })

	// Heavy assets never influence extraction; skipping them keeps
	// navigation inside its budget on image-dense product pages.
	if err := bctx.Route("**/*", func(route playwright.Route) {
		switch route.Request().ResourceType() {
		case "image", "font", "media":
			_ = route.Abort("blockedbyclient")
		default:
			_ = route.Continue()
		}
	}); err != nil {
		m.log.LogWarnf("request interception unavailable: %v", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("%w: new page: %v", ErrBrowserCrash, err)
	}
	page.SetDefaultTimeout(float64(m.cfg.OpTimeout.Milliseconds()))
	page.OnCrash(func(playwright.Page) {
		m.log.LogErrorf("page crashed for %s", url)
	})

	if err := m.navigate(page, url); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.waitReady(page, readySelector)

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("%w: content: %v", ErrBrowserCrash, err)
	}
	images := m.imageMetrics(page)

	return NewSnapshot(page.URL(), html, images)
}

// navigate first tries the strict content-loaded condition, then retries
// once with the more permissive load condition and a doubled budget.
func (m *SessionManager) navigate(page playwright.Page, url string) error {
	_, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(m.cfg.NavTimeout.Milliseconds())),
	})
	if err == nil {
		return nil
	}
	m.log.LogDebugf("strict navigation to %s failed, retrying lenient: %v", url, err)
	_, err = page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(2 * m.cfg.NavTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	return nil
}

// waitReady blocks until the page looks settled: the site's heading selector
// when one is known, a generic DOM-ready wait otherwise. Best effort — a
// slow ready signal is not a failed extraction.
func (m *SessionManager) waitReady(page playwright.Page, readySelector string) {
	budget := playwright.Float(float64(m.cfg.ReadyTimeout.Milliseconds()))
	if readySelector != "" {
		err := page.Locator(readySelector).First().WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: budget,
		})
		if err == nil {
			return
		}
		m.log.LogDebugf("ready selector %q did not appear: %v", readySelector, err)
	}
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: budget,
	}); err != nil {
		m.log.LogDebugf("dom-ready wait expired: %v", err)
	}
}

// imageMetrics evaluates rendered size and placement for every <img>, which
// static HTML cannot provide. Failure degrades extraction quality but never
// fails the session.
func (m *SessionManager) imageMetrics(page playwright.Page) []ImageInfo {
	result, err := page.Evaluate(`() => {
		const area = document.querySelector('.product, .item, .product-card, .product-detail')
			|| (document.querySelector('h1') ? document.querySelector('h1').parentElement : null);
		return Array.from(document.images).map(img => {
			const rect = img.getBoundingClientRect();
			const style = window.getComputedStyle(img);
			const w = Math.round(rect.width || img.naturalWidth || 0);
			const h = Math.round(rect.height || img.naturalHeight || 0);
			return {
				src: img.currentSrc || img.src || img.getAttribute('data-src') || '',
				width: w,
				height: h,
				visible: style.display !== 'none' && style.visibility !== 'hidden' && w > 0 && h > 0,
				inProductArea: !!(area && area.contains(img)),
			};
		});
	}`)
	if err != nil {
		m.log.LogWarnf("image metrics evaluation failed: %v", err)
		return nil
	}
	arr, ok := result.([]interface{})
	if !ok {
		return nil
	}
	images := make([]ImageInfo, 0, len(arr))
	for _, v := range arr {
		data, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		img := ImageInfo{
			Src:           toString(data["src"]),
			Width:         toInt(data["width"]),
			Height:        toInt(data["height"]),
			Visible:       toBool(data["visible"]),
			InProductArea: toBool(data["inProductArea"]),
		}
		img.Area = float64(img.Width) * float64(img.Height)
		images = append(images, img)
	}
	return images
}

// closeQuietly runs a teardown step and logs failures instead of returning
// them: cleanup must never mask the primary result or error.
func (m *SessionManager) closeQuietly(what string, close func() error) {
	if err := close(); err != nil {
		m.log.LogWarnf("closing %s: %v", what, err)
	}
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func toInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	default:
		return 0
	}
}

func toBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
