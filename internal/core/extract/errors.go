package extract

import "errors"

// Failure kinds surfaced by the pipeline. Selector misses are never errors;
// only the cases below propagate to callers.
var (
	// ErrInvalidInput means the URL did not parse as an absolute http(s)
	// URL. Rejected before any browser work.
	ErrInvalidInput = errors.New("invalid url")

	// ErrUnsupportedDomain means the hostname is on the explicit denylist
	// of hosts with no product pages. Unrecognized hosts are NOT rejected;
	// they fall through to generic extraction.
	ErrUnsupportedDomain = errors.New("unsupported domain")

	// ErrNavigation means the page failed to load under both wait
	// strategies.
	ErrNavigation = errors.New("navigation failed")

	// ErrDeadline means the wall-clock budget for the whole pipeline
	// expired. Distinct from ErrNavigation so callers can tell a slow site
	// from a broken extractor.
	ErrDeadline = errors.New("extraction deadline exceeded")

	// ErrBrowserCrash covers unexpected browser or page level failures.
	ErrBrowserCrash = errors.New("browser crashed")
)

func IsInvalidInput(err error) bool      { return errors.Is(err, ErrInvalidInput) }
func IsUnsupportedDomain(err error) bool { return errors.Is(err, ErrUnsupportedDomain) }
