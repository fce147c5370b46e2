package extract

import (
	"fmt"
	"strings"
)

// Retailer identifies a supported shop with a tuned selector set, or the
// generic sentinel for everything else.
type Retailer string

const RetailerGeneric Retailer = "generic"

// supportedRetailers is ordered: classification takes the first identifier
// contained in the hostname, so more specific names come before shorter ones.
var supportedRetailers = []Retailer{
	"rozetka",
	"epicentr",
	"foxtrot",
	"comfy",
	"allo",
	"citrus",
	"makeup",
	"prom",
	"aliexpress",
	"amazon",
	"ebay",
}

// blockedHosts are domains with no product pages at all. These are the only
// hosts rejected outright; anything merely unknown still gets the generic
// extractor.
var blockedHosts = []string{
	"facebook.com",
	"instagram.com",
	"tiktok.com",
	"youtube.com",
	"twitter.com",
	"x.com",
	"t.me",
	"telegram.org",
	"pinterest.com",
}

// ClassifyHost maps a lowercased hostname to a retailer identifier.
// Matching is substring containment on the registrable fragment, so
// m.rozetka.com.ua still classifies as rozetka. Absence of a match is a
// valid outcome and routes to generic handling; only denylisted hosts fail.
func ClassifyHost(host string) (Retailer, error) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, blocked := range blockedHosts {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedDomain, host)
		}
	}
	for _, r := range supportedRetailers {
		if strings.Contains(host, string(r)) {
			return r, nil
		}
	}
	return RetailerGeneric, nil
}
