package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	priceKeepRe  = regexp.MustCompile(`[^0-9 .,]`)
	priceValueRe = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

// NormalizePrice converts a raw price string in any of the observed
// international formats into a numeric value. Comma, dot, and space are all
// accepted as decimal or thousands separators and disambiguated by position:
//
//	"1 234,56 грн" -> 1234.56
//	"$1,299.99"    -> 1299.99
//	"1.234,56"     -> 1234.56
//
// The second return value is false when no numeric value could be recovered.
// Pure function, safe for concurrent use.
func NormalizePrice(raw string) (float64, bool) {
	cleaned := priceKeepRe.ReplaceAllString(raw, "")

	commas := strings.Count(cleaned, ",")
	dots := strings.Count(cleaned, ".")
	switch {
	case commas >= 1 && dots >= 1:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			// 1.234,56 — dots group thousands, comma is the decimal
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// 1,299.99 — commas group thousands
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case commas > 1:
		// 1,234,567 — thousands only
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commas == 1:
		// 99,90 — comma is the decimal
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	// space-grouped thousands, common in Slavic locales
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	m := priceValueRe.FindString(cleaned)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Price sweep patterns: currency-prefixed or currency-suffixed numeric runs
// plus localized "price:" labels. Shared by every retailer extractor as the
// last-resort price source; the content extractor adds the "від " form.
var priceSweepRes = []*regexp.Regexp{
	regexp.MustCompile(`[$€£₴]\s*[0-9][0-9 .,]*`),
	regexp.MustCompile(`[0-9][0-9 .,]*\s*(?:₴|грн|UAH|uah|€|\$|£|руб|rub|RUB)\.?`),
	regexp.MustCompile(`(?i)(?:price|цена|ціна)\s*:?\s*[0-9][0-9 .,]*`),
}

var priceFromRe = regexp.MustCompile(`(?i)від\s+[0-9][0-9 .,]*`)

// sweepPrice scans visible page text for the first currency-looking run and
// returns it raw; normalization is the caller's business. includeFrom also
// accepts the Ukrainian "від 1 234" (from) form used on listing-style pages.
func sweepPrice(text string, includeFrom bool) string {
	res := priceSweepRes
	if includeFrom {
		res = append(append([]*regexp.Regexp{}, priceSweepRes...), priceFromRe)
	}
	for _, re := range res {
		if m := re.FindString(text); m != "" {
			if _, ok := NormalizePrice(m); ok {
				return collapseSpace(m)
			}
		}
	}
	return ""
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
