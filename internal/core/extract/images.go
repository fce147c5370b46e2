package extract

import "strings"

const minImageSide = 50

var placeholderSrcMarkers = []string{
	"placeholder",
	"no-image",
	"noimage",
	"blank.",
	"pixel.",
	"spacer.",
	"sprite",
	"1x1",
}

// junkImageSrc rejects sources that can never be a product shot: inline
// data, vector chrome, and the usual placeholder names.
func junkImageSrc(src string) bool {
	s := strings.ToLower(src)
	if s == "" || strings.HasPrefix(s, "data:") {
		return true
	}
	if strings.HasSuffix(strings.SplitN(s, "?", 2)[0], ".svg") {
		return true
	}
	for _, marker := range placeholderSrcMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func validImage(img ImageInfo) bool {
	if !img.Visible || img.Width < minImageSide || img.Height < minImageSide {
		return false
	}
	return !junkImageSrc(img.Src)
}

// largestImage picks the valid image with the biggest rendered bounding box.
// With areaOnly set, only images inside the heuristic product area compete.
func largestImage(snap *Snapshot, areaOnly bool) string {
	var best string
	var bestArea float64
	for _, img := range snap.Images {
		if areaOnly && !img.InProductArea {
			continue
		}
		if !validImage(img) {
			continue
		}
		if img.Area > bestArea {
			bestArea = img.Area
			best = img.Src
		}
	}
	if best == "" {
		return ""
	}
	return snap.ResolveURL(best)
}
