package domain

import "strconv"

// Page carries offset pagination parsed from HTTP query parameters.
// It is applied after filtering, so Total reported to clients is the size
// of the filtered collection.
type Page struct {
	// Number is the 1-indexed page number.
	Number int
	// Limit is the maximum number of items per page.
	Limit int
}

// ParsePage builds a Page from raw query strings. Empty or unparseable
// values fall back to page 1 / limit 50, and the limit is capped at 200.
func ParsePage(pageStr, limitStr string) Page {
	p := Page{Number: 1, Limit: 50}
	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n >= 1 {
		p.Limit = n
		if p.Limit > 200 {
			p.Limit = 200
		}
	}
	return p
}

// Bounds returns the [lo, hi) slice window for a collection of n items.
// A page past the end yields an empty window.
func (p Page) Bounds(n int) (lo, hi int) {
	lo = (p.Number - 1) * p.Limit
	if lo > n {
		lo = n
	}
	hi = lo + p.Limit
	if hi > n {
		hi = n
	}
	return lo, hi
}
