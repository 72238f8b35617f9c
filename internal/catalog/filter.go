package catalog

import "strings"

// Filter is the optional bundle of list criteria. Criteria are mutually
// exclusive: exactly one is applied per call, chosen by fixed
// precedence, and the rest are ignored. This is observable behavior and
// must not be turned into composite AND-filtering.
type Filter struct {
	CategoryID string
	BrandID    string
	Search     string
	Available  *bool
	Discounted *bool
	RangePrice *bool
	MinPrice   *float64
	MaxPrice   *float64
}

type filterKind int

const (
	filterNone filterKind = iota
	filterCategory
	filterBrand
	filterSearch
	filterAvailable
	filterDiscounted
	filterPriceRange
)

// kind selects the single filter to apply. Precedence: category, then
// brand, then search, then available, then discounted, then price
// range; with no criterion set the full catalog is returned.
func (f Filter) kind() filterKind {
	switch {
	case strings.TrimSpace(f.CategoryID) != "":
		return filterCategory
	case strings.TrimSpace(f.BrandID) != "":
		return filterBrand
	case strings.TrimSpace(f.Search) != "":
		return filterSearch
	case isTrue(f.Available):
		return filterAvailable
	case isTrue(f.Discounted):
		return filterDiscounted
	case isTrue(f.RangePrice):
		return filterPriceRange
	}
	return filterNone
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
