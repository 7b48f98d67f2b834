// Package filter narrows and orders fetched catalog pages. It operates on
// already-fetched in-memory data only: it never fails, and an empty result is
// a valid output, not an error.
package filter

import (
	"sort"
	"strings"
	"time"

	"moviemonk/models"
)

// SortKey selects the comparator applied after filtering. The values match
// the provider's discover-API sort tokens so clients can pass them through.
type SortKey string

const (
	SortPopularityDesc SortKey = "popularity.desc"
	SortPopularityAsc  SortKey = "popularity.asc"
	SortRatingDesc     SortKey = "vote_average.desc"
	SortRatingAsc      SortKey = "vote_average.asc"
	SortDateDesc       SortKey = "release_date.desc"
	SortDateAsc        SortKey = "release_date.asc"
	SortTitleAsc       SortKey = "title.asc"
	SortTitleDesc      SortKey = "title.desc"
)

// ParseSortKey validates a sort token.
func ParseSortKey(value string) (SortKey, bool) {
	key := SortKey(strings.TrimSpace(value))
	switch key {
	case SortPopularityDesc, SortPopularityAsc,
		SortRatingDesc, SortRatingAsc,
		SortDateDesc, SortDateAsc,
		SortTitleAsc, SortTitleDesc:
		return key, true
	}
	return "", false
}

// Spec is the set of user-selected narrowing and ordering criteria. Empty
// genre or language sets disable those predicates entirely. Range bounds are
// inclusive; the caller is trusted to keep min <= max.
type Spec struct {
	YearRange    [2]int     `json:"yearRange"`
	RatingRange  [2]float64 `json:"ratingRange"`
	Genres       []int      `json:"genres,omitempty"`
	Languages    []string   `json:"languages,omitempty"`
	SortBy       SortKey    `json:"sortBy"`
	IncludeAdult bool       `json:"includeAdult"`
}

// DefaultSpec matches everything and orders by descending popularity.
func DefaultSpec() Spec {
	return Spec{
		YearRange:   [2]int{1900, time.Now().Year() + 2},
		RatingRange: [2]float64{0, 10},
		SortBy:      SortPopularityDesc,
	}
}

// Apply filters items by the conjunction of the spec's predicates, then
// orders the survivors by the selected comparator. The input slice is not
// modified. The sort is stable so output is deterministic for equal keys.
func Apply(items []models.CatalogItem, spec Spec) []models.CatalogItem {
	kept := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if includes(item, spec) {
			kept = append(kept, item)
		}
	}
	sortItems(kept, spec.SortBy)
	return kept
}

func includes(item models.CatalogItem, spec Spec) bool {
	// Items with an empty or unparseable date have no year and fail the
	// year predicate outright.
	year := item.Year()
	if year == 0 || year < spec.YearRange[0] || year > spec.YearRange[1] {
		return false
	}

	if item.VoteAverage < spec.RatingRange[0] || item.VoteAverage > spec.RatingRange[1] {
		return false
	}

	if len(spec.Genres) > 0 && !intersects(item.GenreIDs, spec.Genres) {
		return false
	}

	if len(spec.Languages) > 0 && !containsString(spec.Languages, item.OriginalLanguage) {
		return false
	}

	if item.Adult && !spec.IncludeAdult {
		return false
	}

	return true
}

func sortItems(items []models.CatalogItem, key SortKey) {
	var less func(a, b models.CatalogItem) bool

	switch key {
	case SortPopularityAsc:
		less = func(a, b models.CatalogItem) bool { return a.Popularity < b.Popularity }
	case SortRatingDesc:
		less = func(a, b models.CatalogItem) bool { return a.VoteAverage > b.VoteAverage }
	case SortRatingAsc:
		less = func(a, b models.CatalogItem) bool { return a.VoteAverage < b.VoteAverage }
	case SortDateDesc:
		less = func(a, b models.CatalogItem) bool { return dateValue(a).After(dateValue(b)) }
	case SortDateAsc:
		less = func(a, b models.CatalogItem) bool { return dateValue(a).Before(dateValue(b)) }
	case SortTitleAsc:
		less = func(a, b models.CatalogItem) bool { return a.Title < b.Title }
	case SortTitleDesc:
		less = func(a, b models.CatalogItem) bool { return a.Title > b.Title }
	default:
		// popularity.desc, and the fallback for unrecognized keys
		less = func(a, b models.CatalogItem) bool { return a.Popularity > b.Popularity }
	}

	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// dateValue treats missing dates as the minimum so they sort to the bottom
// of newest-first output.
func dateValue(item models.CatalogItem) time.Time {
	t, ok := item.ParsedDate()
	if !ok {
		return time.Time{}
	}
	return t
}

func intersects(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
