package domain

// SortKey is a caller-selectable sort selector.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortRatingDesc SortKey = "ratingDesc"
)

// ResolveSortKey validates a raw sort parameter, falling back to newest.
func ResolveSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return SortKey(raw)
	default:
		return SortNewest
	}
}

// SortSpec is the concrete ordering handed to the repository. Every
// ordering carries id descending as a deterministic tiebreaker so pages
// stay stable when primary keys tie.
type SortSpec struct {
	Key SortKey

	// Relevance orders by full-text score descending. It is only ever set
	// together with a full-text filter.
	Relevance bool
}

// ResolveSort maps the chosen sort key to a concrete ordering, applying the
// relevance override: when full-text mode is active and the caller did not
// pick anything other than the default, ordering switches to relevance
// score descending. "newest" is ambiguous between "no preference" and
// "explicit newest" and is treated as no preference here, so any other
// explicitly chosen key always wins over relevance.
func ResolveSort(key SortKey, filter FilterSpec) SortSpec {
	if filter.HasFullText() && key == SortNewest {
		return SortSpec{Key: key, Relevance: true}
	}

	return SortSpec{Key: key}
}
