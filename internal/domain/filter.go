package domain

import (
	"math"
	"strconv"
	"strings"
)

// TextMode is the text-matching strategy for a resolved query.
type TextMode string

const (
	// TextModeNone means no text predicate at all.
	TextModeNone TextMode = "none"
	// TextModeSubstring is a case-insensitive literal substring match ORed
	// across title, location, country and category.
	TextModeSubstring TextMode = "substring"
	// TextModeFullText matches against the weighted full-text index and
	// makes a relevance score available for sorting.
	TextModeFullText TextMode = "fulltext"
)

// fullTextMinLen is the query length at which full-text search takes over.
// Tokenizers are unreliable below ~3 characters, so shorter queries fall
// back to substring matching to keep prefix typing usable.
const fullTextMinLen = 3

// SelectTextMode picks the matching strategy for an already-resolved query.
func SelectTextMode(query string) TextMode {
	switch n := len([]rune(query)); {
	case n == 0:
		return TextModeNone
	case n < fullTextMinLen:
		return TextModeSubstring
	default:
		return TextModeFullText
	}
}

// FilterInput is the raw, untrusted parameter set of a search request.
type FilterInput struct {
	Query    string
	Category string
	MinPrice string
	MaxPrice string

	// SavedOnly restricts results to SavedIDs. ViewerAuthenticated must be
	// true for it to be honored.
	SavedOnly           bool
	ViewerAuthenticated bool
	SavedIDs            []string
}

// FilterSpec is the validated, request-scoped filter specification consumed
// by the listing repository. It is never persisted.
type FilterSpec struct {
	Category Category

	MinPrice *float64
	MaxPrice *float64

	// Query is the resolved free-text predicate; empty when the typed query
	// was promoted to a category filter.
	Query    string
	TextMode TextMode

	// IDs, when non-nil, restricts matches to this id set.
	IDs []string
}

// HasFullText reports whether a relevance score is available.
func (f FilterSpec) HasFullText() bool {
	return f.TextMode == TextModeFullText
}

// BuildFilter normalizes raw query parameters into a FilterSpec.
//
// The decision pipeline is explicit and ordered:
//  1. resolve the category parameter (exact, case-sensitive match or absent)
//  2. if no category was supplied and the query text equals a category name
//     case-insensitively, promote it to a category filter and clear the text
//  3. parse price bounds, discarding negatives and non-finite values, and
//     swap them when min > max
//  4. honor saved-only: unauthenticated viewers get ErrUnauthenticated
//     rather than a silent no-op
//
// The returned spec is a pure function of its input.
func BuildFilter(in FilterInput) (FilterSpec, error) {
	spec := FilterSpec{}

	query := strings.TrimSpace(in.Query)
	spec.Category = ResolveCategory(strings.TrimSpace(in.Category))

	if spec.Category == "" && query != "" {
		if c, ok := MatchCategoryFold(query); ok {
			spec.Category = c
			query = ""
		}
	}

	spec.Query = query
	spec.TextMode = SelectTextMode(query)

	spec.MinPrice = parsePrice(in.MinPrice)
	spec.MaxPrice = parsePrice(in.MaxPrice)
	if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
		spec.MinPrice, spec.MaxPrice = spec.MaxPrice, spec.MinPrice
	}

	if in.SavedOnly {
		if !in.ViewerAuthenticated {
			return FilterSpec{}, ErrUnauthenticated
		}
		ids := in.SavedIDs
		if ids == nil {
			ids = []string{}
		}
		spec.IDs = ids
	}

	return spec, nil
}

// SavedSetEmpty reports whether the spec is a saved-only filter over an
// empty set, which short-circuits to an empty page without a query.
func (f FilterSpec) SavedSetEmpty() bool {
	return f.IDs != nil && len(f.IDs) == 0
}

// parsePrice parses a non-negative price bound. Empty, unparseable,
// non-finite and negative inputs are all treated as absent, not as errors.
func parsePrice(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return nil
	}

	return &n
}

// EscapeLike escapes LIKE/ILIKE metacharacters in a substring query so the
// user's text is matched literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
