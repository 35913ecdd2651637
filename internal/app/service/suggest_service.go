package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"listing-discovery-service/internal/domain"
)

const (
	// suggestMinQueryLen is the strict minimum query length for type-ahead.
	suggestMinQueryLen = 2
	// suggestLimit is the hard cap on returned suggestions.
	suggestLimit = 8
)

// SuggestInput is the raw parameter set of a suggestion request.
// Sort, page and saved-only do not apply to type-ahead.
type SuggestInput struct {
	Query    string
	Category string
	MinPrice string
	MaxPrice string
}

// SuggestService serves bounded type-ahead results. It applies the same
// category-promotion and price rules as the search filter, but always
// matches by substring and caps the result set.
type SuggestService struct {
	repo   domain.ListingRepository
	logger *zap.Logger
}

// NewSuggestService creates a new SuggestService.
func NewSuggestService(repo domain.ListingRepository, logger *zap.Logger) *SuggestService {
	return &SuggestService{repo: repo, logger: logger}
}

// Suggest returns up to 8 card projections for the typed prefix. Queries
// shorter than 2 characters yield an empty result without touching the
// collection; callers are expected to fall back to the discovery snapshot
// when nothing matches.
func (s *SuggestService) Suggest(ctx context.Context, in SuggestInput) ([]domain.ListingCard, error) {
	query := strings.TrimSpace(in.Query)
	if len([]rune(query)) < suggestMinQueryLen {
		return []domain.ListingCard{}, nil
	}

	filter, err := domain.BuildFilter(domain.FilterInput{
		Query:    query,
		Category: in.Category,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	})
	if err != nil {
		return nil, err
	}

	// Type-ahead matches the literal prefix the user is typing; full-text
	// tokenization would drop partial words.
	if filter.TextMode == domain.TextModeFullText {
		filter.TextMode = domain.TextModeSubstring
	}

	cards, err := s.repo.Suggest(ctx, filter, suggestLimit)
	if err != nil {
		s.logger.Error("suggest failed", zap.String("query", query), zap.Error(err))

		return nil, err
	}

	return cards, nil
}
