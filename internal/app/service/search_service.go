// Package service provides application use cases.
package service

import (
	"context"

	"go.uber.org/zap"

	"listing-discovery-service/internal/domain"
)

// SearchQuery is the raw, untrusted parameter set of one search request.
type SearchQuery struct {
	Query    string
	Category string
	MinPrice string
	MaxPrice string
	Sort     string
	Page     int

	SavedOnly bool
	// ViewerID is empty for anonymous viewers.
	ViewerID string
}

// SearchPage is one filtered, ranked, paginated result page plus the
// metadata the caller needs to render it.
type SearchPage struct {
	Listings []*domain.Listing

	Page       int
	TotalPages int
	TotalCount int64
	RangeStart int
	RangeEnd   int

	Sort     domain.SortKey
	Category domain.Category

	// SavedIDs is the viewer's bookmark set (for save icons); nil for
	// anonymous viewers.
	SavedIDs []string
}

// SearchService turns raw query parameters into a result page.
type SearchService struct {
	repo   domain.ListingRepository
	saved  domain.SavedListingStore
	logger *zap.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(repo domain.ListingRepository, saved domain.SavedListingStore, logger *zap.Logger) *SearchService {
	return &SearchService{
		repo:   repo,
		saved:  saved,
		logger: logger,
	}
}

// Search executes the discovery pipeline: build the filter, pick the text
// strategy and ordering, clamp the page against the total count and fetch
// one page.
//
// Count and page query run without a transaction; under concurrent writes
// they can disagree slightly, which is accepted.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	var savedIDs []string
	if q.ViewerID != "" {
		var err error
		savedIDs, err = s.saved.SavedIDs(ctx, q.ViewerID)
		if err != nil {
			s.logger.Error("loading saved ids failed", zap.String("user_id", q.ViewerID), zap.Error(err))

			return nil, err
		}
		if savedIDs == nil {
			savedIDs = []string{}
		}
	}

	filter, err := domain.BuildFilter(domain.FilterInput{
		Query:               q.Query,
		Category:            q.Category,
		MinPrice:            q.MinPrice,
		MaxPrice:            q.MaxPrice,
		SavedOnly:           q.SavedOnly,
		ViewerAuthenticated: q.ViewerID != "",
		SavedIDs:            savedIDs,
	})
	if err != nil {
		return nil, err
	}

	sortKey := domain.ResolveSortKey(q.Sort)
	sortSpec := domain.ResolveSort(sortKey, filter)

	// A saved-only filter over an empty bookmark set can never match;
	// return the empty page without touching the collection.
	if filter.SavedSetEmpty() {
		return emptyPage(sortKey, filter.Category, savedIDs), nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("count failed", zap.Error(err))

		return nil, err
	}

	pg := domain.NewPagination(total, q.Page)

	listings, err := s.repo.Search(ctx, filter, sortSpec, pg.Skip, pg.Limit)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))

		return nil, err
	}

	rangeStart, rangeEnd := pg.Range(len(listings))

	s.logger.Debug("search completed",
		zap.String("query", filter.Query),
		zap.String("text_mode", string(filter.TextMode)),
		zap.Bool("relevance", sortSpec.Relevance),
		zap.Int64("total", total),
		zap.Int("page", pg.Page),
	)

	return &SearchPage{
		Listings:   listings,
		Page:       pg.Page,
		TotalPages: pg.TotalPages,
		TotalCount: total,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Sort:       sortKey,
		Category:   filter.Category,
		SavedIDs:   savedIDs,
	}, nil
}

// Count returns the total number of listings.
func (s *SearchService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, domain.FilterSpec{})
}

func emptyPage(sort domain.SortKey, category domain.Category, savedIDs []string) *SearchPage {
	return &SearchPage{
		Listings:   []*domain.Listing{},
		Page:       1,
		TotalPages: 1,
		Sort:       sort,
		Category:   category,
		SavedIDs:   savedIDs,
	}
}
