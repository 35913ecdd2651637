package service

import (
	"context"

	"listing-discovery-service/internal/domain"
)

// stubRepo is a configurable in-memory ListingRepository. Call counters let
// tests assert which operations a use case touched.
type stubRepo struct {
	listings  []*domain.Listing
	cards     []domain.ListingCard
	total     int64
	cats      []string
	locs      []domain.LocationCount
	err       error
	byID      map[string]*domain.Listing
	created   []*domain.Listing
	updated   []*domain.Listing
	deletedID string

	searchCalls  int
	countCalls   int
	suggestCalls int
	catCalls     int
	locCalls     int

	lastFilter  domain.FilterSpec
	lastSort    domain.SortSpec
	lastSkip    int
	lastLimit   int
	lastSuggest int
}

func (r *stubRepo) Search(_ context.Context, filter domain.FilterSpec, sort domain.SortSpec, skip, limit int) ([]*domain.Listing, error) {
	r.searchCalls++
	r.lastFilter = filter
	r.lastSort = sort
	r.lastSkip = skip
	r.lastLimit = limit

	return r.listings, r.err
}

func (r *stubRepo) Count(_ context.Context, filter domain.FilterSpec) (int64, error) {
	r.countCalls++
	r.lastFilter = filter

	return r.total, r.err
}

func (r *stubRepo) Suggest(_ context.Context, filter domain.FilterSpec, limit int) ([]domain.ListingCard, error) {
	r.suggestCalls++
	r.lastFilter = filter
	r.lastSuggest = limit

	return r.cards, r.err
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	if l, ok := r.byID[id]; ok {
		return l, nil
	}

	return nil, domain.ErrListingNotFound
}

func (r *stubRepo) Create(_ context.Context, listing *domain.Listing) error {
	r.created = append(r.created, listing)

	return r.err
}

func (r *stubRepo) Update(_ context.Context, listing *domain.Listing) error {
	r.updated = append(r.updated, listing)

	return r.err
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	r.deletedID = id

	return r.err
}

func (r *stubRepo) TopCategories(_ context.Context, limit int) ([]string, error) {
	r.catCalls++
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.cats) {
		return r.cats[:limit], nil
	}

	return r.cats, nil
}

func (r *stubRepo) TopLocations(_ context.Context, limit int) ([]domain.LocationCount, error) {
	r.locCalls++
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.locs) {
		return r.locs[:limit], nil
	}

	return r.locs, nil
}

// stubSavedStore is a fixed-answer SavedListingStore.
type stubSavedStore struct {
	ids   []string
	saved bool
	err   error

	savedIDsCalls int
	toggled       []string
}

func (s *stubSavedStore) SavedIDs(_ context.Context, _ string) ([]string, error) {
	s.savedIDsCalls++

	return s.ids, s.err
}

func (s *stubSavedStore) ToggleSave(_ context.Context, _, listingID string) (bool, error) {
	s.toggled = append(s.toggled, listingID)

	return s.saved, s.err
}

// stubGeocoder is a counting Geocoder with scripted answers.
type stubGeocoder struct {
	results []domain.GeocodeResult
	reverse *domain.ReverseResult
	err     error

	forwardCalls int
	reverseCalls int
	lastText     string
	lastSize     int
}

func (g *stubGeocoder) Forward(_ context.Context, text string, size int) ([]domain.GeocodeResult, error) {
	g.forwardCalls++
	g.lastText = text
	g.lastSize = size

	if g.err != nil {
		return nil, g.err
	}

	return g.results, nil
}

func (g *stubGeocoder) Reverse(_ context.Context, _, _ float64) (*domain.ReverseResult, error) {
	g.reverseCalls++

	if g.err != nil {
		return nil, g.err
	}

	return g.reverse, nil
}

// stubReviews is a counting ReviewRepository.
type stubReviews struct {
	err     error
	created []*domain.Review
	deleted []string
}

func (r *stubReviews) Create(_ context.Context, review *domain.Review) error {
	r.created = append(r.created, review)

	return r.err
}

func (r *stubReviews) Delete(_ context.Context, _, reviewID string) error {
	r.deleted = append(r.deleted, reviewID)

	return r.err
}
