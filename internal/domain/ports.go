package domain

import (
	"context"
	"time"
)

// ListingRepository defines persistence operations over listings.
// Implementation: internal/infra/postgres/repository.go
type ListingRepository interface {
	// Search returns one page of listings matching the filter, ordered by
	// the sort spec with id descending as tiebreaker.
	Search(ctx context.Context, filter FilterSpec, sort SortSpec, skip, limit int) ([]*Listing, error)

	// Count returns the total number of listings matching the filter.
	Count(ctx context.Context, filter FilterSpec) (int64, error)

	// Suggest returns up to limit card projections matching the filter.
	Suggest(ctx context.Context, filter FilterSpec, limit int) ([]ListingCard, error)

	// GetByID retrieves a single listing. Returns ErrListingNotFound for
	// unknown ids.
	GetByID(ctx context.Context, id string) (*Listing, error)

	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error

	// Delete removes a listing and its reviews.
	Delete(ctx context.Context, id string) error

	// TopCategories returns up to limit category names ordered by listing
	// count descending.
	TopCategories(ctx context.Context, limit int) ([]string, error)

	// TopLocations returns up to limit (location, country) pairs ordered by
	// listing count descending.
	TopLocations(ctx context.Context, limit int) ([]LocationCount, error)
}

// SavedListingStore tracks which listings a viewer has bookmarked.
// Implementation: internal/infra/postgres/saved_store.go
type SavedListingStore interface {
	// SavedIDs returns the viewer's saved listing id set.
	SavedIDs(ctx context.Context, userID string) ([]string, error)

	// ToggleSave flips the bookmark and reports the new state.
	ToggleSave(ctx context.Context, userID, listingID string) (saved bool, err error)
}

// ReviewRepository persists reviews and keeps the parent listing's derived
// rating fields in sync.
// Implementation: internal/infra/postgres/review_repository.go
type ReviewRepository interface {
	// Create stores the review and recomputes the listing's rating.
	Create(ctx context.Context, review *Review) error

	// Delete removes the review and recomputes the listing's rating.
	Delete(ctx context.Context, listingID, reviewID string) error
}

// GeocodeResult is one forward-geocoding candidate.
type GeocodeResult struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Label string  `json:"label"`
}

// ReverseResult is the text description of a coordinate.
type ReverseResult struct {
	Location string `json:"location"`
	Country  string `json:"country"`
	Label    string `json:"label"`
}

// Geocoder is the external geocoding provider.
// Implementation: internal/infra/geocode/client.go
type Geocoder interface {
	// Forward resolves free text to up to size ranked coordinates.
	// Returns ErrLocationNotFound when the provider has no match.
	Forward(ctx context.Context, text string, size int) ([]GeocodeResult, error)

	// Reverse resolves a coordinate to location/country labels.
	Reverse(ctx context.Context, lon, lat float64) (*ReverseResult, error)
}

// Cache defines TTL key/value caching operations.
// Implementations: internal/infra/redis/cache.go, internal/infra/memcache/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil, nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL, replacing any previous entry
	// wholesale.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error
}
