package dto

import (
	"time"

	"listing-discovery-service/internal/app/service"
	"listing-discovery-service/internal/domain"
)

// ListingResponse represents a full listing in the response.
type ListingResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Country     string  `json:"country"`
	Category    string  `json:"category"`

	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`

	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`

	ImageURL string `json:"image_url,omitempty"`
	OwnerID  string `json:"owner_id,omitempty"`

	// Saved is only populated on single-listing reads for a known viewer.
	Saved *bool `json:"saved,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FromDomainListing converts domain.Listing to ListingResponse.
func FromDomainListing(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location:    l.Location,
		Country:     l.Country,
		Category:    string(l.Category),
		Lon:         l.Geometry.Lon,
		Lat:         l.Geometry.Lat,
		RatingAvg:   l.RatingAvg,
		RatingCount: l.RatingCount,
		ImageURL:    l.ImageURL,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
	}
}

// PaginationMeta holds pagination metadata, including the 1-indexed display
// range (both bounds 0 when nothing matched).
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	RangeStart int   `json:"range_start"`
	RangeEnd   int   `json:"range_end"`
}

// SearchResponse represents one search result page.
type SearchResponse struct {
	Listings   []ListingResponse `json:"listings"`
	Pagination PaginationMeta    `json:"pagination"`
	Sort       string            `json:"sort"`
	Category   string            `json:"category,omitempty"`
	SavedIDs   []string          `json:"saved_ids,omitempty"`
}

// FromSearchPage converts a service.SearchPage to SearchResponse.
func FromSearchPage(page *service.SearchPage) SearchResponse {
	listings := make([]ListingResponse, len(page.Listings))
	for i, l := range page.Listings {
		listings[i] = FromDomainListing(l)
	}

	return SearchResponse{
		Listings: listings,
		Pagination: PaginationMeta{
			Total:      page.TotalCount,
			Page:       page.Page,
			PageSize:   domain.PageSize,
			TotalPages: page.TotalPages,
			RangeStart: page.RangeStart,
			RangeEnd:   page.RangeEnd,
		},
		Sort:     string(page.Sort),
		Category: string(page.Category),
		SavedIDs: page.SavedIDs,
	}
}

// SuggestResponse represents the type-ahead result set.
type SuggestResponse struct {
	Results []domain.ListingCard `json:"results"`
}

// DiscoveryResponse represents the top categories/locations snapshot.
type DiscoveryResponse struct {
	Categories []string               `json:"categories"`
	Locations  []domain.LocationCount `json:"locations"`
}

// CategoriesResponse represents the top-categories list.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// GeocodeResponse represents a forward-geocode result. The first result is
// mirrored at the top level for backward compatibility.
type GeocodeResponse struct {
	OK      bool                   `json:"ok"`
	Results []domain.GeocodeResult `json:"results"`
	Lon     float64                `json:"lon"`
	Lat     float64                `json:"lat"`
	Label   string                 `json:"label"`
}

// FromGeocodeResults builds a GeocodeResponse from a non-empty result list.
func FromGeocodeResults(results []domain.GeocodeResult) GeocodeResponse {
	first := results[0]

	return GeocodeResponse{
		OK:      true,
		Results: results,
		Lon:     first.Lon,
		Lat:     first.Lat,
		Label:   first.Label,
	}
}

// GeocodeErrorResponse is the error payload of the geocode endpoints; the
// empty results slice keeps old map clients happy.
type GeocodeErrorResponse struct {
	OK      bool                   `json:"ok"`
	Message string                 `json:"message"`
	Results []domain.GeocodeResult `json:"results"`
}

// NewGeocodeError builds a GeocodeErrorResponse.
func NewGeocodeError(message string) GeocodeErrorResponse {
	return GeocodeErrorResponse{
		OK:      false,
		Message: message,
		Results: []domain.GeocodeResult{},
	}
}

// ReverseGeocodeResponse represents a reverse-geocode result.
type ReverseGeocodeResponse struct {
	OK       bool   `json:"ok"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Label    string `json:"label"`
}

// SaveResponse represents a bookmark toggle result.
type SaveResponse struct {
	OK    bool `json:"ok"`
	Saved bool `json:"saved"`
}

// ReviewResponse represents a stored review.
type ReviewResponse struct {
	ID        string `json:"id"`
	ListingID string `json:"listing_id"`
	AuthorID  string `json:"author_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// FromDomainReview converts domain.Review to ReviewResponse.
func FromDomainReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ListingID: r.ListingID,
		AuthorID:  r.AuthorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
