// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strconv"

	"listing-discovery-service/internal/app/service"
)

// SearchRequest represents the query parameters of the listing search
// endpoint. Numeric fields stay strings here: unparseable values are
// defaulted downstream, never rejected.
type SearchRequest struct {
	Query    string `query:"q" validate:"max=200"`
	Category string `query:"category" validate:"max=50"`
	MinPrice string `query:"minPrice" validate:"max=20"`
	MaxPrice string `query:"maxPrice" validate:"max=20"`
	Sort     string `query:"sort" validate:"max=20"`
	Saved    string `query:"saved" validate:"max=5"`
	Page     string `query:"page" validate:"max=10"`
}

// ToSearchQuery converts the request to service input for the given viewer.
func (r *SearchRequest) ToSearchQuery(viewerID string) service.SearchQuery {
	return service.SearchQuery{
		Query:     r.Query,
		Category:  r.Category,
		MinPrice:  r.MinPrice,
		MaxPrice:  r.MaxPrice,
		Sort:      r.Sort,
		Page:      parsePositiveInt(r.Page, 1),
		SavedOnly: r.Saved == "1",
		ViewerID:  viewerID,
	}
}

// SuggestRequest represents the query parameters of the suggestion
// endpoint. Sort, page and saved do not apply to type-ahead.
type SuggestRequest struct {
	Query    string `query:"q" validate:"max=200"`
	Category string `query:"category" validate:"max=50"`
	MinPrice string `query:"minPrice" validate:"max=20"`
	MaxPrice string `query:"maxPrice" validate:"max=20"`
}

// ToSuggestInput converts the request to service input.
func (r *SuggestRequest) ToSuggestInput() service.SuggestInput {
	return service.SuggestInput{
		Query:    r.Query,
		Category: r.Category,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
	}
}

// DiscoveryRequest represents the query parameters of the discovery
// endpoint. Limits are clamped downstream.
type DiscoveryRequest struct {
	LimitCats string `query:"limitCats" validate:"max=10"`
	LimitLocs string `query:"limitLocs" validate:"max=10"`
}

// Limits returns the parsed limit pair, zero meaning "use default".
func (r *DiscoveryRequest) Limits() (cats, locs int) {
	return parsePositiveInt(r.LimitCats, 0), parsePositiveInt(r.LimitLocs, 0)
}

// GeocodeRequest represents the query parameters of the forward-geocode
// endpoint.
type GeocodeRequest struct {
	Text string `query:"text" validate:"max=200"`
	Size string `query:"size" validate:"max=10"`
}

// ListingPayload is the JSON body of listing create and update requests.
type ListingPayload struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Price       float64 `json:"price" validate:"min=0"`
	Location    string  `json:"location" validate:"required,max=200"`
	Country     string  `json:"country" validate:"required,max=100"`
	Category    string  `json:"category" validate:"max=50"`

	// Manual map-picker coordinates; both must be present to count.
	Lon *float64 `json:"lon"`
	Lat *float64 `json:"lat"`

	ImageURL      string `json:"image_url" validate:"omitempty,url,max=500"`
	ImageFilename string `json:"image_filename" validate:"max=200"`
}

// ToListingInput converts the payload to service input.
func (p *ListingPayload) ToListingInput() service.ListingInput {
	return service.ListingInput{
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		Location:      p.Location,
		Country:       p.Country,
		Category:      p.Category,
		Lon:           p.Lon,
		Lat:           p.Lat,
		ImageURL:      p.ImageURL,
		ImageFilename: p.ImageFilename,
	}
}

// ReviewPayload is the JSON body of a review create request.
type ReviewPayload struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// parsePositiveInt parses a positive integer leniently: empty, garbage and
// non-positive inputs all yield the fallback.
func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}

	return n
}
