// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"strings"
	"time"
)

// Category is a listing category. The set of valid values is closed;
// anything outside it is rejected by ResolveCategory, never silently matched.
type Category string

const (
	CategoryTrending     Category = "Trending"
	CategoryRooms        Category = "Rooms"
	CategoryIconicCities Category = "Iconic cities"
	CategoryAmazingViews Category = "Amazing views"
	CategoryBeachfront   Category = "Beachfront"
	CategoryAmazingPools Category = "Amazing pools"
	CategoryCabins       Category = "Cabins"
	CategoryCamping      Category = "Camping"
	CategoryLakefront    Category = "Lakefront"
	CategoryArctic       Category = "Arctic"
	CategoryIslands      Category = "Islands"
	CategoryCastles      Category = "Castles"
	CategoryFarms        Category = "Farms"
)

// DefaultCategory is assigned to listings created without a category.
const DefaultCategory = CategoryTrending

// Categories returns the closed category enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryTrending,
		CategoryRooms,
		CategoryIconicCities,
		CategoryAmazingViews,
		CategoryBeachfront,
		CategoryAmazingPools,
		CategoryCabins,
		CategoryCamping,
		CategoryLakefront,
		CategoryArctic,
		CategoryIslands,
		CategoryCastles,
		CategoryFarms,
	}
}

// ResolveCategory accepts a raw category value only on an exact,
// case-sensitive match against the enumeration. Unknown values resolve to
// the empty category (treated as "no category filter").
func ResolveCategory(raw string) Category {
	for _, c := range Categories() {
		if string(c) == raw {
			return c
		}
	}

	return ""
}

// MatchCategoryFold finds the category whose name equals s
// case-insensitively. Used to promote a typed query like "farms" to a
// category filter.
func MatchCategoryFold(s string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}

	return "", false
}

// GeoPoint is a lon/lat coordinate pair. The zero value is the "no known
// location" sentinel.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// IsZero reports whether the point is the unknown-location sentinel.
func (p GeoPoint) IsZero() bool {
	return p.Lon == 0 && p.Lat == 0
}

// Listing represents a property listing.
type Listing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Country     string   `json:"country"`
	Category    Category `json:"category"`

	Geometry GeoPoint `json:"geometry"`

	// Derived from reviews, recomputed on every review write.
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`

	ImageURL      string `json:"image_url,omitempty"`
	ImageFilename string `json:"-"`

	OwnerID string `json:"owner_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewListing creates a Listing with the category defaulted.
func NewListing(title, location, country string, price float64) *Listing {
	return &Listing{
		Title:    title,
		Location: location,
		Country:  country,
		Price:    price,
		Category: DefaultCategory,
	}
}

// ListingCard is the minimal display-friendly projection returned by the
// suggestion endpoint and the search result list.
type ListingCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Country     string   `json:"country"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url,omitempty"`
	RatingAvg   float64  `json:"rating_avg"`
	RatingCount int      `json:"rating_count"`
}

// Card projects the listing to its card shape.
func (l *Listing) Card() ListingCard {
	return ListingCard{
		ID:          l.ID,
		Title:       l.Title,
		Location:    l.Location,
		Country:     l.Country,
		Category:    l.Category,
		Price:       l.Price,
		ImageURL:    l.ImageURL,
		RatingAvg:   l.RatingAvg,
		RatingCount: l.RatingCount,
	}
}

// Review is a rating attached to a listing.
type Review struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationCount is one entry of the top-locations aggregation.
type LocationCount struct {
	Location string `json:"location"`
	Country  string `json:"country"`
	Count    int64  `json:"count"`
}
