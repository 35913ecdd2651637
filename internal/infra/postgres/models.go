package postgres

import (
	"time"

	"listing-discovery-service/internal/domain"
)

// ListingModel is the GORM model for the listings table.
type ListingModel struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string  `gorm:"type:varchar(200);not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	Location    string  `gorm:"type:varchar(200);not null"`
	Country     string  `gorm:"type:varchar(100);not null"`
	Category    string  `gorm:"type:varchar(50);not null;default:'Trending'"`

	// Geometry point; (0,0) is the unknown-location sentinel.
	Longitude float64 `gorm:"type:double precision;not null;default:0"`
	Latitude  float64 `gorm:"type:double precision;not null;default:0"`

	RatingAvg   float64 `gorm:"type:decimal(3,2);not null;default:0"`
	RatingCount int     `gorm:"not null;default:0"`

	ImageURL      string `gorm:"type:varchar(500)"`
	ImageFilename string `gorm:"type:varchar(200)"`

	OwnerID string `gorm:"type:varchar(100);index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ListingModel.
func (ListingModel) TableName() string {
	return "listings"
}

// ToDomain converts ListingModel to domain.Listing.
func (m *ListingModel) ToDomain() *domain.Listing {
	return &domain.Listing{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Price:         m.Price,
		Location:      m.Location,
		Country:       m.Country,
		Category:      domain.Category(m.Category),
		Geometry:      domain.GeoPoint{Lon: m.Longitude, Lat: m.Latitude},
		RatingAvg:     m.RatingAvg,
		RatingCount:   m.RatingCount,
		ImageURL:      m.ImageURL,
		ImageFilename: m.ImageFilename,
		OwnerID:       m.OwnerID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToCard projects the model to the card shape without loading description.
func (m *ListingModel) ToCard() domain.ListingCard {
	return domain.ListingCard{
		ID:          m.ID,
		Title:       m.Title,
		Location:    m.Location,
		Country:     m.Country,
		Category:    domain.Category(m.Category),
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		RatingAvg:   m.RatingAvg,
		RatingCount: m.RatingCount,
	}
}

// FromDomain creates a ListingModel from domain.Listing.
func FromDomain(l *domain.Listing) *ListingModel {
	return &ListingModel{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Price:         l.Price,
		Location:      l.Location,
		Country:       l.Country,
		Category:      string(l.Category),
		Longitude:     l.Geometry.Lon,
		Latitude:      l.Geometry.Lat,
		RatingAvg:     l.RatingAvg,
		RatingCount:   l.RatingCount,
		ImageURL:      l.ImageURL,
		ImageFilename: l.ImageFilename,
		OwnerID:       l.OwnerID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ListingID string    `gorm:"type:uuid;not null;index"`
	AuthorID  string    `gorm:"type:varchar(100);not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for ReviewModel.
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts ReviewModel to domain.Review.
func (m *ReviewModel) ToDomain() *domain.Review {
	return &domain.Review{
		ID:        m.ID,
		ListingID: m.ListingID,
		AuthorID:  m.AuthorID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}

// SavedListingModel is the GORM model for the saved_listings join table.
type SavedListingModel struct {
	UserID    string    `gorm:"type:varchar(100);primaryKey"`
	ListingID string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for SavedListingModel.
func (SavedListingModel) TableName() string {
	return "saved_listings"
}
