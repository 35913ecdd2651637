package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"listing-discovery-service/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores the review and recomputes the parent listing's rating
// fields inside the same transaction.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := &ReviewModel{
			ListingID: review.ListingID,
			AuthorID:  review.AuthorID,
			Rating:    review.Rating,
			Comment:   review.Comment,
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("creating review: %w", err)
		}

		review.ID = model.ID
		review.CreatedAt = model.CreatedAt

		return recalcListingRating(tx, review.ListingID)
	})
}

// Delete removes the review and recomputes the parent listing's rating
// fields.
func (r *ReviewRepository) Delete(ctx context.Context, listingID, reviewID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND listing_id = ?", reviewID, listingID).
			Delete(&ReviewModel{})
		if result.Error != nil {
			return fmt.Errorf("deleting review: %w", result.Error)
		}

		return recalcListingRating(tx, listingID)
	})
}

// recalcListingRating rewrites the listing's derived rating_avg and
// rating_count from the surviving reviews. Zero reviews resets both to 0.
func recalcListingRating(tx *gorm.DB, listingID string) error {
	var stats struct {
		Avg   float64
		Count int64
	}

	err := tx.Model(&ReviewModel{}).
		Where("listing_id = ?", listingID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("aggregating review stats: %w", err)
	}

	err = tx.Model(&ListingModel{}).
		Where("id = ?", listingID).
		Updates(map[string]interface{}{
			"rating_avg":   stats.Avg,
			"rating_count": stats.Count,
		}).Error
	if err != nil {
		return fmt.Errorf("updating listing rating: %w", err)
	}

	return nil
}
