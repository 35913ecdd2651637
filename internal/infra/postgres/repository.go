package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"listing-discovery-service/internal/domain"
)

// rankWeights is the ts_rank weight vector {D, C, B, A}. Title carries
// weight A, location B, country and category C, so the effective ratio is
// 5:3:2:2 across title/location/country/category.
const rankWeights = "{0.1, 0.4, 0.6, 1.0}"

// Repository implements domain.ListingRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL listing repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search returns one page of listings matching the filter.
func (r *Repository) Search(ctx context.Context, filter domain.FilterSpec, sort domain.SortSpec, skip, limit int) ([]*domain.Listing, error) {
	var models []ListingModel

	query := r.buildFilterQuery(filter).WithContext(ctx).
		Offset(skip).
		Limit(limit)

	query = r.applyOrdering(query, filter, sort)

	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("searching listings: %w", err)
	}

	listings := make([]*domain.Listing, len(models))
	for i, m := range models {
		listings[i] = m.ToDomain()
	}

	return listings, nil
}

// Count returns the total number of listings matching the filter.
func (r *Repository) Count(ctx context.Context, filter domain.FilterSpec) (int64, error) {
	var count int64
	if err := r.buildFilterQuery(filter).WithContext(ctx).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}

	return count, nil
}

// Suggest returns up to limit card projections matching the filter.
func (r *Repository) Suggest(ctx context.Context, filter domain.FilterSpec, limit int) ([]domain.ListingCard, error) {
	var models []ListingModel

	err := r.buildFilterQuery(filter).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("suggesting listings: %w", err)
	}

	cards := make([]domain.ListingCard, len(models))
	for i, m := range models {
		cards[i] = m.ToCard()
	}

	return cards, nil
}

// GetByID retrieves a single listing by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	var model ListingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}

		return nil, fmt.Errorf("getting listing by id: %w", err)
	}

	return model.ToDomain(), nil
}

// Create stores a new listing.
func (r *Repository) Create(ctx context.Context, listing *domain.Listing) error {
	model := FromDomain(listing)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("creating listing: %w", err)
	}

	listing.ID = model.ID
	listing.CreatedAt = model.CreatedAt
	listing.UpdatedAt = model.UpdatedAt

	return nil
}

// Update persists all fields of an existing listing.
func (r *Repository) Update(ctx context.Context, listing *domain.Listing) error {
	model := FromDomain(listing)
	result := r.db.WithContext(ctx).Model(&ListingModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("updating listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrListingNotFound
	}

	return nil
}

// Delete removes a listing together with its reviews and bookmarks.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&ReviewModel{}).Error; err != nil {
			return fmt.Errorf("deleting listing reviews: %w", err)
		}
		if err := tx.Where("listing_id = ?", id).Delete(&SavedListingModel{}).Error; err != nil {
			return fmt.Errorf("deleting listing bookmarks: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&ListingModel{})
		if result.Error != nil {
			return fmt.Errorf("deleting listing: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrListingNotFound
		}

		return nil
	})
}

// TopCategories returns category names ordered by listing count descending.
func (r *Repository) TopCategories(ctx context.Context, limit int) ([]string, error) {
	categories := []string{}
	err := r.db.WithContext(ctx).Model(&ListingModel{}).
		Where("category <> ''").
		Group("category").
		Order("COUNT(*) DESC").
		Limit(limit).
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating top categories: %w", err)
	}

	return categories, nil
}

// TopLocations returns (location, country) pairs ordered by listing count
// descending.
func (r *Repository) TopLocations(ctx context.Context, limit int) ([]domain.LocationCount, error) {
	locations := []domain.LocationCount{}
	err := r.db.WithContext(ctx).Model(&ListingModel{}).
		Where("location <> '' AND country <> ''").
		Select("location, country, COUNT(*) AS count").
		Group("location, country").
		Order("count DESC").
		Limit(limit).
		Scan(&locations).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating top locations: %w", err)
	}

	return locations, nil
}

// buildFilterQuery builds the WHERE clause for a filter spec.
// All parameters are bound through GORM's parameterized queries.
func (r *Repository) buildFilterQuery(filter domain.FilterSpec) *gorm.DB {
	query := r.db.Model(&ListingModel{})

	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}

	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}

	switch filter.TextMode {
	case domain.TextModeSubstring:
		// Short queries: literal case-insensitive substring, ORed across
		// the text columns. LIKE metacharacters are escaped so the user's
		// input matches literally.
		pattern := "%" + domain.EscapeLike(filter.Query) + "%"
		query = query.Where(
			"(title ILIKE ? OR location ILIKE ? OR country ILIKE ? OR category ILIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	case domain.TextModeFullText:
		query = query.Where(
			"search_vector @@ websearch_to_tsquery('simple', ?)",
			filter.Query,
		)
	}

	return query
}

// applyOrdering adds the ORDER BY clause. Every ordering ends with id
// descending so pages stay stable when primary keys tie.
func (r *Repository) applyOrdering(query *gorm.DB, filter domain.FilterSpec, sort domain.SortSpec) *gorm.DB {
	if sort.Relevance && filter.Query != "" {
		expr := gorm.Expr(
			"ts_rank('"+rankWeights+"', search_vector, websearch_to_tsquery('simple', ?)) DESC, id DESC",
			filter.Query,
		)

		return query.Clauses(clause.OrderBy{Expression: expr})
	}

	switch sort.Key {
	case domain.SortPriceAsc:
		return query.Order("price ASC, id DESC")
	case domain.SortPriceDesc:
		return query.Order("price DESC, id DESC")
	case domain.SortRatingDesc:
		return query.Order("rating_avg DESC, rating_count DESC, id DESC")
	default:
		// Newest first. Listing ids are random UUIDs, so recency comes from
		// created_at with id as the deterministic tiebreaker.
		return query.Order("created_at DESC, id DESC")
	}
}
