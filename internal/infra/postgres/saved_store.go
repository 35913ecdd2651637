package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// SavedStore implements domain.SavedListingStore using PostgreSQL.
type SavedStore struct {
	db *gorm.DB
}

// NewSavedStore creates a new saved-listing store.
func NewSavedStore(db *gorm.DB) *SavedStore {
	return &SavedStore{db: db}
}

// SavedIDs returns the viewer's saved listing id set, newest bookmark first.
func (s *SavedStore) SavedIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := s.db.WithContext(ctx).Model(&SavedListingModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("listing_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("loading saved listing ids: %w", err)
	}

	return ids, nil
}

// ToggleSave flips the bookmark for (userID, listingID) and reports the new
// state.
func (s *SavedStore) ToggleSave(ctx context.Context, userID, listingID string) (bool, error) {
	var saved bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing SavedListingModel
		err := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).
			First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).
				Delete(&SavedListingModel{}).Error; err != nil {
				return fmt.Errorf("removing bookmark: %w", err)
			}
			saved = false

			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&SavedListingModel{UserID: userID, ListingID: listingID}).Error; err != nil {
				return fmt.Errorf("adding bookmark: %w", err)
			}
			saved = true

			return nil
		default:
			return fmt.Errorf("checking bookmark: %w", err)
		}
	})
	if err != nil {
		return false, err
	}

	return saved, nil
}
