package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-discovery-service/internal/domain"
)

func TestReviewRepository_CreateRecomputesRating(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	repo := NewRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	listing := seedListing(t, repo, "Rated place", "Lisbon", "Portugal", domain.CategoryRooms, 60)

	require.NoError(t, reviews.Create(ctx, &domain.Review{ListingID: listing.ID, AuthorID: "a", Rating: 5}))
	require.NoError(t, reviews.Create(ctx, &domain.Review{ListingID: listing.ID, AuthorID: "b", Rating: 2}))

	got, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got.RatingAvg, 0.001)
	assert.Equal(t, 2, got.RatingCount)
}

func TestReviewRepository_DeleteRecomputesRating(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	repo := NewRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	listing := seedListing(t, repo, "Rated place", "Lisbon", "Portugal", domain.CategoryRooms, 60)

	first := &domain.Review{ListingID: listing.ID, AuthorID: "a", Rating: 5}
	second := &domain.Review{ListingID: listing.ID, AuthorID: "b", Rating: 1}
	require.NoError(t, reviews.Create(ctx, first))
	require.NoError(t, reviews.Create(ctx, second))

	require.NoError(t, reviews.Delete(ctx, listing.ID, second.ID))

	got, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.RatingAvg, 0.001)
	assert.Equal(t, 1, got.RatingCount)

	// Removing the last review resets the derived rating
	require.NoError(t, reviews.Delete(ctx, listing.ID, first.ID))

	got, err = repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Zero(t, got.RatingAvg)
	assert.Zero(t, got.RatingCount)
}
