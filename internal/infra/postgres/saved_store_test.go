package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-discovery-service/internal/domain"
)

func TestSavedStore_ToggleFlipsState(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	repo := NewRepository(db)
	store := NewSavedStore(db)
	ctx := context.Background()

	listing := seedListing(t, repo, "Toggle target", "Lisbon", "Portugal", domain.CategoryRooms, 60)

	saved, err := store.ToggleSave(ctx, "user-1", listing.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = store.ToggleSave(ctx, "user-1", listing.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	ids, err := store.SavedIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSavedStore_SavedIDsPerUser(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	repo := NewRepository(db)
	store := NewSavedStore(db)
	ctx := context.Background()

	first := seedListing(t, repo, "First pick", "Oslo", "Norway", domain.CategoryCabins, 100)
	second := seedListing(t, repo, "Second pick", "Lisbon", "Portugal", domain.CategoryRooms, 60)

	_, err := store.ToggleSave(ctx, "user-1", first.ID)
	require.NoError(t, err)
	_, err = store.ToggleSave(ctx, "user-1", second.ID)
	require.NoError(t, err)
	_, err = store.ToggleSave(ctx, "user-2", second.ID)
	require.NoError(t, err)

	ids, err := store.SavedIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	ids, err = store.SavedIDs(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, ids)

	ids, err = store.SavedIDs(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
