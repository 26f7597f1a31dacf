package store

import (
	"context"
	"testing"
	"time"

	"felt/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedVenue(t *testing.T, s *SQLite, id, name, neighborhood string) {
	t.Helper()
	err := s.InsertVenue(context.Background(), model.Venue{
		ID:           id,
		Name:         name,
		Neighborhood: neighborhood,
		Address:      "123 Somewhere St",
		Coord:        model.Coord{Lat: 40.72, Lng: -74.0},
	})
	require.NoError(t, err)
}

func TestInsertVenue_ReseedKeepsExistingRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seedVenue(t, s, "v1", "Corner Pocket", "East Village")

	// A second seed of the same id must not error, and must not
	// overwrite what is already there.
	err := s.InsertVenue(ctx, model.Venue{
		ID:           "v1",
		Name:         "Renamed Pocket",
		Neighborhood: "Astoria",
		Address:      "456 Elsewhere Ave",
		Coord:        model.Coord{Lat: 40.76, Lng: -73.92},
	})
	require.NoError(t, err)

	venues, err := s.Venues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Corner Pocket", venues[0].Name)
	assert.Equal(t, "East Village", venues[0].Neighborhood)
}

func TestLoadSnapshot_AggregatesPerVenue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seedVenue(t, s, "v1", "Corner Pocket", "East Village")
	seedVenue(t, s, "v2", "Golden Cue", "Astoria")

	require.NoError(t, s.InsertReview(ctx, model.NewReview{
		VenueID: "v1",
		Ratings: map[model.Category]int{
			model.CategoryTableQuality: 4,
			model.CategoryCompetition:  4,
			model.CategoryAtmosphere:   4,
			model.CategoryElbowRoom:    4,
			model.CategoryWaitTime:     4,
			model.CategoryCueQuality:   4,
		},
		Notes:    "solid tables",
		Username: "pat",
		UserID:   "u1",
	}))
	require.NoError(t, s.InsertReview(ctx, model.NewReview{
		VenueID: "v1",
		Ratings: map[model.Category]int{
			model.CategoryTableQuality: 5,
			model.CategoryCompetition:  3,
			model.CategoryAtmosphere:   4,
			model.CategoryElbowRoom:    2,
			model.CategoryWaitTime:     5,
			model.CategoryCueQuality:   5,
			model.CategoryCrowdVibe:    5,
		},
	}))

	venues, err := LoadSnapshot(ctx, s)
	require.NoError(t, err)
	require.Len(t, venues, 2)

	// Ordered by name.
	corner := venues[0]
	golden := venues[1]
	assert.Equal(t, "Corner Pocket", corner.Name)
	assert.Equal(t, "Golden Cue", golden.Name)

	assert.Equal(t, 2, corner.ReviewCount)
	require.NotNil(t, corner.Ratings[model.CategoryTableQuality])
	assert.Equal(t, 4.5, *corner.Ratings[model.CategoryTableQuality])
	// One-contributor extended category averages over one, not two.
	require.NotNil(t, corner.Ratings[model.CategoryCrowdVibe])
	assert.Equal(t, 5.0, *corner.Ratings[model.CategoryCrowdVibe])
	assert.Nil(t, corner.Ratings[model.CategoryDrinkSelection])
	require.NotNil(t, corner.OverallScore)

	assert.Equal(t, 0, golden.ReviewCount)
	assert.Nil(t, golden.OverallScore)
	assert.Empty(t, golden.Reviews)
}

func TestReviews_AnonymousAuthorRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seedVenue(t, s, "v1", "Corner Pocket", "East Village")
	require.NoError(t, s.InsertReview(ctx, model.NewReview{
		VenueID: "v1",
		Ratings: map[model.Category]int{model.CategoryAtmosphere: 3},
	}))

	reviews, err := s.Reviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	assert.Empty(t, reviews[0].UserID)
	assert.Empty(t, reviews[0].Username)
	assert.Equal(t, 3, reviews[0].Ratings[model.CategoryAtmosphere])
	_, ok := reviews[0].Ratings[model.CategoryTableQuality]
	assert.False(t, ok, "uncollected categories must stay absent, not zero")
	assert.False(t, reviews[0].CreatedAt.IsZero())
}

func TestPatchHours(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seedVenue(t, s, "v1", "Corner Pocket", "East Village")

	fetched := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	blob := `{"weekdayDescriptions": ["Monday: 11:00 AM – 2:00 AM"]}`
	require.NoError(t, s.PatchHours(ctx, "v1", blob, fetched))

	venues, err := s.Venues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, blob, venues[0].HoursData)
	require.NotNil(t, venues[0].HoursUpdated)
	assert.True(t, venues[0].HoursUpdated.Equal(fetched))
}

func TestInsertSuggestion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.InsertSuggestion(ctx, model.Suggestion{
		Type:      "new_venue",
		VenueName: "Rack City",
		Data:      map[string]string{"address": "99 Bank St", "tables": "4"},
	})
	assert.NoError(t, err)

	err = s.InsertSuggestion(ctx, model.Suggestion{
		Type:      "venue_info",
		VenueID:   "v1",
		VenueName: "Corner Pocket",
		Data:      map[string]string{"price": "$2/game"},
	})
	assert.NoError(t, err)
}

func TestIdentity_EmptyProfile(t *testing.T) {
	s := openTestStore(t)

	user, err := s.Identity(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}
