package scoring

import (
	"testing"

	"felt/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(ratings map[model.Category]int) model.Review {
	return model.Review{VenueID: "v1", Ratings: ratings}
}

func fullRatings(value int) map[model.Category]int {
	ratings := make(map[model.Category]int, len(model.Categories))
	for _, info := range model.Categories {
		ratings[info.Key] = value
	}
	return ratings
}

func TestAggregate_NoReviews(t *testing.T) {
	averages := Aggregate(nil)

	for _, info := range model.Categories {
		assert.Nil(t, averages[info.Key], "category %s should have no value", info.Key)
	}
	assert.Nil(t, Overall(averages))
}

func TestAggregate_MissingCategoryExcludedFromMean(t *testing.T) {
	// Two reviews rate table quality 4 and 5; a third omits it entirely.
	// The average must be 4.5 over two contributors, not 3.0 over three.
	reviews := []model.Review{
		review(map[model.Category]int{model.CategoryTableQuality: 4}),
		review(map[model.Category]int{model.CategoryTableQuality: 5}),
		review(map[model.Category]int{model.CategoryAtmosphere: 3}),
	}

	averages := Aggregate(reviews)

	require.NotNil(t, averages[model.CategoryTableQuality])
	assert.Equal(t, 4.5, *averages[model.CategoryTableQuality])
	require.NotNil(t, averages[model.CategoryAtmosphere])
	assert.Equal(t, 3.0, *averages[model.CategoryAtmosphere])
	assert.Nil(t, averages[model.CategoryCrowdVibe])

	counts := CategoryCounts(reviews)
	assert.Equal(t, 2, counts[model.CategoryTableQuality])
	assert.Equal(t, 1, counts[model.CategoryAtmosphere])
	assert.Equal(t, 0, counts[model.CategoryCrowdVibe])
}

func TestAggregate_RoundsToOneDecimal(t *testing.T) {
	reviews := []model.Review{
		review(map[model.Category]int{model.CategoryCueQuality: 4}),
		review(map[model.Category]int{model.CategoryCueQuality: 4}),
		review(map[model.Category]int{model.CategoryCueQuality: 5}),
	}

	averages := Aggregate(reviews)

	require.NotNil(t, averages[model.CategoryCueQuality])
	assert.Equal(t, 4.3, *averages[model.CategoryCueQuality]) // 13/3 = 4.333...
}

func TestOverall_MeanOfContributingCategories(t *testing.T) {
	tests := []struct {
		name     string
		reviews  []model.Review
		expected *float64
	}{
		{
			name:     "no_reviews_no_value",
			reviews:  nil,
			expected: nil,
		},
		{
			name: "single_full_review",
			reviews: []model.Review{
				review(fullRatings(4)),
			},
			expected: ptr(4.0),
		},
		{
			name: "extended_categories_missing",
			reviews: []model.Review{
				review(map[model.Category]int{
					model.CategoryTableQuality: 5,
					model.CategoryCompetition:  3,
				}),
			},
			// Mean of the two category means only, not over eight.
			expected: ptr(4.0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			overall := Overall(Aggregate(tc.reviews))
			if tc.expected == nil {
				assert.Nil(t, overall)
				return
			}
			require.NotNil(t, overall)
			assert.Equal(t, *tc.expected, *overall)
		})
	}
}

func TestApply_RecomputesDerivedFields(t *testing.T) {
	venue := model.Venue{
		ID: "v1",
		Reviews: []model.Review{
			review(fullRatings(5)),
			review(fullRatings(3)),
		},
		// Stale derived values that must be overwritten.
		ReviewCount:  99,
		OverallScore: ptr(1.0),
	}

	Apply(&venue)

	assert.Equal(t, 2, venue.ReviewCount)
	require.NotNil(t, venue.OverallScore)
	assert.Equal(t, 4.0, *venue.OverallScore)
	for _, info := range model.Categories {
		require.NotNil(t, venue.Ratings[info.Key])
		assert.Equal(t, 4.0, *venue.Ratings[info.Key])
	}
}

func TestReviewAverage(t *testing.T) {
	avg, n := ReviewAverage(review(map[model.Category]int{
		model.CategoryTableQuality: 5,
		model.CategoryWaitTime:     2,
	}))
	assert.Equal(t, 3.5, avg)
	assert.Equal(t, 2, n)

	avg, n = ReviewAverage(review(nil))
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, n)
}

func ptr(v float64) *float64 { return &v }
