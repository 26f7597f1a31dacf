package scoring

import (
	"math"

	"felt/internal/model"
)

// Round1 rounds to one decimal place, the precision used everywhere a
// score is stored or displayed.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Aggregate reduces a venue's raw reviews into per-category averages.
// A category with zero contributing reviews maps to nil, never 0; a
// review that does not carry a category (older product variants skipped
// the extended ones) is excluded from that category's mean only.
func Aggregate(reviews []model.Review) map[model.Category]*float64 {
	sums := make(map[model.Category]int, len(model.Categories))
	counts := make(map[model.Category]int, len(model.Categories))

	for _, review := range reviews {
		for _, info := range model.Categories {
			if value, ok := review.Ratings[info.Key]; ok {
				sums[info.Key] += value
				counts[info.Key]++
			}
		}
	}

	averages := make(map[model.Category]*float64, len(model.Categories))
	for _, info := range model.Categories {
		if counts[info.Key] == 0 {
			averages[info.Key] = nil
			continue
		}
		avg := Round1(float64(sums[info.Key]) / float64(counts[info.Key]))
		averages[info.Key] = &avg
	}
	return averages
}

// CategoryCounts reports how many reviews contributed to each category.
// Extended categories commonly trail the required ones here.
func CategoryCounts(reviews []model.Review) map[model.Category]int {
	counts := make(map[model.Category]int, len(model.Categories))
	for _, review := range reviews {
		for _, info := range model.Categories {
			if _, ok := review.Ratings[info.Key]; ok {
				counts[info.Key]++
			}
		}
	}
	return counts
}

// Overall is the mean of all category averages that have a value,
// rounded to one decimal. Nil when no category has a value.
func Overall(averages map[model.Category]*float64) *float64 {
	var sum float64
	var n int
	for _, info := range model.Categories {
		if avg := averages[info.Key]; avg != nil {
			sum += *avg
			n++
		}
	}
	if n == 0 {
		return nil
	}
	overall := Round1(sum / float64(n))
	return &overall
}

// Apply recomputes every derived rating field on the venue from its raw
// reviews. Called wholesale after each full load and each write; the
// derived fields are never updated incrementally.
func Apply(v *model.Venue) {
	v.Ratings = Aggregate(v.Reviews)
	v.ReviewCount = len(v.Reviews)
	v.OverallScore = Overall(v.Ratings)
}

// ReviewAverage is the mean of the categories one review actually rated,
// with the contributing count. Used for the per-review badge.
func ReviewAverage(review model.Review) (float64, int) {
	var sum, n int
	for _, info := range model.Categories {
		if value, ok := review.Ratings[info.Key]; ok {
			sum += value
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return Round1(float64(sum) / float64(n)), n
}
