package browse

import (
	"sort"
	"strings"
	"time"

	"felt/internal/hours"
	"felt/internal/model"
)

// Sort identifies one ordering strategy for the visible list.
type Sort string

const (
	SortRating       Sort = "rating"
	SortNameAZ       Sort = "name-az"
	SortNameZA       Sort = "name-za"
	SortNeighborhood Sort = "neighborhood"
	SortNearest      Sort = "nearest"
)

// FilterAll is the neighborhood filter sentinel meaning no filtering.
const FilterAll = "all"

// Params is the view state the pipeline depends on. The pipeline itself
// is pure; callers snapshot state into Params and apply.
type Params struct {
	Viewport     *model.Bounds // nil when the map surface is not active
	Neighborhood string        // FilterAll or empty disables
	OpenNowOnly  bool
	Query        string
	Sort         Sort
	Location     *model.Coord // required for SortNearest; nil makes it a no-op
	Now          time.Time    // instant for the open-now evaluation
}

// Visible computes the ordered visible subset. Stages run in a fixed
// order, each narrowing the candidate set: viewport, neighborhood,
// open-now (cached hours only), then text query. The chosen sort is
// applied last and is stable, so it can never change membership.
func Visible(venues []model.Venue, p Params) []model.Venue {
	filtered := make([]model.Venue, 0, len(venues))
	for _, v := range venues {
		if p.Viewport != nil && !p.Viewport.Contains(v.Coord) {
			continue
		}
		if p.Neighborhood != "" && p.Neighborhood != FilterAll && v.Neighborhood != p.Neighborhood {
			continue
		}
		if p.OpenNowOnly {
			if v.HoursData == "" || hours.StatusOf(v.HoursData, p.Now) != hours.StatusOpen {
				continue
			}
		}
		if !matchesQuery(v, p.Query) {
			continue
		}
		filtered = append(filtered, v)
	}
	sortVenues(filtered, p.Sort, p.Location)
	return filtered
}

func matchesQuery(v model.Venue, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Name), q) ||
		strings.Contains(strings.ToLower(v.Neighborhood), q) ||
		strings.Contains(strings.ToLower(v.Address), q)
}

func sortVenues(venues []model.Venue, key Sort, location *model.Coord) {
	switch key {
	case SortNameAZ:
		sort.SliceStable(venues, func(i, j int) bool {
			return strings.ToLower(venues[i].Name) < strings.ToLower(venues[j].Name)
		})
	case SortNameZA:
		sort.SliceStable(venues, func(i, j int) bool {
			return strings.ToLower(venues[i].Name) > strings.ToLower(venues[j].Name)
		})
	case SortNeighborhood:
		sort.SliceStable(venues, func(i, j int) bool {
			left, right := venues[i], venues[j]
			if left.Neighborhood != right.Neighborhood {
				return strings.ToLower(left.Neighborhood) < strings.ToLower(right.Neighborhood)
			}
			return strings.ToLower(left.Name) < strings.ToLower(right.Name)
		})
	case SortNearest:
		// No-op ordering until a location has been captured.
		if location == nil {
			return
		}
		sort.SliceStable(venues, func(i, j int) bool {
			return model.SquaredDistance(venues[i].Coord, *location) <
				model.SquaredDistance(venues[j].Coord, *location)
		})
	default: // SortRating
		sort.SliceStable(venues, func(i, j int) bool {
			return scoreOf(venues[i]) > scoreOf(venues[j])
		})
	}
}

// scoreOf treats a missing overall score as lowest.
func scoreOf(v model.Venue) float64 {
	if v.OverallScore == nil {
		return 0
	}
	return *v.OverallScore
}

// Neighborhoods returns the distinct neighborhoods of the loaded set,
// sorted alphabetically, for the filter menu.
func Neighborhoods(venues []model.Venue) []string {
	seen := make(map[string]bool, len(venues))
	var names []string
	for _, v := range venues {
		if v.Neighborhood == "" || seen[v.Neighborhood] {
			continue
		}
		seen[v.Neighborhood] = true
		names = append(names, v.Neighborhood)
	}
	sort.Strings(names)
	return names
}
