package model

import "time"

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64
	Lng float64
}

// Bounds is a rectangular geographic viewport.
type Bounds struct {
	North float64
	South float64
	West  float64
	East  float64
}

// Contains reports whether c falls inside the bounds.
func (b Bounds) Contains(c Coord) bool {
	return c.Lat <= b.North && c.Lat >= b.South && c.Lng >= b.West && c.Lng <= b.East
}

// SquaredDistance is the squared Euclidean distance between two coordinates.
// Not geodesic; fine at city scale where only ordering matters.
func SquaredDistance(a, b Coord) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return dLat*dLat + dLng*dLng
}

// Category identifies one rating axis.
type Category string

const (
	CategoryTableQuality   Category = "table_quality"
	CategoryCompetition    Category = "competition"
	CategoryAtmosphere     Category = "atmosphere"
	CategoryElbowRoom      Category = "elbow_room"
	CategoryWaitTime       Category = "wait_time"
	CategoryCueQuality     Category = "cue_quality"
	CategoryDrinkSelection Category = "drink_selection"
	CategoryCrowdVibe      Category = "crowd_vibe"
)

// CategoryInfo is the process-wide configuration for one rating category.
type CategoryInfo struct {
	Key        Category
	Label      string
	Subtitle   string
	LabelLeft  string
	LabelRight string
	Extended   bool // added after launch; older reviews may not carry it
}

// Categories is the fixed, ordered rating category set.
var Categories = []CategoryInfo{
	{Key: CategoryTableQuality, Label: "Table Quality", Subtitle: "cloth condition, levelness, rails", LabelLeft: "rough", LabelRight: "pristine"},
	{Key: CategoryCompetition, Label: "Competition", Subtitle: "player skill level", LabelLeft: "casuals", LabelRight: "sharks"},
	{Key: CategoryAtmosphere, Label: "Atmosphere", Subtitle: "lighting, music, vibe", LabelLeft: "beat", LabelRight: "electric"},
	{Key: CategoryElbowRoom, Label: "Elbow Room", Subtitle: "space around tables, crowding", LabelLeft: "tight", LabelRight: "spacious"},
	{Key: CategoryWaitTime, Label: "Wait Time", Subtitle: "table availability", LabelLeft: "long waits", LabelRight: "no wait"},
	{Key: CategoryCueQuality, Label: "Cue Quality", Subtitle: "stick condition, chalk, tips", LabelLeft: "rough", LabelRight: "pro grade"},
	{Key: CategoryDrinkSelection, Label: "Drink Selection", Subtitle: "variety, pricing, quality", LabelLeft: "basic", LabelRight: "elite", Extended: true},
	{Key: CategoryCrowdVibe, Label: "Crowd Vibe", Subtitle: "friendliness, conversation", LabelLeft: "reserved", LabelRight: "welcoming", Extended: true},
}

// ScorecardOrder is the display order of category rows on the scorecard.
var ScorecardOrder = []Category{
	CategoryAtmosphere,
	CategoryCrowdVibe,
	CategoryDrinkSelection,
	CategoryTableQuality,
	CategoryCueQuality,
	CategoryElbowRoom,
	CategoryCompetition,
	CategoryWaitTime,
}

// CategoryLabel returns the display label for a category key.
func CategoryLabel(key Category) string {
	for _, c := range Categories {
		if c.Key == key {
			return c.Label
		}
	}
	return string(key)
}

// Review is one submitted scorecard for a venue. Immutable once created.
type Review struct {
	ID        int64
	VenueID   string
	Ratings   map[Category]int // 1-5; missing key means not collected
	Notes     string
	UserID    string // empty for anonymous reviews
	Username  string
	CreatedAt time.Time
}

// NewReview is the data for inserting a review.
type NewReview struct {
	VenueID  string
	Ratings  map[Category]int
	Notes    string
	UserID   string
	Username string
}

// Venue is a pool-playing establishment with derived rating fields.
// Ratings, ReviewCount and OverallScore are recomputed from Reviews on
// every full load; only the hours cache fields are mutated in place.
type Venue struct {
	ID           string
	Name         string
	Neighborhood string
	Address      string
	Coord        Coord
	TableCount   *int
	Price        string
	PlaceID      string // external place identifier for hours lookups

	HoursData    string // raw provider schedule JSON; empty means absent
	HoursUpdated *time.Time

	Ratings      map[Category]*float64
	ReviewCount  int
	OverallScore *float64
	Reviews      []Review
}

// Suggestion types.
const (
	SuggestionNewVenue  = "new_venue"
	SuggestionVenueInfo = "venue_info"
)

// Suggestion is an append-only user submission: a new venue proposal or
// missing info (price, table count) for an existing one.
type Suggestion struct {
	Type      string // SuggestionNewVenue or SuggestionVenueInfo
	VenueID   string // empty for new_venue
	VenueName string
	Data      map[string]string
}

// User is the signed-in identity, if any.
type User struct {
	ID       string
	Username string
	Email    string
}
