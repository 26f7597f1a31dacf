package model

import "time"

// Bubble Tea message types

// ErrorMsg represents an error surfaced to the user.
type ErrorMsg struct {
	Err error
}

// NoticeMsg is a transient informational banner (capability denials,
// confirmations) that does not indicate failure.
type NoticeMsg struct {
	Text string
}

// VenuesLoadedMsg is sent when the full venue+review snapshot is loaded
// and aggregated.
type VenuesLoadedMsg struct {
	Venues []Venue
}

// VenuesLoadFailedMsg is sent when a background full load fails; the UI
// keeps the previous set and stays quiet.
type VenuesLoadFailedMsg struct {
	Err error
}

// HoursRefreshedMsg is sent when a background hours fetch resolves for a
// venue. Data may equal the previous cached blob when the cache was
// still fresh or the fetch failed.
type HoursRefreshedMsg struct {
	VenueID string
	Data    string
	Updated *time.Time
}

// ReviewSavedMsg is sent after a review insert succeeds.
type ReviewSavedMsg struct {
	VenueID string
}

// SuggestionSavedMsg is sent after a suggestion insert succeeds.
type SuggestionSavedMsg struct{}

// LocatedMsg is sent when the one-shot geolocation succeeds.
type LocatedMsg struct {
	Location Coord
}

// LocateFailedMsg is sent when geolocation is denied or unavailable.
type LocateFailedMsg struct {
	Err error
}

// IdentityMsg carries the current session identity, nil when signed out.
type IdentityMsg struct {
	User *User
}
