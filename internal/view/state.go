// Package view owns the navigation and selection state shared by the
// list, map, detail and rating surfaces. Transitions are pure state
// updates that return an Effects value; the UI layer turns effects
// into commands. Keeping the machine free of terminal concerns makes
// every surface render from one source of truth.
package view

import (
	"felt/internal/browse"
	"felt/internal/model"
)

// Screen identifies which surface currently has focus.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenRating
	ScreenSuggest
)

// State is the single source of truth the surfaces render from.
type State struct {
	Screen   Screen
	Selected string // venue open in the detail or rating surface
	Callout  string // venue whose map callout is open; tracked separately from Selected
	Filter   string // neighborhood filter, browse.FilterAll for none
	Sort     browse.Sort
	OpenNow  bool
	Query    string
	Location *model.Coord

	// Seq increments on every transition. RestyleSeq records the Seq
	// at the last bulk marker restyle, so callout-close events emitted
	// by the restyle itself can be told apart from user-initiated ones.
	Seq        uint64
	RestyleSeq uint64

	stack navStack
}

// NewState returns the initial list state.
func NewState() State {
	return State{
		Screen: ScreenList,
		Filter: browse.FilterAll,
		Sort:   browse.SortRating,
		stack:  newNavStack(),
	}
}

// Effects describes work a transition asked for. Zero value means no
// side effects beyond the state change itself.
type Effects struct {
	RestyleMarkers bool   // recolor every marker from current selection
	FocusVenue     string // pan the map to this venue and open its callout
	RefreshHours   string // venue whose cached hours should be revalidated
	CloseCallout   bool   // dismiss the open callout
}

// bump advances the transition counter and returns the new value.
func (s *State) bump() uint64 {
	s.Seq++
	return s.Seq
}

// markRestyled records that a bulk restyle happens as part of the
// current transition. Callout events stamped at or before this point
// are echoes of the restyle, not user input.
func (s *State) markRestyled() {
	s.RestyleSeq = s.Seq
}
