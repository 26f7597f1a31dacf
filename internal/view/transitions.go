package view

import (
	"time"

	"felt/internal/browse"
	"felt/internal/model"
)

// OpenDetail focuses a venue: the detail surface opens, the marker set
// is restyled around the new selection and the map pans to the venue.
// Each open pushes a history frame, so back walks through previously
// viewed venues before returning to the list.
func (s *State) OpenDetail(venueID string) Effects {
	s.bump()
	s.Selected = venueID
	s.Callout = venueID
	s.Screen = ScreenDetail
	s.stack.push(ScreenDetail, venueID)
	s.markRestyled()
	return Effects{
		RestyleMarkers: true,
		FocusVenue:     venueID,
		RefreshHours:   venueID,
	}
}

// Back pops one history frame and renders whatever is beneath. On the
// base list frame it is a no-op, so repeated presses are safe. Landing
// back on the baseline list leaves nothing highlighted, whatever
// callout interactions happened along the way.
func (s *State) Back() Effects {
	if s.stack.depth() == 1 {
		return Effects{}
	}
	s.bump()
	frame := s.stack.pop()
	effects := s.applyFrame(frame)
	if frame.screen == ScreenList {
		s.Callout = ""
		effects.CloseCallout = true
	}
	return effects
}

// CloseDetail dismisses the detail surface explicitly. Unlike a
// history pop, the callout holder keeps its highlight so the map still
// shows which venue was last inspected.
func (s *State) CloseDetail() Effects {
	if s.Screen != ScreenDetail {
		return Effects{}
	}
	s.bump()
	frame := s.stack.pop()
	return s.applyFrame(frame)
}

// OpenRating opens the rating form for the currently selected venue.
func (s *State) OpenRating() Effects {
	if s.Screen != ScreenDetail || s.Selected == "" {
		return Effects{}
	}
	s.bump()
	s.Screen = ScreenRating
	s.stack.push(ScreenRating, s.Selected)
	return Effects{}
}

// CancelRating abandons the form and returns to the detail surface.
func (s *State) CancelRating() Effects {
	if s.Screen != ScreenRating {
		return Effects{}
	}
	return s.Back()
}

// SubmitRating leaves the form after a successful save. The form and
// the detail frame beneath it are collapsed in one step, so the stale
// detail view is never shown on the way out.
func (s *State) SubmitRating() Effects {
	if s.Screen != ScreenRating {
		return Effects{}
	}
	s.bump()
	frame := s.stack.popTwo()
	effects := s.applyFrame(frame)
	if s.Screen == ScreenList {
		s.Callout = ""
		effects.CloseCallout = true
	}
	return effects
}

// CloseAll drops every overlay and returns to the bare list. Safe to
// call from any screen, including the list itself.
func (s *State) CloseAll() Effects {
	changed := s.stack.depth() > 1 || s.Callout != ""
	if !changed {
		return Effects{}
	}
	s.bump()
	for s.stack.depth() > 1 {
		s.stack.pop()
	}
	s.Screen = ScreenList
	s.Selected = ""
	s.Callout = ""
	s.markRestyled()
	return Effects{RestyleMarkers: true, CloseCallout: true}
}

// DismissCallout clears the callout in response to a direct user
// action. Unlike CalloutClosed it never has to distinguish user input
// from restyle echoes, so it skips the counter check.
func (s *State) DismissCallout() Effects {
	if s.Callout == "" {
		return Effects{}
	}
	s.bump()
	s.Callout = ""
	s.markRestyled()
	return Effects{RestyleMarkers: true, CloseCallout: true}
}

// CalloutClosed handles a callout dismissal reported by the map
// surface. eventSeq is the transition counter observed when the event
// fired; dismissals caused by a bulk restyle carry a stale counter and
// are dropped, only genuine user dismissals clear the highlight.
func (s *State) CalloutClosed(eventSeq uint64) Effects {
	if eventSeq <= s.RestyleSeq {
		return Effects{}
	}
	if s.Callout == "" {
		return Effects{}
	}
	s.bump()
	s.Callout = ""
	s.markRestyled()
	return Effects{RestyleMarkers: true}
}

// OpenSuggest opens the suggestion form. From the detail surface the
// suggestion is tied to the selected venue, from the list it is blank.
func (s *State) OpenSuggest() Effects {
	if s.Screen == ScreenSuggest {
		return Effects{}
	}
	s.bump()
	s.stack.push(ScreenSuggest, s.Selected)
	s.Screen = ScreenSuggest
	return Effects{}
}

// CloseSuggest leaves the suggestion form, submitted or not.
func (s *State) CloseSuggest() Effects {
	if s.Screen != ScreenSuggest {
		return Effects{}
	}
	return s.Back()
}

func (s *State) applyFrame(f entry) Effects {
	s.Screen = f.screen
	s.Selected = f.venueID
	s.markRestyled()
	effects := Effects{RestyleMarkers: true}
	if f.screen == ScreenDetail && f.venueID != "" {
		s.Callout = f.venueID
		effects.FocusVenue = f.venueID
		effects.RefreshHours = f.venueID
	}
	return effects
}

// SetFilter changes the neighborhood filter.
func (s *State) SetFilter(neighborhood string) {
	s.bump()
	if neighborhood == "" {
		neighborhood = browse.FilterAll
	}
	s.Filter = neighborhood
}

// SetSort changes the active ordering.
func (s *State) SetSort(key browse.Sort) {
	s.bump()
	s.Sort = key
}

// ToggleOpenNow flips the open-now filter.
func (s *State) ToggleOpenNow() {
	s.bump()
	s.OpenNow = !s.OpenNow
}

// SetQuery updates the text filter.
func (s *State) SetQuery(query string) {
	s.bump()
	s.Query = query
}

// SetLocation records a captured position for proximity sorting.
func (s *State) SetLocation(c model.Coord) {
	s.bump()
	s.Location = &c
}

// Params snapshots the browse inputs. The caller supplies the viewport
// bounds when the map surface is active, nil otherwise.
func (s *State) Params(viewport *model.Bounds, now time.Time) browse.Params {
	return browse.Params{
		Viewport:     viewport,
		Neighborhood: s.Filter,
		OpenNowOnly:  s.OpenNow,
		Query:        s.Query,
		Sort:         s.Sort,
		Location:     s.Location,
		Now:          now,
	}
}
