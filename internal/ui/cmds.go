package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"felt/internal/hours"
	"felt/internal/model"
	"felt/internal/places"
	"felt/internal/store"
)

const cmdTimeout = 10 * time.Second

func loadVenuesCmd(s store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		venues, err := store.LoadSnapshot(ctx, s)
		if err != nil {
			return model.VenuesLoadFailedMsg{Err: fmt.Errorf("failed to load venues: %w", err)}
		}
		return model.VenuesLoadedMsg{Venues: venues}
	}
}

// refreshHoursCmd revalidates one venue's cached opening hours. The
// refresher decides whether a network fetch is needed; either way the
// message carries whatever the venue should display.
func refreshHoursCmd(r *hours.Refresher, v model.Venue) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		data, updated := r.Refresh(ctx, v)
		return model.HoursRefreshedMsg{VenueID: v.ID, Data: data, Updated: updated}
	}
}

func saveReviewCmd(s store.Store, review model.NewReview) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		if err := s.InsertReview(ctx, review); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to save rating: %w", err)}
		}
		return model.ReviewSavedMsg{VenueID: review.VenueID}
	}
}

func saveSuggestionCmd(s store.Store, suggestion model.Suggestion) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		if err := s.InsertSuggestion(ctx, suggestion); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to save suggestion: %w", err)}
		}
		return model.SuggestionSavedMsg{}
	}
}

func locateCmd(locator *places.Locator) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		coord, err := locator.Locate(ctx)
		if err != nil {
			return model.LocateFailedMsg{Err: err}
		}
		return model.LocatedMsg{Location: coord}
	}
}

func loadIdentityCmd(s store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		user, err := s.Identity(ctx)
		if err != nil {
			// Missing identity is not worth a banner; ratings fall
			// back to anonymous.
			return model.IdentityMsg{User: nil}
		}
		return model.IdentityMsg{User: user}
	}
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return model.NoticeMsg{Text: ""}
	})
}
