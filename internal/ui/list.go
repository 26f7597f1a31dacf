package ui

import (
	"fmt"
	"strings"
	"time"

	"felt/internal/hours"
	"felt/internal/model"
	"felt/internal/util"
)

// VenueListModel renders the visible venue subset as a scrollable list.
type VenueListModel struct {
	venues []model.Venue
	cursor int
	offset int
}

// NewVenueListModel creates a list over an already filtered and sorted
// set.
func NewVenueListModel(venues []model.Venue) *VenueListModel {
	return &VenueListModel{venues: venues}
}

// SetVenues swaps the visible set, keeping the cursor on the same
// venue when it survives the change.
func (m *VenueListModel) SetVenues(venues []model.Venue) {
	var keep string
	if v := m.Selected(); v != nil {
		keep = v.ID
	}
	m.venues = venues
	m.cursor = 0
	for i, v := range venues {
		if v.ID == keep {
			m.cursor = i
			break
		}
	}
	m.offset = 0
}

// Selected returns the venue under the cursor, nil when empty.
func (m *VenueListModel) Selected() *model.Venue {
	if len(m.venues) == 0 || m.cursor >= len(m.venues) {
		return nil
	}
	return &m.venues[m.cursor]
}

// Len reports the visible count.
func (m *VenueListModel) Len() int {
	return len(m.venues)
}

func (m *VenueListModel) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *VenueListModel) CursorDown() {
	if m.cursor < len(m.venues)-1 {
		m.cursor++
	}
}

func (m *VenueListModel) CursorTop() {
	m.cursor = 0
}

func (m *VenueListModel) CursorBottom() {
	if len(m.venues) > 0 {
		m.cursor = len(m.venues) - 1
	}
}

// View renders the list into the given box.
func (m *VenueListModel) View(width, height int, now time.Time) string {
	if len(m.venues) == 0 {
		return EmptyStateStyle.Render("No halls match. Clear a filter or suggest one with +")
	}

	visible := height
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	var rows []string
	for i := m.offset; i < len(m.venues) && i < m.offset+visible; i++ {
		rows = append(rows, m.renderRow(m.venues[i], i == m.cursor, width, now))
	}
	return strings.Join(rows, "\n")
}

func (m *VenueListModel) renderRow(v model.Venue, selected bool, width int, now time.Time) string {
	badge := " "
	switch hours.StatusOf(v.HoursData, now) {
	case hours.StatusOpen:
		badge = OpenStyle.Render("●")
	case hours.StatusClosed:
		badge = ClosedStyle.Render("●")
	}

	text := fmt.Sprintf("%-24s %-16s %8s  %s",
		util.TruncateString(v.Name, 24),
		util.TruncateString(v.Neighborhood, 16),
		util.FormatScoreWithStar(v.OverallScore),
		util.FormatReviewCount(v.ReviewCount),
	)
	if width > 4 {
		text = util.TruncateString(text, width-2)
	}

	if selected {
		return badge + " " + SelectedRowStyle.Render(text)
	}
	return badge + " " + NormalRowStyle.Render(text)
}
