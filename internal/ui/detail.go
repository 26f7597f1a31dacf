package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"felt/internal/hours"
	"felt/internal/model"
	"felt/internal/scoring"
	"felt/internal/util"
)

// parsedSchedule decodes cached hours, nil when absent or malformed.
func parsedSchedule(raw string) *hours.Schedule {
	if raw == "" {
		return nil
	}
	s, err := hours.Parse(raw)
	if err != nil {
		return nil
	}
	return s
}

// DetailModel renders one venue's full card: header, info row,
// category scorecard, the posted week hours and the review feed.
type DetailModel struct {
	venue  model.Venue
	scroll int
}

// NewDetailModel creates the detail surface for a venue.
func NewDetailModel(venue model.Venue) *DetailModel {
	return &DetailModel{venue: venue}
}

// SetVenue refreshes the rendered venue after a reload or an hours
// patch.
func (m *DetailModel) SetVenue(venue model.Venue) {
	m.venue = venue
}

// VenueID returns the venue this surface shows.
func (m *DetailModel) VenueID() string {
	return m.venue.ID
}

func (m *DetailModel) ScrollUp() {
	if m.scroll > 0 {
		m.scroll--
	}
}

func (m *DetailModel) ScrollDown() {
	m.scroll++
}

// View renders the card clipped to the given box.
func (m *DetailModel) View(width, height int, now time.Time) string {
	sections := []string{
		m.header(now),
		m.infoCards(),
		m.scorecard(),
		m.weekHours(now),
		m.reviews(),
	}
	body := strings.Join(sections, "\n\n")

	lines := strings.Split(body, "\n")
	if m.scroll > len(lines)-1 {
		m.scroll = len(lines) - 1
	}
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	if m.scroll+visible > len(lines) {
		if len(lines) > visible {
			m.scroll = len(lines) - visible
		} else {
			m.scroll = 0
		}
	}
	end := m.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	clipped := strings.Join(lines[m.scroll:end], "\n")
	return PanelStyle.Width(width - 4).Render(clipped)
}

func (m *DetailModel) header(now time.Time) string {
	v := m.venue
	sched := parsedSchedule(v.HoursData)

	status := UnknownStyle.Render("Hours unknown")
	switch hours.StatusAt(sched, now) {
	case hours.StatusOpen:
		status = OpenStyle.Render("Open now")
		if today := hours.TodayHours(sched, now); today != "" {
			status += StatusBarStyle.Render(" · " + today)
		}
	case hours.StatusClosed:
		status = ClosedStyle.Render("Closed")
		if today := hours.TodayHours(sched, now); today != "" {
			status += StatusBarStyle.Render(" · " + today)
		}
	}

	where := v.Neighborhood
	if v.Address != "" {
		where += " · " + v.Address
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(v.Name),
		StatusBarStyle.Render(where),
		status,
	)
}

func (m *DetailModel) infoCards() string {
	v := m.venue

	cards := []string{
		infoCard("Rating", fmt.Sprintf("%s (%s)",
			util.FormatScore(v.OverallScore),
			util.FormatReviewCount(v.ReviewCount))),
		infoCard("Tables", util.FormatTableCount(v.TableCount)),
	}
	if v.Price != "" {
		cards = append(cards, infoCard("Price", v.Price))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func infoCard(label, value string) string {
	return CalloutStyle.Render(
		HelpDescStyle.Render(label) + " " + NormalRowStyle.Render(value),
	)
}

func (m *DetailModel) scorecard() string {
	v := m.venue

	var rows []string
	rows = append(rows, LabelStyle.Render("Scorecard"))
	for _, cat := range model.ScorecardOrder {
		avg := v.Ratings[cat]
		rows = append(rows, fmt.Sprintf("%-16s %s %s",
			model.CategoryLabel(cat),
			scoreBar(avg),
			util.FormatScore(avg),
		))
	}
	return strings.Join(rows, "\n")
}

// scoreBar renders a ten segment bar for a 1-5 score.
func scoreBar(score *float64) string {
	if score == nil {
		return UnknownStyle.Render(strings.Repeat("░", 10))
	}
	filled := int(*score * 2)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return MarkerStyle.Render(strings.Repeat("█", filled)) +
		UnknownStyle.Render(strings.Repeat("░", 10-filled))
}

func (m *DetailModel) weekHours(now time.Time) string {
	week := hours.WeekHours(parsedSchedule(m.venue.HoursData), now)
	if len(week) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, LabelStyle.Render("Hours"))
	for _, d := range week {
		line := fmt.Sprintf("%-10s %s", d.Day, d.Hours)
		if d.IsToday {
			rows = append(rows, BreadcrumbActiveStyle.Render(line))
		} else {
			rows = append(rows, StatusBarStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

func (m *DetailModel) reviews() string {
	v := m.venue

	var rows []string
	rows = append(rows, LabelStyle.Render(fmt.Sprintf("Reviews (%d)", len(v.Reviews))))
	if len(v.Reviews) == 0 {
		rows = append(rows, EmptyStateStyle.Render("No reviews yet. Press r to rate this hall."))
		return strings.Join(rows, "\n")
	}

	for _, r := range v.Reviews {
		avg, count := scoring.ReviewAverage(r)
		head := fmt.Sprintf("%s · %s",
			util.FormatAuthor(r.Username),
			util.FormatTimeHuman(r.CreatedAt),
		)
		if count > 0 {
			head += fmt.Sprintf(" · %.1f ★", avg)
		}
		rows = append(rows, BreadcrumbActiveStyle.Render(head))
		if r.Notes != "" {
			rows = append(rows, NormalRowStyle.Render(util.TruncateString(r.Notes, 72)))
		}
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}
