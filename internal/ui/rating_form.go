package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"felt/internal/model"
)

// RatingFormModel is the eight category rating form. Every category
// must be scored before submit unlocks; the draft summary tracks
// progress and the running average while the user works.
type RatingFormModel struct {
	venue   model.Venue
	ratings map[model.Category]int
	focused int // index into model.Categories, len(Categories) = notes field
	notes   textinput.Model
	error   string
}

// NewRatingFormModel creates a blank form for a venue.
func NewRatingFormModel(venue model.Venue) *RatingFormModel {
	notes := textinput.New()
	notes.Placeholder = "Anything the scorecard misses? (optional)"
	notes.CharLimit = 280

	return &RatingFormModel{
		venue:   venue,
		ratings: make(map[model.Category]int),
		notes:   notes,
	}
}

// VenueID returns the venue being rated.
func (m *RatingFormModel) VenueID() string {
	return m.venue.ID
}

// Completed counts the categories scored so far.
func (m *RatingFormModel) Completed() int {
	return len(m.ratings)
}

// RunningAverage is the mean of the scores entered so far, nil before
// the first one.
func (m *RatingFormModel) RunningAverage() *float64 {
	if len(m.ratings) == 0 {
		return nil
	}
	sum := 0
	for _, v := range m.ratings {
		sum += v
	}
	avg := float64(sum) / float64(len(m.ratings))
	return &avg
}

// CanSubmit reports whether every category has a score.
func (m *RatingFormModel) CanSubmit() bool {
	return len(m.ratings) == len(model.Categories)
}

// Review assembles the finished review. Call only when CanSubmit.
func (m *RatingFormModel) Review(user *model.User) model.NewReview {
	r := model.NewReview{
		VenueID: m.venue.ID,
		Ratings: make(map[model.Category]int, len(m.ratings)),
		Notes:   strings.TrimSpace(m.notes.Value()),
	}
	for cat, score := range m.ratings {
		r.Ratings[cat] = score
	}
	if user != nil {
		r.UserID = user.ID
		r.Username = user.Username
	}
	return r
}

// Update handles form input. Submission and cancellation are routed by
// the caller; this handles field movement, scoring and notes editing.
func (m RatingFormModel) Update(msg tea.KeyMsg) (RatingFormModel, tea.Cmd) {
	notesFocused := m.focused == len(model.Categories)

	switch msg.String() {
	case "tab", "down":
		m.nextField()
		return m, nil
	case "shift+tab", "up":
		m.prevField()
		return m, nil
	case "j":
		if !notesFocused {
			m.nextField()
			return m, nil
		}
	case "k":
		if !notesFocused {
			m.prevField()
			return m, nil
		}
	case "left", "h":
		if !notesFocused {
			m.adjust(-1)
			return m, nil
		}
	case "right", "l":
		if !notesFocused {
			m.adjust(1)
			return m, nil
		}
	case "1", "2", "3", "4", "5":
		if !notesFocused {
			m.ratings[m.currentCategory()] = int(msg.String()[0] - '0')
			m.nextField()
			return m, nil
		}
	}

	if notesFocused {
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *RatingFormModel) currentCategory() model.Category {
	return model.Categories[m.focused].Key
}

func (m *RatingFormModel) adjust(delta int) {
	cat := m.currentCategory()
	score, ok := m.ratings[cat]
	if !ok {
		score = 3 - delta // first touch lands on 3
	}
	score += delta
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	m.ratings[cat] = score
}

func (m *RatingFormModel) nextField() {
	if m.focused < len(model.Categories) {
		m.focused++
	}
	m.syncNotesFocus()
}

func (m *RatingFormModel) prevField() {
	if m.focused > 0 {
		m.focused--
	}
	m.syncNotesFocus()
}

func (m *RatingFormModel) syncNotesFocus() {
	if m.focused == len(model.Categories) {
		m.notes.Focus()
	} else {
		m.notes.Blur()
	}
}

// View renders the form.
func (m *RatingFormModel) View(width, height int) string {
	var rows []string

	rows = append(rows, HeaderStyle.Render("Rate "+m.venue.Name))
	rows = append(rows, m.progressLine())
	rows = append(rows, "")

	for i, info := range model.Categories {
		rows = append(rows, m.renderCategory(info, i == m.focused))
	}

	rows = append(rows, "")
	notesLabel := "Notes"
	if m.focused == len(model.Categories) {
		notesLabel = "> Notes"
	}
	rows = append(rows, LabelStyle.Render(notesLabel))
	rows = append(rows, InputStyle.Render(m.notes.View()))

	if m.error != "" {
		rows = append(rows, "")
		rows = append(rows, ErrorStyle.Render(m.error))
	}

	rows = append(rows, "")
	if m.CanSubmit() {
		rows = append(rows, SuccessStyle.Render("ctrl+s submit · esc cancel"))
	} else {
		rows = append(rows, HelpDescStyle.Render("score every category to submit · esc cancel"))
	}

	content := strings.Join(rows, "\n")
	return PanelStyle.Width(width - 4).Render(content)
}

func (m *RatingFormModel) progressLine() string {
	text := fmt.Sprintf("%d of %d rated", m.Completed(), len(model.Categories))
	if avg := m.RunningAverage(); avg != nil {
		text += fmt.Sprintf(" · running average %.1f", *avg)
	}
	return StatusBarStyle.Render(text)
}

func (m *RatingFormModel) renderCategory(info model.CategoryInfo, focused bool) string {
	marker := "  "
	if focused {
		marker = HelpKeyStyle.Render("> ")
	}

	score, rated := m.ratings[info.Key]
	var dots []string
	for i := 1; i <= 5; i++ {
		switch {
		case rated && i == score:
			dots = append(dots, MarkerHotStyle.Render(fmt.Sprintf("[%d]", i)))
		case rated && i < score:
			dots = append(dots, MarkerStyle.Render("●"))
		default:
			dots = append(dots, UnknownStyle.Render("○"))
		}
	}

	label := info.Label
	if info.Extended {
		label += " *"
	}
	line := fmt.Sprintf("%s%-18s %s", marker, label, strings.Join(dots, " "))
	if focused {
		line += "  " + HelpDescStyle.Render(info.LabelLeft+" → "+info.LabelRight)
	}
	return line
}
