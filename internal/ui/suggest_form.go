package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"felt/internal/model"
)

// SuggestFormModel collects community corrections. Opened from the
// list it proposes a new hall; opened from a venue it files an info
// correction against that venue.
type SuggestFormModel struct {
	venueID   string
	venueName string
	focused   int
	inputs    []textinput.Model
	error     string
}

// NewSuggestFormModel creates the form. venueID and venueName are
// empty for a new hall suggestion.
func NewSuggestFormModel(venueID, venueName string) *SuggestFormModel {
	inputs := make([]textinput.Model, 4)

	// Name
	inputs[0] = textinput.New()
	inputs[0].Placeholder = "Hall name"
	inputs[0].CharLimit = 100
	inputs[0].Focus()

	// Neighborhood
	inputs[1] = textinput.New()
	inputs[1].Placeholder = "Neighborhood"
	inputs[1].CharLimit = 100

	// Address
	inputs[2] = textinput.New()
	inputs[2].Placeholder = "Street address"
	inputs[2].CharLimit = 200

	// Details
	inputs[3] = textinput.New()
	inputs[3].Placeholder = "Table count, prices, anything else"
	inputs[3].CharLimit = 280

	if venueName != "" {
		inputs[0].SetValue(venueName)
	}

	return &SuggestFormModel{
		venueID:   venueID,
		venueName: venueName,
		inputs:    inputs,
	}
}

// CanSubmit requires at least a name.
func (m *SuggestFormModel) CanSubmit() bool {
	return strings.TrimSpace(m.inputs[0].Value()) != ""
}

// Suggestion assembles the record to persist.
func (m *SuggestFormModel) Suggestion() model.Suggestion {
	s := model.Suggestion{
		Type:      model.SuggestionNewVenue,
		VenueName: strings.TrimSpace(m.inputs[0].Value()),
		Data: map[string]string{
			"neighborhood": strings.TrimSpace(m.inputs[1].Value()),
			"address":      strings.TrimSpace(m.inputs[2].Value()),
			"details":      strings.TrimSpace(m.inputs[3].Value()),
		},
	}
	if m.venueID != "" {
		s.Type = model.SuggestionVenueInfo
		s.VenueID = m.venueID
	}
	return s
}

// Update handles input; submit and cancel are routed by the caller.
func (m SuggestFormModel) Update(msg tea.KeyMsg) (SuggestFormModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.setFocus(m.focused + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focused - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *SuggestFormModel) setFocus(i int) {
	if i < 0 {
		i = len(m.inputs) - 1
	}
	if i >= len(m.inputs) {
		i = 0
	}
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
}

// View renders the form.
func (m *SuggestFormModel) View(width, height int) string {
	title := "Suggest a hall"
	if m.venueID != "" {
		title = "Suggest a correction for " + m.venueName
	}

	labels := []string{"Name *", "Neighborhood", "Address", "Details"}
	var fields []string
	fields = append(fields, HeaderStyle.Render(title))
	fields = append(fields, "")
	for i, input := range m.inputs {
		fields = append(fields, renderFormField(labels[i], input, i == m.focused))
	}

	if m.error != "" {
		fields = append(fields, "")
		fields = append(fields, ErrorStyle.Render(m.error))
	}

	fields = append(fields, "")
	if m.CanSubmit() {
		fields = append(fields, SuccessStyle.Render("ctrl+s submit · esc cancel"))
	} else {
		fields = append(fields, HelpDescStyle.Render("a name is required · esc cancel"))
	}

	content := strings.Join(fields, "\n\n")
	return PanelStyle.Width(width - 4).Render(content)
}

func renderFormField(label string, input textinput.Model, focused bool) string {
	style := LabelStyle
	if focused {
		label = "> " + label
	} else {
		label = "  " + label
	}
	return style.Render(label) + "\n" + InputStyle.Render(input.View())
}
