package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"felt/internal/browse"
	"felt/internal/hours"
	"felt/internal/model"
	"felt/internal/places"
	"felt/internal/store"
	"felt/internal/view"
)

// Below this width the list and map collapse into tabs, and the
// viewport filter only applies while the map tab is active.
const narrowWidth = 100

var sortCycle = []browse.Sort{
	browse.SortRating,
	browse.SortNameAZ,
	browse.SortNameZA,
	browse.SortNeighborhood,
	browse.SortNearest,
}

var sortLabels = map[browse.Sort]string{
	browse.SortRating:       "top rated",
	browse.SortNameAZ:       "name a-z",
	browse.SortNameZA:       "name z-a",
	browse.SortNeighborhood: "neighborhood",
	browse.SortNearest:      "nearest",
}

// Model is the root Bubble Tea model.
type Model struct {
	store     store.Store
	refresher *hours.Refresher
	locator   *places.Locator

	state  view.State
	venues []model.Venue // full snapshot; filtering never mutates it
	user   *model.User

	width  int
	height int
	narrow bool

	activeTab  int // narrow mode: 0 list, 1 map
	mapVisible bool

	searching bool
	search    textinput.Model

	list        *VenueListModel
	mapView     *MapView
	detail      *DetailModel
	ratingForm  *RatingFormModel
	suggestForm *SuggestFormModel

	error       string
	info        string
	showingHelp bool
	loaded      bool

	keys     KeyMap
	formKeys FormKeyMap
	prefs    UIPreferences
}

// New creates a new root model.
func New(s store.Store, refresher *hours.Refresher, locator *places.Locator) Model {
	search := textinput.New()
	search.Placeholder = "name, neighborhood or address"
	search.CharLimit = 80

	prefs := loadUIPreferences()
	state := view.NewState()
	if prefs.Sort != "" {
		state.SetSort(browse.Sort(prefs.Sort))
	}
	if prefs.Neighborhood != "" {
		state.SetFilter(prefs.Neighborhood)
	}
	if prefs.OpenNow {
		state.ToggleOpenNow()
	}

	return Model{
		store:      s,
		refresher:  refresher,
		locator:    locator,
		state:      state,
		mapVisible: prefs.MapVisible,
		search:     search,
		list:       NewVenueListModel(nil),
		mapView:    NewMapView(),
		keys:       DefaultKeyMap(),
		formKeys:   DefaultFormKeyMap(),
		prefs:      prefs,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadVenuesCmd(m.store), loadIdentityCmd(m.store))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.narrow = msg.Width < narrowWidth
		m.resizeMap()
		m.applyVisible()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showingHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Help) && !m.searching && m.state.Screen != view.ScreenRating && m.state.Screen != view.ScreenSuggest {
			m.showingHelp = true
			return m, nil
		}

		if m.searching {
			return m.handleSearchKey(msg)
		}

		switch m.state.Screen {
		case view.ScreenRating:
			return m.handleRatingKey(msg)
		case view.ScreenSuggest:
			return m.handleSuggestKey(msg)
		case view.ScreenDetail:
			return m.handleDetailKey(msg)
		default:
			return m.handleListKey(msg)
		}

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.NoticeMsg:
		m.info = msg.Text
		return m, nil

	case model.VenuesLoadedMsg:
		m.venues = msg.Venues
		m.error = ""
		m.applyVisible()
		if !m.loaded {
			m.loaded = true
			m.mapView.SetVenues(m.venues)
			m.mapView.FitAll()
			m.applyVisible()
		}
		m.syncDetail()
		return m, nil

	case model.VenuesLoadFailedMsg:
		// Keep showing the previous snapshot; only an empty first load
		// is worth a banner.
		if !m.loaded {
			m.error = msg.Err.Error()
		}
		return m, nil

	case model.HoursRefreshedMsg:
		// Fresh data is kept even if the user already navigated away;
		// only the detail surface guards on the current selection.
		for i := range m.venues {
			if m.venues[i].ID == msg.VenueID {
				m.venues[i].HoursData = msg.Data
				m.venues[i].HoursUpdated = msg.Updated
				if m.detail != nil && m.state.Selected == msg.VenueID {
					m.detail.SetVenue(m.venues[i])
				}
				break
			}
		}
		m.applyVisible()
		return m, nil

	case model.ReviewSavedMsg:
		effects := m.state.SubmitRating()
		m.ratingForm = nil
		m.syncDetail()
		m.info = "Rating saved"
		m.applyVisible()
		return m, tea.Batch(
			loadVenuesCmd(m.store),
			m.runEffects(effects),
			clearNoticeCmd(),
		)

	case model.SuggestionSavedMsg:
		effects := m.state.CloseSuggest()
		m.suggestForm = nil
		m.syncDetail()
		m.info = "Suggestion sent, thank you"
		return m, tea.Batch(m.runEffects(effects), clearNoticeCmd())

	case model.LocatedMsg:
		m.state.SetLocation(msg.Location)
		m.state.SetSort(browse.SortNearest)
		m.persistPrefs()
		m.applyVisible()
		m.info = "Sorted by distance"
		return m, clearNoticeCmd()

	case model.LocateFailedMsg:
		m.info = ""
		m.error = fmt.Sprintf("location unavailable: %v", msg.Err)
		return m, nil

	case model.IdentityMsg:
		m.user = msg.User
		return m, nil
	}

	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mapActive := m.mapPaneActive()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return *m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if !m.narrow || m.activeTab == 0 {
			m.list.CursorDown()
		}
		return *m, nil
	case key.Matches(msg, m.keys.Up):
		if !m.narrow || m.activeTab == 0 {
			m.list.CursorUp()
		}
		return *m, nil
	case key.Matches(msg, m.keys.Top):
		m.list.CursorTop()
		return *m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.list.CursorBottom()
		return *m, nil
	case key.Matches(msg, m.keys.Select):
		v := m.list.Selected()
		if v == nil {
			return *m, nil
		}
		effects := m.state.OpenDetail(v.ID)
		m.detail = NewDetailModel(*v)
		m.applyVisible()
		return *m, m.runEffects(effects)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return *m, textinput.Blink
	case key.Matches(msg, m.keys.Filter):
		m.cycleNeighborhood()
		return *m, nil
	case key.Matches(msg, m.keys.OpenNow):
		m.state.ToggleOpenNow()
		m.persistPrefs()
		m.applyVisible()
		return *m, nil
	case key.Matches(msg, m.keys.Sort):
		return *m, m.cycleSort()
	case key.Matches(msg, m.keys.Locate):
		if m.locator == nil {
			m.error = "location lookup is not configured"
			return *m, nil
		}
		return *m, locateCmd(m.locator)
	case key.Matches(msg, m.keys.TabNext):
		if m.narrow {
			m.activeTab = 1 - m.activeTab
		} else {
			m.mapVisible = !m.mapVisible
		}
		m.persistPrefs()
		m.applyVisible()
		return *m, nil
	case key.Matches(msg, m.keys.Suggest):
		m.suggestForm = NewSuggestFormModel("", "")
		m.state.OpenSuggest()
		return *m, nil
	case key.Matches(msg, m.keys.CloseInfo):
		effects := m.state.DismissCallout()
		m.applyVisible()
		return *m, m.runEffects(effects)
	case key.Matches(msg, m.keys.Back):
		effects := m.state.CloseAll()
		m.applyVisible()
		return *m, m.runEffects(effects)
	}

	if mapActive {
		switch {
		case key.Matches(msg, m.keys.PanLeft):
			m.mapView.Pan(-1, 0)
		case key.Matches(msg, m.keys.PanRight):
			m.mapView.Pan(1, 0)
		case key.Matches(msg, m.keys.PanUp):
			m.mapView.Pan(0, 1)
		case key.Matches(msg, m.keys.PanDown):
			m.mapView.Pan(0, -1)
		case key.Matches(msg, m.keys.ZoomIn):
			m.mapView.ZoomIn()
		case key.Matches(msg, m.keys.ZoomOut):
			m.mapView.ZoomOut()
		default:
			return *m, nil
		}
		m.applyVisible()
	}
	return *m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return *m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.detail != nil {
			m.detail.ScrollDown()
		}
		return *m, nil
	case key.Matches(msg, m.keys.Up):
		if m.detail != nil {
			m.detail.ScrollUp()
		}
		return *m, nil
	case key.Matches(msg, m.keys.Rate):
		if v := m.venueByID(m.state.Selected); v != nil {
			m.state.OpenRating()
			m.ratingForm = NewRatingFormModel(*v)
		}
		return *m, nil
	case key.Matches(msg, m.keys.Suggest):
		if v := m.venueByID(m.state.Selected); v != nil {
			m.state.OpenSuggest()
			m.suggestForm = NewSuggestFormModel(v.ID, v.Name)
		}
		return *m, nil
	case key.Matches(msg, m.keys.Back):
		effects := m.state.Back()
		m.syncDetail()
		m.applyVisible()
		return *m, m.runEffects(effects)
	}
	return *m, nil
}

func (m *Model) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.state.CancelRating()
		m.ratingForm = nil
		m.syncDetail()
		return *m, nil
	case key.Matches(msg, m.formKeys.Submit):
		if m.ratingForm == nil {
			return *m, nil
		}
		if !m.ratingForm.CanSubmit() {
			m.ratingForm.error = "score every category before submitting"
			return *m, nil
		}
		return *m, saveReviewCmd(m.store, m.ratingForm.Review(m.user))
	}

	if m.ratingForm != nil {
		form, cmd := m.ratingForm.Update(msg)
		m.ratingForm = &form
		return *m, cmd
	}
	return *m, nil
}

func (m *Model) handleSuggestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		effects := m.state.CloseSuggest()
		m.suggestForm = nil
		m.syncDetail()
		return *m, m.runEffects(effects)
	case key.Matches(msg, m.formKeys.Submit):
		if m.suggestForm == nil {
			return *m, nil
		}
		if !m.suggestForm.CanSubmit() {
			m.suggestForm.error = "a name is required"
			return *m, nil
		}
		return *m, saveSuggestionCmd(m.store, m.suggestForm.Suggestion())
	}

	if m.suggestForm != nil {
		form, cmd := m.suggestForm.Update(msg)
		m.suggestForm = &form
		return *m, cmd
	}
	return *m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.state.SetQuery("")
		m.applyVisible()
		return *m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return *m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.SetQuery(m.search.Value())
	m.applyVisible()
	return *m, cmd
}

func (m *Model) cycleNeighborhood() {
	options := append([]string{browse.FilterAll}, browse.Neighborhoods(m.venues)...)
	current := 0
	for i, n := range options {
		if n == m.state.Filter {
			current = i
			break
		}
	}
	m.state.SetFilter(options[(current+1)%len(options)])
	m.persistPrefs()
	m.applyVisible()
}

func (m *Model) cycleSort() tea.Cmd {
	current := 0
	for i, s := range sortCycle {
		if s == m.state.Sort {
			current = i
			break
		}
	}
	next := sortCycle[(current+1)%len(sortCycle)]

	// Proximity sort waits for a position fix. The active sort stays
	// put until the lookup resolves; a denial leaves it unchanged.
	if next == browse.SortNearest && m.state.Location == nil {
		if m.locator == nil {
			m.error = "location lookup is not configured"
			return nil
		}
		m.info = "Finding your location..."
		return locateCmd(m.locator)
	}

	m.state.SetSort(next)
	m.persistPrefs()
	m.applyVisible()
	return nil
}

// mapPaneActive reports whether the viewport filter applies: the map
// is on screen wide, or its tab is selected narrow.
func (m *Model) mapPaneActive() bool {
	if m.narrow {
		return m.activeTab == 1
	}
	return m.mapVisible
}

// applyVisible reruns the browse pipeline and pushes the result to the
// list and the map.
func (m *Model) applyVisible() {
	var viewport *model.Bounds
	if m.mapPaneActive() {
		b := m.mapView.Bounds()
		viewport = &b
	}
	visible := browse.Visible(m.venues, m.state.Params(viewport, time.Now()))
	m.list.SetVenues(visible)
	m.mapView.SetVenues(visible)
	m.mapView.SetHighlight(m.state.Selected, m.state.Callout)
}

// syncDetail points the detail surface at whatever venue navigation
// landed on.
func (m *Model) syncDetail() {
	if m.state.Screen != view.ScreenDetail {
		if m.state.Screen == view.ScreenList {
			m.detail = nil
		}
		return
	}
	if v := m.venueByID(m.state.Selected); v != nil {
		if m.detail == nil || m.detail.VenueID() != v.ID {
			m.detail = NewDetailModel(*v)
		} else {
			m.detail.SetVenue(*v)
		}
	}
}

func (m *Model) venueByID(id string) *model.Venue {
	for i := range m.venues {
		if m.venues[i].ID == id {
			return &m.venues[i]
		}
	}
	return nil
}

func (m *Model) runEffects(e view.Effects) tea.Cmd {
	if e.RestyleMarkers {
		m.mapView.SetHighlight(m.state.Selected, m.state.Callout)
	}
	if e.FocusVenue != "" {
		if v := m.venueByID(e.FocusVenue); v != nil {
			m.mapView.Focus(v.Coord)
		}
	}
	if e.RefreshHours != "" && m.refresher != nil {
		if v := m.venueByID(e.RefreshHours); v != nil {
			return refreshHoursCmd(m.refresher, *v)
		}
	}
	return nil
}

func (m *Model) resizeMap() {
	w := m.width/2 - 4
	h := m.height - 8
	if m.narrow {
		w = m.width - 4
	}
	m.mapView.SetSize(w, h)
}

func (m *Model) persistPrefs() {
	m.prefs.Sort = string(m.state.Sort)
	m.prefs.Neighborhood = m.state.Filter
	m.prefs.OpenNow = m.state.OpenNow
	m.prefs.MapVisible = m.mapVisible
	if err := saveUIPreferences(m.prefs); err != nil {
		// Preferences are a convenience; losing them is not an error
		// worth interrupting the session for.
		return
	}
}

// View renders the application.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showingHelp {
		return RenderHelpScreen(m.width, m.height)
	}

	header := m.renderHeader()
	var body string
	switch m.state.Screen {
	case view.ScreenRating:
		if m.ratingForm != nil {
			body = m.ratingForm.View(m.width, m.height)
		}
	case view.ScreenSuggest:
		if m.suggestForm != nil {
			body = m.suggestForm.View(m.width, m.height)
		}
	case view.ScreenDetail:
		if m.detail != nil {
			body = m.detail.View(m.width, m.bodyHeight(), time.Now())
		}
	default:
		body = m.renderBrowse()
	}

	footer := m.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) bodyHeight() int {
	h := m.height - 6
	if h < 4 {
		h = 4
	}
	return h
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("FELT")
	sub := StatusBarStyle.Render("pool halls of new york")

	status := fmt.Sprintf("%s · %s", sortLabels[m.state.Sort], m.state.Filter)
	if m.state.OpenNow {
		status += " · open now"
	}
	if m.state.Query != "" {
		status += fmt.Sprintf(" · %q", m.state.Query)
	}

	line := lipgloss.JoinHorizontal(lipgloss.Bottom, title, " ", sub, "   ", StatusBarStyle.Render(status))
	if m.searching {
		line = lipgloss.JoinVertical(lipgloss.Left, line,
			LabelStyle.Render("Search: ")+m.search.View())
	}
	return line
}

func (m Model) renderBrowse() string {
	height := m.bodyHeight()

	var calloutVenue *model.Venue
	if m.state.Callout != "" {
		calloutVenue = m.venueByID(m.state.Callout)
	}

	listPane := m.list.View(m.paneWidth(), height-2, time.Now())
	mapPane := m.mapView.View(calloutVenue)

	if m.narrow {
		tabs := m.renderTabs()
		if m.activeTab == 1 {
			return lipgloss.JoinVertical(lipgloss.Left, tabs, mapPane)
		}
		return lipgloss.JoinVertical(lipgloss.Left, tabs, listPane)
	}

	if !m.mapVisible {
		return listPane
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.paneWidth()).Render(listPane),
		ActivePanelStyle.Render(mapPane),
	)
}

func (m Model) paneWidth() int {
	if m.narrow || !m.mapVisible {
		return m.width - 2
	}
	return m.width / 2
}

func (m Model) renderTabs() string {
	listTab, mapTab := TabStyle, ActiveTabStyle
	if m.activeTab == 0 {
		listTab, mapTab = ActiveTabStyle, TabStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		listTab.Render(fmt.Sprintf("List (%d)", m.list.Len())),
		mapTab.Render("Map"),
	)
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.error != "":
		status = ErrorStyle.Render(m.error)
	case m.info != "":
		status = SuccessStyle.Render(m.info)
	}

	help := RenderHelp(m.state.Screen, m.width)
	if status == "" {
		return help
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}
