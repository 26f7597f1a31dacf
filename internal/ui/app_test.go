package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felt/internal/model"
	"felt/internal/view"
)

func newTestApp(t *testing.T) Model {
	t.Helper()
	// Keep preference reads and writes out of the real home directory.
	t.Setenv("HOME", t.TempDir())

	m := New(nil, nil, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	next, _ = m.Update(model.VenuesLoadedMsg{Venues: []model.Venue{
		{ID: "corner", Name: "Corner Pocket", Neighborhood: "East Village", Coord: model.Coord{Lat: 40.72, Lng: -73.98}},
		{ID: "chalk", Name: "Chalk It Up", Neighborhood: "Astoria", Coord: model.Coord{Lat: 40.76, Lng: -73.92}},
	}})
	return next.(Model)
}

func keySpecial(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: kt})
}

func TestAppDispatch_ConsultsKeyMap(t *testing.T) {
	m := newTestApp(t)
	require.NotNil(t, m.list.Selected())
	first := m.list.Selected().ID

	next, _ := m.Update(keyRune('j'))
	m = next.(Model)
	assert.NotEqual(t, first, m.list.Selected().ID)

	// Rebinding cursor-down must retarget dispatch, not just the help text.
	m.keys.Down = key.NewBinding(key.WithKeys("n"))
	next, _ = m.Update(keyRune('k'))
	m = next.(Model)
	require.Equal(t, first, m.list.Selected().ID)

	next, _ = m.Update(keyRune('j'))
	m = next.(Model)
	assert.Equal(t, first, m.list.Selected().ID, "unbound key should be ignored")

	next, _ = m.Update(keyRune('n'))
	m = next.(Model)
	assert.NotEqual(t, first, m.list.Selected().ID)
}

func TestAppDispatch_ConsultsFormKeyMap(t *testing.T) {
	m := newTestApp(t)

	next, _ := m.Update(keySpecial(tea.KeyEnter))
	m = next.(Model)
	require.Equal(t, view.ScreenDetail, m.state.Screen)

	next, _ = m.Update(keyRune('r'))
	m = next.(Model)
	require.Equal(t, view.ScreenRating, m.state.Screen)
	require.NotNil(t, m.ratingForm)

	next, _ = m.Update(keySpecial(tea.KeyEsc))
	m = next.(Model)
	assert.Equal(t, view.ScreenDetail, m.state.Screen)
	assert.Nil(t, m.ratingForm)
}
