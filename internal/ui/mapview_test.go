package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felt/internal/model"
)

func TestMapView_FitAllCoversEveryVenue(t *testing.T) {
	m := NewMapView()
	m.SetSize(40, 16)
	m.SetVenues([]model.Venue{
		{ID: "a", Coord: model.Coord{Lat: 40.700, Lng: -73.990}},
		{ID: "b", Coord: model.Coord{Lat: 40.730, Lng: -73.920}},
		{ID: "c", Coord: model.Coord{Lat: 40.715, Lng: -73.950}},
	})
	m.FitAll()

	b := m.Bounds()
	for _, v := range []model.Coord{
		{Lat: 40.700, Lng: -73.990},
		{Lat: 40.730, Lng: -73.920},
		{Lat: 40.715, Lng: -73.950},
	} {
		assert.True(t, b.Contains(v), "bounds should contain %+v", v)
	}
}

func TestMapView_ClustersNearbyVenues(t *testing.T) {
	m := NewMapView()
	m.SetSize(20, 8)
	// Two venues a few meters apart, one far away.
	m.SetVenues([]model.Venue{
		{ID: "a", Coord: model.Coord{Lat: 40.7110, Lng: -73.9480}},
		{ID: "b", Coord: model.Coord{Lat: 40.7111, Lng: -73.9481}},
		{ID: "c", Coord: model.Coord{Lat: 40.7250, Lng: -73.9300}},
	})
	m.FitAll()

	cells := m.clusters()
	counts := make([]int, 0, len(cells))
	for _, c := range cells {
		counts = append(counts, c.count)
	}
	assert.ElementsMatch(t, []int{2, 1}, counts)
}

func TestMapView_HighlightMarksCell(t *testing.T) {
	m := NewMapView()
	m.SetSize(20, 8)
	m.SetVenues([]model.Venue{
		{ID: "a", Coord: model.Coord{Lat: 40.711, Lng: -73.948}},
	})
	m.FitAll()
	m.SetHighlight("a", "")

	cells := m.clusters()
	require.Len(t, cells, 1)
	for _, c := range cells {
		assert.True(t, c.hot)
	}
}

func TestMapView_ZoomClamped(t *testing.T) {
	m := NewMapView()
	for i := 0; i < 50; i++ {
		m.ZoomIn()
	}
	assert.Equal(t, minSpanLat, m.spanLat)
	for i := 0; i < 50; i++ {
		m.ZoomOut()
	}
	assert.Equal(t, maxSpanLat, m.spanLat)
}

func TestMapView_OffscreenVenueNotProjected(t *testing.T) {
	m := NewMapView()
	m.SetSize(20, 8)
	m.SetVenues([]model.Venue{
		{ID: "far", Coord: model.Coord{Lat: 34.05, Lng: -118.24}},
	})
	// Default viewport stays on Brooklyn.
	assert.Empty(t, m.clusters())
}
