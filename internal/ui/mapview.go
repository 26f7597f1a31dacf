package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"felt/internal/hours"
	"felt/internal/model"
	"felt/internal/util"
)

// Terminal cells are roughly twice as tall as wide, so one row covers
// about two columns worth of degrees.
const cellAspect = 2.0

const (
	minSpanLat = 0.002
	maxSpanLat = 2.0
	zoomStep   = 1.5
)

// MapView renders venue positions on a character grid. It owns the
// viewport (center plus vertical span) that the browse pipeline uses
// for its bounds stage.
type MapView struct {
	width   int
	height  int
	center  model.Coord
	spanLat float64

	venues   []model.Venue
	selected string
	callout  string
}

// NewMapView returns a map centered on north Brooklyn, where the
// directory started.
func NewMapView() *MapView {
	return &MapView{
		width:   40,
		height:  16,
		center:  model.Coord{Lat: 40.711, Lng: -73.948},
		spanLat: 0.06,
	}
}

// SetSize resizes the grid in cells.
func (m *MapView) SetSize(width, height int) {
	if width < 8 {
		width = 8
	}
	if height < 4 {
		height = 4
	}
	m.width = width
	m.height = height
}

// SetVenues replaces the marker set.
func (m *MapView) SetVenues(venues []model.Venue) {
	m.venues = venues
}

// SetHighlight restyles markers around the current selection and
// callout holder.
func (m *MapView) SetHighlight(selected, callout string) {
	m.selected = selected
	m.callout = callout
}

// Focus pans the viewport to a coordinate and zooms in one step.
func (m *MapView) Focus(c model.Coord) {
	m.center = c
	if m.spanLat > 0.02 {
		m.spanLat = 0.02
	}
}

// Pan moves the viewport by a fraction of the visible span.
func (m *MapView) Pan(dx, dy float64) {
	m.center.Lat += dy * m.spanLat * 0.25
	m.center.Lng += dx * m.spanLng() * 0.25
}

// ZoomIn narrows the visible span.
func (m *MapView) ZoomIn() {
	m.spanLat /= zoomStep
	if m.spanLat < minSpanLat {
		m.spanLat = minSpanLat
	}
}

// ZoomOut widens the visible span.
func (m *MapView) ZoomOut() {
	m.spanLat *= zoomStep
	if m.spanLat > maxSpanLat {
		m.spanLat = maxSpanLat
	}
}

func (m *MapView) spanLng() float64 {
	if m.height == 0 {
		return m.spanLat
	}
	return m.spanLat * float64(m.width) / (float64(m.height) * cellAspect)
}

// Bounds returns the current viewport in coordinate space.
func (m *MapView) Bounds() model.Bounds {
	halfLat := m.spanLat / 2
	halfLng := m.spanLng() / 2
	return model.Bounds{
		South: m.center.Lat - halfLat,
		North: m.center.Lat + halfLat,
		West:  m.center.Lng - halfLng,
		East:  m.center.Lng + halfLng,
	}
}

// FitAll recenters and rescales so every venue is visible.
func (m *MapView) FitAll() {
	if len(m.venues) == 0 {
		return
	}
	minLat, maxLat := m.venues[0].Coord.Lat, m.venues[0].Coord.Lat
	minLng, maxLng := m.venues[0].Coord.Lng, m.venues[0].Coord.Lng
	for _, v := range m.venues[1:] {
		if v.Coord.Lat < minLat {
			minLat = v.Coord.Lat
		}
		if v.Coord.Lat > maxLat {
			maxLat = v.Coord.Lat
		}
		if v.Coord.Lng < minLng {
			minLng = v.Coord.Lng
		}
		if v.Coord.Lng > maxLng {
			maxLng = v.Coord.Lng
		}
	}
	m.center = model.Coord{Lat: (minLat + maxLat) / 2, Lng: (minLng + maxLng) / 2}
	span := (maxLat - minLat) * 1.2
	if needed := (maxLng - minLng) * 1.2 / (m.spanLng() / m.spanLat); needed > span {
		span = needed
	}
	if span < minSpanLat {
		span = minSpanLat
	}
	if span > maxSpanLat {
		span = maxSpanLat
	}
	m.spanLat = span
}

// cell maps a coordinate into grid space. ok is false outside the
// viewport.
func (m *MapView) cell(c model.Coord) (col, row int, ok bool) {
	b := m.Bounds()
	if !b.Contains(c) {
		return 0, 0, false
	}
	col = int((c.Lng - b.West) / (b.East - b.West) * float64(m.width))
	row = int((b.North - c.Lat) / (b.North - b.South) * float64(m.height))
	if col >= m.width {
		col = m.width - 1
	}
	if row >= m.height {
		row = m.height - 1
	}
	return col, row, true
}

type mapCell struct {
	count   int
	venueID string // last venue placed in the cell
	hot     bool   // holds the selection or the open callout
}

// clusters projects the current venues onto the grid, one entry per
// occupied cell. Nearby venues share a cell and render as a count.
func (m *MapView) clusters() map[[2]int]mapCell {
	cells := make(map[[2]int]mapCell)
	for _, v := range m.venues {
		col, row, ok := m.cell(v.Coord)
		if !ok {
			continue
		}
		key := [2]int{col, row}
		c := cells[key]
		c.count++
		c.venueID = v.ID
		if v.ID == m.selected || v.ID == m.callout {
			c.hot = true
		}
		cells[key] = c
	}
	return cells
}

// View renders the grid. When a callout is open its card is drawn
// above the grid, pinned to the map pane rather than the marker.
func (m *MapView) View(calloutVenue *model.Venue) string {
	cells := m.clusters()

	var rows []string
	for row := 0; row < m.height; row++ {
		var b strings.Builder
		for col := 0; col < m.width; col++ {
			c, occupied := cells[[2]int{col, row}]
			switch {
			case !occupied:
				if row%2 == 0 && col%4 == 0 {
					b.WriteString(MapStyle.Render("·"))
				} else {
					b.WriteString(" ")
				}
			case c.count > 1:
				b.WriteString(ClusterStyle.Render(clusterGlyph(c.count)))
			case c.hot:
				b.WriteString(MarkerHotStyle.Render("◉"))
			default:
				b.WriteString(MarkerStyle.Render("●"))
			}
		}
		rows = append(rows, b.String())
	}
	grid := strings.Join(rows, "\n")

	if calloutVenue == nil {
		return grid
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.calloutCard(*calloutVenue), grid)
}

func (m *MapView) calloutCard(v model.Venue) string {
	status := UnknownStyle.Render("Hours unknown")
	switch hours.StatusOf(v.HoursData, time.Now()) {
	case hours.StatusOpen:
		status = OpenStyle.Render("Open now")
	case hours.StatusClosed:
		status = ClosedStyle.Render("Closed")
	}
	line := fmt.Sprintf("%s  %s  %s",
		LabelStyle.Render(v.Name),
		util.FormatScoreWithStar(v.OverallScore),
		status,
	)
	return CalloutStyle.Render(line)
}

func clusterGlyph(count int) string {
	if count > 9 {
		return "+"
	}
	return fmt.Sprintf("%d", count)
}
