package profile

import "fmt"

// MarkerStyle selects how data points are drawn.
type MarkerStyle string

const (
	MarkerDot    MarkerStyle = "dot"    // filled circle in the pathway colour
	MarkerHollow MarkerStyle = "hollow" // pathway-coloured ring, white fill
	MarkerBar    MarkerStyle = "bar"    // short horizontal tick, fixed colour
)

// ParseMarkerStyle validates a marker style name.
func ParseMarkerStyle(s string) (MarkerStyle, error) {
	switch MarkerStyle(s) {
	case MarkerDot, MarkerHollow, MarkerBar:
		return MarkerStyle(s), nil
	}
	return "", fmt.Errorf("unknown point type %q (want dot, hollow or bar)", s)
}

// Marker is one point marker.
type Marker struct {
	X, Y  float64
	Style MarkerStyle
}

// PlanMarkers returns one marker per plotted point. Markers never move.
func PlanMarkers(coords Coordinates, style MarkerStyle) []Marker {
	markers := make([]Marker, 0, len(coords))
	for _, p := range coords {
		markers = append(markers, Marker{X: p.X, Y: p.Y, Style: style})
	}
	return markers
}
