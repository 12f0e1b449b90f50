// Package profile turns energy sequences into reaction-profile geometry:
// plotted coordinates, Bézier curves, point markers and value labels.
//
// The package is independent of any rendering backend. Its output is a set
// of plain values that a renderer paints.
package profile

import "math"

// Sequence is one pathway's energies, indexed by reaction-coordinate step.
// A NaN entry marks a step where the pathway is undefined.
type Sequence []float64

// Missing returns the sentinel used for undefined steps.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v marks an undefined step.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Seq builds a Sequence from optional values; nil becomes Missing.
func Seq(values ...*float64) Sequence {
	s := make(Sequence, len(values))
	for i, v := range values {
		if v == nil {
			s[i] = Missing()
		} else {
			s[i] = *v
		}
	}
	return s
}

// Pathway is a named energy sequence.
type Pathway struct {
	Name     string
	Energies Sequence
}

// Point is one plotted coordinate.
// First and Last are the energy indices of the run the point represents;
// they are equal unless a plateau was collapsed.
type Point struct {
	X, Y  float64
	First int
	Last  int
}

// Coordinates is the ordered list of points produced for one pathway.
type Coordinates []Point

// GenerateCoordinates converts energies into plotted points.
// A maximal run of k >= 2 equal consecutive values starting at index i
// collapses to a single point at x = i + (k-1)/2. Missing values produce no
// point and always break a run.
func GenerateCoordinates(energies Sequence) Coordinates {
	coords := make(Coordinates, 0, len(energies))
	i := 0
	for i < len(energies) {
		v := energies[i]
		if IsMissing(v) {
			i++
			continue
		}
		j := i + 1
		// exact equality: repeated energies denote a literal plateau
		for j < len(energies) && energies[j] == v {
			j++
		}
		coords = append(coords, Point{
			X:     float64(i) + float64(j-1-i)/2,
			Y:     v,
			First: i,
			Last:  j - 1,
		})
		i = j
	}
	return coords
}

// Adjacent reports whether b directly follows a with no missing step between.
func Adjacent(a, b Point) bool {
	return b.First == a.Last+1
}

// XRange returns the smallest and largest x of the coordinates.
func (c Coordinates) XRange() (min, max float64, ok bool) {
	if len(c) == 0 {
		return 0, 0, false
	}
	return c[0].X, c[len(c)-1].X, true
}
