// Value label placement.
// Greedy single pass in ascending x: local maxima go above, everything else
// below, and a label flips side when another pathway runs closer to it than
// its own point does.

package profile

import (
	"math"
	"sort"
)

// Side is the vertical side of a point a label sits on.
type Side int

const (
	Below Side = iota
	Above
)

func (s Side) String() string {
	if s == Above {
		return "above"
	}
	return "below"
}

// Flip returns the opposite side.
func (s Side) Flip() Side {
	if s == Above {
		return Below
	}
	return Above
}

func (s Side) sign() float64 {
	if s == Above {
		return 1
	}
	return -1
}

// Label is one placed value label. X, Y is the anchor; the text is
// centered on X and grows away from the point on Side.
type Label struct {
	X, Y    float64
	Value   float64
	Text    string
	Side    Side
	Pathway int
	Index   int
}

type labelKey struct {
	x    float64
	text string
}

// LabelPlacer places value labels. It remembers every (x, text) pair it has
// emitted, so placing the same coordinates again adds nothing.
type LabelPlacer struct {
	// Buffer is the distance between a point and its label anchor.
	Buffer float64
	// Texts optionally replaces the numeric text, per pathway and energy
	// index. Empty or out-of-range entries fall back to FormatEnergy.
	Texts [][]string

	seen map[labelKey]bool
}

// NewLabelPlacer creates a placer with the given buffer distance.
func NewLabelPlacer(buffer float64) *LabelPlacer {
	return &LabelPlacer{
		Buffer: buffer,
		seen:   make(map[labelKey]bool),
	}
}

type labelCandidate struct {
	p       Point
	pathway int
}

// Place labels every point of every pathway not yet labelled.
// paths must be in declaration order; it is also the tie-break order for
// points sharing an x.
func (lp *LabelPlacer) Place(paths []Coordinates) []Label {
	if lp.seen == nil {
		lp.seen = make(map[labelKey]bool)
	}

	var candidates []labelCandidate
	for i, coords := range paths {
		for _, p := range coords {
			candidates = append(candidates, labelCandidate{p: p, pathway: i})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].p.X < candidates[j].p.X
	})

	peaks := newPeakIndex(paths)

	segments := make([][]Segment, len(paths))
	for i, coords := range paths {
		segments[i] = SplitSegments(coords)
	}

	var labels []Label
	for _, c := range candidates {
		text := lp.text(c.pathway, c.p)
		key := labelKey{c.p.X, text}
		if lp.seen[key] {
			continue
		}

		side := Below
		if peaks.isLocalMax(c.p) {
			side = Above
		}
		anchor := c.p.Y + side.sign()*lp.Buffer

		if other, ok := nearestOther(segments, c.pathway, c.p.X, anchor); ok {
			if math.Abs(other-anchor) < math.Abs(c.p.Y-anchor) {
				side = side.Flip()
				anchor = c.p.Y + side.sign()*lp.Buffer
			}
		}

		lp.seen[key] = true
		labels = append(labels, Label{
			X:       c.p.X,
			Y:       anchor,
			Value:   c.p.Y,
			Text:    text,
			Side:    side,
			Pathway: c.pathway,
			Index:   c.p.First,
		})
	}
	return labels
}

func (lp *LabelPlacer) text(pathway int, p Point) string {
	if pathway < len(lp.Texts) {
		texts := lp.Texts[pathway]
		if p.First < len(texts) && texts[p.First] != "" {
			return texts[p.First]
		}
	}
	return FormatEnergy(p.Y)
}

// peakIndex holds the highest energy at every distinct x across pathways.
type peakIndex struct {
	xs    []float64
	pos   map[float64]int
	maxAt map[float64]float64
}

func newPeakIndex(paths []Coordinates) *peakIndex {
	pi := &peakIndex{
		pos:   make(map[float64]int),
		maxAt: make(map[float64]float64),
	}
	for _, coords := range paths {
		for _, p := range coords {
			if m, ok := pi.maxAt[p.X]; !ok || p.Y > m {
				pi.maxAt[p.X] = p.Y
			}
		}
	}
	for x := range pi.maxAt {
		pi.xs = append(pi.xs, x)
	}
	sort.Float64s(pi.xs)
	for i, x := range pi.xs {
		pi.pos[x] = i
	}
	return pi
}

// isLocalMax reports whether p is higher than everything at the nearest
// smaller and nearest larger x. Points at either end of the x axis never are.
func (pi *peakIndex) isLocalMax(p Point) bool {
	i := pi.pos[p.X]
	if i == 0 || i == len(pi.xs)-1 {
		return false
	}
	return p.Y > pi.maxAt[pi.xs[i-1]] && p.Y > pi.maxAt[pi.xs[i+1]]
}

// nearestOther finds, among pathways other than self that cover x, the
// interpolated energy closest to target.
func nearestOther(segments [][]Segment, self int, x, target float64) (float64, bool) {
	best, found := 0.0, false
	for i, segs := range segments {
		if i == self {
			continue
		}
		for _, seg := range segs {
			y, ok := interpolate(seg, x)
			if !ok {
				continue
			}
			if !found || math.Abs(y-target) < math.Abs(best-target) {
				best, found = y, true
			}
		}
	}
	return best, found
}

// interpolate returns the segment's linear interpolation at x, without
// extrapolating past either end.
func interpolate(seg Segment, x float64) (float64, bool) {
	for i, p := range seg {
		if p.X == x {
			return p.Y, true
		}
		if i+1 < len(seg) {
			q := seg[i+1]
			if p.X < x && x < q.X {
				t := (x - p.X) / (q.X - p.X)
				return p.Y + t*(q.Y-p.Y), true
			}
		}
	}
	return 0, false
}
