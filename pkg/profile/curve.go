// Curve construction for reaction profiles.
// Each gap-free run of points becomes one chain of cubic Bézier arcs.

package profile

import "math"

// DefaultCurviness is the control-handle fraction used when none is given.
const DefaultCurviness = 0.42

// Vec is a 2D position in data space.
type Vec struct {
	X, Y float64
}

// Segment is a maximal run of points with no missing step between them.
type Segment []Point

// SplitSegments groups coordinates into gap-free segments. A point with no
// adjacent neighbour forms a segment of its own.
func SplitSegments(coords Coordinates) []Segment {
	var segments []Segment
	var current Segment
	for i, p := range coords {
		if i > 0 && !Adjacent(coords[i-1], p) {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, p)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}

// Arc is one cubic Bézier connecting two consecutive points.
type Arc struct {
	P0, P1, P2, P3 Vec
}

// NewArc builds the arc from (x0,y0) to (x1,y1). Control handles stay
// horizontal and reach c of the horizontal span into the arc:
//
//	P1 = (x0 + c·(x1-x0), y0)
//	P2 = (x1 - c·(x1-x0), y1)
func NewArc(x0, y0, x1, y1, c float64) Arc {
	dx := x1 - x0
	return Arc{
		P0: Vec{x0, y0},
		P1: Vec{x0 + c*dx, y0},
		P2: Vec{x1 - c*dx, y1},
		P3: Vec{x1, y1},
	}
}

// Eval computes the point on the arc at parameter t ∈ [0,1].
func (a Arc) Eval(t float64) Vec {
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Vec{
		X: mt3*a.P0.X + 3*mt2*t*a.P1.X + 3*mt*t2*a.P2.X + t3*a.P3.X,
		Y: mt3*a.P0.Y + 3*mt2*t*a.P1.Y + 3*mt*t2*a.P2.Y + t3*a.P3.Y,
	}
}

// Sample returns n+1 evenly spaced points along the arc, endpoints included.
func (a Arc) Sample(n int) []Vec {
	if n < 1 {
		n = 1
	}
	pts := make([]Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, a.Eval(float64(i)/float64(n)))
	}
	return pts
}

// Length approximates the arc length by sampling.
func (a Arc) Length() float64 {
	pts := a.Sample(100)
	length := 0.0
	for i := 1; i < len(pts); i++ {
		dx := pts[i].X - pts[i-1].X
		dy := pts[i].Y - pts[i-1].Y
		length += math.Sqrt(dx*dx + dy*dy)
	}
	return length
}

// Curve is one continuous stroke: arcs chained end to end.
type Curve struct {
	Arcs []Arc
}

// Start returns the first point of the stroke.
func (c Curve) Start() Vec {
	return c.Arcs[0].P0
}

// End returns the last point of the stroke.
func (c Curve) End() Vec {
	return c.Arcs[len(c.Arcs)-1].P3
}

// CurveOptions controls curve construction.
type CurveOptions struct {
	Curviness float64
	// EndInset moves arc endpoints horizontally inward by this amount, so
	// curves start and finish at the ends of bar markers.
	EndInset float64
}

// maxInsetShare caps EndInset as a share of each arc's width so that inset
// endpoints never cross.
const maxInsetShare = 0.45

// BuildCurves converts coordinates into strokes. Segments with a single
// point have no arc and yield no curve; a gap never gets bridged.
func BuildCurves(coords Coordinates, opts CurveOptions) []Curve {
	var curves []Curve
	for _, seg := range SplitSegments(coords) {
		if len(seg) < 2 {
			continue
		}
		arcs := make([]Arc, 0, len(seg)-1)
		for i := 0; i < len(seg)-1; i++ {
			p, q := seg[i], seg[i+1]
			inset := math.Min(opts.EndInset, maxInsetShare*(q.X-p.X))
			arcs = append(arcs, NewArc(p.X+inset, p.Y, q.X-inset, q.Y, opts.Curviness))
		}
		curves = append(curves, Curve{Arcs: arcs})
	}
	return curves
}
