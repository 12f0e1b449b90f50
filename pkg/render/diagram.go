// Package render lays out energy profiles and draws them with gonum/plot.
package render

import (
	"errors"
	"image/color"
	"math"

	"github.com/ha1tch/profile-toolkit/pkg/palette"
	"github.com/ha1tch/profile-toolkit/pkg/profile"
	"github.com/ha1tch/profile-toolkit/pkg/style"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrNoPathways    = errors.New("no pathways to draw")
)

// BarColor is the fixed colour of bar markers.
var BarColor color.Color = color.Black

// Stroke is one curve of one pathway.
type Stroke struct {
	Pathway int
	Curve   profile.Curve
	Color   color.Color
	Dashed  bool
}

// Mark is one point marker with its colour.
type Mark struct {
	profile.Marker
	Pathway int
	Color   color.Color
}

// LegendEntry is one row of the legend.
type LegendEntry struct {
	Pathway int
	Name    string
	Color   color.Color // stroke colour
	Marker  color.Color
	Dashed  bool
}

// Diagram is a laid out profile, ready to be drawn by any backend.
// Strokes and marks are in draw order: the first declared pathway comes
// last so that it ends up on top.
type Diagram struct {
	Options style.Options

	// Pathways that are drawn, in declaration order. Pathway indices in
	// strokes, marks and labels refer to this slice.
	Pathways []profile.Pathway
	Coords   []profile.Coordinates
	Colors   *palette.Resolved

	Strokes []Stroke
	Marks   []Mark
	Labels  []profile.Label
	Legend  []LegendEntry

	Annotations []style.Annotation
	// AnnotationY is the energy level annotation arrows are drawn at.
	AnnotationY float64

	MinX, MaxX float64
	MinY, MaxY float64
	Buffer     float64
}

// Layout runs the coordinate, curve, marker and label stages for every
// included pathway. Colour errors are reported before anything is built.
func Layout(pathways []profile.Pathway, o style.Options) (*Diagram, error) {
	d := &Diagram{Options: o}

	var declared []int // index into the caller's slice
	for i, p := range pathways {
		if o.Includes(p.Name) {
			d.Pathways = append(d.Pathways, p)
			declared = append(declared, i)
		}
	}
	if len(d.Pathways) == 0 {
		return nil, ErrNoPathways
	}

	colors, err := palette.Resolve(o.Colors, len(d.Pathways), o.DesaturateFactor)
	if err != nil {
		return nil, err
	}
	d.Colors = colors

	for _, p := range d.Pathways {
		d.Coords = append(d.Coords, profile.GenerateCoordinates(p.Energies))
	}

	d.MinY, d.MaxY, err = profile.EnergyRange(d.Coords)
	if err != nil {
		return nil, err
	}
	if d.Buffer, err = profile.LabelBuffer(d.Coords, o.LabelBuffer); err != nil {
		return nil, err
	}

	d.MinX, d.MaxX = math.Inf(1), math.Inf(-1)
	for _, coords := range d.Coords {
		if lo, hi, ok := coords.XRange(); ok {
			d.MinX = math.Min(d.MinX, lo)
			d.MaxX = math.Max(d.MaxX, hi)
		}
	}

	curveOpts := profile.CurveOptions{
		Curviness: o.Curviness,
		EndInset:  o.CurveInset(),
	}
	for _, i := range colors.Order {
		strokeColor := colors.Color(i)
		if o.Desaturate {
			strokeColor = colors.Light(i)
		}
		dashed := o.IsDashed(d.Pathways[i].Name, declared[i])
		for _, c := range profile.BuildCurves(d.Coords[i], curveOpts) {
			d.Strokes = append(d.Strokes, Stroke{Pathway: i, Curve: c, Color: strokeColor, Dashed: dashed})
		}
	}

	for _, i := range colors.Order {
		markColor := colors.Color(i)
		if o.PointType == profile.MarkerBar {
			markColor = BarColor
		}
		for _, m := range profile.PlanMarkers(d.Coords[i], o.PointType) {
			d.Marks = append(d.Marks, Mark{Marker: m, Pathway: i, Color: markColor})
		}
	}

	if o.Labels {
		placer := profile.NewLabelPlacer(d.Buffer)
		if len(o.PointLabels) > 0 {
			placer.Texts = make([][]string, len(d.Pathways))
			for i, p := range d.Pathways {
				placer.Texts[i] = o.PointLabels[p.Name]
			}
		}
		d.Labels = placer.Place(d.Coords)
	}

	for i, p := range d.Pathways {
		if !o.InLegend(p.Name) {
			continue
		}
		entry := LegendEntry{
			Pathway: i,
			Name:    p.Name,
			Color:   colors.Color(i),
			Marker:  colors.Color(i),
			Dashed:  o.IsDashed(p.Name, declared[i]),
		}
		if o.Desaturate {
			entry.Color = colors.Light(i)
		}
		if o.PointType == profile.MarkerBar {
			entry.Marker = BarColor
		}
		d.Legend = append(d.Legend, entry)
	}

	if len(o.Annotations) > 0 {
		d.Annotations = o.Annotations
		d.AnnotationY = d.MinY - 4*d.labelSpace()
	}

	return d, nil
}

// labelSpace is the buffer, or a fallback for flat profiles.
func (d *Diagram) labelSpace() float64 {
	if d.Buffer > 0 {
		return d.Buffer
	}
	return 0.025
}

// PointCount is the number of plotted points across drawn pathways.
func (d *Diagram) PointCount() int {
	n := 0
	for _, c := range d.Coords {
		n += len(c)
	}
	return n
}

// StrokesOf returns the strokes of one pathway.
func (d *Diagram) StrokesOf(pathway int) []Stroke {
	var out []Stroke
	for _, s := range d.Strokes {
		if s.Pathway == pathway {
			out = append(out, s)
		}
	}
	return out
}
