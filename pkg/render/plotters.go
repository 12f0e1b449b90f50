package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ha1tch/profile-toolkit/pkg/profile"
	"github.com/ha1tch/profile-toolkit/pkg/style"
)

// markStyle holds the sizes a marker is drawn with.
type markStyle struct {
	Radius    vg.Length
	BarWidth  vg.Length
	BarLength float64 // data units
}

func lineStyle(c color.Color, width vg.Length, dashed bool) draw.LineStyle {
	ls := draw.LineStyle{Color: c, Width: width}
	if dashed {
		ls.Dashes = []vg.Length{3.7 * width, 1.6 * width}
	}
	return ls
}

// curvePlotter strokes every curve as a chain of cubic Béziers.
type curvePlotter struct {
	strokes []Stroke
	width   vg.Length
}

func (cp curvePlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	pt := func(v profile.Vec) vg.Point {
		return vg.Point{X: trX(v.X), Y: trY(v.Y)}
	}

	for _, s := range cp.strokes {
		var path vg.Path
		for i, a := range s.Curve.Arcs {
			// inset arcs do not touch, each starts a new subpath
			if i == 0 || a.P0 != s.Curve.Arcs[i-1].P3 {
				path.Move(pt(a.P0))
			}
			path.CubeTo(pt(a.P1), pt(a.P2), pt(a.P3))
		}
		c.SetLineStyle(lineStyle(s.Color, cp.width, s.Dashed))
		c.Stroke(path)
	}
}

// DataRange covers every control point, so the hull of each arc fits.
func (cp curvePlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, s := range cp.strokes {
		for _, a := range s.Curve.Arcs {
			for _, v := range [...]profile.Vec{a.P0, a.P1, a.P2, a.P3} {
				xmin, xmax = math.Min(xmin, v.X), math.Max(xmax, v.X)
				ymin, ymax = math.Min(ymin, v.Y), math.Max(ymax, v.Y)
			}
		}
	}
	return xmin, xmax, ymin, ymax
}

// markPlotter draws point markers.
type markPlotter struct {
	marks []Mark
	style markStyle
}

func (mp markPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	half := mp.style.BarLength / 2
	for _, m := range mp.marks {
		pt := vg.Point{X: trX(m.X), Y: trY(m.Y)}
		if m.Style == profile.MarkerBar {
			c.StrokeLine2(draw.LineStyle{Color: m.Color, Width: mp.style.BarWidth},
				trX(m.X-half), pt.Y, trX(m.X+half), pt.Y)
			continue
		}
		drawGlyph(&c, m.Style, pt, m.Color, mp.style.Radius)
	}
}

func (mp markPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	pad := 0.0
	if mp.style.BarLength > 0 {
		pad = mp.style.BarLength / 2
	}
	for _, m := range mp.marks {
		xmin, xmax = math.Min(xmin, m.X-pad), math.Max(xmax, m.X+pad)
		ymin, ymax = math.Min(ymin, m.Y), math.Max(ymax, m.Y)
	}
	return xmin, xmax, ymin, ymax
}

func (mp markPlotter) GlyphBoxes(p *plot.Plot) []plot.GlyphBox {
	r := mp.style.Radius
	if r <= 0 {
		return nil
	}
	boxes := make([]plot.GlyphBox, 0, len(mp.marks))
	for _, m := range mp.marks {
		if m.Style == profile.MarkerBar {
			continue
		}
		boxes = append(boxes, plot.GlyphBox{
			X:         p.X.Norm(m.X),
			Y:         p.Y.Norm(m.Y),
			Rectangle: vg.Rectangle{Min: vg.Point{X: -r, Y: -r}, Max: vg.Point{X: r, Y: r}},
		})
	}
	return boxes
}

// drawGlyph draws a dot or a hollow ring centred on pt.
func drawGlyph(c *draw.Canvas, ms profile.MarkerStyle, pt vg.Point, col color.Color, r vg.Length) {
	if ms != profile.MarkerHollow {
		c.DrawGlyph(draw.GlyphStyle{Color: col, Radius: r, Shape: draw.CircleGlyph{}}, pt)
		return
	}
	var ring vg.Path
	ring.Move(vg.Point{X: pt.X + r, Y: pt.Y})
	ring.Arc(pt, r, 0, 2*math.Pi)
	ring.Close()
	c.SetColor(color.White)
	c.Fill(ring)
	c.SetLineStyle(draw.LineStyle{Color: col, Width: r / 2.5})
	c.Stroke(ring)
}

// labelOffset shifts label text away from its point so that it clears the
// marker even when the data buffer is zero.
var labelOffset = vg.Points(3)

// newLabelPlotters turns placed labels into one plotter.Labels per side,
// each text growing away from its point.
func newLabelPlotters(labels []profile.Label, size vg.Length) ([]*plotter.Labels, error) {
	var out []*plotter.Labels
	for _, side := range []profile.Side{profile.Above, profile.Below} {
		var xys plotter.XYs
		var texts []string
		for _, lb := range labels {
			if lb.Side != side {
				continue
			}
			xys = append(xys, plotter.XY{X: lb.X, Y: lb.Y})
			texts = append(texts, lb.Text)
		}
		if len(xys) == 0 {
			continue
		}
		lp, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, err
		}
		lp.Offset = vg.Point{Y: labelOffset}
		align := draw.YBottom
		if side == profile.Below {
			lp.Offset.Y = -labelOffset
			align = draw.YTop
		}
		for i := range lp.TextStyle {
			lp.TextStyle[i].Font.Size = size
			lp.TextStyle[i].XAlign = draw.XCenter
			lp.TextStyle[i].YAlign = align
		}
		out = append(out, lp)
	}
	return out, nil
}

// annotationPlotter draws named x ranges as double-headed arrows with a
// caption centred underneath.
type annotationPlotter struct {
	items []style.Annotation
	y     float64
	line  draw.LineStyle
	text  text.Style
}

func (ap annotationPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	y := trY(ap.y)
	head := 2.5 * ap.line.Width
	for _, a := range ap.items {
		x0, x1 := trX(a.From), trX(a.To)
		c.StrokeLine2(ap.line, x0+head, y, x1-head, y)
		arrowHead(&c, vg.Point{X: x0, Y: y}, -1, head, ap.line.Color)
		arrowHead(&c, vg.Point{X: x1, Y: y}, 1, head, ap.line.Color)
		if a.Text != "" {
			c.FillText(ap.text, vg.Point{X: (x0 + x1) / 2, Y: y - head}, a.Text)
		}
	}
}

func (ap annotationPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, a := range ap.items {
		xmin, xmax = math.Min(xmin, a.From), math.Max(xmax, a.To)
	}
	return xmin, xmax, ap.y, ap.y
}

func (ap annotationPlotter) GlyphBoxes(p *plot.Plot) []plot.GlyphBox {
	head := 2.5 * ap.line.Width
	var boxes []plot.GlyphBox
	for _, a := range ap.items {
		if a.Text == "" {
			continue
		}
		r := ap.text.Rectangle(a.Text)
		r.Min.Y -= head
		r.Max.Y -= head
		boxes = append(boxes, plot.GlyphBox{
			X:         p.X.Norm((a.From + a.To) / 2),
			Y:         p.Y.Norm(ap.y),
			Rectangle: r,
		})
	}
	return boxes
}

// arrowHead fills a triangle with its tip at tip, pointing left (dir -1)
// or right (dir 1).
func arrowHead(c *draw.Canvas, tip vg.Point, dir float64, size vg.Length, col color.Color) {
	back := tip.X - vg.Length(dir)*size
	var p vg.Path
	p.Move(tip)
	p.Line(vg.Point{X: back, Y: tip.Y + size/2})
	p.Line(vg.Point{X: back, Y: tip.Y - size/2})
	p.Close()
	c.SetColor(col)
	c.Fill(p)
}

// framePlotter closes the data area with a rectangle for boxed axes.
type framePlotter struct {
	line draw.LineStyle
}

func (f framePlotter) Plot(c draw.Canvas, _ *plot.Plot) {
	c.StrokeLines(f.line, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Min.Y},
	})
}

// legendThumb draws a short stroke with the pathway's marker on top.
type legendThumb struct {
	entry LegendEntry
	kind  profile.MarkerStyle
	width vg.Length
	mark  markStyle
}

func (t legendThumb) Thumbnail(c *draw.Canvas) {
	mid := c.Center()
	c.StrokeLine2(lineStyle(t.entry.Color, t.width, t.entry.Dashed), c.Min.X, mid.Y, c.Max.X, mid.Y)
	if t.kind == profile.MarkerBar {
		half := (c.Max.X - c.Min.X) / 4
		c.StrokeLine2(draw.LineStyle{Color: t.entry.Marker, Width: t.mark.BarWidth}, mid.X-half, mid.Y, mid.X+half, mid.Y)
		return
	}
	drawGlyph(c, t.kind, mid, t.entry.Marker, t.mark.Radius)
}
