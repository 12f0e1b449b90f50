package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ha1tch/profile-toolkit/pkg/style"
)

// marginFraction pads the data range on each side, as a fraction of its span.
const marginFraction = 0.05

// Plot builds a gonum plot of the diagram.
func (d *Diagram) Plot() (*plot.Plot, error) {
	o := d.Options
	fontSize := vg.Points(o.FontSize)
	lineWidth := vg.Points(o.LineWidth)
	marks := markStyle{
		Radius:    vg.Points(o.MarkerSize) / 2,
		BarWidth:  vg.Points(o.BarWidth),
		BarLength: o.BarLength,
	}

	p := plot.New()
	p.BackgroundColor = color.White

	if len(d.Strokes) > 0 {
		p.Add(curvePlotter{strokes: d.Strokes, width: lineWidth})
	}
	p.Add(markPlotter{marks: d.Marks, style: marks})

	if len(d.Labels) > 0 {
		lps, err := newLabelPlotters(d.Labels, fontSize)
		if err != nil {
			return nil, err
		}
		for _, lp := range lps {
			p.Add(lp)
		}
	}

	if len(d.Annotations) > 0 {
		p.Add(annotationPlotter{
			items: d.Annotations,
			y:     d.AnnotationY,
			line:  draw.LineStyle{Color: color.Black, Width: vg.Points(1)},
			text:  textStyle(fontSize, draw.XCenter, draw.YTop),
		})
	}

	configureAxis(&p.X, o.Axes.ShowX(), o.XLabel, fontSize)
	configureAxis(&p.Y, o.Axes.ShowY(), o.YLabel(), fontSize)
	if o.Axes == style.AxesBox {
		p.Add(framePlotter{line: p.X.LineStyle})
	}

	for _, e := range d.Legend {
		p.Legend.Add(e.Name, legendThumb{entry: e, kind: o.PointType, width: lineWidth, mark: marks})
	}
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = fontSize

	pad(&p.X, marginFraction, 0.5)
	pad(&p.Y, marginFraction, 1)
	return p, nil
}

func textStyle(size vg.Length, x text.XAlignment, y text.YAlignment) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  x,
		YAlign:  y,
		Handler: plot.DefaultTextHandler,
	}
}

// configureAxis shows or hides one axis and sets its caption.
func configureAxis(a *plot.Axis, show bool, label string, size vg.Length) {
	if !show {
		a.Tick.Length = 0
		a.Width = 0
		a.Tick.Marker = plot.ConstantTicks([]plot.Tick{})
		a.Label.Text = ""
		a.Padding = 0
		return
	}
	a.Label.Text = label
	a.Label.TextStyle.Font.Size = size
	a.Tick.Label.Font.Size = size * 0.9
}

// pad widens the axis range by frac of its span, or by min on each side
// when the span is zero.
func pad(a *plot.Axis, frac, min float64) {
	span := a.Max - a.Min
	if math.IsInf(span, 0) || math.IsNaN(span) {
		return
	}
	m := span * frac
	if m == 0 {
		m = min
	}
	a.Min -= m
	a.Max += m
}
