package main

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/profile-toolkit/pkg/profile"
	"github.com/ha1tch/profile-toolkit/pkg/render"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleLabelMax = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleNote     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLegend   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// glyphs per marker style
var markGlyph = map[profile.MarkerStyle]rune{
	profile.MarkerDot:    '●',
	profile.MarkerHollow: '○',
	profile.MarkerBar:    '━',
}

// viewport maps data coordinates onto a block of terminal cells.
type viewport struct {
	x0, y0, w, h           int
	minX, maxX, minY, maxY float64
}

func newViewport(d *render.Diagram, x0, y0, w, h int) viewport {
	v := viewport{x0: x0, y0: y0, w: w, h: h}
	v.minX, v.maxX = d.MinX-0.5, d.MaxX+0.5
	v.minY, v.maxY = d.MinY, d.MaxY
	if len(d.Annotations) > 0 {
		v.minY = math.Min(v.minY, d.AnnotationY)
	}
	pad := (v.maxY - v.minY) * 0.1
	if pad == 0 {
		pad = 1
	}
	v.minY -= pad
	v.maxY += pad
	return v
}

// cell returns the column and row of a data point.
func (v viewport) cell(x, y float64) (int, int) {
	col := v.x0 + int(math.Round((x-v.minX)/(v.maxX-v.minX)*float64(v.w-1)))
	row := v.y0 + int(math.Round((v.maxY-y)/(v.maxY-v.minY)*float64(v.h-1)))
	return col, row
}

func (v viewport) contains(col, row int) bool {
	return col >= v.x0 && col < v.x0+v.w && row >= v.y0 && row < v.y0+v.h
}

func colorStyle(c color.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.FromImageColor(c))
}

func (vw *Viewer) draw() {
	vw.screen.Clear()
	w, h := vw.screen.Size()

	if vw.diagram != nil && h > 2 {
		vw.drawDiagram(newViewport(vw.diagram, 0, 0, w, h-2))
	}
	vw.drawStatusBar(w, h)
}

func (vw *Viewer) drawDiagram(v viewport) {
	d := vw.diagram

	for _, s := range d.Strokes {
		sty := colorStyle(s.Color)
		for _, a := range s.Curve.Arcs {
			c0, _ := v.cell(a.P0.X, a.P0.Y)
			c1, _ := v.cell(a.P3.X, a.P3.Y)
			steps := 4 * (c1 - c0 + 1)
			for i, p := range a.Sample(steps) {
				if s.Dashed && (i/4)%2 == 1 {
					continue
				}
				col, row := v.cell(p.X, p.Y)
				vw.setCell(v, col, row, '·', sty)
			}
		}
	}

	for _, m := range d.Marks {
		col, row := v.cell(m.X, m.Y)
		if m.Style == profile.MarkerBar {
			left, _ := v.cell(m.X-d.Options.BarLength/2, m.Y)
			right, _ := v.cell(m.X+d.Options.BarLength/2, m.Y)
			for c := left; c <= right; c++ {
				vw.setCell(v, c, row, markGlyph[m.Style], colorStyle(m.Color))
			}
			continue
		}
		vw.setCell(v, col, row, markGlyph[m.Style], colorStyle(m.Color))
	}

	for _, lb := range d.Labels {
		col, row := v.cell(lb.X, lb.Value)
		sty := styleLabel
		if lb.Side == profile.Above {
			row--
			sty = styleLabelMax
		} else {
			row++
		}
		vw.drawText(v, col-len([]rune(lb.Text))/2, row, lb.Text, sty)
	}

	for _, a := range d.Annotations {
		left, row := v.cell(a.From, d.AnnotationY)
		right, _ := v.cell(a.To, d.AnnotationY)
		for c := left; c <= right; c++ {
			r := '─'
			switch c {
			case left:
				r = '◀'
			case right:
				r = '▶'
			}
			vw.setCell(v, c, row, r, styleNote)
		}
		for i, line := range strings.Split(a.Text, "\n") {
			line = strings.TrimSpace(line)
			vw.drawText(v, (left+right)/2-len([]rune(line))/2, row+1+i, line, styleNote)
		}
	}

	for i, e := range d.Legend {
		text := "── " + e.Name
		col := v.x0 + v.w - len([]rune(text)) - 1
		vw.setCell(v, col, v.y0+i, '─', colorStyle(e.Color))
		vw.setCell(v, col+1, v.y0+i, '─', colorStyle(e.Color))
		vw.drawText(v, col+3, v.y0+i, e.Name, styleLegend)
	}
}

func (vw *Viewer) setCell(v viewport, col, row int, r rune, sty tcell.Style) {
	if v.contains(col, row) {
		vw.screen.SetContent(col, row, r, nil, sty)
	}
}

func (vw *Viewer) drawText(v viewport, col, row int, s string, sty tcell.Style) {
	for i, r := range []rune(s) {
		vw.setCell(v, col+i, row, r, sty)
	}
}

func (vw *Viewer) drawStatusBar(w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		vw.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	info := filepath.Base(vw.path)
	if vw.diagram != nil {
		o := vw.diagram.Options
		info += fmt.Sprintf("  curviness %.2f  %d pathways  %d points", o.Curviness, len(vw.diagram.Pathways), vw.diagram.PointCount())
	}
	vw.drawString(1, y, info, styleStatus)

	if vw.message != "" {
		sty := styleMsgInfo
		if vw.isError {
			sty = styleMsgError
		}
		vw.drawString(w-len([]rune(vw.message))-2, y, vw.message, sty)
	}

	y = h - 2
	for x := 0; x < w; x++ {
		vw.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	vw.drawString(1, y, "+/-:Curviness  L:Labels  R:Reload  Q:Quit", styleHelp)
}

func (vw *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		vw.screen.SetContent(x+i, y, r, nil, style)
	}
}
