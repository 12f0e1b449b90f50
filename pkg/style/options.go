// Package style holds the resolved rendering configuration and the preset
// table it is built from.
package style

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ha1tch/profile-toolkit/pkg/palette"
	"github.com/ha1tch/profile-toolkit/pkg/profile"
)

var (
	ErrUnknownStyle  = errors.New("unknown style")
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidValue  = errors.New("invalid option value")
)

// Axes selects which spines and ticks are visible.
type Axes string

const (
	AxesNone Axes = "none"
	AxesX    Axes = "x"
	AxesY    Axes = "y"
	AxesBoth Axes = "both"
	AxesBox  Axes = "box"
)

// ParseAxes maps a name onto Axes. Anything unrecognised means no axes.
func ParseAxes(s string) Axes {
	switch a := Axes(s); a {
	case AxesX, AxesY, AxesBoth, AxesBox:
		return a
	}
	return AxesNone
}

// ShowX reports whether the x axis is drawn.
func (a Axes) ShowX() bool {
	return a == AxesX || a == AxesBoth || a == AxesBox
}

// ShowY reports whether the y axis is drawn.
func (a Axes) ShowY() bool {
	return a == AxesY || a == AxesBoth || a == AxesBox
}

// Annotation is a named x range drawn as a double-headed arrow below the plot.
type Annotation struct {
	Text     string
	From, To float64
}

// Options is a fully resolved style configuration. It is not modified
// during a render.
type Options struct {
	PointType        profile.MarkerStyle
	Curviness        float64
	Desaturate       bool
	DesaturateFactor float64
	Dashed           []string // pathway names or declaration indices
	Labels           bool
	LabelBuffer      float64 // fraction of the energy range
	ShowLegend       bool
	Colors           palette.Spec
	Axes             Axes
	Energy           string // G, E, H or S
	Units            string // kcal or kJ
	XLabel           string
	Annotations      []Annotation
	PointLabels      map[string][]string
	IncludeKeys      []string
	ExcludeLegend    []string
	BarWidth         float64 // points
	BarLength        float64 // reaction-coordinate units
	ConnectBarEnds   bool
	LineWidth        float64 // points
	MarkerSize       float64 // points
	FontSize         float64 // points
	FigSize          [2]float64
	DPI              int
	Format           string
}

// YLabel is the energy axis caption, e.g. "ΔG (kcal/mol)".
func (o Options) YLabel() string {
	return fmt.Sprintf("Δ%s (%s/mol)", o.Energy, o.Units)
}

// IsDashed reports whether the pathway is stroked dashed.
func (o Options) IsDashed(name string, index int) bool {
	idx := strconv.Itoa(index)
	for _, d := range o.Dashed {
		if d == name || d == idx {
			return true
		}
	}
	return false
}

// Includes reports whether the pathway is drawn at all.
func (o Options) Includes(name string) bool {
	if len(o.IncludeKeys) == 0 {
		return true
	}
	return contains(o.IncludeKeys, name)
}

// InLegend reports whether the pathway gets a legend entry.
func (o Options) InLegend(name string) bool {
	return o.ShowLegend && !contains(o.ExcludeLegend, name)
}

// CurveInset is how far curves are pulled in from point centres.
func (o Options) CurveInset() float64 {
	if o.PointType == profile.MarkerBar && o.ConnectBarEnds {
		return o.BarLength / 2
	}
	return 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
