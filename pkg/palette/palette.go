// Package palette resolves colour specifications into per-pathway colours.
//
// A specification is a palette or colormap name, an explicit list, or a
// function. Resolution is strict: a list shorter than the number of
// pathways is an error, never silently cycled.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	ErrUnknownPalette = errors.New("unknown palette")
	ErrTooFewColors   = errors.New("too few colors")
	ErrInvalidColor   = errors.New("invalid color")
)

// DefaultName is the palette used when nothing else is configured.
const DefaultName = "default"

// Kind tags the variant held by a Spec.
type Kind int

const (
	KindNamed Kind = iota
	KindList
	KindFunc
)

// ColorFunc returns the colour for pathway i out of n.
type ColorFunc func(i, n int) color.Color

// Spec is a colour specification.
type Spec struct {
	Kind   Kind
	Name   string
	Values []color.Color
	Func   ColorFunc
}

// Named refers to a qualitative palette or a colormap by name.
func Named(name string) Spec {
	return Spec{Kind: KindNamed, Name: name}
}

// List is an explicit colour per pathway, in declaration order.
func List(colors ...color.Color) Spec {
	return Spec{Kind: KindList, Values: colors}
}

// Func derives every colour from f.
func Func(f ColorFunc) Spec {
	return Spec{Kind: KindFunc, Func: f}
}

// ParseList parses colour strings into a List spec.
func ParseList(values []string) (Spec, error) {
	colors := make([]color.Color, 0, len(values))
	for _, v := range values {
		c, err := ParseColor(v)
		if err != nil {
			return Spec{}, err
		}
		colors = append(colors, c)
	}
	return List(colors...), nil
}

// ParseColor accepts "#rgb", "#rrggbb" or an SVG/CSS colour name.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return c, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Colors returns n colours in declaration order.
func (s Spec) Colors(n int) ([]color.Color, error) {
	switch s.Kind {
	case KindList:
		if len(s.Values) < n {
			return nil, fmt.Errorf("%w: %d given for %d pathways", ErrTooFewColors, len(s.Values), n)
		}
		return append([]color.Color(nil), s.Values[:n]...), nil

	case KindFunc:
		if s.Func == nil {
			return nil, fmt.Errorf("%w: nil color function", ErrUnknownPalette)
		}
		return fromFunc(s.Func, n), nil

	default:
		name := s.Name
		if name == "" {
			name = DefaultName
		}
		if hexes, ok := qualitative[name]; ok {
			if len(hexes) < n {
				return nil, fmt.Errorf("%w: palette %q has %d colors for %d pathways", ErrTooFewColors, name, len(hexes), n)
			}
			colors := make([]color.Color, n)
			for i := range colors {
				c, err := ParseColor(hexes[i])
				if err != nil {
					return nil, err
				}
				colors[i] = c
			}
			return colors, nil
		}
		if f, ok := Colormap(name); ok {
			return fromFunc(f, n), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
}

func fromFunc(f ColorFunc, n int) []color.Color {
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = f(i, n)
	}
	return colors
}

// Names lists every palette and colormap name, sorted.
func Names() []string {
	var names []string
	for name := range qualitative {
		names = append(names, name)
	}
	for name := range sequential {
		names = append(names, name, name+"_r")
	}
	sort.Strings(names)
	return names
}

// Resolved holds colours in draw order: the last-declared pathway is drawn
// first and the first-declared pathway last, so it ends up on top.
type Resolved struct {
	// Order[k] is the pathway index drawn at position k.
	Order       []int
	Saturated   []color.Color
	Desaturated []color.Color
}

// Resolve produces colours for n pathways plus their desaturated variants.
func Resolve(spec Spec, n int, factor float64) (*Resolved, error) {
	colors, err := spec.Colors(n)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Order:       make([]int, n),
		Saturated:   make([]color.Color, n),
		Desaturated: make([]color.Color, n),
	}
	for k := 0; k < n; k++ {
		i := n - 1 - k
		r.Order[k] = i
		r.Saturated[k] = colors[i]
		r.Desaturated[k] = Desaturate(colors[i], factor)
	}
	return r, nil
}

// Color returns the saturated colour of a pathway by declaration index.
func (r *Resolved) Color(pathway int) color.Color {
	return r.Saturated[len(r.Order)-1-pathway]
}

// Light returns the desaturated colour of a pathway by declaration index.
func (r *Resolved) Light(pathway int) color.Color {
	return r.Desaturated[len(r.Order)-1-pathway]
}

// Desaturate keeps the hue of c and sets lightness to 1 - 0.4·factor and
// saturation to 0.3·factor, both clamped to [0, 1].
func Desaturate(c color.Color, factor float64) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	h, _, _ := cf.Hsl()
	return colorful.Hsl(h, clamp01(0.3*factor), clamp01(1-0.4*factor)).Clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
