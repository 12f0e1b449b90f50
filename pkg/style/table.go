package style

import (
	_ "embed"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/ha1tch/profile-toolkit/pkg/palette"
	"github.com/ha1tch/profile-toolkit/pkg/profile"
)

// DefaultStyle is the base every preset is layered onto.
const DefaultStyle = "default"

//go:embed styles.yaml
var builtinStyles []byte

// Table maps style names to partial option overrides. A Table is never
// modified after it is parsed.
type Table struct {
	presets map[string]map[string]any
}

var (
	defaultTableOnce sync.Once
	defaultTable     *Table
)

// DefaultTable returns the built-in preset table.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := ParseTable(builtinStyles)
		if err != nil {
			panic(err) // should never happen with the embedded table
		}
		defaultTable = t
	})
	return defaultTable
}

// ParseTable parses a YAML preset table.
func ParseTable(data []byte) (*Table, error) {
	var presets map[string]map[string]any
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing style table: %w", err)
	}
	for name, entry := range presets {
		if entry == nil {
			presets[name] = map[string]any{}
		}
	}
	return &Table{presets: presets}, nil
}

// Merge returns a new table holding t's presets overlaid by other's.
func (t *Table) Merge(other *Table) *Table {
	merged := make(map[string]map[string]any, len(t.presets)+len(other.presets))
	for name, entry := range t.presets {
		merged[name] = entry
	}
	for name, entry := range other.presets {
		merged[name] = entry
	}
	return &Table{presets: merged}
}

// Names lists the available styles, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.presets))
	for name := range t.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build resolves a style: the default entry, then the named preset, then
// per-call overrides.
func (t *Table) Build(name string, overrides map[string]any) (Options, error) {
	var o Options
	base, ok := t.presets[DefaultStyle]
	if !ok {
		return o, fmt.Errorf("%w: table has no %q entry", ErrUnknownStyle, DefaultStyle)
	}
	if name == "" {
		name = DefaultStyle
	}
	preset, ok := t.presets[name]
	if !ok {
		return o, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}

	layers := []map[string]any{base}
	if name != DefaultStyle {
		layers = append(layers, preset)
	}
	layers = append(layers, overrides)

	for _, layer := range layers {
		if err := ApplyAll(&o, layer); err != nil {
			return o, err
		}
	}
	return o, nil
}

// ApplyAll sets every key of values on o, in sorted key order.
func ApplyAll(o *Options, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := Apply(o, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Apply sets a single option from a loosely typed value.
func Apply(o *Options, key string, value any) error {
	var err error
	switch key {
	case "point_type":
		var s string
		if s, err = cast.ToStringE(value); err == nil {
			o.PointType, err = profile.ParseMarkerStyle(s)
		}
	case "curviness":
		if o.Curviness, err = cast.ToFloat64E(value); err == nil && o.Curviness < 0 {
			err = fmt.Errorf("must not be negative")
		}
	case "desaturate", "desaturate_curve":
		o.Desaturate, err = cast.ToBoolE(value)
	case "desaturate_factor":
		o.DesaturateFactor, err = cast.ToFloat64E(value)
	case "dashed":
		o.Dashed, err = cast.ToStringSliceE(value)
	case "labels":
		o.Labels, err = cast.ToBoolE(value)
	case "label_buffer":
		o.LabelBuffer, err = cast.ToFloat64E(value)
	case "show_legend":
		o.ShowLegend, err = cast.ToBoolE(value)
	case "colors":
		o.Colors, err = toColorSpec(value)
	case "axes":
		var s string
		if s, err = cast.ToStringE(value); err == nil {
			o.Axes = ParseAxes(s)
		}
	case "energy":
		o.Energy, err = oneOf(value, "G", "E", "H", "S")
	case "units":
		o.Units, err = oneOf(value, "kcal", "kJ")
	case "x_label":
		o.XLabel, err = cast.ToStringE(value)
	case "segment_annotations":
		o.Annotations, err = toAnnotations(value)
	case "point_labels":
		o.PointLabels, err = toPointLabels(value)
	case "include_keys":
		o.IncludeKeys, err = cast.ToStringSliceE(value)
	case "exclude_from_legend":
		o.ExcludeLegend, err = cast.ToStringSliceE(value)
	case "bar_width":
		o.BarWidth, err = cast.ToFloat64E(value)
	case "bar_length":
		o.BarLength, err = cast.ToFloat64E(value)
	case "connect_bar_ends":
		o.ConnectBarEnds, err = cast.ToBoolE(value)
	case "line_width":
		o.LineWidth, err = cast.ToFloat64E(value)
	case "marker_size":
		o.MarkerSize, err = cast.ToFloat64E(value)
	case "font_size":
		o.FontSize, err = cast.ToFloat64E(value)
	case "figsize":
		o.FigSize, err = toFigSize(value)
	case "dpi":
		o.DPI, err = cast.ToIntE(value)
	case "format":
		o.Format, err = oneOf(value, "png", "svg", "pdf", "eps")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	return nil
}

func oneOf(value any, allowed ...string) (string, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", fmt.Errorf("%q not one of %s", s, strings.Join(allowed, ", "))
}

// toColorSpec accepts a palette or colormap name, a comma separated or
// YAML list of colours, or a ready palette.Spec.
func toColorSpec(value any) (palette.Spec, error) {
	switch v := value.(type) {
	case palette.Spec:
		return v, nil
	case []color.Color:
		return palette.List(v...), nil
	case palette.ColorFunc:
		return palette.Func(v), nil
	case string:
		if strings.Contains(v, ",") {
			return palette.ParseList(splitList(v))
		}
		if v == "" {
			return palette.Named(palette.DefaultName), nil
		}
		return palette.Named(v), nil
	}
	list, err := cast.ToStringSliceE(value)
	if err != nil {
		return palette.Spec{}, err
	}
	return palette.ParseList(list)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toFigSize(value any) ([2]float64, error) {
	var size [2]float64
	var items []any
	switch v := value.(type) {
	case [2]float64:
		items = []any{v[0], v[1]}
	case []float64:
		for _, f := range v {
			items = append(items, f)
		}
	case string:
		parts := strings.FieldsFunc(v, func(r rune) bool { return r == 'x' || r == ',' || r == ' ' })
		for _, p := range parts {
			items = append(items, p)
		}
	default:
		var err error
		if items, err = cast.ToSliceE(value); err != nil {
			return size, err
		}
	}
	if len(items) != 2 {
		return size, fmt.Errorf("figsize needs width and height, got %d values", len(items))
	}
	for i, item := range items {
		f, err := cast.ToFloat64E(item)
		if err != nil {
			return size, err
		}
		if f <= 0 {
			return size, fmt.Errorf("figsize must be positive")
		}
		size[i] = f
	}
	return size, nil
}

// toAnnotations accepts a list of {text, from, to} mappings, or a mapping
// of caption to [from, to] (ordered by start).
func toAnnotations(value any) ([]Annotation, error) {
	if v, ok := value.([]Annotation); ok {
		return v, nil
	}
	if value == nil {
		return nil, nil
	}

	if items, err := cast.ToSliceE(value); err == nil {
		out := make([]Annotation, 0, len(items))
		for _, item := range items {
			m, err := cast.ToStringMapE(item)
			if err != nil {
				return nil, err
			}
			a, err := annotationFrom(cast.ToString(m["text"]), []any{m["from"], m["to"]})
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	}

	m, err := cast.ToStringMapE(value)
	if err != nil {
		return nil, err
	}
	out := make([]Annotation, 0, len(m))
	for text, span := range m {
		bounds, err := cast.ToSliceE(span)
		if err != nil {
			return nil, err
		}
		a, err := annotationFrom(text, bounds)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].Text < out[j].Text
	})
	return out, nil
}

func annotationFrom(text string, bounds []any) (Annotation, error) {
	if len(bounds) != 2 {
		return Annotation{}, fmt.Errorf("annotation %q needs a start and an end", text)
	}
	from, err := cast.ToFloat64E(bounds[0])
	if err != nil {
		return Annotation{}, err
	}
	to, err := cast.ToFloat64E(bounds[1])
	if err != nil {
		return Annotation{}, err
	}
	if to < from {
		from, to = to, from
	}
	return Annotation{Text: text, From: from, To: to}, nil
}

// toPointLabels accepts a mapping of pathway name to per-index texts;
// null entries keep the numeric label.
func toPointLabels(value any) (map[string][]string, error) {
	if v, ok := value.(map[string][]string); ok {
		return v, nil
	}
	if value == nil {
		return nil, nil
	}
	m, err := cast.ToStringMapE(value)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(m))
	for name, raw := range m {
		items, err := cast.ToSliceE(raw)
		if err != nil {
			return nil, err
		}
		texts := make([]string, len(items))
		for i, item := range items {
			if item == nil {
				continue
			}
			if texts[i], err = cast.ToStringE(item); err != nil {
				return nil, err
			}
		}
		out[name] = texts
	}
	return out, nil
}
