package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/profile-toolkit/pkg/palette"
	"github.com/ha1tch/profile-toolkit/pkg/profile"
)

func TestDefaultStyle(t *testing.T) {
	o, err := DefaultTable().Build("", nil)
	require.NoError(t, err)

	assert.Equal(t, profile.MarkerDot, o.PointType)
	assert.Equal(t, 0.42, o.Curviness)
	assert.True(t, o.Desaturate)
	assert.Equal(t, 1.2, o.DesaturateFactor)
	assert.True(t, o.Labels)
	assert.Equal(t, 0.025, o.LabelBuffer)
	assert.False(t, o.ShowLegend)
	assert.Equal(t, palette.Named(palette.DefaultName).Name, o.Colors.Name)
	assert.Equal(t, AxesNone, o.Axes)
	assert.Equal(t, "ΔG (kcal/mol)", o.YLabel())
	assert.Equal(t, [2]float64{8, 4}, o.FigSize)
	assert.Equal(t, 600, o.DPI)
	assert.Equal(t, "png", o.Format)
	assert.Equal(t, 2.5, o.BarWidth)
	assert.Equal(t, 0.3, o.BarLength)
}

func TestPresetLayering(t *testing.T) {
	o, err := DefaultTable().Build("straight", nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, o.Curviness)
	assert.Equal(t, profile.MarkerBar, o.PointType)
	assert.True(t, o.ConnectBarEnds)
	assert.Equal(t, 0.15, o.CurveInset())
	// untouched keys come from default
	assert.Equal(t, 600, o.DPI)

	o, err = DefaultTable().Build("presentation", nil)
	require.NoError(t, err)
	assert.Equal(t, 14.0, o.FontSize)
	assert.Equal(t, AxesY, o.Axes)
	assert.Equal(t, [2]float64{10, 5}, o.FigSize)
}

func TestOverridesWinOverPreset(t *testing.T) {
	o, err := DefaultTable().Build("straight", map[string]any{
		"curviness":  "0.7",
		"point_type": "hollow",
		"dashed":     []any{"Pathway A", 1},
		"figsize":    "6x3",
		"dpi":        "150",
		"energy":     "E",
		"units":      "kJ",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.7, o.Curviness)
	assert.Equal(t, profile.MarkerHollow, o.PointType)
	assert.Equal(t, 0.0, o.CurveInset())
	assert.True(t, o.IsDashed("Pathway A", 0))
	assert.True(t, o.IsDashed("Pathway B", 1))
	assert.False(t, o.IsDashed("Pathway C", 2))
	assert.Equal(t, [2]float64{6, 3}, o.FigSize)
	assert.Equal(t, 150, o.DPI)
	assert.Equal(t, "ΔE (kJ/mol)", o.YLabel())
}

func TestBuildErrors(t *testing.T) {
	table := DefaultTable()

	_, err := table.Build("neon", nil)
	assert.ErrorIs(t, err, ErrUnknownStyle)

	_, err = table.Build("", map[string]any{"sparkle": true})
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = table.Build("", map[string]any{"point_type": "square"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = table.Build("", map[string]any{"curviness": -0.1})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = table.Build("", map[string]any{"format": "gif"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = table.Build("", map[string]any{"colors": []any{"red", "notacolor"}})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = table.Build("", map[string]any{"figsize": []any{8}})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestUnknownAxesMeansNone(t *testing.T) {
	o, err := DefaultTable().Build("", map[string]any{"axes": "diagonal"})
	require.NoError(t, err)
	assert.Equal(t, AxesNone, o.Axes)
	assert.False(t, o.Axes.ShowX())
	assert.False(t, o.Axes.ShowY())

	assert.True(t, AxesBox.ShowX() && AxesBox.ShowY())
	assert.True(t, AxesX.ShowX() && !AxesX.ShowY())
}

func TestColorOption(t *testing.T) {
	o, err := DefaultTable().Build("", map[string]any{"colors": "Reds_r"})
	require.NoError(t, err)
	assert.Equal(t, palette.KindNamed, o.Colors.Kind)
	assert.Equal(t, "Reds_r", o.Colors.Name)

	o, err = DefaultTable().Build("", map[string]any{"colors": "red, #00ff00"})
	require.NoError(t, err)
	assert.Equal(t, palette.KindList, o.Colors.Kind)
	assert.Len(t, o.Colors.Values, 2)

	o, err = DefaultTable().Build("", map[string]any{"colors": []any{"navy", "teal", "olive"}})
	require.NoError(t, err)
	assert.Len(t, o.Colors.Values, 3)
}

func TestAnnotationsAndPointLabels(t *testing.T) {
	o, err := DefaultTable().Build("", map[string]any{
		"segment_annotations": map[string]any{
			"Part 2": []any{4, 2},
			"Part 1": []any{0, 2},
		},
		"point_labels": map[string]any{
			"Pathway B": []any{nil, nil, "TS2"},
		},
	})
	require.NoError(t, err)

	require.Len(t, o.Annotations, 2)
	assert.Equal(t, Annotation{Text: "Part 1", From: 0, To: 2}, o.Annotations[0])
	assert.Equal(t, Annotation{Text: "Part 2", From: 2, To: 4}, o.Annotations[1])
	assert.Equal(t, []string{"", "", "TS2"}, o.PointLabels["Pathway B"])

	o, err = DefaultTable().Build("", map[string]any{
		"segment_annotations": []any{
			map[string]any{"text": "Step", "from": 1, "to": 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []Annotation{{Text: "Step", From: 1, To: 3}}, o.Annotations)
}

func TestLegendFilters(t *testing.T) {
	o, err := DefaultTable().Build("", map[string]any{
		"show_legend":         true,
		"include_keys":        []any{"A", "C"},
		"exclude_from_legend": []any{"A"},
	})
	require.NoError(t, err)

	assert.True(t, o.Includes("A"))
	assert.False(t, o.Includes("B"))
	assert.False(t, o.InLegend("A"))
	assert.True(t, o.InLegend("C"))
}

func TestCustomTable(t *testing.T) {
	custom, err := ParseTable([]byte(`
poster:
  font_size: 20
  figsize: [16, 9]
`))
	require.NoError(t, err)

	table := DefaultTable().Merge(custom)
	assert.Contains(t, table.Names(), "poster")
	assert.Contains(t, table.Names(), "straight")

	o, err := table.Build("poster", nil)
	require.NoError(t, err)
	assert.Equal(t, 20.0, o.FontSize)
	assert.Equal(t, 0.42, o.Curviness)

	// the built-in table is left alone
	assert.NotContains(t, DefaultTable().Names(), "poster")

	_, err = ParseTable([]byte("default: [unclosed"))
	assert.Error(t, err)

	_, err = custom.Build("poster", nil)
	assert.ErrorIs(t, err, ErrUnknownStyle)
}
