package palette

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Qualitative palettes, one distinct colour per pathway.
var qualitative = map[string][]string{
	DefaultName: {"darkcyan", "maroon", "midnightblue", "darkmagenta", "darkgreen", "saddlebrown"},
	"tab10": {
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	},
	"Set1": {
		"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
		"#ffff33", "#a65628", "#f781bf", "#999999",
	},
	"Dark2": {
		"#1b9e77", "#d95f02", "#7570b3", "#e7298a",
		"#66a61e", "#e6ab02", "#a6761d", "#666666",
	},
}

// Sequential colormaps as evenly spaced stops, low to high.
var sequential = map[string][]string{
	"Reds":    {"#fff5f0", "#fcbba1", "#fb6a4a", "#cb181d", "#67000d"},
	"Blues":   {"#f7fbff", "#c6dbef", "#6baed6", "#2171b5", "#08306b"},
	"Greens":  {"#f7fcf5", "#c7e9c0", "#74c476", "#238b45", "#00441b"},
	"Greys":   {"#ffffff", "#d9d9d9", "#969696", "#525252", "#000000"},
	"Purples": {"#fcfbfd", "#dadaeb", "#9e9ac8", "#6a51a3", "#3f007d"},
	"Oranges": {"#fff5eb", "#fdd0a2", "#fd8d3c", "#d94801", "#7f2704"},
	"viridis": {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	"plasma":  {"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"},
}

// Pathways sample the middle of a colormap, away from the near-white end.
const (
	sampleLow  = 0.35
	sampleSpan = 0.6
)

// Colormap returns a ColorFunc for a sequential colormap. A "_r" suffix
// reverses the map.
func Colormap(name string) (ColorFunc, bool) {
	reversed := false
	base := name
	if strings.HasSuffix(name, "_r") {
		reversed = true
		base = strings.TrimSuffix(name, "_r")
	}
	hexes, ok := sequential[base]
	if !ok {
		return nil, false
	}

	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, false
		}
		stops[i] = c
	}

	return func(i, n int) color.Color {
		t := sampleLow + sampleSpan/2
		if n > 1 {
			t = sampleLow + sampleSpan*float64(i)/float64(n-1)
		}
		if reversed {
			t = 1 - t
		}
		return Sample(stops, t)
	}, true
}

// Sample interpolates evenly spaced stops at t ∈ [0,1] in Lab space.
func Sample(stops []colorful.Color, t float64) color.Color {
	if len(stops) == 0 {
		return color.Black
	}
	if len(stops) == 1 || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	return stops[i].BlendLab(stops[i+1], pos-float64(i)).Clamped()
}
