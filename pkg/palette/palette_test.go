package palette

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func TestResolveDrawOrder(t *testing.T) {
	r, err := Resolve(Named(DefaultName), 3, 1.2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantOrder := []int{2, 1, 0}
	for k, i := range wantOrder {
		if r.Order[k] != i {
			t.Errorf("Draw position %d: expected pathway %d, got %d", k, i, r.Order[k])
		}
	}

	// first-declared pathway keeps the first colour and is drawn last
	if !sameColor(r.Color(0), colornames.Darkcyan) {
		t.Errorf("Pathway 0 should be darkcyan, got %v", r.Color(0))
	}
	if !sameColor(r.Saturated[len(r.Saturated)-1], colornames.Darkcyan) {
		t.Errorf("Last drawn colour should be darkcyan, got %v", r.Saturated[2])
	}
	for k, i := range r.Order {
		if !sameColor(r.Saturated[k], r.Color(i)) {
			t.Errorf("Saturated[%d] does not belong to pathway %d", k, i)
		}
		if !sameColor(r.Desaturated[k], r.Light(i)) {
			t.Errorf("Desaturated[%d] does not belong to pathway %d", k, i)
		}
	}
}

func TestResolveExplicitListTooShort(t *testing.T) {
	spec := List(colornames.Red, colornames.Blue)

	if _, err := Resolve(spec, 3, 1.2); !errors.Is(err, ErrTooFewColors) {
		t.Errorf("Expected ErrTooFewColors, got %v", err)
	}
	if _, err := Resolve(spec, 2, 1.2); err != nil {
		t.Errorf("Two colours for two pathways should resolve, got %v", err)
	}
}

func TestResolveNamedTooShort(t *testing.T) {
	if _, err := Resolve(Named(DefaultName), 7, 1.2); !errors.Is(err, ErrTooFewColors) {
		t.Errorf("Expected ErrTooFewColors for 7 pathways, got %v", err)
	}
}

func TestResolveUnknownPalette(t *testing.T) {
	if _, err := Resolve(Named("rainbow-sparkle"), 1, 1.2); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("Expected ErrUnknownPalette, got %v", err)
	}
	if _, err := Resolve(Func(nil), 1, 1.2); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("Expected ErrUnknownPalette for nil function, got %v", err)
	}
}

func TestResolveFunc(t *testing.T) {
	calls := 0
	spec := Func(func(i, n int) color.Color {
		calls++
		if n != 4 {
			t.Errorf("Expected n=4, got %d", n)
		}
		return color.Gray{Y: uint8(i * 10)}
	})

	r, err := Resolve(spec, 4, 1.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if calls != 4 {
		t.Errorf("Expected 4 calls, got %d", calls)
	}
	if !sameColor(r.Color(3), color.Gray{Y: 30}) {
		t.Errorf("Pathway 3 should get gray 30, got %v", r.Color(3))
	}
}

func TestColormap(t *testing.T) {
	reds, ok := Colormap("Reds")
	if !ok {
		t.Fatal("Reds should exist")
	}
	redsR, ok := Colormap("Reds_r")
	if !ok {
		t.Fatal("Reds_r should exist")
	}
	if _, ok := Colormap("Nope"); ok {
		t.Error("Unknown colormap should not resolve")
	}

	// with two pathways the forward map samples 0.35 and 0.95, the
	// reversed map 0.65 and 0.05
	dark, _ := colorful.MakeColor(reds(1, 2))
	light, _ := colorful.MakeColor(redsR(1, 2))
	_, _, ld := dark.Hsl()
	_, _, ll := light.Hsl()
	if ld >= ll {
		t.Errorf("Forward end of Reds should be darker than reversed end: %.3f vs %.3f", ld, ll)
	}

	colors, err := Named("viridis_r").Colors(5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(colors) != 5 {
		t.Errorf("Colormaps never run short, expected 5 colours, got %d", len(colors))
	}
}

func TestDesaturate(t *testing.T) {
	got, _ := colorful.MakeColor(Desaturate(colornames.Red, 1.2))
	h, s, l := got.Hsl()

	if math.Abs(h) > 0.5 && math.Abs(h-360) > 0.5 {
		t.Errorf("Hue should be preserved, got %.2f", h)
	}
	if math.Abs(s-0.36) > 0.01 {
		t.Errorf("Expected saturation 0.36, got %.3f", s)
	}
	if math.Abs(l-0.52) > 0.01 {
		t.Errorf("Expected lightness 0.52, got %.3f", l)
	}
}

func TestDesaturateClamps(t *testing.T) {
	got, _ := colorful.MakeColor(Desaturate(colornames.Blue, 5))
	_, s, l := got.Hsl()

	if s > 1.0001 || l < -0.0001 {
		t.Errorf("Expected clamped HSL, got s=%.3f l=%.3f", s, l)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#ff0000", colornames.Red, false},
		{"darkcyan", colornames.Darkcyan, false},
		{"DarkCyan", colornames.Darkcyan, false},
		{" maroon ", colornames.Maroon, false},
		{"#zzzzzz", nil, true},
		{"notacolor", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("ParseColor(%q): expected ErrInvalidColor, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): unexpected error %v", tt.in, err)
			continue
		}
		if !sameColor(got, tt.want) {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := map[string]bool{DefaultName: false, "Reds": false, "Reds_r": false, "tab10": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("Expected %q in Names()", n)
		}
	}
}
