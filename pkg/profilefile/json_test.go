package profilefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ha1tch/profile-toolkit/pkg/profile"
)

func TestParseObjectKeepsOrder(t *testing.T) {
	data := []byte(`{
  "Zeta": [0.0, 5.0, -2.0],
  "Alpha": [0.0, null, 3.5],
  "Mid": [1]
}`)
	paths, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	var names []string
	for _, p := range paths {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"Zeta", "Alpha", "Mid"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}

	alpha := paths[1].Energies
	if len(alpha) != 3 {
		t.Fatalf("expected 3 energies, got %d", len(alpha))
	}
	if !profile.IsMissing(alpha[1]) {
		t.Errorf("null should decode as missing, got %v", alpha[1])
	}
	if alpha[2] != 3.5 {
		t.Errorf("expected 3.5, got %v", alpha[2])
	}
}

func TestParseArrayNamesPathways(t *testing.T) {
	paths, err := ParseJSON([]byte(`[[0, 1, 0], [null, 2]]`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 pathways, got %d", len(paths))
	}
	if paths[0].Name != "Pathway 1" || paths[1].Name != "Pathway 2" {
		t.Errorf("unexpected names %q, %q", paths[0].Name, paths[1].Name)
	}
	if !profile.IsMissing(paths[1].Energies[0]) {
		t.Errorf("expected leading missing value")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `energies`},
		{"scalar", `42`},
		{"string entry", `{"A": [0, "high"]}`},
		{"nested object", `{"A": {"x": 1}}`},
		{"trailing data", `{"A": [0]} {"B": [1]}`},
		{"truncated", `{"A": [0, 1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tt.input)); err == nil {
				t.Errorf("expected error for %s", tt.input)
			}
		})
	}

	if _, err := ParseJSON([]byte(`{}`)); !errors.Is(err, ErrEmptyProfile) {
		t.Errorf("expected ErrEmptyProfile, got %v", err)
	}
	if _, err := ParseJSON([]byte(`[]`)); !errors.Is(err, ErrEmptyProfile) {
		t.Errorf("expected ErrEmptyProfile, got %v", err)
	}
}

func TestToJSONReadsBack(t *testing.T) {
	paths := []profile.Pathway{
		{Name: "B", Energies: profile.Sequence{0, 4.25, profile.Missing(), -1}},
		{Name: "A", Energies: profile.Sequence{0, 3}},
	}
	for _, pretty := range []bool{false, true} {
		data, err := ToJSON(paths, pretty)
		if err != nil {
			t.Fatalf("ToJSON: %v", err)
		}
		got, err := ParseJSON(data)
		if err != nil {
			t.Fatalf("ParseJSON(%s): %v", data, err)
		}
		if diff := cmp.Diff(paths, got, cmpopts.EquateNaNs()); diff != "" {
			t.Errorf("pretty=%v (-want +got):\n%s", pretty, diff)
		}
	}
}

func TestParsePointLabels(t *testing.T) {
	labels, err := ParsePointLabels([]byte(`{"A": ["R", null, "TS1"]}`))
	if err != nil {
		t.Fatalf("ParsePointLabels: %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"A": {"R", "", "TS1"}}, labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}

	if _, err := ParsePointLabels([]byte(`["R"]`)); err == nil {
		t.Error("expected error for array input")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte(`{"A": [0, 10, 0]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	paths, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(paths) != 1 || paths[0].Name != "A" {
		t.Errorf("unexpected pathways %+v", paths)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
