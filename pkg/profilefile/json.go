// Package profilefile reads energy profiles from JSON.
//
// Two layouts are accepted:
//
//	{"Pathway A": [0.0, 5.0, null], "Pathway B": [...]}
//	[[0.0, 5.0, null], [...]]
//
// Object keys keep their order; array entries are named "Pathway 1", ...
package profilefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ha1tch/profile-toolkit/pkg/profile"
)

// ErrEmptyProfile is returned for input holding no pathway at all.
var ErrEmptyProfile = errors.New("profile has no pathways")

// ParseJSON parses pathways from JSON; null marks a missing step.
func ParseJSON(data []byte) ([]profile.Pathway, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var pathways []profile.Pathway
	switch tok {
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("reading pathway name: %w", err)
			}
			name, _ := keyTok.(string)
			seq, err := decodeSequence(dec)
			if err != nil {
				return nil, fmt.Errorf("pathway %q: %w", name, err)
			}
			pathways = append(pathways, profile.Pathway{Name: name, Energies: seq})
		}
	case json.Delim('['):
		for dec.More() {
			seq, err := decodeSequence(dec)
			if err != nil {
				return nil, fmt.Errorf("pathway %d: %w", len(pathways)+1, err)
			}
			pathways = append(pathways, profile.Pathway{
				Name:     fmt.Sprintf("Pathway %d", len(pathways)+1),
				Energies: seq,
			})
		}
	default:
		return nil, fmt.Errorf("profile must be a JSON object or array, got %v", tok)
	}

	// closing delimiter, then nothing else
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after profile")
	}

	if len(pathways) == 0 {
		return nil, ErrEmptyProfile
	}
	return pathways, nil
}

func decodeSequence(dec *json.Decoder) (profile.Sequence, error) {
	var values []*float64
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	return profile.Seq(values...), nil
}

// ReadFile loads pathways from a JSON file.
func ReadFile(path string) ([]profile.Pathway, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}

// ParsePointLabels parses {"Pathway A": ["Int1", null, "TS1"], ...}.
// null entries become empty strings, which keep the numeric label.
func ParsePointLabels(data []byte) (map[string][]string, error) {
	var raw map[string][]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("reading point labels: %w", err)
	}
	labels := make(map[string][]string, len(raw))
	for name, entries := range raw {
		texts := make([]string, len(entries))
		for i, e := range entries {
			if e != nil {
				texts[i] = *e
			}
		}
		labels[name] = texts
	}
	return labels, nil
}

// ToJSON writes pathways as an ordered JSON object, missing steps as null.
func ToJSON(pathways []profile.Pathway, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, p := range pathways {
		if i > 0 {
			buf.WriteString(",")
		}
		if pretty {
			buf.WriteString("\n  ")
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteString(":")
		if pretty {
			buf.WriteString(" ")
		}

		values := make([]*float64, len(p.Energies))
		for j, v := range p.Energies {
			if !profile.IsMissing(v) {
				v := v
				values[j] = &v
			}
		}
		data, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	if pretty && len(pathways) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}
