package profile

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoEnergies is returned when no pathway holds a single defined energy.
var ErrNoEnergies = errors.New("no energies to plot")

// BufferFraction is the default label offset as a fraction of the energy range.
const BufferFraction = 0.025

// FormatEnergy renders v with one decimal and a typographic minus sign.
func FormatEnergy(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 1, 64), "-", "−", 1)
}

// EnergyRange returns the lowest and highest plotted energy over all pathways.
func EnergyRange(paths []Coordinates) (min, max float64, err error) {
	found := false
	for _, coords := range paths {
		for _, p := range coords {
			if !found {
				min, max = p.Y, p.Y
				found = true
				continue
			}
			if p.Y < min {
				min = p.Y
			}
			if p.Y > max {
				max = p.Y
			}
		}
	}
	if !found {
		return 0, 0, ErrNoEnergies
	}
	return min, max, nil
}

// LabelBuffer is the vertical distance between a point and its label:
// fraction of the total energy range across all pathways.
func LabelBuffer(paths []Coordinates, fraction float64) (float64, error) {
	min, max, err := EnergyRange(paths)
	if err != nil {
		return 0, err
	}
	return fraction * (max - min), nil
}
