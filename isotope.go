package nmrtab

import (
	"fmt"
	"strings"
)

// Isotope is an NMR-active isotope, written the NEF way: mass number then
// element symbol.
type Isotope string

// Isotopes of the nuclei that occur in biomolecular NMR.
const (
	Isotope1H  Isotope = "1H"
	Isotope2H  Isotope = "2H"
	Isotope3H  Isotope = "3H"
	Isotope13C Isotope = "13C"
	Isotope15N Isotope = "15N"
	Isotope17O Isotope = "17O"
	Isotope19F Isotope = "19F"
	Isotope31P Isotope = "31P"
)

// gammaRatios are magnetogyric ratios relative to 1H, from the IAEA table of
// recommended nuclear magnetic moments. 15N and 17O are negative in reality;
// the magnitudes are used here.
var gammaRatios = map[Isotope]float64{
	Isotope1H:  1.0,
	Isotope2H:  0.153508386,
	Isotope3H:  1.066643718,
	Isotope13C: 0.251503855,
	Isotope15N: 0.101368145,
	Isotope17O: 0.135564627,
	Isotope19F: 0.94129576,
	Isotope31P: 0.404791467,
}

// atomToIsotope maps the leading element letter of an atom name to the
// isotope observed for it.
var atomToIsotope = map[byte]Isotope{
	'H': Isotope1H,
	'D': Isotope2H,
	'T': Isotope3H,
	'C': Isotope13C,
	'N': Isotope15N,
	'O': Isotope17O,
	'F': Isotope19F,
	'P': Isotope31P,
}

// IsotopeForAtom returns the isotope observed for an atom name such as "HN"
// or "CA".
func IsotopeForAtom(atomName string) (Isotope, error) {
	if len(atomName) > 0 {
		if isotope, ok := atomToIsotope[atomName[0]&^0x20]; ok {
			return isotope, nil
		}
	}
	return "", fmt.Errorf("nmrtab: no isotope known for atom %q", atomName)
}

// ParseAxisCodes splits a dot-separated axis code string such as "1H.1H.15N"
// into one isotope per axis and checks that every axis up to dimensions has
// a known one.
func ParseAxisCodes(axisCodes string, dimensions int) ([]Isotope, error) {
	codes := strings.Split(axisCodes, ".")
	result := make([]Isotope, 0, dimensions)
	for axis := 0; axis < dimensions; axis++ {
		if axis >= len(codes) {
			return nil, fmt.Errorf("nmrtab: can't find isotope code for axis %d got axis codes %s", axis+1, axisCodes)
		}
		isotope := Isotope(codes[axis])
		if _, ok := gammaRatios[isotope]; !ok {
			return nil, fmt.Errorf("nmrtab: can't find isotope code for axis %d got axis codes %s", axis+1, axisCodes)
		}
		result = append(result, isotope)
	}
	return result, nil
}

// SpectrometerFrequency derives the resonance frequency of an isotope from
// the spectrometer's 1H frequency via the magnetogyric ratios.
func SpectrometerFrequency(isotope Isotope, protonFrequencyMHz float64) (float64, error) {
	ratio, ok := gammaRatios[isotope]
	if !ok {
		return 0, fmt.Errorf("nmrtab: no magnetogyric ratio known for isotope %q", isotope)
	}
	return protonFrequencyMHz * ratio, nil
}
