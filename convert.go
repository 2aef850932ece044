package nmrtab

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nmrkit/nmrtab/nef"
)

// Program identity written into entry headers.
const (
	ProgramName    = "nmrtab"
	ProgramVersion = "0.1.0"
)

// NEF saveframe and loop categories used by the converters.
const (
	categoryMetaData        = "nef_nmr_meta_data"
	categoryMolecularSystem = "nef_molecular_system"
	categoryShiftList       = "nef_chemical_shift_list"
	categorySpectrum        = "nef_nmr_spectrum"
)

// nefMissing is the NEF missing-value marker.
const nefMissing = "."

// HeaderFrame builds the nef_nmr_meta_data saveframe identifying the program
// and the creation time of an entry.
func HeaderFrame() *nef.Saveframe {
	frame := nef.NewSaveframe(categoryMetaData, ProgramName)
	frame.AddTag("format_name", "nmr_exchange_format")
	frame.AddTag("format_version", "1.1")
	frame.AddTag("program_name", ProgramName)
	frame.AddTag("program_version", ProgramVersion)
	frame.AddTag("creation_date", time.Now().Format(time.RFC3339))
	return frame
}

// SequenceFrame builds the nef_molecular_system saveframe for a sequence.
// The first and last residue of each chain are linked "start" and "end", the
// rest "middle".
func SequenceFrame(residues []SequenceResidue) *nef.Saveframe {
	frame := nef.NewSaveframe(categoryMolecularSystem, "")
	loop := nef.NewLoop("nef_sequence",
		"index", "chain_code", "sequence_code", "residue_name", "linking", "residue_variant")

	lastOfChain := make(map[string]int, 4)
	for i, residue := range residues {
		lastOfChain[residue.ChainCode] = i
	}

	seenChain := make(map[string]bool, 4)
	for i, residue := range residues {
		linking := "middle"
		switch {
		case !seenChain[residue.ChainCode]:
			linking = "start"
		case lastOfChain[residue.ChainCode] == i:
			linking = "end"
		}
		seenChain[residue.ChainCode] = true

		loop.AddRow(
			strconv.Itoa(i+1),
			residue.ChainCode,
			strconv.Itoa(residue.SequenceCode),
			residue.ResidueName,
			linking,
			nefMissing,
		)
	}

	frame.AddLoop(loop)
	return frame
}

// ShiftFrame builds a nef_chemical_shift_list saveframe from a shift list.
func ShiftFrame(shifts *ShiftList, name string) *nef.Saveframe {
	frame := nef.NewSaveframe(categoryShiftList, name)
	loop := nef.NewLoop("nef_chemical_shift",
		"chain_code", "sequence_code", "residue_name", "atom_name", "value", "value_uncertainty")

	for _, shift := range shifts.Shifts {
		loop.AddRow(
			shift.Atom.ChainCode,
			strconv.Itoa(shift.Atom.SequenceCode),
			shift.Atom.ResidueName,
			shift.Atom.AtomName,
			formatNefFloat(shift.Shift),
			formatOptionalFloat(shift.Error),
		)
	}

	frame.AddLoop(loop)
	return frame
}

// SpectrumFrame builds a nef_nmr_spectrum saveframe from a peak list:
// dimension and dimension-transfer loops plus one nef_peak row per
// non-deleted peak. The spectral width per dimension is derived from the
// sweep width in Hz and the spectrometer frequency; the axis code comes from
// the peak list or, failing that, from the axis label's leading atom.
func SpectrumFrame(peaks *PeakList, name, shiftListFrame string) *nef.Saveframe {
	frame := nef.NewSaveframe(categorySpectrum, name)
	frame.AddTag("num_dimensions", strconv.Itoa(peaks.Data.NumAxis))
	frame.AddTag("chemical_shift_list", shiftListFrame)

	frame.AddLoop(dimensionLoop(peaks.Data))
	frame.AddLoop(nef.NewLoop("nef_spectrum_dimension_transfer",
		"dimension_1", "dimension_2", "transfer_type"))
	frame.AddLoop(peakLoop(peaks))
	return frame
}

func dimensionLoop(data PeakListData) *nef.Loop {
	loop := nef.NewLoop("nef_spectrum_dimension",
		"dimension_id", "axis_unit", "axis_code", "spectrometer_frequency",
		"spectral_width", "value_first_point", "folding", "absolute_peak_positions",
		"is_acquisition")

	for axis := 0; axis < data.NumAxis; axis++ {
		frequency := nefMissing
		if axis < len(data.SpectrometerFrequencies) {
			frequency = formatNefFloat(data.SpectrometerFrequencies[axis])
		}

		width := nefMissing
		if axis < len(data.SweepWidths) && axis < len(data.SpectrometerFrequencies) &&
			data.SpectrometerFrequencies[axis] != 0 {
			width = formatNefFloat(data.SweepWidths[axis] / data.SpectrometerFrequencies[axis])
		}

		loop.AddRow(
			strconv.Itoa(axis+1),
			"ppm",
			axisCode(data, axis),
			frequency,
			width,
			nefMissing,
			"circular",
			"true",
			nefMissing,
		)
	}
	return loop
}

// axisCode resolves the isotope code of one axis.
func axisCode(data PeakListData, axis int) string {
	if axis < len(data.AxisCodes) && data.AxisCodes[axis] != "" {
		return data.AxisCodes[axis]
	}
	if axis < len(data.AxisLabels) {
		if isotope, err := IsotopeForAtom(strings.TrimLeft(data.AxisLabels[axis], "0123456789")); err == nil {
			return string(isotope)
		}
	}
	return nefMissing
}

func peakLoop(peaks *PeakList) *nef.Loop {
	tags := []string{"index", "peak_id", "volume", "volume_uncertainty", "height", "height_uncertainty"}
	for axis := 1; axis <= peaks.Data.NumAxis; axis++ {
		tags = append(tags, fmt.Sprintf("position_%d", axis), fmt.Sprintf("position_uncertainty_%d", axis))
	}
	for axis := 1; axis <= peaks.Data.NumAxis; axis++ {
		tags = append(tags,
			fmt.Sprintf("chain_code_%d", axis), fmt.Sprintf("sequence_code_%d", axis),
			fmt.Sprintf("residue_name_%d", axis), fmt.Sprintf("atom_name_%d", axis))
	}

	loop := nef.NewLoop("nef_peak", tags...)
	index := 0
	for _, peak := range peaks.Peaks {
		if peak.Values.Deleted {
			continue
		}
		index++

		row := []string{
			strconv.Itoa(index),
			strconv.Itoa(peak.Values.Index),
			formatNefFloat(peak.Values.Volume),
			formatOptionalFloat(peak.Values.VolumeError),
			formatNefFloat(peak.Values.Intensity),
			formatOptionalFloat(peak.Values.IntensityError),
		}
		for _, axis := range peak.Axes {
			row = append(row, formatNefFloat(axis.PPM), formatOptionalFloat(axis.PPMError))
		}
		for _, axis := range peak.Axes {
			label := AtomLabel{}
			if len(axis.AtomLabels) > 0 {
				label = axis.AtomLabels[0]
			}
			row = append(row, formatAtomLabel(label)...)
		}
		loop.AddRow(row...)
	}
	return loop
}

// formatAtomLabel renders an atom label as its four NEF columns, with
// missing-value markers for an unassigned label.
func formatAtomLabel(label AtomLabel) []string {
	if label.IsZero() {
		return []string{nefMissing, nefMissing, nefMissing, nefMissing}
	}
	sequence := nefMissing
	if label.SequenceCode != 0 {
		sequence = strconv.Itoa(label.SequenceCode)
	}
	return []string{
		orMissing(label.ChainCode),
		sequence,
		orMissing(label.ResidueName),
		orMissing(label.AtomName),
	}
}

// Chains lists the chain codes of an entry's molecular system frames,
// sorted.
func Chains(entry *nef.Entry) []string {
	seen := make(map[string]bool)
	for _, frame := range entry.SaveframesByCategory(categoryMolecularSystem) {
		for _, loop := range frame.Loops {
			values, ok := loop.Column("chain_code")
			if !ok {
				continue
			}
			for _, value := range values {
				if value != "" && value != nefMissing {
					seen[value] = true
				}
			}
		}
	}

	chains := make([]string, 0, len(seen))
	for chain := range seen {
		chains = append(chains, chain)
	}
	sort.Strings(chains)
	return chains
}

// RenameChain renames a chain across an entry, touching every loop tag whose
// name starts with chain_code. When frameGlobs is non-empty only frames
// whose name matches one of the globs (substring match, * and ? wildcards)
// are changed. It returns the number of values changed.
func RenameChain(entry *nef.Entry, oldCode, newCode string, frameGlobs []string) int {
	changes := 0
	for _, frame := range entry.Saveframes {
		if len(frameGlobs) > 0 && !matchesAny(frame.Name, frameGlobs) {
			continue
		}
		for _, loop := range frame.Loops {
			for column, tag := range loop.Tags {
				if !strings.HasPrefix(tag, "chain_code") {
					continue
				}
				for _, row := range loop.Rows {
					if row[column] == oldCode {
						row[column] = newCode
						changes++
					}
				}
			}
		}
	}
	return changes
}

func matchesAny(name string, globs []string) bool {
	for _, glob := range globs {
		if ok, err := path.Match("*"+glob+"*", name); err == nil && ok {
			return true
		}
	}
	return false
}

// formatNefFloat renders a float in its shortest exact form.
func formatNefFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return nefMissing
	}
	return formatNefFloat(*value)
}

func orMissing(value string) string {
	if value == "" {
		return nefMissing
	}
	return value
}
