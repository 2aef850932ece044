package nmrtab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadNmrViewFile indicates a malformed NMRView peak (.xpk) or sequence
// (.seq) file.
var ErrBadNmrViewFile = errors.New("nmrtab: bad NMRView file")

// Per-axis column group of an .xpk row: label, position, width, bound,
// merit, coupling, user field.
const nmrViewAxisFields = 7

// Axis-independent trailer of an .xpk row: vol, int, stat, comment, flag0.
const nmrViewPeakFields = 5

// ReadNMRViewPeaksOptions configures ReadNMRViewPeaks.
type ReadNMRViewPeaksOptions struct {
	// ChainCode is stamped on every atom label ("A" when empty).
	ChainCode string
	// AxisCodes optionally names the isotope per axis as a dot-separated
	// string such as "1H.1H.15N"; when set it must cover every axis.
	AxisCodes string
	// Sequence, when given, resolves residue names for labels that carry
	// only a sequence code.
	Sequence []SequenceResidue
}

// ReadNMRViewPeaks reads an NMRView .xpk peak list. The header names its own
// sections on the first line (label, dataset, sw, sf); each following line
// fills one section, with multi-word values in braces. After the column
// header line every row is: index, seven fields per axis (label, ppm, width,
// bound, merit, coupling, user) and the trailing vol, int, stat, comment and
// flag0 fields.
func ReadNMRViewPeaks(r io.Reader, fileName string, opts ReadNMRViewPeaksOptions) (*PeakList, error) {
	if opts.ChainCode == "" {
		opts.ChainCode = defaultChainCode
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if len(line) > 0 {
				return line, true
			}
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		return nil, fmt.Errorf("%w: missing header line\nfile: %s", ErrBadNmrViewFile, fileName)
	}

	sections := make(map[string]string, 4)
	for _, section := range strings.Fields(header) {
		value, ok := nextLine()
		if !ok {
			return nil, fmt.Errorf("%w: missing %s line\nfile: %s", ErrBadNmrViewFile, section, fileName)
		}
		sections[strings.ToLower(section)] = value
	}

	axisLabels := strings.Fields(sections["label"])
	if len(axisLabels) == 0 {
		return nil, fmt.Errorf("%w: no axis labels\nfile: %s", ErrBadNmrViewFile, fileName)
	}
	numAxis := len(axisLabels)

	sweepWidths, err := nmrViewFloats(sections["sw"], fileName)
	if err != nil {
		return nil, err
	}
	frequencies, err := nmrViewFloats(sections["sf"], fileName)
	if err != nil {
		return nil, err
	}

	data := PeakListData{
		NumAxis:                 numAxis,
		AxisLabels:              axisLabels,
		DataSet:                 strings.Trim(sections["dataset"], "{}"),
		SweepWidths:             sweepWidths,
		SpectrometerFrequencies: frequencies,
	}
	if opts.AxisCodes != "" {
		isotopes, err := ParseAxisCodes(opts.AxisCodes, numAxis)
		if err != nil {
			return nil, err
		}
		for _, isotope := range isotopes {
			data.AxisCodes = append(data.AxisCodes, string(isotope))
		}
	}

	// column header line, one name per row field
	if _, ok := nextLine(); !ok {
		return nil, fmt.Errorf("%w: missing column header line\nfile: %s", ErrBadNmrViewFile, fileName)
	}

	peaks := make([]Peak, 0)
	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		info := LineInfo{FileName: fileName, LineNo: lineNo, Line: line}
		peak, err := readNMRViewPeak(line, numAxis, opts, info)
		if err != nil {
			return nil, err
		}
		peaks = append(peaks, peak)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("nmrtab: failed to read %s: %w", fileName, err)
	}

	return &PeakList{Data: data, Peaks: peaks}, nil
}

// readNMRViewPeak parses one .xpk data row.
func readNMRViewPeak(line string, numAxis int, opts ReadNMRViewPeaksOptions, info LineInfo) (Peak, error) {
	fields := splitBraced(line)
	want := 1 + numAxis*nmrViewAxisFields + nmrViewPeakFields
	if len(fields) != want {
		return Peak{}, fmt.Errorf("%w: expected %d fields for %d axes, got %d\n%s",
			ErrBadNmrViewFile, want, numAxis, len(fields), locationSuffix(info))
	}

	index, err := nmrViewInt(fields[0], "peak index", info)
	if err != nil {
		return Peak{}, err
	}

	peak := Peak{}
	for axis := 0; axis < numAxis; axis++ {
		group := fields[1+axis*nmrViewAxisFields:]
		label := parseNMRViewLabel(group[0], opts)
		ppm, err := nmrViewFloat(group[1], "peak position", info)
		if err != nil {
			return Peak{}, err
		}
		peakAxis := PeakAxis{PPM: ppm, Merit: group[4]}
		if !label.IsZero() {
			peakAxis.AtomLabels = []AtomLabel{label}
		}
		peak.Axes = append(peak.Axes, peakAxis)
	}

	trailer := fields[1+numAxis*nmrViewAxisFields:]
	volume, err := nmrViewFloat(trailer[0], "volume", info)
	if err != nil {
		return Peak{}, err
	}
	intensity, err := nmrViewFloat(trailer[1], "intensity", info)
	if err != nil {
		return Peak{}, err
	}
	status, err := nmrViewInt(trailer[2], "status", info)
	if err != nil {
		return Peak{}, err
	}
	comment := trailer[3]
	if comment == "?" {
		comment = ""
	}

	peak.Values = PeakValues{
		Index:     index,
		Volume:    volume,
		Intensity: intensity,
		Deleted:   status < 0,
		Comment:   comment,
	}
	return peak, nil
}

// parseNMRViewLabel decodes an .xpk assignment label such as "2.HN",
// "PHE8.HN" or "{}" (unassigned). A label with only a sequence code gets its
// residue name from the sequence supplied in the options, when one covers
// that residue.
func parseNMRViewLabel(label string, opts ReadNMRViewPeaksOptions) AtomLabel {
	if label == "" || label == "?" {
		return AtomLabel{}
	}

	parts := strings.Split(label, ".")
	if len(parts) < 2 {
		return AtomLabel{ChainCode: opts.ChainCode, AtomName: label}
	}

	residue := parts[0]
	atomName := parts[len(parts)-1]

	split := splitAssignment(residue)
	result := AtomLabel{ChainCode: opts.ChainCode, AtomName: atomName}
	switch len(split) {
	case 3:
		result.ResidueName = split[0]
		result.SequenceCode = atoiOrZero(split[1])
	default:
		result.ResidueName = residue
	}

	if result.ResidueName == "" {
		for _, sequenceResidue := range opts.Sequence {
			if sequenceResidue.SequenceCode == result.SequenceCode {
				result.ResidueName = sequenceResidue.ResidueName
				break
			}
		}
	}
	return result
}

// ReadNMRViewSequence reads an NMRView .seq file: one three-letter residue
// per line, with an optional second token giving that residue's sequence
// code (numbering continues from it).
func ReadNMRViewSequence(r io.Reader, chainCode string) ([]SequenceResidue, error) {
	if chainCode == "" {
		chainCode = defaultChainCode
	}

	residues := make([]SequenceResidue, 0)
	next := 1

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 1 {
			code, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: bad sequence code %q at line %d", ErrBadNmrViewFile, fields[1], lineNo)
			}
			next = code
		}
		residues = append(residues, SequenceResidue{
			ChainCode:    chainCode,
			SequenceCode: next,
			ResidueName:  fields[0],
		})
		next++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("nmrtab: failed to read sequence: %w", err)
	}
	return residues, nil
}

// splitBraced splits a line into whitespace-separated fields where {...}
// groups form one field with the braces stripped, so "{2.ala H}" stays
// together.
func splitBraced(line string) []string {
	fields := make([]string, 0)
	var current strings.Builder
	inBraces := false
	pending := false

	flush := func() {
		if pending {
			fields = append(fields, current.String())
			current.Reset()
			pending = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '{' && !inBraces:
			flush()
			inBraces = true
			pending = true
		case c == '}' && inBraces:
			flush()
			inBraces = false
		case (c == ' ' || c == '\t') && !inBraces:
			flush()
		default:
			current.WriteByte(c)
			pending = true
		}
	}
	flush()
	return fields
}

func nmrViewFloats(section, fileName string) ([]float64, error) {
	result := make([]float64, 0)
	for _, field := range splitBraced(section) {
		for _, token := range strings.Fields(field) {
			value, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad float %q\nfile: %s", ErrBadNmrViewFile, token, fileName)
			}
			result = append(result, value)
		}
	}
	return result, nil
}

func nmrViewFloat(field, what string, info LineInfo) (float64, error) {
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s %q\n%s", ErrBadNmrViewFile, what, field, locationSuffix(info))
	}
	return value, nil
}

func nmrViewInt(field, what string, info LineInfo) (int, error) {
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s %q\n%s", ErrBadNmrViewFile, what, field, locationSuffix(info))
	}
	return value, nil
}
