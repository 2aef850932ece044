package nmrtab

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Peak-file schema markers. Each spectral axis X contributes the columns
// X_AXIS (position in points), DX (point error), X_PPM and X_HZ; the peak
// itself is described by ASS, HEIGHT, DHEIGHT, VOL, TYPE and INDEX.
const (
	columnAxisSuffix = "_AXIS"
	columnPPMSuffix  = "_PPM"
	columnHzSuffix   = "_HZ"
	columnAss        = "ASS"
	columnHeight     = "HEIGHT"
	columnDHeight    = "DHEIGHT"
	columnVol        = "VOL"
	columnType       = "TYPE"
	columnIndex      = "INDEX"
)

// peakTypePeak is the TYPE code of a real peak; other codes mark noise and
// artifacts.
const peakTypePeak = 1

// defaultMerit is the figure of merit assigned to peaks read from formats
// that do not carry one.
const defaultMerit = "1.0"

// ReadPeaksOptions configures ReadPeaks.
type ReadPeaksOptions struct {
	// ChainCode is stamped on every atom label; peak files carry no chain
	// information. Defaults to "A".
	ChainCode string
	// FilterNoise skips rows whose TYPE column is not a real peak.
	FilterNoise bool
}

// ReadPeaks interprets a parsed gdb/tab document as an NMRPipe peak list.
//
// The dimensionality is the number of schema columns ending in _AXIS, and
// each such column's prefix names the axis. Per axis the chemical shift is
// taken from <axis>_PPM, its uncertainty is propagated from the point error
// as D<axis>/<axis>_AXIS * <axis>_PPM, and the axis's spectrometer frequency
// is reported as the mean of <axis>_HZ/<axis>_PPM across all rows; a list
// with no rows reports no frequencies. Volume and height uncertainties are
// propagated from DHEIGHT/HEIGHT. Any zero denominator in that arithmetic
// fails with ErrZeroDivisor.
func ReadPeaks(db *DBFile, opts ReadPeaksOptions) (*PeakList, error) {
	if opts.ChainCode == "" {
		opts.ChainCode = defaultChainCode
	}

	columns, err := db.Columns()
	if err != nil {
		return nil, err
	}

	axes := axisLabels(columns)
	if len(axes) == 0 {
		return nil, missingColumnError("*"+columnAxisSuffix, db.Name)
	}

	lookup := newColumnLookup(db, columns)
	frequencies := make([][]float64, len(axes))
	peaks := make([]Peak, 0)

	for _, record := range db.Select(RecordValue, nil) {
		if opts.FilterNoise {
			peakType, err := lookup.intValue(record, columnType)
			if err != nil {
				return nil, err
			}
			if peakType != peakTypePeak {
				continue
			}
		}

		values, err := buildPeakValues(lookup, record, db.Name)
		if err != nil {
			return nil, err
		}

		assignment, err := lookup.stringValue(record, columnAss)
		if err != nil {
			return nil, err
		}
		labels := ParseAssignments(assignment, len(axes), opts.ChainCode)

		peak := Peak{Values: values}
		for i, axis := range axes {
			peakAxis, frequency, err := buildPeakAxis(lookup, record, axis, labels[i], db.Name)
			if err != nil {
				return nil, err
			}
			peak.Axes = append(peak.Axes, peakAxis)
			frequencies[i] = append(frequencies[i], frequency)
		}
		peaks = append(peaks, peak)
	}

	data := PeakListData{
		NumAxis:                 len(axes),
		AxisLabels:              axes,
		DataSet:                 db.Name,
		SpectrometerFrequencies: make([]float64, 0, len(axes)),
	}
	// With no surviving rows there are no samples to average; the
	// frequencies stay absent rather than becoming NaN.
	if len(peaks) > 0 {
		for _, axisFrequencies := range frequencies {
			data.SpectrometerFrequencies = append(data.SpectrometerFrequencies, stat.Mean(axisFrequencies, nil))
		}
	}

	return &PeakList{Data: data, Peaks: peaks}, nil
}

// axisLabels returns the prefix of every column ending in _AXIS, in schema
// order.
func axisLabels(columns []string) []string {
	labels := make([]string, 0)
	for _, column := range columns {
		if strings.HasSuffix(column, columnAxisSuffix) {
			labels = append(labels, strings.TrimSuffix(column, columnAxisSuffix))
		}
	}
	return labels
}

// buildPeakValues extracts the axis-independent values of one row.
func buildPeakValues(lookup *columnLookup, record Record, fileName string) (PeakValues, error) {
	height, err := lookup.floatValue(record, columnHeight)
	if err != nil {
		return PeakValues{}, err
	}
	if height == 0 {
		return PeakValues{}, zeroDivisorError(columnHeight, record.Index, fileName)
	}
	heightError, err := lookup.floatValue(record, columnDHeight)
	if err != nil {
		return PeakValues{}, err
	}
	volume, err := lookup.floatValue(record, columnVol)
	if err != nil {
		return PeakValues{}, err
	}
	serial, err := lookup.intValue(record, columnIndex)
	if err != nil {
		return PeakValues{}, err
	}

	relativeError := heightError / height
	intensityError := height * relativeError
	volumeError := volume * relativeError
	return PeakValues{
		Index:          serial,
		Volume:         volume,
		VolumeError:    &volumeError,
		Intensity:      height,
		IntensityError: &intensityError,
	}, nil
}

// buildPeakAxis extracts one axis of one row and the row's contribution to
// that axis's spectrometer frequency.
func buildPeakAxis(lookup *columnLookup, record Record, axis string, label AtomLabel, fileName string) (PeakAxis, float64, error) {
	ppm, err := lookup.floatValue(record, axis+columnPPMSuffix)
	if err != nil {
		return PeakAxis{}, 0, err
	}
	points, err := lookup.floatValue(record, axis+columnAxisSuffix)
	if err != nil {
		return PeakAxis{}, 0, err
	}
	pointError, err := lookup.floatValue(record, "D"+axis)
	if err != nil {
		return PeakAxis{}, 0, err
	}
	hz, err := lookup.floatValue(record, axis+columnHzSuffix)
	if err != nil {
		return PeakAxis{}, 0, err
	}

	if points == 0 {
		return PeakAxis{}, 0, zeroDivisorError(axis+columnAxisSuffix, record.Index, fileName)
	}
	if ppm == 0 {
		return PeakAxis{}, 0, zeroDivisorError(axis+columnPPMSuffix, record.Index, fileName)
	}

	ppmError := pointError / points * ppm
	peakAxis := PeakAxis{
		PPM:      ppm,
		PPMError: &ppmError,
		Merit:    defaultMerit,
	}
	if !label.IsZero() {
		peakAxis.AtomLabels = []AtomLabel{label}
	}
	return peakAxis, hz / ppm, nil
}

// columnLookup resolves named schema columns into record positions, caching
// the positions across rows.
type columnLookup struct {
	db        *DBFile
	positions map[string]int
}

func newColumnLookup(db *DBFile, columns []string) *columnLookup {
	positions := make(map[string]int, len(columns))
	for i, column := range columns {
		positions[column] = i
	}
	return &columnLookup{db: db, positions: positions}
}

func (l *columnLookup) position(name string) (int, error) {
	position, ok := l.positions[name]
	if !ok {
		return 0, missingColumnError(name, l.db.Name)
	}
	return position, nil
}

func (l *columnLookup) floatValue(record Record, name string) (float64, error) {
	position, err := l.position(name)
	if err != nil {
		return 0, err
	}
	value, ok := record.Float(position)
	if !ok {
		return 0, l.typeError(record, name, "float")
	}
	return value, nil
}

func (l *columnLookup) intValue(record Record, name string) (int, error) {
	position, err := l.position(name)
	if err != nil {
		return 0, err
	}
	value, ok := record.Int(position)
	if !ok {
		return 0, l.typeError(record, name, "int")
	}
	return value, nil
}

func (l *columnLookup) stringValue(record Record, name string) (string, error) {
	position, err := l.position(name)
	if err != nil {
		return "", err
	}
	value, ok := record.String(position)
	if !ok {
		return "", l.typeError(record, name, "str")
	}
	return value, nil
}

func (l *columnLookup) typeError(record Record, name, typeName string) error {
	return fmt.Errorf("%w: column %s is not declared as %s\nfile: %s\nline no: %d",
		ErrBadFieldFormat, name, typeName, l.db.Name, record.Line.LineNo)
}
