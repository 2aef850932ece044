package nmrtab

// SequenceResidue identifies one residue in one chain of a molecular system.
type SequenceResidue struct {
	ChainCode    string
	SequenceCode int
	ResidueName  string
}

// AtomLabel identifies one atom in one residue in one chain. It is used both
// as a peak-axis assignment and as a shift-list row key. The zero value marks
// an unassigned label (an axis with no assignment).
type AtomLabel struct {
	ChainCode    string
	SequenceCode int
	ResidueName  string
	AtomName     string
}

// IsZero reports whether the label carries no assignment at all.
func (a AtomLabel) IsZero() bool {
	return a == AtomLabel{}
}

// PeakAxis is one spectral dimension of a single peak: the chemical shift in
// ppm, the atoms contributing to the axis and a figure of merit.
type PeakAxis struct {
	AtomLabels []AtomLabel
	PPM        float64
	// PPMError is the propagated shift uncertainty; nil when the source
	// format carries no point errors.
	PPMError *float64
	Merit    string
}

// PeakValues holds the per-peak (axis independent) values: the serial id of
// the peak, its volume and intensity, whether it has been deleted and any
// comment attached to it.
type PeakValues struct {
	Index     int
	Volume    float64
	Intensity float64
	// VolumeError and IntensityError are propagated relative errors; nil
	// when the source format carries no height error.
	VolumeError    *float64
	IntensityError *float64
	Deleted        bool
	Comment        string
}

// Peak is one multidimensional peak: exactly one PeakAxis per spectral
// dimension plus one PeakValues.
type Peak struct {
	Axes   []PeakAxis
	Values PeakValues
}

// PeakListData is the header metadata of a peak list.
type PeakListData struct {
	NumAxis                 int
	AxisLabels              []string
	AxisCodes               []string
	DataSet                 string
	SweepWidths             []float64
	SpectrometerFrequencies []float64
}

// PeakList is a parsed peak list: header metadata plus the peaks in file
// order.
type PeakList struct {
	Data  PeakListData
	Peaks []Peak
}

// ShiftData is one chemical shift: the atom it belongs to, the shift in ppm
// and an optional uncertainty (nil when the source format carries none).
type ShiftData struct {
	Atom  AtomLabel
	Shift float64
	Error *float64
}

// ShiftList is an ordered list of chemical shifts.
type ShiftList struct {
	Shifts []ShiftData
}

// RdcRestraint is a residual dipolar coupling restraint between two atoms.
type RdcRestraint struct {
	Atom1    AtomLabel
	Atom2    AtomLabel
	RDC      float64
	RDCError float64
	Weight   float64
}

// LineInfo records where a line came from, for diagnostics: the file name,
// the 1-based line number and the raw line text.
type LineInfo struct {
	FileName string
	LineNo   int
	Line     string
}
