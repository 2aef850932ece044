package nmrtab

// RecordType classifies the lines of a gdb/tab file into a closed set of
// record kinds.
type RecordType int

const (
	// RecordVars is the VARS header line naming the columns.
	RecordVars RecordType = iota
	// RecordFormat is the FORMAT header line declaring the column types.
	RecordFormat
	// RecordRemark is a REMARK or "#" comment line.
	RecordRemark
	// RecordData is a DATA metadata line (for example "DATA SEQUENCE ...").
	RecordData
	// RecordValue is a numbered data row satisfying the declared schema.
	RecordValue
	// RecordOther is any unrecognised keyword line recorded verbatim after
	// the header has closed.
	RecordOther
)

// Record type keywords as they appear in a file.
const (
	keywordVars     = "VARS"
	keywordFormat   = "FORMAT"
	keywordRemark   = "REMARK"
	keywordComment  = "#"
	keywordData     = "DATA"
	keywordSequence = "SEQUENCE"
)

// String returns the keyword for the record type.
func (t RecordType) String() string {
	switch t {
	case RecordVars:
		return keywordVars
	case RecordFormat:
		return keywordFormat
	case RecordRemark:
		return keywordRemark
	case RecordData:
		return keywordData
	case RecordValue:
		return "VALUE"
	case RecordOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Record is one parsed line of a gdb/tab file. Values holds strings for
// header and metadata records, and int64/float64/string per the declared
// FORMAT for value records. Index counts from 1 within the record's own type
// bucket: the 5th data row has Index 5 among value records no matter how many
// remarks precede it. Records are never modified once built.
type Record struct {
	Index int
	Type  RecordType
	// Keyword is the literal leading keyword of the line ("VARS", "#",
	// "NULLVALUE", ...); empty for value rows.
	Keyword string
	Values  []any
	Line    LineInfo
}

// Strings returns Values as strings. Typed values of value records are
// excluded; it is intended for header and metadata records.
func (r Record) Strings() []string {
	result := make([]string, 0, len(r.Values))
	for _, v := range r.Values {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// Int returns the value at the given column as an integer.
func (r Record) Int(column int) (int, bool) {
	if column < 0 || column >= len(r.Values) {
		return 0, false
	}
	v, ok := r.Values[column].(int64)
	return int(v), ok
}

// Float returns the value at the given column as a float. Integer-typed
// columns are widened.
func (r Record) Float(column int) (float64, bool) {
	if column < 0 || column >= len(r.Values) {
		return 0, false
	}
	switch v := r.Values[column].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// String returns the value at the given column as a string.
func (r Record) String(column int) (string, bool) {
	if column < 0 || column >= len(r.Values) {
		return "", false
	}
	v, ok := r.Values[column].(string)
	return v, ok
}

// DBFile is a parsed gdb/tab document: the file name and its records in file
// order. It is append-only during the parse and read-only afterwards.
type DBFile struct {
	Name    string
	Records []Record
}

// Select returns the records of the given type in file order, optionally
// filtered by a predicate.
func (d *DBFile) Select(t RecordType, predicate func(Record) bool) []Record {
	result := make([]Record, 0)
	for _, record := range d.Records {
		if record.Type != t {
			continue
		}
		if predicate != nil && !predicate(record) {
			continue
		}
		result = append(result, record)
	}
	return result
}

// Columns returns the column names declared by the file's VARS line.
func (d *DBFile) Columns() ([]string, error) {
	vars := d.Select(RecordVars, nil)
	if len(vars) != 1 {
		return nil, missingColumnError(keywordVars, d.Name)
	}
	return vars[0].Strings(), nil
}
