package nmrtab

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// dbReader is the state carried across one streaming pass over a gdb/tab
// file: the records read so far, the per-type index counters and the column
// schema once the header has closed. The header is open until a FORMAT line
// is accepted and can never reopen.
type dbReader struct {
	fileName string
	records  []Record
	counters map[RecordType]int

	columnNames   []string
	columnFormats []fieldFormat
}

// ReadDBFile reads an NMRPipe gdb/tab file into a DBFile in a single forward
// pass. The parse is fail-fast: the first malformed line aborts with an error
// in the ErrBadNmrPipeFile family and no partial document is returned.
func ReadDBFile(r io.Reader, fileName string) (*DBFile, error) {
	reader := &dbReader{
		fileName: fileName,
		counters: make(map[RecordType]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		info := LineInfo{FileName: fileName, LineNo: lineNo, Line: scanner.Text()}
		if err := reader.readLine(info); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("nmrtab: failed to read %s: %w", fileName, err)
	}

	return &DBFile{Name: fileName, Records: reader.records}, nil
}

// inHeader reports whether the FORMAT line has not yet closed the header.
func (p *dbReader) inHeader() bool {
	return p.columnFormats == nil
}

// append buckets the record under its type and stamps its per-type index.
func (p *dbReader) append(t RecordType, keyword string, values []any, info LineInfo) {
	p.counters[t]++
	p.records = append(p.records, Record{
		Index:   p.counters[t],
		Type:    t,
		Keyword: keyword,
		Values:  values,
		Line:    info,
	})
}

// readLine classifies one line by its leading keyword and dispatches it.
// Blank lines are skipped in any state.
func (p *dbReader) readLine(info LineInfo) error {
	line := strings.TrimSpace(info.Line)
	if len(line) == 0 {
		return nil
	}

	rawFields := strings.Fields(line)
	keyword := rawFields[0]
	fields := rawFields[1:]

	switch {
	case keyword == keywordVars:
		return p.readVars(fields, info)
	case keyword == keywordFormat:
		return p.readFormat(fields, info)
	case keyword == keywordRemark || keyword == keywordComment:
		p.append(RecordRemark, keyword, []any{line}, info)
		return nil
	case keyword == keywordData:
		p.append(RecordData, keyword, anyValues(fields), info)
		return nil
	case isInt(keyword):
		if p.inHeader() {
			return dataBeforeFormatError(info)
		}
		return p.readValueRow(rawFields, info)
	default:
		// Unknown keywords (NULLVALUE, NULLSTRING, ...) are metadata after
		// the header; before it they would shadow a malformed data row.
		if p.inHeader() {
			return dataBeforeFormatError(info)
		}
		p.append(RecordOther, keyword, anyValues(fields), info)
		return nil
	}
}

// readVars accepts the single VARS line naming the columns.
func (p *dbReader) readVars(fields []string, info LineInfo) error {
	if p.columnNames != nil {
		return multipleHeaderError(keywordVars, info)
	}
	p.columnNames = fields
	p.append(RecordVars, keywordVars, anyValues(fields), info)
	return nil
}

// readFormat accepts the single FORMAT line, locks the schema and closes the
// header.
func (p *dbReader) readFormat(fields []string, info LineInfo) error {
	if !p.inHeader() {
		return multipleHeaderError(keywordFormat, info)
	}
	if p.columnNames == nil {
		return noVarsLineError(info)
	}

	formats, err := formatsToConverters(fields, info)
	if err != nil {
		return err
	}
	if len(p.columnNames) != len(formats) {
		return headerCountError(len(p.columnNames), len(formats), info)
	}

	p.columnFormats = formats
	p.append(RecordFormat, keywordFormat, anyValues(fields), info)
	return nil
}

// readValueRow converts a data row against the locked schema. The row must
// have exactly one field per declared column; each field is converted by its
// column's format, and a conversion failure pinpoints the column and the
// character span of the offending token.
func (p *dbReader) readValueRow(rawFields []string, info LineInfo) error {
	if len(rawFields) != len(p.columnNames) {
		return rowCountError(p.columnNames, typeNames(p.columnFormats), rawFields, info)
	}

	values := make([]any, 0, len(rawFields))
	occurrences := make(map[string]int, len(rawFields))
	for column, rawField := range rawFields {
		occurrences[rawField]++
		value, err := p.columnFormats[column].convert(rawField)
		if err != nil {
			return badFieldError(rawField, p.columnFormats[column].typeName, column+1, occurrences[rawField], info)
		}
		values = append(values, value)
	}

	p.append(RecordValue, "", values, info)
	return nil
}

func anyValues(fields []string) []any {
	result := make([]any, 0, len(fields))
	for _, field := range fields {
		result = append(result, field)
	}
	return result
}
