package nmrtab

import (
	"errors"
	"fmt"
	"strings"
)

// Error family for malformed NMRPipe gdb/tab files. ErrBadNmrPipeFile is the
// one to test with errors.Is when any parse failure should be caught; every
// other sentinel in the family wraps it.
var (
	// ErrBadNmrPipeFile is the base error for all gdb/tab parse failures.
	ErrBadNmrPipeFile = errors.New("nmrtab: bad NMRPipe gdb file")

	// ErrBadFieldFormat indicates a field value or a format code that could
	// not be converted.
	ErrBadFieldFormat = fmt.Errorf("%w: bad field format", ErrBadNmrPipeFile)

	// ErrWrongColumnCount indicates a column-count mismatch between the VARS
	// line, the FORMAT line or a data row.
	ErrWrongColumnCount = fmt.Errorf("%w: wrong column count", ErrBadNmrPipeFile)

	// ErrNoVarsLine indicates a FORMAT line with no preceding VARS line.
	ErrNoVarsLine = fmt.Errorf("%w: no VARS line", ErrBadNmrPipeFile)

	// ErrMultipleVars indicates more than one VARS line in a file.
	ErrMultipleVars = fmt.Errorf("%w: multiple VARS lines", ErrBadNmrPipeFile)

	// ErrMultipleFormat indicates more than one FORMAT line in a file.
	ErrMultipleFormat = fmt.Errorf("%w: multiple FORMAT lines", ErrBadNmrPipeFile)

	// ErrDataBeforeFormat indicates a data row before the VARS and FORMAT
	// lines closed the header.
	ErrDataBeforeFormat = fmt.Errorf("%w: data before FORMAT", ErrBadNmrPipeFile)

	// ErrZeroDivisor indicates peak arithmetic that would divide by zero
	// (zero height, zero point value or zero chemical shift).
	ErrZeroDivisor = fmt.Errorf("%w: zero divisor in peak arithmetic", ErrBadNmrPipeFile)

	// ErrMissingColumn indicates a named column required by an extractor is
	// absent from the VARS line.
	ErrMissingColumn = fmt.Errorf("%w: missing column", ErrBadNmrPipeFile)
)

// findNth returns the byte offset of the n-th (1-based) occurrence of needle
// in haystack, or -1. Used to point a caret at the right copy of a token when
// the same text appears more than once on a line.
func findNth(haystack, needle string, n int) int {
	start := strings.Index(haystack, needle)
	for start >= 0 && n > 1 {
		next := strings.Index(haystack[start+len(needle):], needle)
		if next < 0 {
			return -1
		}
		start += len(needle) + next
		n--
	}
	return start
}

// caretLine returns a line of spaces with a caret at the given offset,
// aligned under the "line: " prefix used by the diagnostics below.
func caretLine(offset int) string {
	if offset < 0 {
		offset = 0
	}
	return strings.Repeat(" ", len("line: ")+offset) + "^"
}

// locationSuffix renders the common file/line/text trailer of a diagnostic.
func locationSuffix(info LineInfo) string {
	return fmt.Sprintf("file: %s\nline no: %d\nline: %s", info.FileName, info.LineNo, strings.TrimRight(info.Line, "\n"))
}

func multipleHeaderError(keyword string, info LineInfo) error {
	sentinel := ErrMultipleVars
	if keyword == keywordFormat {
		sentinel = ErrMultipleFormat
	}
	return fmt.Errorf("%w: multiple %s statements found\n%s", sentinel, keyword, locationSuffix(info))
}

func noVarsLineError(info LineInfo) error {
	return fmt.Errorf("%w: no column names defined by a VARS line when FORMAT line read\n%s",
		ErrNoVarsLine, locationSuffix(info))
}

func dataBeforeFormatError(info LineInfo) error {
	return fmt.Errorf("%w: data seen before VARS and FORMAT\n%s", ErrDataBeforeFormat, locationSuffix(info))
}

func headerCountError(numNames, numFormats int, info LineInfo) error {
	return fmt.Errorf("%w: number of column names and formats must agree, got %d column names and %d formats\n%s",
		ErrWrongColumnCount, numNames, numFormats, locationSuffix(info))
}

// rowCountError reports a data row whose field count disagrees with the
// schema. The message tabulates the declared column names, the type name per
// column and the observed fields, padding missing trailing fields with "*".
func rowCountError(names, typeNames, rawFields []string, info LineInfo) error {
	numFields := len(rawFields)
	numColumns := len(names)

	padded := make([]string, 0, numColumns)
	padded = append(padded, rawFields...)
	for len(padded) < numColumns {
		padded = append(padded, "*")
	}

	table := tabulate([][]string{names, typeNames, padded})
	return fmt.Errorf("%w: number of fields (%d) doesn't match number of columns (%d)\n\nexpected\n%s\n\nmissing fields marked with *\n\n%s",
		ErrWrongColumnCount, numFields, numColumns, table, locationSuffix(info))
}

// badFieldError reports a field that would not convert, with a caret under
// the exact character span of the offending occurrence of the token.
func badFieldError(rawField, typeName string, column, occurrence int, info LineInfo) error {
	offset := findNth(info.Line, rawField, occurrence)
	return fmt.Errorf("%w: couldn't convert %s to type %s\nfile: %s\nline no: %d\ncolumn: %d\nline: %s\n%s",
		ErrBadFieldFormat, rawField, typeName, info.FileName, info.LineNo, column,
		strings.TrimRight(info.Line, "\n"), caretLine(offset))
}

// badFormatCodeError reports an unrecognised FORMAT code, with a caret under
// the trailing type character of the offending format token.
func badFormatCodeError(code byte, column, offset int, info LineInfo) error {
	return fmt.Errorf("%w: unexpected format %c at index %d, expected formats are s, d, e, f (string, integer, scientific(float), float)\n%s\n%s",
		ErrBadFieldFormat, code, column, locationSuffix(info), caretLine(offset))
}

func zeroDivisorError(column string, peak int, fileName string) error {
	return fmt.Errorf("%w: column %s is zero for peak %d\nfile: %s", ErrZeroDivisor, column, peak, fileName)
}

func missingColumnError(column, fileName string) error {
	return fmt.Errorf("%w: no column %s declared by the VARS line\nfile: %s", ErrMissingColumn, column, fileName)
}
