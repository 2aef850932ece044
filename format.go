package nmrtab

import (
	"strconv"
	"strings"
)

// fieldFormat converts the raw text of one column into its typed value. The
// trailing character of a FORMAT code selects the converter: %d integer,
// %f float, %e float in scientific notation, %s string.
type fieldFormat struct {
	typeName string
	convert  func(string) (any, error)
}

var (
	intFormat = fieldFormat{
		typeName: "int",
		convert: func(s string) (any, error) {
			v, err := strconv.ParseInt(s, 10, 64)
			return v, err
		},
	}
	floatFormat = fieldFormat{
		typeName: "float",
		convert: func(s string) (any, error) {
			v, err := strconv.ParseFloat(s, 64)
			return v, err
		},
	}
	stringFormat = fieldFormat{
		typeName: "str",
		convert: func(s string) (any, error) {
			return s, nil
		},
	}
)

// formatsToConverters resolves the codes of a FORMAT line into one converter
// per column. Unknown trailing characters fail with ErrBadFieldFormat and a
// caret under the offending character; the caret search is aware of repeated
// identical tokens earlier on the same line.
func formatsToConverters(codes []string, info LineInfo) ([]fieldFormat, error) {
	result := make([]fieldFormat, 0, len(codes))
	occurrences := make(map[string]int, len(codes))

	for column, code := range codes {
		occurrences[code]++
		trimmed := strings.TrimSpace(code)
		last := trimmed[len(trimmed)-1]

		switch last {
		case 'd':
			result = append(result, intFormat)
		case 'f', 'e':
			result = append(result, floatFormat)
		case 's':
			result = append(result, stringFormat)
		default:
			offset := findNth(info.Line, trimmed, occurrences[code])
			if offset >= 0 {
				offset += len(trimmed) - 1
			}
			return nil, badFormatCodeError(last, column+1, offset, info)
		}
	}
	return result, nil
}

// typeNames returns the human-readable type name of each converter, for the
// tabulated column dump in wrong-column-count diagnostics.
func typeNames(formats []fieldFormat) []string {
	result := make([]string, 0, len(formats))
	for _, format := range formats {
		result = append(result, format.typeName)
	}
	return result
}

// isInt reports whether a token parses as a plain integer. Rows are
// recognised by an integer leading token.
func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
