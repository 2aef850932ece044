package nef

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrBadEntry indicates text that does not parse as a NEF entry.
var ErrBadEntry = errors.New("nef: bad entry")

// token is one lexical item of the STAR syntax: a keyword, a tag or a value.
type token struct {
	text   string
	quoted bool
	lineNo int
}

// Parse reads the text form of an entry. The syntax understood is the STAR
// subset NEF uses: a data_ block of save_ frames holding tag/value pairs and
// loop_ ... stop_ tables, with quoted values, semicolon text blocks and #
// comments.
func Parse(r io.Reader) (*Entry, error) {
	tokens, err := tokenize(r)
	if err != nil {
		return nil, err
	}

	pos := 0
	next := func() (token, bool) {
		if pos >= len(tokens) {
			return token{}, false
		}
		t := tokens[pos]
		pos++
		return t, true
	}

	first, ok := next()
	if !ok || first.quoted || !strings.HasPrefix(first.text, "data_") {
		return nil, fmt.Errorf("%w: expected a data_ block", ErrBadEntry)
	}
	entry := NewEntry(strings.TrimPrefix(first.text, "data_"))

	for {
		t, ok := next()
		if !ok {
			return entry, nil
		}
		if t.quoted || !strings.HasPrefix(t.text, "save_") || t.text == "save_" {
			return nil, fmt.Errorf("%w: expected save_ at line %d, got %q", ErrBadEntry, t.lineNo, t.text)
		}

		frame := &Saveframe{Name: strings.TrimPrefix(t.text, "save_")}
		if err := parseFrame(frame, next); err != nil {
			return nil, err
		}
		entry.AddSaveframe(frame)
	}
}

// ParseString reads the text form of an entry from a string.
func ParseString(s string) (*Entry, error) {
	return Parse(strings.NewReader(s))
}

// parseFrame consumes frame contents up to the closing bare save_.
func parseFrame(frame *Saveframe, next func() (token, bool)) error {
	for {
		t, ok := next()
		if !ok {
			return fmt.Errorf("%w: unterminated save_%s", ErrBadEntry, frame.Name)
		}

		switch {
		case !t.quoted && t.text == "save_":
			return nil

		case !t.quoted && t.text == "loop_":
			loop, err := parseLoop(frame, next)
			if err != nil {
				return err
			}
			frame.AddLoop(loop)

		case !t.quoted && strings.HasPrefix(t.text, "_"):
			value, ok := next()
			if !ok {
				return fmt.Errorf("%w: tag %s at line %d has no value", ErrBadEntry, t.text, t.lineNo)
			}
			_, name := splitTagName(t.text)
			frame.AddTag(name, unquoteMissing(value))

		default:
			return fmt.Errorf("%w: unexpected %q at line %d in save_%s", ErrBadEntry, t.text, t.lineNo, frame.Name)
		}
	}
}

// parseLoop consumes loop tags and values up to stop_.
func parseLoop(frame *Saveframe, next func() (token, bool)) (*Loop, error) {
	loop := &Loop{}

	// tag header
	for {
		t, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: unterminated loop_ in save_%s", ErrBadEntry, frame.Name)
		}
		if t.quoted || !strings.HasPrefix(t.text, "_") {
			if !t.quoted && t.text == "stop_" {
				return loop, nil
			}
			if len(loop.Tags) == 0 {
				return nil, fmt.Errorf("%w: loop_ with no tags in save_%s", ErrBadEntry, frame.Name)
			}
			return loop, parseLoopValues(loop, t, next, frame.Name)
		}
		category, name := splitTagName(t.text)
		if loop.Category == "" {
			loop.Category = category
		}
		loop.Tags = append(loop.Tags, name)
	}
}

// parseLoopValues consumes values, starting with the given one, up to stop_,
// grouping them into rows of the loop's width.
func parseLoopValues(loop *Loop, first token, next func() (token, bool), frameName string) error {
	row := make([]string, 0, len(loop.Tags))

	consume := func(t token) {
		row = append(row, unquoteMissing(t))
		if len(row) == len(loop.Tags) {
			loop.Rows = append(loop.Rows, row)
			row = make([]string, 0, len(loop.Tags))
		}
	}
	consume(first)

	for {
		t, ok := next()
		if !ok {
			return fmt.Errorf("%w: unterminated loop_ in save_%s", ErrBadEntry, frameName)
		}
		if !t.quoted && t.text == "stop_" {
			if len(row) != 0 {
				return fmt.Errorf("%w: loop _%s in save_%s holds a partial row of %d values",
					ErrBadEntry, loop.Category, frameName, len(row))
			}
			return nil
		}
		consume(t)
	}
}

// splitTagName splits "_nef_peak.index" into category "nef_peak" and name
// "index"; a tag without a dot has an empty category.
func splitTagName(tag string) (category, name string) {
	tag = strings.TrimPrefix(tag, "_")
	if dot := strings.IndexByte(tag, '.'); dot >= 0 {
		return tag[:dot], tag[dot+1:]
	}
	return "", tag
}

// unquoteMissing maps the NEF missing-value marker back to the empty string.
func unquoteMissing(t token) string {
	if !t.quoted && t.text == "." {
		return ""
	}
	return t.text
}

// tokenize reads the input line by line into tokens, honouring quotes,
// comments and semicolon text blocks.
func tokenize(r io.Reader) ([]token, error) {
	tokens := make([]token, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	var block *strings.Builder
	blockStart := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if block != nil {
			if strings.TrimSpace(line) == ";" {
				tokens = append(tokens, token{text: block.String(), quoted: true, lineNo: blockStart})
				block = nil
				continue
			}
			if block.Len() > 0 {
				block.WriteByte('\n')
			}
			block.WriteString(line)
			continue
		}

		if strings.HasPrefix(line, ";") {
			block = &strings.Builder{}
			block.WriteString(strings.TrimPrefix(line, ";"))
			blockStart = lineNo
			continue
		}

		lineTokens, err := tokenizeLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, lineTokens...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("nef: failed to read entry: %w", err)
	}
	if block != nil {
		return nil, fmt.Errorf("%w: unterminated semicolon block at line %d", ErrBadEntry, blockStart)
	}
	return tokens, nil
}

// tokenizeLine splits one line into tokens: whitespace separated, with
// quoted strings kept whole and a # comment ending the line.
func tokenizeLine(line string, lineNo int) ([]token, error) {
	tokens := make([]token, 0)
	i := 0
	for i < len(line) {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			i++

		case c == '#':
			return tokens, nil

		case c == '\'' || c == '"':
			end := strings.IndexByte(line[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quote at line %d", ErrBadEntry, lineNo)
			}
			tokens = append(tokens, token{text: line[i+1 : i+1+end], quoted: true, lineNo: lineNo})
			i += end + 2

		default:
			end := i
			for end < len(line) && line[end] != ' ' && line[end] != '\t' {
				end++
			}
			tokens = append(tokens, token{text: line[i:end], lineNo: lineNo})
			i = end
		}
	}
	return tokens, nil
}
