// Package nef provides a structured-entry store for the NMR Exchange Format
// (NEF), a dialect of the STAR syntax family: an entry holds saveframes,
// each with tagged values and loops. Entries can be parsed from and rendered
// back to their text form.
package nef

import (
	"fmt"
	"strings"
)

// Indentation of the rendered text form.
const (
	frameIndent = "   "
	loopIndent  = "      "
)

// Tag is one tagged value of a saveframe.
type Tag struct {
	Name  string
	Value string
}

// Loop is a table of values under one tag category: the rendered tag names
// are _<category>.<tag>.
type Loop struct {
	Category string
	Tags     []string
	Rows     [][]string
}

// Saveframe is one save_ block: a name, tagged values in order and loops.
type Saveframe struct {
	Name  string
	Tags  []Tag
	Loops []*Loop
}

// Entry is one NEF entry: a data block holding saveframes in order.
type Entry struct {
	Name       string
	Saveframes []*Saveframe
}

// NewEntry creates an empty entry.
func NewEntry(name string) *Entry {
	return &Entry{Name: name}
}

// AddSaveframe appends a saveframe to the entry.
func (e *Entry) AddSaveframe(frame *Saveframe) {
	e.Saveframes = append(e.Saveframes, frame)
}

// SaveframesByCategory returns the saveframes whose sf_category tag matches.
func (e *Entry) SaveframesByCategory(category string) []*Saveframe {
	result := make([]*Saveframe, 0)
	for _, frame := range e.Saveframes {
		if c, ok := frame.Tag("sf_category"); ok && c == category {
			result = append(result, frame)
		}
	}
	return result
}

// NewSaveframe creates a saveframe named <category>_<name> with its
// sf_category and sf_framecode tags set, the NEF convention for frame
// identity.
func NewSaveframe(category, name string) *Saveframe {
	frameCode := category
	if name != "" {
		frameCode = category + "_" + name
	}
	frame := &Saveframe{Name: frameCode}
	frame.AddTag("sf_category", category)
	frame.AddTag("sf_framecode", frameCode)
	return frame
}

// AddTag appends a tagged value.
func (f *Saveframe) AddTag(name, value string) {
	f.Tags = append(f.Tags, Tag{Name: name, Value: value})
}

// SetTag replaces the value of a tag, appending it when absent.
func (f *Saveframe) SetTag(name, value string) {
	for i := range f.Tags {
		if f.Tags[i].Name == name {
			f.Tags[i].Value = value
			return
		}
	}
	f.AddTag(name, value)
}

// Tag returns the value of a named tag.
func (f *Saveframe) Tag(name string) (string, bool) {
	for _, tag := range f.Tags {
		if tag.Name == name {
			return tag.Value, true
		}
	}
	return "", false
}

// Category returns the saveframe's sf_category tag, or the empty string.
func (f *Saveframe) Category() string {
	category, _ := f.Tag("sf_category")
	return category
}

// AddLoop appends a loop to the saveframe.
func (f *Saveframe) AddLoop(loop *Loop) {
	f.Loops = append(f.Loops, loop)
}

// NewLoop creates an empty loop for a tag category.
func NewLoop(category string, tags ...string) *Loop {
	return &Loop{Category: category, Tags: tags}
}

// AddRow appends one row of values; short rows are padded with the NEF
// missing-value marker ".".
func (l *Loop) AddRow(values ...string) {
	for len(values) < len(l.Tags) {
		values = append(values, ".")
	}
	l.Rows = append(l.Rows, values)
}

// Column returns the values of a named tag across all rows.
func (l *Loop) Column(tag string) ([]string, bool) {
	for i, name := range l.Tags {
		if name != tag {
			continue
		}
		result := make([]string, 0, len(l.Rows))
		for _, row := range l.Rows {
			result = append(result, row[i])
		}
		return result, true
	}
	return nil, false
}

// SetColumn replaces the values of a named tag across all rows.
func (l *Loop) SetColumn(tag string, values []string) error {
	for i, name := range l.Tags {
		if name != tag {
			continue
		}
		if len(values) != len(l.Rows) {
			return fmt.Errorf("nef: column %s has %d rows, got %d values", tag, len(l.Rows), len(values))
		}
		for row := range l.Rows {
			l.Rows[row][i] = values[row]
		}
		return nil
	}
	return fmt.Errorf("nef: no column %s in loop _%s", tag, l.Category)
}

// String renders the entry in its text form.
func (e *Entry) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "data_%s\n", e.Name)
	for _, frame := range e.Saveframes {
		builder.WriteByte('\n')
		frame.render(&builder)
	}
	return builder.String()
}

func (f *Saveframe) render(builder *strings.Builder) {
	fmt.Fprintf(builder, "save_%s\n", f.Name)

	category := f.Category()
	width := 0
	for _, tag := range f.Tags {
		if n := len(renderTagName(category, tag.Name)); n > width {
			width = n
		}
	}
	for _, tag := range f.Tags {
		name := renderTagName(category, tag.Name)
		fmt.Fprintf(builder, "%s%-*s  %s\n", frameIndent, width, name, quote(tag.Value))
	}

	for _, loop := range f.Loops {
		builder.WriteByte('\n')
		loop.render(builder)
	}

	builder.WriteString("save_\n")
}

func (l *Loop) render(builder *strings.Builder) {
	fmt.Fprintf(builder, "%sloop_\n", frameIndent)
	for _, tag := range l.Tags {
		fmt.Fprintf(builder, "%s_%s.%s\n", loopIndent, l.Category, tag)
	}
	builder.WriteByte('\n')

	widths := make([]int, len(l.Tags))
	for _, row := range l.Rows {
		for i, value := range row {
			if n := len(quote(value)); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}
	for _, row := range l.Rows {
		builder.WriteString(loopIndent)
		for i, value := range row {
			if i > 0 {
				builder.WriteString("   ")
			}
			if i == len(row)-1 {
				builder.WriteString(quote(value))
			} else {
				fmt.Fprintf(builder, "%-*s", widths[i], quote(value))
			}
		}
		builder.WriteByte('\n')
	}

	fmt.Fprintf(builder, "%sstop_\n", frameIndent)
}

// renderTagName renders a saveframe tag as _<category>.<name>; tags of a
// frame with no category render bare.
func renderTagName(category, name string) string {
	if category == "" {
		return "_" + name
	}
	return fmt.Sprintf("_%s.%s", category, name)
}

// quote wraps a value in single quotes when it would not survive
// whitespace-splitting; empty values render as the missing-value marker.
func quote(value string) string {
	if value == "" {
		return "."
	}
	if strings.ContainsAny(value, " \t") || value[0] == '_' || value[0] == '#' {
		return "'" + value + "'"
	}
	return value
}
